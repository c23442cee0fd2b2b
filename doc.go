// Package mud reads and writes MUD (Muon Data) files, the self-describing
// binary container for time-differential and time-integral µSR run data.
//
// A MUD file is a single outer group of typed sections. Opening a file
// decodes the whole tree into memory; the friendly accessors then hide the
// tree traversal behind field-level getters and setters.
//
// # Reading
//
//	f, err := mud.OpenRead("006663.msr")
//	if err != nil { ... }
//	defer f.CloseRead()
//
//	run, _ := f.GetRunNumber()
//	title, _ := f.GetTitle()
//
// Compressed archives (gzip, zstd, lz4) are detected by their magic bytes
// and decompressed transparently.
//
// # Writing
//
//	f, _ := mud.OpenWrite("out.msr", mud.FmtTriTd)
//	f.SetRunDesc(mud.SecGenRunDesc)
//	f.SetRunNumber(6663)
//	f.SetTitle("Sample calibration")
//	f.SetHists(mud.GrpTriTdHist, 8)
//	...
//	f.CloseWrite()
//
// Writing runs a sizing pass over the tree before emission so every
// section's nextOffset can be laid out first, keeping the output readable
// by legacy seek-based readers.
//
// Sections with unregistered IDs are preserved verbatim across a
// read/modify/write cycle. Files and their trees are not safe for
// concurrent use; wrap a *File in a mutex if multiple goroutines share it.
package mud
