// Package errs defines the sentinel errors shared across the mud packages.
//
// Callers should match with errors.Is; most errors are wrapped with
// additional context (section IDs, offsets) by the layer that detects them.
package errs

import "errors"

var (
	// ErrInvalidFile indicates the outer record is not a recognized MUD
	// file group, or the stream is shorter than a section Core.
	ErrInvalidFile = errors.New("mud: invalid file")

	// ErrCorruptSection indicates a section's declared size, nextOffset or
	// string length would overrun the enclosing scope.
	ErrCorruptSection = errors.New("mud: corrupt section")

	// ErrNotFound indicates a friendly accessor addressed a section that is
	// absent from the tree.
	ErrNotFound = errors.New("mud: section not found")

	// ErrInvalidInput indicates a setter received a value that violates a
	// type constraint.
	ErrInvalidInput = errors.New("mud: invalid input")

	// ErrShortBuffer indicates a primitive read ran past the end of the
	// payload buffer.
	ErrShortBuffer = errors.New("mud: short buffer")

	// ErrIOFailure indicates the underlying open, read or write failed.
	ErrIOFailure = errors.New("mud: i/o failure")

	// ErrClosed indicates an operation on an already-closed file handle.
	ErrClosed = errors.New("mud: file closed")

	// ErrReadOnly indicates a write operation on a read-only handle.
	ErrReadOnly = errors.New("mud: file opened read-only")

	// ErrStringTooLong indicates a string exceeds the uint16 length prefix.
	ErrStringTooLong = errors.New("mud: string exceeds 65535 bytes")

	// ErrFileTooLarge indicates an encoded tree exceeds the 32-bit offset
	// range of the format.
	ErrFileTooLarge = errors.New("mud: file exceeds 2 GiB format limit")

	// ErrUnknownCompression indicates WithCompression received a codec the
	// library does not provide.
	ErrUnknownCompression = errors.New("mud: unknown compression codec")
)
