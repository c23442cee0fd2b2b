package mud

import (
	"fmt"
	"math"
	"os"

	"github.com/arloliu/mud/compress"
	"github.com/arloliu/mud/endian"
	"github.com/arloliu/mud/errs"
	"github.com/arloliu/mud/internal/hash"
	"github.com/arloliu/mud/internal/options"
	"github.com/arloliu/mud/internal/pool"
	"github.com/arloliu/mud/section"
	"github.com/arloliu/mud/wire"
)

// Re-exported identifiers so callers rarely need the section package.
const (
	FmtGen   = section.FmtGenID
	FmtTriTd = section.FmtTriTdID
	FmtTriTi = section.FmtTriTiID

	SecGenRunDesc   = section.SecGenRunDescID
	SecTriTiRunDesc = section.SecTriTiRunDescID

	GrpGenHist      = section.GrpGenHistID
	GrpTriTdHist    = section.GrpTriTdHistID
	GrpTriTiHist    = section.GrpTriTiHistID
	GrpGenScaler    = section.GrpGenScalerID
	GrpTriTdScaler  = section.GrpTriTdScalerID
	GrpGenIndVar    = section.GrpGenIndVarID
	GrpGenIndVarArr = section.GrpGenIndVarArrID
	GrpCmt          = section.GrpCmtID
)

// maxFileSize is the format's hard ceiling: offsets and sizes are 32-bit.
const maxFileSize = math.MaxInt32

// Mode describes what a handle may do with its tree.
type Mode uint8

const (
	ModeRead Mode = iota + 1
	ModeWrite
	ModeReadWrite
)

// File is an open MUD file: the decoded section tree plus the bookkeeping
// the friendly accessors need. It replaces the C library's small-integer
// handle table with an opaque reference.
//
// A File is not safe for concurrent use.
type File struct {
	root   *section.Section
	fmtID  uint32
	mode   Mode
	path   string
	engine endian.EndianEngine
	codec  compress.Codec
	closed bool
}

type config struct {
	engine endian.EndianEngine
	codec  compress.Codec
}

// Option configures the open entry points.
type Option = options.Option[*config]

// WithByteOrder overrides the wire byte order. The registered formats are
// little-endian; the option exists for format experiments.
func WithByteOrder(engine endian.EndianEngine) Option {
	return options.NoError(func(c *config) {
		c.engine = engine
	})
}

// WithCompression selects a container codec applied when the tree is
// written out. Reads always sniff the container, so the option only
// affects output.
func WithCompression(t compress.Type) Option {
	return options.New(func(c *config) error {
		codec := compress.ForType(t)
		if codec == nil {
			return fmt.Errorf("%w: %d", errs.ErrUnknownCompression, t)
		}
		c.codec = codec

		return nil
	})
}

func newConfig(opts ...Option) (*config, error) {
	cfg := &config{
		engine: endian.GetLittleEndianEngine(),
		codec:  compress.NoopCodec{},
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// OpenRead opens path and decodes the whole tree into memory. The handle
// is read-only; release it with CloseRead.
func OpenRead(path string, opts ...Option) (*File, error) {
	return openInput(path, ModeRead, opts...)
}

// OpenReadWrite opens path for modification: the tree is decoded as with
// OpenRead, and CloseWrite re-serializes it over the original file.
func OpenReadWrite(path string, opts ...Option) (*File, error) {
	return openInput(path, ModeReadWrite, opts...)
}

// OpenWrite creates a handle with a fresh, empty file group of the given
// format ID. Nothing touches the filesystem until CloseWrite.
func OpenWrite(path string, fmtID uint32, opts ...Option) (*File, error) {
	if !section.IsFormatID(fmtID) {
		return nil, fmt.Errorf("%w: format ID 0x%08X", errs.ErrInvalidInput, fmtID)
	}
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &File{
		root:   section.NewGroup(fmtID),
		fmtID:  fmtID,
		mode:   ModeWrite,
		path:   path,
		engine: cfg.engine,
		codec:  cfg.codec,
	}, nil
}

func openInput(path string, mode Mode, opts ...Option) (*File, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrIOFailure, err)
	}

	data, err := compress.ForType(compress.Sniff(raw)).Decompress(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: container decompression: %v", errs.ErrIOFailure, err)
	}

	root, fmtID, err := readTree(data, cfg.engine)
	if err != nil {
		return nil, err
	}

	return &File{
		root:   root,
		fmtID:  fmtID,
		mode:   mode,
		path:   path,
		engine: cfg.engine,
		codec:  cfg.codec,
	}, nil
}

// readTree decodes the outer Core, validates the file group, and dispatches
// the group decoder over the remaining payload.
func readTree(data []byte, engine endian.EndianEngine) (*section.Section, uint32, error) {
	if len(data) > maxFileSize {
		return nil, 0, errs.ErrFileTooLarge
	}

	r := wire.NewReader(data, engine)
	core, err := section.DecodeCore(r)
	if err != nil {
		return nil, 0, err
	}
	if core.SecID != section.SecGrpID || !section.IsFormatID(core.InstanceID) {
		return nil, 0, fmt.Errorf("%w: outer record secID 0x%08X instance 0x%08X",
			errs.ErrInvalidFile, core.SecID, core.InstanceID)
	}

	sub, err := r.Sub(int(core.Size))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: outer group declares %d payload bytes, %d remain",
			errs.ErrInvalidFile, core.Size, r.Remaining())
	}

	root := section.New(core.SecID, core.InstanceID)
	root.Core = core
	if err := root.Payload.Decode(sub, core.Size); err != nil {
		return nil, 0, err
	}
	// Anything after the group payload (the EOF terminator) is ignored.

	return root, core.InstanceID, nil
}

// writeTree runs the sizing and offset passes and emits the tree, followed
// by the EOF terminator section.
func writeTree(root *section.Section, engine endian.EndianEngine) ([]byte, error) {
	root.Refresh()
	root.NextOffset = 0

	total := int(section.CoreSize) + int(root.Size)
	if total > maxFileSize {
		return nil, errs.ErrFileTooLarge
	}

	buf := pool.GetFileBuffer()
	defer pool.PutFileBuffer(buf)

	buf.Grow(total + section.CoreSize)
	w := wire.NewWriter(buf, engine)
	if err := root.Encode(w); err != nil {
		return nil, err
	}
	section.EncodeCore(w, section.Core{SecID: section.SecEOFID, InstanceID: 1})

	out := make([]byte, w.Len())
	copy(out, w.Bytes())

	return out, nil
}

// FormatID returns the file-format ID of the outer group.
func (f *File) FormatID() uint32 {
	return f.fmtID
}

// Path returns the path the handle was opened against.
func (f *File) Path() string {
	return f.path
}

// Root exposes the decoded tree for callers that outgrow the friendly API.
func (f *File) Root() *section.Section {
	return f.root
}

// Digest returns the xxHash64 of the canonical (uncompressed) encoding.
// Two files with structurally equal trees produce equal digests.
func (f *File) Digest() (uint64, error) {
	if f.closed {
		return 0, errs.ErrClosed
	}
	data, err := writeTree(f.root, f.engine)
	if err != nil {
		return 0, err
	}

	return hash.Sum(data), nil
}

// CloseRead discards the in-memory tree without writing.
func (f *File) CloseRead() error {
	if f.closed {
		return errs.ErrClosed
	}
	f.closed = true
	f.root = nil

	return nil
}

// CloseWrite serializes the tree to the path the handle was opened against
// and closes the handle. On failure the tree stays in memory; call
// CloseRead to release it.
func (f *File) CloseWrite() error {
	return f.CloseWriteFile(f.path)
}

// CloseWriteFile serializes the tree to a different path and closes the
// handle.
func (f *File) CloseWriteFile(path string) error {
	if f.closed {
		return errs.ErrClosed
	}
	if f.mode == ModeRead {
		return errs.ErrReadOnly
	}

	data, err := writeTree(f.root, f.engine)
	if err != nil {
		return err
	}
	data, err = f.codec.Compress(data)
	if err != nil {
		return fmt.Errorf("%w: container compression: %v", errs.ErrIOFailure, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrIOFailure, err)
	}

	f.closed = true
	f.root = nil

	return nil
}

func (f *File) writable() error {
	if f.closed {
		return errs.ErrClosed
	}
	if f.mode == ModeRead {
		return errs.ErrReadOnly
	}

	return nil
}

func (f *File) readable() error {
	if f.closed || f.root == nil {
		return errs.ErrClosed
	}

	return nil
}
