// Package wire implements the primitive codec of the MUD container: cursor
// based reads and writes of fixed-width integers, IEEE-754 doubles,
// length-prefixed strings and epoch times, in the byte order the file's
// format ID dictates.
//
// All multi-byte values use the endian engine the Reader or Writer was
// created with; the file driver selects the engine once per file.
package wire

import (
	"fmt"
	"math"

	"github.com/arloliu/mud/endian"
	"github.com/arloliu/mud/errs"
)

// Reader consumes primitive values from a byte slice, advancing a cursor.
// Every read is bounds-checked and fails with errs.ErrShortBuffer once the
// remaining payload is shorter than the requested value, except that a
// string whose declared length overruns the payload fails with
// errs.ErrCorruptSection.
type Reader struct {
	buf    []byte
	pos    int
	engine endian.EndianEngine
}

// NewReader creates a Reader over buf using the given endian engine.
func NewReader(buf []byte, engine endian.EndianEngine) *Reader {
	return &Reader{buf: buf, engine: engine}
}

// Pos returns the current cursor position.
func (r *Reader) Pos() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

// Seek moves the cursor to the absolute position pos.
func (r *Reader) Seek(pos int) error {
	if pos < 0 || pos > len(r.buf) {
		return fmt.Errorf("%w: seek to %d in %d-byte buffer", errs.ErrShortBuffer, pos, len(r.buf))
	}
	r.pos = pos

	return nil
}

func (r *Reader) take(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", errs.ErrShortBuffer, n, r.Remaining())
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n

	return b, nil
}

// ReadU16 reads an unsigned 16-bit integer.
func (r *Reader) ReadU16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint16(b), nil
}

// ReadU32 reads an unsigned 32-bit integer.
func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint32(b), nil
}

// ReadI16 reads a signed 16-bit integer.
func (r *Reader) ReadI16() (int16, error) {
	v, err := r.ReadU16()

	return int16(v), err
}

// ReadI32 reads a signed 32-bit integer.
func (r *Reader) ReadI32() (int32, error) {
	v, err := r.ReadU32()

	return int32(v), err
}

// ReadF64 reads an IEEE-754 double.
func (r *Reader) ReadF64() (float64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(r.engine.Uint64(b)), nil
}

// ReadTime reads a 32-bit unsigned count of seconds since 1970-01-01 UTC.
// The width is a file-format contract; it is not widened on disk.
func (r *Reader) ReadTime() (uint32, error) {
	return r.ReadU32()
}

// ReadStr reads a uint16 length prefix followed by that many bytes. There is
// no trailing NUL on disk; a zero length yields an empty string. The
// returned string is an owned copy of the payload bytes.
func (r *Reader) ReadStr() (string, error) {
	n, err := r.ReadU16()
	if err != nil {
		return "", err
	}
	b, err := r.take(int(n))
	if err != nil {
		return "", fmt.Errorf("%w: string of %d bytes", errs.ErrCorruptSection, n)
	}

	return string(b), nil
}

// Sub returns a Reader restricted to the next n bytes and advances this
// reader past them. Decoders use it to pin a section's reads inside its
// declared payload size.
func (r *Reader) Sub(n int) (*Reader, error) {
	b, err := r.take(n)
	if err != nil {
		return nil, err
	}

	return &Reader{buf: b, engine: r.engine}, nil
}

// ReadRaw reads n bytes as an owned copy.
func (r *Reader) ReadRaw(n int) ([]byte, error) {
	b, err := r.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)

	return out, nil
}
