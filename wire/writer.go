package wire

import (
	"fmt"
	"math"

	"github.com/arloliu/mud/endian"
	"github.com/arloliu/mud/errs"
	"github.com/arloliu/mud/internal/pool"
)

// Writer emits primitive values into an expandable buffer, advancing a
// write cursor. Writes cannot fail short; the buffer grows as needed.
type Writer struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
}

// NewWriter creates a Writer appending to buf using the given endian engine.
func NewWriter(buf *pool.ByteBuffer, engine endian.EndianEngine) *Writer {
	return &Writer{buf: buf, engine: engine}
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// WriteU16 writes an unsigned 16-bit integer.
func (w *Writer) WriteU16(v uint16) {
	w.buf.B = w.engine.AppendUint16(w.buf.B, v)
}

// WriteU32 writes an unsigned 32-bit integer.
func (w *Writer) WriteU32(v uint32) {
	w.buf.B = w.engine.AppendUint32(w.buf.B, v)
}

// WriteI16 writes a signed 16-bit integer.
func (w *Writer) WriteI16(v int16) {
	w.WriteU16(uint16(v))
}

// WriteI32 writes a signed 32-bit integer.
func (w *Writer) WriteI32(v int32) {
	w.WriteU32(uint32(v))
}

// WriteF64 writes an IEEE-754 double.
func (w *Writer) WriteF64(v float64) {
	w.buf.B = w.engine.AppendUint64(w.buf.B, math.Float64bits(v))
}

// WriteTime writes a 32-bit unsigned count of seconds since 1970-01-01 UTC.
func (w *Writer) WriteTime(v uint32) {
	w.WriteU32(v)
}

// WriteStr writes a uint16 length prefix followed by the string bytes, with
// no trailing NUL. Strings longer than 65535 bytes are rejected.
func (w *Writer) WriteStr(s string) error {
	if len(s) > math.MaxUint16 {
		return fmt.Errorf("%w: %d bytes", errs.ErrStringTooLong, len(s))
	}
	w.WriteU16(uint16(len(s)))
	w.buf.MustWrite([]byte(s))

	return nil
}

// WriteRaw writes the bytes verbatim.
func (w *Writer) WriteRaw(b []byte) {
	w.buf.MustWrite(b)
}

// StrSize returns the encoded size of a string: the length prefix plus the
// string bytes. Used by section size ops during the sizing pass.
func StrSize(s string) uint32 {
	return 2 + uint32(len(s))
}
