package wire

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/mud/endian"
	"github.com/arloliu/mud/errs"
	"github.com/arloliu/mud/internal/pool"
)

func newWriter() *Writer {
	return NewWriter(pool.NewByteBuffer(64), endian.GetLittleEndianEngine())
}

func TestPrimitiveRoundTrip(t *testing.T) {
	w := newWriter()
	w.WriteU16(0xBEEF)
	w.WriteU32(0xDEADBEEF)
	w.WriteI16(-1234)
	w.WriteI32(-123456789)
	w.WriteF64(3.14159265)
	w.WriteTime(1609459200) // 2021-01-01 00:00:00 UTC
	require.NoError(t, w.WriteStr("Sample calibration"))
	require.NoError(t, w.WriteStr(""))
	w.WriteRaw([]byte{1, 2, 3})

	r := NewReader(w.Bytes(), endian.GetLittleEndianEngine())

	u16, err := r.ReadU16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0xBEEF), u16)

	u32, err := r.ReadU32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), u32)

	i16, err := r.ReadI16()
	require.NoError(t, err)
	assert.Equal(t, int16(-1234), i16)

	i32, err := r.ReadI32()
	require.NoError(t, err)
	assert.Equal(t, int32(-123456789), i32)

	f64, err := r.ReadF64()
	require.NoError(t, err)
	assert.InDelta(t, 3.14159265, f64, 1e-12)

	tm, err := r.ReadTime()
	require.NoError(t, err)
	assert.Equal(t, uint32(1609459200), tm)

	s, err := r.ReadStr()
	require.NoError(t, err)
	assert.Equal(t, "Sample calibration", s)

	empty, err := r.ReadStr()
	require.NoError(t, err)
	assert.Equal(t, "", empty)

	raw, err := r.ReadRaw(3)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, raw)

	assert.Equal(t, 0, r.Remaining())
}

func TestLittleEndianLayout(t *testing.T) {
	w := newWriter()
	w.WriteU32(0x11223344)
	assert.Equal(t, []byte{0x44, 0x33, 0x22, 0x11}, w.Bytes())
}

func TestReadOverrun(t *testing.T) {
	r := NewReader([]byte{1, 2}, endian.GetLittleEndianEngine())

	_, err := r.ReadU32()
	assert.ErrorIs(t, err, errs.ErrShortBuffer)

	// Cursor does not advance past a failed read.
	u16, err := r.ReadU16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0201), u16)
}

func TestStrLengthOverrun(t *testing.T) {
	// Declared length 10, only 3 bytes of payload follow.
	r := NewReader([]byte{10, 0, 'a', 'b', 'c'}, endian.GetLittleEndianEngine())

	_, err := r.ReadStr()
	assert.ErrorIs(t, err, errs.ErrCorruptSection)
}

func TestWriteStrTooLong(t *testing.T) {
	w := newWriter()
	err := w.WriteStr(strings.Repeat("x", 65536))
	assert.ErrorIs(t, err, errs.ErrStringTooLong)
}

func TestSeek(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4}, endian.GetLittleEndianEngine())
	require.NoError(t, r.Seek(2))
	assert.Equal(t, 2, r.Pos())
	assert.ErrorIs(t, r.Seek(5), errs.ErrShortBuffer)
	assert.ErrorIs(t, r.Seek(-1), errs.ErrShortBuffer)
}

func TestStrSize(t *testing.T) {
	assert.Equal(t, uint32(2), StrSize(""))
	assert.Equal(t, uint32(7), StrSize("hello"))
}
