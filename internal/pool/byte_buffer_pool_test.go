package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteBufferBasics(t *testing.T) {
	bb := NewByteBuffer(16)
	assert.Equal(t, 0, bb.Len())
	assert.GreaterOrEqual(t, bb.Cap(), 16)

	bb.MustWrite([]byte("hello"))
	assert.Equal(t, 5, bb.Len())
	assert.Equal(t, []byte("hello"), bb.Bytes())

	bb.Reset()
	assert.Equal(t, 0, bb.Len())
}

func TestByteBufferGrow(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.MustWrite([]byte("12345678"))

	bb.Grow(1024)
	require.GreaterOrEqual(t, bb.Cap()-bb.Len(), 1024)
	assert.Equal(t, []byte("12345678"), bb.Bytes())
}

func TestByteBufferWriteTo(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.MustWrite([]byte("payload"))

	var sink bytes.Buffer
	n, err := bb.WriteTo(&sink)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.Equal(t, "payload", sink.String())
}

func TestByteBufferPool(t *testing.T) {
	p := NewByteBufferPool(16, 64)

	bb := p.Get()
	bb.MustWrite(make([]byte, 32))
	p.Put(bb)

	bb2 := p.Get()
	assert.Equal(t, 0, bb2.Len())

	// Oversized buffers are dropped on Put.
	big := p.Get()
	big.MustWrite(make([]byte, 1024))
	p.Put(big)
}
