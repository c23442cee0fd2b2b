package pool

import (
	"io"
	"sync"
)

const (
	// SectionBufferDefaultSize is the step by which Grow enlarges small
	// buffers; sized for a typical section payload.
	SectionBufferDefaultSize = 1024 * 4
	// FileBufferDefaultSize is the default size for whole-file buffers.
	FileBufferDefaultSize = 1024 * 64
	// FileBufferMaxThreshold is the largest buffer the pool retains; bigger
	// buffers are dropped to avoid memory bloat from one oversized run file.
	FileBufferMaxThreshold = 1024 * 1024 * 8
)

// ByteBuffer is an expandable byte slice used to stage section payloads and
// whole-file images before they hit the wire codec.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// MustWrite appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Grow ensures the buffer can hold requiredBytes more bytes without
// reallocating. For small buffers it grows by the default size; larger
// buffers grow by 25% of capacity to balance memory and reallocation cost.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := SectionBufferDefaultSize
	if cap(bb.B) > 4*SectionBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends the contents of data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// It uses sync.Pool internally. Buffers larger than maxThreshold are not
// retained when returned.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the
// specified default size. maxThreshold of 0 disables the retention limit.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	bb.Reset()

	return bb
}

// Put returns a ByteBuffer to the pool.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bbp.maxThreshold > 0 && bb.Cap() > bbp.maxThreshold {
		return
	}
	bbp.pool.Put(bb)
}

var fileBufferPool = NewByteBufferPool(FileBufferDefaultSize, FileBufferMaxThreshold)

// GetFileBuffer retrieves a whole-file staging buffer from the shared pool.
func GetFileBuffer() *ByteBuffer {
	return fileBufferPool.Get()
}

// PutFileBuffer returns a whole-file staging buffer to the shared pool.
func PutFileBuffer(bb *ByteBuffer) {
	fileBufferPool.Put(bb)
}
