package compress

import (
	"bytes"
	"io"

	"github.com/pierrec/lz4/v4"
)

// LZ4Codec handles lz4-framed containers. The frame format carries its own
// magic number, which is what Sniff keys on.
type LZ4Codec struct{}

var _ Codec = LZ4Codec{}

func (LZ4Codec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (LZ4Codec) Decompress(data []byte) ([]byte, error) {
	zr := lz4.NewReader(bytes.NewReader(data))

	return io.ReadAll(zr)
}
