package compress

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
)

// GzipCodec handles the .msr.gz archives most µSR data servers ship.
type GzipCodec struct{}

var _ Codec = GzipCodec{}

func (GzipCodec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (GzipCodec) Decompress(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	return io.ReadAll(zr)
}
