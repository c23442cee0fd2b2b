package compress

import "github.com/valyala/gozstd"

// ZstdCodec handles zstd-framed archival copies.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}

func (ZstdCodec) Compress(data []byte) ([]byte, error) {
	return gozstd.Compress(nil, data), nil
}

func (ZstdCodec) Decompress(data []byte) ([]byte, error) {
	return gozstd.Decompress(nil, data)
}
