package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = bytes.Repeat([]byte("MUD run 6663 histogram payload "), 64)

func TestCodecRoundTripAndSniff(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
	}{
		{"gzip", Gzip},
		{"zstd", Zstd},
		{"lz4", LZ4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec := ForType(tt.typ)
			require.NotNil(t, codec)

			compressed, err := codec.Compress(sample)
			require.NoError(t, err)
			assert.Equal(t, tt.typ, Sniff(compressed))

			out, err := codec.Decompress(compressed)
			require.NoError(t, err)
			assert.Equal(t, sample, out)
		})
	}
}

func TestSniffPlainFile(t *testing.T) {
	assert.Equal(t, None, Sniff([]byte{0x03, 0x00, 0x00, 0x00}))
	assert.Equal(t, None, Sniff(nil))
}

func TestNoopCodec(t *testing.T) {
	codec := ForType(None)
	out, err := codec.Compress(sample)
	require.NoError(t, err)
	assert.Equal(t, sample, out)

	out, err = codec.Decompress(sample)
	require.NoError(t, err)
	assert.Equal(t, sample, out)
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "Gzip", Gzip.String())
	assert.Equal(t, "None", None.String())
	assert.Equal(t, "Unknown", Type(99).String())
}
