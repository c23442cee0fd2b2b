// Package pack implements the variable-width encoding used for histogram
// data sections whose bytesPerBin is 0.
//
// Each bin count is stored as a one-byte width tag followed by the value in
// that many bytes, little-endian:
//
//	0x00  1-byte value (0..0xFF)
//	0x01  2-byte value (0..0xFFFF)
//	0x02  4-byte value (0..0xFFFFFFFF)
//
// The code is self-delimiting, so the binding contract is the round trip:
// Unpack(Pack(xs)) == xs for arbitrary u32 inputs.
package pack

import (
	"fmt"

	"github.com/arloliu/mud/errs"
)

const (
	tag1 = 0x00
	tag2 = 0x01
	tag4 = 0x02
)

// Pack encodes bins into the variable-width byte stream.
func Pack(bins []uint32) []byte {
	out := make([]byte, 0, len(bins)*2)
	for _, v := range bins {
		switch {
		case v <= 0xFF:
			out = append(out, tag1, byte(v))
		case v <= 0xFFFF:
			out = append(out, tag2, byte(v), byte(v>>8))
		default:
			out = append(out, tag4, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
		}
	}

	return out
}

// PackedSize returns the encoded length of bins without materializing the
// stream; it always equals len(Pack(bins)).
func PackedSize(bins []uint32) uint32 {
	total := uint32(0)
	for _, v := range bins {
		switch {
		case v <= 0xFF:
			total += 2
		case v <= 0xFFFF:
			total += 3
		default:
			total += 5
		}
	}

	return total
}

// Unpack decodes nBins values from the stream. It fails when a tag is
// unknown or the stream ends mid-value.
func Unpack(data []byte, nBins int) ([]uint32, error) {
	out := make([]uint32, 0, nBins)
	pos := 0
	for i := 0; i < nBins; i++ {
		if pos >= len(data) {
			return nil, fmt.Errorf("%w: packed stream ends at bin %d of %d", errs.ErrCorruptSection, i, nBins)
		}
		tag := data[pos]
		pos++

		var width int
		switch tag {
		case tag1:
			width = 1
		case tag2:
			width = 2
		case tag4:
			width = 4
		default:
			return nil, fmt.Errorf("%w: packed stream tag 0x%02X at bin %d", errs.ErrCorruptSection, tag, i)
		}
		if pos+width > len(data) {
			return nil, fmt.Errorf("%w: packed value truncated at bin %d", errs.ErrCorruptSection, i)
		}

		v := uint32(0)
		for b := width - 1; b >= 0; b-- {
			v = v<<8 | uint32(data[pos+b])
		}
		pos += width
		out = append(out, v)
	}

	return out, nil
}
