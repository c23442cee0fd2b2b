package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEngines(t *testing.T) {
	assert.Equal(t, EndianEngine(binary.LittleEndian), GetLittleEndianEngine())
	assert.Equal(t, EndianEngine(binary.BigEndian), GetBigEndianEngine())
}

func TestEngineRoundTrip(t *testing.T) {
	engine := GetLittleEndianEngine()

	buf := engine.AppendUint32(nil, 0xDEADBEEF)
	require.Len(t, buf, 4)
	assert.Equal(t, uint32(0xDEADBEEF), engine.Uint32(buf))

	buf = engine.AppendUint16(nil, 0x1234)
	require.Len(t, buf, 2)
	assert.Equal(t, uint16(0x1234), engine.Uint16(buf))
}

func TestCheckEndianness(t *testing.T) {
	order := CheckEndianness()
	if IsNativeLittleEndian() {
		assert.Equal(t, binary.ByteOrder(binary.LittleEndian), order)
	} else {
		assert.Equal(t, binary.ByteOrder(binary.BigEndian), order)
	}
}
