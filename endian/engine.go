// Package endian provides byte order utilities for the MUD wire codec.
//
// The package combines encoding/binary's ByteOrder and AppendByteOrder
// interfaces into a single EndianEngine interface so the wire reader and
// writer can both index into buffers and append to them through one value.
//
// MUD files in the present corpus are little-endian; the engine is chosen
// once per file at open time (see the file driver), so a big-endian format
// variant only needs a new format ID, not new codecs.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface for byte order operations.
//
// The interface is satisfied by binary.LittleEndian and binary.BigEndian,
// so engines interoperate with any code using the standard library types.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

// GetLittleEndianEngine returns the little-endian engine, the on-disk order
// of every registered MUD format.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
