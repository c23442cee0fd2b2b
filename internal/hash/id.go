package hash

import "github.com/cespare/xxhash/v2"

// Sum computes the xxHash64 of the given bytes. It is used to fingerprint
// canonical section encodings for regression comparisons.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}
