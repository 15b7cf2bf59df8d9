package hash

import "github.com/cespare/xxhash/v2"

// Checksum computes the xxHash64 of data.
//
// Embedded mapping tables record the checksum of their uncompressed JSON so
// that a corrupted or mismatched blob is caught before it is parsed.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
