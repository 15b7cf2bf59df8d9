// Package endian provides the byte order engines used by the UTF-16 and
// UTF-32 codecs.
//
// It combines encoding/binary's ByteOrder and AppendByteOrder interfaces into
// a single EndianEngine, so a codec can both read code units from a byte
// slice and append code units to an output buffer through one value:
//
//	engine := endian.GetBigEndianEngine()
//	out = engine.AppendUint16(out, unit)
//	unit = engine.Uint16(in[i:])
//
// # Thread Safety
//
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetEngine returns the little-endian engine when littleEndian is true and
// the big-endian engine otherwise.
func GetEngine(littleEndian bool) EndianEngine {
	if littleEndian {
		return binary.LittleEndian
	}

	return binary.BigEndian
}

// IsLittleEndian reports whether engine stores the least significant byte first.
func IsLittleEndian(engine EndianEngine) bool {
	return engine.Uint16([]byte{0x01, 0x00}) == 1
}

// SwapUint16 swaps the two bytes of every complete 16-bit unit of buf in place.
// A trailing odd byte is left untouched.
func SwapUint16(buf []byte) {
	for i := 0; i+1 < len(buf); i += 2 {
		buf[i], buf[i+1] = buf[i+1], buf[i]
	}
}
