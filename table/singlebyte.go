package table

import (
	"fmt"
	"unicode/utf8"

	"github.com/arloliu/iconv/errs"
)

// SingleByte holds the lookup tables of a single-byte charset.
//
// Decoding is a 256-entry lookup. Encoding is a lookup over the whole BMP;
// characters absent from the charset map to the substitution byte. When two
// bytes decode to the same character, the higher byte wins.
type SingleByte struct {
	decode [256]uint16
	encode []byte
}

// NewSingleByte builds the tables for a charset described by chars.
//
// Parameters:
//   - chars: 256 characters, one per byte value, or 128 characters for bytes
//     0x80-0xFF, in which case the lower half is ASCII
//   - substitute: byte written for characters outside the charset
//
// Returns:
//   - *SingleByte: immutable tables
//   - error: ErrInvalidTableSize for any other length, ErrMalformedTableData
//     for characters outside the BMP
func NewSingleByte(chars string, substitute byte) (*SingleByte, error) {
	n := utf8.RuneCountInString(chars)
	offset := 0
	switch n {
	case 128:
		offset = 128
	case 256:
	default:
		return nil, fmt.Errorf("%w: got %d", errs.ErrInvalidTableSize, n)
	}

	sb := &SingleByte{encode: make([]byte, 0x10000)}
	for i := range offset {
		sb.decode[i] = uint16(i)
	}
	i := offset
	for _, r := range chars {
		if r > 0xFFFF {
			return nil, fmt.Errorf("%w: character %U at byte %#x is outside the BMP", errs.ErrMalformedTableData, r, i)
		}
		sb.decode[i] = uint16(r)
		i++
	}

	for j := range sb.encode {
		sb.encode[j] = substitute
	}
	for b, u := range sb.decode {
		sb.encode[u] = byte(b)
	}

	return sb, nil
}

// Decode returns the UTF-16 code unit for byte b.
func (sb *SingleByte) Decode(b byte) uint16 {
	return sb.decode[b]
}

// Encode returns the byte for code unit u, or the substitution byte.
func (sb *SingleByte) Encode(u uint16) byte {
	return sb.encode[u]
}
