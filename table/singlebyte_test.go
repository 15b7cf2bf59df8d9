package table

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/iconv/errs"
)

func upperHalf(fill rune, overrides map[int]rune) string {
	chars := []rune(strings.Repeat(string(fill), 128))
	for i, r := range overrides {
		chars[i] = r
	}

	return string(chars)
}

func TestNewSingleByte_HalfTable(t *testing.T) {
	sb, err := NewSingleByte(upperHalf(0xFFFD, map[int]rune{0: '€', 0x7F: 'ÿ'}), '?')
	require.NoError(t, err)

	require.Equal(t, uint16('A'), sb.Decode('A'))
	require.Equal(t, uint16('€'), sb.Decode(0x80))
	require.Equal(t, uint16('ÿ'), sb.Decode(0xFF))
	require.Equal(t, uint16(0xFFFD), sb.Decode(0x81))

	require.Equal(t, byte('A'), sb.Encode('A'))
	require.Equal(t, byte(0x80), sb.Encode('€'))
	require.Equal(t, byte('?'), sb.Encode('日'))
}

func TestNewSingleByte_FullTable(t *testing.T) {
	var sb256 strings.Builder
	for i := range 256 {
		sb256.WriteRune(rune(255 - i))
	}

	sb, err := NewSingleByte(sb256.String(), 0x6F)
	require.NoError(t, err)
	require.Equal(t, uint16(0xFF), sb.Decode(0x00))
	require.Equal(t, byte(0x00), sb.Encode(0xFF))
	require.Equal(t, byte(0x6F), sb.Encode(0x100))
}

func TestNewSingleByte_LastWriteWins(t *testing.T) {
	sb, err := NewSingleByte(upperHalf(0xFFFD, nil), '?')
	require.NoError(t, err)
	require.Equal(t, byte(0xFF), sb.Encode(0xFFFD))
}

func TestNewSingleByte_InvalidSize(t *testing.T) {
	for _, chars := range []string{"", "abc", strings.Repeat("a", 127), strings.Repeat("a", 257)} {
		_, err := NewSingleByte(chars, '?')
		require.ErrorIs(t, err, errs.ErrInvalidTableSize)
	}
}

func TestNewSingleByte_OutsideBMP(t *testing.T) {
	_, err := NewSingleByte(upperHalf('a', map[int]rune{3: 0x1F600}), '?')
	require.ErrorIs(t, err, errs.ErrMalformedTableData)
}
