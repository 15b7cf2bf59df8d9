package encoding

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
	xencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"

	"github.com/arloliu/iconv/codec"
	"github.com/arloliu/iconv/errs"
	"github.com/arloliu/iconv/internal/tables"
)

func TestDBCS_MatchesXText(t *testing.T) {
	r := newRegistry(t)

	tests := []struct {
		name   string
		oracle xencoding.Encoding
		text   string
	}{
		{"shiftjis", japanese.ShiftJIS, "こんにちは、日本語テキスト。ﾊﾝｶｸ ABC"},
		{"eucjp", japanese.EUCJP, "こんにちは、日本語テキスト。ﾊﾝｶｸ ABC"},
		{"gbk", simplifiedchinese.GBK, "你好，世界！中文字符 ABC"},
		{"gb18030", simplifiedchinese.GB18030, "你好，世界！€ ÿ 😀 \u0080 ABC"},
		{"cp949", korean.EUCKR, "안녕하세요, 한국어 ABC"},
		{"big5hkscs", traditionalchinese.Big5, "繁體中文，你好 ABC"},
		{"cp950", traditionalchinese.Big5, "繁體中文，你好 ABC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, err := tt.oracle.NewEncoder().Bytes([]byte(tt.text))
			require.NoError(t, err)

			got := encodeString(t, r, tt.name, tt.text)
			require.Equal(t, want, got)
			require.Equal(t, tt.text, decodeBytes(t, r, tt.name, want))
		})
	}
}

func TestDBCS_WHATWGMappings(t *testing.T) {
	r := newRegistry(t)

	// EUC-JP A1C1 is the fullwidth tilde; JIS X 0212 2237 claims it on encode.
	require.Equal(t, "～", decodeBytes(t, r, "eucjp", []byte{0xA1, 0xC1}))
	require.Equal(t, []byte{0x8F, 0xA2, 0xB7}, encodeString(t, r, "eucjp", "～"))

	// HKSCS-2008 rows 87 and 88.
	require.Equal(t, "䏰", decodeBytes(t, r, "big5hkscs", []byte{0x87, 0x40}))
	require.Equal(t, []byte{0x87, 0x40}, encodeString(t, r, "big5hkscs", "䏰"))
	require.Equal(t, "Ê̄", decodeBytes(t, r, "big5hkscs", []byte{0x88, 0x62}))
	require.Equal(t, []byte{0x88, 0x62}, encodeString(t, r, "big5hkscs", "Ê̄"))
}

// twoByteCodes returns every pair of a lead byte 81-FE and a trail byte
// 40-FE.
func twoByteCodes() [][]byte {
	var codes [][]byte
	for lead := 0x81; lead <= 0xFE; lead++ {
		for trail := 0x40; trail <= 0xFE; trail++ {
			codes = append(codes, []byte{byte(lead), byte(trail)})
		}
	}

	return codes
}

func TestDBCS_EveryTwoByteCodeMatchesXText(t *testing.T) {
	if testing.Short() {
		t.Skip("walks every two-byte code")
	}
	r := newRegistry(t)

	tests := []struct {
		name   string
		oracle xencoding.Encoding
	}{
		{"shiftjis", japanese.ShiftJIS},
		{"eucjp", japanese.EUCJP},
		{"gbk", simplifiedchinese.GBK},
		{"gb18030", simplifiedchinese.GB18030},
		{"cp949", korean.EUCKR},
		{"big5hkscs", traditionalchinese.Big5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compared := 0
			for _, code := range twoByteCodes() {
				want, err := tt.oracle.NewDecoder().Bytes(code)
				require.NoError(t, err)
				// Only codes x/text reads as one assigned character.
				if utf8.RuneCount(want) != 1 || bytes.ContainsRune(want, utf8.RuneError) {
					continue
				}
				require.Equal(t, string(want), decodeBytes(t, r, tt.name, code), "code % X", code)
				compared++
			}
			require.Greater(t, compared, 7000)
		})
	}
}

// Every decodable code of every multi-byte charset survives decode then
// encode unless encoding skips it or another code decodes to the same
// character. The decoded text always survives encode then decode.
func TestDBCS_EveryCodeRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("walks every two-byte code")
	}
	r := newRegistry(t)

	for _, cs := range dbcsCharsets {
		t.Run(cs.name, func(t *testing.T) {
			codes := twoByteCodes()
			for b := 0; b < 0x100; b++ {
				codes = append(codes, []byte{byte(b)})
			}
			if cs.name == "eucjp" {
				for _, code := range twoByteCodes() {
					if code[0] >= 0xA1 && code[1] >= 0xA1 {
						codes = append(codes, append([]byte{0x8F}, code...))
					}
				}
			}

			decoded := make([]string, len(codes))
			owners := make(map[string]int)
			for i, code := range codes {
				decoded[i] = decodeBytes(t, r, cs.name, code)
				owners[decoded[i]]++
			}

			for i, code := range codes {
				text := decoded[i]
				if strings.ContainsRune(text, utf8.RuneError) || skippedCode(cs.params.EncodeSkip, code) {
					continue
				}

				got := encodeString(t, r, cs.name, text)
				require.Equal(t, text, decodeBytes(t, r, cs.name, got), "code % X", code)
				if utf8.RuneCountInString(text) == 1 && owners[text] == 1 {
					require.Equal(t, code, got, "code % X", code)
				}
			}
		})
	}
}

func skippedCode(ranges []codec.SkipRange, code []byte) bool {
	var addr uint32
	for _, b := range code {
		addr = addr<<8 | uint32(b)
	}
	for _, r := range ranges {
		if r.Contains(addr) {
			return true
		}
	}

	return false
}

func TestDBCS_JapaneseAdditions(t *testing.T) {
	r := newRegistry(t)

	for _, name := range []string{"shiftjis", "eucjp"} {
		require.Equal(t, []byte{0x5C, 0x7E}, encodeString(t, r, name, "¥‾"), name)
		require.Equal(t, "\\~", decodeBytes(t, r, name, []byte{0x5C, 0x7E}), name)
	}
}

func TestDBCS_EncodeSkip(t *testing.T) {
	r := newRegistry(t)

	// Codes ED40-F940 are never produced; the IBM extension code is used.
	require.Equal(t, []byte{0xFB, 0xFC}, encodeString(t, r, "shiftjis", "髙"))
	require.Equal(t, "髙", decodeBytes(t, r, "shiftjis", []byte{0xEE, 0xE0}))

	// HKSCS duplicates of regular Big5 characters encode to the Big5 code.
	require.Equal(t, []byte{0xA4, 0x51, 0xA4, 0xCA}, encodeString(t, r, "big5hkscs", "十卅"))
}

func TestDBCS_Unencodable(t *testing.T) {
	r := newRegistry(t)

	require.Equal(t, []byte("a?b"), encodeString(t, r, "shiftjis", "a한b"))
	require.Equal(t, []byte("?"), encodeString(t, r, "gbk", "😀"))
	require.Equal(t, []byte("?"), encodeString(t, r, "cp949", "ﾊ"))

	star := newRegistry(t, codec.WithDefaultCharSingleByte('*'))
	require.Equal(t, []byte("a*b"), encodeString(t, star, "shiftjis", "a한b"))
}

func TestDBCS_InvalidBytes(t *testing.T) {
	r := newRegistry(t)

	tests := []struct {
		desc string
		name string
		data []byte
		want string
	}{
		// An unassigned trail byte is re-read as the start of the next character.
		{"bad trail", "shiftjis", []byte{0x82, 0x20, 0x41}, "\uFFFD A"},
		{"ascii-range trail", "gbk", []byte{0x81, 0x41, 0x42}, "丄B"},
		{"truncated", "shiftjis", []byte{'a', 0x82}, "a\uFFFD"},
		{"truncated four-byte", "gb18030", []byte{0x81, 0x30}, "\uFFFD0"},
		{"truncated three of four", "gb18030", []byte{0x81, 0x30, 0x81}, "\uFFFD0\uFFFD"},
		{"unassigned lead", "shiftjis", []byte{0xFF, 'x'}, "\uFFFDx"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			require.Equal(t, tt.want, decodeBytes(t, r, tt.name, tt.data))
			require.Equal(t, tt.want, decodeChunks(t, r, tt.name, bytewise(tt.data)...))
		})
	}
}

func TestGB18030_FourByte(t *testing.T) {
	r := newRegistry(t)

	tests := []struct {
		desc string
		data []byte
		want string
	}{
		{"first pointer", []byte{0x81, 0x30, 0x81, 0x30}, "\u0080"},
		{"last bmp pointer", []byte{0x84, 0x31, 0xA4, 0x39}, "\uFFFF"},
		{"gap after bmp", []byte{0x84, 0x31, 0xA5, 0x30}, "\uFFFD"},
		{"first astral", []byte{0x90, 0x30, 0x81, 0x30}, "\U00010000"},
		{"emoji", []byte{0x94, 0x39, 0xFC, 0x36}, "😀"},
		{"last astral", []byte{0xE3, 0x32, 0x9A, 0x35}, "\U0010FFFF"},
		{"past last astral", []byte{0xE3, 0x32, 0x9A, 0x36}, "\uFFFD"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			require.Equal(t, tt.want, decodeBytes(t, r, "gb18030", tt.data))
		})
	}

	require.Equal(t, []byte{0x81, 0x30, 0x81, 0x30}, encodeString(t, r, "gb18030", "\u0080"))
	require.Equal(t, []byte{0xE3, 0x32, 0x9A, 0x35}, encodeString(t, r, "gb18030", "\U0010FFFF"))
	require.Equal(t, []byte{0xA2, 0xE3}, encodeString(t, r, "gb18030", "€"))
	require.Equal(t, []byte{0x80}, encodeString(t, r, "gbk", "€"))
}

func TestBig5HKSCS_Sequences(t *testing.T) {
	r := newRegistry(t)

	tests := []struct {
		text string
		want []byte
	}{
		{"Ê̄", []byte{0x88, 0x62}},
		{"Ê̌", []byte{0x88, 0x64}},
		{"Ê", []byte{0x88, 0x66}},
		{"Êx", []byte{0x88, 0x66, 'x'}},
		{"ê̄x", []byte{0x88, 0xA3, 'x'}},
		{"ÊÊ̄", []byte{0x88, 0x66, 0x88, 0x62}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			require.Equal(t, tt.want, encodeString(t, r, "big5hkscs", tt.text))
			require.Equal(t, tt.text, decodeBytes(t, r, "big5hkscs", tt.want))
		})
	}

	// The combining mark may arrive in a later Write.
	got := encodeChunks(t, r, "big5hkscs", "Ê", "̄", "")
	require.Equal(t, []byte{0x88, 0x62}, got)
}

func TestNewDBCS_Errors(t *testing.T) {
	r := newRegistry(t)

	_, err := newDBCS(codec.Params{EncodingName: "none"}, r, tables.Default())
	require.ErrorIs(t, err, errs.ErrNoTableData)

	_, err = newDBCS(codec.Params{EncodingName: "missing", Tables: []string{"no-such-table"}}, r, tables.Default())
	require.Error(t, err)
}
