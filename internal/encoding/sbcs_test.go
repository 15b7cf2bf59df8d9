package encoding

import (
	"slices"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
	xencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/arloliu/iconv/codec"
	"github.com/arloliu/iconv/errs"
)

func TestSBCS_MatchesXText(t *testing.T) {
	r := newRegistry(t)

	tests := []struct {
		name   string
		oracle xencoding.Encoding
		text   string
	}{
		{"windows1251", charmap.Windows1251, "Привет, мир! Ёё №"},
		{"windows1252", charmap.Windows1252, "€ “smart” quotes, café…"},
		{"koi8r", charmap.KOI8R, "Съешь же ещё этих мягких булок"},
		{"iso88591", charmap.ISO8859_1, "Ünïcödé café ÿ"},
		{"iso88592", charmap.ISO8859_2, "Zażółć gęślą jaźń"},
		{"iso88597", charmap.ISO8859_7, "Καλημέρα κόσμε"},
		{"cp437", charmap.CodePage437, "café ░▒▓ ╔═╗ ½"},
		{"cp866", charmap.CodePage866, "Привет, мир"},
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

// allBytes returns 00 through FF in order.
func allBytes() []byte {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}

	return data
}

func TestSBCS_EveryByteMatchesXText(t *testing.T) {
	r := newRegistry(t)

	tests := []struct {
		name   string
		oracle *charmap.Charmap
		// Bytes where x/text follows a later revision of the vendor table.
		differs []byte
	}{
		{name: "cp037", oracle: charmap.CodePage037},
		{name: "cp437", oracle: charmap.CodePage437},
		{name: "cp850", oracle: charmap.CodePage850},
		{name: "cp852", oracle: charmap.CodePage852},
		{name: "cp855", oracle: charmap.CodePage855},
		{name: "cp858", oracle: charmap.CodePage858},
		{name: "cp860", oracle: charmap.CodePage860},
		{name: "cp862", oracle: charmap.CodePage862},
		{name: "cp863", oracle: charmap.CodePage863},
		{name: "cp865", oracle: charmap.CodePage865},
		{name: "cp866", oracle: charmap.CodePage866},
		{name: "cp1140", oracle: charmap.CodePage1140},
		{name: "iso88591", oracle: charmap.ISO8859_1},
		{name: "iso88592", oracle: charmap.ISO8859_2},
		{name: "iso88593", oracle: charmap.ISO8859_3},
		{name: "iso88594", oracle: charmap.ISO8859_4},
		{name: "iso88595", oracle: charmap.ISO8859_5},
		{name: "iso88596", oracle: charmap.ISO8859_6},
		{name: "iso88597", oracle: charmap.ISO8859_7},
		{name: "iso88598", oracle: charmap.ISO8859_8},
		{name: "iso88599", oracle: charmap.ISO8859_9},
		{name: "iso885910", oracle: charmap.ISO8859_10},
		{name: "iso885913", oracle: charmap.ISO8859_13},
		{name: "iso885914", oracle: charmap.ISO8859_14},
		{name: "iso885915", oracle: charmap.ISO8859_15},
		{name: "iso885916", oracle: charmap.ISO8859_16},
		{name: "koi8r", oracle: charmap.KOI8R},
		{name: "koi8u", oracle: charmap.KOI8U, differs: []byte{0xAE, 0xBE}},
		{name: "macintosh", oracle: charmap.Macintosh, differs: []byte{0xBD, 0xDB, 0xF0}},
		{name: "maccyrillic", oracle: charmap.MacintoshCyrillic, differs: []byte{0xA2, 0xB6, 0xFF}},
		{name: "windows874", oracle: charmap.Windows874},
		{name: "windows1250", oracle: charmap.Windows1250},
		{name: "windows1251", oracle: charmap.Windows1251},
		{name: "windows1252", oracle: charmap.Windows1252},
		{name: "windows1253", oracle: charmap.Windows1253},
		{name: "windows1254", oracle: charmap.Windows1254},
		{name: "windows1255", oracle: charmap.Windows1255},
		{name: "windows1256", oracle: charmap.Windows1256},
		{name: "windows1257", oracle: charmap.Windows1257},
		{name: "windows1258", oracle: charmap.Windows1258},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []rune(decodeBytes(t, r, tt.name, allBytes()))
			require.Len(t, got, 256)

			for b := range 256 {
				want := tt.oracle.DecodeByte(byte(b))
				// x/text leaves the C1 controls of ISO 8859 unmapped.
				if want == utf8.RuneError {
					continue
				}
				if slices.Contains(tt.differs, byte(b)) {
					require.NotEqual(t, want, got[b], "byte %#02x", b)
					continue
				}
				require.Equal(t, want, got[b], "byte %#02x", b)
			}
		})
	}
}

// Every mapped byte of every charset survives decode then encode, and the
// decoded text survives encode then decode.
func TestSBCS_EveryByteRoundTrip(t *testing.T) {
	r := newRegistry(t)

	for _, cs := range sbcsCharsets {
		t.Run(cs.name, func(t *testing.T) {
			decoded := []rune(decodeBytes(t, r, cs.name, allBytes()))
			require.Len(t, decoded, 256)

			// When two bytes decode to the same character, the higher one is
			// produced by encoding.
			last := make(map[rune]byte)
			for b, c := range decoded {
				if c != utf8.RuneError {
					last[c] = byte(b)
				}
			}

			var text []rune
			var want []byte
			for _, c := range decoded {
				if c == utf8.RuneError {
					continue
				}
				text = append(text, c)
				want = append(want, last[c])
			}

			got := encodeString(t, r, cs.name, string(text))
			require.Equal(t, want, got)
			require.Equal(t, string(text), decodeBytes(t, r, cs.name, got))
		})
	}
}

func TestSBCS_RegionalCharsets(t *testing.T) {
	r := newRegistry(t)

	tests := []struct {
		name string
		b    byte
		want string
	}{
		{"CP808", 0xFD, "€"},
		{"MIK", 0x80, "А"},
		{"ARMSCII-8", 0xB2, "Ա"},
		{"VISCII", 0x02, "Ẳ"},
		{"Georgian-Academy", 0xC0, "ა"},
		{"Georgian-PS", 0xC0, "ა"},
		{"KOI8-RU", 0xAE, "ў"},
		{"MacThai", 0xA1, "ก"},
		{"TCVN", 0xB5, "à"},
		{"ISO646-JP", 0x5C, "¥"},
		{"ISO646-CN", 0x24, "¥"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, decodeBytes(t, r, tt.name, []byte{tt.b}))
			require.Equal(t, []byte{tt.b}, encodeString(t, r, tt.name, tt.want))
		})
	}
}

func TestSBCS_ASCIIBytes(t *testing.T) {
	r := newRegistry(t)

	data := make([]byte, 0x80)
	for i := range data {
		data[i] = byte(i)
	}

	for _, name := range []string{"windows1251", "iso88591", "koi8r", "cp437", "macroman", "ascii"} {
		require.Equal(t, string(data), decodeBytes(t, r, name, data), name)
		require.Equal(t, data, encodeString(t, r, name, string(data)), name)
	}
}

func TestSBCS_Unencodable(t *testing.T) {
	r := newRegistry(t)

	require.Equal(t, []byte("caf?"), encodeString(t, r, "ascii", "café"))
	require.Equal(t, []byte("??"), encodeString(t, r, "windows1251", "日本"))
	// A supplementary character is two code units.
	require.Equal(t, []byte("a??b"), encodeString(t, r, "iso88591", "a😀b"))

	require.Equal(t, "a\uFFFDb", decodeBytes(t, r, "ascii", []byte{'a', 0xE9, 'b'}))
}

func TestSBCS_DefaultCharSingleByte(t *testing.T) {
	r := newRegistry(t, codec.WithDefaultCharSingleByte('*'))

	require.Equal(t, []byte("caf*"), encodeString(t, r, "ascii", "café"))
	require.Equal(t, []byte("*"), encodeString(t, r, "koi8r", "日"))
}

func TestNewSBCS_Errors(t *testing.T) {
	r := newRegistry(t)

	_, err := newSBCS(codec.Params{EncodingName: "empty"}, r)
	require.ErrorIs(t, err, errs.ErrNoTableData)

	_, err = newSBCS(codec.Params{EncodingName: "short", Chars: "abc"}, r)
	require.Error(t, err)
}
