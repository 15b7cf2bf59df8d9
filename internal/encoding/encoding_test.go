package encoding

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/iconv/codec"
	"github.com/arloliu/iconv/errs"
)

func newRegistry(t testing.TB, opts ...codec.RegistryOption) *codec.Registry {
	t.Helper()

	r, err := codec.NewRegistry(Definitions(), opts...)
	require.NoError(t, err)

	return r
}

func encodeString(t *testing.T, r *codec.Registry, name, text string, opts ...codec.Option) []byte {
	t.Helper()

	out, err := r.Encode(text, name, opts...)
	require.NoError(t, err)

	return out
}

func decodeBytes(t *testing.T, r *codec.Registry, name string, data []byte, opts ...codec.Option) string {
	t.Helper()

	out, err := r.Decode(data, name, opts...)
	require.NoError(t, err)

	return out
}

// encodeChunks writes each chunk to one encoder and returns everything it
// produced, End included.
func encodeChunks(t *testing.T, r *codec.Registry, name string, chunks ...string) []byte {
	t.Helper()

	enc, err := r.Encoder(name)
	require.NoError(t, err)

	var out []byte
	for _, c := range chunks {
		b, err := enc.Write(c)
		require.NoError(t, err)
		out = append(out, b...)
	}
	b, err := enc.End()
	require.NoError(t, err)

	return append(out, b...)
}

func decodeChunks(t *testing.T, r *codec.Registry, name string, chunks ...[]byte) string {
	t.Helper()

	dec, err := r.Decoder(name)
	require.NoError(t, err)

	var sb strings.Builder
	for _, c := range chunks {
		s, err := dec.Write(c)
		require.NoError(t, err)
		sb.WriteString(s)
	}
	s, err := dec.End()
	require.NoError(t, err)
	sb.WriteString(s)

	return sb.String()
}

func benchmarkEncode(b *testing.B, name, text string) {
	r := newRegistry(b)
	require.NoError(b, r.Preload(context.Background(), name))

	b.ReportAllocs()
	b.SetBytes(int64(len(text)))
	b.ResetTimer()
	for b.Loop() {
		if _, err := r.Encode(text, name); err != nil {
			b.Fatal(err)
		}
	}
}

func benchmarkDecode(b *testing.B, name, text string) {
	r := newRegistry(b)
	data, err := r.Encode(text, name)
	require.NoError(b, err)

	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for b.Loop() {
		if _, err := r.Decode(data, name); err != nil {
			b.Fatal(err)
		}
	}
}

func bytewise(data []byte) [][]byte {
	chunks := make([][]byte, len(data))
	for i := range data {
		chunks[i] = data[i : i+1]
	}

	return chunks
}

func TestDefinitions_AllNamesResolve(t *testing.T) {
	r := newRegistry(t)

	var names []string
	for _, name := range r.Names() {
		if !strings.HasPrefix(name, "_") {
			names = append(names, name)
		}
	}
	require.NotEmpty(t, names)
	require.NoError(t, r.Preload(context.Background(), names...))

	for _, name := range names {
		c, err := r.Resolve(name)
		require.NoError(t, err, name)
		require.NotEmpty(t, c.Name(), name)

		_, err = c.NewEncoder(&codec.Options{})
		require.NoError(t, err, name)
		_, err = c.NewDecoder(&codec.Options{})
		require.NoError(t, err, name)
	}
}

func TestDefinitions_Names(t *testing.T) {
	r := newRegistry(t)

	tests := []struct {
		name     string
		resolved string
		bomAware bool
	}{
		{"UTF-8", "utf8", true},
		{"unicode-1-1-utf-8", "utf8", true},
		{"CESU-8", "cesu8", true},
		{"UTF-16LE", "ucs2", true},
		{"UCS-2", "ucs2", true},
		{"UTF-16BE", "utf16be", true},
		{"UTF-16", "utf16", false},
		{"UTF-32LE", "utf32le", true},
		{"UCS-4BE", "utf32be", true},
		{"UCS-4", "utf32", false},
		{"UTF-7", "utf7", true},
		{"UTF-7-IMAP", "utf7imap", true},
		{"US-ASCII", "ascii", false},
		{"binary", "binary", false},
		{"Base64", "base64", false},
		{"HEX", "hex", false},
		{"windows-1251", "windows1251", false},
		{"CP1251", "windows1251", false},
		{"ISO-8859-1", "iso88591", false},
		{"KOI8-R", "koi8r", false},
		{"Shift_JIS", "shiftjis", false},
		{"Windows-31J", "shiftjis", false},
		{"EUC-JP", "eucjp", false},
		{"GB2312", "cp936", false},
		{"GBK", "gbk", false},
		{"GB18030", "gb18030", false},
		{"EUC-KR", "cp949", false},
		{"Big5", "big5hkscs", false},
		{"Big5-HKSCS", "big5hkscs", false},
		{"CP950", "cp950", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := r.Resolve(tt.name)
			require.NoError(t, err)
			require.Equal(t, tt.resolved, c.Name())
			require.Equal(t, tt.bomAware, c.BOMAware())
		})
	}
}

func TestDefinitions_Unknown(t *testing.T) {
	r := newRegistry(t)

	for _, name := range []string{"", "utf-9", "sbcs", "_sbcs", "internal"} {
		_, err := r.Resolve(name)
		require.ErrorIs(t, err, errs.ErrUnknownEncoding, name)
	}
}

// Splitting the input at any position must not change the output.
func TestChunkSplitInvariance(t *testing.T) {
	r := newRegistry(t)

	const mixed = "Hello, 世界 😀 ½"
	tests := []struct {
		name string
		text string
	}{
		{"utf8", mixed},
		{"cesu8", mixed},
		{"ucs2", mixed},
		{"utf16be", mixed},
		{"utf16", mixed},
		{"utf32le", mixed},
		{"utf32be", mixed},
		{"utf32", mixed},
		{"utf7", "Hi Mom -☺-! 1 + 1 = 2 日本語 😀"},
		{"utf7imap", "~peter/mail/日本語/台北 & co"},
		{"binary", "café ÿ"},
		{"ascii", "plain text"},
		{"windows1251", "Привет, мир"},
		{"koi8r", "Привет, мир"},
		{"iso88592", "Zażółć gęślą jaźń"},
		{"shiftjis", "こんにちは、日本語テキスト ﾊﾝｶｸ ¥"},
		{"eucjp", "こんにちは日本語 ﾊﾝｶｸ"},
		{"cp936", "你好，世界"},
		{"gbk", "你好，世界 €"},
		{"gb18030", "中文 € ÿ 😀 \u0080"},
		{"cp949", "안녕하세요 한국어"},
		{"cp950", "繁體中文"},
		{"big5hkscs", "Ê̄Ê̌ê̄Ê 繁體中文 Êx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := encodeString(t, r, tt.name, tt.text)
			require.NotEmpty(t, want)

			for i := 0; i <= len(tt.text); i++ {
				got := encodeChunks(t, r, tt.name, tt.text[:i], tt.text[i:])
				require.Equal(t, want, got, "encode split at %d", i)
			}

			text := decodeBytes(t, r, tt.name, want)
			for i := 0; i <= len(want); i++ {
				got := decodeChunks(t, r, tt.name, want[:i], want[i:])
				require.Equal(t, text, got, "decode split at %d", i)
			}
			require.Equal(t, text, decodeChunks(t, r, tt.name, bytewise(want)...))
		})
	}
}

// Text every charset can represent decodes back to itself.
func TestRoundTrip(t *testing.T) {
	r := newRegistry(t)

	tests := []struct {
		name string
		text string
	}{
		{"utf8", "Hello, 世界 😀"},
		{"cesu8", "Hello, 世界 😀"},
		{"ucs2", "Hello, 世界 😀"},
		{"utf16be", "Hello, 世界 😀"},
		{"utf16", "Hello, 世界 😀"},
		{"utf32le", "Hello, 世界 😀"},
		{"utf32be", "Hello, 世界 😀"},
		{"utf32", "Hello, 世界 😀"},
		{"utf7", "Hello, 世界 😀 a+b=c"},
		{"utf7imap", "INBOX/日本語 & more"},
		{"binary", "\u0000\u007f\u0080ÿ"},
		{"windows1252", "€ “smart” quotes, café"},
		{"iso885915", "€ œ Š"},
		{"cp437", "café ░▒▓ ╔═╗"},
		{"cp866", "Привет"},
		{"shiftjis", "日本語テキスト"},
		{"gb18030", "中文 😀 \u0080 \uffff"},
		{"cp949", "한국어"},
		{"big5hkscs", "繁體中文 Ê̄"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := encodeString(t, r, tt.name, tt.text)
			require.Equal(t, tt.text, decodeBytes(t, r, tt.name, encoded))
		})
	}
}
