package iconv

import (
	"context"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/arloliu/iconv/codec"
	"github.com/arloliu/iconv/errs"
)

func TestEncodeDecode(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []byte
	}{
		{"UTF-8", "héllo", []byte("héllo")},
		{"Shift_JIS", "日本", []byte{0x93, 0xFA, 0x96, 0x7B}},
		{"windows-1251", "Мир", []byte{0xCC, 0xE8, 0xF0}},
		{"GB18030", "€", []byte{0xA2, 0xE3}},
		{"UTF-16BE", "A", []byte{0x00, 0x41}},
		{"UTF-7", "1 + 1", []byte("1 +- 1")},
		{"hex", "cafe", []byte{0xCA, 0xFE}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.text, tt.name)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Encode(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}

			text, err := Decode(got, tt.name)
			require.NoError(t, err)
			require.Equal(t, tt.text, text)
		})
	}
}

func TestEncode_Unknown(t *testing.T) {
	_, err := Encode("x", "no-such-charset")
	require.ErrorIs(t, err, errs.ErrUnknownEncoding)

	_, err = Decode([]byte("x"), "no-such-charset")
	require.ErrorIs(t, err, errs.ErrUnknownEncoding)

	_, err = GetEncoder("")
	require.ErrorIs(t, err, errs.ErrUnknownEncoding)
}

func TestEncodingExists(t *testing.T) {
	for _, name := range []string{"utf8", "UTF-8", "latin1", "ISO-8859-1:1987", "cp932", "big5", "UCS-2"} {
		require.True(t, EncodingExists(name), name)
	}
	for _, name := range []string{"", "utf-9", "_sbcs", "ebcdic-unknown"} {
		require.False(t, EncodingExists(name), name)
	}
}

func TestGetCodec_SharedByAliases(t *testing.T) {
	names := []string{"Shift_JIS", "sjis", "cp932", "Windows-31J", "ms_kanji"}

	first, err := GetCodec(names[0])
	require.NoError(t, err)
	for _, name := range names[1:] {
		c, err := GetCodec(name)
		require.NoError(t, err)
		require.Same(t, first, c, name)
	}
}

func TestOptions(t *testing.T) {
	data, err := Encode("hi", "utf-16le", WithAddBOM(true))
	require.NoError(t, err)
	require.Equal(t, []byte{0xFF, 0xFE, 'h', 0, 'i', 0}, data)

	stripped := false
	text, err := Decode(data, "utf-16le", WithBOMStripped(func() { stripped = true }))
	require.NoError(t, err)
	require.Equal(t, "hi", text)
	require.True(t, stripped)

	text, err = Decode(data, "utf-16le", WithStripBOM(false))
	require.NoError(t, err)
	require.Equal(t, "\uFEFFhi", text)

	text, err = Decode([]byte{0x4E, 0x2D}, "utf-16", WithDefaultEncoding("utf-16be"))
	require.NoError(t, err)
	require.Equal(t, "中", text)
}

func TestNewRegistry(t *testing.T) {
	reg, err := NewRegistry(codec.WithDefaultCharSingleByte('*'), codec.WithDefaultCharUnicode('?'))
	require.NoError(t, err)

	data, err := reg.Encode("naïve", "ascii")
	require.NoError(t, err)
	require.Equal(t, "na*ve", string(data))

	text, err := reg.Decode([]byte{0xFF}, "cesu8")
	require.NoError(t, err)
	require.Equal(t, "?", text)

	text, err = reg.Decode([]byte{'o', 0, 0, 0, 0, 0, 0x11, 0}, "utf-32le")
	require.NoError(t, err)
	require.Equal(t, "o?", text)

	text, err = reg.Decode([]byte{0x81, '!'}, "shiftjis")
	require.NoError(t, err)
	require.Equal(t, "?!", text)

	// UTF-8 and UCS-2 decoding is done by x/text, which always writes U+FFFD.
	text, err = reg.Decode([]byte{0xFF}, "utf-8")
	require.NoError(t, err)
	require.Equal(t, "\uFFFD", text)

	def, err := Default()
	require.NoError(t, err)
	require.NotSame(t, def, reg)

	_, err = NewRegistry(codec.WithMaxAliasDepth(0))
	require.Error(t, err)
}

func TestStreams(t *testing.T) {
	enc, err := GetEncoder("big5")
	require.NoError(t, err)

	var out []byte
	for _, chunk := range []string{"繁", "體", "Ê", "̄"} {
		b, err := enc.Write(chunk)
		require.NoError(t, err)
		out = append(out, b...)
	}
	b, err := enc.End()
	require.NoError(t, err)
	out = append(out, b...)
	require.Equal(t, []byte{0xC1, 0x63, 0xC5, 0xE9, 0x88, 0x62}, out)

	_, err = enc.Write("x")
	require.ErrorIs(t, err, errs.ErrStreamEnded)

	dec, err := GetDecoder("big5")
	require.NoError(t, err)
	text, err := dec.Write(out[:3])
	require.NoError(t, err)
	require.Equal(t, "繁", text)
	text, err = dec.Write(out[3:])
	require.NoError(t, err)
	require.Equal(t, "體Ê̄", text)
	text, err = dec.End()
	require.NoError(t, err)
	require.Empty(t, text)
}

func TestPreload(t *testing.T) {
	require.NoError(t, Preload(context.Background(), "shiftjis", "gbk", "gb18030", "big5hkscs"))
	require.ErrorIs(t, Preload(context.Background(), "utf8", "nope"), errs.ErrUnknownEncoding)
}

func TestConcurrentUse(t *testing.T) {
	const workers = 16
	text := "中文 😀 €"

	var wg sync.WaitGroup
	results := make([][]byte, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, err := Encode(text, "gb18030")
			if err == nil {
				results[i] = data
			}
		}()
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		require.Equal(t, results[0], results[i])
	}
	require.NotEmpty(t, results[0])
}

func TestSetLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	reg, err := NewRegistry()
	require.NoError(t, err)
	_, err = reg.Resolve("koi8-r")
	require.NoError(t, err)

	entries := logs.FilterMessage("codec resolved").All()
	require.Len(t, entries, 1)
	require.Equal(t, "koi8r", entries[0].ContextMap()["encoding"])
}
