package host

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func feed(t *testing.T, s *Stream, chunks ...[]byte) []byte {
	t.Helper()

	var out []byte
	for _, c := range chunks {
		b, err := s.Write(c)
		require.NoError(t, err)
		out = append(out, b...)
	}
	b, err := s.End()
	require.NoError(t, err)

	return append(out, b...)
}

func TestUTF8Sanitizer(t *testing.T) {
	got := feed(t, NewUTF8Sanitizer(), []byte("ok \xff 日本"))
	require.Equal(t, "ok � 日本", string(got))
}

func TestUTF8Sanitizer_SplitRune(t *testing.T) {
	text := []byte("a日b")
	for i := 0; i <= len(text); i++ {
		s := NewUTF8Sanitizer()
		got := feed(t, s, text[:i], text[i:])
		require.Equal(t, "a日b", string(got), "split at %d", i)
	}
}

func TestUTF8Sanitizer_TruncatedAtEnd(t *testing.T) {
	s := NewUTF8Sanitizer()
	out, err := s.Write([]byte("a\xe6\x97"))
	require.NoError(t, err)
	require.Equal(t, "a", string(out))
	require.Equal(t, 2, s.Pending())

	out, err = s.End()
	require.NoError(t, err)
	require.Equal(t, "��", string(out))
	require.Zero(t, s.Pending())
}

func TestUTF16LE_RoundTrip(t *testing.T) {
	text := "Hi 😀 日本"
	encoded := feed(t, NewUTF16LEEncoder(), []byte(text))
	require.Equal(t, []byte{'H', 0, 'i', 0, ' ', 0, 0x3d, 0xd8, 0x00, 0xde, ' ', 0, 0xe5, 0x65, 0x2c, 0x67}, encoded)

	for i := 0; i <= len(encoded); i++ {
		got := feed(t, NewUTF16LEDecoder(), encoded[:i], encoded[i:])
		require.Equal(t, text, string(got), "split at %d", i)
	}
}

func TestUTF16LEDecoder_Malformed(t *testing.T) {
	t.Run("odd trailing byte", func(t *testing.T) {
		got := feed(t, NewUTF16LEDecoder(), []byte{'a', 0, 'b'})
		require.Equal(t, "a�", string(got))
	})

	t.Run("lone surrogate", func(t *testing.T) {
		got := feed(t, NewUTF16LEDecoder(), []byte{0x3d, 0xd8, 'a', 0})
		require.Equal(t, "�a", string(got))
	})

	t.Run("bom passes through", func(t *testing.T) {
		got := feed(t, NewUTF16LEDecoder(), []byte{0xff, 0xfe, 'a', 0})
		require.Equal(t, "\ufeffa", string(got))
	})
}
