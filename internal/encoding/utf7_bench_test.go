package encoding

import (
	"strings"
	"testing"
)

func BenchmarkUTF7_Encode(b *testing.B) {
	text := strings.Repeat("Hi Mom -☺-! 日本語 ", 64)

	b.Run("utf7", func(b *testing.B) {
		benchmarkEncode(b, "utf7", text)
	})
	b.Run("utf7imap", func(b *testing.B) {
		benchmarkEncode(b, "utf7imap", text)
	})
}

func BenchmarkUTF7_Decode(b *testing.B) {
	text := strings.Repeat("Hi Mom -☺-! 日本語 ", 64)

	b.Run("utf7", func(b *testing.B) {
		benchmarkDecode(b, "utf7", text)
	})
	b.Run("utf7imap", func(b *testing.B) {
		benchmarkDecode(b, "utf7imap", text)
	})
}
