package encoding

import (
	"strings"
	"testing"
)

var unicodeText = strings.Repeat("Hello, 世界 😀 Привет ", 64)

func BenchmarkUTF16_Encode(b *testing.B) {
	for _, name := range []string{"ucs2", "utf16be", "utf16"} {
		b.Run(name, func(b *testing.B) {
			benchmarkEncode(b, name, unicodeText)
		})
	}
}

func BenchmarkUTF16_Decode(b *testing.B) {
	for _, name := range []string{"ucs2", "utf16be", "utf16"} {
		b.Run(name, func(b *testing.B) {
			benchmarkDecode(b, name, unicodeText)
		})
	}
}
