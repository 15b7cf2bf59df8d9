package encoding

import "testing"

func BenchmarkUTF32_Encode(b *testing.B) {
	for _, name := range []string{"utf32le", "utf32be", "utf32"} {
		b.Run(name, func(b *testing.B) {
			benchmarkEncode(b, name, unicodeText)
		})
	}
}

func BenchmarkUTF32_Decode(b *testing.B) {
	for _, name := range []string{"utf32le", "utf32be", "utf32"} {
		b.Run(name, func(b *testing.B) {
			benchmarkDecode(b, name, unicodeText)
		})
	}
}
