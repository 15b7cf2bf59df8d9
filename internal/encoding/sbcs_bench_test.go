package encoding

import (
	"strings"
	"testing"
)

var cyrillicText = strings.Repeat("Съешь же ещё этих мягких французских булок, да выпей чаю. ", 64)

func BenchmarkSBCS_Encode(b *testing.B) {
	for _, name := range []string{"windows1251", "koi8r", "cp866", "iso88595"} {
		b.Run(name, func(b *testing.B) {
			benchmarkEncode(b, name, cyrillicText)
		})
	}
}

func BenchmarkSBCS_Decode(b *testing.B) {
	for _, name := range []string{"windows1251", "koi8r", "cp866", "iso88595"} {
		b.Run(name, func(b *testing.B) {
			benchmarkDecode(b, name, cyrillicText)
		})
	}
}

func BenchmarkSBCS_EncodeASCII(b *testing.B) {
	benchmarkEncode(b, "windows1252", strings.Repeat("The quick brown fox jumps over the lazy dog. ", 64))
}
