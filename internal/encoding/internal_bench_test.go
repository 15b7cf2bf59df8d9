package encoding

import (
	"encoding/base64"
	"encoding/hex"
	"testing"
)

func BenchmarkInternal_Encode(b *testing.B) {
	tests := []struct {
		name string
		text string
	}{
		{"utf8", unicodeText},
		{"cesu8", unicodeText},
		// base64 and hex encoders take text in that form.
		{"base64", base64.StdEncoding.EncodeToString([]byte(unicodeText))},
		{"hex", hex.EncodeToString([]byte(unicodeText))},
	}

	for _, tt := range tests {
		b.Run(tt.name, func(b *testing.B) {
			benchmarkEncode(b, tt.name, tt.text)
		})
	}
}

func BenchmarkInternal_Decode(b *testing.B) {
	tests := []struct {
		name string
		text string
	}{
		{"utf8", unicodeText},
		{"cesu8", unicodeText},
		{"base64", base64.StdEncoding.EncodeToString([]byte(unicodeText))},
		{"hex", hex.EncodeToString([]byte(unicodeText))},
	}

	for _, tt := range tests {
		b.Run(tt.name, func(b *testing.B) {
			benchmarkDecode(b, tt.name, tt.text)
		})
	}
}
