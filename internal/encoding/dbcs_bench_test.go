package encoding

import (
	"strings"
	"testing"
)

func BenchmarkDBCS_Encode(b *testing.B) {
	tests := []struct {
		name string
		text string
	}{
		{"shiftjis", strings.Repeat("東京の天気は晴れです。ﾊﾝｶｸ ", 64)},
		{"eucjp", strings.Repeat("東京の天気は晴れです。ﾊﾝｶｸ ", 64)},
		{"gbk", strings.Repeat("北京今天天气晴朗。 ", 64)},
		{"cp949", strings.Repeat("서울의 날씨는 맑습니다. ", 64)},
		{"big5hkscs", strings.Repeat("臺北今天天氣晴朗。 ", 64)},
	}

	for _, tt := range tests {
		b.Run(tt.name, func(b *testing.B) {
			benchmarkEncode(b, tt.name, tt.text)
		})
	}
}

func BenchmarkDBCS_Decode(b *testing.B) {
	tests := []struct {
		name string
		text string
	}{
		{"shiftjis", strings.Repeat("東京の天気は晴れです。ﾊﾝｶｸ ", 64)},
		{"eucjp", strings.Repeat("東京の天気は晴れです。ﾊﾝｶｸ ", 64)},
		{"gbk", strings.Repeat("北京今天天气晴朗。 ", 64)},
		{"cp949", strings.Repeat("서울의 날씨는 맑습니다. ", 64)},
		{"big5hkscs", strings.Repeat("臺北今天天氣晴朗。 ", 64)},
	}

	for _, tt := range tests {
		b.Run(tt.name, func(b *testing.B) {
			benchmarkDecode(b, tt.name, tt.text)
		})
	}
}

// Four-byte sequences go through the range table.
func BenchmarkGB18030_FourByte(b *testing.B) {
	text := strings.Repeat("😀 ÿ \u0080 ", 128)

	b.Run("Encode", func(b *testing.B) {
		benchmarkEncode(b, "gb18030", text)
	})
	b.Run("Decode", func(b *testing.B) {
		benchmarkDecode(b, "gb18030", text)
	})
}

func BenchmarkDBCS_DecodeChunked(b *testing.B) {
	r := newRegistry(b)
	data, err := r.Encode(strings.Repeat("東京の天気は晴れです。", 64), "shiftjis")
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for b.Loop() {
		dec, err := r.Decoder("shiftjis")
		if err != nil {
			b.Fatal(err)
		}
		// Odd chunk sizes split most characters.
		for i := 0; i < len(data); i += 7 {
			if _, err := dec.Write(data[i:min(i+7, len(data))]); err != nil {
				b.Fatal(err)
			}
		}
		if _, err := dec.End(); err != nil {
			b.Fatal(err)
		}
	}
}
