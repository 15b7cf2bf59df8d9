package compress

import (
	"testing"
)

func BenchmarkAllCodecs_Decompress(b *testing.B) {
	data := sampleTable(4096)

	for name, codec := range getAllCodecs() {
		compressed, err := codec.Compress(data)
		if err != nil {
			b.Fatal(err)
		}

		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(data)))
			for b.Loop() {
				if _, err := codec.Decompress(compressed); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkAllCodecs_CompressionRatio(b *testing.B) {
	data := sampleTable(4096)

	for name, codec := range getAllCodecs() {
		b.Run(name, func(b *testing.B) {
			var compressed []byte
			for b.Loop() {
				var err error
				compressed, err = codec.Compress(data)
				if err != nil {
					b.Fatal(err)
				}
			}
			b.ReportMetric(float64(len(compressed))/float64(len(data))*100, "%ratio")
		})
	}
}
