package compress

import (
	"fmt"

	"github.com/arloliu/iconv/errs"
	"github.com/arloliu/iconv/format"
)

// maxTableSize bounds the decompressed size of one table. The largest
// embedded table is well under a megabyte.
const maxTableSize = 16 << 20

// Compressor packs table JSON into a blob. The returned slice is owned by
// the caller; data is not modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor expands a blob back to table JSON. A blob written by another
// algorithm, or a damaged one, yields an error rather than garbage.
//
// Example:
//
//	d := NewGzipCompressor()
//	raw, err := d.Decompress(blob)
//	if err != nil {
//	    return fmt.Errorf("table %s: %w", name, err)
//	}
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec is a Compressor and Decompressor for one algorithm.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats describes one compression or decompression of a table
// blob.
//
// The table loader logs it at debug level and tablepack prints it.
type CompressionStats struct {
	// Algorithm identifies the compression algorithm used
	Algorithm format.CompressionType

	// OriginalSize is the size of the data before compression
	OriginalSize int64

	// CompressedSize is the size of the data after compression
	CompressedSize int64

	// CompressionTimeNs is the time taken to compress the data
	CompressionTimeNs int64

	// DecompressionTimeNs is the time taken to decompress the data
	DecompressionTimeNs int64
}

// CompressionRatio returns compressed size over original size, or 0 for an
// empty table.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the share of the original size saved, in percent.
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// CreateCodec is a factory function that creates a Codec based on the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, LZ4 or Gzip)
//   - target: Description of target usage (for error messages)
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: ErrInvalidCompression for an unknown type
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	case format.CompressionGzip:
		return NewGzipCompressor(), nil
	default:
		return nil, fmt.Errorf("%w for %s: %s", errs.ErrInvalidCompression, target, compressionType)
	}
}
