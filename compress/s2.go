package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"
)

// S2Compressor stores a table as an S2 block, a Snappy-compatible format
// with better ratio.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress encodes data with the slowest and smallest S2 setting.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.EncodeBest(nil, data), nil
}

// Decompress checks the size recorded in the block before decoding it.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	size, err := s2.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}
	if size > maxTableSize {
		return nil, fmt.Errorf("s2: table of %d bytes exceeds limit %d", size, maxTableSize)
	}

	return s2.Decode(make([]byte, size), data)
}
