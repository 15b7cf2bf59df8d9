package compress

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.CompressorHC{Level: lz4.Level9}
	},
}

// LZ4Compressor stores a table as a single LZ4 block.
//
// A block does not record its decompressed size, so the blob starts with the
// size of the JSON as a uvarint and the block follows. LZ4 has the fastest
// table load of the supported algorithms at the cost of ratio.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress writes the size header followed by a high-compression LZ4 block.
//
// Parameters:
//   - data: table JSON
//
// Returns:
//   - []byte: size header and block (nil if input is empty)
//   - error: compression error if any
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, binary.MaxVarintLen64+lz4.CompressBlockBound(len(data)))
	hdr := binary.PutUvarint(dst, uint64(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.CompressorHC)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[hdr:])
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("lz4: %d bytes are incompressible", len(data))
	}

	return dst[:hdr+n], nil
}

// Decompress reads the size header and expands the block into a buffer of
// exactly that size.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	size, hdr := binary.Uvarint(data)
	if hdr <= 0 {
		return nil, fmt.Errorf("lz4: invalid size header")
	}
	if size > maxTableSize {
		return nil, fmt.Errorf("lz4: table of %d bytes exceeds limit %d", size, maxTableSize)
	}

	buf := make([]byte, size)
	n, err := lz4.UncompressBlock(data[hdr:], buf)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}
	if uint64(n) != size {
		return nil, fmt.Errorf("lz4: expanded to %d bytes, header says %d", n, size)
	}

	return buf, nil
}
