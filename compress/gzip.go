package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"
)

var gzipReaderPool sync.Pool

// GzipCompressor provides gzip compression backed by klauspost/compress.
//
// Gzip is the format the embedded mapping tables ship in, since it can be
// produced by any build tooling.
type GzipCompressor struct{}

var _ Codec = (*GzipCompressor)(nil)

// NewGzipCompressor creates a new gzip compressor.
func NewGzipCompressor() GzipCompressor {
	return GzipCompressor{}
}

// Compress compresses the input data using gzip at best compression.
//
// Parameters:
//   - data: Input data to compress
//
// Returns:
//   - []byte: Gzip stream (nil if input is empty)
//   - error: Compression error if any
func (c GzipCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decompress decompresses a gzip stream.
//
// Uses a pooled gzip.Reader, reset onto each input.
func (c GzipCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var (
		r   *gzip.Reader
		err error
	)
	if pooled, ok := gzipReaderPool.Get().(*gzip.Reader); ok {
		r = pooled
		err = r.Reset(bytes.NewReader(data))
	} else {
		r, err = gzip.NewReader(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("gzip decompression failed: %w", err)
	}
	defer gzipReaderPool.Put(r)

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("gzip decompression failed: %w", err)
	}

	return out, nil
}
