// Package format holds the small enumerations shared by the table storage
// and compression layers.
package format

import (
	"fmt"
	"strings"

	"github.com/arloliu/iconv/errs"
)

// CompressionType identifies the compression of a stored table blob.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 block compression.
	CompressionGzip CompressionType = 0x5 // CompressionGzip represents gzip (RFC 1952) compression.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionGzip:
		return "Gzip"
	default:
		return "Unknown"
	}
}

// Ext returns the file suffix used for table blobs stored with this compression,
// including the leading dot. CompressionNone has an empty suffix.
func (c CompressionType) Ext() string {
	switch c {
	case CompressionZstd:
		return ".zst"
	case CompressionS2:
		return ".s2"
	case CompressionLZ4:
		return ".lz4"
	case CompressionGzip:
		return ".gz"
	default:
		return ""
	}
}

// CompressionFromName derives the compression type from a blob file name.
//
// Returns:
//   - CompressionType: compression matching the file suffix, CompressionNone if no suffix matches
//   - string: the file name with the compression suffix removed
func CompressionFromName(name string) (CompressionType, string) {
	for _, c := range []CompressionType{CompressionGzip, CompressionZstd, CompressionS2, CompressionLZ4} {
		if base, ok := strings.CutSuffix(name, c.Ext()); ok {
			return c, base
		}
	}

	return CompressionNone, name
}

// ParseCompression returns the compression type named by s ("none", "zstd",
// "s2", "lz4" or "gzip"), ignoring case.
func ParseCompression(s string) (CompressionType, error) {
	for _, c := range []CompressionType{CompressionNone, CompressionZstd, CompressionS2, CompressionLZ4, CompressionGzip} {
		if strings.EqualFold(s, c.String()) {
			return c, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", errs.ErrInvalidCompression, s)
}
