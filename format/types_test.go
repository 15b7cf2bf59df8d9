package format

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/iconv/errs"
)

func TestCompressionFromName(t *testing.T) {
	tests := []struct {
		file string
		want CompressionType
		base string
	}{
		{"cp936.json.gz", CompressionGzip, "cp936.json"},
		{"cp936.json.zst", CompressionZstd, "cp936.json"},
		{"cp936.json.s2", CompressionS2, "cp936.json"},
		{"cp936.json.lz4", CompressionLZ4, "cp936.json"},
		{"cp936.json", CompressionNone, "cp936.json"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			got, base := CompressionFromName(tt.file)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.base, base)
			require.Equal(t, tt.file, base+got.Ext())
		})
	}
}

func TestParseCompression(t *testing.T) {
	for _, c := range []CompressionType{CompressionNone, CompressionZstd, CompressionS2, CompressionLZ4, CompressionGzip} {
		got, err := ParseCompression(c.String())
		require.NoError(t, err)
		require.Equal(t, c, got)
	}

	got, err := ParseCompression("ZSTD")
	require.NoError(t, err)
	require.Equal(t, CompressionZstd, got)

	_, err = ParseCompression("brotli")
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
	require.Equal(t, "Unknown", CompressionType(0).String())
}
