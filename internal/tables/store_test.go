package tables

import (
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/iconv/compress"
	"github.com/arloliu/iconv/errs"
	"github.com/arloliu/iconv/format"
	"github.com/arloliu/iconv/internal/hash"
)

const sampleChunks = `[
["0","\u0000",127],
["8140","丂丄",3]
]`

const sampleRanges = `{"uChars":[128,165],"gbChars":[0,36]}`

func blob(t *testing.T, ct format.CompressionType, data string) []byte {
	t.Helper()

	codec, err := compress.CreateCodec(ct, "test")
	require.NoError(t, err)
	out, err := codec.Compress([]byte(data))
	require.NoError(t, err)

	return out
}

func TestDefaultStore_AllTablesVerify(t *testing.T) {
	store := Default()

	names, err := store.Names()
	require.NoError(t, err)
	require.ElementsMatch(t, []string{ShiftJIS, EUCJP, CP936, GBKAdded, GB18030Ranges, CP949, CP950, Big5Added}, names)

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			if name == GB18030Ranges {
				rg, err := store.Ranges(name)
				require.NoError(t, err)
				require.NotEmpty(t, rg.UChars)

				return
			}
			chunks, err := store.Chunks(name)
			require.NoError(t, err)
			require.NotEmpty(t, chunks)
		})
	}
}

func TestStore_CompressionBySuffix(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone, format.CompressionGzip, format.CompressionZstd,
		format.CompressionS2, format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			fsys := fstest.MapFS{
				"tables/sample.json" + ct.Ext(): {Data: blob(t, ct, sampleChunks)},
				"tables/ranges.json" + ct.Ext(): {Data: blob(t, ct, sampleRanges)},
			}
			store := NewStore(fsys, "tables", map[string]uint64{
				"sample": hash.Checksum([]byte(sampleChunks)),
			})

			chunks, err := store.Chunks("sample")
			require.NoError(t, err)
			require.Len(t, chunks, 2)
			require.Equal(t, uint32(0x8140), chunks[1].Start)

			rg, err := store.Ranges("ranges")
			require.NoError(t, err)
			require.Equal(t, []int32{0, 36}, rg.GBChars)

			names, err := store.Names()
			require.NoError(t, err)
			require.Equal(t, []string{"ranges", "sample"}, names)
		})
	}
}

func TestStore_ChecksumMismatch(t *testing.T) {
	fsys := fstest.MapFS{
		"d/sample.json": {Data: []byte(sampleChunks)},
	}
	store := NewStore(fsys, "d", map[string]uint64{"sample": 1})

	_, err := store.Chunks("sample")
	require.ErrorIs(t, err, errs.ErrTableChecksum)
}

func TestStore_MissingAndCorrupt(t *testing.T) {
	fsys := fstest.MapFS{
		"d/broken.json.gz": {Data: []byte("not gzip")},
		"d/bad.json":       {Data: []byte(`{"not":"chunks"}`)},
	}
	store := NewStore(fsys, "d", nil)

	_, err := store.Chunks("absent")
	require.ErrorIs(t, err, errs.ErrNoTableData)

	_, err = store.Chunks("broken")
	require.ErrorIs(t, err, errs.ErrMalformedTableData)

	_, err = store.Chunks("bad")
	require.ErrorIs(t, err, errs.ErrMalformedTableData)
}

func TestStore_MemoisesConcurrentLoads(t *testing.T) {
	fsys := fstest.MapFS{
		"d/sample.json.gz": {Data: blob(t, format.CompressionGzip, sampleChunks)},
	}
	store := NewStore(fsys, "d", nil)

	results := make([][]any, 8)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			chunks, err := store.Chunks("sample")
			results[i] = []any{chunks, err}
		}(i)
	}
	wg.Wait()

	first, err := store.Chunks("sample")
	require.NoError(t, err)
	for _, r := range results {
		require.Nil(t, r[1])
		require.Equal(t, first, r[0])
	}
}
