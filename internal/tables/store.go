// Package tables stores the compact mapping tables of the multi-byte
// charsets.
//
// Tables are embedded as compressed JSON under data/. The compression is
// taken from the file suffix, each blob is checked against the xxHash64 of
// its uncompressed form recorded in checksums_generated.go, and parsed
// tables are memoised so that codecs sharing a table (cp936, gbk and
// gb18030) parse it once.
package tables

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/arloliu/iconv/compress"
	"github.com/arloliu/iconv/errs"
	"github.com/arloliu/iconv/format"
	"github.com/arloliu/iconv/internal/hash"
	"github.com/arloliu/iconv/internal/logging"
	"github.com/arloliu/iconv/table"
)

//go:generate go run gen/main.go

// Table names of the embedded data.
const (
	ShiftJIS      = "shiftjis"
	EUCJP         = "eucjp"
	CP936         = "cp936"
	GBKAdded      = "gbk-added"
	GB18030Ranges = "gb18030-ranges"
	CP949         = "cp949"
	CP950         = "cp950"
	Big5Added     = "big5-added"
)

//go:embed data/*.json.gz
var embedded embed.FS

// Store loads tables from a file system.
type Store struct {
	fsys      fs.FS
	dir       string
	checksums map[string]uint64

	group  singleflight.Group
	mu     sync.RWMutex
	chunks map[string][]table.Chunk
	ranges map[string]*table.Ranges
}

// NewStore creates a store reading <dir>/<name>.json[.ext] files from fsys.
//
// Parameters:
//   - fsys: file system holding the table blobs
//   - dir: directory inside fsys
//   - checksums: expected xxHash64 of the uncompressed tables; names absent from the map are not verified
func NewStore(fsys fs.FS, dir string, checksums map[string]uint64) *Store {
	return &Store{
		fsys:      fsys,
		dir:       dir,
		checksums: checksums,
		chunks:    make(map[string][]table.Chunk),
		ranges:    make(map[string]*table.Ranges),
	}
}

var defaultStore = sync.OnceValue(func() *Store {
	return NewStore(embedded, "data", checksums)
})

// Default returns the store backed by the embedded tables.
func Default() *Store {
	return defaultStore()
}

// Names lists the tables available in the store.
func (s *Store) Names() ([]string, error) {
	matches, err := fs.Glob(s.fsys, path.Join(s.dir, "*.json*"))
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		_, base := format.CompressionFromName(path.Base(m))
		names = append(names, strings.TrimSuffix(base, ".json"))
	}
	sort.Strings(names)

	return names, nil
}

// Raw returns the uncompressed JSON of the named table.
func (s *Store) Raw(name string) ([]byte, error) {
	file, ct, err := s.locate(name)
	if err != nil {
		return nil, err
	}

	blob, err := fs.ReadFile(s.fsys, file)
	if err != nil {
		return nil, fmt.Errorf("read table %s: %w", name, err)
	}

	codec, err := compress.CreateCodec(ct, name+" table")
	if err != nil {
		return nil, err
	}

	start := time.Now()
	raw, err := codec.Decompress(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errs.ErrMalformedTableData, name, err)
	}

	stats := compress.CompressionStats{
		Algorithm:           ct,
		OriginalSize:        int64(len(raw)),
		CompressedSize:      int64(len(blob)),
		DecompressionTimeNs: time.Since(start).Nanoseconds(),
	}
	logging.Logger().Debug("table loaded",
		zap.String("table", name),
		zap.Stringer("compression", stats.Algorithm),
		zap.Int64("size", stats.OriginalSize),
		zap.Float64("ratio", stats.CompressionRatio()),
		zap.Int64("decompress_ns", stats.DecompressionTimeNs))

	if want, ok := s.checksums[name]; ok {
		if got := hash.Checksum(raw); got != want {
			logging.Logger().Error("table checksum mismatch",
				zap.String("table", name),
				zap.Uint64("want", want),
				zap.Uint64("got", got))

			return nil, fmt.Errorf("%w: %s", errs.ErrTableChecksum, name)
		}
	}

	return raw, nil
}

func (s *Store) locate(name string) (string, format.CompressionType, error) {
	matches, err := fs.Glob(s.fsys, path.Join(s.dir, name+".json*"))
	if err != nil {
		return "", 0, err
	}

	for _, m := range matches {
		ct, base := format.CompressionFromName(path.Base(m))
		if base == name+".json" {
			return m, ct, nil
		}
	}

	return "", 0, fmt.Errorf("%w: %s", errs.ErrNoTableData, name)
}

// Chunks returns the parsed chunk list of the named table.
// The returned slice is shared and must not be modified.
func (s *Store) Chunks(name string) ([]table.Chunk, error) {
	s.mu.RLock()
	cached, ok := s.chunks[name]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	v, err, _ := s.group.Do("chunks:"+name, func() (any, error) {
		raw, err := s.Raw(name)
		if err != nil {
			return nil, err
		}
		chunks, err := table.ParseChunks(raw)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", name, err)
		}

		s.mu.Lock()
		s.chunks[name] = chunks
		s.mu.Unlock()

		return chunks, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]table.Chunk), nil
}

// Ranges returns the parsed GB18030 ranges of the named table.
func (s *Store) Ranges(name string) (*table.Ranges, error) {
	s.mu.RLock()
	cached, ok := s.ranges[name]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	v, err, _ := s.group.Do("ranges:"+name, func() (any, error) {
		raw, err := s.Raw(name)
		if err != nil {
			return nil, err
		}
		rg, err := table.ParseRanges(raw)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", name, err)
		}

		s.mu.Lock()
		s.ranges[name] = rg
		s.mu.Unlock()

		return rg, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*table.Ranges), nil
}
