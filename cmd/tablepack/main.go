// Tablepack recompresses the multi-byte charset tables and writes the
// matching checksum source.
//
// Usage:
//
//	tablepack [flags]
//
// The flags are:
//
//	-in dir
//	    Read tables from dir instead of the embedded set.
//	-out dir
//	    Write <name>.json<ext> blobs to dir (required).
//	-c gzip
//	    Compression: none, gzip, zstd, s2 or lz4.
//	-checksums file
//	    Also write a Go source file with the xxHash64 checksums.
//	-pkg tables
//	    Package name of the checksum file.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/arloliu/iconv/compress"
	ftype "github.com/arloliu/iconv/format"
	"github.com/arloliu/iconv/internal/hash"
	"github.com/arloliu/iconv/internal/logging"
	"github.com/arloliu/iconv/internal/tables"
)

type config struct {
	in          string
	out         string
	compression ftype.CompressionType
	checksums   string
	pkg         string
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "tablepack: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (*config, error) {
	fs := flag.NewFlagSet("tablepack", flag.ContinueOnError)
	in := fs.String("in", "", "read tables from this directory instead of the embedded set")
	out := fs.String("out", "", "output directory (required)")
	comp := fs.String("c", "gzip", "compression: none, gzip, zstd, s2 or lz4")
	sums := fs.String("checksums", "", "write a Go checksum file to this path")
	pkg := fs.String("pkg", "tables", "package name of the checksum file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *out == "" {
		return nil, fmt.Errorf("-out is required")
	}

	ct, err := ftype.ParseCompression(*comp)
	if err != nil {
		return nil, err
	}

	return &config{in: *in, out: *out, compression: ct, checksums: *sums, pkg: *pkg}, nil
}

func run(args []string, stdout io.Writer) error {
	cfg, err := parseFlags(args)
	if err != nil {
		return err
	}

	store := tables.Default()
	if cfg.in != "" {
		store = tables.NewStore(os.DirFS(cfg.in), ".", nil)
	}

	names, err := store.Names()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("no tables found")
	}

	codec, err := compress.CreateCodec(cfg.compression, "table blobs")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.out, 0o755); err != nil {
		return err
	}

	sums := make(map[string]uint64, len(names))
	for _, name := range names {
		raw, err := store.Raw(name)
		if err != nil {
			return err
		}

		start := time.Now()
		blob, err := codec.Compress(raw)
		if err != nil {
			return fmt.Errorf("compress %s: %w", name, err)
		}
		stats := compress.CompressionStats{
			Algorithm:         cfg.compression,
			OriginalSize:      int64(len(raw)),
			CompressedSize:    int64(len(blob)),
			CompressionTimeNs: time.Since(start).Nanoseconds(),
		}

		file := filepath.Join(cfg.out, name+".json"+cfg.compression.Ext())
		if err := os.WriteFile(file, blob, 0o644); err != nil {
			return err
		}
		sums[name] = hash.Checksum(raw)

		logging.Logger().Debug("table packed", zap.String("table", name), zap.String("file", file))
		fmt.Fprintf(stdout, "%-16s %8d -> %8d bytes (%.1f%% saved)\n",
			name, stats.OriginalSize, stats.CompressedSize, stats.SpaceSavings())
	}

	if cfg.checksums == "" {
		return nil
	}

	src, err := checksumSource(cfg.pkg, names, sums)
	if err != nil {
		return err
	}

	return os.WriteFile(cfg.checksums, src, 0o644)
}

func checksumSource(pkg string, names []string, sums map[string]uint64) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by tablepack. DO NOT EDIT.\n\npackage %s\n\nvar checksums = map[string]uint64{\n", pkg)
	for _, name := range names {
		fmt.Fprintf(&buf, "\t%q: %#016x,\n", name, sums[name])
	}
	buf.WriteString("}\n")

	return format.Source(buf.Bytes())
}
