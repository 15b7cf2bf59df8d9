package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/iconv/internal/hash"
	"github.com/arloliu/iconv/internal/tables"
)

func TestRun_Repack(t *testing.T) {
	names, err := tables.Default().Names()
	require.NoError(t, err)

	sums := make(map[string]uint64, len(names))
	for _, name := range names {
		raw, err := tables.Default().Raw(name)
		require.NoError(t, err)
		sums[name] = hash.Checksum(raw)
	}

	for _, comp := range []string{"none", "gzip", "zstd", "s2", "lz4"} {
		t.Run(comp, func(t *testing.T) {
			dir := t.TempDir()
			var out bytes.Buffer
			require.NoError(t, run([]string{"-out", dir, "-c", comp}, &out))
			require.Contains(t, out.String(), "shiftjis")

			store := tables.NewStore(os.DirFS(dir), ".", sums)
			got, err := store.Names()
			require.NoError(t, err)
			require.Equal(t, names, got)

			want, err := tables.Default().Chunks(tables.CP949)
			require.NoError(t, err)
			chunks, err := store.Chunks(tables.CP949)
			require.NoError(t, err)
			require.Equal(t, want, chunks)

			rg, err := store.Ranges(tables.GB18030Ranges)
			require.NoError(t, err)
			require.NotNil(t, rg)
		})
	}
}

func TestRun_FromDirectory(t *testing.T) {
	first := t.TempDir()
	require.NoError(t, run([]string{"-out", first, "-c", "s2"}, &bytes.Buffer{}))

	second := t.TempDir()
	require.NoError(t, run([]string{"-in", first, "-out", second, "-c", "none"}, &bytes.Buffer{}))

	raw, err := os.ReadFile(filepath.Join(second, "eucjp.json"))
	require.NoError(t, err)
	want, err := tables.Default().Raw(tables.EUCJP)
	require.NoError(t, err)
	require.Equal(t, want, raw)
}

func TestRun_Checksums(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "checksums.go")
	require.NoError(t, run([]string{"-out", dir, "-checksums", file, "-pkg", "custom"}, &bytes.Buffer{}))

	src, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Contains(t, string(src), "package custom")
	require.Contains(t, string(src), "DO NOT EDIT")

	raw, err := tables.Default().Raw(tables.Big5Added)
	require.NoError(t, err)
	require.Contains(t, string(src), `"big5-added":`)
	require.Contains(t, string(src), formatSum(hash.Checksum(raw)))
}

func formatSum(v uint64) string {
	var buf bytes.Buffer
	buf.WriteString("0x")
	const digits = "0123456789abcdef"
	for shift := 60; shift >= 0; shift -= 4 {
		buf.WriteByte(digits[(v>>uint(shift))&0xF])
	}

	return buf.String()
}

func TestRun_Errors(t *testing.T) {
	require.Error(t, run(nil, &bytes.Buffer{}))
	require.Error(t, run([]string{"-out", t.TempDir(), "-c", "brotli"}, &bytes.Buffer{}))
	require.Error(t, run([]string{"-in", t.TempDir(), "-out", t.TempDir()}, &bytes.Buffer{}))
}
