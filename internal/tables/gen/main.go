//go:build ignore

// Gen regenerates the embedded charset tables.
//
// Multi-byte tables are derived from the WHATWG Encoding Standard indexes and
// the Microsoft code page mappings published by the Unicode Consortium. The
// downloaded sources are cached, so later runs work offline. Single-byte
// charsets are read from gen/sbcs-data.json.
//
// Run it from internal/tables:
//
//	go run gen/main.go [-cache dir]
//
// It writes data/*.json.gz, checksums_generated.go and
// ../encoding/sbcs_data_generated.go.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"go/format"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/arloliu/iconv/compress"
	"github.com/arloliu/iconv/internal/hash"
	"github.com/arloliu/iconv/internal/logging"
)

const (
	header = "// Code generated by internal/tables/gen. DO NOT EDIT.\n\n"

	dataDir      = "data"
	checksumFile = "checksums_generated.go"
	sbcsSource   = "gen/sbcs-data.json"
	sbcsFile     = "../encoding/sbcs_data_generated.go"

	// Increasing runs shorter than this are kept as literal characters.
	minSeqLen = 4
)

const (
	whatwg    = "https://encoding.spec.whatwg.org/"
	microsoft = "https://www.unicode.org/Public/MAPPINGS/VENDORS/MICSFT/WINDOWS/"
)

var sources = map[string]string{
	"big5":     whatwg + "index-big5.txt",
	"gb18030":  whatwg + "index-gb18030.txt",
	"gbRanges": whatwg + "index-gb18030-ranges.txt",
	"eucKR":    whatwg + "index-euc-kr.txt",
	"jis0208":  whatwg + "index-jis0208.txt",
	"jis0212":  whatwg + "index-jis0212.txt",
	"cp936":    microsoft + "CP936.TXT",
	"cp949":    microsoft + "CP949.TXT",
	"cp950":    microsoft + "CP950.TXT",
}

// mapping is a parsed source file: byte address or index pointer to code point.
type mapping map[uint32]rune

// codeMap is the input of generateTable. A value with more than one rune is
// a character sequence.
type codeMap map[uint32][]rune

func main() {
	logger := zap.Must(zap.NewDevelopment())
	logging.SetLogger(logger)

	cache := flag.String("cache", defaultCache(), "directory holding downloaded mapping sources")
	flag.Parse()

	if err := run(context.Background(), *cache); err != nil {
		logger.Fatal("table generation failed", zap.Error(err))
	}
	_ = logger.Sync()
}

func defaultCache() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "source-data"
	}

	return filepath.Join(dir, "iconv-tables")
}

func run(ctx context.Context, cache string) error {
	parsed := make(map[string]mapping, len(sources))
	for name, url := range sources {
		text, err := getFile(ctx, cache, url)
		if err != nil {
			return err
		}
		parsed[name] = parseMapping(text)
	}

	dbcs, err := buildDBCS(parsed)
	if err != nil {
		return err
	}

	sums := make(map[string]uint64, len(dbcs))
	gz := compress.NewGzipCompressor()
	for name, raw := range dbcs {
		blob, err := gz.Compress(raw)
		if err != nil {
			return fmt.Errorf("compress %s: %w", name, err)
		}
		file := filepath.Join(dataDir, name+".json.gz")
		if err := os.WriteFile(file, blob, 0o644); err != nil {
			return err
		}
		sums[name] = hash.Checksum(raw)
		logging.Logger().Info("table written", zap.String("file", file), zap.Int("size", len(raw)))
	}

	if err := writeSource(checksumFile, checksumSource(sums)); err != nil {
		return err
	}

	sbcs, err := sbcsSourceFile(sbcsSource)
	if err != nil {
		return err
	}

	return writeSource(sbcsFile, sbcs)
}

// getFile returns the body of url, downloading it into cache on first use.
func getFile(ctx context.Context, cache, url string) (string, error) {
	file := filepath.Join(cache, path.Base(url))
	if data, err := os.ReadFile(file); err == nil {
		return string(data), nil
	}

	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("GET %s: %w", url, err)
	}

	if err := os.MkdirAll(cache, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(file, data, 0o644); err != nil {
		return "", err
	}
	logging.Logger().Info("source downloaded", zap.String("url", url))

	return string(data), nil
}

// parseMapping reads the two leading columns of a mapping file. Comments
// start with '#'; rows without a code point are unassigned and skipped.
func parseMapping(text string) mapping {
	m := make(mapping)
	for _, line := range strings.Split(text, "\n") {
		line, _, _ = strings.Cut(line, "#")
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		code, err := strconv.ParseUint(fields[0], 0, 32)
		if err != nil {
			continue
		}
		cp, err := strconv.ParseUint(fields[1], 0, 32)
		if err != nil {
			continue
		}
		m[uint32(code)] = rune(cp)
	}

	return m
}

func buildDBCS(src map[string]mapping) (map[string][]byte, error) {
	out := make(map[string][]byte)

	// Big5 entries that differ from cp950, keyed by byte address.
	big5Add := make(codeMap)
	for i := uint32(0x8100); i < 0x10000; i++ {
		trail := i & 0xFF
		if trail < 0x40 || (0x7E < trail && trail < 0xA1) || trail > 0xFE {
			continue
		}
		offset := uint32(0x62)
		if trail < 0x7F {
			offset = 0x40
		}
		pointer := (i>>8-0x81)*157 + trail - offset
		big5, ok := src["big5"][pointer]
		if !ok {
			continue
		}
		if cp, ok := src["cp950"][i]; !ok || cp != big5 {
			big5Add[i] = []rune{big5}
		}
	}
	// Sequences the Big5 decoder produces outside its index.
	big5Add[big5Address(1133)] = []rune{0x00CA, 0x0304}
	big5Add[big5Address(1135)] = []rune{0x00CA, 0x030C}
	big5Add[big5Address(1164)] = []rune{0x00EA, 0x0304}
	big5Add[big5Address(1166)] = []rune{0x00EA, 0x030C}
	out["big5-added"] = chunkJSON(generateTable(big5Add, 2))

	// GB18030 two-byte entries that differ from cp936.
	gbkAdd := make(codeMap)
	for i := uint32(0x8100); i < 0x10000; i++ {
		trail := i & 0xFF
		if trail < 0x40 || trail == 0x7F || trail > 0xFE {
			continue
		}
		offset := uint32(0x41)
		if trail < 0x7F {
			offset = 0x40
		}
		gb, ok := src["gb18030"][(i>>8-0x81)*190+trail-offset]
		if !ok {
			continue
		}
		if cp, ok := src["cp936"][i]; !ok || cp != gb {
			gbkAdd[i] = []rune{gb}
		}
	}
	// GB18030-2005 moved one character to a four-byte code.
	gbkChunks := append(generateTable(gbkAdd, 2), chunk{"8135f437", string(rune(0xE7C7))})
	out["gbk-added"] = chunkJSON(gbkChunks)

	pointers := sortedKeys(src["gbRanges"])
	ranges := struct {
		UChars  []rune   `json:"uChars"`
		GBChars []uint32 `json:"gbChars"`
	}{}
	for _, p := range pointers {
		ranges.UChars = append(ranges.UChars, src["gbRanges"][p])
		ranges.GBChars = append(ranges.GBChars, p)
	}
	raw, err := json.Marshal(ranges)
	if err != nil {
		return nil, err
	}
	out["gb18030-ranges"] = raw

	out["shiftjis"] = chunkJSON(generateTable(shiftJIS(src["jis0208"]), 2))
	out["eucjp"] = chunkJSON(generateTable(eucJP(src["jis0208"], src["jis0212"]), 3))

	checkEUCKR(src["eucKR"], src["cp949"])

	for _, name := range []string{"cp936", "cp949", "cp950"} {
		out[name] = chunkJSON(generateTable(single(src[name]), 2))
	}

	return out, nil
}

func big5Address(pointer uint32) uint32 {
	trail := pointer % 157
	lead := pointer/157 + 0x81
	if trail < 0x3F {
		return lead<<8 | (trail + 0x40)
	}

	return lead<<8 | (trail + 0x62)
}

// shiftJIS follows the WHATWG Shift_JIS decoder, including the EUDC block
// mapped onto the private use area.
func shiftJIS(jis0208 mapping) codeMap {
	m := make(codeMap)
	for i := uint32(0); i <= 0x80; i++ {
		m[i] = []rune{rune(i)}
	}
	for i := uint32(0xA1); i <= 0xDF; i++ {
		m[i] = []rune{rune(0xFF61 + i - 0xA1)}
	}

	for lead := uint32(0x81); lead < 0xFF; lead++ {
		if lead >= 0xA1 && lead <= 0xDF {
			continue
		}
		leadOffset := uint32(0xC1)
		if lead < 0xA0 {
			leadOffset = 0x81
		}
		for trail := uint32(0x40); trail <= 0xFC; trail++ {
			if trail == 0x7F {
				continue
			}
			offset := uint32(0x41)
			if trail < 0x7F {
				offset = 0x40
			}
			pointer := (lead-leadOffset)*188 + trail - offset
			switch cp, ok := jis0208[pointer]; {
			case ok && cp != 0:
				m[lead<<8|trail] = []rune{cp}
			case pointer >= 8836 && pointer <= 10528:
				m[lead<<8|trail] = []rune{rune(0xE000 + pointer - 8836)}
			}
		}
	}

	return m
}

// eucJP follows the WHATWG EUC-JP decoder: JIS X 0201 katakana behind 8E,
// JIS X 0208 in two bytes and JIS X 0212 behind 8F.
func eucJP(jis0208, jis0212 mapping) codeMap {
	m := make(codeMap)
	for i := uint32(0); i < 0x80; i++ {
		m[i] = []rune{rune(i)}
	}
	for i := uint32(0xA1); i <= 0xDF; i++ {
		m[0x8E<<8|i] = []rune{rune(0xFF61 + i - 0xA1)}
	}
	for i := uint32(0xA1); i <= 0xFE; i++ {
		for j := uint32(0xA1); j <= 0xFE; j++ {
			pointer := (i-0xA1)*94 + j - 0xA1
			if cp, ok := jis0208[pointer]; ok {
				m[i<<8|j] = []rune{cp}
			}
			if cp, ok := jis0212[pointer]; ok {
				m[0x8F<<16|i<<8|j] = []rune{cp}
			}
		}
	}

	return m
}

// checkEUCKR reports where the WHATWG EUC-KR index disagrees with cp949.
func checkEUCKR(eucKR, cp949 mapping) {
	mismatches := 0
	for i := uint32(0x8100); i < 0xFF00; i++ {
		trail := i & 0xFF
		cp, ok := rune(0), false
		if trail >= 0x41 && trail <= 0xFE {
			cp, ok = eucKR[(i>>8-0x81)*190+trail-0x41]
		}
		want, wantOK := cp949[i]
		if ok != wantOK || cp != want {
			mismatches++
		}
	}
	if mismatches > 0 {
		logging.Logger().Warn("EUC-KR index differs from cp949", zap.Int("codes", mismatches))
	}
}

func single(m mapping) codeMap {
	out := make(codeMap, len(m))
	for k, v := range m {
		out[k] = []rune{v}
	}

	return out
}

// chunk is one entry of a compact table: a hex start address followed by
// literal strings and lengths of increasing runs.
type chunk []any

// generateTable packs m into chunks. Each run of consecutive addresses
// becomes one chunk; inside it, a code point sequence that keeps increasing
// by one for at least minSeqLen steps is stored as its length.
func generateTable(m codeMap, maxBytes int) []chunk {
	var (
		table  []chunk
		rng    chunk
		block  [][]rune
		seqLen int
	)

	flush := func() {
		if seqLen >= minSeqLen {
			rng = append(rng, arrToStr(block[:len(block)-seqLen]), seqLen)
		} else {
			rng = append(rng, arrToStr(block))
		}
		table = append(table, rng)
		rng = nil
	}

	limit := uint32(1) << (8 * maxBytes)
	for i := uint32(0); i < limit; i++ {
		cur, ok := m[i]
		if !ok {
			if rng != nil {
				flush()
			}
			continue
		}

		prev, prevOK := m[i-1]
		switch {
		case !prevOK:
			rng = chunk{strconv.FormatUint(uint64(i), 16)}
			block = nil
			seqLen = 0
		case len(prev) == 1 && len(cur) == 1 && prev[0]+1 == cur[0]:
			seqLen++
		default:
			if seqLen >= minSeqLen {
				rng = append(rng, arrToStr(block[:len(block)-seqLen]), seqLen)
				block = nil
			}
			seqLen = 0
		}
		block = append(block, cur)
	}
	if rng != nil {
		flush()
	}

	return table
}

// arrToStr joins table values into a chunk string. A sequence is prefixed
// with U+0FFF minus its length beyond two.
func arrToStr(values [][]rune) string {
	var sb strings.Builder
	for _, v := range values {
		if len(v) > 1 {
			sb.WriteRune(rune(0xFFF - (len(v) - 2)))
		}
		for _, r := range v {
			sb.WriteRune(r)
		}
	}

	return sb.String()
}

// chunkJSON writes one chunk per line. Strings are escaped the way
// JavaScript's JSON.stringify does, which leaves non-ASCII text as is.
func chunkJSON(table []chunk) []byte {
	var buf bytes.Buffer
	buf.WriteString("[\n")
	for i, c := range table {
		if i > 0 {
			buf.WriteString(",\n")
		}
		buf.WriteByte('[')
		for j, v := range c {
			if j > 0 {
				buf.WriteByte(',')
			}
			switch v := v.(type) {
			case string:
				writeJSONString(&buf, v)
			case int:
				buf.WriteString(strconv.Itoa(v))
			}
		}
		buf.WriteByte(']')
	}
	buf.WriteString("\n]\n")

	return buf.Bytes()
}

func writeJSONString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(buf, `\u%04x`, r)
			} else {
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte('"')
}

func sortedKeys(m mapping) []uint32 {
	keys := make([]uint32, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	return keys
}

func checksumSource(sums map[string]uint64) []byte {
	names := make([]string, 0, len(sums))
	for name := range sums {
		names = append(names, name)
	}
	slices.Sort(names)

	var buf bytes.Buffer
	buf.WriteString(header + "package tables\n\nvar checksums = map[string]uint64{\n")
	for _, name := range names {
		fmt.Fprintf(&buf, "\t%q: %#016x,\n", name, sums[name])
	}
	buf.WriteString("}\n")

	return buf.Bytes()
}

type sbcsEntry struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
	Chars   string   `json:"chars"`
}

func sbcsSourceFile(file string) ([]byte, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var charsets []sbcsEntry
	if err := json.Unmarshal(data, &charsets); err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	var buf bytes.Buffer
	buf.WriteString(header + "package encoding\n\nvar sbcsCharsets = []sbcsCharset{\n")
	for _, cs := range charsets {
		if n := len([]rune(cs.Chars)); n != 128 && n != 256 {
			return nil, fmt.Errorf("%s: charset %s has %d characters", file, cs.Name, n)
		}
		quoted := make([]string, len(cs.Aliases))
		for i, a := range cs.Aliases {
			quoted[i] = strconv.Quote(a)
		}
		fmt.Fprintf(&buf, "\t{\n\t\tname: %s,\n\t\taliases: []string{%s},\n\t\tchars: %s,\n\t},\n",
			strconv.Quote(cs.Name), strings.Join(quoted, ", "), strconv.QuoteToASCII(cs.Chars))
	}
	buf.WriteString("}\n")

	return buf.Bytes(), nil
}

func writeSource(file string, src []byte) error {
	formatted, err := format.Source(src)
	if err != nil {
		return fmt.Errorf("format %s: %w", file, err)
	}
	if err := os.WriteFile(file, formatted, 0o644); err != nil {
		return err
	}
	logging.Logger().Info("source written", zap.String("file", file))

	return nil
}
