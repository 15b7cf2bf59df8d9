package table

import (
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/arloliu/iconv/errs"
)

// Part is one element of a chunk after its start address: either literal
// characters or the length of an increasing run.
type Part struct {
	// Text holds literal code points, with sequence markers left in place.
	Text []rune
	// Run continues an increasing sequence from the previous code point when Text is nil.
	Run int
}

// Chunk is one row of a compact mapping table.
type Chunk struct {
	// Start is the byte sequence address of the first mapped character.
	Start uint32
	Parts []Part
}

// ParseChunks parses a JSON chunk table.
//
// Parameters:
//   - data: JSON array of chunks
//
// Returns:
//   - []Chunk: parsed chunks in table order
//   - error: ErrMalformedTableData if the data does not follow the chunk format
func ParseChunks(data []byte) ([]Chunk, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", errs.ErrMalformedTableData)
	}

	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, fmt.Errorf("%w: top level is not an array", errs.ErrMalformedTableData)
	}

	rows := root.Array()
	chunks := make([]Chunk, 0, len(rows))
	for i, row := range rows {
		chunk, err := parseChunk(row)
		if err != nil {
			return nil, fmt.Errorf("%w: chunk %d: %v", errs.ErrMalformedTableData, i, err)
		}
		chunks = append(chunks, chunk)
	}

	return chunks, nil
}

func parseChunk(row gjson.Result) (Chunk, error) {
	if !row.IsArray() {
		return Chunk{}, fmt.Errorf("not an array")
	}

	elems := row.Array()
	if len(elems) == 0 || elems[0].Type != gjson.String {
		return Chunk{}, fmt.Errorf("missing start address")
	}

	start, err := strconv.ParseUint(elems[0].Str, 16, 32)
	if err != nil {
		return Chunk{}, fmt.Errorf("bad start address %q", elems[0].Str)
	}

	chunk := Chunk{Start: uint32(start), Parts: make([]Part, 0, len(elems)-1)}
	for _, e := range elems[1:] {
		switch e.Type {
		case gjson.String:
			chunk.Parts = append(chunk.Parts, Part{Text: []rune(e.Str)})
		case gjson.Number:
			n := e.Int()
			if n <= 0 || float64(n) != e.Num {
				return Chunk{}, fmt.Errorf("bad run length %s at %x", e.Raw, start)
			}
			chunk.Parts = append(chunk.Parts, Part{Run: int(n)})
		default:
			return Chunk{}, fmt.Errorf("unexpected %s element at %x", e.Type, start)
		}
	}

	return chunk, nil
}
