package table

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/arloliu/iconv/errs"
)

// Ranges maps GB18030 four-byte pointers to code points. Both slices are
// ascending; pointer GBChars[i]+k maps to UChars[i]+k until the next entry.
type Ranges struct {
	UChars  []int32
	GBChars []int32
}

// ParseRanges parses a JSON object of the form {"uChars": [...], "gbChars": [...]}.
func ParseRanges(data []byte) (*Ranges, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", errs.ErrMalformedTableData)
	}

	res := gjson.GetManyBytes(data, "uChars", "gbChars")
	u, err := int32s(res[0])
	if err != nil {
		return nil, fmt.Errorf("%w: uChars: %v", errs.ErrMalformedTableData, err)
	}
	g, err := int32s(res[1])
	if err != nil {
		return nil, fmt.Errorf("%w: gbChars: %v", errs.ErrMalformedTableData, err)
	}
	if len(u) != len(g) || len(u) == 0 {
		return nil, fmt.Errorf("%w: uChars and gbChars lengths differ (%d, %d)", errs.ErrMalformedTableData, len(u), len(g))
	}
	for i := 1; i < len(u); i++ {
		if u[i] <= u[i-1] || g[i] <= g[i-1] {
			return nil, fmt.Errorf("%w: ranges not ascending at %d", errs.ErrMalformedTableData, i)
		}
	}

	return &Ranges{UChars: u, GBChars: g}, nil
}

func int32s(r gjson.Result) ([]int32, error) {
	if !r.IsArray() {
		return nil, fmt.Errorf("not an array")
	}

	arr := r.Array()
	out := make([]int32, len(arr))
	for i, v := range arr {
		if v.Type != gjson.Number {
			return nil, fmt.Errorf("element %d is %s", i, v.Type)
		}
		out[i] = int32(v.Int())
	}

	return out, nil
}

// FindIndex returns the index of the last entry of the ascending slice that
// is <= v, or -1 when v is below the first entry.
func FindIndex(table []int32, v int32) int {
	if len(table) == 0 || table[0] > v {
		return -1
	}

	l, r := 0, len(table)
	for l < r-1 {
		mid := l + (r-l+1)>>1
		if table[mid] <= v {
			l = mid
		} else {
			r = mid
		}
	}

	return l
}

// Pointer maps a code point to its four-byte pointer, or -1 if none.
func (rg *Ranges) Pointer(cp int32) int32 {
	idx := FindIndex(rg.UChars, cp)
	if idx < 0 {
		return -1
	}

	return rg.GBChars[idx] + cp - rg.UChars[idx]
}

// CodePoint maps a four-byte pointer to its code point, or -1 if none.
func (rg *Ranges) CodePoint(ptr int32) int32 {
	idx := FindIndex(rg.GBChars, ptr)
	if idx < 0 {
		return -1
	}

	return rg.UChars[idx] + ptr - rg.GBChars[idx]
}
