package encoding

import (
	"github.com/arloliu/iconv/codec"
	"github.com/arloliu/iconv/internal/pool"
	"github.com/arloliu/iconv/internal/units"
)

// base carries the identity shared by all codecs.
type base struct {
	name     string
	bomAware bool
}

func newBase(p codec.Params) base {
	return base{name: p.EncodingName, bomAware: p.BOMAware}
}

func (b base) Name() string   { return b.name }
func (b base) BOMAware() bool { return b.bomAware }

// readUnits converts text to code units in a pooled scratch slice and passes
// them to fn. The slice is only valid during fn.
func readUnits(r *units.Reader, text string, flush bool, fn func(us []uint16)) {
	us, release := pool.GetUnitSlice(len(text) + 1)
	defer release()

	us = r.Append(us, text)
	if flush {
		us = r.Flush(us)
	}
	fn(us)
}

// buildText runs fn over a pooled byte buffer and returns the result as a
// string.
func buildText(fn func(dst []byte) []byte) string {
	bb := pool.GetTextBuffer()
	defer pool.PutTextBuffer(bb)

	bb.B = fn(bb.B)
	if len(bb.B) == 0 {
		return ""
	}

	return bb.String()
}
