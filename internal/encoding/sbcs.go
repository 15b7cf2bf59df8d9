package encoding

import (
	"fmt"

	"github.com/arloliu/iconv/codec"
	"github.com/arloliu/iconv/errs"
	"github.com/arloliu/iconv/internal/units"
	"github.com/arloliu/iconv/table"
)

// sbcsCharset describes one single-byte charset. chars holds 128 characters
// for bytes 80-FF over ASCII, or 256 characters for the whole byte range.
type sbcsCharset struct {
	name    string
	aliases []string
	chars   string
}

type sbcsCodec struct {
	base
	table *table.SingleByte
}

func newSBCS(p codec.Params, h codec.Host) (codec.Codec, error) {
	if p.Chars == "" {
		return nil, fmt.Errorf("%w: %s", errs.ErrNoTableData, p.EncodingName)
	}

	t, err := table.NewSingleByte(p.Chars, h.DefaultCharSingleByte())
	if err != nil {
		return nil, fmt.Errorf("charset %s: %w", p.EncodingName, err)
	}

	return &sbcsCodec{base: newBase(p), table: t}, nil
}

func (c *sbcsCodec) NewEncoder(*codec.Options) (codec.Encoder, error) {
	return &sbcsEncoder{table: c.table}, nil
}

func (c *sbcsCodec) NewDecoder(*codec.Options) (codec.Decoder, error) {
	return &sbcsDecoder{table: c.table}, nil
}

// sbcsEncoder maps each code unit independently; a supplementary character
// becomes two substitution bytes.
type sbcsEncoder struct {
	table  *table.SingleByte
	reader units.Reader
}

func (e *sbcsEncoder) Write(text string) ([]byte, error) {
	var out []byte
	readUnits(&e.reader, text, false, func(us []uint16) {
		out = e.encode(us)
	})

	return out, nil
}

func (e *sbcsEncoder) End() ([]byte, error) {
	var out []byte
	readUnits(&e.reader, "", true, func(us []uint16) {
		out = e.encode(us)
	})

	return out, nil
}

func (e *sbcsEncoder) encode(us []uint16) []byte {
	if len(us) == 0 {
		return nil
	}

	out := make([]byte, len(us))
	for i, u := range us {
		out[i] = e.table.Encode(u)
	}

	return out
}

type sbcsDecoder struct {
	table *table.SingleByte
}

func (d *sbcsDecoder) Write(data []byte) (string, error) {
	return buildText(func(dst []byte) []byte {
		var w units.Writer
		for _, b := range data {
			dst = w.AppendUnit(dst, d.table.Decode(b))
		}

		return w.Flush(dst)
	}), nil
}

func (d *sbcsDecoder) End() (string, error) {
	return "", nil
}
