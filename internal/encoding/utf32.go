package encoding

import (
	"github.com/arloliu/iconv/codec"
	"github.com/arloliu/iconv/endian"
	"github.com/arloliu/iconv/internal/units"
)

const utf32DetectBytes = 32

// utf32Codec encodes one code point per 32-bit unit in a fixed byte order.
type utf32Codec struct {
	base
	engine  endian.EndianEngine
	badChar rune
}

func newUTF32(p codec.Params, h codec.Host) (codec.Codec, error) {
	return &utf32Codec{
		base:    newBase(p),
		engine:  endian.GetEngine(p.LittleEndian),
		badChar: h.DefaultCharUnicode(),
	}, nil
}

func (c *utf32Codec) NewEncoder(*codec.Options) (codec.Encoder, error) {
	return &utf32Encoder{engine: c.engine}, nil
}

func (c *utf32Codec) NewDecoder(*codec.Options) (codec.Decoder, error) {
	return &utf32Decoder{engine: c.engine, badChar: c.badChar}, nil
}

// utf32Encoder joins surrogate pairs into code points. A high surrogate at
// the end of a Write is held until the next unit; surrogates that cannot be
// paired are written as their own 32-bit values.
type utf32Encoder struct {
	engine endian.EndianEngine
	reader units.Reader
	high   uint16
}

func (e *utf32Encoder) Write(text string) ([]byte, error) {
	var out []byte
	readUnits(&e.reader, text, false, func(us []uint16) {
		out = make([]byte, 0, len(us)*4)
		for _, u := range us {
			out = e.unit(out, u)
		}
	})

	return out, nil
}

func (e *utf32Encoder) unit(dst []byte, u uint16) []byte {
	if e.high != 0 {
		if !units.IsLowSurrogate(u) {
			dst = e.engine.AppendUint32(dst, uint32(e.high))
		} else {
			dst = e.engine.AppendUint32(dst, uint32(units.Combine(e.high, u)))
			e.high = 0

			return dst
		}
	}

	if units.IsHighSurrogate(u) {
		e.high = u
		return dst
	}
	e.high = 0

	return e.engine.AppendUint32(dst, uint32(u))
}

func (e *utf32Encoder) End() ([]byte, error) {
	var out []byte
	readUnits(&e.reader, "", true, func(us []uint16) {
		for _, u := range us {
			out = e.unit(out, u)
		}
	})
	if e.high != 0 {
		out = e.engine.AppendUint32(out, uint32(e.high))
		e.high = 0
	}

	return out, nil
}

// utf32Decoder reads 4-byte groups, carrying up to three bytes between
// writes. Values outside 0..10FFFF decode to the default character.
type utf32Decoder struct {
	engine   endian.EndianEngine
	badChar  rune
	writer   units.Writer
	overflow [4]byte
	n        int
}

func (d *utf32Decoder) Write(data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}

	return buildText(func(dst []byte) []byte {
		i := 0
		if d.n > 0 {
			for ; i < len(data) && d.n < 4; i++ {
				d.overflow[d.n] = data[i]
				d.n++
			}
			if d.n < 4 {
				return dst
			}
			dst = d.codePoint(dst, d.overflow[:])
			d.n = 0
		}

		for ; i+4 <= len(data); i += 4 {
			dst = d.codePoint(dst, data[i:i+4])
		}
		d.n = copy(d.overflow[:], data[i:])

		return dst
	}), nil
}

func (d *utf32Decoder) codePoint(dst []byte, b []byte) []byte {
	cp := int32(d.engine.Uint32(b))
	if cp < 0 || cp > 0x10FFFF {
		cp = d.badChar
	}

	return d.writer.AppendRune(dst, cp)
}

// End reports a partial group as one undecodable character.
func (d *utf32Decoder) End() (string, error) {
	return buildText(func(dst []byte) []byte {
		if d.n > 0 {
			d.n = 0
			dst = d.writer.AppendRune(dst, d.badChar)
		}

		return d.writer.Flush(dst)
	}), nil
}

// utf32AutoCodec is the byte-order detecting "utf32" codec.
type utf32AutoCodec struct {
	base
	host codec.Host
}

func newUTF32Auto(p codec.Params, h codec.Host) (codec.Codec, error) {
	return &utf32AutoCodec{base: newBase(p), host: h}, nil
}

// NewEncoder writes in the byte order named by the default encoding option,
// UTF-32LE if unset, with a BOM unless WithAddBOM(false) is given.
func (c *utf32AutoCodec) NewEncoder(opts *codec.Options) (codec.Encoder, error) {
	o := opts.Clone()
	if o.AddBOM == nil {
		add := true
		o.AddBOM = &add
	}

	name := o.DefaultEncoding
	if name == "" {
		name = "utf-32le"
	}

	return c.host.Encoder(name, codec.WithOptions(o))
}

func (c *utf32AutoCodec) NewDecoder(opts *codec.Options) (codec.Decoder, error) {
	return newDetectingDecoder(c.host, opts, utf32DetectBytes, detectUTF32), nil
}

// detectUTF32 chooses the byte order of buf from a BOM, or from how many of
// the first 100 groups read as BMP characters minus how many read as
// invalid code points under each order. Ties go to def and then to LE.
func detectUTF32(buf []byte, def string) string {
	if len(buf) >= 4 {
		switch {
		case buf[0] == 0xFF && buf[1] == 0xFE && buf[2] == 0 && buf[3] == 0:
			return "utf-32le"
		case buf[0] == 0 && buf[1] == 0 && buf[2] == 0xFE && buf[3] == 0xFF:
			return "utf-32be"
		}
	}

	var invalidLE, invalidBE, bmpLE, bmpBE int
	for i := 0; i+3 < len(buf) && i/4 < detectMaxUnits; i += 4 {
		b := buf[i : i+4]
		if b[0] != 0 || b[1] > 0x10 {
			invalidBE++
		}
		if b[3] != 0 || b[2] > 0x10 {
			invalidLE++
		}
		if b[0] == 0 && b[1] == 0 && (b[2] != 0 || b[3] != 0) {
			bmpBE++
		}
		if (b[0] != 0 || b[1] != 0) && b[2] == 0 && b[3] == 0 {
			bmpLE++
		}
	}

	switch scoreBE, scoreLE := bmpBE-invalidBE, bmpLE-invalidLE; {
	case scoreBE > scoreLE:
		return "utf-32be"
	case scoreBE < scoreLE:
		return "utf-32le"
	case def != "":
		return def
	default:
		return "utf-32le"
	}
}
