package encoding

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"unicode/utf8"

	"github.com/arloliu/iconv/codec"
	"github.com/arloliu/iconv/errs"
	"github.com/arloliu/iconv/internal/host"
	"github.com/arloliu/iconv/internal/units"
)

// internalCodec covers the conversions provided by the Go runtime and
// golang.org/x/text rather than by tables: UTF-8, CESU-8, UCS-2 (UTF-16LE),
// binary (Latin-1 truncation), Base64 and hex.
type internalCodec struct {
	base
	badChar rune
}

func newInternal(p codec.Params, h codec.Host) (codec.Codec, error) {
	switch p.EncodingName {
	case "utf8", "cesu8", "ucs2", "binary", "base64", "hex":
	default:
		return nil, fmt.Errorf("%w: no internal codec for %q", errs.ErrUnknownEncoding, p.EncodingName)
	}

	return &internalCodec{base: newBase(p), badChar: h.DefaultCharUnicode()}, nil
}

func (c *internalCodec) NewEncoder(*codec.Options) (codec.Encoder, error) {
	switch c.name {
	case "utf8":
		return &utf8Encoder{}, nil
	case "cesu8":
		return &cesu8Encoder{}, nil
	case "ucs2":
		return &hostEncoder{host.NewUTF16LEEncoder()}, nil
	case "binary":
		return &binaryEncoder{}, nil
	case "base64":
		return &base64Encoder{}, nil
	default:
		return &hexEncoder{half: -1}, nil
	}
}

func (c *internalCodec) NewDecoder(*codec.Options) (codec.Decoder, error) {
	switch c.name {
	case "utf8":
		return &hostDecoder{host.NewUTF8Sanitizer()}, nil
	case "cesu8":
		return &cesu8Decoder{badChar: c.badChar}, nil
	case "ucs2":
		return &hostDecoder{host.NewUTF16LEDecoder()}, nil
	case "binary":
		return binaryDecoder{}, nil
	case "base64":
		return &base64Decoder{}, nil
	default:
		return hexDecoder{}, nil
	}
}

type hostEncoder struct {
	stream *host.Stream
}

func (e *hostEncoder) Write(text string) ([]byte, error) { return e.stream.Write([]byte(text)) }
func (e *hostEncoder) End() ([]byte, error)              { return e.stream.End() }

type hostDecoder struct {
	stream *host.Stream
}

func (d *hostDecoder) Write(data []byte) (string, error) {
	out, err := d.stream.Write(data)
	return string(out), err
}

func (d *hostDecoder) End() (string, error) {
	out, err := d.stream.End()
	return string(out), err
}

// utf8Encoder passes text through the code unit reader and writer so that
// surrogate halves written in separate chunks are joined and unpaired ones
// become U+FFFD.
type utf8Encoder struct {
	reader units.Reader
	writer units.Writer
}

func (e *utf8Encoder) Write(text string) ([]byte, error) {
	var out []byte
	readUnits(&e.reader, text, false, func(us []uint16) {
		out = make([]byte, 0, len(text))
		for _, u := range us {
			out = e.writer.AppendUnit(out, u)
		}
	})

	return out, nil
}

func (e *utf8Encoder) End() ([]byte, error) {
	var out []byte
	readUnits(&e.reader, "", true, func(us []uint16) {
		for _, u := range us {
			out = e.writer.AppendUnit(out, u)
		}
	})

	return e.writer.Flush(out), nil
}

// cesu8Encoder writes every UTF-16 code unit, surrogates included, as a
// UTF-8 sequence of at most three bytes.
type cesu8Encoder struct {
	reader units.Reader
}

func (e *cesu8Encoder) Write(text string) ([]byte, error) {
	var out []byte
	readUnits(&e.reader, text, false, func(us []uint16) {
		out = appendCESU8(make([]byte, 0, len(text)+len(text)/2), us)
	})

	return out, nil
}

func (e *cesu8Encoder) End() ([]byte, error) {
	var out []byte
	readUnits(&e.reader, "", true, func(us []uint16) {
		out = appendCESU8(nil, us)
	})

	return out, nil
}

func appendCESU8(dst []byte, us []uint16) []byte {
	for _, u := range us {
		switch {
		case u < 0x80:
			dst = append(dst, byte(u))
		case u < 0x800:
			dst = append(dst, 0xC0|byte(u>>6), 0x80|byte(u&0x3F))
		default:
			dst = append(dst, 0xE0|byte(u>>12), 0x80|byte(u>>6&0x3F), 0x80|byte(u&0x3F))
		}
	}

	return dst
}

// cesu8Decoder accepts sequences of up to three bytes, rejects overlong
// forms except the modified UTF-8 NUL (C0 80), and pairs the decoded
// surrogates.
type cesu8Decoder struct {
	badChar rune
	writer  units.Writer

	acc       uint32
	contBytes int
	accBytes  int
}

func (d *cesu8Decoder) Write(data []byte) (string, error) {
	return buildText(func(dst []byte) []byte {
		for _, b := range data {
			if b&0xC0 != 0x80 {
				if d.contBytes > 0 {
					dst = d.writer.AppendRune(dst, d.badChar)
					d.contBytes = 0
				}

				switch {
				case b < 0x80:
					dst = d.writer.AppendUnit(dst, uint16(b))
				case b < 0xE0:
					d.acc, d.contBytes, d.accBytes = uint32(b&0x1F), 1, 1
				case b < 0xF0:
					d.acc, d.contBytes, d.accBytes = uint32(b&0x0F), 2, 1
				default:
					dst = d.writer.AppendRune(dst, d.badChar)
				}

				continue
			}

			if d.contBytes == 0 {
				dst = d.writer.AppendRune(dst, d.badChar)
				continue
			}

			d.acc = d.acc<<6 | uint32(b&0x3F)
			d.contBytes--
			d.accBytes++
			if d.contBytes > 0 {
				continue
			}

			switch {
			case d.accBytes == 2 && d.acc < 0x80 && d.acc > 0:
				dst = d.writer.AppendRune(dst, d.badChar)
			case d.accBytes == 3 && d.acc < 0x800:
				dst = d.writer.AppendRune(dst, d.badChar)
			default:
				dst = d.writer.AppendUnit(dst, uint16(d.acc))
			}
		}

		return dst
	}), nil
}

func (d *cesu8Decoder) End() (string, error) {
	return buildText(func(dst []byte) []byte {
		if d.contBytes > 0 {
			d.contBytes = 0
			dst = d.writer.AppendRune(dst, d.badChar)
		}

		return d.writer.Flush(dst)
	}), nil
}

// binaryEncoder keeps the low byte of every code unit.
type binaryEncoder struct {
	reader units.Reader
}

func (e *binaryEncoder) Write(text string) ([]byte, error) {
	var out []byte
	readUnits(&e.reader, text, false, func(us []uint16) {
		out = appendLowBytes(make([]byte, 0, len(us)), us)
	})

	return out, nil
}

func (e *binaryEncoder) End() ([]byte, error) {
	var out []byte
	readUnits(&e.reader, "", true, func(us []uint16) {
		out = appendLowBytes(nil, us)
	})

	return out, nil
}

func appendLowBytes(dst []byte, us []uint16) []byte {
	for _, u := range us {
		dst = append(dst, byte(u))
	}

	return dst
}

type binaryDecoder struct{}

func (binaryDecoder) Write(data []byte) (string, error) {
	return buildText(func(dst []byte) []byte {
		for _, b := range data {
			dst = utf8.AppendRune(dst, rune(b))
		}

		return dst
	}), nil
}

func (binaryDecoder) End() (string, error) { return "", nil }

// base64Encoder parses Base64 text into bytes. Both the standard and the
// URL-safe alphabets are accepted; padding, whitespace and other characters
// are ignored. Characters are decoded in complete groups of four, the
// remainder at End.
type base64Encoder struct {
	pending []byte
}

func (e *base64Encoder) Write(text string) ([]byte, error) {
	for i := 0; i < len(text); i++ {
		if c, ok := base64Char(text[i]); ok {
			e.pending = append(e.pending, c)
		}
	}

	n := len(e.pending) &^ 3
	if n == 0 {
		return nil, nil
	}

	out, err := base64.RawStdEncoding.AppendDecode(nil, e.pending[:n])
	if err != nil {
		return nil, err
	}
	e.pending = append(e.pending[:0], e.pending[n:]...)

	return out, nil
}

func (e *base64Encoder) End() ([]byte, error) {
	rest := e.pending
	e.pending = nil
	if len(rest)%4 == 1 {
		rest = rest[:len(rest)-1]
	}
	if len(rest) == 0 {
		return nil, nil
	}

	return base64.RawStdEncoding.AppendDecode(nil, rest)
}

func base64Char(c byte) (byte, bool) {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '+', c == '/':
		return c, true
	case c == '-':
		return '+', true
	case c == '_':
		return '/', true
	default:
		return 0, false
	}
}

// base64Decoder writes bytes as padded standard Base64, carrying up to two
// bytes so that chunk boundaries do not introduce padding.
type base64Decoder struct {
	pending []byte
}

func (d *base64Decoder) Write(data []byte) (string, error) {
	buf := append(d.pending, data...)
	n := len(buf) - len(buf)%3
	out := base64.StdEncoding.EncodeToString(buf[:n])
	d.pending = append([]byte(nil), buf[n:]...)

	return out, nil
}

func (d *base64Decoder) End() (string, error) {
	out := base64.StdEncoding.EncodeToString(d.pending)
	d.pending = nil

	return out, nil
}

// hexEncoder parses pairs of hex digits. Parsing stops for the rest of the
// stream at the first character that is not a hex digit, and an odd
// trailing digit is dropped.
type hexEncoder struct {
	half    int
	stopped bool
}

func (e *hexEncoder) Write(text string) ([]byte, error) {
	out := make([]byte, 0, len(text)/2+1)
	for i := 0; i < len(text) && !e.stopped; i++ {
		v, ok := hexValue(text[i])
		if !ok {
			e.stopped = true
			break
		}
		if e.half < 0 {
			e.half = v
			continue
		}
		out = append(out, byte(e.half<<4|v))
		e.half = -1
	}

	return out, nil
}

func (e *hexEncoder) End() ([]byte, error) {
	e.half = -1
	return nil, nil
}

func hexValue(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	default:
		return 0, false
	}
}

type hexDecoder struct{}

func (hexDecoder) Write(data []byte) (string, error) { return hex.EncodeToString(data), nil }
func (hexDecoder) End() (string, error)              { return "", nil }
