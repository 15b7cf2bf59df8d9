package encoding

import (
	"encoding/base64"

	"github.com/arloliu/iconv/codec"
	"github.com/arloliu/iconv/internal/units"
)

// utf7Variant holds what differs between UTF-7 (RFC 2152) and the modified
// UTF-7 of IMAP mailbox names (RFC 3501).
type utf7Variant struct {
	shift     byte
	base64    *base64.Encoding
	b64Chars  [256]bool
	imapComma bool
}

var (
	// utf7Direct lists the characters UTF-7 writes as themselves.
	utf7Direct = charSet("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789'(),-./:? \n\r\t")

	utf7Std = &utf7Variant{
		shift:    '+',
		base64:   base64.RawStdEncoding,
		b64Chars: charSet("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"),
	}
	utf7IMAP = &utf7Variant{
		shift:     '&',
		base64:    base64.RawStdEncoding,
		b64Chars:  charSet("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/,"),
		imapComma: true,
	}
)

func charSet(s string) [256]bool {
	var set [256]bool
	for i := 0; i < len(s); i++ {
		set[s[i]] = true
	}

	return set
}

// utf7Codec implements both variants; they share the decoder and differ in
// the shift character, the base64 alphabet and the direct set of the encoder.
type utf7Codec struct {
	base
	variant *utf7Variant
}

func newUTF7(p codec.Params, _ codec.Host) (codec.Codec, error) {
	return &utf7Codec{base: newBase(p), variant: utf7Std}, nil
}

func newUTF7IMAP(p codec.Params, _ codec.Host) (codec.Codec, error) {
	return &utf7Codec{base: newBase(p), variant: utf7IMAP}, nil
}

func (c *utf7Codec) NewEncoder(*codec.Options) (codec.Encoder, error) {
	return &utf7Encoder{variant: c.variant}, nil
}

func (c *utf7Codec) NewDecoder(*codec.Options) (codec.Decoder, error) {
	return &utf7Decoder{variant: c.variant}, nil
}

// utf7Encoder writes runs of non-direct characters as the shift character,
// the base64 of their UTF-16BE form without padding, and '-'.
//
// Encoded bytes are buffered in groups of three units (six bytes, eight
// base64 characters), so output is identical however the input is split.
// A run holding only the shift character itself is written as "+-" ("&-"
// for IMAP).
type utf7Encoder struct {
	variant *utf7Variant
	reader  units.Reader

	inBase64 bool
	runLen   int
	first    uint16
	acc      [6]byte
	accLen   int
}

func (e *utf7Encoder) direct(u uint16) bool {
	if e.variant.imapComma {
		return u >= 0x20 && u <= 0x7E
	}

	return u < 0x80 && utf7Direct[u]
}

func (e *utf7Encoder) Write(text string) ([]byte, error) {
	var out []byte
	readUnits(&e.reader, text, false, func(us []uint16) {
		out = make([]byte, 0, len(us)+len(us)/2+4)
		for _, u := range us {
			out = e.unit(out, u)
		}
	})

	return out, nil
}

func (e *utf7Encoder) unit(dst []byte, u uint16) []byte {
	v := e.variant

	if e.direct(u) {
		dst = e.closeRun(dst)
		dst = append(dst, byte(u))
		if v.imapComma && byte(u) == v.shift {
			dst = append(dst, '-')
		}

		return dst
	}

	if !e.inBase64 {
		e.inBase64 = true
		e.runLen = 0
		e.first = u
		dst = append(dst, v.shift)
	}
	e.runLen++
	e.acc[e.accLen] = byte(u >> 8)
	e.acc[e.accLen+1] = byte(u)
	e.accLen += 2
	if e.accLen == len(e.acc) {
		dst = e.appendBase64(dst, e.acc[:])
		e.accLen = 0
	}

	return dst
}

func (e *utf7Encoder) appendBase64(dst, src []byte) []byte {
	start := len(dst)
	dst = e.variant.base64.AppendEncode(dst, src)
	if e.variant.imapComma {
		for i := start; i < len(dst); i++ {
			if dst[i] == '/' {
				dst[i] = ','
			}
		}
	}

	return dst
}

// closeRun finishes an open base64 run.
func (e *utf7Encoder) closeRun(dst []byte) []byte {
	if !e.inBase64 {
		return dst
	}
	e.inBase64 = false

	if !(e.runLen == 1 && e.first == uint16(e.variant.shift)) && e.accLen > 0 {
		dst = e.appendBase64(dst, e.acc[:e.accLen])
	}
	e.accLen = 0

	return append(dst, '-')
}

func (e *utf7Encoder) End() ([]byte, error) {
	var out []byte
	readUnits(&e.reader, "", true, func(us []uint16) {
		for _, u := range us {
			out = e.unit(out, u)
		}
	})

	return e.closeRun(out), nil
}

// utf7Decoder is a two-state machine. In direct mode bytes are ASCII until
// the shift character. In base64 mode characters accumulate until a byte
// outside the alphabet ends the run; a '-' ending the run is absorbed, any
// other byte is decoded in direct mode. Base64 is decoded in groups of
// eight characters (three units) as they complete, and a trailing high
// surrogate waits in the text writer for its pair.
type utf7Decoder struct {
	variant *utf7Variant
	writer  units.Writer

	inBase64 bool
	runLen   int
	acc      []byte
}

func (d *utf7Decoder) Write(data []byte) (string, error) {
	return buildText(func(dst []byte) []byte {
		v := d.variant

		for _, b := range data {
			if d.inBase64 {
				if v.b64Chars[b] {
					if b == ',' {
						b = '/'
					}
					d.acc = append(d.acc, b)
					d.runLen++
					if len(d.acc) == 8 {
						dst = d.flushBase64(dst)
					}

					continue
				}

				if d.runLen == 0 && b == '-' {
					dst = d.appendASCII(dst, v.shift)
				} else {
					dst = d.flushBase64(dst)
				}
				d.inBase64 = false
				if b == '-' {
					continue
				}
			}

			if b == v.shift {
				d.inBase64 = true
				d.runLen = 0

				continue
			}
			dst = d.appendASCII(dst, b)
		}

		return dst
	}), nil
}

func (d *utf7Decoder) appendASCII(dst []byte, b byte) []byte {
	if b >= 0x80 {
		return d.writer.AppendRune(dst, units.Replacement)
	}

	return d.writer.AppendUnit(dst, uint16(b))
}

// flushBase64 decodes the accumulated characters as UTF-16BE. A lone
// trailing character carries no full byte and an odd trailing byte no full
// unit; both are dropped.
func (d *utf7Decoder) flushBase64(dst []byte) []byte {
	acc := d.acc
	d.acc = d.acc[:0]
	if len(acc)%4 == 1 {
		acc = acc[:len(acc)-1]
	}
	if len(acc) == 0 {
		return dst
	}

	var raw [6]byte
	n, err := base64.RawStdEncoding.Decode(raw[:], acc)
	if err != nil {
		return d.writer.AppendRune(dst, units.Replacement)
	}
	for i := 0; i+1 < n; i += 2 {
		dst = d.writer.AppendUnit(dst, uint16(raw[i])<<8|uint16(raw[i+1]))
	}

	return dst
}

func (d *utf7Decoder) End() (string, error) {
	return buildText(func(dst []byte) []byte {
		if d.inBase64 {
			dst = d.flushBase64(dst)
		}
		d.inBase64 = false
		d.runLen = 0

		return d.writer.Flush(dst)
	}), nil
}
