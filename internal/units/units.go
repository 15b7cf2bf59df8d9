// Package units converts between Go strings and UTF-16 code units for the
// codecs whose state machines are defined on code units (single-byte,
// multi-byte, UTF-7, UTF-32 and CESU-8).
//
// Reader accepts text in arbitrary chunks. A UTF-8 sequence split across two
// chunks is carried to the next call, and the generalized UTF-8 form of a
// surrogate (ED A0..BF xx) yields the lone surrogate unit. Other ill-formed
// bytes yield U+FFFD.
//
// Writer is the inverse. It pairs surrogates across calls and writes any
// surrogate that cannot be paired as U+FFFD, so its output is always valid
// UTF-8.
package units

import (
	"unicode/utf8"
)

const (
	Replacement = 0xFFFD

	surrHighStart = 0xD800
	surrLowStart  = 0xDC00
	surrEnd       = 0xE000
)

// IsHighSurrogate reports whether u is a UTF-16 lead surrogate.
func IsHighSurrogate(u uint16) bool { return u >= surrHighStart && u < surrLowStart }

// IsLowSurrogate reports whether u is a UTF-16 trail surrogate.
func IsLowSurrogate(u uint16) bool { return u >= surrLowStart && u < surrEnd }

// Combine joins a surrogate pair into a supplementary code point.
func Combine(high, low uint16) rune {
	return 0x10000 + (rune(high)-surrHighStart)<<10 + (rune(low) - surrLowStart)
}

// Split splits a supplementary code point into its surrogate pair.
func Split(r rune) (high, low uint16) {
	r -= 0x10000
	return uint16(surrHighStart + (r>>10)&0x3FF), uint16(surrLowStart + r&0x3FF)
}

// AppendRune appends the UTF-16 encoding of r to dst. Values above U+10FFFF
// are appended as U+FFFD.
func AppendRune(dst []uint16, r rune) []uint16 {
	switch {
	case r < 0:
		return append(dst, Replacement)
	case r < 0x10000:
		return append(dst, uint16(r))
	case r <= utf8.MaxRune:
		hi, lo := Split(r)
		return append(dst, hi, lo)
	default:
		return append(dst, Replacement)
	}
}

// decode decodes one generalized UTF-8 sequence from the start of s.
// short is set when s holds a valid but incomplete sequence prefix.
func decode(s string) (r rune, size int, short bool) {
	b0 := s[0]
	var need int
	lo, hi := byte(0x80), byte(0xBF)
	switch {
	case b0 < 0x80:
		return rune(b0), 1, false
	case b0 >= 0xC2 && b0 <= 0xDF:
		need = 1
	case b0 == 0xE0:
		need, lo = 2, 0xA0
	case b0 >= 0xE1 && b0 <= 0xEF:
		need = 2
	case b0 == 0xF0:
		need, lo = 3, 0x90
	case b0 >= 0xF1 && b0 <= 0xF3:
		need = 3
	case b0 == 0xF4:
		need, hi = 3, 0x8F
	default:
		return Replacement, 1, false
	}

	r = rune(b0) & (0x3F >> need)
	for i := 1; i <= need; i++ {
		if i >= len(s) {
			return 0, 0, true
		}
		c := s[i]
		if c < lo || c > hi {
			return Replacement, 1, false
		}
		lo, hi = 0x80, 0xBF
		r = r<<6 | rune(c&0x3F)
	}

	return r, need + 1, false
}

// Reader converts UTF-8 chunks to UTF-16 code units.
// The zero value is ready to use.
type Reader struct {
	pending [utf8.UTFMax]byte
	n       int
}

// Append converts text to code units appended to dst. An incomplete sequence
// at the end of text is held until the next call.
func (r *Reader) Append(dst []uint16, text string) []uint16 {
	i := 0
	if r.n > 0 {
		head := string(r.pending[:r.n]) + text[:min(len(text), utf8.UTFMax)]
		j := 0
		for j < r.n {
			cp, size, short := decode(head[j:])
			if short {
				r.n = copy(r.pending[:], head[j:])
				return dst
			}
			dst = AppendRune(dst, cp)
			j += size
		}
		i = j - r.n
		r.n = 0
	}

	for i < len(text) {
		if c := text[i]; c < utf8.RuneSelf {
			dst = append(dst, uint16(c))
			i++

			continue
		}
		cp, size, short := decode(text[i:])
		if short {
			r.n = copy(r.pending[:], text[i:])
			break
		}
		dst = AppendRune(dst, cp)
		i += size
	}

	return dst
}

// Flush appends U+FFFD for a held incomplete sequence and resets the reader.
func (r *Reader) Flush(dst []uint16) []uint16 {
	if r.n > 0 {
		r.n = 0
		dst = append(dst, Replacement)
	}

	return dst
}

// Pending reports whether an incomplete sequence is being held.
func (r *Reader) Pending() bool {
	return r.n > 0
}

// Units converts a complete string to code units.
func Units(text string) []uint16 {
	var r Reader
	out := r.Append(make([]uint16, 0, len(text)), text)

	return r.Flush(out)
}

// Writer converts UTF-16 code units to UTF-8.
// The zero value is ready to use.
type Writer struct {
	lead uint16
}

// AppendUnit appends the UTF-8 form of u to dst. A lead surrogate is held
// until the following unit shows whether it forms a pair.
func (w *Writer) AppendUnit(dst []byte, u uint16) []byte {
	if w.lead != 0 {
		lead := w.lead
		w.lead = 0
		if IsLowSurrogate(u) {
			return utf8.AppendRune(dst, Combine(lead, u))
		}
		dst = utf8.AppendRune(dst, Replacement)
	}

	switch {
	case IsHighSurrogate(u):
		w.lead = u
		return dst
	case IsLowSurrogate(u):
		return utf8.AppendRune(dst, Replacement)
	default:
		return utf8.AppendRune(dst, rune(u))
	}
}

// AppendRune appends r to dst. Supplementary code points are routed through
// their surrogate pair so that pairing state stays consistent.
func (w *Writer) AppendRune(dst []byte, r rune) []byte {
	if r >= 0x10000 && r <= utf8.MaxRune {
		hi, lo := Split(r)
		dst = w.AppendUnit(dst, hi)

		return w.AppendUnit(dst, lo)
	}
	if r < 0 || r > utf8.MaxRune {
		r = Replacement
	}

	return w.AppendUnit(dst, uint16(r))
}

// Flush writes U+FFFD for a held lead surrogate and resets the writer.
func (w *Writer) Flush(dst []byte) []byte {
	if w.lead != 0 {
		w.lead = 0
		dst = utf8.AppendRune(dst, Replacement)
	}

	return dst
}

// String converts complete code units to a string.
func String(units []uint16) string {
	var w Writer
	out := make([]byte, 0, len(units)*3)
	for _, u := range units {
		out = w.AppendUnit(out, u)
	}

	return string(w.Flush(out))
}
