// Package host adapts golang.org/x/text transformers to the chunked
// Write/End contract used by the codecs. It backs the conversions that the
// Go ecosystem already implements: UTF-8 validation and UTF-16LE.
package host

import (
	"errors"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Stream runs a transformer over a sequence of chunks. Bytes that the
// transformer cannot consume yet (ErrShortSrc) are carried to the next Write.
type Stream struct {
	t     transform.Transformer
	carry []byte
}

// NewStream wraps t. The transformer is reset before use.
func NewStream(t transform.Transformer) *Stream {
	t.Reset()
	return &Stream{t: t}
}

// NewUTF8Sanitizer returns a stream that copies UTF-8 and replaces each
// ill-formed byte with U+FFFD.
func NewUTF8Sanitizer() *Stream {
	return NewStream(runes.ReplaceIllFormed())
}

// NewUTF16LEEncoder returns a stream converting UTF-8 to UTF-16LE without a BOM.
func NewUTF16LEEncoder() *Stream {
	return NewStream(unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder())
}

// NewUTF16LEDecoder returns a stream converting UTF-16LE to UTF-8. A BOM is
// passed through as U+FEFF; stripping it is left to the caller.
func NewUTF16LEDecoder() *Stream {
	return NewStream(unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder())
}

// Write transforms src and returns the output produced so far.
func (s *Stream) Write(src []byte) ([]byte, error) {
	in := src
	if len(s.carry) > 0 {
		in = append(s.carry, src...)
		s.carry = nil
	}

	out, n, err := run(s.t, in, false)
	if err != nil {
		return nil, err
	}
	if n < len(in) {
		s.carry = append([]byte(nil), in[n:]...)
	}

	return out, nil
}

// End flushes carried bytes with atEOF set and resets the transformer.
func (s *Stream) End() ([]byte, error) {
	out, _, err := run(s.t, s.carry, true)
	s.carry = nil
	s.t.Reset()

	return out, err
}

// Pending returns the number of bytes carried to the next Write.
func (s *Stream) Pending() int {
	return len(s.carry)
}

func run(t transform.Transformer, src []byte, atEOF bool) ([]byte, int, error) {
	dst := make([]byte, len(src)*2+8)
	nDst, nSrc := 0, 0
	for {
		d, n, err := t.Transform(dst[nDst:], src[nSrc:], atEOF)
		nDst += d
		nSrc += n
		switch {
		case err == nil:
			return dst[:nDst], nSrc, nil
		case errors.Is(err, transform.ErrShortDst):
			grown := make([]byte, len(dst)*2+8)
			copy(grown, dst[:nDst])
			dst = grown
		case errors.Is(err, transform.ErrShortSrc) && !atEOF:
			return dst[:nDst], nSrc, nil
		default:
			return nil, nSrc, err
		}
	}
}
