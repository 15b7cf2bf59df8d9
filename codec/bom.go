package codec

import "strings"

// BOM is the byte order mark as a character.
const BOM = "\uFEFF"

type prependBOM struct {
	enc  Encoder
	done bool
}

// PrependBOM wraps enc so that the first Write is prefixed with a BOM.
// A stream that is ended without any Write gets no BOM.
func PrependBOM(enc Encoder) Encoder {
	return &prependBOM{enc: enc}
}

func (p *prependBOM) Write(text string) ([]byte, error) {
	if !p.done {
		p.done = true
		text = BOM + text
	}

	return p.enc.Write(text)
}

func (p *prependBOM) End() ([]byte, error) {
	return p.enc.End()
}

type stripBOM struct {
	dec       Decoder
	onStrip   func()
	inspected bool
}

// StripBOM wraps dec so that a BOM at the start of the decoded text is
// removed. The first non-empty result is inspected, whether it comes from
// Write or End; later results pass through untouched. onStrip, when not
// nil, is called if a BOM is removed.
func StripBOM(dec Decoder, onStrip func()) Decoder {
	return &stripBOM{dec: dec, onStrip: onStrip}
}

func (s *stripBOM) Write(data []byte) (string, error) {
	res, err := s.dec.Write(data)
	if err != nil {
		return "", err
	}

	return s.inspect(res), nil
}

func (s *stripBOM) End() (string, error) {
	res, err := s.dec.End()
	if err != nil {
		return "", err
	}

	return s.inspect(res), nil
}

func (s *stripBOM) inspect(res string) string {
	if s.inspected || res == "" {
		return res
	}
	s.inspected = true

	if !strings.HasPrefix(res, BOM) {
		return res
	}
	if s.onStrip != nil {
		s.onStrip()
	}

	return res[len(BOM):]
}
