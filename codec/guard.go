package codec

import "github.com/arloliu/iconv/errs"

// endGuard rejects use of a stream after End.
type endGuard struct {
	ended bool
}

func (g *endGuard) check() error {
	if g.ended {
		return errs.ErrStreamEnded
	}

	return nil
}

type guardedEncoder struct {
	endGuard
	enc Encoder
}

func (g *guardedEncoder) Write(text string) ([]byte, error) {
	if err := g.check(); err != nil {
		return nil, err
	}

	return g.enc.Write(text)
}

func (g *guardedEncoder) End() ([]byte, error) {
	if err := g.check(); err != nil {
		return nil, err
	}
	g.ended = true

	return g.enc.End()
}

type guardedDecoder struct {
	endGuard
	dec Decoder
}

func (g *guardedDecoder) Write(data []byte) (string, error) {
	if err := g.check(); err != nil {
		return "", err
	}

	return g.dec.Write(data)
}

func (g *guardedDecoder) End() (string, error) {
	if err := g.check(); err != nil {
		return "", err
	}
	g.ended = true

	return g.dec.End()
}
