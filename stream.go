package iconv

import (
	"errors"
	"io"

	"github.com/arloliu/iconv/codec"
	"github.com/arloliu/iconv/errs"
)

const readChunkSize = 32 * 1024

// EncodeWriter encodes UTF-8 text written to it and writes the result to an
// underlying writer.
type EncodeWriter struct {
	w   io.Writer
	enc codec.Encoder
}

var _ io.WriteCloser = (*EncodeWriter)(nil)

// NewEncodeWriter returns a writer that encodes text into the named encoding.
// Close flushes pending state; it does not close w.
func NewEncodeWriter(w io.Writer, name string, opts ...Option) (*EncodeWriter, error) {
	enc, err := GetEncoder(name, opts...)
	if err != nil {
		return nil, err
	}

	return &EncodeWriter{w: w, enc: enc}, nil
}

// Write encodes p, which is UTF-8 text. A multi-byte character split across
// calls is joined before encoding.
func (ew *EncodeWriter) Write(p []byte) (int, error) {
	out, err := ew.enc.Write(string(p))
	if err != nil {
		return 0, err
	}
	if len(out) > 0 {
		if _, err := ew.w.Write(out); err != nil {
			return 0, err
		}
	}

	return len(p), nil
}

// Close writes whatever the encoder still holds.
func (ew *EncodeWriter) Close() error {
	out, err := ew.enc.End()
	if err != nil {
		return err
	}
	if len(out) == 0 {
		return nil
	}
	_, err = ew.w.Write(out)

	return err
}

// DecodeReader reads bytes in some encoding from an underlying reader and
// returns them as UTF-8 text.
type DecodeReader struct {
	r   io.Reader
	dec codec.Decoder
	buf []byte

	pending string
	err     error
}

var _ io.Reader = (*DecodeReader)(nil)

// NewDecodeReader returns a reader that decodes r from the named encoding.
func NewDecodeReader(r io.Reader, name string, opts ...Option) (*DecodeReader, error) {
	dec, err := GetDecoder(name, opts...)
	if err != nil {
		return nil, err
	}

	return &DecodeReader{r: r, dec: dec, buf: make([]byte, readChunkSize)}, nil
}

// Read fills p with decoded text. The decoder is ended when r reports
// io.EOF, so trailing incomplete sequences appear as U+FFFD before EOF.
func (dr *DecodeReader) Read(p []byte) (int, error) {
	for len(dr.pending) == 0 {
		if dr.err != nil {
			return 0, dr.err
		}
		dr.fill()
	}

	n := copy(p, dr.pending)
	dr.pending = dr.pending[n:]

	return n, nil
}

func (dr *DecodeReader) fill() {
	n, err := dr.r.Read(dr.buf)
	if n > 0 {
		text, derr := dr.dec.Write(dr.buf[:n])
		if derr != nil {
			dr.err = derr
			return
		}
		dr.pending += text
	}

	switch {
	case errors.Is(err, io.EOF):
		tail, derr := dr.dec.End()
		if derr != nil && !errors.Is(derr, errs.ErrStreamEnded) {
			dr.err = derr
			return
		}
		dr.pending += tail
		dr.err = io.EOF
	case err != nil:
		dr.err = err
	}
}
