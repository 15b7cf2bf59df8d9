package encoding

import (
	"github.com/arloliu/iconv/codec"
	"github.com/arloliu/iconv/endian"
	"github.com/arloliu/iconv/internal/host"
)

const (
	utf16DetectBytes = 16
	detectMaxUnits   = 100
)

// utf16BECodec converts through the host UTF-16LE transformers and swaps
// each byte pair.
type utf16BECodec struct {
	base
}

func newUTF16BE(p codec.Params, _ codec.Host) (codec.Codec, error) {
	return &utf16BECodec{base: newBase(p)}, nil
}

func (c *utf16BECodec) NewEncoder(*codec.Options) (codec.Encoder, error) {
	return &utf16BEEncoder{host: host.NewUTF16LEEncoder()}, nil
}

func (c *utf16BECodec) NewDecoder(*codec.Options) (codec.Decoder, error) {
	return &utf16BEDecoder{host: host.NewUTF16LEDecoder()}, nil
}

type utf16BEEncoder struct {
	host *host.Stream
}

func (e *utf16BEEncoder) Write(text string) ([]byte, error) {
	out, err := e.host.Write([]byte(text))
	if err != nil {
		return nil, err
	}
	endian.SwapUint16(out)

	return out, nil
}

func (e *utf16BEEncoder) End() ([]byte, error) {
	out, err := e.host.End()
	if err != nil {
		return nil, err
	}
	endian.SwapUint16(out)

	return out, nil
}

// utf16BEDecoder carries an odd trailing byte to the next Write.
type utf16BEDecoder struct {
	host     *host.Stream
	overflow []byte
}

func (d *utf16BEDecoder) Write(data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}

	buf := make([]byte, 0, len(d.overflow)+len(data))
	buf = append(buf, d.overflow...)
	buf = append(buf, data...)

	n := len(buf) &^ 1
	d.overflow = append(d.overflow[:0], buf[n:]...)
	buf = buf[:n]
	endian.SwapUint16(buf)

	out, err := d.host.Write(buf)
	if err != nil {
		return "", err
	}

	return string(out), nil
}

// End reports a dangling odd byte as one undecodable character.
func (d *utf16BEDecoder) End() (string, error) {
	var head []byte
	if len(d.overflow) > 0 {
		var err error
		if head, err = d.host.Write(d.overflow); err != nil {
			return "", err
		}
		d.overflow = d.overflow[:0]
	}

	tail, err := d.host.End()
	if err != nil {
		return "", err
	}

	return string(head) + string(tail), nil
}

// utf16Codec is the byte-order detecting "utf16" codec. Encoding writes
// UTF-16LE with a BOM by default; decoding picks LE or BE from a BOM or
// from the position of zero bytes.
type utf16Codec struct {
	base
	host codec.Host
}

func newUTF16(p codec.Params, h codec.Host) (codec.Codec, error) {
	return &utf16Codec{base: newBase(p), host: h}, nil
}

func (c *utf16Codec) NewEncoder(opts *codec.Options) (codec.Encoder, error) {
	o := opts.Clone()
	if o.AddBOM == nil {
		add := true
		o.AddBOM = &add
	}

	return c.host.Encoder("utf-16le", codec.WithOptions(o))
}

func (c *utf16Codec) NewDecoder(opts *codec.Options) (codec.Decoder, error) {
	return newDetectingDecoder(c.host, opts, utf16DetectBytes, detectUTF16), nil
}

// detectUTF16 chooses the byte order of buf. A leading BOM decides;
// otherwise the order in which more of the first 100 units look like ASCII
// wins, with ties going to def and then to LE.
func detectUTF16(buf []byte, def string) string {
	if len(buf) >= 2 {
		switch {
		case buf[0] == 0xFF && buf[1] == 0xFE:
			return "utf-16le"
		case buf[0] == 0xFE && buf[1] == 0xFF:
			return "utf-16be"
		}
	}

	asciiLE, asciiBE := 0, 0
	for i := 0; i+1 < len(buf) && i/2 < detectMaxUnits; i += 2 {
		b0, b1 := buf[i], buf[i+1]
		if b0 == 0 && b1 != 0 {
			asciiBE++
		}
		if b0 != 0 && b1 == 0 {
			asciiLE++
		}
	}

	switch {
	case asciiBE > asciiLE:
		return "utf-16be"
	case asciiBE < asciiLE:
		return "utf-16le"
	case def != "":
		return def
	default:
		return "utf-16le"
	}
}

// detectingDecoder buffers the first bytes of a stream until there are
// enough to choose a byte order, then replays them through the decoder of
// the chosen encoding.
type detectingDecoder struct {
	host   codec.Host
	opts   *codec.Options
	need   int
	detect func(buf []byte, def string) string

	initial []byte
	dec     codec.Decoder
}

func newDetectingDecoder(h codec.Host, opts *codec.Options, need int, detect func([]byte, string) string) *detectingDecoder {
	return &detectingDecoder{
		host:   h,
		opts:   opts.Clone(),
		need:   need,
		detect: detect,
	}
}

func (d *detectingDecoder) Write(data []byte) (string, error) {
	if d.dec != nil {
		return d.dec.Write(data)
	}

	d.initial = append(d.initial, data...)
	if len(d.initial) < d.need {
		return "", nil
	}

	return d.choose()
}

func (d *detectingDecoder) choose() (string, error) {
	dec, err := d.host.Decoder(d.detect(d.initial, d.opts.DefaultEncoding), codec.WithOptions(d.opts))
	if err != nil {
		return "", err
	}
	d.dec = dec

	buf := d.initial
	d.initial = nil

	return dec.Write(buf)
}

func (d *detectingDecoder) End() (string, error) {
	var head string
	if d.dec == nil {
		var err error
		if head, err = d.choose(); err != nil {
			return "", err
		}
	}

	tail, err := d.dec.End()
	if err != nil {
		return "", err
	}

	return head + tail, nil
}
