// Package iconv converts text between Go strings and the byte encodings of
// legacy and Unicode character sets.
//
// It covers the Unicode transformation formats (UTF-8, CESU-8, UTF-16,
// UTF-32 and UTF-7 including the IMAP variant), single-byte code pages
// (Windows, ISO-8859, DOS, Mac, KOI8, EBCDIC) and the table-driven East Asian
// charsets (Shift_JIS, EUC-JP, GBK, GB18030, EUC-KR, Big5-HKSCS).
//
// # Basic Usage
//
// One-shot conversion:
//
//	data, err := iconv.Encode("こんにちは", "Shift_JIS")
//	text, err := iconv.Decode(data, "sjis")
//
// Encoding names are matched loosely: case, punctuation and a trailing
// ":YYYY" revision are ignored, so "UTF-8", "utf8" and "Utf_8" are the same
// encoding.
//
// Streaming conversion keeps the state of multi-byte sequences across
// chunks:
//
//	dec, _ := iconv.GetDecoder("gb18030")
//	for chunk := range chunks {
//	    text, _ := dec.Write(chunk)
//	    fmt.Print(text)
//	}
//	tail, _ := dec.End()
//
// NewEncodeWriter and NewDecodeReader wrap the same streams as io.Writer and
// io.Reader.
//
// # Byte Order Marks
//
// Decoders of BOM-aware encodings drop a leading U+FEFF unless
// WithStripBOM(false) is given. Encoders write one only when asked with
// WithAddBOM(true); the byte-order detecting "utf-16" and "utf-32" encoders
// write one by default.
//
// # Invalid Input
//
// Conversion never fails on content. Bytes that do not decode become U+FFFD,
// characters that cannot be encoded become '?'. A registry created with
// NewRegistry can use other substitutes.
//
// # Package Structure
//
// This package wraps a process-wide codec.Registry over the built-in
// encodings. The codec package holds the stream interfaces and the registry
// for callers that need several independent configurations.
package iconv

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/arloliu/iconv/codec"
	"github.com/arloliu/iconv/internal/encoding"
	"github.com/arloliu/iconv/internal/logging"
)

// Option configures an encoder or decoder.
type Option = codec.Option

var defaultRegistry = sync.OnceValues(func() (*codec.Registry, error) {
	return NewRegistry()
})

// NewRegistry creates a registry over the built-in encodings.
//
// Parameters:
//   - opts: registry options such as codec.WithDefaultCharSingleByte
//
// Returns:
//   - *codec.Registry: a registry with its own codec cache
//   - error: an error if an option is invalid
//
// Example:
//
//	reg, err := iconv.NewRegistry(codec.WithDefaultCharSingleByte('*'))
//	data, err := reg.Encode("naïve", "ascii") // "na*ve"
func NewRegistry(opts ...codec.RegistryOption) (*codec.Registry, error) {
	return codec.NewRegistry(encoding.Definitions(), opts...)
}

// Default returns the process-wide registry used by the package functions.
func Default() (*codec.Registry, error) {
	return defaultRegistry()
}

// Encode converts text to bytes in the named encoding.
//
// Parameters:
//   - text: the text to convert
//   - name: encoding name, matched loosely (see package documentation)
//   - opts: stream options, e.g. WithAddBOM(true)
//
// Returns:
//   - []byte: the encoded bytes
//   - error: errs.ErrUnknownEncoding if name does not resolve
func Encode(text, name string, opts ...Option) ([]byte, error) {
	reg, err := defaultRegistry()
	if err != nil {
		return nil, err
	}

	return reg.Encode(text, name, opts...)
}

// Decode converts bytes in the named encoding to text.
//
// Parameters:
//   - data: the bytes to convert
//   - name: encoding name, matched loosely (see package documentation)
//   - opts: stream options, e.g. WithStripBOM(false)
//
// Returns:
//   - string: the decoded text
//   - error: errs.ErrUnknownEncoding if name does not resolve
func Decode(data []byte, name string, opts ...Option) (string, error) {
	reg, err := defaultRegistry()
	if err != nil {
		return "", err
	}

	return reg.Decode(data, name, opts...)
}

// EncodingExists reports whether name resolves to a built-in encoding.
func EncodingExists(name string) bool {
	reg, err := defaultRegistry()
	if err != nil {
		return false
	}

	return reg.Exists(name)
}

// GetCodec returns the shared codec for name. Every alias of an encoding
// returns the same instance.
func GetCodec(name string) (codec.Codec, error) {
	reg, err := defaultRegistry()
	if err != nil {
		return nil, err
	}

	return reg.Resolve(name)
}

// GetEncoder returns a new streaming encoder for name.
func GetEncoder(name string, opts ...Option) (codec.Encoder, error) {
	reg, err := defaultRegistry()
	if err != nil {
		return nil, err
	}

	return reg.Encoder(name, opts...)
}

// GetDecoder returns a new streaming decoder for name.
func GetDecoder(name string, opts ...Option) (codec.Decoder, error) {
	reg, err := defaultRegistry()
	if err != nil {
		return nil, err
	}

	return reg.Decoder(name, opts...)
}

// Preload builds the codecs for names ahead of first use, in parallel. The
// multi-byte charsets parse their mapping tables when first resolved, which
// takes a few milliseconds each.
func Preload(ctx context.Context, names ...string) error {
	reg, err := defaultRegistry()
	if err != nil {
		return err
	}

	return reg.Preload(ctx, names...)
}

// SetLogger sets the logger used for codec resolution and table loading.
// A nil logger disables logging, which is the default.
func SetLogger(l *zap.Logger) {
	logging.SetLogger(l)
}

// WithAddBOM controls whether an encoder of a BOM-aware encoding starts its
// output with a byte order mark.
func WithAddBOM(add bool) Option {
	return codec.WithAddBOM(add)
}

// WithStripBOM controls whether a decoder of a BOM-aware encoding drops a
// leading U+FEFF. Stripping is on by default.
func WithStripBOM(strip bool) Option {
	return codec.WithStripBOM(strip)
}

// WithBOMStripped registers fn to be called when a decoder drops a BOM.
func WithBOMStripped(fn func()) Option {
	return codec.WithBOMStripped(fn)
}

// WithDefaultEncoding sets the byte order the "utf-16" and "utf-32" decoders
// assume when the input gives no indication, and the byte order the "utf-32"
// encoder writes.
func WithDefaultEncoding(name string) Option {
	return codec.WithDefaultEncoding(name)
}
