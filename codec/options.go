package codec

import (
	"fmt"

	"github.com/arloliu/iconv/internal/options"
)

const (
	// DefaultCharUnicode is the default substitution for undecodable input.
	DefaultCharUnicode rune = '\uFFFD'
	// DefaultCharSingleByte is the default substitution for unencodable characters.
	DefaultCharSingleByte byte = '?'
	// DefaultMaxAliasDepth bounds the number of definitions visited by one resolution.
	DefaultMaxAliasDepth = 32
)

// Options holds the per-stream settings passed to codec stream constructors.
//
// The zero value means: no BOM is added, a BOM is stripped when the codec is
// BOM-aware, and auto-detecting decoders fall back to their built-in default.
type Options struct {
	// AddBOM forces (true) or suppresses (false) a leading BOM on encode.
	// Nil leaves the decision to the codec.
	AddBOM *bool
	// StripBOM disables BOM stripping on decode when set to false.
	StripBOM *bool
	// OnBOMStripped is invoked once when a decoder removes a leading BOM.
	OnBOMStripped func()
	// DefaultEncoding is the fallback of auto-detecting codecs when the
	// heuristics are inconclusive.
	DefaultEncoding string
}

// Option is a functional option for configuring a stream.
type Option = options.Option[*Options]

// NewOptions builds stream options from opts.
func NewOptions(opts ...Option) (*Options, error) {
	o := &Options{}
	if err := options.Apply(o, opts...); err != nil {
		return nil, err
	}

	return o, nil
}

// Clone returns a copy of o. A nil receiver yields empty options.
func (o *Options) Clone() *Options {
	if o == nil {
		return &Options{}
	}
	c := *o

	return &c
}

// AddBOMOr returns the AddBOM setting, or def when it is unset.
func (o *Options) AddBOMOr(def bool) bool {
	if o == nil || o.AddBOM == nil {
		return def
	}

	return *o.AddBOM
}

// StripBOMEnabled reports whether a BOM-aware decoder should strip a leading BOM.
func (o *Options) StripBOMEnabled() bool {
	return o == nil || o.StripBOM == nil || *o.StripBOM
}

// WithAddBOM forces or suppresses a leading BOM when encoding with a
// BOM-aware codec. The auto-detecting utf16 and utf32 encoders add a BOM
// unless this option is false; all other codecs add one only when it is true.
func WithAddBOM(add bool) Option {
	return options.NoError(func(o *Options) {
		o.AddBOM = &add
	})
}

// WithStripBOM enables or disables stripping of a leading BOM when decoding.
// Default is true.
func WithStripBOM(strip bool) Option {
	return options.NoError(func(o *Options) {
		o.StripBOM = &strip
	})
}

// WithBOMStripped registers a callback invoked when a decoder strips a BOM.
func WithBOMStripped(fn func()) Option {
	return options.NoError(func(o *Options) {
		o.OnBOMStripped = fn
	})
}

// WithDefaultEncoding sets the encoding chosen by auto-detecting decoders
// when neither a BOM nor the byte statistics decide the byte order, and the
// byte order used by the utf32 auto encoder.
func WithDefaultEncoding(name string) Option {
	return options.NoError(func(o *Options) {
		o.DefaultEncoding = name
	})
}

// WithOptions copies every field of base into the options being built.
// Later options still override it.
func WithOptions(base *Options) Option {
	return options.NoError(func(o *Options) {
		if base != nil {
			*o = *base
		}
	})
}

// RegistryConfig holds registry-wide settings.
type RegistryConfig struct {
	defaultCharUnicode    rune
	defaultCharSingleByte byte
	maxAliasDepth         int
}

func newRegistryConfig() *RegistryConfig {
	return &RegistryConfig{
		defaultCharUnicode:    DefaultCharUnicode,
		defaultCharSingleByte: DefaultCharSingleByte,
		maxAliasDepth:         DefaultMaxAliasDepth,
	}
}

// RegistryOption is a functional option for configuring a Registry.
type RegistryOption = options.Option[*RegistryConfig]

// WithDefaultCharUnicode sets the character substituted for undecodable input.
// Default is U+FFFD.
//
// The utf8 and ucs2 decoders are backed by golang.org/x/text and always
// substitute U+FFFD, whatever this option says.
func WithDefaultCharUnicode(r rune) RegistryOption {
	return options.New(func(c *RegistryConfig) error {
		if r < 0 || r > 0xFFFF || (r >= 0xD800 && r <= 0xDFFF) {
			return fmt.Errorf("default unicode char must be a BMP non-surrogate character, got %U", r)
		}
		c.defaultCharUnicode = r

		return nil
	})
}

// WithDefaultCharSingleByte sets the byte substituted for unencodable characters.
// Default is '?'.
func WithDefaultCharSingleByte(b byte) RegistryOption {
	return options.NoError(func(c *RegistryConfig) {
		c.defaultCharSingleByte = b
	})
}

// WithMaxAliasDepth bounds how many definitions a single resolution may visit
// before it fails with errs.ErrCyclicAlias. Default is 32.
func WithMaxAliasDepth(depth int) RegistryOption {
	return options.New(func(c *RegistryConfig) error {
		if depth < 1 {
			return fmt.Errorf("max alias depth must be positive, got %d", depth)
		}
		c.maxAliasDepth = depth

		return nil
	})
}
