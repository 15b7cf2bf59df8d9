package codec

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/arloliu/iconv/errs"
	"github.com/arloliu/iconv/internal/logging"
	"github.com/arloliu/iconv/internal/options"
)

// Registry resolves encoding names to codecs and creates streams.
//
// Resolved codecs are cached by their encoding name for the lifetime of the
// registry. A Registry is safe for concurrent use; the streams it returns
// are not.
type Registry struct {
	defs map[string]Definition
	cfg  *RegistryConfig

	mu    sync.RWMutex
	cache map[string]Codec
	group singleflight.Group
}

var _ Host = (*Registry)(nil)

// NewRegistry creates a registry over defs.
//
// Lookups canonicalise the requested name, so keys reachable by callers must
// be canonical. Alias targets and Layer types are used as written, which
// lets terminal constructors live under names no caller can produce, such
// as "_sbcs".
func NewRegistry(defs map[string]Definition, opts ...RegistryOption) (*Registry, error) {
	cfg := newRegistryConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	table := make(map[string]Definition, len(defs))
	for name, def := range defs {
		if def == nil {
			return nil, fmt.Errorf("encoding %q has a nil definition", name)
		}
		table[name] = def
	}

	return &Registry{
		defs:  table,
		cfg:   cfg,
		cache: make(map[string]Codec),
	}, nil
}

// DefaultCharUnicode returns the substitution for undecodable input.
func (r *Registry) DefaultCharUnicode() rune {
	return r.cfg.defaultCharUnicode
}

// DefaultCharSingleByte returns the substitution for unencodable characters.
func (r *Registry) DefaultCharSingleByte() byte {
	return r.cfg.defaultCharSingleByte
}

// Names returns the keys of all definitions, in no particular order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}

	return names
}

// Exists reports whether name resolves to a codec.
func (r *Registry) Exists(name string) bool {
	_, err := r.Resolve(name)
	return err == nil
}

// Resolve returns the codec for name, building and caching it on first use.
//
// Resolution follows Alias and Layer definitions until it reaches a Terminal.
// The cache is consulted at every name visited, so all aliases of an
// encoding share one codec instance.
func (r *Registry) Resolve(name string) (Codec, error) {
	enc := Canonicalize(name)
	var params Params

	for depth := 0; ; depth++ {
		if c, ok := r.cached(enc); ok {
			return c, nil
		}
		if depth >= r.cfg.maxAliasDepth {
			return nil, fmt.Errorf("%w: %q exceeds %d definitions", errs.ErrCyclicAlias, name, r.cfg.maxAliasDepth)
		}

		def, ok := r.defs[enc]
		if !ok {
			return nil, fmt.Errorf("%w: %q", errs.ErrUnknownEncoding, name)
		}

		switch d := def.(type) {
		case Alias:
			enc = string(d)
		case Layer:
			params.merge(d.Params, enc)
			enc = d.Type
		case Terminal:
			if params.EncodingName == "" {
				params.EncodingName = enc
			}

			return r.build(params, d)
		default:
			return nil, fmt.Errorf("%w: %q has unsupported definition %T", errs.ErrUnknownEncoding, name, def)
		}
	}
}

func (r *Registry) cached(name string) (Codec, bool) {
	r.mu.RLock()
	c, ok := r.cache[name]
	r.mu.RUnlock()

	return c, ok
}

func (r *Registry) build(params Params, ctor Terminal) (Codec, error) {
	key := params.EncodingName
	v, err, shared := r.group.Do(key, func() (any, error) {
		if c, ok := r.cached(key); ok {
			return c, nil
		}

		c, err := ctor(params, r)
		if err != nil {
			return nil, fmt.Errorf("build codec %q: %w", key, err)
		}

		r.mu.Lock()
		if existing, ok := r.cache[key]; ok {
			c = existing
		} else {
			r.cache[key] = c
		}
		r.mu.Unlock()

		logging.Logger().Debug("codec resolved",
			zap.String("encoding", key),
			zap.Bool("bom_aware", c.BOMAware()),
		)

		return c, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logging.Logger().Debug("codec build shared", zap.String("encoding", key))
	}

	return v.(Codec), nil
}

// Encoder returns a new encoder for name. The encoder prepends a BOM when the
// codec is BOM-aware and WithAddBOM(true) is given.
func (r *Registry) Encoder(name string, opts ...Option) (Encoder, error) {
	o, err := NewOptions(opts...)
	if err != nil {
		return nil, err
	}

	c, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}

	enc, err := c.NewEncoder(o)
	if err != nil {
		return nil, fmt.Errorf("create %s encoder: %w", c.Name(), err)
	}
	if c.BOMAware() && o.AddBOMOr(false) {
		enc = PrependBOM(enc)
	}

	return &guardedEncoder{enc: enc}, nil
}

// Decoder returns a new decoder for name. The decoder strips a leading BOM
// when the codec is BOM-aware, unless WithStripBOM(false) is given.
func (r *Registry) Decoder(name string, opts ...Option) (Decoder, error) {
	o, err := NewOptions(opts...)
	if err != nil {
		return nil, err
	}

	c, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}

	dec, err := c.NewDecoder(o)
	if err != nil {
		return nil, fmt.Errorf("create %s decoder: %w", c.Name(), err)
	}
	if c.BOMAware() && o.StripBOMEnabled() {
		dec = StripBOM(dec, o.OnBOMStripped)
	}

	return &guardedDecoder{dec: dec}, nil
}

// Encode converts text to bytes in one call.
func (r *Registry) Encode(text string, name string, opts ...Option) ([]byte, error) {
	enc, err := r.Encoder(name, opts...)
	if err != nil {
		return nil, err
	}

	head, err := enc.Write(text)
	if err != nil {
		return nil, err
	}
	tail, err := enc.End()
	if err != nil {
		return nil, err
	}
	if len(tail) == 0 {
		return head, nil
	}

	return append(head, tail...), nil
}

// Decode converts bytes to text in one call.
func (r *Registry) Decode(data []byte, name string, opts ...Option) (string, error) {
	dec, err := r.Decoder(name, opts...)
	if err != nil {
		return "", err
	}

	head, err := dec.Write(data)
	if err != nil {
		return "", err
	}
	tail, err := dec.End()
	if err != nil {
		return "", err
	}

	return head + tail, nil
}

// Preload resolves names concurrently so that their tables are built before
// first use. It returns the first resolution error.
func (r *Registry) Preload(ctx context.Context, names ...string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(preloadConcurrency)

	for _, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := r.Resolve(name)

			return err
		})
	}

	return g.Wait()
}

const preloadConcurrency = 8
