package codec

// Encoder converts text to bytes, one chunk at a time.
type Encoder interface {
	// Write encodes the next chunk of text. Output may lag input when a
	// chunk ends inside a unit the encoder needs to see whole.
	Write(text string) ([]byte, error)
	// End flushes buffered state. No Write may follow.
	End() ([]byte, error)
}

// Decoder converts bytes to text, one chunk at a time.
type Decoder interface {
	// Write decodes the next chunk of bytes. Bytes of an incomplete
	// character are held until the next Write or End.
	Write(data []byte) (string, error)
	// End flushes buffered state, substituting incomplete characters.
	// No Write may follow.
	End() (string, error)
}

// Codec is a resolved encoding. It owns its immutable tables and creates
// short-lived streams.
type Codec interface {
	// Name returns the canonical name the codec was resolved and cached under.
	Name() string
	// BOMAware reports whether the registry applies BOM handling to the codec's streams.
	BOMAware() bool
	NewEncoder(opts *Options) (Encoder, error)
	NewDecoder(opts *Options) (Decoder, error)
}

// Host is the registry surface available to codec constructors and streams.
type Host interface {
	// DefaultCharUnicode returns the substitution for undecodable input.
	DefaultCharUnicode() rune
	// DefaultCharSingleByte returns the substitution for unencodable characters.
	DefaultCharSingleByte() byte
	// Resolve resolves an encoding name to its codec.
	Resolve(name string) (Codec, error)
	// Encoder returns a BOM-decorated encoder for another encoding.
	Encoder(name string, opts ...Option) (Encoder, error)
	// Decoder returns a BOM-decorated decoder for another encoding.
	Decoder(name string, opts ...Option) (Decoder, error)
}
