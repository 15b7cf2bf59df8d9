// Package codec defines the streaming transcoder contract and the registry
// that resolves encoding names to codecs.
//
// # Streams
//
// An Encoder turns text into bytes and a Decoder turns bytes into text. Both
// accept input in arbitrary chunks: state needed to bridge a chunk boundary
// (half a surrogate pair, a DBCS lead byte, an unfinished UTF-7 run) is kept
// in the stream. End flushes that state and must be called exactly once,
// after the last Write.
//
//	enc, err := registry.Encoder("shift_jis")
//	if err != nil {
//	    return err
//	}
//	head, _ := enc.Write("こんにちは")
//	tail, _ := enc.End()
//
// Malformed input never produces an error: undecodable bytes become the
// registry's Unicode substitution character (U+FFFD by default) and
// unencodable characters become its single-byte substitution ('?').
//
// # Resolution
//
// Names are canonicalised (see Canonicalize) and looked up in a table of
// definitions. A definition is an Alias to another name, a Layer that adds
// parameters and names the next definition, or a Terminal constructor.
// Resolved codecs are cached for the lifetime of the registry and shared by
// all streams.
//
// # Byte order marks
//
// For BOM-aware codecs (the Unicode encodings) decoders strip a leading
// U+FEFF unless WithStripBOM(false) is given, and encoders prepend one when
// WithAddBOM(true) is given.
package codec
