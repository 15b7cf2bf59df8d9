// Package encoding implements the codec families behind the registry:
// single-byte charsets, table-driven multi-byte charsets, UTF-7 and its IMAP
// variant, UTF-16, UTF-32 and the host-backed internal codecs (UTF-8,
// CESU-8, UCS-2, Base64, hex).
//
// Definitions returns the complete name table consumed by codec.NewRegistry.
// Every family works on UTF-16 code units: encoders read text through
// units.Reader and decoders write through units.Writer, so surrogate pairs
// split across chunks are rejoined and lone surrogates never leak into the
// returned strings.
//
// Streams are not safe for concurrent use. Codecs and their tables are
// immutable and shared.
package encoding
