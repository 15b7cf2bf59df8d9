// Package errs defines the sentinel errors returned by the iconv packages.
//
// Callers should compare against these values with errors.Is, since most call
// sites wrap them with the encoding name or table name involved.
package errs

import "errors"

var (
	// ErrUnknownEncoding is returned when an encoding name does not resolve to any codec.
	ErrUnknownEncoding = errors.New("encoding not recognized")
	// ErrCyclicAlias is returned when alias resolution revisits a name or exceeds the depth limit.
	ErrCyclicAlias = errors.New("cyclic encoding alias")
	// ErrInvalidTableSize is returned when a single-byte charset table is not 128 or 256 characters long.
	ErrInvalidTableSize = errors.New("charset table must have 128 or 256 characters")
	// ErrMalformedTableData is returned when a compact mapping table cannot be parsed.
	ErrMalformedTableData = errors.New("malformed mapping table data")
	// ErrNoTableData is returned when a table-driven codec is declared without a table.
	ErrNoTableData = errors.New("codec has no table data")
	// ErrTableChecksum is returned when an embedded table does not match its recorded checksum.
	ErrTableChecksum = errors.New("mapping table checksum mismatch")
	// ErrStreamEnded is returned when Write or End is called on a stream that has already ended.
	ErrStreamEnded = errors.New("stream already ended")
	// ErrInvalidCompression is returned for an unsupported table compression type.
	ErrInvalidCompression = errors.New("invalid compression type")
)
