// Package compress provides the compression codecs used to store charset
// mapping tables.
//
// Multi-byte charsets (Shift_JIS, GBK, Big5 and friends) are described by
// JSON chunk tables that are several hundred kilobytes in plain form. They are
// embedded compressed and expanded on first use. The algorithm is chosen per
// blob from its file suffix (see format.CompressionFromName):
//   - None (.json): plain tables, handy while editing table data
//   - Gzip (.json.gz): the default for embedded tables
//   - Zstd (.json.zst): smallest tables
//   - S2 (.json.s2): Snappy-compatible, fast
//   - LZ4 (.json.lz4): fastest load, a block prefixed with its uvarint size
//
// # Architecture
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// Use CreateCodec to obtain a codec for a format.CompressionType:
//
//	codec, err := compress.CreateCodec(format.CompressionZstd, "shiftjis table")
//	if err != nil {
//	    return err
//	}
//	raw, err := codec.Decompress(blob)
//
// # Thread Safety
//
// All codecs are stateless values and are safe for concurrent use. Zstd
// decoders and LZ4 compressors are taken from a sync.Pool for each call.
package compress
