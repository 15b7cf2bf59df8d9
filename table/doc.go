// Package table implements the mapping table model shared by the
// table-driven codecs.
//
// Single-byte charsets are described by a string of 128 or 256 characters,
// one per byte value (see NewSingleByte).
//
// Multi-byte charsets are described by compact chunk lists, persisted as JSON
// arrays of the form
//
//	["8140", "literal characters", 12, "more characters"]
//
// where the first element is the hexadecimal address of the first byte
// sequence, strings list the characters for consecutive addresses, and a
// number n continues an increasing run: the next n addresses map to the code
// point after the previous one. Inside a string, a character in
// U+0FF1..U+0FFF introduces a multi-code-point sequence of 0xFFF-m+2 code
// points. ParseChunks reads this format and Trie expands it into the decode
// trie used by the DBCS codec.
//
// GB18030 four-byte sequences are described by Ranges, a pair of parallel
// ascending arrays searched with FindIndex.
package table
