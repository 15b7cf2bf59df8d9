package encoding

import (
	"github.com/arloliu/iconv/codec"
	"github.com/arloliu/iconv/internal/tables"
)

// japaneseEncodeAdd maps the JIS X 0201 Roman variants of backslash and
// tilde back to their ASCII bytes.
var japaneseEncodeAdd = map[rune]uint32{
	'¥': 0x5C,
	'‾': 0x7E,
}

// big5Skip lists HKSCS codes whose characters also have a regular Big5 code;
// encoding prefers the regular code.
var big5Skip = skips(
	0x8e69, 0x8e6f, 0x8e7e, 0x8eab, 0x8eb4, 0x8ecd, 0x8ed0, 0x8f57, 0x8f69, 0x8f6e, 0x8fcb, 0x8ffe,
	0x906d, 0x907a, 0x90c4, 0x90dc, 0x90f1, 0x91bf, 0x92af, 0x92b0, 0x92b1, 0x92b2, 0x92d1, 0x9447, 0x94ca,
	0x95d9, 0x96fc, 0x9975, 0x9b76, 0x9b78, 0x9b7b, 0x9bc6, 0x9bde, 0x9bec, 0x9bf6, 0x9c42, 0x9c53, 0x9c62,
	0x9c68, 0x9c6b, 0x9c77, 0x9cbc, 0x9cbd, 0x9cd0, 0x9d57, 0x9d5a, 0x9dc4, 0x9def, 0x9dfb, 0x9ea9, 0x9eef,
	0x9efd, 0x9f60, 0x9fcb, 0xa077, 0xa0dc, 0xa0df, 0x8fcc, 0x92c8, 0x9644, 0x96ed,
	// Box drawing characters repeated in the F9 row.
	0xa2a4, 0xa2a5, 0xa2a7, 0xa2a6,
	// Duplicates of U+5341 and U+5345; A451 and A4CA are used instead.
	0xa2cc, 0xa2ce,
)

func skips(codes ...uint32) []codec.SkipRange {
	out := make([]codec.SkipRange, len(codes))
	for i, c := range codes {
		out[i] = codec.Skip(c)
	}

	return out
}

// dbcsCharset describes one multi-byte charset and its aliases.
type dbcsCharset struct {
	name    string
	aliases []string
	params  codec.Params
}

var dbcsCharsets = []dbcsCharset{
	{
		name: "shiftjis",
		aliases: []string{
			"csshiftjis", "mskanji", "sjis", "windows31j", "ms31j", "xsjis",
			"windows932", "ms932", "932", "cp932",
		},
		params: codec.Params{
			Tables:     []string{tables.ShiftJIS},
			EncodeAdd:  japaneseEncodeAdd,
			EncodeSkip: []codec.SkipRange{{From: 0xED40, To: 0xF940}},
		},
	},
	{
		name:    "eucjp",
		aliases: []string{"cseucpkdfmtjapanese", "xeucjp"},
		params: codec.Params{
			Tables:    []string{tables.EUCJP},
			EncodeAdd: japaneseEncodeAdd,
		},
	},
	{
		// GB2312 is encoded and decoded as its superset cp936.
		name: "cp936",
		aliases: []string{
			"gb2312", "gb231280", "gb23121980", "csgb2312", "csiso58gb231280", "euccn",
			"windows936", "ms936", "936",
		},
		params: codec.Params{
			Tables: []string{tables.CP936},
		},
	},
	{
		name:    "gbk",
		aliases: []string{"xgbk", "isoir58"},
		params: codec.Params{
			Tables: []string{tables.CP936, tables.GBKAdded},
		},
	},
	{
		name:    "gb18030",
		aliases: []string{"chinese"},
		params: codec.Params{
			Tables:     []string{tables.CP936, tables.GBKAdded},
			Ranges:     tables.GB18030Ranges,
			EncodeSkip: skips(0x80),
			EncodeAdd:  map[rune]uint32{'€': 0xA2E3},
		},
	},
	{
		name: "cp949",
		aliases: []string{
			"windows949", "ms949", "949", "cseuckr", "csksc56011987", "euckr",
			"isoir149", "korean", "ksc56011987", "ksc56011989", "ksc5601",
		},
		params: codec.Params{
			Tables: []string{tables.CP949},
		},
	},
	{
		name:    "cp950",
		aliases: []string{"windows950", "ms950", "950"},
		params: codec.Params{
			Tables: []string{tables.CP950},
		},
	},
	{
		name:    "big5hkscs",
		aliases: []string{"big5", "cnbig5", "csbig5", "xxbig5"},
		params: codec.Params{
			Tables:     []string{tables.CP950, tables.Big5Added},
			EncodeSkip: big5Skip,
		},
	},
}
