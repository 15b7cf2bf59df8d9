package encoding

import (
	"github.com/arloliu/iconv/codec"
	"github.com/arloliu/iconv/internal/tables"
)

// Terminal codec names. They start with an underscore so that no alias
// canonicalises onto them by accident.
const (
	typeInternal  = "_internal"
	typeSBCS      = "_sbcs"
	typeDBCS      = "_dbcs"
	typeUTF32     = "_utf32"
	typeUTF16BE   = "_utf16be"
	typeUTF16Auto = "_utf16"
	typeUTF32Auto = "_utf32auto"
	typeUTF7      = "_utf7"
	typeUTF7IMAP  = "_utf7imap"
)

// Definitions returns the encoding table over the embedded mapping tables.
func Definitions() map[string]codec.Definition {
	return DefinitionsWithStore(tables.Default())
}

// DefinitionsWithStore returns the encoding table with multi-byte charsets
// reading their mapping tables from store.
func DefinitionsWithStore(store *tables.Store) map[string]codec.Definition {
	bom := codec.Params{BOMAware: true}

	defs := map[string]codec.Definition{
		typeInternal:  codec.Terminal(newInternal),
		typeSBCS:      codec.Terminal(newSBCS),
		typeDBCS:      newDBCSTerminal(store),
		typeUTF32:     codec.Terminal(newUTF32),
		typeUTF16BE:   codec.Terminal(newUTF16BE),
		typeUTF16Auto: codec.Terminal(newUTF16),
		typeUTF32Auto: codec.Terminal(newUTF32Auto),
		typeUTF7:      codec.Terminal(newUTF7),
		typeUTF7IMAP:  codec.Terminal(newUTF7IMAP),

		// Internal codecs.
		"utf8":          codec.Layer{Type: typeInternal, Params: bom},
		"cesu8":         codec.Layer{Type: typeInternal, Params: bom},
		"unicode11utf8": codec.Alias("utf8"),
		"ucs2":          codec.Layer{Type: typeInternal, Params: bom},
		"utf16le":       codec.Alias("ucs2"),
		"binary":        codec.Layer{Type: typeInternal},
		"base64":        codec.Layer{Type: typeInternal},
		"hex":           codec.Layer{Type: typeInternal},

		// UTF-16 and UTF-32.
		"utf16be": codec.Layer{Type: typeUTF16BE, Params: bom},
		"utf16":   codec.Layer{Type: typeUTF16Auto},
		"utf32le": codec.Layer{Type: typeUTF32, Params: codec.Params{BOMAware: true, LittleEndian: true}},
		"utf32be": codec.Layer{Type: typeUTF32, Params: bom},
		"ucs4le":  codec.Alias("utf32le"),
		"ucs4be":  codec.Alias("utf32be"),
		"utf32":   codec.Layer{Type: typeUTF32Auto},
		"ucs4":    codec.Alias("utf32"),

		// UTF-7.
		"utf7":          codec.Layer{Type: typeUTF7, Params: bom},
		"unicode11utf7": codec.Alias("utf7"),
		"utf7imap":      codec.Layer{Type: typeUTF7IMAP, Params: bom},
	}

	for _, cs := range sbcsCharsets {
		defs[cs.name] = codec.Layer{Type: typeSBCS, Params: codec.Params{Chars: cs.chars}}
		for _, alias := range cs.aliases {
			defs[alias] = codec.Alias(cs.name)
		}
	}

	for _, cs := range dbcsCharsets {
		defs[cs.name] = codec.Layer{Type: typeDBCS, Params: cs.params}
		for _, alias := range cs.aliases {
			defs[alias] = codec.Alias(cs.name)
		}
	}

	return defs
}
