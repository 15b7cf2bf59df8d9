package codec

// Definition is one entry of the encoding table: an Alias, a Layer or a
// Terminal.
type Definition interface {
	isDefinition()
}

// Alias redirects to another encoding name.
type Alias string

// Layer adds parameters and continues resolution at Type.
type Layer struct {
	Type   string
	Params Params
}

// Terminal constructs the codec from the parameters gathered on the way.
type Terminal func(p Params, host Host) (Codec, error)

func (Alias) isDefinition()    {}
func (Layer) isDefinition()    {}
func (Terminal) isDefinition() {}

// SkipRange is an inclusive range of byte sequence addresses.
type SkipRange struct {
	From, To uint32
}

// Contains reports whether addr falls within the range.
func (r SkipRange) Contains(addr uint32) bool {
	return addr >= r.From && addr <= r.To
}

// Skip returns a range holding the single address addr.
func Skip(addr uint32) SkipRange {
	return SkipRange{From: addr, To: addr}
}

// Params carries the codec parameters gathered from the layers of a
// resolution chain. Fields of later layers override earlier ones, except
// EncodingName, which keeps the first (outermost) value.
type Params struct {
	// EncodingName is the canonical name the resolved codec is cached under.
	EncodingName string
	// BOMAware enables BOM handling for the codec's streams.
	BOMAware bool

	// Chars is the character table of a single-byte charset.
	Chars string

	// Tables names the chunk tables of a multi-byte charset, applied in order.
	Tables []string
	// Ranges names the GB18030 four-byte range table.
	Ranges string
	// EncodeAdd adds encode-only mappings from a character to a byte sequence.
	EncodeAdd map[rune]uint32
	// EncodeSkip lists addresses that decode but are never produced by encoding.
	EncodeSkip []SkipRange

	// LittleEndian selects the byte order of fixed-width Unicode codecs.
	LittleEndian bool
}

func (p *Params) merge(layer Params, name string) {
	if p.EncodingName == "" {
		p.EncodingName = name
		if layer.EncodingName != "" {
			p.EncodingName = layer.EncodingName
		}
	}
	if layer.BOMAware {
		p.BOMAware = true
	}
	if layer.Chars != "" {
		p.Chars = layer.Chars
	}
	if layer.Tables != nil {
		p.Tables = layer.Tables
	}
	if layer.Ranges != "" {
		p.Ranges = layer.Ranges
	}
	if layer.EncodeAdd != nil {
		p.EncodeAdd = layer.EncodeAdd
	}
	if layer.EncodeSkip != nil {
		p.EncodeSkip = layer.EncodeSkip
	}
	if layer.LittleEndian {
		p.LittleEndian = true
	}
}
