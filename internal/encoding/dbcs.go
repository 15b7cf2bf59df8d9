package encoding

import (
	"fmt"

	"github.com/arloliu/iconv/codec"
	"github.com/arloliu/iconv/errs"
	"github.com/arloliu/iconv/internal/tables"
	"github.com/arloliu/iconv/internal/units"
	"github.com/arloliu/iconv/table"
)

// Encode table cell values. Non-negative values are byte sequences packed
// big-endian into an integer (0x82A0 is the two bytes 82 A0).
const (
	encUnassigned int64 = -1
	encSeqStart   int64 = -10
)

// seqNode is one step of an encode-side multi-character sequence. code is
// the byte sequence written when the characters read so far end the match,
// or encUnassigned.
type seqNode struct {
	code     int64
	children map[rune]*seqNode
}

func newSeqNode(code int64) *seqNode {
	return &seqNode{code: code}
}

func (n *seqNode) child(r rune) *seqNode {
	if n.children == nil {
		return nil
	}

	return n.children[r]
}

func (n *seqNode) setChild(r rune, c *seqNode) {
	if n.children == nil {
		n.children = make(map[rune]*seqNode)
	}
	n.children[r] = c
}

// dbcsCodec is a table-driven multi-byte charset.
//
// Decoding walks a byte trie built from the compact chunk tables: each cell
// is a code point, a reference to the next trie node, a multi-code-point
// sequence or a GB18030 four-byte marker. Encoding uses the inverse of the
// trie, bucketed by the high bits of the code point, with nested seqNodes
// for characters that start a multi-character sequence.
type dbcsCodec struct {
	base

	trie   *table.Trie
	ranges *table.Ranges

	encode     [][]int64
	encodeSeqs []*seqNode

	defCharUnicode rune
	defCharSB      int64
}

var _ codec.Codec = (*dbcsCodec)(nil)

// newDBCSTerminal returns the DBCS constructor reading tables from store.
func newDBCSTerminal(store *tables.Store) codec.Terminal {
	return func(p codec.Params, host codec.Host) (codec.Codec, error) {
		return newDBCS(p, host, store)
	}
}

func newDBCS(p codec.Params, host codec.Host, store *tables.Store) (*dbcsCodec, error) {
	if len(p.Tables) == 0 {
		return nil, fmt.Errorf("%w: %s", errs.ErrNoTableData, p.EncodingName)
	}

	c := &dbcsCodec{
		base:           newBase(p),
		trie:           table.NewTrie(),
		encode:         make([][]int64, 0x110000>>8),
		defCharUnicode: host.DefaultCharUnicode(),
	}

	for _, name := range p.Tables {
		chunks, err := store.Chunks(name)
		if err != nil {
			return nil, err
		}
		for _, ch := range chunks {
			if err := c.trie.AddChunk(ch); err != nil {
				return nil, fmt.Errorf("table %s: %w", name, err)
			}
		}
	}

	if p.Ranges != "" {
		rg, err := store.Ranges(p.Ranges)
		if err != nil {
			return nil, err
		}
		c.ranges = rg
		if err := addFourByteNodes(c.trie); err != nil {
			return nil, err
		}
	}

	empty := make([]bool, len(c.trie.Nodes))
	c.fillEncodeTable(0, 0, p.EncodeSkip, empty)
	for r, code := range p.EncodeAdd {
		c.setEncodeChar(r, int64(code))
	}

	c.defCharSB = c.lookup(rune(host.DefaultCharSingleByte()))
	if c.defCharSB < 0 {
		c.defCharSB = c.lookup('?')
	}
	if c.defCharSB < 0 {
		c.defCharSB = '?'
	}

	return c, nil
}

// addFourByteNodes routes every GB18030 four-byte sequence (81-FE 30-39
// 81-FE 30-39) that the tables leave unassigned to GB18030Code. The third
// and fourth byte levels are shared nodes unless a table maps a specific
// four-byte sequence.
func addFourByteNodes(t *table.Trie) error {
	third := t.NewNode()
	fourth := t.NewNode()
	thirdRef, fourthRef := table.NodeRef(third), table.NodeRef(fourth)

	root := t.Nodes[0]
	for b1 := 0x81; b1 <= 0xFE; b1++ {
		if root[b1] == table.Unassigned {
			root[b1] = table.NodeRef(t.NewNode())
		}
		if !table.IsNode(root[b1]) {
			return fmt.Errorf("%w: gb18030 lead byte %#x is a character", errs.ErrMalformedTableData, b1)
		}

		second := t.Nodes[table.NodeIndex(root[b1])]
		for b2 := 0x30; b2 <= 0x39; b2++ {
			switch {
			case second[b2] == table.Unassigned:
				second[b2] = thirdRef
			case !table.IsNode(second[b2]):
				return fmt.Errorf("%w: gb18030 tables conflict at byte 2 (%02x %02x)", errs.ErrMalformedTableData, b1, b2)
			}

			node3 := t.Nodes[table.NodeIndex(second[b2])]
			for b3 := 0x81; b3 <= 0xFE; b3++ {
				switch {
				case node3[b3] == table.Unassigned:
					node3[b3] = fourthRef
				case node3[b3] == fourthRef:
					continue
				case !table.IsNode(node3[b3]):
					return fmt.Errorf("%w: gb18030 tables conflict at byte 3 (%02x %02x %02x)", errs.ErrMalformedTableData, b1, b2, b3)
				}

				node4 := t.Nodes[table.NodeIndex(node3[b3])]
				for b4 := 0x30; b4 <= 0x39; b4++ {
					if node4[b4] == table.Unassigned {
						node4[b4] = table.GB18030Code
					}
				}
			}
		}
	}

	return nil
}

// fillEncodeTable inverts the decode trie below node idx. It reports whether
// any character was found; empty subtrees are remembered so that the shared
// GB18030 nodes are walked once.
func (c *dbcsCodec) fillEncodeTable(idx int, prefix int64, skip []codec.SkipRange, empty []bool) bool {
	node := c.trie.Nodes[idx]
	found := false

	for i, v := range node {
		code := prefix + int64(i)
		if skipped(skip, code) {
			continue
		}

		switch {
		case v >= 0:
			c.setEncodeChar(v, code)
			found = true
		case table.IsNode(v):
			sub := table.NodeIndex(v)
			if empty[sub] {
				continue
			}
			if c.fillEncodeTable(sub, code<<8, skip, empty) {
				found = true
			} else {
				empty[sub] = true
			}
		case table.IsSeq(v):
			c.setEncodeSequence(c.trie.Seqs[table.SeqIndex(v)], code)
			found = true
		}
	}

	return found
}

func skipped(skip []codec.SkipRange, code int64) bool {
	for _, s := range skip {
		if code >= int64(s.From) && code <= int64(s.To) {
			return true
		}
	}

	return false
}

func (c *dbcsCodec) bucket(r rune) []int64 {
	hi := r >> 8
	if c.encode[hi] == nil {
		b := make([]int64, 256)
		for i := range b {
			b[i] = encUnassigned
		}
		c.encode[hi] = b
	}

	return c.encode[hi]
}

// lookup returns the encode cell for r without allocating.
func (c *dbcsCodec) lookup(r rune) int64 {
	if r < 0 || int(r>>8) >= len(c.encode) || c.encode[r>>8] == nil {
		return encUnassigned
	}

	return c.encode[r>>8][r&0xFF]
}

// setEncodeChar maps r to code unless r already has a mapping; the first
// byte sequence found in trie order wins. When r starts a sequence, code
// becomes the bytes written for r alone.
func (c *dbcsCodec) setEncodeChar(r rune, code int64) {
	if r < 0 || r > 0x10FFFF {
		return
	}
	b := c.bucket(r)
	low := r & 0xFF
	switch v := b[low]; {
	case v <= encSeqStart:
		c.encodeSeqs[encSeqStart-v].code = code
	case v == encUnassigned:
		b[low] = code
	}
}

func (c *dbcsCodec) setEncodeSequence(seq []rune, code int64) {
	b := c.bucket(seq[0])
	low := seq[0] & 0xFF

	var node *seqNode
	if v := b[low]; v <= encSeqStart {
		node = c.encodeSeqs[encSeqStart-v]
	} else {
		node = newSeqNode(v)
		b[low] = encSeqStart - int64(len(c.encodeSeqs))
		c.encodeSeqs = append(c.encodeSeqs, node)
	}

	for _, r := range seq[1 : len(seq)-1] {
		next := node.child(r)
		if next == nil {
			next = newSeqNode(encUnassigned)
			node.setChild(r, next)
		}
		node = next
	}

	last := seq[len(seq)-1]
	if leaf := node.child(last); leaf != nil {
		leaf.code = code
	} else {
		node.setChild(last, newSeqNode(code))
	}
}

func (c *dbcsCodec) NewEncoder(*codec.Options) (codec.Encoder, error) {
	return &dbcsEncoder{codec: c, lead: -1}, nil
}

func (c *dbcsCodec) NewDecoder(*codec.Options) (codec.Decoder, error) {
	return &dbcsDecoder{codec: c}, nil
}

type dbcsEncoder struct {
	codec  *dbcsCodec
	reader units.Reader
	lead   int32
	seq    *seqNode
}

func (e *dbcsEncoder) Write(text string) ([]byte, error) {
	var out []byte
	readUnits(&e.reader, text, false, func(us []uint16) {
		out = make([]byte, 0, len(us)*2)
		for _, u := range us {
			out = e.unit(out, u)
		}
	})

	return out, nil
}

// unit feeds one code unit through surrogate pairing.
func (e *dbcsEncoder) unit(dst []byte, u uint16) []byte {
	switch {
	case units.IsHighSurrogate(u):
		if e.lead < 0 {
			e.lead = int32(u)
			return dst
		}
		e.lead = int32(u)

		return e.char(dst, -1)
	case units.IsLowSurrogate(u):
		if e.lead < 0 {
			return e.char(dst, -1)
		}
		r := units.Combine(uint16(e.lead), u)
		e.lead = -1

		return e.char(dst, r)
	case e.lead >= 0:
		e.lead = -1
		dst = e.char(dst, -1)

		return e.char(dst, rune(u))
	default:
		return e.char(dst, rune(u))
	}
}

// char encodes code point r; -1 stands for an unpaired surrogate.
func (e *dbcsEncoder) char(dst []byte, r rune) []byte {
	c := e.codec
	code := encUnassigned

	if e.seq != nil && r >= 0 {
		next := e.seq.child(r)
		switch {
		case next != nil && next.children != nil:
			e.seq = next
			return dst
		case next != nil:
			code = next.code
			e.seq = nil
		case e.seq.code != encUnassigned:
			code = e.seq.code
			e.seq = nil
			dst = appendCode(dst, code)

			return e.char(dst, r)
		default:
			e.seq = nil
		}
	} else if r >= 0 {
		code = c.lookup(r)
		if code <= encSeqStart {
			e.seq = c.encodeSeqs[encSeqStart-code]
			return dst
		}
		if code == encUnassigned && c.ranges != nil {
			if ptr := c.ranges.Pointer(r); ptr >= 0 {
				return appendFourByte(dst, ptr)
			}
		}
	}

	if code == encUnassigned {
		code = c.defCharSB
	}

	return appendCode(dst, code)
}

func appendFourByte(dst []byte, ptr int32) []byte {
	b1 := 0x81 + ptr/12600
	ptr %= 12600
	b2 := 0x30 + ptr/1260
	ptr %= 1260
	b3 := 0x81 + ptr/10
	b4 := 0x30 + ptr%10

	return append(dst, byte(b1), byte(b2), byte(b3), byte(b4))
}

func appendCode(dst []byte, code int64) []byte {
	switch {
	case code < 0x100:
		return append(dst, byte(code))
	case code < 0x10000:
		return append(dst, byte(code>>8), byte(code))
	case code < 0x1000000:
		return append(dst, byte(code>>16), byte(code>>8), byte(code))
	default:
		return append(dst, byte(code>>24), byte(code>>16), byte(code>>8), byte(code))
	}
}

func (e *dbcsEncoder) End() ([]byte, error) {
	var out []byte
	readUnits(&e.reader, "", true, func(us []uint16) {
		for _, u := range us {
			out = e.unit(out, u)
		}
	})

	if e.seq != nil {
		if e.seq.code != encUnassigned {
			out = appendCode(out, e.seq.code)
		}
		e.seq = nil
	}
	if e.lead >= 0 {
		out = appendCode(out, e.codec.defCharSB)
		e.lead = -1
	}

	return out, nil
}

// dbcsDecoder keeps the bytes of the sequence being parsed so that an
// unassigned sequence can be re-parsed from its second byte.
type dbcsDecoder struct {
	codec  *dbcsCodec
	writer units.Writer
	node   int
	prev   []byte
}

func (d *dbcsDecoder) Write(data []byte) (string, error) {
	return buildText(func(dst []byte) []byte {
		return d.decode(dst, data)
	}), nil
}

func (d *dbcsDecoder) decode(dst, data []byte) []byte {
	c := d.codec

	buf := data
	start := 0
	if len(d.prev) > 0 {
		buf = append(d.prev, data...)
		start = len(d.prev)
	}

	seqStart := 0
	node := d.node
	for i := start; i < len(buf); i++ {
		v := c.trie.Nodes[node][buf[i]]

		switch {
		case v >= 0:
			dst = d.writer.AppendRune(dst, v)
		case v == table.Unassigned:
			dst = d.writer.AppendRune(dst, c.defCharUnicode)
			i = seqStart
		case v == table.GB18030Code:
			dst = d.writer.AppendRune(dst, c.fourByte(buf[i-3:i+1]))
		case table.IsNode(v):
			node = table.NodeIndex(v)
			continue
		case table.IsSeq(v):
			for _, r := range c.trie.Seqs[table.SeqIndex(v)] {
				dst = d.writer.AppendRune(dst, r)
			}
		default:
			dst = d.writer.AppendRune(dst, c.defCharUnicode)
		}

		node = 0
		seqStart = i + 1
	}

	d.node = node
	d.prev = append(d.prev[:0:0], buf[seqStart:]...)

	return dst
}

// fourByte maps a GB18030 four-byte sequence to its code point. Pointers
// outside the BMP and supplementary plane ranges decode to the default
// character.
func (c *dbcsCodec) fourByte(b []byte) rune {
	ptr := (int32(b[0])-0x81)*12600 + (int32(b[1])-0x30)*1260 + (int32(b[2])-0x81)*10 + (int32(b[3]) - 0x30)
	if (ptr > gbMaxBMPPointer && ptr < gbMinAstralPointer) || ptr > gbMaxAstralPointer {
		return c.defCharUnicode
	}
	cp := c.ranges.CodePoint(ptr)
	if cp < 0 {
		return c.defCharUnicode
	}

	return cp
}

const (
	gbMaxBMPPointer    = 39419
	gbMinAstralPointer = 189000
	gbMaxAstralPointer = 1237575
)

func (d *dbcsDecoder) End() (string, error) {
	return buildText(func(dst []byte) []byte {
		for len(d.prev) > 0 {
			dst = d.writer.AppendRune(dst, d.codec.defCharUnicode)
			rest := d.prev[1:]
			d.prev = nil
			d.node = 0
			if len(rest) > 0 {
				dst = d.decode(dst, rest)
			}
		}
		d.node = 0

		return d.writer.Flush(dst)
	}), nil
}
