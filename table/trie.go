package table

import (
	"fmt"

	"github.com/arloliu/iconv/errs"
)

// Decode trie cell values. Non-negative values are code points; the negative
// ranges below encode control cells.
const (
	// Unassigned marks a byte with no mapping at this trie position.
	Unassigned int32 = -1
	// GB18030Code marks the last byte of a GB18030 four-byte sequence that is
	// resolved arithmetically through Ranges.
	GB18030Code int32 = -2
	// SeqStart - i references Trie.Seqs[i].
	SeqStart int32 = -10
	// NodeStart - i references Trie.Nodes[i].
	NodeStart int32 = -1000
)

const (
	seqMarkerLow  = 0x0FF0
	seqMarkerHigh = 0x0FFF
)

// Node is one level of the decode trie, indexed by byte value.
type Node [256]int32

// Trie is the byte-sequence to code point decode trie of a multi-byte charset.
// Node 0 is the root, indexed by the first byte.
type Trie struct {
	Nodes []*Node
	Seqs  [][]rune
}

// NewTrie returns a trie holding only an unassigned root node.
func NewTrie() *Trie {
	t := &Trie{}
	t.NewNode()

	return t
}

// NewNode appends an unassigned node and returns its index.
func (t *Trie) NewNode() int {
	n := new(Node)
	for i := range n {
		n[i] = Unassigned
	}
	t.Nodes = append(t.Nodes, n)

	return len(t.Nodes) - 1
}

// IsNode reports whether v references a trie node.
func IsNode(v int32) bool { return v <= NodeStart }

// NodeIndex returns the node index referenced by v.
func NodeIndex(v int32) int { return int(NodeStart - v) }

// NodeRef returns the cell value referencing node idx.
func NodeRef(idx int) int32 { return NodeStart - int32(idx) }

// IsSeq reports whether v references a multi-code-point sequence.
func IsSeq(v int32) bool { return v <= SeqStart && v > NodeStart }

// SeqIndex returns the sequence index referenced by v.
func SeqIndex(v int32) int { return int(SeqStart - v) }

// AddChunk writes the mappings of c into the trie, creating intermediate
// nodes for multi-byte addresses. Later chunks overwrite earlier mappings at
// the same address.
func (t *Trie) AddChunk(c Chunk) error {
	node, err := t.leafFor(c.Start)
	if err != nil {
		return err
	}

	addr := int(c.Start & 0xFF)
	put := func(v int32) error {
		if addr > 0xFF {
			return fmt.Errorf("%w: chunk %x is too long", errs.ErrMalformedTableData, c.Start)
		}
		node[addr] = v
		addr++

		return nil
	}

	for _, p := range c.Parts {
		if p.Text == nil {
			if addr == int(c.Start&0xFF) {
				return fmt.Errorf("%w: chunk %x starts with a run", errs.ErrMalformedTableData, c.Start)
			}
			prev := node[addr-1]
			if prev < 0 {
				return fmt.Errorf("%w: run after non-character at %x", errs.ErrMalformedTableData, c.Start)
			}
			for k := int32(1); k <= int32(p.Run); k++ {
				if err := put(prev + k); err != nil {
					return err
				}
			}

			continue
		}

		text := p.Text
		for i := 0; i < len(text); i++ {
			r := text[i]
			if r > seqMarkerLow && r <= seqMarkerHigh {
				n := seqMarkerHigh - int(r) + 2
				if i+1+n > len(text) {
					return fmt.Errorf("%w: truncated sequence in chunk %x", errs.ErrMalformedTableData, c.Start)
				}
				seq := append([]rune(nil), text[i+1:i+1+n]...)
				if len(t.Seqs) >= int(SeqStart-NodeStart) {
					return fmt.Errorf("%w: too many sequences", errs.ErrMalformedTableData)
				}
				if err := put(SeqStart - int32(len(t.Seqs))); err != nil {
					return err
				}
				t.Seqs = append(t.Seqs, seq)
				i += n

				continue
			}
			if err := put(r); err != nil {
				return err
			}
		}
	}

	return nil
}

// leafFor returns the node holding the last byte of addr, creating the
// intermediate nodes on the way.
func (t *Trie) leafFor(addr uint32) (*Node, error) {
	var bytes []byte
	for a := addr; a > 0; a >>= 8 {
		bytes = append(bytes, byte(a))
	}
	if len(bytes) == 0 {
		bytes = append(bytes, 0)
	}

	node := t.Nodes[0]
	for i := len(bytes) - 1; i > 0; i-- {
		v := node[bytes[i]]
		switch {
		case v == Unassigned:
			idx := t.NewNode()
			node[bytes[i]] = NodeRef(idx)
			node = t.Nodes[idx]
		case IsNode(v):
			node = t.Nodes[NodeIndex(v)]
		default:
			return nil, fmt.Errorf("%w: address %x overwrites a mapped byte", errs.ErrMalformedTableData, addr)
		}
	}

	return node, nil
}
