package table

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/iconv/errs"
)

func mustChunks(t *testing.T, data string) []Chunk {
	t.Helper()

	chunks, err := ParseChunks([]byte(data))
	require.NoError(t, err)

	return chunks
}

func buildTrie(t *testing.T, data string) *Trie {
	t.Helper()

	trie := NewTrie()
	for _, c := range mustChunks(t, data) {
		require.NoError(t, trie.AddChunk(c))
	}

	return trie
}

func TestTrie_SingleByteAndRuns(t *testing.T) {
	trie := buildTrie(t, `[["0","\u0000",127],["a1","｡",2]]`)

	root := trie.Nodes[0]
	require.Equal(t, int32(0), root[0x00])
	require.Equal(t, int32('A'), root['A'])
	require.Equal(t, int32(0x7F), root[0x7F])
	require.Equal(t, int32(0xFF61), root[0xA1])
	require.Equal(t, int32(0xFF63), root[0xA3])
	require.Equal(t, Unassigned, root[0xA4])
	require.Equal(t, Unassigned, root[0x80])
}

func TestTrie_TwoByteNodes(t *testing.T) {
	trie := buildTrie(t, `[["8140","丂丄"],["8240","𠀋"]]`)

	root := trie.Nodes[0]
	require.True(t, IsNode(root[0x81]))
	require.True(t, IsNode(root[0x82]))
	require.Len(t, trie.Nodes, 3)

	lead81 := trie.Nodes[NodeIndex(root[0x81])]
	require.Equal(t, int32('丂'), lead81[0x40])
	require.Equal(t, int32('丄'), lead81[0x41])

	lead82 := trie.Nodes[NodeIndex(root[0x82])]
	require.Equal(t, int32(0x2000B), lead82[0x40])
}

func TestTrie_FourByteAddress(t *testing.T) {
	trie := buildTrie(t, `[["8135f437","\ue7c7"]]`)

	node := trie.Nodes[0]
	for _, b := range []byte{0x81, 0x35, 0xF4} {
		require.True(t, IsNode(node[b]), "byte %#x", b)
		node = trie.Nodes[NodeIndex(node[b])]
	}
	require.Equal(t, int32(0xE7C7), node[0x37])
}

func TestTrie_Sequences(t *testing.T) {
	trie := buildTrie(t, "[[\"8862\",\"\u0fffÊ\u0304Ế\u0fffÊ\u030c\"]]")

	lead := trie.Nodes[NodeIndex(trie.Nodes[0][0x88])]
	require.True(t, IsSeq(lead[0x62]))
	require.Equal(t, []rune{0xCA, 0x304}, trie.Seqs[SeqIndex(lead[0x62])])
	require.Equal(t, int32(0x1EBE), lead[0x63])
	require.Equal(t, []rune{0xCA, 0x30C}, trie.Seqs[SeqIndex(lead[0x64])])
}

func TestTrie_LaterChunksOverwrite(t *testing.T) {
	trie := buildTrie(t, `[["a8bc","\ue7c7"],["a8bc","ḿ"]]`)
	lead := trie.Nodes[NodeIndex(trie.Nodes[0][0xA8])]
	require.Equal(t, int32(0x1E3F), lead[0xBC])
}

func TestTrie_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"too long", `[["fe","abc"]]`},
		{"run at start", `[["81",3]]`},
		{"run after sequence", "[[\"81\",\"\u0fffab\",2]]"},
		{"truncated sequence", "[[\"81\",\"\u0fffa\"]]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trie := NewTrie()
			var err error
			for _, c := range mustChunks(t, tt.data) {
				if err = trie.AddChunk(c); err != nil {
					break
				}
			}
			require.ErrorIs(t, err, errs.ErrMalformedTableData)
		})
	}
}

func TestTrie_AddressThroughMappedByte(t *testing.T) {
	trie := buildTrie(t, `[["81","a"]]`)
	chunks := mustChunks(t, `[["8140","b"]]`)
	require.ErrorIs(t, trie.AddChunk(chunks[0]), errs.ErrMalformedTableData)
}
