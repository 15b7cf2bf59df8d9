package table

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/iconv/errs"
)

func TestParseChunks(t *testing.T) {
	data := []byte(`[
["0","\u0000",127,"€"],
["8140","丂丄",3,"\u0fffÊ\u0304x"],
["8135f437","\ue7c7"]
]`)

	chunks, err := ParseChunks(data)
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	require.Equal(t, uint32(0), chunks[0].Start)
	require.Equal(t, []Part{{Text: []rune{0}}, {Run: 127}, {Text: []rune{'€'}}}, chunks[0].Parts)

	require.Equal(t, uint32(0x8140), chunks[1].Start)
	require.Equal(t, []rune("丂丄"), chunks[1].Parts[0].Text)
	require.Equal(t, 3, chunks[1].Parts[1].Run)
	require.Equal(t, []rune{0x0FFF, 'Ê', 0x0304, 'x'}, chunks[1].Parts[2].Text)

	require.Equal(t, uint32(0x8135F437), chunks[2].Start)
}

func TestParseChunks_SurrogateEscapes(t *testing.T) {
	chunks, err := ParseChunks([]byte(`[["8740","\ud85c\ude67"]]`))
	require.NoError(t, err)
	require.Equal(t, []rune{0x27267}, chunks[0].Parts[0].Text)
}

func TestParseChunks_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `[["81",`},
		{"not an array", `{"a":1}`},
		{"row not an array", `["8140"]`},
		{"missing address", `[[]]`},
		{"numeric address", `[[8140,"a"]]`},
		{"bad hex", `[["zz","a"]]`},
		{"negative run", `[["81","a",-2]]`},
		{"fractional run", `[["81","a",1.5]]`},
		{"object element", `[["81",{}]]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseChunks([]byte(tt.data))
			require.ErrorIs(t, err, errs.ErrMalformedTableData)
		})
	}
}
