package units

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnits(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []uint16
	}{
		{"ascii", "Hi", []uint16{'H', 'i'}},
		{"bmp", "日本", []uint16{0x65E5, 0x672C}},
		{"astral", "😀", []uint16{0xD83D, 0xDE00}},
		{"lone high surrogate (wtf-8)", "\xed\xa0\xbd", []uint16{0xD83D}},
		{"lone low surrogate (wtf-8)", "a\xed\xb8\x80", []uint16{'a', 0xDE00}},
		{"invalid byte", "a\xffb", []uint16{'a', Replacement, 'b'}},
		{"overlong", "\xc0\xaf", []uint16{Replacement, Replacement}},
		{"truncated at end", "a\xe6\x97", []uint16{'a', Replacement}},
		{"bad continuation", "\xe6\x41", []uint16{Replacement, 'A'}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Units(tt.text))
		})
	}
}

func TestReader_SplitSequences(t *testing.T) {
	text := "aé日😀z"
	want := Units(text)

	for i := 0; i <= len(text); i++ {
		for j := i; j <= len(text); j++ {
			var r Reader
			got := r.Append(nil, text[:i])
			got = r.Append(got, text[i:j])
			got = r.Append(got, text[j:])
			got = r.Flush(got)
			require.Equal(t, want, got, "split at %d/%d", i, j)
		}
	}
}

func TestReader_ByteAtATime(t *testing.T) {
	text := "x😀日\xed\xa0\xbd!"
	var r Reader
	var got []uint16
	for i := range len(text) {
		got = r.Append(got, text[i:i+1])
	}
	require.False(t, r.Pending())
	require.Equal(t, Units(text), got)
}

func TestReader_PendingThenInvalid(t *testing.T) {
	var r Reader
	got := r.Append(nil, "\xe6")
	require.True(t, r.Pending())
	got = r.Append(got, "A")
	require.False(t, r.Pending())
	require.Equal(t, []uint16{Replacement, 'A'}, got)
}

func TestWriter(t *testing.T) {
	tests := []struct {
		name  string
		units []uint16
		want  string
	}{
		{"ascii", []uint16{'o', 'k'}, "ok"},
		{"pair", []uint16{0xD83D, 0xDE00}, "😀"},
		{"lone high then char", []uint16{0xD83D, 'a'}, "�a"},
		{"lone low", []uint16{0xDE00, 'a'}, "�a"},
		{"high at end", []uint16{'a', 0xD83D}, "a�"},
		{"two highs then low", []uint16{0xD83D, 0xD83D, 0xDE00}, "�😀"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, String(tt.units))
		})
	}
}

func TestWriter_PairAcrossCalls(t *testing.T) {
	var w Writer
	first := w.AppendUnit(nil, 0xD83D)
	require.Empty(t, first)
	second := w.AppendUnit(nil, 0xDE00)
	require.Equal(t, "😀", string(second))
	require.Empty(t, w.Flush(nil))
}

func TestWriter_AppendRune(t *testing.T) {
	var w Writer
	out := w.AppendRune(nil, 0x1F600)
	out = w.AppendRune(out, 'é')
	out = w.AppendRune(out, 0x110000)
	out = w.AppendRune(out, -1)
	require.Equal(t, "😀é��", string(w.Flush(out)))
}

func TestSplitCombine(t *testing.T) {
	for _, r := range []rune{0x10000, 0x1F600, 0x10FFFF} {
		hi, lo := Split(r)
		require.True(t, IsHighSurrogate(hi))
		require.True(t, IsLowSurrogate(lo))
		require.Equal(t, r, Combine(hi, lo))
	}
	require.Equal(t, []uint16{Replacement}, AppendRune(nil, 0x110000))
}
