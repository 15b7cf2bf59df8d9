package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUTF7_Encode(t *testing.T) {
	r := newRegistry(t)

	tests := []struct {
		text string
		want string
	}{
		{"A≢Α.", "A+ImIDkQ-."},
		{"Hi Mom -☺-!", "Hi Mom -+Jjo--+ACE-"},
		{"日本語", "+ZeVnLIqe-"},
		{"1 + 1 = 2", "1 +- 1 +AD0- 2"},
		{"+", "+-"},
		{"++", "+ACsAKw-"},
		{"😀", "+2D3eAA-"},
		{"plain, (direct) 'text'?", "plain, (direct) 'text'?"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			require.Equal(t, tt.want, string(encodeString(t, r, "utf-7", tt.text)))
		})
	}
}

func TestUTF7_Decode(t *testing.T) {
	r := newRegistry(t)

	tests := []struct {
		data string
		want string
	}{
		{"A+ImIDkQ.", "A≢Α."},
		{"A+ImIDkQ-.", "A≢Α."},
		{"Hi Mom -+Jjo--!", "Hi Mom -☺-!"},
		{"+ZeVnLIqe-", "日本語"},
		{"+ZeVnLIqe", "日本語"},
		{"1 +- 1 +AD0- 2", "1 + 1 = 2"},
		{"+-+-", "++"},
		{"+2D3eAA-", "😀"},
		{"a+AGE-+AGI-", "aab"},
		{"+AGE+AGI-", "a\u3e00"},
		{"caf\xe9", "caf\uFFFD"},
	}

	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			require.Equal(t, tt.want, decodeBytes(t, r, "utf-7", []byte(tt.data)))
			require.Equal(t, tt.want, decodeChunks(t, r, "utf-7", bytewise([]byte(tt.data))...))
		})
	}
}

func TestUTF7_ChunkedRunsMatchWhole(t *testing.T) {
	r := newRegistry(t)

	// Each chunk continues the open base64 run.
	got := encodeChunks(t, r, "utf-7", "日", "本", "語", ".")
	require.Equal(t, "+ZeVnLIqe-.", string(got))

	got = encodeChunks(t, r, "utf-7", "a+", "b")
	require.Equal(t, "a+-b", string(got))
}

func TestUTF7IMAP(t *testing.T) {
	r := newRegistry(t)

	tests := []struct {
		text string
		want string
	}{
		{"~peter/mail/日本語/台北", "~peter/mail/&ZeVnLIqe-/&U,BTFw-"},
		{"&", "&-"},
		{"Tom & Jerry", "Tom &- Jerry"},
		{"INBOX", "INBOX"},
		{"a+b!", "a+b!"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			encoded := encodeString(t, r, "utf-7-imap", tt.text)
			require.Equal(t, tt.want, string(encoded))
			require.Equal(t, tt.text, decodeBytes(t, r, "utf-7-imap", encoded))
		})
	}
}
