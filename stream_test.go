package iconv

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/iconv/errs"
)

func TestEncodeWriter(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewEncodeWriter(&buf, "shift_jis")
	require.NoError(t, err)

	text := []byte("日本語テキスト")
	// Split inside a UTF-8 sequence.
	n, err := w.Write(text[:4])
	require.NoError(t, err)
	require.Equal(t, 4, n)
	n, err = w.Write(text[4:])
	require.NoError(t, err)
	require.Equal(t, len(text)-4, n)
	require.NoError(t, w.Close())

	want, err := Encode(string(text), "shift_jis")
	require.NoError(t, err)
	require.Equal(t, want, buf.Bytes())

	_, err = w.Write([]byte("x"))
	require.ErrorIs(t, err, errs.ErrStreamEnded)
}

func TestEncodeWriter_FlushOnClose(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewEncodeWriter(&buf, "utf-7")
	require.NoError(t, err)

	_, err = io.WriteString(w, "日本語")
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.Equal(t, "+ZeVnLIqe-", buf.String())
}

func TestEncodeWriter_UnknownEncoding(t *testing.T) {
	_, err := NewEncodeWriter(io.Discard, "nope")
	require.ErrorIs(t, err, errs.ErrUnknownEncoding)
}

func TestEncodeWriter_WriteError(t *testing.T) {
	failing := errors.New("disk full")
	w, err := NewEncodeWriter(errWriter{failing}, "utf-8")
	require.NoError(t, err)

	_, err = w.Write([]byte("x"))
	require.ErrorIs(t, err, failing)
}

type errWriter struct{ err error }

func (e errWriter) Write([]byte) (int, error) { return 0, e.err }

func TestDecodeReader(t *testing.T) {
	text := strings.Repeat("中文字符 😀 ", 5000)
	data, err := Encode(text, "gb18030")
	require.NoError(t, err)

	r, err := NewDecodeReader(bytes.NewReader(data), "gb18030")
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, text, string(got))
}

func TestDecodeReader_OneByteReads(t *testing.T) {
	data, err := Encode("Ê̄ 繁體", "big5")
	require.NoError(t, err)

	r, err := NewDecodeReader(iotest.OneByteReader(bytes.NewReader(data)), "big5")
	require.NoError(t, err)
	require.NoError(t, iotest.TestReader(r, []byte("Ê̄ 繁體")))
}

func TestDecodeReader_TruncatedInput(t *testing.T) {
	r, err := NewDecodeReader(bytes.NewReader([]byte{'a', 0x82}), "shift_jis")
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "a\uFFFD", string(got))
}

func TestDecodeReader_ReadError(t *testing.T) {
	failing := errors.New("connection reset")
	r, err := NewDecodeReader(iotest.ErrReader(failing), "utf-8")
	require.NoError(t, err)

	_, err = io.ReadAll(r)
	require.ErrorIs(t, err, failing)
}
