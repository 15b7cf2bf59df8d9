package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len(), "new buffer should have zero length")
	assert.Equal(t, 1024, bb.Cap(), "new buffer should have specified capacity")
}

func TestByteBuffer_Writes(t *testing.T) {
	bb := NewByteBuffer(4)

	bb.B = append(bb.B, "abc"...)

	n, err := bb.WriteString("日本")
	require.NoError(t, err)
	require.Equal(t, 6, n)

	n, err = bb.WriteRune('☺')
	require.NoError(t, err)
	require.Equal(t, 3, n)

	n, err = bb.WriteRune(0x1F600)
	require.NoError(t, err)
	require.Equal(t, 4, n)

	require.Equal(t, "abc日本☺😀", bb.String())
	require.Equal(t, []byte("abc日本☺😀"), bb.Bytes())
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(TextBufferDefaultSize)
	_, _ = bb.WriteString("some data")
	originalCap := bb.Cap()

	bb.Reset()

	assert.Equal(t, 0, bb.Len(), "Reset should clear the buffer length")
	assert.Equal(t, originalCap, bb.Cap(), "Reset should preserve capacity")
}

func TestByteBufferPool(t *testing.T) {
	t.Run("returned buffers are reset", func(t *testing.T) {
		p := NewByteBufferPool(32, 1024)
		bb := p.Get()
		_, _ = bb.WriteString("dirty")
		p.Put(bb)

		got := p.Get()
		require.Equal(t, 0, got.Len())
	})

	t.Run("oversized buffers are discarded", func(t *testing.T) {
		p := NewByteBufferPool(32, 64)
		bb := NewByteBuffer(128)
		_, _ = bb.WriteString("large")
		p.Put(bb)

		got := p.Get()
		require.Equal(t, 0, got.Len())
		require.LessOrEqual(t, got.Cap(), 64)
	})

	t.Run("nil put is ignored", func(t *testing.T) {
		p := NewByteBufferPool(32, 64)
		p.Put(nil)
		require.NotNil(t, p.Get())
	})

	t.Run("default text pool", func(t *testing.T) {
		bb := GetTextBuffer()
		require.NotNil(t, bb)
		require.Equal(t, 0, bb.Len())
		PutTextBuffer(bb)
	})
}

func TestByteBufferPool_Concurrent(t *testing.T) {
	p := NewByteBufferPool(16, 1024)

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for range 100 {
				bb := p.Get()
				if bb.Len() != 0 {
					t.Errorf("goroutine %d: got non-empty buffer", id)
					return
				}
				_, _ = bb.WriteString("x")
				p.Put(bb)
			}
		}(i)
	}
	wg.Wait()
}
