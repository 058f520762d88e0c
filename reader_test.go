package turbopfor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderLoadAndGet(t *testing.T) {
	in := make([]uint32, 10)
	for i := range in {
		in[i] = uint32(i)
	}
	out := EncodeBlock(nil, in)

	r := NewReader()
	assert.False(t, r.IsLoaded())
	require.NoError(t, r.Load(out, len(in), 0))
	assert.True(t, r.IsLoaded())
	assert.Equal(t, len(in), r.Len())

	acc := uint32(0)
	for i, v := range in {
		acc += v + 1
		got, err := r.Get(i)
		require.NoError(t, err)
		assert.Equal(t, acc, got)
	}

	_, err := r.Get(len(in))
	assert.ErrorIs(t, err, ErrPositionOutOfRange)

	_, ok := r.GetSafe(len(in))
	assert.False(t, ok)
}

func TestReaderNotLoaded(t *testing.T) {
	r := NewReader()
	_, err := r.Get(0)
	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.Nil(t, r.Decode(nil))
}

func TestReaderNextAndReset(t *testing.T) {
	in := []uint32{1, 2, 3, 4, 5}
	out := EncodeBlock(nil, in)

	r := NewReader()
	require.NoError(t, r.Load(out, len(in), 0))

	count := 0
	for {
		_, pos, ok := r.Next()
		if !ok {
			break
		}
		assert.Equal(t, count, pos)
		count++
	}
	assert.Equal(t, len(in), count)

	r.Reset()
	assert.Equal(t, 0, r.Pos())
	_, _, ok := r.Next()
	assert.True(t, ok)
}

func TestReaderSkipToSorted(t *testing.T) {
	in := make([]uint32, 20)
	for i := range in {
		in[i] = 1 // every delta-1 word is 1, so decoded values step by 2
	}
	out := EncodeBlock(nil, in)

	r := NewReader()
	require.NoError(t, r.Load(out, len(in), 0))
	assert.True(t, r.IsSorted())

	v, pos, ok := r.SkipTo(10)
	require.True(t, ok)
	assert.GreaterOrEqual(t, v, uint32(10))
	assert.Greater(t, pos, -1)

	_, _, ok = r.SkipTo(1 << 30)
	assert.False(t, ok)
}

func TestReaderDecode(t *testing.T) {
	in := []uint32{0, 1, 2, 3}
	out := EncodeBlock(nil, in)

	r := NewReader()
	require.NoError(t, r.Load(out, len(in), 100))

	dst := r.Decode(nil)
	require.Len(t, dst, len(in))

	acc := uint32(100)
	for i, v := range in {
		acc += v + 1
		assert.Equal(t, acc, dst[i])
	}
}

func TestReaderLoadBlock128v(t *testing.T) {
	var in [128]uint32
	for i := range in {
		in[i] = uint32(i % 5)
	}
	out := EncodeBlock128v(nil, in)

	r := NewReader()
	require.NoError(t, r.LoadBlock128v(out, 0))
	assert.Equal(t, 128, r.Len())

	acc := uint32(0)
	for i, v := range in {
		acc += v + 1
		got, err := r.Get(i)
		require.NoError(t, err)
		assert.Equal(t, acc, got)
	}
}
