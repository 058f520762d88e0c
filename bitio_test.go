package turbopfor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPad8(t *testing.T) {
	cases := map[int]int{0: 0, 1: 1, 7: 1, 8: 1, 9: 2, 15: 2, 16: 2, 17: 3}
	for in, want := range cases {
		assert.Equal(t, want, pad8(in), "pad8(%d)", in)
	}
}

func TestMaskBits(t *testing.T) {
	assert.Equal(t, uint32(0), maskBits(0))
	assert.Equal(t, uint32(1), maskBits(1))
	assert.Equal(t, uint32(0xFF), maskBits(8))
	assert.Equal(t, ^uint32(0), maskBits(32))
}

func TestBitWidth(t *testing.T) {
	assert.Equal(t, 0, bitWidth(0))
	assert.Equal(t, 1, bitWidth(1))
	assert.Equal(t, 6, bitWidth(42))
	assert.Equal(t, 32, bitWidth(0xFFFFFFFF))
}

func TestConstantRoundTrip(t *testing.T) {
	for b := 0; b <= 32; b++ {
		v := maskBits(b)
		buf := make([]byte, pad8(b)+4)
		n, err := storeConstant(buf, v, b)
		require.NoError(t, err)
		assert.Equal(t, pad8(b), n)

		got, err := loadConstant(buf[:n], b)
		require.NoError(t, err)
		assert.Equal(t, v, got, "b=%d", b)
	}
}

func TestLoadConstantTruncated(t *testing.T) {
	_, err := loadConstant([]byte{0x01}, 32)
	assert.ErrorIs(t, err, ErrTruncatedInput)
}

func TestStoreConstantBufferTooSmall(t *testing.T) {
	_, err := storeConstant(make([]byte, 1), 0xFFFFFFFF, 32)
	assert.ErrorIs(t, err, ErrBufferTooSmall)
}

func TestLoadU32StoreU32RoundTrip(t *testing.T) {
	buf := make([]byte, 4)
	storeU32(buf, 0xDEADBEEF)
	assert.Equal(t, uint32(0xDEADBEEF), loadU32(buf))
}

func TestLoadU64StoreU64RoundTrip(t *testing.T) {
	buf := make([]byte, 8)
	storeU64(buf, 0x0123456789ABCDEF)
	assert.Equal(t, uint64(0x0123456789ABCDEF), loadU64(buf))
}

func TestCopyU32ArrayRoundTrip(t *testing.T) {
	in := []uint32{1, 2, 3, 0xFFFFFFFF}
	buf := make([]byte, len(in)*4)
	copyU32ArrayToLe(buf, in)

	out := make([]uint32, len(in))
	copyU32ArrayFromLe(out, buf)
	assert.Equal(t, in, out)
}
