package turbopfor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectBitWidthZeroBlock(t *testing.T) {
	in := make([]uint32, 32)
	b, bx := selectBitWidth(in)
	assert.Equal(t, 0, b)
	assert.Equal(t, bxNone, bx)
}

func TestSelectBitWidthConstantBlock(t *testing.T) {
	in := make([]uint32, 32)
	for i := range in {
		in[i] = 42
	}
	b, bx := selectBitWidth(in)
	assert.Equal(t, bitWidth(42), b)
	assert.Equal(t, bxConstant, bx)
}

func TestSelectBitWidthSimple(t *testing.T) {
	in := make([]uint32, 32)
	for i := range in {
		in[i] = uint32(i)
	}
	b, bx := selectBitWidth(in)
	assert.Equal(t, 5, b) // max value 31 needs 5 bits
	assert.Equal(t, bxNone, bx)
}

func TestSelectBitWidthOutlierUsesExceptionStrategy(t *testing.T) {
	in := make([]uint32, 32)
	for i := range in {
		in[i] = uint32(i)
	}
	in[0] = 1 << 20
	_, bx := selectBitWidth(in)
	assert.True(t, bx == bxVbyte || (bx > bxNone && bx <= maxBits), "expected an exception strategy, got bx=%d", bx)
}

func TestSelectBitWidthVbytePatched(t *testing.T) {
	in := make([]uint32, 16)
	for i := range in {
		in[i] = 5
	}
	in[15] = 100000
	b, bx := selectBitWidth(in)
	assert.Equal(t, 3, b) // 5 needs 3 bits
	assert.Equal(t, bxVbyte, bx)
}

// TestSelectBitWidthSizeOptimality is a weak form of spec.md property 6:
// the chosen strategy's size must not exceed the simple (no-exception)
// encoding's size, since simple at maxWidth is always a valid candidate.
func TestSelectBitWidthSizeOptimality(t *testing.T) {
	cases := [][]uint32{
		{0, 1, 2, 3, 1 << 20},
		{1, 1, 1, 1, 1, 1, 1, 1000000},
		{7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 100000},
	}
	for _, in := range cases {
		b, bx := selectBitWidth(in)
		n := len(in)

		var size int
		switch {
		case bx == bxNone:
			size = pad8(n*b) + 1
		case bx == bxConstant:
			size = pad8(b) + 1
		case bx <= maxBits:
			size = pad8(n*b) + 2 + pad8(n) // at least the bitmap overhead
		default:
			size = pad8(n*b) + 2
		}

		var maxWidth int
		for _, v := range in {
			if w := bitWidth(v); w > maxWidth {
				maxWidth = w
			}
		}
		naiveSize := pad8(n*maxWidth) + 1
		assert.LessOrEqual(t, size, naiveSize, "chosen strategy must not be larger than simple encoding at maxWidth")
	}
}
