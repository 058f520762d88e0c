package turbopfor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVbPutGetRoundTrip(t *testing.T) {
	cases := []uint32{
		0, 1, 155, 156, 157, 16539, 16540, 16541,
		2113691, 2113692, 2113693, 0xFFFFFF, 0x1000000, 0xFFFFFFFF,
	}
	for _, x := range cases {
		var buf [5]byte
		n := vbPut(buf[:], x)
		got, consumed := vbGet(buf[:])
		assert.Equal(t, x, got, "value %d", x)
		assert.Equal(t, n, consumed, "value %d", x)
	}
}

func TestVbPutSizeClasses(t *testing.T) {
	tests := []struct {
		x        uint32
		wantSize int
	}{
		{0, 1},
		{155, 1},
		{156, 2},
		{16539, 2},
		{16540, 3},
		{2113691, 3},
		{2113692, 4},
		{0xFFFFFF, 4},
		{0x1000000, 5},
	}
	for _, tc := range tests {
		var buf [5]byte
		n := vbPut(buf[:], tc.x)
		assert.Equal(t, tc.wantSize, n, "x=%d", tc.x)
	}
}

func TestVbEncDecRoundTrip(t *testing.T) {
	in := []uint32{0, 1, 2, 1000, 1<<20 + 1, 0xFFFFFFFF, 5}
	out := make([]byte, len(in)*4+1)
	n := vbEnc(out, in)

	decoded := make([]uint32, len(in))
	consumed := vbDec(decoded, out[:n], len(in))

	require.Equal(t, n, consumed)
	assert.Equal(t, in, decoded)
}

func TestVbEncUncompressedEscape(t *testing.T) {
	// Values that do not compress (5 vbyte bytes each versus 4 raw) trigger
	// the 0xFF escape because the savings fall under vbyteEscapeThreshold.
	in := make([]uint32, 4)
	for i := range in {
		in[i] = 0xFFFFFFFF
	}
	out := make([]byte, len(in)*4+1)
	n := vbEnc(out, in)
	assert.Equal(t, byte(vbyteEscapeUncompressed), out[0])
	assert.Equal(t, 1+len(in)*4, n)

	decoded := make([]uint32, len(in))
	consumed := vbDec(decoded, out[:n], len(in))
	assert.Equal(t, n, consumed)
	assert.Equal(t, in, decoded)
}

func TestVbEncEmpty(t *testing.T) {
	// An empty array never saves vbyteEscapeThreshold bytes over its
	// (zero-byte) raw form, so it takes the uncompressed-escape path.
	out := make([]byte, 8)
	n := vbEnc(out, nil)
	assert.Equal(t, 1, n)
	assert.Equal(t, byte(vbyteEscapeUncompressed), out[0])
}
