package turbopfor

import (
	"encoding/binary"
	"math/bits"
)

// bo is the wire byte order used throughout the package. TurboPFor's format is
// defined in terms of little-endian multi-byte fields regardless of host
// endianness.
var bo = binary.LittleEndian

const (
	// maxBits is the number of bits in the widest value this package encodes.
	maxBits = 32
	// maxValues is the largest block length accepted by any operation.
	maxValues = 256
)

// bitWidth returns the number of bits needed to represent x, i.e. the position
// of its highest set bit plus one, or 0 for x == 0. Equivalent to the
// reference library's bitWidth32/bsr32.
func bitWidth(x uint32) int {
	return bits.Len32(x)
}

// maskBits returns a mask with the low b bits set. b must be in [0, 32].
func maskBits(b int) uint32 {
	if b >= 32 {
		return ^uint32(0)
	}
	if b == 0 {
		return 0
	}
	return uint32(1)<<uint(b) - 1
}

// pad8 returns the number of bytes needed to hold x bits, i.e. x/8 rounded up.
func pad8(x int) int {
	return (x + 7) / 8
}

// loadU16 reads an unaligned little-endian uint16 from the start of b.
func loadU16(b []byte) uint16 {
	return bo.Uint16(b)
}

// loadU24 reads an unaligned little-endian 24-bit value from the start of b.
func loadU24(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
}

// loadU32 reads an unaligned little-endian uint32 from the start of b.
func loadU32(b []byte) uint32 {
	return bo.Uint32(b)
}

// loadU64 reads an unaligned little-endian uint64 from the start of b.
func loadU64(b []byte) uint64 {
	return bo.Uint64(b)
}

// storeU16 writes v as an unaligned little-endian uint16 at the start of b.
func storeU16(b []byte, v uint16) {
	bo.PutUint16(b, v)
}

// storeU32 writes v as an unaligned little-endian uint32 at the start of b.
func storeU32(b []byte, v uint32) {
	bo.PutUint32(b, v)
}

// storeU64 writes v as an unaligned little-endian uint64 at the start of b.
func storeU64(b []byte, v uint64) {
	bo.PutUint64(b, v)
}

// loadConstant reads the (b+7)/8 bytes that a constant-block payload actually
// stores, without reading past the bytes the encoder promised to write. Used
// by both the horizontal and interleaved constant-block decoders in place of
// the reference C implementation's unconditional 4-byte load, which relies on
// buffer over-read tolerance that a Go slice does not offer.
func loadConstant(in []byte, b int) (uint32, error) {
	n := pad8(b)
	if len(in) < n {
		return 0, ErrTruncatedInput
	}
	switch n {
	case 0:
		return 0, nil
	case 1:
		return uint32(in[0]), nil
	case 2:
		return uint32(loadU16(in)), nil
	case 3:
		return loadU24(in), nil
	case 4:
		return loadU32(in), nil
	default:
		return 0, ErrMalformedHeader
	}
}

// storeConstant writes the (b+7)/8 bytes a constant-block payload needs,
// masked to b bits, without writing past that many bytes.
func storeConstant(out []byte, v uint32, b int) (int, error) {
	n := pad8(b)
	if len(out) < n {
		return 0, ErrBufferTooSmall
	}
	v &= maskBits(b)
	switch n {
	case 0:
	case 1:
		out[0] = byte(v)
	case 2:
		storeU16(out, uint16(v))
	case 3:
		out[0] = byte(v)
		out[1] = byte(v >> 8)
		out[2] = byte(v >> 16)
	case 4:
		storeU32(out, v)
	}
	return n, nil
}

// copyU32ArrayToLe writes n uint32 values to out in little-endian order. On
// little-endian hosts this degenerates to a byte-for-byte copy; kept as a
// named helper so the b==32 fast paths read the same way the reference
// library's copyU32ArrayToLe/FromLe do.
func copyU32ArrayToLe(out []byte, in []uint32) {
	for i, v := range in {
		storeU32(out[i*4:], v)
	}
}

// copyU32ArrayFromLe reads len(out) little-endian uint32 values from in.
func copyU32ArrayFromLe(out []uint32, in []byte) {
	for i := range out {
		out[i] = loadU32(in[i*4:])
	}
}
