package turbopfor

// Variable-byte encoding constants, matching the reference TurboPFor vlcbyte
// scheme bit-for-bit. This is a different wire format from Google's
// StreamVByte: markers are single bytes that self-describe both the value's
// size class and its high bits, rather than a separate 2-bit-per-value
// control stream.
const (
	vbyteThreshold2Byte = 156     // values >= this need 2+ bytes
	vbyteThreshold3Byte = 16540   // values >= this need 3+ bytes
	vbyteThreshold4Plus = 2113692 // values >= this need 4+ bytes

	vbyteMarker2Byte = 0x9C // first marker for 2-byte encoding
	vbyteMarker3Byte = 0xDC // first marker for 3-byte encoding
	vbyteMarker4Plus = 0xFC // first marker for 4+ byte encoding

	// vbyteEscapeUncompressed marks an array as stored raw (4 bytes per
	// value) rather than variable-byte encoded. This is a fixed protocol
	// constant, never configurable: changing it breaks wire compatibility
	// with the reference decoder.
	vbyteEscapeUncompressed = 0xFF

	// vbyteEscapeThreshold is the minimum number of bytes vbEnc must save
	// relative to the raw 4*n encoding before it is used over the
	// uncompressed escape. Fixed per the reference implementation.
	vbyteEscapeThreshold = 32
)

// vbPut appends the variable-byte encoding of x to out and returns the
// number of bytes written. out must have at least 5 bytes available.
//
//	1 byte:  [0x00..0x9B]                 values [0, 156)
//	2 bytes: [0x9C..0xDB][data]           values [156, 16540)
//	3 bytes: [0xDC..0xFB][lo][hi]         values [16540, 2113692)
//	4 bytes: [0xFC][b0][b1][b2]           values [2113692, 0xFFFFFF]
//	5 bytes: [0xFD][u32 little-endian]    values [0x1000000, 2^32-1]
func vbPut(out []byte, x uint32) int {
	switch {
	case x < vbyteThreshold2Byte:
		out[0] = byte(x)
		return 1
	case x < vbyteThreshold3Byte:
		delta := x - vbyteThreshold2Byte
		out[0] = byte(vbyteMarker2Byte + delta>>8)
		out[1] = byte(delta)
		return 2
	case x < vbyteThreshold4Plus:
		delta := x - vbyteThreshold3Byte
		out[0] = byte(vbyteMarker3Byte + delta>>16)
		out[1] = byte(delta)
		out[2] = byte(delta >> 8)
		return 3
	case x <= 0xFFFFFF:
		out[0] = vbyteMarker4Plus
		out[1] = byte(x)
		out[2] = byte(x >> 8)
		out[3] = byte(x >> 16)
		return 4
	default:
		out[0] = vbyteMarker4Plus + 1
		storeU32(out[1:], x)
		return 5
	}
}

// vbGet decodes a single variable-byte value from the start of in and returns
// the value and the number of bytes consumed.
func vbGet(in []byte) (x uint32, n int) {
	marker := uint32(in[0])
	switch {
	case marker < vbyteMarker2Byte:
		return marker, 1
	case marker < vbyteMarker3Byte:
		delta := (marker-vbyteMarker2Byte)<<8 + uint32(in[1])
		return delta + vbyteThreshold2Byte, 2
	case marker < vbyteMarker4Plus:
		low16 := uint32(loadU16(in[1:]))
		return low16 + (marker-vbyteMarker3Byte)<<16 + vbyteThreshold3Byte, 3
	case marker == vbyteMarker4Plus:
		return loadU24(in[1:]), 4
	default:
		return loadU32(in[1:]), 5
	}
}

// vbEnc encodes n values from in using variable-byte encoding, falling back
// to an uncompressed escape (marker 0xFF followed by n raw little-endian
// uint32 values) when the variable-byte encoding does not save at least
// vbyteEscapeThreshold bytes over the raw n*4 representation. Returns the
// number of bytes written to out, which must have at least n*4+1 bytes
// available.
func vbEnc(out []byte, in []uint32) int {
	var scratch [5]byte
	size := 0
	for _, v := range in {
		size += vbPut(scratch[:], v)
	}
	if size+vbyteEscapeThreshold > len(in)*4 {
		out[0] = vbyteEscapeUncompressed
		copyU32ArrayToLe(out[1:], in)
		return 1 + len(in)*4
	}
	pos := 0
	for _, v := range in {
		pos += vbPut(out[pos:], v)
	}
	return pos
}

// vbDec decodes n values encoded by vbEnc from the start of in into out, and
// returns the number of input bytes consumed.
func vbDec(out []uint32, in []byte, n int) int {
	if n > 0 && in[0] == vbyteEscapeUncompressed {
		copyU32ArrayFromLe(out[:n], in[1:])
		return 1 + n*4
	}
	pos := 0
	for i := 0; i < n; i++ {
		v, consumed := vbGet(in[pos:])
		out[i] = v
		pos += consumed
	}
	return pos
}
