package turbopfor

// EncodeBlock encodes up to 127 values from in, appending the result to dst
// and returning the extended slice. This is the plain (non-SIMD-layout)
// block format: a 1- or 2-byte control header followed by a horizontally
// bit-packed payload and, where the data needs it, an exception area.
// Grounded on p4enc32.cpp's p4Enc32/p4Enc32Payload/p4Enc32PayloadExceptions.
func EncodeBlock(dst []byte, in []uint32) []byte {
	if len(in) == 0 {
		return dst
	}

	start := len(dst)
	dst = growTo(dst, start+maxPayloadSize(len(in)))

	b, bx := selectBitWidth(in)
	n := writeHeader(dst[start:], b, bx)
	n += encodePayload(dst[start+n:], in, b, bx, func(out []byte, v []uint32, w int) int {
		return bitpack(out, v, w)
	})
	return dst[:start+n]
}

// EncodeBlock128v encodes exactly 128 values using the 4-lane interleaved
// layout used by the reference library's SSE-oriented encoder. Grounded on
// p4enc128v32_scalar.cpp.
func EncodeBlock128v(dst []byte, in [128]uint32) []byte {
	return encodeBlockV(dst, in[:], 4)
}

// EncodeBlock256v encodes exactly 256 values using the 8-lane interleaved
// layout used by the reference library's AVX2-oriented encoder. Grounded on
// p4enc256v32_scalar.cpp.
func EncodeBlock256v(dst []byte, in [256]uint32) []byte {
	return encodeBlockV(dst, in[:], 8)
}

func encodeBlockV(dst []byte, in []uint32, lanes int) []byte {
	start := len(dst)
	dst = growTo(dst, start+maxPayloadSize(len(in)))

	var b, bx int
	// p4Bits128 is the reference library's loop-unrolled specialization of
	// the generic selector for n==128; it is algorithmically identical (see
	// select.go), so no separate Go implementation is needed for either
	// block size.
	b, bx = selectBitWidth(in)

	n := writeHeader(dst[start:], b, bx)
	n += encodePayload(dst[start+n:], in, b, bx, func(out []byte, v []uint32, w int) int {
		return bitpackInterleaved(out, v, w, lanes)
	})
	return dst[:start+n]
}

// encodePayload writes the payload bytes for strategy bx at base width b,
// using packBase to bit-pack the "base" values (horizontal for EncodeBlock,
// interleaved for the *v variants). Exception bitmap/patch data is always
// horizontally packed, matching the reference library's choice to keep
// exception encoding layout-independent.
func encodePayload(out []byte, in []uint32, b, bx int, packBase func(out []byte, in []uint32, width int) int) int {
	switch {
	case bx == bxNone:
		return packBase(out, in, b)

	case bx == bxConstant:
		n, _ := storeConstant(out, in[0], b)
		return n

	case bx <= maxBits:
		return encodePatchingExceptions(out, in, b, bx, packBase)

	default: // bxVbyte
		return encodeVbyteExceptions(out, in, b, packBase)
	}
}

// encodePatchingExceptions writes [bitmap][patch bits][base bits], where
// patch bits are the high (above b) bits of each exception, packed
// horizontally at width bx, and base bits are all n values masked to their
// low b bits, packed with packBase. Grounded on
// p4enc32.cpp/p4enc128v32_scalar.cpp's p4Enc*PayloadExceptions bitmap path.
func encodePatchingExceptions(out []byte, in []uint32, b, bx int, packBase func([]byte, []uint32, int) int) int {
	n := len(in)
	baseMask := maskBits(b)

	var base [maxValues]uint32
	var exceptions [maxValues]uint32
	var bitmap [maxValues / 64]uint64

	excCount := 0
	for i, v := range in {
		base[i] = v & baseMask
		if v > baseMask {
			bitmap[i>>6] |= 1 << uint(i&0x3F)
			exceptions[excCount] = v >> uint(b)
			excCount++
		}
	}

	pos := 0
	bitmapWords := (n + 63) / 64
	for i := 0; i < bitmapWords; i++ {
		storeU64(out[pos:], bitmap[i])
		pos += 8
	}
	pos = pad8(n) // bitmap is byte-padded, may be shorter than word-aligned writes above claim

	pos += bitpack(out[pos:], exceptions[:excCount], bx)
	pos += packBase(out[pos:], base[:n], b)
	return pos
}

// encodeVbyteExceptions writes [xn][base bits][vbyte exceptions][position
// list]. xn (the exception count) is written as the first payload byte,
// not as part of the control header — the header alone is computed before
// the exception count is known, and writeHeader's vbyte branch only ever
// emits 1 byte (header.go). This matches p4enc32.cpp's
// p4Enc32PayloadExceptions, which writes *out++ = exception_count as the
// first thing after the control byte.
func encodeVbyteExceptions(out []byte, in []uint32, b int, packBase func([]byte, []uint32, int) int) int {
	n := len(in)
	baseMask := maskBits(b)

	var base [maxValues]uint32
	var exceptions [maxValues]uint32
	var positions [maxValues]byte

	excCount := 0
	for i, v := range in {
		base[i] = v & baseMask
		if v > baseMask {
			positions[excCount] = byte(i)
			exceptions[excCount] = v >> uint(b)
			excCount++
		}
	}

	out[0] = byte(excCount)
	pos := 1
	pos += packBase(out[pos:], base[:n], b)
	pos += vbEnc(out[pos:], exceptions[:excCount])
	copy(out[pos:], positions[:excCount])
	pos += excCount
	return pos
}

// growTo extends dst, if necessary, so that it has at least n bytes of
// length, preserving existing contents, in the teacher's slices.Grow idiom.
func growTo(dst []byte, n int) []byte {
	if cap(dst) < n {
		grown := make([]byte, len(dst), n)
		copy(grown, dst)
		dst = grown
	}
	if len(dst) < n {
		dst = dst[:n]
	}
	return dst
}

// maxPayloadSize is the per-block upper bound on encoded size, following the
// external buffer-sizing contract of n*5+512 bytes: 2 header bytes plus
// pad8(n*32) base bits at the worst case b=32, plus generous exception-area
// slack.
func maxPayloadSize(n int) int {
	return n*5 + 512
}
