package turbopfor

import "math/bits"

// DecodeDeltaBlock decodes up to n values (n <= 127) from buf, written by
// EncodeBlock, applying fused delta-1 reconstruction: decoded word w at
// position i becomes start + sum_{j<=i}(w_j + 1). out must have room for n
// values. Returns the number of input bytes consumed.
// Grounded on p4d1dec32.cpp's p4D1Dec32/p4D1DecPayloadExceptions.
func DecodeDeltaBlock(out []uint32, buf []byte, n int, start uint32) (int, error) {
	if n == 0 {
		return 0, nil
	}
	if len(out) < n {
		return 0, ErrBufferTooSmall
	}

	b, flag, consumed, param, err := readHeader(buf)
	if err != nil {
		return 0, err
	}
	rest := buf[consumed:]

	switch flag {
	case 0x00: // simple
		used, err := safeUnpackDelta1(out[:n], rest, n, b, start, bitunpackDelta1)
		return consumed + used, err

	case headerFlagConstant:
		v, err := loadConstant(rest, b)
		if err != nil {
			return 0, err
		}
		v &= maskBits(b)
		acc := start
		for i := 0; i < n; i++ {
			acc += v + 1
			out[i] = acc
		}
		return consumed + pad8(b), nil

	case headerFlagPatching:
		if param == 0 {
			used, err := safeUnpackDelta1(out[:n], rest, n, b, start, bitunpackDelta1)
			return consumed + used, err
		}
		used, err := decodePatchingExceptions(out[:n], rest, n, b, param, start, bitunpack)
		return consumed + used, err

	default: // headerFlagVbyte
		used, err := decodeVbyteExceptions(out[:n], rest, n, b, start, bitunpack)
		return consumed + used, err
	}
}

// DecodeDeltaBlock128v decodes exactly 128 values from buf, written by
// EncodeBlock128v. Grounded on p4d1dec128v32_scalar.cpp.
func DecodeDeltaBlock128v(out *[128]uint32, buf []byte, start uint32) (int, error) {
	return decodeBlockV(out[:], buf, start, 4)
}

// DecodeDeltaBlock256v decodes exactly 256 values from buf, written by
// EncodeBlock256v. Grounded on the 256v analogue of p4d1dec128v32_scalar.cpp.
func DecodeDeltaBlock256v(out *[256]uint32, buf []byte, start uint32) (int, error) {
	return decodeBlockV(out[:], buf, start, 8)
}

func decodeBlockV(out []uint32, buf []byte, start uint32, lanes int) (int, error) {
	n := len(out)
	b, flag, consumed, param, err := readHeader(buf)
	if err != nil {
		return 0, err
	}
	rest := buf[consumed:]

	unpackBaseV := func(out []uint32, in []byte, n, width int) int {
		return bitunpackInterleaved(out, in, width, lanes)
	}
	unpackBaseDeltaV := func(out []uint32, in []byte, n, width int, start uint32) int {
		used := bitunpackInterleaved(out, in, width, lanes)
		applyDelta1(out, start)
		return used
	}

	switch flag {
	case 0x00:
		used, err := safeUnpackDelta1(out, rest, n, b, start, unpackBaseDeltaV)
		return consumed + used, err

	case headerFlagConstant:
		v, err := loadConstant(rest, b)
		if err != nil {
			return 0, err
		}
		v &= maskBits(b)
		for i := range out {
			out[i] = v
		}
		applyDelta1(out, start)
		return consumed + pad8(b), nil

	case headerFlagPatching:
		if param == 0 {
			used, err := safeUnpackDelta1(out, rest, n, b, start, unpackBaseDeltaV)
			return consumed + used, err
		}
		used, err := decodePatchingExceptions(out, rest, n, b, param, start, unpackBaseV)
		return consumed + used, err

	default: // headerFlagVbyte
		used, err := decodeVbyteExceptions(out, rest, n, b, start, unpackBaseV)
		return consumed + used, err
	}
}

// safeUnpackDelta1 bounds-checks rest before invoking a fused
// unpack+delta1-decode function, converting an out-of-range slice access
// into ErrTruncatedInput rather than a panic.
func safeUnpackDelta1(out []uint32, rest []byte, n, b int, start uint32, fn func(out []uint32, in []byte, n, b int, start uint32) int) (int, error) {
	need := pad8(n * b)
	if len(rest) < need {
		return 0, ErrTruncatedInput
	}
	return fn(out, rest, n, b, start), nil
}

// decodePatchingExceptions is the decode counterpart to
// encodePatchingExceptions: it reads [bitmap][patch bits][base bits], merges
// the patch bits into the base values at the bitmap's marked positions, and
// applies delta-1 reconstruction. unpackBase performs the layout-specific
// (horizontal or interleaved) base-value unpack.
func decodePatchingExceptions(out []uint32, in []byte, n, b, bx int, start uint32, unpackBase func(out []uint32, in []byte, n, width int) int) (int, error) {
	bitmapWords := (n + 63) / 64
	if len(in) < pad8(n) {
		return 0, ErrTruncatedInput
	}

	var bitmap [maxValues / 64]uint64
	for i := 0; i < pad8(n); i++ {
		bitmap[i>>3] |= uint64(in[i]) << uint(8*(i&7))
	}
	excCount := 0
	for i := 0; i < bitmapWords; i++ {
		w := bitmap[i]
		if i == bitmapWords-1 && n&0x3F != 0 {
			w &= (1 << uint(n&0x3F)) - 1
		}
		bitmap[i] = w
		excCount += bits.OnesCount64(w)
	}

	pos := pad8(n)

	if len(in) < pos+pad8(excCount*bx) {
		return 0, ErrTruncatedInput
	}
	var exceptions [maxValues]uint32
	used := bitunpack(exceptions[:excCount], in[pos:], excCount, bx)
	pos += used

	if len(in) < pos+pad8(n*b) {
		return 0, ErrTruncatedInput
	}
	used = unpackBase(out[:n], in[pos:], n, b)
	pos += used

	excIdx := 0
	for w := 0; w < bitmapWords; w++ {
		word := bitmap[w]
		for word != 0 {
			bit := bits.TrailingZeros64(word)
			idx := w*64 + bit
			out[idx] |= exceptions[excIdx] << uint(b)
			excIdx++
			word &= word - 1
		}
	}

	applyDelta1(out[:n], start)
	return pos, nil
}

// decodeVbyteExceptions is the decode counterpart to encodeVbyteExceptions:
// xn (a 1-byte exception count), then base values, then vbyte-encoded
// exception high bits, then a 1-byte position list of length xn. xn is read
// from the payload itself, not from the control header — see header.go's
// doc comment and encodeVbyteExceptions for why.
func decodeVbyteExceptions(out []uint32, in []byte, n, b int, start uint32, unpackBase func(out []uint32, in []byte, n, width int) int) (int, error) {
	if len(in) < 1 {
		return 0, ErrTruncatedInput
	}
	xn := int(in[0])
	pos := 1

	if len(in) < pos+pad8(n*b) {
		return 0, ErrTruncatedInput
	}
	pos += unpackBase(out[:n], in[pos:], n, b)

	var exceptions [maxValues]uint32
	if len(in) < pos+xn {
		// vbDec's variable-length markers need at least 1 byte per value;
		// anything shorter is definitely truncated.
		return 0, ErrTruncatedInput
	}
	pos += vbDec(exceptions[:xn], in[pos:], xn)

	if len(in) < pos+xn {
		return 0, ErrTruncatedInput
	}
	for i := 0; i < xn; i++ {
		position := int(in[pos+i])
		if position >= n {
			return 0, ErrMalformedHeader
		}
		out[position] |= exceptions[i] << uint(b)
	}
	pos += xn

	applyDelta1(out[:n], start)
	return pos, nil
}
