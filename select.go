package turbopfor

// Exception strategy tags returned alongside a base bit width by
// selectBitWidth, matching the reference library's bx encoding exactly
// (p4_scalar_internal.cpp, p4Bits32).
const (
	bxNone     = 0          // simple bitpacking, no exceptions
	bxVbyte    = maxBits + 1 // 33: variable-byte exception encoding
	bxConstant = maxBits + 2 // 34: all values equal
)

// selectBitWidth analyzes in (1 to maxValues elements) and returns the base
// bit width b and exception strategy bx that minimize the block's encoded
// size, using the same exact cost model as the reference library's p4Bits32
// (and its n=128 specialization p4Bits128, which is algorithmically
// identical, just loop-unrolled for speed — no separate Go path is needed
// for any particular n).
//
// bx is one of:
//
//	0       no exceptions, simple bitpacking at width b
//	1..31   bitwise patching, patch width bx
//	33      variable-byte exceptions
//	34      constant block (all values equal and non-zero)
func selectBitWidth(in []uint32) (b, bx int) {
	n := len(in)

	bitwiseOr := orReduce32(in)
	first := in[0]
	equalCount := 0
	for _, v := range in {
		if v == first {
			equalCount++
		}
	}

	if bitwiseOr == 0 {
		return 0, bxNone
	}

	maxWidth := bitWidth(bitwiseOr)

	if equalCount == n {
		return maxWidth, bxConstant
	}

	// Histogram of per-value bit widths.
	var bitWidthCount [maxBits + 1]int
	for _, v := range in {
		bitWidthCount[bitWidth(v)]++
	}

	// vbyteAccumulator[d] holds the running vbyte-size contribution of
	// values whose high-bit count above the current candidate width is d
	// bits away from crossing a size-class breakpoint; indices can run
	// negative relative to bit width, so the storage is offset.
	const vbyteAccOffset = maxBits + 16
	var vbyteAccStorage [maxBits*2 + 64 + 16]int
	updateVbyteAcc := func(count, bits int) {
		vbyteAccStorage[vbyteAccOffset+bits-7] += count
		vbyteAccStorage[vbyteAccOffset+bits-15] += count * 2
		vbyteAccStorage[vbyteAccOffset+bits-19] += count * 3
		vbyteAccStorage[vbyteAccOffset+bits-25] += count * 4
	}
	vbyteAcc := func(bits int) int { return vbyteAccStorage[vbyteAccOffset+bits] }

	optimalBase := maxWidth
	exceptionCount := bitWidthCount[maxWidth]
	minSize := pad8(n*maxWidth) + 1

	vbyteSizeAcc := exceptionCount
	updateVbyteAcc(exceptionCount, maxWidth)

	useVbyte := false
	bitmapBytes := pad8(n)

	for baseBits := maxWidth - 1; ; baseBits-- {
		patchBits := maxWidth - baseBits

		vbyteSize := pad8(n*baseBits) + 2 + exceptionCount + vbyteSizeAcc
		patchingSize := pad8(n*baseBits) + 2 + bitmapBytes + pad8(exceptionCount*patchBits)

		// Tie-break: patching wins at equal or smaller cost than vbyte,
		// and only a strictly smaller cost unseats the running minimum.
		// This exact comparison order (not a simplified "smaller wins,
		// ties favor patching" rewrite) is required for bit-exact
		// agreement with the reference selector, whose iteration makes
		// the tie-break history-dependent. A patch width of 32 (base 0 with
		// maxWidth 32) is never chosen, so bx stays within 1..31.
		if patchBits < maxBits && patchingSize < minSize && patchingSize <= vbyteSize {
			minSize = patchingSize
			optimalBase = baseBits
			useVbyte = false
		} else if vbyteSize < minSize {
			minSize = vbyteSize
			optimalBase = baseBits
			useVbyte = true
		}

		if baseBits == 0 {
			break
		}

		exceptionCount += bitWidthCount[baseBits]
		vbyteSizeAcc += bitWidthCount[baseBits] + vbyteAcc(baseBits)
		updateVbyteAcc(bitWidthCount[baseBits], baseBits)
	}

	if useVbyte {
		return optimalBase, bxVbyte
	}
	return optimalBase, maxWidth - optimalBase
}
