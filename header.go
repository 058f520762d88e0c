package turbopfor

// Control-byte flags, matching the reference p4_scalar_internal.cpp
// writeHeader/p4D1Dec32 exactly:
//
//	0x00-0x3F  simple bitpacking, no second byte           (b = byte & 0x3F)
//	0x40-0x7F  variable-byte exceptions, no second byte    (b = byte & 0x3F)
//	0x80-0xBF  bitmap patching, second byte = bx           (b = byte & 0x3F)
//	0xC0-0xFF  constant block, no second byte              (b = byte & 0x3F)
//
// The vbyte exception count (xn) is not part of the control header: like
// the reference p4enc32.cpp, it is the first byte of the payload, written
// and read by encodeVbyteExceptions/decodeVbyteExceptions themselves.
const (
	headerFlagVbyte    = 0x40
	headerFlagPatching = 0x80
	headerFlagConstant = 0xC0
	headerFlagMask     = 0xC0
	headerParamMask    = 0x3F
)

// writeHeader appends the 1- or 2-byte control header for base width b and
// exception strategy bx to out, and returns the number of bytes written.
func writeHeader(out []byte, b, bx int) int {
	switch {
	case bx == bxNone:
		out[0] = byte(b)
		return 1
	case bx <= maxBits:
		out[0] = byte(headerFlagPatching | b)
		out[1] = byte(bx)
		return 2
	case bx == bxVbyte:
		out[0] = byte(headerFlagVbyte | b)
		return 1
	default: // bxConstant
		out[0] = byte(headerFlagConstant | b)
		return 1
	}
}

// readHeader parses the control byte(s) at the start of in and returns the
// base bit width b, the strategy flag (one of the headerFlag* constants
// above), the consumed byte count, and — for the patching strategy only —
// the second header byte (bx, the patch width; 0 for every other
// strategy). An error is returned if in is too short, if b exceeds 32 bits
// in any strategy, or if a patching-mode bx exceeds 31 (spec.md §4.E/§7: the
// decoder must defensively reject b > 32 and bx > 31, not just the
// constant-mode case).
func readHeader(in []byte) (b, flag, consumed, param int, err error) {
	if len(in) < 1 {
		return 0, 0, 0, 0, ErrTruncatedInput
	}
	first := int(in[0])
	flag = first & headerFlagMask
	b = first & headerParamMask
	if b > maxBits {
		return 0, 0, 0, 0, ErrMalformedHeader
	}

	switch flag {
	case 0x00: // simple
		return b, 0x00, 1, 0, nil
	case headerFlagConstant:
		return b, headerFlagConstant, 1, 0, nil
	case headerFlagVbyte:
		return b, headerFlagVbyte, 1, 0, nil
	default: // headerFlagPatching
		if len(in) < 2 {
			return 0, 0, 0, 0, ErrTruncatedInput
		}
		bx := int(in[1])
		if bx > maxBits-1 {
			return 0, 0, 0, 0, ErrMalformedHeader
		}
		return b, headerFlagPatching, 2, bx, nil
	}
}
