package turbopfor

// EncodeBlockUint16 widens up to 127 uint16 values to uint32 and encodes them
// with EncodeBlock. The wire format has no native 16-bit representation
// (matching the reference library, which packs all integer widths through
// the same 32-bit codec); this wrapper exists purely for caller convenience.
// Grounded on the teacher's old fastpfor_uint16.go wrapper pattern.
func EncodeBlockUint16(dst []byte, in []uint16) []byte {
	var widened [127]uint32
	for i, v := range in {
		widened[i] = uint32(v)
	}
	return EncodeBlock(dst, widened[:len(in)])
}

// DecodeDeltaBlockUint16 decodes a block written by EncodeBlockUint16,
// narrowing the reconstructed uint32 values back to uint16. It returns
// ErrMalformedHeader if a reconstructed value does not fit in 16 bits.
func DecodeDeltaBlockUint16(out []uint16, buf []byte, n int, start uint32) (int, error) {
	if len(out) < n {
		return 0, ErrBufferTooSmall
	}
	var widened [127]uint32
	consumed, err := DecodeDeltaBlock(widened[:n], buf, n, start)
	if err != nil {
		return 0, err
	}
	for i := 0; i < n; i++ {
		if widened[i] > 0xFFFF {
			return 0, ErrMalformedHeader
		}
		out[i] = uint16(widened[i])
	}
	return consumed, nil
}
