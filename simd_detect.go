package turbopfor

import "golang.org/x/sys/cpu"

// hasSSE2 and hasAVX2 record the CPU features the 128v/256v block layouts
// are designed around (4-lane and 8-lane interleaving respectively). The
// portable encoders and decoders in bitpack_interleaved.go are correct
// regardless of these flags; they exist so that a future avo-generated
// kernel (see internal/avo) has somewhere to register itself without
// touching the public API, following the teacher's old
// packLanesImpl/unpackLanesImpl dispatch-variable pattern.
var (
	hasSSE2 bool
	hasAVX2 bool
)

func init() {
	hasSSE2 = cpu.X86.HasSSE2
	hasAVX2 = cpu.X86.HasAVX2
}

// SIMDFeatures reports which vector instruction sets the interleaved block
// layouts (EncodeBlock128v/EncodeBlock256v) could exploit on this CPU. It is
// informational only: both layouts currently always run through the
// portable Go bit-packers, so encoding and decoding are correct either way.
func SIMDFeatures() (sse2, avx2 bool) {
	return hasSSE2, hasAVX2
}

// orReduce32 is the dispatch point selectBitWidth uses to compute the
// bitwise OR of a block's values. It always runs the portable Go loop
// today; internal/avo/orreduce.go generates an SSE2 replacement under the
// avogen build tag, wired in here the same way the teacher's old
// packLanesImpl/unpackLanesImpl variables picked a SIMD path at init time,
// once that generated kernel is vendored as a .s file.
var orReduce32 = orReduce32Portable

func orReduce32Portable(in []uint32) uint32 {
	var acc uint32
	for _, v := range in {
		acc |= v
	}
	return acc
}
