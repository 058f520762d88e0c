// Package turbopfor implements a PFOR ("Patched Frame-Of-Reference") codec for
// arrays of unsigned 32-bit integers, bit-exact with the reference TurboPFor C
// library's p4enc32/p4d1dec32 block format.
//
// A block holds at most 256 values. Each value is split into a base of b bits,
// chosen to minimize the encoded size, plus an exception area for values that
// do not fit in b bits. The exception area is encoded either as a bitmap plus
// fixed-width patch bits, or as a variable-byte list plus a position table,
// whichever is smaller; all-zero and constant blocks are special-cased. Three
// block layouts share this scheme: a plain horizontal layout (EncodeBlock, up
// to 127 values), and two SIMD-friendly interleaved layouts used by the
// reference library's vectorized encoders (EncodeBlock128v, EncodeBlock256v).
//
// The package keeps no mutable state and performs no I/O; callers own their
// buffers and pass them in directly, mirroring the teacher package's
// buffer-reuse conventions.
package turbopfor
