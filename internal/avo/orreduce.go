//go:build avogen
// +build avogen

package main

import (
	. "github.com/mmcloughlin/avo/build"
	op "github.com/mmcloughlin/avo/operand"
	"github.com/mmcloughlin/avo/reg"
)

// This file generates the SSE2 kernel for the bitwise-OR reduction used by
// selectBitWidth (select.go) to detect the common all-values-fit-in-b-bits
// and all-zero cases before running the full per-value histogram. Unlike
// the interleaved bit-packers themselves, a horizontal OR-reduce has no
// data dependency between lanes, which makes it a much better match for a
// hand-generated SIMD kernel than the bit-packers are.

func genOrReduceKernel() {
	TEXT("orReduceSIMDAsm", NOSPLIT, "func(values *uint32, n int) uint32")
	Doc("orReduceSIMDAsm returns the bitwise OR of the first n uint32s at values.")
	Doc("n must be >= 0; values must point to at least n uint32s.")

	valuesParam := Load(Param("values"), GP64())
	valuesBase := valuesParam.(reg.GPVirtual)
	n := Load(Param("n"), GP64())

	vecLimit := GP64()
	MOVQ(n, vecLimit)
	ANDQ(op.Imm(0xfffffffc), vecLimit)

	index := GP64()
	XORQ(index, index)

	acc := XMM()
	PXOR(acc, acc)

	vecLoop := "or_reduce_vec_loop"
	vecDone := "or_reduce_vec_done"

	Label(vecLoop)
	CMPQ(index, vecLimit)
	JAE(op.LabelRef(vecDone))

	chunk := XMM()
	MOVOU(op.Mem{Base: valuesBase, Index: index, Scale: 4}, chunk)
	POR(chunk, acc)

	ADDQ(op.Imm(4), index)
	JMP(op.LabelRef(vecLoop))
	Label(vecDone)

	// Horizontal OR of the four accumulator lanes.
	shuffled := XMM()
	MOVOU(acc, shuffled)
	PSHUFD(op.Imm(0x4E), acc, shuffled) // swap high/low 64-bit halves
	POR(shuffled, acc)
	MOVOU(acc, shuffled)
	PSHUFD(op.Imm(0xB1), acc, shuffled) // swap 32-bit halves within each 64-bit half
	POR(shuffled, acc)

	result := GP32()
	MOVL(acc.(reg.VecVirtual).AsX(), result)

	tailLoop := "or_reduce_tail_loop"
	tailDone := "or_reduce_tail_done"

	Label(tailLoop)
	CMPQ(index, n)
	JAE(op.LabelRef(tailDone))

	tailVal := GP32()
	MOVL(op.Mem{Base: valuesBase, Index: index, Scale: 4}, tailVal)
	ORL(tailVal, result)

	ADDQ(op.Imm(1), index)
	JMP(op.LabelRef(tailLoop))
	Label(tailDone)

	Store(result, ReturnIndex(0))
	RET()
}
