//go:build avogen
// +build avogen

package main

import (
	"flag"
	"strings"

	. "github.com/mmcloughlin/avo/build"
)

var (
	component = flag.String("component", "all", "component to generate")
)

// main emits the optional SIMD kernels under the avogen build tag, kept
// separate from the portable codec so the default build never depends on
// avo or on generated assembly being present.
func main() {
	flag.Parse()

	comp := strings.ToLower(*component)

	Package("github.com/Akron/turbopfor-go")
	ConstraintExpr("amd64")
	ConstraintExpr("!noasm")

	if comp == "orreduce" || comp == "all" {
		genOrReduceKernel()
	}

	Generate()
}
