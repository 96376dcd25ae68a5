//go:build arm64 && gc && !purego

package polyval

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// haveAsm reports whether the CPU exposes the polynomial-multiply
// instruction PMULL. Darwin's arm64 ABI guarantees the crypto
// extensions are present, so it is treated as always having them.
var haveAsm = runtime.GOOS == "darwin" || cpu.ARM64.HasPMULL

// blockMul and the streamer are always Karatsuba-combined on arm64:
// operand counts favor three multiplies over four regardless of
// whether PMULL is present. haveAsm is not consulted here: both of its
// settings run the same pure-Go Karatsuba combine.
func blockMulImpl(a, b fieldElement) fieldElement {
	return blockMulKaratsuba(a, b)
}

func absorbGroupImpl(acc fieldElement, group []fieldElement, pow *[8]fieldElement) fieldElement {
	return absorbGroupKaratsuba(acc, group, pow)
}
