//go:build amd64 && gc && !purego

package polyval

import "golang.org/x/sys/cpu"

// haveAsm reports whether the CPU exposes the carryless-multiply
// instruction PCLMULQDQ. When true, blockMul and the streamer use the
// four-multiply schoolbook combine PCLMULQDQ favors; otherwise they
// fall back to the portable three-multiply Karatsuba combine.
var haveAsm = cpu.X86.HasPCLMULQDQ

func blockMulImpl(a, b fieldElement) fieldElement {
	if haveAsm {
		return blockMulSchoolbook(a, b)
	}
	return blockMulKaratsuba(a, b)
}

func absorbGroupImpl(acc fieldElement, group []fieldElement, pow *[8]fieldElement) fieldElement {
	if haveAsm {
		return absorbGroupSchoolbook(acc, group, pow)
	}
	return absorbGroupKaratsuba(acc, group, pow)
}
