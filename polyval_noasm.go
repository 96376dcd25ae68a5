//go:build !(amd64 || arm64) || !gc || purego

package polyval

func blockMulImpl(a, b fieldElement) fieldElement {
	return blockMulKaratsuba(a, b)
}

func absorbGroupImpl(acc fieldElement, group []fieldElement, pow *[8]fieldElement) fieldElement {
	return absorbGroupKaratsuba(acc, group, pow)
}
