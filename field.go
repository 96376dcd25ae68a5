package polyval

import "encoding/binary"

// Block is a 16-byte element of GF(2^128), stored little-endian: byte i
// holds bits 8i..8i+7, with bit 0 of a byte being the lowest-degree
// coefficient. Block has no invariants beyond its length.
type Block [16]byte

// MontgomeryBlock is a Block that is understood to carry an implicit
// x^128 factor relative to some ordinary-form value. Its bit layout is
// identical to Block; the type exists only to keep Montgomery-domain and
// ordinary-domain values from being mixed up at call sites.
type MontgomeryBlock Block

// fieldElement is the arithmetic working form of a Block: the same 128
// bits split into two 64-bit halves for carryless multiplication.
type fieldElement struct {
	lo, hi uint64
}

func (z *fieldElement) setBytes(b *Block) {
	z.lo = binary.LittleEndian.Uint64(b[0:8])
	z.hi = binary.LittleEndian.Uint64(b[8:16])
}

func (z fieldElement) block() Block {
	var b Block
	binary.LittleEndian.PutUint64(b[0:8], z.lo)
	binary.LittleEndian.PutUint64(b[8:16], z.hi)
	return b
}

// xor returns the field sum (GF(2^128) addition) of x and y.
func xor(x, y fieldElement) fieldElement {
	return fieldElement{lo: x.lo ^ y.lo, hi: x.hi ^ y.hi}
}

// ctmul is a constant-time carryless (polynomial) multiply of two
// 64-bit operands, producing the 128-bit product split into (hi, lo).
//
// This is a fixed 64-iteration shift-and-mask loop: the iteration count
// and memory accesses never depend on the operand values, which is the
// software equivalent of the data-independence PCLMULQDQ/PMULL provide
// in hardware.
func ctmul(x, y uint64) (hi, lo uint64) {
	var r0, r1 uint64
	for i := 0; i < 64; i++ {
		m := -((y >> uint(i)) & 1)
		t := x & m
		r0 ^= t << uint(i)
		r1 ^= t >> uint(64-i)
	}
	return r1, r0
}

// clmulLL multiplies the low halves of a and b.
func clmulLL(a, b fieldElement) fieldElement {
	hi, lo := ctmul(a.lo, b.lo)
	return fieldElement{lo: lo, hi: hi}
}

// clmulHH multiplies the high halves of a and b.
func clmulHH(a, b fieldElement) fieldElement {
	hi, lo := ctmul(a.hi, b.hi)
	return fieldElement{lo: lo, hi: hi}
}

// clmulLH multiplies a's low half with b's high half.
func clmulLH(a, b fieldElement) fieldElement {
	hi, lo := ctmul(a.lo, b.hi)
	return fieldElement{lo: lo, hi: hi}
}

// clmulHL multiplies a's high half with b's low half.
func clmulHL(a, b fieldElement) fieldElement {
	hi, lo := ctmul(a.hi, b.lo)
	return fieldElement{lo: lo, hi: hi}
}

// gstar is the POLYVAL Montgomery reduction constant: the upper 64 bits
// of P - x^128 (x^127+x^126+x^121), arranged so a single 64x64
// carryless multiply produces the reduction quotient.
var gstar = fieldElement{lo: 0xC200000000000000, hi: 0xC200000000000000}

// swapHalves exchanges the high and low 64-bit lanes of a Block-shaped
// value. It implements the 64-bit rotate the reduction schedule needs
// between its two carryless multiplies.
func swapHalves(x fieldElement) fieldElement {
	return fieldElement{lo: x.hi, hi: x.lo}
}

// reduce performs the POLYVAL Montgomery reduction of the 256-bit
// polynomial ph*x^128 + pl, returning (ph*x^128+pl)*x^-128 mod P.
//
// This is the two-step fast reduction: apart from its constant term,
// P-x^128 has its nonzero coefficients confined to the top 7 bits of its
// upper half, so the
// reduction constant fits in gstar and the whole step costs two
// carryless multiplies and a handful of XORs.
func reduce(ph, pl fieldElement) fieldElement {
	t := clmulLL(gstar, pl)
	tp := swapHalves(t)
	pl = xor(pl, tp)

	z := clmulHH(gstar, pl)
	z = xor(pl, z)

	return xor(ph, z)
}
