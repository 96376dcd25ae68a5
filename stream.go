package polyval

// Update advances acc in place by POLYVAL-absorbing the blocks in
// input, using keys as the precomputed power table:
//
//	acc' = H^N*acc + H^N*M_0 + H^(N-1)*M_1 + ... + H^1*M_(N-1)
//
// where H is the ordinary-form hash key keys was built from. len(input)
// must be a multiple of 16; Update panics otherwise. N == 0 is a no-op.
//
// Update is synchronous, allocation-free and safe to call concurrently
// on disjoint accumulators sharing the same KeyPowers table.
func Update(acc *Block, keys *KeyPowers, input []byte) {
	if len(input)%16 != 0 {
		panic("polyval: input is not a multiple of the block size")
	}
	nblocks := len(input) / 16

	var s fieldElement
	s.setBytes(acc)

	var scratch [8]fieldElement
	idx := 0
	if r := nblocks % 8; r > 0 {
		group := loadGroup(&scratch, input[:r*16], r)
		s = tailGroup(s, group, &keys.pow, r)
		idx = r
	}
	for nblocks-idx >= 8 {
		group := loadGroup(&scratch, input[idx*16:(idx+8)*16], 8)
		s = absorbGroupImpl(s, group, &keys.pow)
		idx += 8
	}

	*acc = s.block()
}

// loadGroup decodes n consecutive 16-byte blocks out of buf into the
// first n entries of dst, in message order, and returns dst[:n].
func loadGroup(dst *[8]fieldElement, buf []byte, n int) []fieldElement {
	group := dst[:n]
	for i := 0; i < n; i++ {
		var b Block
		copy(b[:], buf[i*16:i*16+16])
		group[i].setBytes(&b)
	}
	return group
}

// tailGroup absorbs the ragged r-block prefix (1 <= r <= 7) that
// precedes the first aligned 8-block stride. Before folding in the
// messages, the running accumulator is effectively multiplied by
// keys[r] -- the power that lines up with the stride boundary -- by
// treating it as the j==0 term of the same r-wide accumulation group
// the message blocks join.
//
// The dispatch below exists to mirror the unrolled load-size sub-paths
// a hand-written kernel would pick between (4..7 wide loads, then 3, 2,
// 1); every sub-path shares the same absorbGroupImpl combine-and-reduce
// step; see P8 in the property tests.
func tailGroup(acc fieldElement, group []fieldElement, pow *[8]fieldElement, r int) fieldElement {
	switch {
	case r >= 4:
		return tailGroup4to7(acc, group, pow)
	case r == 3:
		return tailGroup3(acc, group, pow)
	case r == 2:
		return tailGroup2(acc, group, pow)
	default:
		return tailGroup1(acc, group, pow)
	}
}

func tailGroup4to7(acc fieldElement, group []fieldElement, pow *[8]fieldElement) fieldElement {
	return absorbGroupImpl(acc, group, pow)
}

func tailGroup3(acc fieldElement, group []fieldElement, pow *[8]fieldElement) fieldElement {
	return absorbGroupImpl(acc, group, pow)
}

func tailGroup2(acc fieldElement, group []fieldElement, pow *[8]fieldElement) fieldElement {
	return absorbGroupImpl(acc, group, pow)
}

func tailGroup1(acc fieldElement, group []fieldElement, pow *[8]fieldElement) fieldElement {
	return absorbGroupImpl(acc, group, pow)
}

// absorbGroupKaratsuba folds a 1..8 block group into acc with one
// Karatsuba-combined 256-bit accumulation followed by a single
// Montgomery reduction. The j-th block (message order) is multiplied by
// keys[len(group)-j]; the j==0 block is first XORed with acc so the
// incoming accumulator rides along in the same reduction.
func absorbGroupKaratsuba(acc fieldElement, group []fieldElement, pow *[8]fieldElement) fieldElement {
	n := len(group)
	var h, l, m fieldElement
	for j := 0; j < n; j++ {
		y := group[j]
		if j == 0 {
			y = xor(y, acc)
		}
		key := pow[n-1-j]

		h = xor(h, clmulHH(key, y))
		l = xor(l, clmulLL(key, y))

		kx := fieldElement{lo: key.hi ^ key.lo, hi: key.hi ^ key.lo}
		yx := fieldElement{lo: y.hi ^ y.lo, hi: y.hi ^ y.lo}
		m = xor(m, clmulLL(kx, yx))
	}

	mp := xor(xor(m, l), h)
	pl := fieldElement{lo: l.lo, hi: l.hi ^ mp.lo}
	ph := fieldElement{lo: h.lo ^ mp.hi, hi: h.hi}
	return reduce(ph, pl)
}

// absorbGroupSchoolbook is the four-multiply twin of
// absorbGroupKaratsuba: it computes the middle term directly from the
// low-high and high-low half products instead of recovering it from the
// Karatsuba identity. Both produce bit-identical (PH, PL).
func absorbGroupSchoolbook(acc fieldElement, group []fieldElement, pow *[8]fieldElement) fieldElement {
	n := len(group)
	var h, l, m fieldElement
	for j := 0; j < n; j++ {
		y := group[j]
		if j == 0 {
			y = xor(y, acc)
		}
		key := pow[n-1-j]

		h = xor(h, clmulHH(key, y))
		l = xor(l, clmulLL(key, y))
		m = xor(m, xor(clmulLH(key, y), clmulHL(key, y)))
	}

	pl := fieldElement{lo: l.lo, hi: l.hi ^ m.lo}
	ph := fieldElement{lo: h.lo ^ m.hi, hi: h.hi}
	return reduce(ph, pl)
}
