package polyval

import (
	"crypto/subtle"
	"errors"
	"fmt"
)

// KeyPowers is the precomputed table of H^1..H^8, each held as the
// fieldElement form of a MontgomeryBlock, that the streamer folds
// message blocks against. Entries are contiguous in memory (entry i is
// at offset 16*(i-1)) so the streamer can load any contiguous suffix
// with aligned 16-byte loads. pow is kept as fieldElement rather than
// MontgomeryBlock directly so the streamer's hot path never pays for a
// Block<->fieldElement round trip; At() is the typed boundary callers
// outside this package see.
//
// A KeyPowers is read-only once constructed and safe to share across
// goroutines.
type KeyPowers struct {
	pow [8]fieldElement
}

// NewKeyPowers builds the KeyPowers table from a raw 16-byte hash key.
// The all-zero key is rejected: it forces every power of H to zero,
// which collapses POLYVAL to a constant function of N alone.
func NewKeyPowers(key Block) (*KeyPowers, error) {
	var v byte
	for i := range key {
		v |= key[i]
	}
	if subtle.ConstantTimeByteEq(v, 0) == 1 {
		return nil, errors.New("polyval: the zero key is invalid")
	}

	var kp KeyPowers
	var h fieldElement
	h.setBytes(&key)
	kp.pow[0] = h
	for i := 1; i < len(kp.pow); i++ {
		kp.pow[i] = blockMul(kp.pow[i-1], kp.pow[0])
	}
	return &kp, nil
}

// At returns the i-th power of H (1-indexed: At(1) is H^1, At(8) is
// H^8) as a MontgomeryBlock: every table entry carries the implicit
// x^128 factor the streamer's BlockMul calls expect, and the return
// type says so, so a caller cannot pass it somewhere an ordinary-form
// Block is expected without an explicit conversion. It panics if i is
// out of 1..=8.
func (kp *KeyPowers) At(i int) MontgomeryBlock {
	if i < 1 || i > len(kp.pow) {
		panic(fmt.Sprintf("polyval: key power %d out of range", i))
	}
	return MontgomeryBlock(kp.pow[i-1].block())
}

// checkConsistency verifies the defining invariant entry[i+1] =
// BlockMul(entry[i], entry[1]) for every adjacent pair. It exists for
// tests; production callers never need it since NewKeyPowers always
// builds a consistent table.
func (kp *KeyPowers) checkConsistency() bool {
	for i := 0; i < len(kp.pow)-1; i++ {
		got := blockMul(kp.pow[i], kp.pow[0])
		if got != kp.pow[i+1] {
			return false
		}
	}
	return true
}
