// Package polyval implements POLYVAL per RFC 8452.
//
// POLYVAL is the byte-wise reverse of GHASH: both are universal hashes
// over GF(2^128), but POLYVAL's bit order lets AES-GCM-SIV and HCTR2
// avoid the byte-reversal GHASH-based constructions need.
//
// [rfc8452]: https://datatracker.ietf.org/doc/html/rfc8452#section-3
// [gueron]: https://crypto.stanford.edu/RealWorldCrypto/slides/gueron.pdf
package polyval

import (
	"encoding"
	"encoding/binary"
	"fmt"
)

// Polyval is a running POLYVAL hash.
//
// It operates like the standard library's hash.Hash, but only ever
// accepts whole 16-byte blocks: POLYVAL has no notion of a partial
// block, and byte-granular tail handling belongs to the caller.
type Polyval struct {
	// Make Polyval non-comparable to discourage an accidental == that
	// would defeat the constant-time intent of the digest comparison.
	_ [0]func()
	// keys is the precomputed table of powers of the hash key.
	keys KeyPowers
	// y is the running accumulator.
	y Block
}

var (
	_ encoding.BinaryMarshaler   = (*Polyval)(nil)
	_ encoding.BinaryUnmarshaler = (*Polyval)(nil)
)

// New creates a Polyval from a 16-byte hash key. A zero key is
// rejected: see NewKeyPowers.
func New(key []byte) (*Polyval, error) {
	if len(key) != 16 {
		return nil, fmt.Errorf("polyval: invalid key size: %d", len(key))
	}
	var k Block
	copy(k[:], key)

	keys, err := NewKeyPowers(k)
	if err != nil {
		return nil, err
	}
	return &Polyval{keys: *keys}, nil
}

// Size returns the size of a POLYVAL digest.
func (p *Polyval) Size() int { return 16 }

// BlockSize returns the size of a POLYVAL block.
func (p *Polyval) BlockSize() int { return 16 }

// Reset sets the accumulator back to zero. The key schedule is
// untouched.
func (p *Polyval) Reset() {
	p.y = Block{}
}

// Update absorbs zero or more whole blocks into the running hash.
//
// If len(blocks) is not a multiple of BlockSize, Update panics.
func (p *Polyval) Update(blocks []byte) {
	Update(&p.y, &p.keys, blocks)
}

// Sum appends the current digest to b and returns the resulting slice.
// It does not change the underlying hash state.
func (p *Polyval) Sum(b []byte) []byte {
	return append(b, p.y[:]...)
}

// MarshalBinary implements encoding.BinaryMarshaler. It never returns
// an error.
func (p *Polyval) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 16*(1+len(p.keys.pow)))
	yf := p.y.fieldElement()
	binary.LittleEndian.PutUint64(buf[0:8], yf.lo)
	binary.LittleEndian.PutUint64(buf[8:16], yf.hi)
	for i, x := range p.keys.pow {
		binary.LittleEndian.PutUint64(buf[16+(i*16):], x.lo)
		binary.LittleEndian.PutUint64(buf[24+(i*16):], x.hi)
	}
	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. data must be
// exactly 16*(1+8) bytes, as produced by MarshalBinary.
func (p *Polyval) UnmarshalBinary(data []byte) error {
	want := 16 * (1 + len(p.keys.pow))
	if len(data) != want {
		return fmt.Errorf("polyval: invalid data size: %d", len(data))
	}
	var y fieldElement
	y.lo = binary.LittleEndian.Uint64(data[0:8])
	y.hi = binary.LittleEndian.Uint64(data[8:16])
	p.y = y.block()
	for i := range p.keys.pow {
		var x fieldElement
		x.lo = binary.LittleEndian.Uint64(data[16+(i*16):])
		x.hi = binary.LittleEndian.Uint64(data[24+(i*16):])
		p.keys.pow[i] = x
	}
	return nil
}

// Sum computes the POLYVAL digest of blocks under key in one call. It
// is a thin convenience wrapper around New, Update and Sum.
func Sum(key, blocks []byte) ([16]byte, error) {
	p, err := New(key)
	if err != nil {
		return [16]byte{}, err
	}
	p.Update(blocks)
	var out [16]byte
	copy(out[:], p.Sum(nil))
	return out, nil
}

// fieldElement is a small accessor so Polyval's marshaling code can
// reach into a Block without duplicating setBytes/block conversions.
func (b Block) fieldElement() fieldElement {
	var f fieldElement
	f.setBytes(&b)
	return f
}
