// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package cellstore

import (
	"crypto/sha256"
	"math/big"

	"github.com/holiman/uint256"

	"github.com/ton-blockchain/ton-sub013/internal/vmerrors"
)

// Builder accumulates up to 1023 data bits and 4 child references before
// being finalized into an immutable Cell (spec.md §4.1).
//
// Internally bits are held as a bool slice rather than packed bytes: the
// original C++ BuilderCellPacker packs directly into a byte buffer for
// speed, but correctness of the packing/padding rule (spec.md §4.1 "tie
// break on serialization") is easier to keep right with an explicit bit
// vector, and Finalize only pays the packing cost once.
type Builder struct {
	bits []bool
	refs []*Cell
}

// NewBuilder returns an empty builder (NEWC, spec.md §4.7).
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) remainingBits() int { return maxBits - len(b.bits) }

// StoreBits appends raw bits (true = 1).
func (b *Builder) StoreBits(bitsToStore []bool) error {
	if len(bitsToStore) > b.remainingBits() {
		return vmerrors.ErrCellOverflow
	}
	b.bits = append(b.bits, bitsToStore...)
	return nil
}

// StoreUint stores the low n bits of x (0 <= n <= 256), MSB first, as
// an unsigned value: x must be non-negative (always true of a
// uint256.Int) and fit in n bits.
func (b *Builder) StoreUint(x *uint256.Int, n int) error {
	if n < 0 || n > 256 {
		return vmerrors.ErrRangeCheck
	}
	if n > b.remainingBits() {
		return vmerrors.ErrCellOverflow
	}
	if n < 256 {
		limit := new(uint256.Int).Lsh(uint256.NewInt(1), uint(n))
		if !x.Lt(limit) {
			return vmerrors.ErrRangeCheck
		}
	}
	return b.storeBitsOf(x, n)
}

// StoreInt stores the n-bit two's-complement encoding of the signed
// value x (STI / Fift's `i,`), MSB first. x must fit in the signed
// range [-2^(n-1), 2^(n-1)-1]; the encoding is computed here rather
// than left to the caller, since a caller-supplied uint256.Int has no
// signedness of its own to get wrong (spec.md §8 "slice round-trip":
// load_int(store_int(x,n,signed),n,signed)==x must hold for x<0 too).
func (b *Builder) StoreInt(x *big.Int, n int) error {
	if n < 1 || n > 256 {
		return vmerrors.ErrRangeCheck
	}
	if n > b.remainingBits() {
		return vmerrors.ErrCellOverflow
	}
	half := new(big.Int).Lsh(big.NewInt(1), uint(n-1))
	lo := new(big.Int).Neg(half)
	hi := new(big.Int).Sub(half, big.NewInt(1))
	if x.Cmp(lo) < 0 || x.Cmp(hi) > 0 {
		return vmerrors.ErrRangeCheck
	}
	mod := new(big.Int).Lsh(big.NewInt(1), uint(n))
	enc := new(big.Int).Mod(x, mod) // Go's big.Int.Mod always returns a value in [0, mod)
	var u uint256.Int
	u.SetFromBig(enc)
	return b.storeBitsOf(&u, n)
}

func (b *Builder) storeBitsOf(x *uint256.Int, n int) error {
	out := make([]bool, n)
	for i := 0; i < n; i++ {
		// bit (n-1-i) of x, MSB first.
		out[i] = bitAt(x, n-1-i)
	}
	return b.StoreBits(out)
}

func bitAt(x *uint256.Int, pos int) bool {
	if pos < 0 || pos >= 256 {
		return false
	}
	word := pos / 64
	bit := uint(pos % 64)
	return (x[word]>>bit)&1 == 1
}

// StoreBytes stores the given bytes as whole-byte-aligned bits.
func (b *Builder) StoreBytes(data []byte) error {
	bitsToStore := make([]bool, 0, len(data)*8)
	for _, by := range data {
		for i := 7; i >= 0; i-- {
			bitsToStore = append(bitsToStore, (by>>uint(i))&1 == 1)
		}
	}
	return b.StoreBits(bitsToStore)
}

// StoreRef appends a child reference.
func (b *Builder) StoreRef(c *Cell) error {
	if len(b.refs) >= maxRefs {
		return vmerrors.ErrCellOverflow
	}
	b.refs = append(b.refs, c)
	return nil
}

// StoreSlice copies the remaining bits/refs of a Slice into the builder.
func (b *Builder) StoreSlice(s *Slice) error {
	bitsToStore := s.PrefetchBits(s.BitsLeft())
	if err := b.StoreBits(bitsToStore); err != nil {
		return err
	}
	for i := 0; i < s.RefsLeft(); i++ {
		if err := b.StoreRef(s.PrefetchRef(i)); err != nil {
			return err
		}
	}
	return nil
}

// AppendBuilder copies another (still-open) builder's contents in.
func (b *Builder) AppendBuilder(other *Builder) error {
	if err := b.StoreBits(other.bits); err != nil {
		return err
	}
	for _, r := range other.refs {
		if err := b.StoreRef(r); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) BitsLeft() int { return b.remainingBits() }
func (b *Builder) RefsLeft() int { return maxRefs - len(b.refs) }
func (b *Builder) BitLen() int  { return len(b.bits) }
func (b *Builder) RefsCount() int { return len(b.refs) }

// Finalize computes all per-level hashes (spec.md §3 hash formula) and
// returns an immutable ordinary or special Cell.
func (b *Builder) Finalize(special bool) (*Cell, error) {
	if special && len(b.bits) < 8 {
		return nil, vmerrors.ErrCellUnderflow
	}
	kind := KindOrdinary
	if special {
		kind = Kind(b.bits0Byte())
		if err := validateSpecial(kind, len(b.refs)); err != nil {
			return nil, err
		}
	}

	levelMask, err := computeLevelMask(kind, b.refs)
	if err != nil {
		return nil, err
	}

	data := packBits(b.bits)
	c := &Cell{
		bits:      data,
		bitLen:    len(b.bits),
		refs:      append([]*Cell(nil), b.refs...),
		kind:      kind,
		levelMask: levelMask,
	}
	c.levels = computeLevels(c)
	return c, nil
}

// bits0Byte reads the first stored byte (used to recover the special-cell
// type tag before Finalize has built c.kind).
func (b *Builder) bits0Byte() Kind {
	if len(b.bits) < 8 {
		return KindOrdinary
	}
	var v byte
	for i := 0; i < 8; i++ {
		v <<= 1
		if b.bits[i] {
			v |= 1
		}
	}
	return Kind(v)
}

func validateSpecial(kind Kind, refs int) error {
	switch kind {
	case KindPrunedBranch, KindLibrary:
		if refs != 0 {
			return vmerrors.ErrCellOverflow
		}
	case KindMerkleProof:
		if refs != 1 {
			return vmerrors.ErrCellOverflow
		}
	case KindMerkleUpdate:
		if refs != 2 {
			return vmerrors.ErrCellOverflow
		}
	default:
		return vmerrors.ErrFatal
	}
	return nil
}

func computeLevelMask(kind Kind, refs []*Cell) (LevelMask, error) {
	switch kind {
	case KindOrdinary:
		var m LevelMask
		for _, r := range refs {
			m |= r.levelMask
		}
		return m, nil
	case KindPrunedBranch, KindLibrary:
		return 0, nil // level mask for a pruned branch is carried in its data, not derived here
	case KindMerkleProof:
		return refs[0].levelMask.shiftRight(), nil
	case KindMerkleUpdate:
		return (refs[0].levelMask | refs[1].levelMask).shiftRight(), nil
	default:
		return 0, vmerrors.ErrFatal
	}
}

// packBits packs a bool slice MSB-first into bytes; a sub-byte tail is
// only zero-padded here. The terminal 1 bit of the serialized form
// (spec.md §4.1) is added by dataPadded, not stored in the cell.
func packBits(bitsIn []bool) []byte {
	out := make([]byte, (len(bitsIn)+7)/8)
	for i, bit := range bitsIn {
		if bit {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out
}

// computeLevels computes the (hash, depth) pair for every significant
// level of the cell, per the formula in spec.md §3:
//
//	hash(L) = SHA256(d1(L) || d2 || child_hashes_at(L') || child_depths_at(L') || data_padded)
func computeLevels(c *Cell) []levelInfo {
	n := c.levelMask.HashesCount()
	levels := make([]levelInfo, n)
	for hashIdx := 0; hashIdx < n; hashIdx++ {
		level := hashIdxToLevel(c.levelMask, hashIdx)
		levels[hashIdx] = computeLevelInfo(c, level)
	}
	return levels
}

// hashIdxToLevel inverts LevelMask.HashIndex: returns the smallest level
// whose HashIndex equals hashIdx.
func hashIdxToLevel(m LevelMask, hashIdx int) int {
	for level := 0; level <= maxLevel; level++ {
		if m.HashIndex(level) == hashIdx {
			return level
		}
	}
	return maxLevel
}

func computeLevelInfo(c *Cell, level int) levelInfo {
	d1 := byte(len(c.refs)) | boolByte(c.IsSpecial())<<3 | byte(c.levelMask.Apply(level))<<5
	d2 := byte(c.bitLen/8 + (c.bitLen+7)/8)

	h := sha256.New()
	h.Write([]byte{d1, d2})
	for _, r := range c.refs {
		hv := r.HashAt(level)
		h.Write(hv[:])
	}
	for _, r := range c.refs {
		dv := r.DepthAt(level)
		h.Write([]byte{byte(dv >> 8), byte(dv)})
	}
	h.Write(dataPadded(c.bits, c.bitLen))

	var out levelInfo
	copy(out.hash[:], h.Sum(nil))
	out.depth = computeDepth(c, level)
	return out
}

func computeDepth(c *Cell, level int) uint16 {
	if len(c.refs) == 0 {
		return 0
	}
	var maxDepth uint16
	for _, r := range c.refs {
		d := r.DepthAt(level) + 1
		if d > maxDepth {
			maxDepth = d
		}
	}
	return maxDepth
}

// dataPadded augments packed, zero-padded bits with TON's completion
// bit: a single terminal 1 bit placed right after the last real bit
// when bitLen isn't already byte-aligned (spec.md §3 "data_padded
// appends a terminal 1 bit and zero-pads to a byte"). Byte-aligned data
// is already exactly its own padded form; d2 (computeLevelInfo) is what
// tells a reader whether the completion bit is present.
func dataPadded(bits []byte, bitLen int) []byte {
	if bitLen%8 == 0 {
		return bits
	}
	out := append([]byte(nil), bits...)
	out[len(out)-1] |= 1 << uint(7-bitLen%8)
	return out
}

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}
