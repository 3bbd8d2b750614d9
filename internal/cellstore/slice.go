// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package cellstore

import (
	"math/big"

	"github.com/holiman/uint256"

	"github.com/ton-blockchain/ton-sub013/internal/vmerrors"
)

// Slice is a read cursor into a Cell: a (cell, bit-offset, bit-size,
// ref-offset, ref-size) tuple (spec.md §3 "Cell slice / cell builder").
type Slice struct {
	cell     *Cell
	bitOff   int
	bitSize  int
	refOff   int
	refSize  int
}

// NewSlice builds a slice spanning the whole of a cell.
func NewSlice(c *Cell) *Slice {
	return &Slice{cell: c, bitOff: 0, bitSize: c.bitLen, refOff: 0, refSize: len(c.refs)}
}

func (s *Slice) BitsLeft() int { return s.bitSize - s.bitOff }
func (s *Slice) RefsLeft() int { return s.refSize - s.refOff }
func (s *Slice) Cell() *Cell    { return s.cell }

func (s *Slice) bitAt(i int) bool {
	idx := s.bitOff + i
	byteIdx := idx / 8
	bitIdx := uint(7 - idx%8)
	return (s.cell.bits[byteIdx]>>bitIdx)&1 == 1
}

// PrefetchBits returns the next n bits without advancing the cursor.
func (s *Slice) PrefetchBits(n int) []bool {
	if n < 0 || n > s.BitsLeft() {
		return nil
	}
	out := make([]bool, n)
	for i := 0; i < n; i++ {
		out[i] = s.bitAt(i)
	}
	return out
}

// LoadBits consumes and returns the next n bits.
func (s *Slice) LoadBits(n int) ([]bool, error) {
	if n < 0 || n > s.BitsLeft() {
		return nil, vmerrors.ErrCellUnderflow
	}
	out := s.PrefetchBits(n)
	s.bitOff += n
	return out, nil
}

// LoadUint loads n bits (0..256) as an unsigned magnitude. Use
// LoadSignedBig for the signed interpretation: a uint256.Int cannot hold
// a negative value, so sign extension belongs in the arbitrary-precision
// math/big domain instead. The signed flag is accepted but has no
// effect here.
func (s *Slice) LoadUint(n int, signed bool) (*uint256.Int, error) {
	if n < 0 || n > 256 {
		return nil, vmerrors.ErrRangeCheck
	}
	bitsRead, err := s.LoadBits(n)
	if err != nil {
		return nil, err
	}
	out := new(uint256.Int)
	for _, bit := range bitsRead {
		out.Lsh(out, 1)
		if bit {
			out.Or(out, uint256.NewInt(1))
		}
	}
	return out, nil
}

// LoadSignedBig loads n bits (1..257) as a two's-complement signed
// integer using arbitrary precision, avoiding the wraparound a
// uint256.Int would suffer when the magnitude after sign-extension no
// longer fits 256 bits (spec.md §3 "int257").
func (s *Slice) LoadSignedBig(n int, signed bool) (*big.Int, error) {
	if n < 0 || n > 257 {
		return nil, vmerrors.ErrRangeCheck
	}
	bitsRead, err := s.LoadBits(n)
	if err != nil {
		return nil, err
	}
	out := new(big.Int)
	for _, bit := range bitsRead {
		out.Lsh(out, 1)
		if bit {
			out.Or(out, big.NewInt(1))
		}
	}
	if signed && n > 0 && bitsRead[0] {
		full := new(big.Int).Lsh(big.NewInt(1), uint(n))
		out.Sub(out, full)
	}
	return out, nil
}

// PrefetchRef returns the (refOff+i)-th remaining ref without advancing.
func (s *Slice) PrefetchRef(i int) *Cell {
	if i < 0 || i >= s.RefsLeft() {
		return nil
	}
	return s.cell.refs[s.refOff+i]
}

// LoadRef consumes and returns the next ref.
func (s *Slice) LoadRef() (*Cell, error) {
	if s.RefsLeft() == 0 {
		return nil, vmerrors.ErrCellUnderflow
	}
	r := s.cell.refs[s.refOff]
	s.refOff++
	return r, nil
}

// SubSlice returns a sub-slice covering [off, off+n) bits without
// advancing this slice.
func (s *Slice) SubSlice(off, n int) (*Slice, error) {
	if off < 0 || n < 0 || off+n > s.BitsLeft() {
		return nil, vmerrors.ErrCellUnderflow
	}
	return &Slice{cell: s.cell, bitOff: s.bitOff + off, bitSize: s.bitOff + off + n, refOff: s.refOff, refSize: s.refOff}, nil
}

// Clone returns an independent copy of the cursor (Fift/TVM both need to
// fork slices without affecting the original, e.g. for PUSHSLICE copies).
func (s *Slice) Clone() *Slice {
	cp := *s
	return &cp
}

// IsEmpty reports whether no bits or refs remain (SEMPTY).
func (s *Slice) IsEmpty() bool { return s.BitsLeft() == 0 && s.RefsLeft() == 0 }
