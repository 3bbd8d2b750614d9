// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package cellstore

import (
	"crypto/sha256"
	"math/big"
	"testing"

	"github.com/holiman/uint256"
)

func TestEmptyCellHash(t *testing.T) {
	want := sha256.Sum256([]byte{0x00, 0x00})
	got := EmptyCell.Hash()
	if got != want {
		t.Fatalf("empty cell hash = %x, want %x", got, want)
	}
}

func TestBuilderBitsOverflow(t *testing.T) {
	b := NewBuilder()
	if err := b.StoreBits(make([]bool, maxBits)); err != nil {
		t.Fatalf("storing %d bits should succeed: %v", maxBits, err)
	}
	if _, err := b.Finalize(false); err != nil {
		t.Fatalf("finalize at max bits: %v", err)
	}

	b2 := NewBuilder()
	if err := b2.StoreBits(make([]bool, maxBits+1)); err == nil {
		t.Fatalf("storing %d bits should overflow", maxBits+1)
	}
}

func TestBuilderRefsOverflow(t *testing.T) {
	b := NewBuilder()
	for i := 0; i < maxRefs; i++ {
		if err := b.StoreRef(EmptyCell); err != nil {
			t.Fatalf("ref %d: %v", i, err)
		}
	}
	if err := b.StoreRef(EmptyCell); err == nil {
		t.Fatalf("5th ref should overflow")
	}
}

func TestStoreLoadIntRoundTrip(t *testing.T) {
	cases := []struct {
		n      int
		val    int64
		signed bool
	}{
		{8, 127, true},
		{8, -128, true},
		{16, -1, true},
		{32, 123456, true},
		{8, 255, false},
		{1, 1, false},
		{1, 0, false},
	}
	for _, c := range cases {
		b := NewBuilder()
		// Exercise the same entry points STI and Fift's i,/u, use,
		// rather than a pre-encoded bit pattern: StoreInt/StoreUint
		// must do the signed encoding themselves.
		var err error
		if c.signed {
			err = b.StoreInt(big.NewInt(c.val), c.n)
		} else {
			err = b.StoreUint(uint256.NewInt(uint64(c.val)), c.n)
		}
		if err != nil {
			t.Fatalf("store %+v: %v", c, err)
		}
		cell, err := b.Finalize(false)
		if err != nil {
			t.Fatalf("finalize: %v", err)
		}
		s := NewSlice(cell)
		if c.signed {
			got, err := s.LoadSignedBig(c.n, true)
			if err != nil {
				t.Fatalf("load %+v: %v", c, err)
			}
			if !got.IsInt64() || got.Int64() != c.val {
				t.Fatalf("case %+v: got %v want %v", c, got, c.val)
			}
		} else {
			got, err := s.LoadUint(c.n, false)
			if err != nil {
				t.Fatalf("load %+v: %v", c, err)
			}
			if got.Uint64() != uint64(c.val) {
				t.Fatalf("case %+v: got %v want %v", c, got, c.val)
			}
		}
	}
}

func TestBuilderRefLevelMaskPropagation(t *testing.T) {
	b := NewBuilder()
	_ = b.StoreBits([]bool{true, false, true})
	leaf, err := b.Finalize(false)
	if err != nil {
		t.Fatal(err)
	}
	if leaf.LevelMask() != 0 {
		t.Fatalf("ordinary leaf should have zero level mask")
	}

	parent := NewBuilder()
	_ = parent.StoreRef(leaf)
	p, err := parent.Finalize(false)
	if err != nil {
		t.Fatal(err)
	}
	if p.LevelMask() != leaf.LevelMask() {
		t.Fatalf("ordinary parent should OR children's level masks")
	}
}

func TestHashIncludesCompletionBit(t *testing.T) {
	// A non-byte-aligned cell's hash input is d1 || d2 || data_padded,
	// where data_padded appends a terminal 1 bit before zero-padding to
	// a byte (spec.md §3) — not just the zero-padded raw bits.
	b := NewBuilder()
	if err := b.StoreBits([]bool{true, false, true}); err != nil {
		t.Fatal(err)
	}
	c, err := b.Finalize(false)
	if err != nil {
		t.Fatal(err)
	}
	want := sha256.Sum256([]byte{0x00, 0x01, 0xB0})
	if got := c.Hash(); got != want {
		t.Fatalf("hash = %x, want %x", got, want)
	}
}

func TestCellDeterminism(t *testing.T) {
	// Two independently built cells with identical contents must hash
	// equal (spec.md §8 invariant "Cell determinism").
	build := func() *Cell {
		b := NewBuilder()
		_ = b.StoreBits([]bool{true, true, false, false, true})
		_ = b.StoreRef(EmptyCell)
		c, err := b.Finalize(false)
		if err != nil {
			t.Fatal(err)
		}
		return c
	}
	a, c := build(), build()
	if a.Hash() != c.Hash() {
		t.Fatalf("identical cells must hash equal: %x != %x", a.Hash(), c.Hash())
	}
}
