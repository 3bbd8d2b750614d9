// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package cellstore

import "testing"

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	db := NewMemoryCellDb()

	leafB := NewBuilder()
	_ = leafB.StoreBits([]bool{true, false, true, true})
	leaf, err := leafB.Finalize(false)
	if err != nil {
		t.Fatal(err)
	}
	db.Set(leaf.Hash(), CellRecord{RefCount: 1, Cell: leaf})

	parentB := NewBuilder()
	_ = parentB.StoreBits([]bool{false, false, true})
	_ = parentB.StoreRef(leaf)
	parent, err := parentB.Finalize(false)
	if err != nil {
		t.Fatal(err)
	}

	rec := SerializeRecord(parent, 1)
	refCount, bitLen, data, special, levelMask, children, err := DeserializeRecord(rec, db)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if refCount != 1 {
		t.Fatalf("refcount = %d, want 1", refCount)
	}
	if bitLen != parent.BitLen() {
		t.Fatalf("bitLen = %d, want %d", bitLen, parent.BitLen())
	}
	if special {
		t.Fatalf("parent should not be special")
	}
	if levelMask != parent.LevelMask() {
		t.Fatalf("levelMask mismatch")
	}
	if len(data) == 0 && parent.BitLen() > 0 {
		t.Fatalf("expected non-empty data")
	}
	if len(children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(children))
	}
	resolved, err := children[0].Resolve()
	if err != nil {
		t.Fatalf("resolve child: %v", err)
	}
	if resolved.Hash() != leaf.Hash() {
		t.Fatalf("resolved child hash mismatch")
	}
}

func TestExtCellMissingHash(t *testing.T) {
	db := NewMemoryCellDb()
	var missing Hash256
	missing[0] = 0xAB
	ec := NewExtCell(0, []Hash256{missing}, []uint16{0}, db)
	if _, err := ec.Resolve(); err == nil {
		t.Fatalf("expected cell-not-found error")
	}
}
