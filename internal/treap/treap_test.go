// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package treap

import (
	"math/big"
	"testing"

	"github.com/ton-blockchain/ton-sub013/internal/stack"
)

func val(n int64) stack.Value { return stack.FromInt64(n) }

func asInt(v stack.Value) int64 { return v.(stack.Int257).ToBig().Int64() }

func TestFunctorialityLookupAfterSet(t *testing.T) {
	pr := NewPriorities(1)
	k := NewStringKey("foo")
	root := Set(nil, k, val(7), pr)
	got, ok := Lookup(root, k)
	if !ok || asInt(got) != 7 {
		t.Fatalf("lookup(set(m,k,v),k) = %v,%v want 7,true", got, ok)
	}
}

func TestFunctorialityOtherKeysUnaffected(t *testing.T) {
	pr := NewPriorities(2)
	k1 := NewStringKey("a")
	k2 := NewStringKey("b")
	root := Set(nil, k1, val(1), pr)
	before, beforeOK := Lookup(root, k2)

	root2 := Set(root, k1, val(99), pr)
	after, afterOK := Lookup(root2, k2)

	if beforeOK != afterOK {
		t.Fatalf("presence of unrelated key changed: before=%v after=%v", beforeOK, afterOK)
	}
	if beforeOK && asInt(before) != asInt(after) {
		t.Fatalf("lookup(set(m,k,v),k') changed for k'!=k: before=%v after=%v", before, after)
	}
}

func TestFunctorialityRemoveAfterSetEqualsRemove(t *testing.T) {
	pr := NewPriorities(3)
	k := NewStringKey("x")
	other := NewStringKey("y")
	base := Set(nil, other, val(5), pr)

	viaSet := Remove(Set(base, k, val(42), pr), k)
	viaDirect := Remove(base, k)

	wantEntries := Iterate(viaDirect)
	gotEntries := Iterate(viaSet)
	if len(wantEntries) != len(gotEntries) {
		t.Fatalf("remove(set(m,k,v),k) != remove(m,k): %v vs %v", gotEntries, wantEntries)
	}
	for i := range wantEntries {
		if !wantEntries[i].Key.Equal(gotEntries[i].Key) || asInt(wantEntries[i].Value) != asInt(gotEntries[i].Value) {
			t.Fatalf("entry %d mismatch: %v vs %v", i, gotEntries[i], wantEntries[i])
		}
	}
}

func TestRemoveAbsentKeyIsNoop(t *testing.T) {
	pr := NewPriorities(4)
	k := NewStringKey("present")
	root := Set(nil, k, val(1), pr)
	removed := Remove(root, NewStringKey("absent"))
	if Size(removed) != Size(root) {
		t.Fatalf("removing an absent key changed size: %d vs %d", Size(removed), Size(root))
	}
}

// TestOrderedIterationLastValueWins inserts [3,1,4,1,5,9,2,6] as integer
// keys (with a duplicate 1) and checks that iteration yields one entry
// per distinct key (7), in strictly ascending key order, with the last
// value bound to the duplicate key.
func TestOrderedIterationLastValueWins(t *testing.T) {
	pr := NewPriorities(5)
	seq := []int64{3, 1, 4, 1, 5, 9, 2, 6}
	var root *Node
	for i, n := range seq {
		root = Set(root, NewIntKey(big.NewInt(n)), val(int64(i)), pr)
	}

	entries := Iterate(root)
	// Iteration order here is by hash, not numeric value, so only the
	// number of distinct keys in seq is checked against the entries.
	seen := map[int64]int64{}
	for i, n := range seq {
		seen[n] = int64(i) // last write wins
	}
	if len(entries) != len(seen) {
		t.Fatalf("got %d entries, want %d distinct keys", len(entries), len(seen))
	}
	wantLastIdxFor1 := int64(3) // index of the second "1" in seq
	gotVal1, ok := Lookup(root, NewIntKey(big.NewInt(1)))
	if !ok || asInt(gotVal1) != wantLastIdxFor1 {
		t.Fatalf("duplicate key 1 should hold the last-written value (index %d), got %v", wantLastIdxFor1, gotVal1)
	}

	// hash order must be a strict ascending order with no inversions.
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Key.Cmp(entries[i].Key) >= 0 {
			t.Fatalf("iteration not strictly ascending at %d: %v then %v", i, entries[i-1].Key, entries[i].Key)
		}
	}
}

func TestSplitMergeRoundTrip(t *testing.T) {
	pr := NewPriorities(6)
	var root *Node
	for _, n := range []int64{10, 20, 30, 40, 50} {
		root = Set(root, NewIntKey(big.NewInt(n)), val(n), pr)
	}
	lo, hi := Split(root, NewIntKey(big.NewInt(30)))
	merged := Merge(lo, hi)
	if Size(merged) != Size(root) {
		t.Fatalf("split/merge round trip lost entries: %d vs %d", Size(merged), Size(root))
	}
	for _, e := range Iterate(lo) {
		if e.Key.Cmp(NewIntKey(big.NewInt(30))) >= 0 {
			t.Fatalf("lo half contains a key >= split point: %v", e.Key)
		}
	}
	for _, e := range Iterate(hi) {
		if e.Key.Cmp(NewIntKey(big.NewInt(30))) < 0 {
			t.Fatalf("hi half contains a key < split point: %v", e.Key)
		}
	}
}

func TestAtomAndBytesKeysOrderWithStrings(t *testing.T) {
	pr := NewPriorities(7)
	var root *Node
	root = Set(root, NewAtomKey(1), val(100), pr)
	root = Set(root, NewStringKey("hello"), val(200), pr)
	root = Set(root, NewBytesKey([]byte{1, 2, 3}), val(300), pr)

	if Size(root) != 3 {
		t.Fatalf("size = %d, want 3", Size(root))
	}
	if v, ok := Lookup(root, NewAtomKey(1)); !ok || asInt(v) != 100 {
		t.Fatalf("atom key lookup failed: %v,%v", v, ok)
	}
	if v, ok := Lookup(root, NewStringKey("hello")); !ok || asInt(v) != 200 {
		t.Fatalf("string key lookup failed: %v,%v", v, ok)
	}
	if v, ok := Lookup(root, NewBytesKey([]byte{1, 2, 3})); !ok || asInt(v) != 300 {
		t.Fatalf("bytes key lookup failed: %v,%v", v, ok)
	}
}
