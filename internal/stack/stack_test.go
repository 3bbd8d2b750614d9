// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package stack

import "testing"

func TestPushPopOrder(t *testing.T) {
	s := New()
	s.Push(FromInt64(1))
	s.Push(FromInt64(2))
	s.Push(FromInt64(3))

	v, err := s.Pop()
	if err != nil {
		t.Fatal(err)
	}
	if i := v.(Int257); i.ToBig().Int64() != 3 {
		t.Fatalf("TOS = %v, want 3", i)
	}
}

func TestUnderflow(t *testing.T) {
	s := New()
	if _, err := s.Pop(); err == nil {
		t.Fatalf("expected underflow error on empty stack")
	}
}

func TestSwapDupOver(t *testing.T) {
	s := New()
	s.Push(FromInt64(1))
	s.Push(FromInt64(2))
	if err := s.Swap(); err != nil {
		t.Fatal(err)
	}
	top, _ := s.Top()
	if top.(Int257).ToBig().Int64() != 1 {
		t.Fatalf("after swap, TOS should be 1")
	}

	if err := s.Dup(); err != nil {
		t.Fatal(err)
	}
	if s.Depth() != 3 {
		t.Fatalf("depth after dup = %d, want 3", s.Depth())
	}
}

func TestRollRoundTrip(t *testing.T) {
	s := New()
	for i := int64(0); i < 5; i++ {
		s.Push(FromInt64(i))
	}
	// roll the 3rd-from-top (value 1) to the top.
	if err := s.Roll(3); err != nil {
		t.Fatal(err)
	}
	top, _ := s.Top()
	if top.(Int257).ToBig().Int64() != 1 {
		t.Fatalf("after roll(3), TOS = %v, want 1", top)
	}
	// rolling back should restore the original order.
	if err := s.RollRev(3); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		v, _ := s.At(i)
		want := int64(4 - i) // At(0) is TOS, the last value pushed
		if v.(Int257).ToBig().Int64() != want {
			t.Fatalf("At(%d) = %v, want %d", i, v, want)
		}
	}
}

func TestReverse(t *testing.T) {
	s := New()
	for i := int64(0); i < 4; i++ {
		s.Push(FromInt64(i)) // stack bottom->top: 0 1 2 3
	}
	if err := s.Reverse(4, 0); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		v, _ := s.At(i)
		want := int64(i)
		if v.(Int257).ToBig().Int64() != want {
			t.Fatalf("At(%d) = %v, want %d", i, v, want)
		}
	}
}

func TestTupleBounds(t *testing.T) {
	items := make([]Value, 256)
	for i := range items {
		items[i] = Null{}
	}
	if _, err := NewTuple(items); err == nil {
		t.Fatalf("256-entry tuple should be rejected")
	}
	items = items[:255]
	tup, err := NewTuple(items)
	if err != nil {
		t.Fatalf("255-entry tuple should be accepted: %v", err)
	}
	if tup.Len() != 255 {
		t.Fatalf("Len() = %d, want 255", tup.Len())
	}
}

func TestBoxSharing(t *testing.T) {
	b := NewBox(FromInt64(1))
	alias := b
	alias.Set(FromInt64(2))
	if b.Get().(Int257).ToBig().Int64() != 2 {
		t.Fatalf("box mutation should be visible through any alias")
	}
}
