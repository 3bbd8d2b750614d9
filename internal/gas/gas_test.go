// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package gas

import "testing"

func TestConsumeMonotonic(t *testing.T) {
	g := New(1000, 1000000, 0)
	if err := g.Consume(100); err != nil {
		t.Fatal(err)
	}
	if g.Consumed() != 100 {
		t.Fatalf("consumed = %d, want 100", g.Consumed())
	}
	if err := g.Consume(50); err != nil {
		t.Fatal(err)
	}
	if g.Consumed() != 150 {
		t.Fatalf("consumed = %d, want 150 (must be non-decreasing)", g.Consumed())
	}
}

func TestOutOfGas(t *testing.T) {
	g := New(10, 100, 0)
	if err := g.Consume(11); err == nil {
		t.Fatalf("expected out-of-gas error")
	}
	if g.FinalOK() {
		t.Fatalf("final commit should not be valid after an out-of-gas consume")
	}
}

func TestChangeLimitResumesAfterDeficit(t *testing.T) {
	g := New(10, 1000, 0)
	_ = g.Consume(11) // remaining goes to -1
	if g.Remaining() >= 0 {
		t.Fatalf("remaining should be negative")
	}
	g.ChangeLimit(100) // ACCEPT-style bump
	if g.Remaining() < 0 {
		t.Fatalf("remaining should recover once limit covers consumption, got %d", g.Remaining())
	}
}

func TestChangeLimitClampsToMax(t *testing.T) {
	g := New(10, 50, 0)
	g.ChangeLimit(1000)
	if g.Limit() != 50 {
		t.Fatalf("limit = %d, want clamped to max 50", g.Limit())
	}
}

func TestStackDepthGasFreeAllowance(t *testing.T) {
	g := New(1000, 1000, 0)
	if err := g.ChargeStackDepth(32); err != nil {
		t.Fatal(err)
	}
	if g.Consumed() != 0 {
		t.Fatalf("depth 32 should be free, consumed = %d", g.Consumed())
	}
	if err := g.ChargeStackDepth(40); err != nil {
		t.Fatal(err)
	}
	if g.Consumed() != 8 {
		t.Fatalf("depth 40 should charge 8, consumed = %d", g.Consumed())
	}
}
