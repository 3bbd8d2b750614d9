// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package stack

import (
	"math/big"
	"testing"
)

func TestAddOverflowIsNaN(t *testing.T) {
	max := FromBig(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1)))
	if max.IsNaN() {
		t.Fatalf("2^256-1 does not fit signed 257 bits? got NaN unexpectedly")
	}
	r := Add(max, FromInt64(1))
	if !r.IsNaN() {
		t.Fatalf("adding past 257-bit signed range should yield NaN, got %v", r)
	}
}

func TestDivModFloorCeilNearest(t *testing.T) {
	a, b := FromInt64(7), FromInt64(2)
	q, r, err := DivMod(a, b, RoundFloor)
	if err != nil || q.ToBig().Int64() != 3 || r.ToBig().Int64() != 1 {
		t.Fatalf("floor(7/2) = %v r %v, err %v", q, r, err)
	}
	q, r, err = DivMod(a, b, RoundCeil)
	if err != nil || q.ToBig().Int64() != 4 {
		t.Fatalf("ceil(7/2) = %v, err %v", q, err)
	}
	q, _, err = DivMod(FromInt64(-7), b, RoundFloor)
	if err != nil || q.ToBig().Int64() != -4 {
		t.Fatalf("floor(-7/2) = %v, err %v", q, err)
	}
}

func TestDivByZeroIsRangeCheck(t *testing.T) {
	for _, r := range []Rounding{RoundFloor, RoundCeil, RoundNearest} {
		if _, _, err := DivMod(FromInt64(0), FromInt64(0), r); err == nil {
			t.Fatalf("0/0 should raise range_chk for rounding mode %v", r)
		}
		if _, _, err := DivMod(FromInt64(5), FromInt64(0), r); err == nil {
			t.Fatalf("5/0 should raise range_chk for rounding mode %v", r)
		}
	}
}

func TestFits(t *testing.T) {
	if !FromInt64(127).Fits(8) {
		t.Fatalf("127 should fit in 8 signed bits")
	}
	if FromInt64(128).Fits(8) {
		t.Fatalf("128 should not fit in 8 signed bits")
	}
	if !FromInt64(-128).Fits(8) {
		t.Fatalf("-128 should fit in 8 signed bits")
	}
}
