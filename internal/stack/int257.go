// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package stack

import (
	"math/big"

	"github.com/holiman/uint256"

	"github.com/ton-blockchain/ton-sub013/internal/vmerrors"
)

// Int257 is a signed integer fitting 257 bits: a sign flag plus a
// holiman/uint256.Int magnitude (256 bits), with a distinguished NaN
// sentinel for out-of-range results (spec.md §3 "int257"). Wrapping
// uint256.Int rather than reimplementing 257-bit arithmetic follows the
// teacher's own choice of library for its 256-bit EVM words
// (interpreter/lfvm/stack.go).
type Int257 struct {
	nan bool
	neg bool
	mag uint256.Int
}

// NaN is the distinguished out-of-range sentinel.
func NaN() Int257 { return Int257{nan: true} }

// Zero is the additive identity.
func Zero() Int257 { return Int257{} }

func (Int257) Kind() Kind { return KindInt }

func (i Int257) String() string {
	if i.nan {
		return "NaN"
	}
	return i.ToBig().String()
}

// IsNaN reports whether the value is the out-of-range sentinel.
func (i Int257) IsNaN() bool { return i.nan }

// FromInt64 builds an Int257 from a machine integer.
func FromInt64(v int64) Int257 {
	if v < 0 {
		var m uint256.Int
		m.SetUint64(uint64(-v))
		return Int257{neg: true, mag: m}
	}
	var m uint256.Int
	m.SetUint64(uint64(v))
	return Int257{mag: m}
}

// FromUint256 builds a non-negative Int257 from a uint256 magnitude.
func FromUint256(m *uint256.Int) Int257 {
	return Int257{mag: *m}
}

// FromBig builds an Int257 from an arbitrary math/big.Int, returning NaN
// if it does not fit in 257 signed bits.
func FromBig(v *big.Int) Int257 {
	abs := new(big.Int).Abs(v)
	if abs.BitLen() > 256 {
		return NaN()
	}
	var m uint256.Int
	m.SetFromBig(abs)
	return Int257{neg: v.Sign() < 0, mag: m}
}

// ToBig converts to a math/big.Int (NaN converts to nil).
func (i Int257) ToBig() *big.Int {
	if i.nan {
		return nil
	}
	v := i.mag.ToBig()
	if i.neg {
		v.Neg(v)
	}
	return v
}

// Sign returns -1, 0, or 1 (NaN returns 0).
func (i Int257) Sign() int {
	if i.nan || i.mag.IsZero() {
		return 0
	}
	if i.neg {
		return -1
	}
	return 1
}

// Fits257 reports whether the value is representable at all (a
// normalized Int257 always is; this exists for symmetry with Fits(n)).
func (i Int257) Fits257() bool { return !i.nan }

// Fits reports whether the value fits in n signed bits (the FITS
// opcode family, spec.md §4.7).
func (i Int257) Fits(n int) bool {
	if i.nan {
		return false
	}
	if n <= 0 {
		return i.mag.IsZero()
	}
	if n >= 257 {
		return true
	}
	limit := new(uint256.Int).Lsh(uint256.NewInt(1), uint(n-1))
	if !i.neg {
		return i.mag.Lt(limit)
	}
	return !i.mag.Gt(limit)
}

func normalize(neg bool, mag *uint256.Int) Int257 {
	if mag.IsZero() {
		neg = false
	}
	if !mag.IsZero() && mag.BitLen() > 256 {
		return NaN()
	}
	return Int257{neg: neg, mag: *mag}
}

// Add returns i+j, or NaN on 257-bit signed overflow (spec.md §4.7
// "Arithmetic").
func Add(i, j Int257) Int257 {
	if i.nan || j.nan {
		return NaN()
	}
	bi, bj := i.ToBig(), j.ToBig()
	return checkFits257(new(big.Int).Add(bi, bj))
}

func Sub(i, j Int257) Int257 {
	if i.nan || j.nan {
		return NaN()
	}
	return checkFits257(new(big.Int).Sub(i.ToBig(), j.ToBig()))
}

func Neg(i Int257) Int257 {
	if i.nan {
		return NaN()
	}
	return checkFits257(new(big.Int).Neg(i.ToBig()))
}

func Mul(i, j Int257) Int257 {
	if i.nan || j.nan {
		return NaN()
	}
	return checkFits257(new(big.Int).Mul(i.ToBig(), j.ToBig()))
}

// Rounding selects the division rounding mode for /, /c, /r (spec.md
// §4.7).
type Rounding int

const (
	RoundFloor Rounding = iota
	RoundCeil
	RoundNearest
)

// DivMod divides i by j under the given rounding, returning (quotient,
// remainder). Division by zero raises ErrRangeCheck for every rounding
// mode uniformly (spec.md §8 boundary behavior).
func DivMod(i, j Int257, r Rounding) (Int257, Int257, error) {
	if i.nan || j.nan {
		return NaN(), NaN(), nil
	}
	if j.Sign() == 0 {
		return NaN(), NaN(), vmerrors.ErrRangeCheck
	}
	q, rem := bigDivMod(i.ToBig(), j.ToBig(), r)
	return checkFits257(q), checkFits257(rem), nil
}

// MulDivMod computes floor/ceil/round((i*j)/k) performing the
// intermediate multiplication at full (512-bit) precision, as
// MULDIVMOD/MULDIV do (spec.md §4.7).
func MulDivMod(i, j, k Int257, r Rounding) (Int257, Int257, error) {
	if i.nan || j.nan || k.nan {
		return NaN(), NaN(), nil
	}
	if k.Sign() == 0 {
		return NaN(), NaN(), vmerrors.ErrRangeCheck
	}
	prod := new(big.Int).Mul(i.ToBig(), j.ToBig())
	q, rem := bigDivMod(prod, k.ToBig(), r)
	return checkFits257(q), checkFits257(rem), nil
}

func bigDivMod(a, b *big.Int, r Rounding) (*big.Int, *big.Int) {
	q, rem := new(big.Int), new(big.Int)
	q.QuoRem(a, b, rem)
	if rem.Sign() == 0 {
		return q, rem
	}
	switch r {
	case RoundFloor:
		if (rem.Sign() < 0) != (b.Sign() < 0) {
			q.Sub(q, big.NewInt(1))
			rem.Add(rem, b)
		}
	case RoundCeil:
		if (rem.Sign() < 0) == (b.Sign() < 0) {
			q.Add(q, big.NewInt(1))
			rem.Sub(rem, b)
		}
	case RoundNearest:
		twice := new(big.Int).Mul(rem, big.NewInt(2))
		twice.Abs(twice)
		babs := new(big.Int).Abs(b)
		cmp := twice.Cmp(babs)
		if cmp > 0 || (cmp == 0 && q.Bit(0) == 1) {
			if (rem.Sign() < 0) == (b.Sign() < 0) {
				q.Add(q, big.NewInt(1))
				rem.Sub(rem, b)
			} else {
				q.Sub(q, big.NewInt(1))
				rem.Add(rem, b)
			}
		}
	}
	return q, rem
}

func checkFits257(v *big.Int) Int257 {
	abs := new(big.Int).Abs(v)
	if abs.BitLen() > 256 {
		return NaN()
	}
	var m uint256.Int
	m.SetFromBig(abs)
	return normalize(v.Sign() < 0, &m)
}

// Lsh/Rsh implement <<, >>, >>c, >>r (spec.md §4.7 "Shift/bit").
func Lsh(i Int257, n uint) Int257 {
	if i.nan {
		return NaN()
	}
	return checkFits257(new(big.Int).Lsh(i.ToBig(), n))
}

func Rsh(i Int257, n uint, r Rounding) Int257 {
	if i.nan {
		return NaN()
	}
	divisor := new(big.Int).Lsh(big.NewInt(1), n)
	q, _ := bigDivMod(i.ToBig(), divisor, r)
	return checkFits257(q)
}

// Cmp compares two non-NaN values (-1, 0, 1).
func Cmp(i, j Int257) int {
	return i.ToBig().Cmp(j.ToBig())
}
