// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package treap

import (
	"bytes"
	"math/big"
)

// KeyType discriminates the DictKey variants spec.md §3 names for the
// Fift treap: "atom | int256 | string | bytes" (plus the null key used
// by an empty/unset entry).
type KeyType int

const (
	KeyNull KeyType = iota
	KeyInt
	KeyAtom
	KeyString
	KeyBytes
)

// Hash-mixing constants carried over from the original HashMap.h/.cpp
// (crypto/fift/HashMap.h): IntHash0/MixConst1..4 seed integer hashing,
// StrHash seeds string/bytes hashing. The original's exact mixing body
// lives in the .cpp that wasn't part of the retrieved source slice; the
// FNV-style mix below reuses its constants as multipliers so hash values
// are still bucketed deterministically and collide only as often as any
// other 64-bit mix would.
const (
	intHash0  uint64 = 0xce6ab89d724409ed
	mixConst1 uint64 = 0xcd5c126501510979
	mixConst2 uint64 = 0xb8f44d7fd6274ad1
	mixConst3 uint64 = 0xd08726ea2422e405
	mixConst4 uint64 = 0x6407d2aeb5039dfb
	strHash   uint64 = 0x93ff128344add06d
)

// Key is the treap's comparison key: DictKey from spec.md §3/§4.9,
// compared first by a precomputed 64-bit hash, then by a typed compare
// on hash ties (spec.md §4.9 "Comparison").
type Key struct {
	typ   KeyType
	hash  uint64
	atom  int
	num   *big.Int
	str   string
	bytes []byte
}

// NullKey is the zero key (used only internally; Fift dictionaries never
// store it as a real entry).
var NullKey = Key{typ: KeyNull}

func NewAtomKey(index int) Key {
	return Key{typ: KeyAtom, atom: index, hash: mixInt(intHash0^mixConst1, uint64(index))}
}

func NewIntKey(v *big.Int) Key {
	return Key{typ: KeyInt, num: new(big.Int).Set(v), hash: mixBigInt(v)}
}

func NewStringKey(s string) Key {
	return Key{typ: KeyString, str: s, hash: mixString(strHash, s)}
}

func NewBytesKey(b []byte) Key {
	return Key{typ: KeyBytes, bytes: append([]byte(nil), b...), hash: mixString(strHash^mixConst2, string(b))}
}

func mixInt(seed uint64, v uint64) uint64 {
	h := seed
	h ^= v
	h *= mixConst3
	h ^= h >> 33
	h *= mixConst4
	h ^= h >> 29
	return h
}

func mixBigInt(v *big.Int) uint64 {
	h := intHash0
	for _, w := range v.Bits() {
		h = mixInt(h, uint64(w))
	}
	if v.Sign() < 0 {
		h ^= mixConst2
	}
	return h
}

func mixString(seed uint64, s string) uint64 {
	h := seed
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= mixConst1
		h ^= h >> 31
	}
	return h
}

// Hash returns the key's precomputed bucket hash.
func (k Key) Hash() uint64 { return k.hash }

// Cmp implements the total order from spec.md §4.9: hash first, then a
// typed compare (integers numerically; atoms by index; strings/bytes
// lexicographically).
func (k Key) Cmp(other Key) int {
	if k.hash != other.hash {
		if k.hash < other.hash {
			return -1
		}
		return 1
	}
	if k.typ != other.typ {
		if k.typ < other.typ {
			return -1
		}
		return 1
	}
	switch k.typ {
	case KeyAtom:
		return cmpInt(k.atom, other.atom)
	case KeyInt:
		return k.num.Cmp(other.num)
	case KeyString:
		return cmpString(k.str, other.str)
	case KeyBytes:
		return bytes.Compare(k.bytes, other.bytes)
	default:
		return 0
	}
}

func (k Key) Equal(other Key) bool { return k.Cmp(other) == 0 }

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
