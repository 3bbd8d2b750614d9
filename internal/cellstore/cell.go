// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

// Package cellstore implements the Cell data model of spec.md §3: an
// immutable, content-addressed, DAG-shaped tree with ordinary and special
// (pruned-branch, library, Merkle-proof, Merkle-update) variants, level
// masks, and per-level Merkle hashes.
//
// The reference-counted copy-on-write graph of the original C++
// implementation (crypto/vm/cells/DataCell.h) is replaced here by plain
// Go values behind immutable, garbage-collected pointers: a finalized
// Cell is never mutated again, so ordinary Go aliasing gives the same
// sharing the original got from intrusive refcounting (spec.md §9).
package cellstore

import "fmt"

// Kind is the cell's special-cell discriminator (spec.md §3 "Kind").
type Kind uint8

const (
	KindOrdinary Kind = iota
	KindPrunedBranch
	KindLibrary
	KindMerkleProof
	KindMerkleUpdate
)

func (k Kind) String() string {
	switch k {
	case KindOrdinary:
		return "ordinary"
	case KindPrunedBranch:
		return "pruned-branch"
	case KindLibrary:
		return "library"
	case KindMerkleProof:
		return "merkle-proof"
	case KindMerkleUpdate:
		return "merkle-update"
	default:
		return "unknown"
	}
}

// hashBytes is the width of a SHA-256 digest.
const hashBytes = 32

// maxBits and maxRefs are the hard per-cell limits spec.md §3 fixes.
const (
	maxBits = 1023
	maxRefs = 4
)

// levelInfo is a single (hash, depth) pair, mirroring the original
// detail::LevelInfo struct in DataCell.h.
type levelInfo struct {
	hash  [hashBytes]byte
	depth uint16
}

// Cell is an immutable DAG node. Once returned by Builder.Finalize it is
// never mutated; sharing is ordinary Go pointer aliasing (see package doc).
type Cell struct {
	bits      []byte // packed big-endian, high bit of byte 0 is bit 0
	bitLen    int
	refs      []*Cell
	kind      Kind
	levelMask LevelMask
	levels    []levelInfo // indexed by HashIndex(level), length = levelMask.HashesCount()
}

// BitLen returns the number of data bits stored in the cell (0..1023).
func (c *Cell) BitLen() int { return c.bitLen }

// RefsCount returns the number of child references (0..4).
func (c *Cell) RefsCount() int { return len(c.refs) }

// Ref returns the i-th child reference, or nil if out of range.
func (c *Cell) Ref(i int) *Cell {
	if i < 0 || i >= len(c.refs) {
		return nil
	}
	return c.refs[i]
}

// Kind reports the cell's special-cell discriminator.
func (c *Cell) Kind() Kind { return c.kind }

// IsSpecial reports whether the cell is anything other than ordinary.
func (c *Cell) IsSpecial() bool { return c.kind != KindOrdinary }

// LevelMask returns the cell's level mask.
func (c *Cell) LevelMask() LevelMask { return c.levelMask }

// RawData returns the packed data bits (bitLen bits, byte-padded).
func (c *Cell) RawData() []byte { return c.bits }

// HashAt returns the root hash at the given level (0..3), clamped to the
// cell's own significant level the way DataCell::do_get_hash clamps to
// level_.
func (c *Cell) HashAt(level int) [hashBytes]byte {
	idx := c.levelMask.HashIndex(level)
	if idx >= len(c.levels) {
		idx = len(c.levels) - 1
	}
	return c.levels[idx].hash
}

// Hash returns the level-0 root hash: the cell's content-addressed
// identity (spec.md §3 "Identity").
func (c *Cell) Hash() [hashBytes]byte { return c.HashAt(0) }

// DepthAt returns the depth at the given level, clamped like HashAt.
func (c *Cell) DepthAt(level int) uint16 {
	idx := c.levelMask.HashIndex(level)
	if idx >= len(c.levels) {
		idx = len(c.levels) - 1
	}
	return c.levels[idx].depth
}

// Depth returns the level-0 depth.
func (c *Cell) Depth() uint16 { return c.DepthAt(0) }

func (c *Cell) String() string {
	return fmt.Sprintf("Cell{kind=%s bits=%d refs=%d hash=%x}", c.kind, c.bitLen, len(c.refs), c.Hash())
}

// EmptyCell is the canonical zero-bit, zero-ref ordinary cell used as a
// scenario anchor in spec.md §8 ("Cell hash stability").
var EmptyCell = func() *Cell {
	b := NewBuilder()
	c, err := b.Finalize(false)
	if err != nil {
		panic(err)
	}
	return c
}()
