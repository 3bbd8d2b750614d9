// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

// Package opcode implements the prefix-coded instruction table described
// in spec.md §4.6/§6.2: each codepage is an independent table of entries
// matched by longest bit-prefix against the current code slice, the way
// Tosca's `interpreter/lfvm` op-code table dispatches EVM bytes — except
// TVM's codewords are bit-, not byte-, aligned, so matching walks a
// bitstream rather than indexing a byte array.
package opcode

import (
	"sort"

	"github.com/ton-blockchain/ton-sub013/internal/cellstore"
	"github.com/ton-blockchain/ton-sub013/internal/vmerrors"
)

// Peek reads up to n bits (n <= 24) from s without consuming them, for
// use as a dispatch key. Short slices are zero-padded on the right,
// matching how the original engine peeks past a slice's end when
// looking for the longest prefix.
func Peek(s *cellstore.Slice, n int) uint32 {
	avail := s.BitsLeft()
	if avail > n {
		avail = n
	}
	var bits uint32
	if avail > 0 {
		for _, b := range s.PrefetchBits(avail) {
			bits <<= 1
			if b {
				bits |= 1
			}
		}
	}
	return bits << uint(n-avail)
}

// Exec runs one instruction given the matched Entry, the remaining
// immediate/argument bits already stripped from the code slice by the
// caller, and whatever machine state the entry's closure needs (the
// closure closes over the VM, so this package stays state-agnostic).
type Exec func(args Args) error

// Args carries the decoded operands an Entry's Exec needs: any inline
// argument value extracted from the bits between the prefix and the
// entry's total length (e.g. the index in `PUSH i`), already
// sign/zero-extended per the entry's own convention.
type Args struct {
	Arg int64
}

// Entry is one opcode-table row (spec.md §4.6): prefix bits, the bit
// width actually consumed from the code slice (prefix + inline
// argument), a mnemonic formatter for dumps, an executor, and an
// optional minimum engine version gate.
type Entry struct {
	Mnemonic   string
	Prefix     uint32 // left-justified within PrefixLen bits
	PrefixLen  int    // 1..24
	ArgBits    int    // additional bits consumed as an inline argument, 0 if none
	ArgSigned  bool
	MinVersion int
	Exec       Exec
}

func (e *Entry) totalLen() int { return e.PrefixLen + e.ArgBits }

// matchKey left-justifies Prefix within a 24-bit window for comparison
// against Peek's output regardless of PrefixLen.
func (e *Entry) matchKey() uint32 { return e.Prefix << uint(24-e.PrefixLen) }

func (e *Entry) matchMask() uint32 {
	if e.PrefixLen == 0 {
		return 0
	}
	full := uint32(1)<<uint(e.PrefixLen) - 1
	return full << uint(24-e.PrefixLen)
}

// Table is one codepage's opcode table: entries sorted by descending
// PrefixLen so the first structural match is also the longest-prefix
// match (spec.md §4.6 "binary-search for the longest matching entry").
type Table struct {
	entries []*Entry
}

// NewTable builds a table from entries registered at construction time
// (spec.md §9: "replace [per-translation-unit constructors] with a
// single builder routine that registers every entry at program start").
func NewTable(entries []*Entry) *Table {
	t := &Table{entries: append([]*Entry(nil), entries...)}
	sort.SliceStable(t.entries, func(i, j int) bool {
		return t.entries[i].PrefixLen > t.entries[j].PrefixLen
	})
	return t
}

// Lookup finds the longest-prefix entry matching the next bits of s,
// active at engineVersion, consumes its bits from s, and returns it
// along with its decoded Args. Returns vmerrors.ErrInvalidOpcode if no
// active entry matches.
func (t *Table) Lookup(s *cellstore.Slice, engineVersion int) (*Entry, Args, error) {
	key := Peek(s, 24)
	for _, e := range t.entries {
		if e.MinVersion > engineVersion {
			continue
		}
		if key&e.matchMask() != e.matchKey() {
			continue
		}
		if s.BitsLeft() < e.totalLen() {
			continue
		}
		if _, err := s.LoadBits(e.PrefixLen); err != nil {
			return nil, Args{}, err
		}
		var arg int64
		if e.ArgBits > 0 {
			bits, err := s.LoadBits(e.ArgBits)
			if err != nil {
				return nil, Args{}, err
			}
			for _, b := range bits {
				arg <<= 1
				if b {
					arg |= 1
				}
			}
			if e.ArgSigned && bits[0] {
				arg -= int64(1) << uint(e.ArgBits)
			}
		}
		return e, Args{Arg: arg}, nil
	}
	return nil, Args{}, vmerrors.ErrInvalidOpcode
}

// Codepages indexes Table by codepage id (spec.md §6.2 "Each codepage is
// an independent table").
type Codepages struct {
	pages map[int]*Table
}

func NewCodepages() *Codepages { return &Codepages{pages: map[int]*Table{}} }

func (c *Codepages) Register(page int, t *Table) { c.pages[page] = t }

func (c *Codepages) Get(page int) (*Table, bool) {
	t, ok := c.pages[page]
	return t, ok
}
