// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package opcode

import (
	"testing"

	"github.com/ton-blockchain/ton-sub013/internal/cellstore"
)

func sliceFromBits(bits string) *cellstore.Slice {
	b := cellstore.NewBuilder()
	for _, c := range bits {
		_ = b.StoreBits([]bool{c == '1'})
	}
	cell, err := b.Finalize(false)
	if err != nil {
		panic(err)
	}
	return cellstore.NewSlice(cell)
}

func TestLongestPrefixWins(t *testing.T) {
	var gotShort, gotLong bool
	short := &Entry{Mnemonic: "SHORT", Prefix: 0b10, PrefixLen: 2, Exec: func(Args) error { gotShort = true; return nil }}
	long := &Entry{Mnemonic: "LONG", Prefix: 0b1011, PrefixLen: 4, Exec: func(Args) error { gotLong = true; return nil }}
	table := NewTable([]*Entry{short, long})

	s := sliceFromBits("10110000")
	e, _, err := table.Lookup(s, 0)
	if err != nil {
		t.Fatal(err)
	}
	if e.Mnemonic != "LONG" {
		t.Fatalf("expected longest-prefix match LONG, got %s", e.Mnemonic)
	}
	if err := e.Exec(Args{}); err != nil {
		t.Fatal(err)
	}
	if !gotLong || gotShort {
		t.Fatalf("expected LONG's exec to run, not SHORT's")
	}
}

func TestInlineArgDecodeSigned(t *testing.T) {
	var got int64
	e := &Entry{Mnemonic: "PUSH", Prefix: 0b1111, PrefixLen: 4, ArgBits: 4, ArgSigned: true,
		Exec: func(a Args) error { got = a.Arg; return nil }}
	table := NewTable([]*Entry{e})

	// 1111 1111 -> prefix 1111, arg bits 1111 (signed nibble) = -1
	s := sliceFromBits("11111111")
	matched, args, err := table.Lookup(s, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := matched.Exec(args); err != nil {
		t.Fatal(err)
	}
	if got != -1 {
		t.Fatalf("signed nibble 1111 should decode to -1, got %d", got)
	}
}

func TestVersionGateExcludesNewerEntry(t *testing.T) {
	old := &Entry{Mnemonic: "OLD", Prefix: 0, PrefixLen: 4, MinVersion: 0, Exec: func(Args) error { return nil }}
	newer := &Entry{Mnemonic: "NEW", Prefix: 0, PrefixLen: 4, MinVersion: 9, Exec: func(Args) error { return nil }}
	table := NewTable([]*Entry{old, newer})

	s := sliceFromBits("00000000")
	e, _, err := table.Lookup(s, 4)
	if err != nil {
		t.Fatal(err)
	}
	if e.Mnemonic != "OLD" {
		t.Fatalf("version-gated entry should be skipped below MinVersion, got %s", e.Mnemonic)
	}
}

func TestNoMatchIsInvalidOpcode(t *testing.T) {
	e := &Entry{Mnemonic: "ONLY", Prefix: 0b1, PrefixLen: 1, Exec: func(Args) error { return nil }}
	table := NewTable([]*Entry{e})
	s := sliceFromBits("0000")
	if _, _, err := table.Lookup(s, 0); err == nil {
		t.Fatal("expected invalid-opcode error for non-matching bits")
	}
}

func TestCodepagesRegisterAndGet(t *testing.T) {
	cps := NewCodepages()
	t0 := NewTable(nil)
	cps.Register(0, t0)
	if got, ok := cps.Get(0); !ok || got != t0 {
		t.Fatalf("expected registered table back, got %v,%v", got, ok)
	}
	if _, ok := cps.Get(1); ok {
		t.Fatal("unregistered codepage should not be found")
	}
}
