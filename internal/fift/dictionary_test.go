// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package fift

import (
	"testing"

	"github.com/ton-blockchain/ton-sub013/internal/cont"
	"github.com/ton-blockchain/ton-sub013/internal/treap"
)

func TestDictionaryDefineAndLookup(t *testing.T) {
	d := NewDictionary(treap.NewPriorities(1))
	fn := func(cont.State) (cont.Continuation, error) { return nil, nil }
	d.DefWord("foo", fn)

	entry, ok := d.Lookup("foo")
	if !ok {
		t.Fatalf("expected foo to be defined")
	}
	if entry.Active {
		t.Fatalf("DefWord should install a passive entry")
	}
	if _, ok := d.Lookup("bar"); ok {
		t.Fatalf("bar should not be defined")
	}
}

func TestDictionaryActiveFlag(t *testing.T) {
	d := NewDictionary(treap.NewPriorities(1))
	d.DefActiveWord(":", func(cont.State) (cont.Continuation, error) { return nil, nil })
	entry, ok := d.Lookup(":")
	if !ok || !entry.Active {
		t.Fatalf("expected an active entry for ':'")
	}
}

func TestDictionaryUndefine(t *testing.T) {
	d := NewDictionary(treap.NewPriorities(1))
	d.DefWord("tmp", func(cont.State) (cont.Continuation, error) { return nil, nil })
	d.Undefine("tmp")
	if _, ok := d.Lookup("tmp"); ok {
		t.Fatalf("tmp should be gone after Undefine")
	}
	found := false
	for _, w := range d.Words() {
		if w == "tmp" {
			found = true
		}
	}
	if found {
		t.Fatalf("Words() should not list an undefined word")
	}
}

func TestDictionaryWordsEnumeratesDefined(t *testing.T) {
	d := NewDictionary(treap.NewPriorities(1))
	d.DefWord("a", func(cont.State) (cont.Continuation, error) { return nil, nil })
	d.DefWord("b", func(cont.State) (cont.Continuation, error) { return nil, nil })
	names := map[string]bool{}
	for _, w := range d.Words() {
		names[w] = true
	}
	if !names["a"] || !names["b"] {
		t.Fatalf("Words() = %v, want a and b present", d.Words())
	}
}
