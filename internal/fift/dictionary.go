// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package fift

import (
	"golang.org/x/exp/maps"

	"github.com/ton-blockchain/ton-sub013/internal/cont"
	"github.com/ton-blockchain/ton-sub013/internal/stack"
	"github.com/ton-blockchain/ton-sub013/internal/treap"
)

// DictEntry pairs a word's definition with its active/passive flag
// (spec.md §3 "Fift dictionary entry": "(definition: continuation,
// active: bool)"). Active words execute immediately even while
// compiling; grounded on Dictionary.h's DictEntry class.
type DictEntry struct {
	Def    cont.Continuation
	Active bool
}

// dictValue adapts a DictEntry to stack.Value so it can be stored as a
// treap entry: a dictionary entry is fundamentally a continuation (the
// definition) plus one bit, so it is tagged with the existing
// continuation kind rather than growing the tagged-value union with a
// Fift-only variant that TVM's stack never sees.
type dictValue struct{ entry DictEntry }

func (dictValue) Kind() stack.Kind { return stack.KindContinuation }
func (d dictValue) String() string {
	if d.entry.Active {
		return "DictEntry(active, " + d.entry.Def.String() + ")"
	}
	return "DictEntry(" + d.entry.Def.String() + ")"
}

// Dictionary is a word table backed by the persistent treap (spec.md
// §3 "Fift treap", §4.9), mirroring Dictionary.h's box-of-Hashmap: every
// Define/Undefine replaces the root wholesale rather than mutating a
// node in place, but the Dictionary value itself is an ordinary mutable
// Go struct (the original's "box" existed to let several Dictionary
// instances alias one mutable slot; nothing here needs that aliasing).
type Dictionary struct {
	root  *treap.Node
	pr    *treap.Priorities
	names map[string]struct{} // for Words(); the treap Key does not expose its string back
}

// NewDictionary returns an empty dictionary whose inserts draw
// priorities from pr (typically the Context-wide source, so dictionary
// shape is reproducible given a fixed seed).
func NewDictionary(pr *treap.Priorities) *Dictionary {
	return &Dictionary{pr: pr, names: make(map[string]struct{})}
}

// Lookup finds name by exact match (spec.md §6.5: "dictionary lookup is
// exact-match").
func (d *Dictionary) Lookup(name string) (DictEntry, bool) {
	v, ok := treap.Lookup(d.root, treap.NewStringKey(name))
	if !ok {
		return DictEntry{}, false
	}
	return v.(dictValue).entry, true
}

// Define installs or overwrites name's entry.
func (d *Dictionary) Define(name string, e DictEntry) {
	d.root = treap.Set(d.root, treap.NewStringKey(name), dictValue{entry: e}, d.pr)
	d.names[name] = struct{}{}
}

// DefWord is the common case: a passive word backed by a native
// closure (Dictionary.h's def_stack_word/def_ctx_word).
func (d *Dictionary) DefWord(name string, fn func(cont.State) (cont.Continuation, error)) {
	d.Define(name, DictEntry{Def: cont.NewNativeFunc(name, fn)})
}

// DefActiveWord installs an active word — one that runs immediately
// even inside a compile bracket (Dictionary.h's def_active_word, used
// for `:`, `;`, `{`, `}`, `[`, `]`, and similar syntax words).
func (d *Dictionary) DefActiveWord(name string, fn func(cont.State) (cont.Continuation, error)) {
	d.Define(name, DictEntry{Def: cont.NewNativeFunc(name, fn), Active: true})
}

// Undefine removes name, if present.
func (d *Dictionary) Undefine(name string) {
	d.root = treap.Remove(d.root, treap.NewStringKey(name))
	delete(d.names, name)
}

// Words returns every defined name, in no particular order (the treap's
// own order is by key hash, which is not meaningful to a caller
// listing words), the same way run.go's EVM-identifier listing uses
// maps.Keys rather than a hand-rolled loop.
func (d *Dictionary) Words() []string {
	return maps.Keys(d.names)
}
