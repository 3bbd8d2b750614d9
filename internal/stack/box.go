// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package stack

import (
	"fmt"
	"sync"
)

// Box is a single-slot mutable cell of a tagged value, shared by
// reference the way multiple stack entries can alias the same box
// (spec.md §3 "box").
type Box struct {
	mu  sync.Mutex
	val Value
}

// NewBox returns a box initialized to the given value (Null if nil).
func NewBox(v Value) *Box {
	if v == nil {
		v = Null{}
	}
	return &Box{val: v}
}

func (*Box) Kind() Kind { return KindBox }
func (b *Box) String() string {
	return fmt.Sprintf("Box(%s)", b.Get())
}

// Get returns the currently stored value.
func (b *Box) Get() Value {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.val
}

// Set replaces the stored value.
func (b *Box) Set(v Value) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.val = v
}
