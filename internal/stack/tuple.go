// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package stack

import (
	"strings"

	"github.com/ton-blockchain/ton-sub013/internal/vmerrors"
)

// maxTupleLen is the hard limit on tuple length (spec.md §3 "tuple").
const maxTupleLen = 255

// Tuple is an ordered, fixed sequence of tagged values (spec.md §3).
type Tuple struct {
	items []Value
}

// NewTuple builds a tuple from the given items, failing if over the
// 255-entry limit.
func NewTuple(items []Value) (*Tuple, error) {
	if len(items) > maxTupleLen {
		return nil, vmerrors.ErrRangeCheck
	}
	return &Tuple{items: append([]Value(nil), items...)}, nil
}

func (*Tuple) Kind() Kind { return KindTuple }

func (t *Tuple) String() string {
	parts := make([]string, len(t.items))
	for i, v := range t.items {
		parts[i] = v.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Len returns the number of entries.
func (t *Tuple) Len() int { return len(t.items) }

// At returns the i-th entry.
func (t *Tuple) At(i int) (Value, error) {
	if i < 0 || i >= len(t.items) {
		return nil, vmerrors.ErrRangeCheck
	}
	return t.items[i], nil
}

// WithSet returns a new tuple equal to t but with index i replaced by v
// (tuples are immutable once built; "set" is copy-on-write).
func (t *Tuple) WithSet(i int, v Value) (*Tuple, error) {
	if i < 0 || i >= len(t.items) {
		return nil, vmerrors.ErrRangeCheck
	}
	items := append([]Value(nil), t.items...)
	items[i] = v
	return &Tuple{items: items}, nil
}

// Items returns the tuple's entries (read-only use expected).
func (t *Tuple) Items() []Value { return t.items }
