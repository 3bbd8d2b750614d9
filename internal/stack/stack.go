// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package stack

import (
	"github.com/ton-blockchain/ton-sub013/internal/cellstore"
	"github.com/ton-blockchain/ton-sub013/internal/vmerrors"
)

// Stack is the VM's data stack, indexed from the top (index 0 = TOS),
// per spec.md §4.3.
type Stack struct {
	items []Value // items[len-1] is TOS
}

// New returns an empty stack.
func New() *Stack { return &Stack{} }

// Depth returns the number of entries currently on the stack.
func (s *Stack) Depth() int { return len(s.items) }

// Push appends v to the top.
func (s *Stack) Push(v Value) {
	if v == nil {
		v = Null{}
	}
	s.items = append(s.items, v)
}

// Pop removes and returns the top entry.
func (s *Stack) Pop() (Value, error) {
	if len(s.items) == 0 {
		return nil, vmerrors.ErrStackUnderflow
	}
	v := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return v, nil
}

// Top returns the top entry without removing it.
func (s *Stack) Top() (Value, error) {
	if len(s.items) == 0 {
		return nil, vmerrors.ErrStackUnderflow
	}
	return s.items[len(s.items)-1], nil
}

// At returns the entry at depth i from the top (0 = TOS) without
// removing anything.
func (s *Stack) At(i int) (Value, error) {
	idx := len(s.items) - 1 - i
	if i < 0 || idx < 0 {
		return nil, vmerrors.ErrStackUnderflow
	}
	return s.items[idx], nil
}

// SetAt replaces the entry at depth i from the top.
func (s *Stack) SetAt(i int, v Value) error {
	idx := len(s.items) - 1 - i
	if i < 0 || idx < 0 {
		return vmerrors.ErrStackUnderflow
	}
	s.items[idx] = v
	return nil
}

// --- typed pops -----------------------------------------------------

func (s *Stack) PopInt() (Int257, error) {
	v, err := s.Pop()
	if err != nil {
		return Int257{}, err
	}
	i, ok := v.(Int257)
	if !ok {
		return Int257{}, vmerrors.ErrTypeCheck
	}
	return i, nil
}

// PopIntFinite pops an Int257 and rejects NaN (the "finite" variant used
// by opcodes that cannot operate on an out-of-range value, spec.md §3).
func (s *Stack) PopIntFinite() (Int257, error) {
	i, err := s.PopInt()
	if err != nil {
		return Int257{}, err
	}
	if i.IsNaN() {
		return Int257{}, vmerrors.ErrRangeCheck
	}
	return i, nil
}

// PopIntRange pops an Int257 and checks it lies in [lo, hi].
func (s *Stack) PopIntRange(lo, hi int64) (int64, error) {
	i, err := s.PopIntFinite()
	if err != nil {
		return 0, err
	}
	v := i.ToBig()
	if !v.IsInt64() {
		return 0, vmerrors.ErrRangeCheck
	}
	iv := v.Int64()
	if iv < lo || iv > hi {
		return 0, vmerrors.ErrRangeCheck
	}
	return iv, nil
}

func (s *Stack) PopBool() (bool, error) {
	i, err := s.PopIntFinite()
	if err != nil {
		return false, err
	}
	return i.Sign() != 0, nil
}

func (s *Stack) PopCell() (*cellstore.Cell, error) {
	v, err := s.Pop()
	if err != nil {
		return nil, err
	}
	c, ok := v.(CellValue)
	if !ok {
		return nil, vmerrors.ErrTypeCheck
	}
	return c.Cell, nil
}

func (s *Stack) PopSlice() (*cellstore.Slice, error) {
	v, err := s.Pop()
	if err != nil {
		return nil, err
	}
	sl, ok := v.(SliceValue)
	if !ok {
		return nil, vmerrors.ErrTypeCheck
	}
	return sl.Slice, nil
}

func (s *Stack) PopBuilder() (*cellstore.Builder, error) {
	v, err := s.Pop()
	if err != nil {
		return nil, err
	}
	b, ok := v.(BuilderValue)
	if !ok {
		return nil, vmerrors.ErrTypeCheck
	}
	return b.Builder, nil
}

func (s *Stack) PopContinuation() (Continuation, error) {
	v, err := s.Pop()
	if err != nil {
		return nil, err
	}
	c, ok := v.(Continuation)
	if !ok {
		return nil, vmerrors.ErrTypeCheck
	}
	return c, nil
}

func (s *Stack) PopBox() (*Box, error) {
	v, err := s.Pop()
	if err != nil {
		return nil, err
	}
	b, ok := v.(*Box)
	if !ok {
		return nil, vmerrors.ErrTypeCheck
	}
	return b, nil
}

func (s *Stack) PopTuple() (*Tuple, error) {
	v, err := s.Pop()
	if err != nil {
		return nil, err
	}
	t, ok := v.(*Tuple)
	if !ok {
		return nil, vmerrors.ErrTypeCheck
	}
	return t, nil
}

func (s *Stack) PopBytes() (Bytes, error) {
	v, err := s.Pop()
	if err != nil {
		return nil, err
	}
	b, ok := v.(Bytes)
	if !ok {
		return nil, vmerrors.ErrTypeCheck
	}
	return b, nil
}

func (s *Stack) PopString() (String, error) {
	v, err := s.Pop()
	if err != nil {
		return "", err
	}
	str, ok := v.(String)
	if !ok {
		return "", vmerrors.ErrTypeCheck
	}
	return str, nil
}

// --- generic stack manipulation --------------------------------------

// Swap exchanges TOS and the entry below it.
func (s *Stack) Swap() error { return s.Exch(0, 1) }

// Dup duplicates TOS.
func (s *Stack) Dup() error {
	v, err := s.Top()
	if err != nil {
		return err
	}
	s.Push(v)
	return nil
}

// Over pushes a copy of the second-from-top entry.
func (s *Stack) Over() error {
	v, err := s.At(1)
	if err != nil {
		return err
	}
	s.Push(v)
	return nil
}

// Pick pushes a copy of the n-th entry from the top (PICK / PUSH i).
func (s *Stack) Pick(n int) error {
	v, err := s.At(n)
	if err != nil {
		return err
	}
	s.Push(v)
	return nil
}

// Exch swaps the entries at depths i and j from the top (XCHG i j).
func (s *Stack) Exch(i, j int) error {
	vi, err := s.At(i)
	if err != nil {
		return err
	}
	vj, err := s.At(j)
	if err != nil {
		return err
	}
	if err := s.SetAt(i, vj); err != nil {
		return err
	}
	return s.SetAt(j, vi)
}

// Roll moves the n-th entry from the top to the top, shifting the
// entries above it down by one (ROLL).
func (s *Stack) Roll(n int) error {
	if n < 0 || n >= len(s.items) {
		return vmerrors.ErrStackUnderflow
	}
	idx := len(s.items) - 1 - n
	v := s.items[idx]
	copy(s.items[idx:], s.items[idx+1:])
	s.items[len(s.items)-1] = v
	return nil
}

// RollRev is the inverse of Roll: moves TOS down to the n-th position
// (ROLLREV).
func (s *Stack) RollRev(n int) error {
	if n < 0 || n >= len(s.items) {
		return vmerrors.ErrStackUnderflow
	}
	idx := len(s.items) - 1 - n
	v := s.items[len(s.items)-1]
	copy(s.items[idx+1:], s.items[idx:len(s.items)-1])
	s.items[idx] = v
	return nil
}

// Reverse reverses the m entries starting n from the top (REVERSE m n).
func (s *Stack) Reverse(m, n int) error {
	if m < 0 || n < 0 || n+m > len(s.items) {
		return vmerrors.ErrStackUnderflow
	}
	lo := len(s.items) - n - m
	hi := len(s.items) - n - 1
	for lo < hi {
		s.items[lo], s.items[hi] = s.items[hi], s.items[lo]
		lo++
		hi--
	}
	return nil
}

// PopN removes and returns the top n entries, bottom-to-top order (as
// CALLXARGS/RETURNARGS-style operations consume them).
func (s *Stack) PopN(n int) ([]Value, error) {
	if n < 0 || n > len(s.items) {
		return nil, vmerrors.ErrStackUnderflow
	}
	out := append([]Value(nil), s.items[len(s.items)-n:]...)
	s.items = s.items[:len(s.items)-n]
	return out, nil
}

// PushN appends values in order (bottom to top).
func (s *Stack) PushN(vs []Value) {
	for _, v := range vs {
		s.Push(v)
	}
}

// Clone returns an independent copy of the stack (used when forking
// execution into a child VM, RUNVM/RUNVMX).
func (s *Stack) Clone() *Stack {
	return &Stack{items: append([]Value(nil), s.items...)}
}
