// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package tvm

import (
	"github.com/ton-blockchain/ton-sub013/internal/cellstore"
	"github.com/ton-blockchain/ton-sub013/internal/cont"
	"github.com/ton-blockchain/ton-sub013/internal/gas"
	"github.com/ton-blockchain/ton-sub013/internal/stack"
	"github.com/ton-blockchain/ton-sub013/internal/vmerrors"
)

// OrdinaryCont is the `ordinary(code_slice, codepage, ...)` continuation
// of spec.md §3/§4.5: it sets the VM's current code/codepage, executes a
// single opcode, and returns itself (advanced) or the saved `next`.
type OrdinaryCont struct {
	Code     *cellstore.Slice
	Codepage int

	// SavedRegs/SavedStack are optional. When SavedRegs is set, Step
	// installs it as the VM's registers for the instruction it runs and
	// restores the previous registers afterwards. SavedStack (set by
	// SETCONTARGS) is pushed beneath the caller's stack by
	// applySavedStack when the continuation is invoked (spec.md §3
	// "Saving rules").
	SavedRegs    *Registers
	SavedStack   []stack.Value
	ExpectedArgs int
}

func (o *OrdinaryCont) Kind() stack.Kind      { return stack.KindContinuation }
func (o *OrdinaryCont) ContinuationMarker()   {}
func (o *OrdinaryCont) String() string        { return "Cont(ordinary)" }

// Step executes exactly one instruction at the current position of Code
// and returns the continuation for what runs next.
func (o *OrdinaryCont) Step(st cont.State) (cont.Continuation, error) {
	vm, ok := st.(*VM)
	if !ok {
		return nil, vmerrors.ErrFatal
	}
	if o.SavedRegs != nil {
		prev := vm.regs
		vm.regs = *o.SavedRegs
		defer func() { vm.regs = prev }()
	}
	table, ok := vm.codepages.Get(o.Codepage)
	if !ok {
		return nil, vmerrors.ErrInvalidOpcode
	}
	entry, args, err := table.Lookup(o.Code, vm.version)
	if err != nil {
		return nil, err
	}
	prevRunning := vm.running
	vm.running = o
	vm.jump = nil
	err = entry.Exec(args)
	vm.running = prevRunning
	if err != nil {
		return nil, err
	}
	if vm.jump != nil {
		j := vm.jump
		vm.jump = nil
		vm.jmps++
		if vm.jmps%9 == 0 {
			if err := vm.gas.Consume(gas.ImplicitJumpGasPrice); err != nil {
				return nil, err
			}
		}
		return j, nil
	}
	if o.Code.IsEmpty() && o.Code.RefsLeft() == 0 {
		return nil, nil
	}
	return o, nil
}

// NewOrdinary wraps a code slice as a running continuation at codepage 0.
func NewOrdinary(code *cellstore.Slice) *OrdinaryCont {
	return &OrdinaryCont{Code: code, Codepage: 0}
}
