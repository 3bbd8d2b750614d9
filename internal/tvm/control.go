// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package tvm

import (
	"github.com/ton-blockchain/ton-sub013/internal/cellstore"
	"github.com/ton-blockchain/ton-sub013/internal/cont"
	"github.com/ton-blockchain/ton-sub013/internal/opcode"
	"github.com/ton-blockchain/ton-sub013/internal/stack"
	"github.com/ton-blockchain/ton-sub013/internal/vmerrors"
)

// registerControl wires spec.md §4.7 "Control flow": reference-coded
// calls/jumps, EXECUTE/JMPX, RET, and the PUSHINT/PUSHCONT literal
// pushers that feed `repeat`/`until`/`while` their body continuations.
func registerControl(vm *VM) []*opcode.Entry {
	return []*opcode.Entry{
		{Mnemonic: "PUSHINT", Prefix: 0x70, PrefixLen: 8, ArgBits: 8, ArgSigned: true, Exec: func(args opcode.Args) error {
			vm.stack.Push(stack.FromInt64(args.Arg))
			return nil
		}},
		{Mnemonic: "PUSHREF", Prefix: 0x88, PrefixLen: 8, Exec: func(opcode.Args) error {
			r, err := currentOrdinary(vm).Code.LoadRef()
			if err != nil {
				return err
			}
			vm.stack.Push(stack.CellValue{Cell: r})
			return nil
		}},
		{Mnemonic: "PUSHCONT", Prefix: 0x8E, PrefixLen: 8, Exec: func(opcode.Args) error {
			r, err := currentOrdinary(vm).Code.LoadRef()
			if err != nil {
				return err
			}
			vm.stack.Push(&OrdinaryCont{Code: cellstore.NewSlice(r), Codepage: currentOrdinary(vm).Codepage})
			return nil
		}},
		{Mnemonic: "CALLREF", Prefix: 0xC9F0, PrefixLen: 16, Exec: func(opcode.Args) error {
			r, err := currentOrdinary(vm).Code.LoadRef()
			if err != nil {
				return err
			}
			vm.next = cont.Cons(currentOrdinary(vm), vm.next)
			vm.jump = &OrdinaryCont{Code: cellstore.NewSlice(r), Codepage: currentOrdinary(vm).Codepage}
			return nil
		}},
		{Mnemonic: "JMPREF", Prefix: 0xC9F1, PrefixLen: 16, Exec: func(opcode.Args) error {
			r, err := currentOrdinary(vm).Code.LoadRef()
			if err != nil {
				return err
			}
			vm.jump = &OrdinaryCont{Code: cellstore.NewSlice(r), Codepage: currentOrdinary(vm).Codepage}
			return nil
		}},
		{Mnemonic: "EXECUTE", Prefix: 0xD8, PrefixLen: 8, Exec: func(opcode.Args) error {
			c, err := vm.stack.PopContinuation()
			if err != nil {
				return err
			}
			cc, ok := c.(cont.Continuation)
			if !ok {
				return vmerrors.ErrTypeCheck
			}
			vm.next = cont.Cons(currentOrdinary(vm), vm.next)
			applySavedStack(vm, cc)
			vm.jump = cc
			return nil
		}},
		{Mnemonic: "JMPX", Prefix: 0xD9, PrefixLen: 8, Exec: func(opcode.Args) error {
			c, err := vm.stack.PopContinuation()
			if err != nil {
				return err
			}
			cc, ok := c.(cont.Continuation)
			if !ok {
				return vmerrors.ErrTypeCheck
			}
			applySavedStack(vm, cc)
			vm.jump = cc
			return nil
		}},
		{Mnemonic: "RET", Prefix: 0xDB30, PrefixLen: 16, Exec: func(opcode.Args) error {
			if vm.regs.C0 == nil {
				return vmerrors.ErrFatal
			}
			vm.jump = vm.regs.C0
			return nil
		}},
	}
}

// currentOrdinary recovers the OrdinaryCont driving this step: control
// flow opcodes that read refs (CALLREF, PUSHCONT, ...) need access to
// the code slice that dispatched them, which the opcode closures below
// obtain through the VM's currently-running continuation pointer.
func currentOrdinary(vm *VM) *OrdinaryCont { return vm.running }
