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

// registerControl2 wires the remaining spec.md §4.7 "Control flow" names
// not covered by registerControl: RETREF, the dictionary-dispatch family
// (CALLDICT/JMPDICT/PREPAREDICT, routed through c3 per spec.md's c3
// "codepage-3 dispatch" register), the closure-building family
// (SETCONTARGS/RETURNARGS/BLESS/CALLXARGS), and the c0..c3 save/restore
// family (PUSHCTR/POPCTR).
func registerControl2(vm *VM) []*opcode.Entry {
	return []*opcode.Entry{
		{Mnemonic: "RETREF", Prefix: 0xDB31, PrefixLen: 16, Exec: func(opcode.Args) error {
			r, err := currentOrdinary(vm).Code.LoadRef()
			if err != nil {
				return err
			}
			vm.jump = &OrdinaryCont{Code: cellstore.NewSlice(r), Codepage: currentOrdinary(vm).Codepage}
			return nil
		}},
		{Mnemonic: "BLESS", Prefix: 0xDB34, PrefixLen: 16, Exec: func(opcode.Args) error {
			sl, err := vm.stack.PopSlice()
			if err != nil {
				return err
			}
			vm.stack.Push(&OrdinaryCont{Code: sl, Codepage: currentOrdinary(vm).Codepage})
			return nil
		}},
		{Mnemonic: "SETCONTARGS", Prefix: 0xDB3C, PrefixLen: 16, ArgBits: 8, Exec: func(args opcode.Args) error {
			n := int(args.Arg>>4) & 0xF
			r := int(args.Arg) & 0xF
			c, err := vm.stack.PopContinuation()
			if err != nil {
				return err
			}
			oc, ok := c.(*OrdinaryCont)
			if !ok {
				return vmerrors.ErrTypeCheck
			}
			saved, err := vm.stack.PopN(n)
			if err != nil {
				return err
			}
			clone := *oc
			clone.SavedStack = saved
			clone.ExpectedArgs = r
			vm.stack.Push(&clone)
			return nil
		}},
		{Mnemonic: "RETURNARGS", Prefix: 0xDB3D, PrefixLen: 16, ArgBits: 4, Exec: func(args opcode.Args) error {
			n := int(args.Arg)
			kept, err := vm.stack.PopN(n)
			if err != nil {
				return err
			}
			if _, err := vm.stack.PopN(vm.stack.Depth()); err != nil {
				return err
			}
			vm.stack.PushN(kept)
			if vm.regs.C0 == nil {
				return vmerrors.ErrFatal
			}
			vm.jump = vm.regs.C0
			return nil
		}},
		{Mnemonic: "CALLXARGS", Prefix: 0xDA, PrefixLen: 8, ArgBits: 8, Exec: func(args opcode.Args) error {
			p := int(args.Arg>>4) & 0xF
			_ = int(args.Arg) & 0xF // r (expected results): accepted, not separately enforced
			c, err := vm.stack.PopContinuation()
			if err != nil {
				return err
			}
			cc, ok := c.(cont.Continuation)
			if !ok {
				return vmerrors.ErrTypeCheck
			}
			all, err := vm.stack.PopN(vm.stack.Depth())
			if err != nil {
				return err
			}
			if len(all) < p {
				return vmerrors.ErrStackUnderflow
			}
			split := len(all) - p
			saved := all[:split]
			vm.stack.PushN(all[split:])
			rejoin := cont.NewNativeFunc("callxargs-rejoin", func(s cont.State) (cont.Continuation, error) {
				results, _ := vm.stack.PopN(vm.stack.Depth())
				vm.stack.PushN(saved)
				vm.stack.PushN(results)
				return nil, nil
			})
			vm.next = cont.Cons(rejoin, vm.next)
			applySavedStack(vm, cc)
			vm.jump = cc
			return nil
		}},
		{Mnemonic: "CALLDICT", Prefix: 0xF4A0, PrefixLen: 16, ArgBits: 14, Exec: func(args opcode.Args) error {
			if vm.regs.C3 == nil {
				return vmerrors.ErrFatal
			}
			vm.stack.Push(stack.FromInt64(args.Arg))
			vm.next = cont.Cons(currentOrdinary(vm), vm.next)
			applySavedStack(vm, vm.regs.C3)
			vm.jump = vm.regs.C3
			return nil
		}},
		{Mnemonic: "JMPDICT", Prefix: 0xF4A1, PrefixLen: 16, ArgBits: 14, Exec: func(args opcode.Args) error {
			if vm.regs.C3 == nil {
				return vmerrors.ErrFatal
			}
			vm.stack.Push(stack.FromInt64(args.Arg))
			applySavedStack(vm, vm.regs.C3)
			vm.jump = vm.regs.C3
			return nil
		}},
		{Mnemonic: "PREPAREDICT", Prefix: 0xF4A2, PrefixLen: 16, ArgBits: 14, Exec: func(args opcode.Args) error {
			if vm.regs.C3 == nil {
				return vmerrors.ErrFatal
			}
			vm.stack.Push(stack.FromInt64(args.Arg))
			vm.stack.Push(vm.regs.C3)
			return nil
		}},
		{Mnemonic: "PUSHCTR", Prefix: 0xED4, PrefixLen: 12, ArgBits: 4, Exec: func(args opcode.Args) error {
			slot, err := ctrSlot(vm, int(args.Arg))
			if err != nil {
				return err
			}
			vm.stack.Push(*slot)
			return nil
		}},
		{Mnemonic: "POPCTR", Prefix: 0xED5, PrefixLen: 12, ArgBits: 4, Exec: func(args opcode.Args) error {
			slot, err := ctrSlot(vm, int(args.Arg))
			if err != nil {
				return err
			}
			v, err := vm.stack.Pop()
			if err != nil {
				return err
			}
			if stack.IsNull(v) {
				*slot = nil
				return nil
			}
			cc, ok := v.(cont.Continuation)
			if !ok {
				return vmerrors.ErrTypeCheck
			}
			*slot = cc
			return nil
		}},
	}
}

// ctrSlot resolves the c0..c3 control register addressed by n; c4..c7
// hold cells/tuples rather than continuations and are reached through
// their own dedicated opcodes (COMMIT, GETGLOB/SETGLOB, ...) instead of
// this family.
func ctrSlot(vm *VM, n int) (*cont.Continuation, error) {
	switch n {
	case 0:
		return &vm.regs.C0, nil
	case 1:
		return &vm.regs.C1, nil
	case 2:
		return &vm.regs.C2, nil
	case 3:
		return &vm.regs.C3, nil
	}
	return nil, vmerrors.ErrRangeCheck
}

// applySavedStack merges a SETCONTARGS closure's captured values beneath
// whatever the caller left on the stack, so cc sees them the same way on
// every invocation (spec.md §3 "Saving rules" extended to the data stack
// for continuations built by SETCONTARGS).
func applySavedStack(vm *VM, cc cont.Continuation) {
	oc, ok := cc.(*OrdinaryCont)
	if !ok || oc.SavedStack == nil {
		return
	}
	rest, _ := vm.stack.PopN(vm.stack.Depth())
	vm.stack.PushN(oc.SavedStack)
	vm.stack.PushN(rest)
}
