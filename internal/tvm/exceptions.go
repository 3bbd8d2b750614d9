// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package tvm

import (
	"github.com/ton-blockchain/ton-sub013/internal/cont"
	"github.com/ton-blockchain/ton-sub013/internal/opcode"
	"github.com/ton-blockchain/ton-sub013/internal/stack"
	"github.com/ton-blockchain/ton-sub013/internal/vmerrors"
)

// registerException wires spec.md §4.7 "Exceptions": the THROW family
// raises a *vmerrors.Exception, which unwinds the current cont.Run call;
// TRY installs a c2/c0 pair around a body continuation so Execute's
// catch loop can resume into the handler instead of aborting the run.
func registerException(vm *VM) []*opcode.Entry {
	throw := func(code vmerrors.Code, arg int64) error {
		return vmerrors.NewException(code, arg)
	}

	return []*opcode.Entry{
		{Mnemonic: "THROW", Prefix: 0xF200, PrefixLen: 16, ArgBits: 8, Exec: func(args opcode.Args) error {
			return throw(vmerrors.Code(args.Arg), 0)
		}},
		{Mnemonic: "THROWIF", Prefix: 0xF201, PrefixLen: 16, ArgBits: 8, Exec: func(args opcode.Args) error {
			ok, err := vm.stack.PopBool()
			if err != nil {
				return err
			}
			if ok {
				return throw(vmerrors.Code(args.Arg), 0)
			}
			return nil
		}},
		{Mnemonic: "THROWIFNOT", Prefix: 0xF202, PrefixLen: 16, ArgBits: 8, Exec: func(args opcode.Args) error {
			ok, err := vm.stack.PopBool()
			if err != nil {
				return err
			}
			if !ok {
				return throw(vmerrors.Code(args.Arg), 0)
			}
			return nil
		}},
		{Mnemonic: "THROWANY", Prefix: 0xF203, PrefixLen: 16, Exec: func(opcode.Args) error {
			code, err := vm.stack.PopIntRange(0, 0xffff)
			if err != nil {
				return err
			}
			return throw(vmerrors.Code(code), 0)
		}},
		{Mnemonic: "THROWARGANY", Prefix: 0xF204, PrefixLen: 16, Exec: func(opcode.Args) error {
			code, err := vm.stack.PopIntRange(0, 0xffff)
			if err != nil {
				return err
			}
			arg, err := vm.stack.PopIntFinite()
			if err != nil {
				return err
			}
			return throw(vmerrors.Code(code), arg.ToBig().Int64())
		}},
		{Mnemonic: "THROWARG", Prefix: 0xF205, PrefixLen: 16, ArgBits: 8, Exec: func(args opcode.Args) error {
			arg, err := vm.stack.PopIntFinite()
			if err != nil {
				return err
			}
			return throw(vmerrors.Code(args.Arg), arg.ToBig().Int64())
		}},
		{Mnemonic: "TRY", Prefix: 0xF210, PrefixLen: 16, Exec: func(opcode.Args) error {
			return execTry(vm, 0, 0, false)
		}},
		{Mnemonic: "TRYARGS", Prefix: 0xF211, PrefixLen: 16, ArgBits: 8, Exec: func(args opcode.Args) error {
			p := int(args.Arg>>4) & 0xF
			r := int(args.Arg) & 0xF
			return execTry(vm, p, r, true)
		}},
	}
}

// execTry pops (handler, body) and installs them as the dynamic extent's
// c2/c0 pair (spec.md §4.7 "TRY"). withArgs selects the TRYARGS variant,
// which hands body only its top p values, rejoining the rest once body
// or handler runs; r (the handler's separate argument count) is accepted
// for opcode-signature compatibility but not yet enforced independently.
func execTry(vm *VM, p, r int, withArgs bool) error {
	handler, err := vm.stack.PopContinuation()
	if err != nil {
		return err
	}
	body, err := vm.stack.PopContinuation()
	if err != nil {
		return err
	}
	handlerCont, ok := handler.(cont.Continuation)
	if !ok {
		return vmerrors.ErrTypeCheck
	}
	bodyCont, ok := body.(cont.Continuation)
	if !ok {
		return vmerrors.ErrTypeCheck
	}

	// TRYARGS hands body only its top p values, keeping the lower part of
	// the stack aside and rejoining it below whatever body or handler
	// leaves behind; plain TRY shares the whole stack with body.
	var saved []stack.Value
	if withArgs {
		all, err := vm.stack.PopN(vm.stack.Depth())
		if err != nil {
			return err
		}
		if len(all) < p {
			return vmerrors.ErrStackUnderflow
		}
		split := len(all) - p
		saved = all[:split]
		vm.stack.PushN(all[split:])
	}

	oldC0, oldC2 := vm.regs.C0, vm.regs.C2
	rejoin := func() {
		if !withArgs {
			return
		}
		results, _ := vm.stack.PopN(vm.stack.Depth())
		vm.stack.PushN(saved)
		vm.stack.PushN(results)
	}
	restore := cont.NewNativeFunc("try-restore", func(s cont.State) (cont.Continuation, error) {
		vm.regs.C0 = oldC0
		vm.regs.C2 = oldC2
		rejoin()
		return oldC0, nil
	})
	catch := cont.NewNativeFunc("try-catch", func(s cont.State) (cont.Continuation, error) {
		vm.regs.C0 = oldC0
		vm.regs.C2 = oldC2
		rejoin()
		exc := vm.pendingExc
		vm.pendingExc = nil
		if exc != nil {
			vm.stack.Push(stack.FromInt64(exc.Arg))
			vm.stack.Push(stack.FromInt64(int64(exc.Code)))
		}
		return handlerCont, nil
	})

	vm.regs.C0 = restore
	vm.regs.C2 = catch
	vm.jump = bodyCont
	return nil
}
