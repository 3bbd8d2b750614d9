// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package tvm

import (
	"github.com/ton-blockchain/ton-sub013/internal/opcode"
	"github.com/ton-blockchain/ton-sub013/internal/stack"
	"github.com/ton-blockchain/ton-sub013/internal/vmerrors"
)

// registerStack wires spec.md §4.7 "Stack low-level": XCHG, PUSH/POP by
// index, PICK, ROLL/ROLLREV, REVERSE, plus the zero-argument word
// generators (SWAP, DUP, OVER, DROP) for the common indices.
func registerStack(vm *VM) []*opcode.Entry {
	chargeDepth := func() error { return vm.gas.ChargeStackDepth(vm.stack.Depth()) }

	return []*opcode.Entry{
		{Mnemonic: "NOP", Prefix: 0x00, PrefixLen: 8, Exec: func(opcode.Args) error { return nil }},
		{Mnemonic: "SWAP", Prefix: 0x01, PrefixLen: 8, Exec: func(opcode.Args) error { return vm.stack.Swap() }},
		{Mnemonic: "XCHG", Prefix: 0x10, PrefixLen: 8, ArgBits: 8, Exec: func(args opcode.Args) error {
			if err := chargeDepth(); err != nil {
				return err
			}
			return vm.stack.Exch(0, int(args.Arg))
		}},
		{Mnemonic: "PUSH", Prefix: 0x20, PrefixLen: 8, ArgBits: 8, Exec: func(args opcode.Args) error {
			if err := chargeDepth(); err != nil {
				return err
			}
			return vm.stack.Pick(int(args.Arg))
		}},
		{Mnemonic: "POP", Prefix: 0x30, PrefixLen: 8, ArgBits: 8, Exec: func(args opcode.Args) error {
			if err := chargeDepth(); err != nil {
				return err
			}
			v, err := vm.stack.Pop()
			if err != nil {
				return err
			}
			return vm.stack.SetAt(int(args.Arg), v)
		}},
		{Mnemonic: "DUP", Prefix: 0x02, PrefixLen: 8, Exec: func(opcode.Args) error { return vm.stack.Dup() }},
		{Mnemonic: "OVER", Prefix: 0x03, PrefixLen: 8, Exec: func(opcode.Args) error { return vm.stack.Over() }},
		{Mnemonic: "DROP", Prefix: 0x04, PrefixLen: 8, Exec: func(opcode.Args) error { _, err := vm.stack.Pop(); return err }},
		{Mnemonic: "PICK", Prefix: 0x60, PrefixLen: 8, Exec: func(opcode.Args) error {
			n, err := vm.stack.PopIntRange(0, 255)
			if err != nil {
				return err
			}
			if err := chargeDepth(); err != nil {
				return err
			}
			return vm.stack.Pick(int(n))
		}},
		{Mnemonic: "ROLL", Prefix: 0x61, PrefixLen: 8, Exec: func(opcode.Args) error {
			n, err := vm.stack.PopIntRange(0, 255)
			if err != nil {
				return err
			}
			if err := chargeDepth(); err != nil {
				return err
			}
			return vm.stack.Roll(int(n))
		}},
		{Mnemonic: "ROLLREV", Prefix: 0x62, PrefixLen: 8, Exec: func(opcode.Args) error {
			n, err := vm.stack.PopIntRange(0, 255)
			if err != nil {
				return err
			}
			if err := chargeDepth(); err != nil {
				return err
			}
			return vm.stack.RollRev(int(n))
		}},
		{Mnemonic: "REVERSE", Prefix: 0x65, PrefixLen: 8, ArgBits: 8, Exec: func(args opcode.Args) error {
			m := int(args.Arg >> 4)
			n := int(args.Arg & 0xF)
			if err := chargeDepth(); err != nil {
				return err
			}
			return vm.stack.Reverse(m, n)
		}},
		{Mnemonic: "DEPTH", Prefix: 0x68, PrefixLen: 8, Exec: func(opcode.Args) error {
			vm.stack.Push(stack.FromInt64(int64(vm.stack.Depth())))
			return nil
		}},
		{Mnemonic: "CHKDEPTH", Prefix: 0x69, PrefixLen: 8, Exec: func(opcode.Args) error {
			n, err := vm.stack.PopIntRange(0, 1<<16)
			if err != nil {
				return err
			}
			if int64(vm.stack.Depth()) < n {
				return vmerrors.ErrStackUnderflow
			}
			return nil
		}},
	}
}
