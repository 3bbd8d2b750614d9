// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package tvm

import (
	"github.com/ton-blockchain/ton-sub013/internal/opcode"
	"github.com/ton-blockchain/ton-sub013/internal/stack"
)

// registerDebug wires spec.md §4.7 "Debug": instructions that print
// nothing unless a debug sink was configured (Config.DebugOut). Their
// stack effects apply either way: DEBUGSTR pops its string, STRDUMP pops
// and re-pushes its slice, and DUMP fails on a stack shorter than its
// index.
func registerDebug(vm *VM) []*opcode.Entry {
	return []*opcode.Entry{
		{Mnemonic: "DUMPSTK", Prefix: 0xFE00, PrefixLen: 16, Exec: func(opcode.Args) error {
			if vm.debugOut == nil {
				return nil
			}
			depth := vm.stack.Depth()
			vals := make([]string, depth)
			for i := 0; i < depth; i++ {
				v, err := vm.stack.At(i)
				if err != nil {
					return err
				}
				vals[i] = v.String() // vals[0] is TOS
			}
			vm.debugf("stack(%d): %v", depth, vals)
			return nil
		}},
		{Mnemonic: "DUMP", Prefix: 0xFE01, PrefixLen: 16, ArgBits: 4, Exec: func(args opcode.Args) error {
			v, err := vm.stack.At(int(args.Arg))
			if err != nil {
				return err
			}
			vm.debugf("s%d = %s", args.Arg, v.String())
			return nil
		}},
		{Mnemonic: "DEBUG", Prefix: 0xFE02, PrefixLen: 16, ArgBits: 8, Exec: func(args opcode.Args) error {
			vm.debugf("DEBUG %d", args.Arg)
			return nil
		}},
		{Mnemonic: "DEBUGSTR", Prefix: 0xFE03, PrefixLen: 16, Exec: func(opcode.Args) error {
			s, err := vm.stack.PopString()
			if err != nil {
				return err
			}
			vm.debugf("%s", string(s))
			return nil
		}},
		{Mnemonic: "STRDUMP", Prefix: 0xFE04, PrefixLen: 16, Exec: func(opcode.Args) error {
			s, err := vm.stack.PopSlice()
			if err != nil {
				return err
			}
			vm.debugf("%s", s.Cell().String())
			vm.stack.Push(stack.SliceValue{Slice: s})
			return nil
		}},
	}
}
