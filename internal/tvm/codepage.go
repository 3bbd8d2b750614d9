// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package tvm

import "github.com/ton-blockchain/ton-sub013/internal/opcode"

// registerCodepage wires spec.md §6.2 "SETCP/SETCPX": switching which
// codepage's table the running OrdinaryCont dispatches against. Only
// codepage 0 is registered by BuildCodepage0; SETCP to an unregistered
// page fails the next Lookup with ErrInvalidOpcode, matching spec.md's
// "no active entry matches" contract rather than failing SETCP itself.
func registerCodepage(vm *VM) []*opcode.Entry {
	setcp := func(page int) error {
		currentOrdinary(vm).Codepage = page
		return nil
	}
	return []*opcode.Entry{
		{Mnemonic: "SETCP0", Prefix: 0xFF00, PrefixLen: 16, Exec: func(opcode.Args) error {
			return setcp(0)
		}},
		{Mnemonic: "SETCP", Prefix: 0xFFF0, PrefixLen: 16, ArgBits: 8, ArgSigned: true, Exec: func(args opcode.Args) error {
			return setcp(int(args.Arg))
		}},
		{Mnemonic: "SETCPX", Prefix: 0xFFF1, PrefixLen: 16, Exec: func(opcode.Args) error {
			page, err := vm.stack.PopIntRange(-128, 127)
			if err != nil {
				return err
			}
			return setcp(int(page))
		}},
	}
}
