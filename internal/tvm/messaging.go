// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package tvm

import (
	"github.com/holiman/uint256"

	"github.com/ton-blockchain/ton-sub013/internal/cellstore"
	"github.com/ton-blockchain/ton-sub013/internal/gas"
	"github.com/ton-blockchain/ton-sub013/internal/opcode"
)

// registerMessaging wires spec.md §6.4 "Messaging": instructions that
// prepend an out-action cell onto c5 (spec.md §6.4 "Action list" —
// "c5 points to the most-recent node whose first ref is the previous
// head"). Each action records its 32-bit discriminator exactly as
// spec.md §6.4 lists it.
func registerMessaging(vm *VM) []*opcode.Entry {
	return []*opcode.Entry{
		{Mnemonic: "SENDRAWMSG", Prefix: 0xFB00, PrefixLen: 16, Exec: func(opcode.Args) error {
			mode, err := vm.stack.PopIntRange(0, 255)
			if err != nil {
				return err
			}
			msg, err := vm.stack.PopCell()
			if err != nil {
				return err
			}
			return vm.appendAction(0x0ec3c86d, func(b *cellstore.Builder) error {
				if err := b.StoreUint(uint256.NewInt(uint64(mode)), 8); err != nil {
					return err
				}
				return b.StoreRef(msg)
			})
		}},
		// SENDMSG takes an already-assembled message cell; real TVM's
		// fee-estimation mode for SENDMSG (spec.md §9 version-dependent
		// "SENDMSG fee model") is not modeled, so it behaves identically to
		// SENDRAWMSG here.
		{Mnemonic: "SENDMSG", Prefix: 0xFB01, PrefixLen: 16, Exec: func(opcode.Args) error {
			mode, err := vm.stack.PopIntRange(0, 255)
			if err != nil {
				return err
			}
			msg, err := vm.stack.PopCell()
			if err != nil {
				return err
			}
			return vm.appendAction(0x0ec3c86d, func(b *cellstore.Builder) error {
				if err := b.StoreUint(uint256.NewInt(uint64(mode)), 8); err != nil {
					return err
				}
				return b.StoreRef(msg)
			})
		}},
		{Mnemonic: "RAWRESERVE", Prefix: 0xFB02, PrefixLen: 16, Exec: func(opcode.Args) error {
			mode, err := vm.stack.PopIntRange(0, 255)
			if err != nil {
				return err
			}
			amount, err := vm.stack.PopIntFinite()
			if err != nil {
				return err
			}
			return vm.appendAction(0x36e6b809, func(b *cellstore.Builder) error {
				if err := b.StoreUint(uint256.NewInt(uint64(mode)), 8); err != nil {
					return err
				}
				return storeVarUintValue(b, amount.ToBig(), 4)
			})
		}},
		{Mnemonic: "SETCODE", Prefix: 0xFB04, PrefixLen: 16, Exec: func(opcode.Args) error {
			code, err := vm.stack.PopCell()
			if err != nil {
				return err
			}
			return vm.appendAction(0xad4de08e, func(b *cellstore.Builder) error {
				return b.StoreRef(code)
			})
		}},
		{Mnemonic: "CHANGELIB/SETLIBCODE", Prefix: 0xFB06, PrefixLen: 16, Exec: func(opcode.Args) error {
			mode, err := vm.stack.PopIntRange(0, 255)
			if err != nil {
				return err
			}
			code, err := vm.stack.PopCell()
			if err != nil {
				return err
			}
			return vm.appendAction(0x26fa1dd4, func(b *cellstore.Builder) error {
				if err := b.StoreUint(uint256.NewInt(uint64(mode)), 8); err != nil {
					return err
				}
				return b.StoreRef(code)
			})
		}},
	}
}

// appendAction prepends a new action cell onto c5: discr (32-bit,
// spec.md §6.4) then whatever fill writes, with a ref to the previous
// c5 head when one exists (the base case has no such ref, matching an
// empty out-action list).
func (vm *VM) appendAction(discr uint32, fill func(*cellstore.Builder) error) error {
	b := cellstore.NewBuilder()
	if vm.regs.C5 != nil {
		if err := b.StoreRef(vm.regs.C5); err != nil {
			return err
		}
	}
	if err := b.StoreUint(uint256.NewInt(uint64(discr)), 32); err != nil {
		return err
	}
	if err := fill(b); err != nil {
		return err
	}
	if err := vm.gas.Consume(gas.CellCreateGasPrice); err != nil {
		return err
	}
	c, err := b.Finalize(false)
	if err != nil {
		return err
	}
	vm.regs.C5 = c
	return nil
}
