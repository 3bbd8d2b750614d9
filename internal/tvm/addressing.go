// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package tvm

import (
	"math/big"

	"github.com/holiman/uint256"

	"github.com/ton-blockchain/ton-sub013/internal/cellstore"
	"github.com/ton-blockchain/ton-sub013/internal/opcode"
	"github.com/ton-blockchain/ton-sub013/internal/stack"
)

// registerAddressing wires spec.md §6.4 "Addressing/currency": loading
// and parsing `addr_std` message addresses, and the VarUInteger-coded
// amount fields used throughout TON's block/message layout (Grams is
// VarUInteger 16, spec.md's LDGRAMS/STGRAMS are named synonyms for the
// LDVARUINT16/STVARUINT16 pair kept alongside them here).
//
// Anycast-rewritten addresses (the `anycast` maybe-field in
// `addr_std$10`) are not supported: REWRITESTDADDR/REWRITEVARADDR parse
// the same `addr_std` layout as LDMSGADDR/PARSEMSGADDR without applying
// a prefix rewrite, which is a correct no-op for the overwhelming
// majority of addresses (anycast unset) and a documented simplification
// otherwise.
func registerAddressing(vm *VM) []*opcode.Entry {
	loadStdAddr := func(sl *cellstore.Slice) (wc int64, addr *uint256.Int, err error) {
		if _, err = sl.LoadBits(2); err != nil { // addr_std$10 tag
			return 0, nil, err
		}
		if _, err = sl.LoadBits(1); err != nil { // anycast maybe-bit, assumed absent
			return 0, nil, err
		}
		wcBig, err := sl.LoadSignedBig(8, true)
		if err != nil {
			return 0, nil, err
		}
		addr, err = sl.LoadUint(256, false)
		if err != nil {
			return 0, nil, err
		}
		return wcBig.Int64(), addr, nil
	}

	loadVarUint := func(lenBits int, signed bool) func(opcode.Args) error {
		return func(opcode.Args) error {
			sl, err := vm.stack.PopSlice()
			if err != nil {
				return err
			}
			lenField, err := sl.LoadUint(lenBits, false)
			if err != nil {
				return err
			}
			n := int(lenField.Uint64())
			var v *uint256.Int
			if n == 0 {
				v = new(uint256.Int)
			} else {
				v, err = sl.LoadUint(n*8, signed)
				if err != nil {
					return err
				}
			}
			vm.stack.Push(stack.SliceValue{Slice: sl})
			vm.stack.Push(stack.FromUint256(v))
			return nil
		}
	}

	storeVarUint := func(lenBits int) func(opcode.Args) error {
		return func(opcode.Args) error {
			b, err := vm.stack.PopBuilder()
			if err != nil {
				return err
			}
			x, err := vm.stack.PopIntFinite()
			if err != nil {
				return err
			}
			if err := storeVarUintValue(b, x.ToBig(), lenBits); err != nil {
				return err
			}
			vm.stack.Push(stack.BuilderValue{Builder: b})
			return nil
		}
	}

	return []*opcode.Entry{
		{Mnemonic: "LDMSGADDR", Prefix: 0xFA40, PrefixLen: 16, Exec: func(opcode.Args) error {
			sl, err := vm.stack.PopSlice()
			if err != nil {
				return err
			}
			before := sl.Clone()
			if _, _, err := loadStdAddr(sl); err != nil {
				return err
			}
			bits := before.BitsLeft() - sl.BitsLeft()
			raw, err := before.SubSlice(0, bits)
			if err != nil {
				return err
			}
			vm.stack.Push(stack.SliceValue{Slice: raw})
			vm.stack.Push(stack.SliceValue{Slice: sl})
			return nil
		}},
		{Mnemonic: "PARSEMSGADDR", Prefix: 0xFA42, PrefixLen: 16, Exec: func(opcode.Args) error {
			sl, err := vm.stack.PopSlice()
			if err != nil {
				return err
			}
			wc, addr, err := loadStdAddr(sl)
			if err != nil {
				return err
			}
			t, err := stack.NewTuple([]stack.Value{stack.FromInt64(wc), stack.FromUint256(addr)})
			if err != nil {
				return err
			}
			vm.stack.Push(t)
			return nil
		}},
		{Mnemonic: "REWRITESTDADDR", Prefix: 0xFA44, PrefixLen: 16, Exec: func(opcode.Args) error {
			sl, err := vm.stack.PopSlice()
			if err != nil {
				return err
			}
			wc, addr, err := loadStdAddr(sl)
			if err != nil {
				return err
			}
			vm.stack.Push(stack.FromInt64(wc))
			vm.stack.Push(stack.FromUint256(addr))
			return nil
		}},
		{Mnemonic: "REWRITEVARADDR", Prefix: 0xFA46, PrefixLen: 16, Exec: func(opcode.Args) error {
			sl, err := vm.stack.PopSlice()
			if err != nil {
				return err
			}
			wc, addr, err := loadStdAddr(sl)
			if err != nil {
				return err
			}
			vm.stack.Push(stack.FromInt64(wc))
			vm.stack.Push(stack.FromUint256(addr))
			return nil
		}},
		{Mnemonic: "LDGRAMS/LDVARUINT16", Prefix: 0xFA00, PrefixLen: 16, Exec: loadVarUint(4, false)},
		{Mnemonic: "LDVARINT16", Prefix: 0xFA01, PrefixLen: 16, Exec: loadVarUint(4, true)},
		{Mnemonic: "STGRAMS/STVARUINT16", Prefix: 0xFA02, PrefixLen: 16, Exec: storeVarUint(4)},
		{Mnemonic: "STVARINT16", Prefix: 0xFA03, PrefixLen: 16, Exec: storeVarUint(4)},
		{Mnemonic: "LDVARUINT32", Prefix: 0xFA04, PrefixLen: 16, Exec: loadVarUint(5, false)},
		{Mnemonic: "LDVARINT32", Prefix: 0xFA05, PrefixLen: 16, Exec: loadVarUint(5, true)},
		{Mnemonic: "STVARUINT32", Prefix: 0xFA06, PrefixLen: 16, Exec: storeVarUint(5)},
		{Mnemonic: "STVARINT32", Prefix: 0xFA07, PrefixLen: 16, Exec: storeVarUint(5)},
	}
}

// storeVarUintValue writes the VarUInteger(2^lenBits) encoding of v (a
// byte-length prefix then that many magnitude bytes) into b; shared by
// STGRAMS/STVARUINT* here and the action-list amount fields in
// messaging.go.
func storeVarUintValue(b *cellstore.Builder, v *big.Int, lenBits int) error {
	n := (v.BitLen() + 7) / 8
	if err := b.StoreUint(uint256.NewInt(uint64(n)), lenBits); err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	return b.StoreUint(new(uint256.Int).SetBytes(v.Bytes()), n*8)
}
