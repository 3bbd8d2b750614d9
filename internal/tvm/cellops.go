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
	"github.com/ton-blockchain/ton-sub013/internal/stack"
)

// registerCell wires spec.md §4.7 "Cell ops": builder construction
// (NEWC/STI/STU/STSLICE/STREF/ENDC) and slice parsing
// (CTOS/LDI/LDU/LDREF/SEMPTY/SDEPTH/SBITS/SREFS), charging
// CellCreateGasPrice on ENDC and CellLoadGasPrice/CellReloadGasPrice via
// vm.ChargeCellLoad on each cell touched through CTOS/LDREF.
func registerCell(vm *VM) []*opcode.Entry {
	storeInt := func(name string, prefix uint32, prefixLen int, signed bool) *opcode.Entry {
		return &opcode.Entry{Mnemonic: name, Prefix: prefix, PrefixLen: prefixLen, ArgBits: 8, Exec: func(args opcode.Args) error {
			n := int(args.Arg) + 1
			x, err := vm.stack.PopIntFinite()
			if err != nil {
				return err
			}
			b, err := vm.stack.PopBuilder()
			if err != nil {
				return err
			}
			if signed {
				err = b.StoreInt(x.ToBig(), n)
			} else {
				var u uint256.Int
				u.SetFromBig(x.ToBig())
				err = b.StoreUint(&u, n)
			}
			if err != nil {
				return err
			}
			vm.stack.Push(stack.BuilderValue{Builder: b})
			return nil
		}}
	}
	loadInt := func(name string, prefix uint32, prefixLen int, signed bool) *opcode.Entry {
		return &opcode.Entry{Mnemonic: name, Prefix: prefix, PrefixLen: prefixLen, ArgBits: 8, Exec: func(args opcode.Args) error {
			n := int(args.Arg) + 1
			sl, err := vm.stack.PopSlice()
			if err != nil {
				return err
			}
			v, err := sl.LoadSignedBig(n, signed)
			if err != nil {
				return err
			}
			vm.stack.Push(stack.FromBig(v))
			vm.stack.Push(stack.SliceValue{Slice: sl})
			return nil
		}}
	}

	return []*opcode.Entry{
		{Mnemonic: "NEWC", Prefix: 0xC8, PrefixLen: 8, Exec: func(opcode.Args) error {
			vm.stack.Push(stack.BuilderValue{Builder: cellstore.NewBuilder()})
			return nil
		}},
		{Mnemonic: "ENDC", Prefix: 0xC9, PrefixLen: 8, Exec: func(opcode.Args) error {
			if err := vm.gas.Consume(gas.CellCreateGasPrice); err != nil {
				return err
			}
			b, err := vm.stack.PopBuilder()
			if err != nil {
				return err
			}
			c, err := b.Finalize(false)
			if err != nil {
				return err
			}
			vm.stack.Push(stack.CellValue{Cell: c})
			return nil
		}},
		storeInt("STI", 0xCA, 8, true),
		storeInt("STU", 0xCB, 8, false),
		{Mnemonic: "STREF", Prefix: 0xCC, PrefixLen: 8, Exec: func(opcode.Args) error {
			c, err := vm.stack.PopCell()
			if err != nil {
				return err
			}
			b, err := vm.stack.PopBuilder()
			if err != nil {
				return err
			}
			if err := b.StoreRef(c); err != nil {
				return err
			}
			vm.stack.Push(stack.BuilderValue{Builder: b})
			return nil
		}},
		{Mnemonic: "STSLICE", Prefix: 0xCD, PrefixLen: 8, Exec: func(opcode.Args) error {
			s, err := vm.stack.PopSlice()
			if err != nil {
				return err
			}
			b, err := vm.stack.PopBuilder()
			if err != nil {
				return err
			}
			if err := b.StoreSlice(s); err != nil {
				return err
			}
			vm.stack.Push(stack.BuilderValue{Builder: b})
			return nil
		}},
		{Mnemonic: "CTOS", Prefix: 0xD0, PrefixLen: 8, Exec: func(opcode.Args) error {
			c, err := vm.stack.PopCell()
			if err != nil {
				return err
			}
			if err := vm.ChargeCellLoad(c); err != nil {
				return err
			}
			vm.stack.Push(stack.SliceValue{Slice: cellstore.NewSlice(c)})
			return nil
		}},
		loadInt("LDI", 0xD2, 8, true),
		loadInt("LDU", 0xD3, 8, false),
		{Mnemonic: "LDREF", Prefix: 0xD4, PrefixLen: 8, Exec: func(opcode.Args) error {
			sl, err := vm.stack.PopSlice()
			if err != nil {
				return err
			}
			r, err := sl.LoadRef()
			if err != nil {
				return err
			}
			if err := vm.ChargeCellLoad(r); err != nil {
				return err
			}
			vm.stack.Push(stack.CellValue{Cell: r})
			vm.stack.Push(stack.SliceValue{Slice: sl})
			return nil
		}},
		{Mnemonic: "SEMPTY", Prefix: 0xC100, PrefixLen: 16, Exec: func(opcode.Args) error {
			sl, err := vm.stack.PopSlice()
			if err != nil {
				return err
			}
			vm.stack.Push(stack.FromInt64(boolToInt(sl.IsEmpty())))
			return nil
		}},
		{Mnemonic: "SDEPTH", Prefix: 0xC101, PrefixLen: 16, Exec: func(opcode.Args) error {
			sl, err := vm.stack.PopSlice()
			if err != nil {
				return err
			}
			vm.stack.Push(stack.FromInt64(int64(sl.Cell().Depth())))
			return nil
		}},
		{Mnemonic: "SBITS", Prefix: 0xC105, PrefixLen: 16, Exec: func(opcode.Args) error {
			sl, err := vm.stack.PopSlice()
			if err != nil {
				return err
			}
			vm.stack.Push(stack.FromInt64(int64(sl.BitsLeft())))
			vm.stack.Push(stack.SliceValue{Slice: sl})
			return nil
		}},
		{Mnemonic: "SREFS", Prefix: 0xC106, PrefixLen: 16, Exec: func(opcode.Args) error {
			sl, err := vm.stack.PopSlice()
			if err != nil {
				return err
			}
			vm.stack.Push(stack.FromInt64(int64(sl.RefsLeft())))
			vm.stack.Push(stack.SliceValue{Slice: sl})
			return nil
		}},
	}
}

func boolToInt(b bool) int64 {
	if b {
		return -1 // TVM booleans are -1/0
	}
	return 0
}
