// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package tvm

import (
	"github.com/ton-blockchain/ton-sub013/internal/opcode"
	"github.com/ton-blockchain/ton-sub013/internal/stack"
)

// registerArithmetic wires the 257-bit integer family of spec.md §4.7
// "Arithmetic": ADD/SUB/NEG/MUL, the three DIVMOD rounding variants, and
// MULDIVMOD (512-bit intermediate product).
func registerArithmetic(vm *VM) []*opcode.Entry {
	binop := func(name string, prefix uint32, prefixLen int, f func(a, b stack.Int257) stack.Int257) *opcode.Entry {
		return &opcode.Entry{
			Mnemonic: name, Prefix: prefix, PrefixLen: prefixLen,
			Exec: func(opcode.Args) error {
				b, err := vm.stack.PopInt()
				if err != nil {
					return err
				}
				a, err := vm.stack.PopInt()
				if err != nil {
					return err
				}
				vm.stack.Push(f(a, b))
				return nil
			},
		}
	}
	unop := func(name string, prefix uint32, prefixLen int, f func(a stack.Int257) stack.Int257) *opcode.Entry {
		return &opcode.Entry{
			Mnemonic: name, Prefix: prefix, PrefixLen: prefixLen,
			Exec: func(opcode.Args) error {
				a, err := vm.stack.PopInt()
				if err != nil {
					return err
				}
				vm.stack.Push(f(a))
				return nil
			},
		}
	}
	divmod := func(name string, prefix uint32, prefixLen int, rounding stack.Rounding, pushMod bool) *opcode.Entry {
		return &opcode.Entry{
			Mnemonic: name, Prefix: prefix, PrefixLen: prefixLen,
			Exec: func(opcode.Args) error {
				b, err := vm.stack.PopInt()
				if err != nil {
					return err
				}
				a, err := vm.stack.PopInt()
				if err != nil {
					return err
				}
				q, r, err := stack.DivMod(a, b, rounding)
				if err != nil {
					return err
				}
				vm.stack.Push(q)
				if pushMod {
					vm.stack.Push(r)
				}
				return nil
			},
		}
	}

	return []*opcode.Entry{
		binop("ADD", 0xA4, 8, stack.Add),
		binop("SUB", 0xA5, 8, stack.Sub),
		unop("NEGATE", 0xA3, 8, stack.Neg),
		binop("MUL", 0xA8, 8, stack.Mul),
		divmod("DIV", 0xA904, 12, stack.RoundFloor, false),
		divmod("MOD", 0xA905, 12, stack.RoundFloor, true),
		divmod("DIVMOD", 0xA906, 12, stack.RoundFloor, true),
		divmod("DIVC", 0xA914, 12, stack.RoundCeil, false),
		divmod("DIVMODC", 0xA916, 12, stack.RoundCeil, true),
		divmod("DIVR", 0xA924, 12, stack.RoundNearest, false),
		divmod("DIVMODR", 0xA926, 12, stack.RoundNearest, true),
		{Mnemonic: "MULDIVMOD", Prefix: 0xA98C, PrefixLen: 16, Exec: func(opcode.Args) error {
			c, err := vm.stack.PopInt()
			if err != nil {
				return err
			}
			b, err := vm.stack.PopInt()
			if err != nil {
				return err
			}
			a, err := vm.stack.PopInt()
			if err != nil {
				return err
			}
			q, r, err := stack.MulDivMod(a, b, c, stack.RoundFloor)
			if err != nil {
				return err
			}
			vm.stack.Push(q)
			vm.stack.Push(r)
			return nil
		}},
		{Mnemonic: "LSHIFT", Prefix: 0xAA, PrefixLen: 8, ArgBits: 8, Exec: func(args opcode.Args) error {
			a, err := vm.stack.PopInt()
			if err != nil {
				return err
			}
			vm.stack.Push(stack.Lsh(a, uint(args.Arg)))
			return nil
		}},
		{Mnemonic: "RSHIFT", Prefix: 0xAB, PrefixLen: 8, ArgBits: 8, Exec: func(args opcode.Args) error {
			a, err := vm.stack.PopInt()
			if err != nil {
				return err
			}
			vm.stack.Push(stack.Rsh(a, uint(args.Arg), stack.RoundFloor))
			return nil
		}},
		{Mnemonic: "FITS", Prefix: 0xB5, PrefixLen: 8, ArgBits: 8, Exec: func(args opcode.Args) error {
			a, err := vm.stack.PopInt()
			if err != nil {
				return err
			}
			if !a.IsNaN() && a.Fits(int(args.Arg)+1) {
				vm.stack.Push(a)
			} else {
				vm.stack.Push(stack.NaN())
			}
			return nil
		}},
		{Mnemonic: "CMP", Prefix: 0xB8, PrefixLen: 8, Exec: func(opcode.Args) error {
			b, err := vm.stack.PopIntFinite()
			if err != nil {
				return err
			}
			a, err := vm.stack.PopIntFinite()
			if err != nil {
				return err
			}
			vm.stack.Push(stack.FromInt64(int64(stack.Cmp(a, b))))
			return nil
		}},
	}
}
