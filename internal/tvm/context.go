// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package tvm

import (
	"crypto/sha512"
	"math/big"

	"github.com/ton-blockchain/ton-sub013/internal/opcode"
	"github.com/ton-blockchain/ton-sub013/internal/stack"
	"github.com/ton-blockchain/ton-sub013/internal/vmerrors"
)

// registerContext wires spec.md §6.3 "c7[0] tuple" and §5 "Concurrency
// & resource model": GETPARAM reads the smart-contract context tuple
// installed in c7, ACCEPT lifts the gas limit to its max (spec.md §5
// "ACCEPT bumps gas limit to infinity"), COMMIT snapshots (c4, c5), and
// the RAND family reseeds/derives from the 256-bit seed by SHA-512
// mixing (spec.md §5 "randomness reseeding via SHA-512").
func registerContext(vm *VM) []*opcode.Entry {
	getParam := func(idx int) (stack.Value, error) {
		if vm.regs.C7 == nil {
			return nil, vmerrors.ErrTypeCheck
		}
		first, err := vm.regs.C7.At(0)
		if err != nil {
			return nil, err
		}
		t, ok := first.(*stack.Tuple)
		if !ok {
			return nil, vmerrors.ErrTypeCheck
		}
		return t.At(idx)
	}

	return []*opcode.Entry{
		{Mnemonic: "NOW", Prefix: 0xF82A, PrefixLen: 16, Exec: func(opcode.Args) error {
			v, err := getParam(3)
			if err != nil {
				return err
			}
			vm.stack.Push(v)
			return nil
		}},
		{Mnemonic: "BLOCKLT", Prefix: 0xF82B, PrefixLen: 16, Exec: func(opcode.Args) error {
			v, err := getParam(4)
			if err != nil {
				return err
			}
			vm.stack.Push(v)
			return nil
		}},
		{Mnemonic: "MYADDR", Prefix: 0xF830, PrefixLen: 16, Exec: func(opcode.Args) error {
			v, err := getParam(8)
			if err != nil {
				return err
			}
			vm.stack.Push(v)
			return nil
		}},
		{Mnemonic: "BALANCE", Prefix: 0xF840, PrefixLen: 16, Exec: func(opcode.Args) error {
			v, err := getParam(7)
			if err != nil {
				return err
			}
			vm.stack.Push(v)
			return nil
		}},
		// GETPARAM's 12-bit prefix nominally covers 0xF820-0xF82F, but
		// the dispatch table picks the longest matching prefix first,
		// so NOW (0xF82A) and BLOCKLT (0xF82B) above shadow the
		// GETPARAM encodings for args 10 and 11. Opcode encodings here
		// aren't mainnet-faithful (see DESIGN.md), so `GETPARAM 10`/
		// `GETPARAM 11` decode as NOW/BLOCKLT, which read params 3 and
		// 4; params 10 and 11 are not reachable through GETPARAM.
		{Mnemonic: "GETPARAM", Prefix: 0xF82, PrefixLen: 12, ArgBits: 4, Exec: func(args opcode.Args) error {
			v, err := getParam(int(args.Arg))
			if err != nil {
				return err
			}
			vm.stack.Push(v)
			return nil
		}},
		{Mnemonic: "GETGLOB", Prefix: 0xF860, PrefixLen: 16, ArgBits: 8, Exec: func(args opcode.Args) error {
			if vm.regs.C7 == nil {
				return vmerrors.ErrTypeCheck
			}
			v, err := vm.regs.C7.At(int(args.Arg))
			if err != nil {
				vm.stack.Push(stack.Null{})
				return nil
			}
			vm.stack.Push(v)
			return nil
		}},
		{Mnemonic: "SETGLOB", Prefix: 0xF861, PrefixLen: 16, ArgBits: 8, Exec: func(args opcode.Args) error {
			v, err := vm.stack.Pop()
			if err != nil {
				return err
			}
			if vm.regs.C7 == nil {
				t, err := stack.NewTuple(nil)
				if err != nil {
					return err
				}
				vm.regs.C7 = t
			}
			n := int(args.Arg)
			for vm.regs.C7.Len() <= n {
				grown, err := growTuple(vm.regs.C7)
				if err != nil {
					return err
				}
				vm.regs.C7 = grown
			}
			updated, err := vm.regs.C7.WithSet(n, v)
			if err != nil {
				return err
			}
			vm.regs.C7 = updated
			return nil
		}},
		{Mnemonic: "ACCEPT", Prefix: 0xF800, PrefixLen: 16, Exec: func(opcode.Args) error {
			vm.gas.ChangeLimit(vm.gas.Limit() + 1<<62)
			return nil
		}},
		{Mnemonic: "COMMIT", Prefix: 0xF80F, PrefixLen: 16, Exec: func(opcode.Args) error {
			vm.Commit()
			return nil
		}},
		{Mnemonic: "RANDU256", Prefix: 0xF910, PrefixLen: 16, Exec: func(opcode.Args) error {
			vm.stack.Push(stack.FromBig(vm.nextRandom()))
			return nil
		}},
		{Mnemonic: "RAND", Prefix: 0xF911, PrefixLen: 16, Exec: func(opcode.Args) error {
			bound, err := vm.stack.PopIntFinite()
			if err != nil {
				return err
			}
			r := vm.nextRandom()
			r.Mod(r, bound.ToBig())
			vm.stack.Push(stack.FromBig(r))
			return nil
		}},
		{Mnemonic: "SETRAND", Prefix: 0xF912, PrefixLen: 16, Exec: func(opcode.Args) error {
			seed, err := vm.stack.PopIntFinite()
			if err != nil {
				return err
			}
			vm.reseedRandom(seed.ToBig())
			return nil
		}},
		{Mnemonic: "ADDRAND", Prefix: 0xF913, PrefixLen: 16, Exec: func(opcode.Args) error {
			extra, err := vm.stack.PopIntFinite()
			if err != nil {
				return err
			}
			mixed := new(big.Int).SetBytes(vm.randomSeed[:])
			mixed.Xor(mixed, extra.ToBig())
			vm.reseedRandom(mixed)
			return nil
		}},
	}
}

// growTuple extends t by one null entry (SETGLOB's implicit-growth
// behavior: writing past the current length extends c7 rather than
// erroring, spec.md §3 "tuple").
func growTuple(t *stack.Tuple) (*stack.Tuple, error) {
	items := append(append([]stack.Value(nil), t.Items()...), stack.Null{})
	return stack.NewTuple(items)
}

// nextRandom derives a 256-bit value from the current seed and
// advances the seed by SHA-512(seed), keeping the top half as the new
// seed and the bottom half as the drawn value (spec.md §5).
func (vm *VM) nextRandom() *big.Int {
	h := sha512.Sum512(vm.randomSeed[:])
	copy(vm.randomSeed[:], h[:32])
	return new(big.Int).SetBytes(h[32:])
}

func (vm *VM) reseedRandom(seed *big.Int) {
	b := seed.Bytes()
	var buf [32]byte
	if len(b) > 32 {
		b = b[len(b)-32:]
	}
	copy(buf[32-len(b):], b)
	h := sha512.Sum512(buf[:])
	copy(vm.randomSeed[:], h[:32])
}
