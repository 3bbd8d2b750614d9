// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package tvm

import (
	"github.com/ton-blockchain/ton-sub013/internal/cellstore"
	"github.com/ton-blockchain/ton-sub013/internal/gas"
	"github.com/ton-blockchain/ton-sub013/internal/opcode"
	"github.com/ton-blockchain/ton-sub013/internal/stack"
	"github.com/ton-blockchain/ton-sub013/internal/treap"
	"github.com/ton-blockchain/ton-sub013/internal/vmerrors"
)

// registerDict wires spec.md §6.4 "Dictionaries": opcodes operating on
// an optional root cell interpreted as Hashmap(E) with fixed key length
// n. Rather than the real bit-level Hashmap-cell TLB codec, a dict root
// is a unique placeholder *cellstore.Cell "handle" charged at cell-create
// price, with the actual treap.Node tree kept in vm.dicts keyed by that
// handle's pointer identity (see DESIGN.md for the tradeoff). Stack
// operand order follows the usual TVM left-to-right-is-bottom-to-top
// convention, so n (key length in bits) is always popped first.
func registerDict(vm *VM) []*opcode.Entry {
	get := func(signed, unsigned bool) func(opcode.Args) error {
		return func(opcode.Args) error {
			n, err := vm.stack.PopIntRange(0, 1023)
			if err != nil {
				return err
			}
			root, err := vm.popDict()
			if err != nil {
				return err
			}
			var key treap.Key
			if signed || unsigned {
				k, err := vm.stack.PopIntFinite()
				if err != nil {
					return err
				}
				key = treap.NewIntKey(k.ToBig())
			} else {
				sl, err := vm.stack.PopSlice()
				if err != nil {
					return err
				}
				key, err = vm.keyFromSlice(sl, int(n))
				if err != nil {
					return err
				}
			}
			v, ok := treap.Lookup(root, key)
			if !ok {
				vm.stack.Push(stack.FromInt64(0))
				return nil
			}
			vm.stack.Push(v)
			vm.stack.Push(stack.FromInt64(-1))
			return nil
		}
	}

	set := func(signed, unsigned bool) func(opcode.Args) error {
		return func(opcode.Args) error {
			n, err := vm.stack.PopIntRange(0, 1023)
			if err != nil {
				return err
			}
			root, err := vm.popDict()
			if err != nil {
				return err
			}
			var key treap.Key
			if signed || unsigned {
				k, err := vm.stack.PopIntFinite()
				if err != nil {
					return err
				}
				key = treap.NewIntKey(k.ToBig())
			} else {
				sl, err := vm.stack.PopSlice()
				if err != nil {
					return err
				}
				key, err = vm.keyFromSlice(sl, int(n))
				if err != nil {
					return err
				}
			}
			val, err := vm.stack.Pop()
			if err != nil {
				return err
			}
			root = treap.Set(root, key, val, vm.treapPr)
			return vm.pushDict(root)
		}
	}

	del := func(signed, unsigned bool) func(opcode.Args) error {
		return func(opcode.Args) error {
			n, err := vm.stack.PopIntRange(0, 1023)
			if err != nil {
				return err
			}
			root, err := vm.popDict()
			if err != nil {
				return err
			}
			var key treap.Key
			if signed || unsigned {
				k, err := vm.stack.PopIntFinite()
				if err != nil {
					return err
				}
				key = treap.NewIntKey(k.ToBig())
			} else {
				sl, err := vm.stack.PopSlice()
				if err != nil {
					return err
				}
				key, err = vm.keyFromSlice(sl, int(n))
				if err != nil {
					return err
				}
			}
			_, found := treap.Lookup(root, key)
			root = treap.Remove(root, key)
			if err := vm.pushDict(root); err != nil {
				return err
			}
			if found {
				vm.stack.Push(stack.FromInt64(-1))
			} else {
				vm.stack.Push(stack.FromInt64(0))
			}
			return nil
		}
	}

	return []*opcode.Entry{
		{Mnemonic: "DICTGET", Prefix: 0xF400, PrefixLen: 16, Exec: get(false, false)},
		{Mnemonic: "DICTIGET", Prefix: 0xF414, PrefixLen: 16, Exec: get(true, false)},
		{Mnemonic: "DICTUGET", Prefix: 0xF415, PrefixLen: 16, Exec: get(false, true)},
		{Mnemonic: "DICTSET", Prefix: 0xF416, PrefixLen: 16, Exec: set(false, false)},
		{Mnemonic: "DICTISET", Prefix: 0xF412, PrefixLen: 16, Exec: set(true, false)},
		{Mnemonic: "DICTUSET", Prefix: 0xF413, PrefixLen: 16, Exec: set(false, true)},
		{Mnemonic: "DICTDEL", Prefix: 0xF417, PrefixLen: 16, Exec: del(false, false)},
		{Mnemonic: "DICTIDEL", Prefix: 0xF418, PrefixLen: 16, Exec: del(true, false)},
		{Mnemonic: "DICTUDEL", Prefix: 0xF419, PrefixLen: 16, Exec: del(false, true)},
		// PFXDICTGET: simplified prefix-dict lookup that only recognizes an
		// exact n-bit key rather than scanning for the longest matching
		// prefix stored at a shorter length (see DESIGN.md).
		{Mnemonic: "PFXDICTGET", Prefix: 0xF470, PrefixLen: 16, Exec: func(opcode.Args) error {
			n, err := vm.stack.PopIntRange(0, 1023)
			if err != nil {
				return err
			}
			root, err := vm.popDict()
			if err != nil {
				return err
			}
			sl, err := vm.stack.PopSlice()
			if err != nil {
				return err
			}
			key, err := vm.keyFromSlice(sl, int(n))
			if err != nil {
				return err
			}
			v, ok := treap.Lookup(root, key)
			if !ok {
				vm.stack.Push(stack.FromInt64(0))
				return nil
			}
			rest, err := sl.SubSlice(int(n), sl.BitsLeft()-int(n))
			if err != nil {
				return err
			}
			vm.stack.Push(v)
			vm.stack.Push(stack.SliceValue{Slice: rest})
			vm.stack.Push(stack.FromInt64(-1))
			return nil
		}},
	}
}

// popDict reads the dict operand off the stack: Null means the empty
// dict (nil root); any other value must be a handle previously produced
// by pushDict.
func (vm *VM) popDict() (*treap.Node, error) {
	v, err := vm.stack.Pop()
	if err != nil {
		return nil, err
	}
	if stack.IsNull(v) {
		return nil, nil
	}
	cv, ok := v.(stack.CellValue)
	if !ok {
		return nil, vmerrors.ErrTypeCheck
	}
	root, ok := vm.dicts[cv.Cell]
	if !ok {
		return nil, vmerrors.ErrDictionary
	}
	return root, nil
}

// pushDict pushes Null for an empty tree, or allocates a fresh handle
// cell for root and records it in vm.dicts (spec.md §4.7 "creation
// charges 500", reused here since every non-empty dict result is a
// freshly synthesized handle).
func (vm *VM) pushDict(root *treap.Node) error {
	if root == nil {
		vm.stack.Push(stack.Null{})
		return nil
	}
	if err := vm.gas.Consume(gas.CellCreateGasPrice); err != nil {
		return err
	}
	handle, err := cellstore.NewBuilder().Finalize(false)
	if err != nil {
		return err
	}
	vm.dicts[handle] = root
	vm.stack.Push(stack.CellValue{Cell: handle})
	return nil
}

// keyFromSlice reads n bits off sl and turns them into a treap.Key,
// length-tagged so two keys of different bit-length never collide even
// if their packed bytes happen to match (padding bits are always zero).
func (vm *VM) keyFromSlice(sl *cellstore.Slice, n int) (treap.Key, error) {
	bits, err := sl.LoadBits(n)
	if err != nil {
		return treap.Key{}, err
	}
	b := cellstore.NewBuilder()
	if err := b.StoreBits(bits); err != nil {
		return treap.Key{}, err
	}
	c, err := b.Finalize(false)
	if err != nil {
		return treap.Key{}, err
	}
	tagged := append([]byte{byte(n), byte(n >> 8)}, c.RawData()...)
	return treap.NewBytesKey(tagged), nil
}
