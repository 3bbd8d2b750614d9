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
)

// registerRunVM wires spec.md §6.4 "Child VM": RUNVM/RUNVMX "instantiate
// a sub-VM with an isolated stack, optional separate gas, c7, c4, and
// return a subset of results back (exit code, optional data/actions/gas)".
//
// Stack convention (this implementation's own choice, since spec.md
// leaves the exact operand order open): RUNVM takes (args_tuple,
// code_cell) and runs with the parent's own c4/c7 and remaining gas;
// RUNVMX additionally takes explicit c4 (cell or null), c7 (tuple or
// null), and a gas limit, for full isolation. Both return (exit_code,
// new_c4, actions_c5, result_tuple). The child VM's own gas consumption
// is not metered back against the parent's remaining gas — invoking
// either opcode simply charges the parent one cell-creation-sized flat
// fee, documented here as a simplification rather than a real
// sub-accounting scheme.
func registerRunVM(vm *VM) []*opcode.Entry {
	run := func(child *VM, codeCell *cellstore.Cell, argsTuple *stack.Tuple) error {
		if err := vm.gas.Consume(gas.CellCreateGasPrice); err != nil {
			return err
		}
		for _, v := range argsTuple.Items() {
			child.stack.Push(v)
		}
		exit := child.Execute(cellstore.NewSlice(codeCell))

		resultVals, err := child.stack.PopN(child.stack.Depth())
		if err != nil {
			return err
		}
		resTuple, err := stack.NewTuple(resultVals)
		if err != nil {
			return err
		}

		vm.stack.Push(stack.FromInt64(int64(exit)))
		if child.regs.C4 != nil {
			vm.stack.Push(stack.CellValue{Cell: child.regs.C4})
		} else {
			vm.stack.Push(stack.Null{})
		}
		if child.regs.C5 != nil {
			vm.stack.Push(stack.CellValue{Cell: child.regs.C5})
		} else {
			vm.stack.Push(stack.Null{})
		}
		vm.stack.Push(resTuple)
		return nil
	}

	return []*opcode.Entry{
		{Mnemonic: "RUNVM", Prefix: 0xFF02, PrefixLen: 16, Exec: func(opcode.Args) error {
			codeCell, err := vm.stack.PopCell()
			if err != nil {
				return err
			}
			argsTuple, err := vm.stack.PopTuple()
			if err != nil {
				return err
			}
			child := New(Config{
				Version:    vm.version,
				GasLimit:   vm.gas.Remaining(),
				GasMax:     vm.gas.Remaining(),
				C4:         vm.regs.C4,
				C7:         vm.regs.C7,
				RandomSeed: vm.randomSeed,
			})
			return run(child, codeCell, argsTuple)
		}},
		{Mnemonic: "RUNVMX", Prefix: 0xFF03, PrefixLen: 16, Exec: func(opcode.Args) error {
			gasLimit, err := vm.stack.PopIntFinite()
			if err != nil {
				return err
			}
			c7v, err := vm.stack.Pop()
			if err != nil {
				return err
			}
			c4v, err := vm.stack.Pop()
			if err != nil {
				return err
			}
			codeCell, err := vm.stack.PopCell()
			if err != nil {
				return err
			}
			argsTuple, err := vm.stack.PopTuple()
			if err != nil {
				return err
			}
			var c4 *cellstore.Cell
			if cv, ok := c4v.(stack.CellValue); ok {
				c4 = cv.Cell
			}
			var c7 *stack.Tuple
			if tv, ok := c7v.(*stack.Tuple); ok {
				c7 = tv
			}
			child := New(Config{
				Version:    vm.version,
				GasLimit:   gasLimit.ToBig().Int64(),
				GasMax:     gasLimit.ToBig().Int64(),
				C4:         c4,
				C7:         c7,
				RandomSeed: vm.randomSeed,
			})
			return run(child, codeCell, argsTuple)
		}},
	}
}
