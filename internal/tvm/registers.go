// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

// Package tvm implements the TVM stack machine described in spec.md §2
// point 6, §4.7, §6.3/6.4: control registers, the ordinary continuation
// that steps through a code slice, and the instruction families wired
// onto the shared opcode-dispatch table from internal/opcode.
package tvm

import (
	"fmt"

	"github.com/ton-blockchain/ton-sub013/internal/cellstore"
	"github.com/ton-blockchain/ton-sub013/internal/cont"
	"github.com/ton-blockchain/ton-sub013/internal/gas"
	"github.com/ton-blockchain/ton-sub013/internal/opcode"
	"github.com/ton-blockchain/ton-sub013/internal/stack"
	"github.com/ton-blockchain/ton-sub013/internal/treap"
	"github.com/ton-blockchain/ton-sub013/internal/vmerrors"
)

// Registers holds the control registers c0..c7 and d0..d3 (spec.md §3
// "Control registers").
type Registers struct {
	C0, C1, C2, C3 cont.Continuation
	C4, C5         *cellstore.Cell // persistent data root, actions list
	C7             *stack.Tuple    // smart-contract context, spec.md §6.3

	D0, D1, D2, D3 *cellstore.Cell
}

// Clone returns a shallow copy (registers hold immutable cells/continuations,
// so a shallow copy is a correct snapshot for the save/restore discipline of
// spec.md §3 "Saving rules").
func (r Registers) Clone() Registers { return r }

// VM is one TVM execution: the data stack, registers, gas meter, opcode
// table per codepage, and the loaded-cell set used for cell-load/reload
// gas pricing (spec.md §4.7 "Cell ops").
type VM struct {
	stack     *stack.Stack
	regs      Registers
	gas       *gas.Gas
	codepages *opcode.Codepages
	codepage  int
	version   int

	next    cont.Continuation
	running *OrdinaryCont   // the OrdinaryCont currently dispatching, for ref-reading opcodes
	jump    cont.Continuation // set by control-flow opcodes to override the default "continue with running" result
	jmps    int             // counts continuation jumps for the every-9th-jump gas premium

	touched map[*cellstore.Cell]bool // cells charged CellLoadGasPrice this run

	dicts   map[*cellstore.Cell]*treap.Node // dict-root handle cells to their treap, spec.md §6.4
	treapPr *treap.Priorities               // priority source for dict mutations

	exitCode   int
	committed  *Committed
	debugOut   func(string)
	randomSeed [32]byte

	pendingExc *vmerrors.Exception // set by Execute's catch loop for the active TRY handler to consume
}

// Committed snapshots (c4, c5) for COMMIT (spec.md §5 "COMMIT").
type Committed struct {
	C4 *cellstore.Cell
	C5 *cellstore.Cell
}

// Config bundles the knobs a fresh VM needs.
type Config struct {
	Version    int
	GasLimit   int64
	GasMax     int64
	GasCredit  int64
	C4         *cellstore.Cell
	C7         *stack.Tuple
	RandomSeed [32]byte
	DebugOut   func(string) // nil disables DEBUG/DUMP* output, spec.md §4.7 "Debug"
}

// New builds a VM ready to run code via Execute.
func New(cfg Config) *VM {
	vm := &VM{
		stack:     stack.New(),
		gas:       gas.New(cfg.GasLimit, cfg.GasMax, cfg.GasCredit),
		codepages: opcode.NewCodepages(),
		version:   cfg.Version,
		touched:   make(map[*cellstore.Cell]bool),
		dicts:     make(map[*cellstore.Cell]*treap.Node),
		debugOut:  cfg.DebugOut,
	}
	vm.regs.C4 = cfg.C4
	vm.regs.C7 = cfg.C7
	vm.randomSeed = cfg.RandomSeed
	vm.treapPr = treap.NewPriorities(int64(uint64(cfg.RandomSeed[0])<<56 | uint64(cfg.RandomSeed[1])<<48 |
		uint64(cfg.RandomSeed[2])<<40 | uint64(cfg.RandomSeed[3])<<32 | uint64(cfg.RandomSeed[4])<<24 |
		uint64(cfg.RandomSeed[5])<<16 | uint64(cfg.RandomSeed[6])<<8 | uint64(cfg.RandomSeed[7])))
	vm.codepages.Register(0, BuildCodepage0(vm))
	return vm
}

func (vm *VM) Stack() *stack.Stack       { return vm.stack }
func (vm *VM) Next() cont.Continuation   { return vm.next }
func (vm *VM) SetNext(c cont.Continuation) { vm.next = c }
func (vm *VM) Gas() *gas.Gas             { return vm.gas }
func (vm *VM) Registers() *Registers     { return &vm.regs }
func (vm *VM) ExitCode() int             { return vm.exitCode }
func (vm *VM) Committed() *Committed     { return vm.committed }

// ChargeCellLoad applies CellLoadGasPrice on first touch of c this run,
// CellReloadGasPrice on subsequent touches (spec.md §4.7 "Cell ops").
func (vm *VM) ChargeCellLoad(c *cellstore.Cell) error {
	if c == nil {
		return nil
	}
	if vm.touched[c] {
		return vm.gas.Consume(gas.CellReloadGasPrice)
	}
	vm.touched[c] = true
	return vm.gas.Consume(gas.CellLoadGasPrice)
}

// Commit snapshots (c4, c5) per spec.md §5 "COMMIT".
func (vm *VM) Commit() {
	vm.committed = &Committed{C4: vm.regs.C4, C5: vm.regs.C5}
}

func (vm *VM) debugf(format string, args ...any) {
	if vm.debugOut == nil {
		return
	}
	vm.debugOut(fmt.Sprintf(format, args...))
}
