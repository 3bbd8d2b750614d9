// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package tvm

import (
	"github.com/ton-blockchain/ton-sub013/internal/cellstore"
	"github.com/ton-blockchain/ton-sub013/internal/cont"
	"github.com/ton-blockchain/ton-sub013/internal/vmerrors"
)

// Execute runs code from scratch as the implicit c0/c1 and returns the
// exit code (spec.md §4.5 "On any VM error, build an exception value
// ... and transfer control to c2, or abort the run if unset"). A clean
// QuitSignal (RET with no caller, a successful run to completion) exits
// 0; any other error with no installed c2 aborts with the exception's
// own code.
func (vm *VM) Execute(code *cellstore.Slice) int {
	entry := NewOrdinary(code)
	vm.regs.C0 = cont.NewQuit(0)
	vm.regs.C1 = cont.NewQuit(0)
	vm.exitCode = vm.run(entry)
	return vm.exitCode
}

func (vm *VM) run(start cont.Continuation) int {
	cur := start
	for {
		err := cont.Run(cur, vm, nil)
		if err == nil {
			return 0
		}
		if qs, ok := err.(*cont.QuitSignal); ok {
			return qs.ExitCode
		}
		exc := vmerrors.ToException(err)
		if vm.regs.C2 == nil {
			return int(exc.Code)
		}
		vm.pendingExc = exc
		cur = vm.regs.C2
		vm.regs.C2 = nil
	}
}
