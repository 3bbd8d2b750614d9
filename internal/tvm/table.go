// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package tvm

import "github.com/ton-blockchain/ton-sub013/internal/opcode"

// BuildCodepage0 assembles the standard TVM instruction set (spec.md
// §6.2 "codepage 0") from each instruction family's registration
// function into one dispatch table.
func BuildCodepage0(vm *VM) *opcode.Table {
	var entries []*opcode.Entry
	entries = append(entries, registerStack(vm)...)
	entries = append(entries, registerArithmetic(vm)...)
	entries = append(entries, registerCell(vm)...)
	entries = append(entries, registerControl(vm)...)
	entries = append(entries, registerControl2(vm)...)
	entries = append(entries, registerException(vm)...)
	entries = append(entries, registerDict(vm)...)
	entries = append(entries, registerAddressing(vm)...)
	entries = append(entries, registerMessaging(vm)...)
	entries = append(entries, registerRunVM(vm)...)
	entries = append(entries, registerContext(vm)...)
	entries = append(entries, registerCrypto(vm)...)
	entries = append(entries, registerCodepage(vm)...)
	entries = append(entries, registerDebug(vm)...)
	return opcode.NewTable(entries)
}
