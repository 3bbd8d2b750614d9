// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package fift

import (
	"fmt"

	"github.com/ton-blockchain/ton-sub013/internal/cont"
	"github.com/ton-blockchain/ton-sub013/internal/vmerrors"
)

// Interpret drives ctx's interpret-loop to completion and returns the
// process exit code, the Fift counterpart of internal/tvm's
// VM.Execute/run: a clean QuitSignal (EOF, or an explicit `bye`/`quit`)
// returns its own code, and an uncaught error is reported on ctx.Err
// and turned into a nonzero exit rather than propagated to the caller —
// real Fift has no c2-style exception handler installed by default, so
// there is nothing else to hand the exception to.
func Interpret(ctx *Context) int {
	err := cont.Run(NewInterpretLoop(), ctx, nil)
	if err == nil {
		return ctx.ExitCode
	}
	if qs, ok := err.(*cont.QuitSignal); ok {
		return qs.ExitCode
	}
	if uw, ok := err.(*UndefinedWordError); ok {
		fmt.Fprintln(ctx.Err, uw.Error())
		return 1
	}
	exc := vmerrors.ToException(err)
	fmt.Fprintln(ctx.Err, exc.Error())
	return int(exc.Code)
}
