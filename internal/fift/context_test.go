// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package fift

import (
	"bytes"
	"strings"
	"testing"
)

func TestEnterCtxLeaveCtx(t *testing.T) {
	var out bytes.Buffer
	ctx := NewContext(strings.NewReader("outer"), "outer.fif", &out, &out, 1)
	outerParser := ctx.Parser

	inner := NewParseCtx(strings.NewReader("inner"), "inner.fif", "", 1)
	ctx.EnterCtx(inner)
	if ctx.Parser != inner {
		t.Fatalf("EnterCtx should switch the active parser")
	}

	if !ctx.LeaveCtx() {
		t.Fatalf("LeaveCtx should report an outer context existed")
	}
	if ctx.Parser != outerParser {
		t.Fatalf("LeaveCtx should restore the previous parser")
	}
	if ctx.LeaveCtx() {
		t.Fatalf("a second LeaveCtx with nothing left should report false")
	}
}

func TestCompileFrameNesting(t *testing.T) {
	var out bytes.Buffer
	ctx := NewContext(strings.NewReader(""), "t", &out, &out, 1)
	if ctx.State != StateInterpret {
		t.Fatalf("fresh Context should start in interpret state")
	}

	ctx.pushCompile("foo")
	if ctx.State != StateInterpret+1 {
		t.Fatalf("pushCompile should bump State, got %d", ctx.State)
	}
	if ctx.topCompile().defName != "foo" {
		t.Fatalf("topCompile should see the pushed frame")
	}

	f := ctx.popCompile()
	if f.defName != "foo" {
		t.Fatalf("popCompile returned wrong frame: %+v", f)
	}
	if ctx.State != StateInterpret {
		t.Fatalf("popCompile should restore State, got %d", ctx.State)
	}
	if ctx.popCompile() != nil {
		t.Fatalf("popCompile on an empty stack should return nil")
	}
}
