// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package fift

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ton-blockchain/ton-sub013/internal/stack"
)

// runFift interprets src to completion with a fresh Context and returns
// it for stack/output inspection; a nonzero exit code fails the test
// immediately since every case here is expected to run clean.
func runFift(t *testing.T, src string) (*Context, string) {
	t.Helper()
	var out bytes.Buffer
	ctx := NewContext(strings.NewReader(src), "test", &out, &out, 1)
	if code := Interpret(ctx); code != 0 {
		t.Fatalf("Interpret(%q) exited %d, output: %s", src, code, out.String())
	}
	return ctx, out.String()
}

func popInt64(t *testing.T, ctx *Context) int64 {
	t.Helper()
	v, err := ctx.Stack().Pop()
	if err != nil {
		t.Fatal(err)
	}
	iv, ok := v.(stack.Int257)
	if !ok {
		t.Fatalf("top of stack is not an integer: %v", v)
	}
	return iv.ToBig().Int64()
}

func TestStackWords(t *testing.T) {
	ctx, _ := runFift(t, "1 2 3 drop")
	if got := popInt64(t, ctx); got != 2 {
		t.Fatalf("after drop, top = %d, want 2", got)
	}
	if ctx.Stack().Depth() != 1 {
		t.Fatalf("depth = %d, want 1", ctx.Stack().Depth())
	}
}

func TestSwapAndDup(t *testing.T) {
	ctx, _ := runFift(t, "1 2 swap")
	if got := popInt64(t, ctx); got != 1 {
		t.Fatalf("after swap, top = %d, want 1", got)
	}
	if got := popInt64(t, ctx); got != 2 {
		t.Fatalf("after swap, second = %d, want 2", got)
	}

	ctx, _ = runFift(t, "5 dup +")
	if got := popInt64(t, ctx); got != 10 {
		t.Fatalf("5 dup + = %d, want 10", got)
	}
}

func TestNip(t *testing.T) {
	ctx, _ := runFift(t, "1 2 3 nip")
	if got := popInt64(t, ctx); got != 3 {
		t.Fatalf("top after nip = %d, want 3", got)
	}
	if got := popInt64(t, ctx); got != 1 {
		t.Fatalf("second after nip = %d, want 1 (the 2 should be gone)", got)
	}
	if ctx.Stack().Depth() != 0 {
		t.Fatalf("depth after nip = %d, want 0", ctx.Stack().Depth())
	}
}

func TestArithmetic(t *testing.T) {
	cases := []struct {
		src  string
		want int64
	}{
		{"2 3 +", 5},
		{"10 4 -", 6},
		{"3 4 *", 12},
		{"17 5 /", 3},
		{"17 5 mod", 2},
		{"5 negate", -5},
		{"7 1+", 8},
	}
	for _, c := range cases {
		ctx, _ := runFift(t, c.src)
		if got := popInt64(t, ctx); got != c.want {
			t.Errorf("%q = %d, want %d", c.src, got, c.want)
		}
	}
}

func TestComparisonPushesFiftBooleans(t *testing.T) {
	ctx, _ := runFift(t, "3 3 =")
	if got := popInt64(t, ctx); got != -1 {
		t.Fatalf("3 3 = %d, want -1 (true)", got)
	}
	ctx, _ = runFift(t, "3 4 =")
	if got := popInt64(t, ctx); got != 0 {
		t.Fatalf("3 4 = %d, want 0 (false)", got)
	}
}

func TestBitwise(t *testing.T) {
	ctx, _ := runFift(t, "12 10 and")
	if got := popInt64(t, ctx); got != 8 {
		t.Fatalf("12 10 and = %d, want 8", got)
	}
	ctx, _ = runFift(t, "1 4 <<")
	if got := popInt64(t, ctx); got != 16 {
		t.Fatalf("1 4 << = %d, want 16", got)
	}
}

func TestWordDefinitionAndInvocation(t *testing.T) {
	ctx, _ := runFift(t, ": double dup + ; 21 double")
	if got := popInt64(t, ctx); got != 42 {
		t.Fatalf("21 double = %d, want 42", got)
	}
}

func TestWordListBracketAndExecute(t *testing.T) {
	ctx, _ := runFift(t, "{ 1 2 + } execute")
	if got := popInt64(t, ctx); got != 3 {
		t.Fatalf("{ 1 2 + } execute = %d, want 3", got)
	}
}

func TestCondSelectsBranch(t *testing.T) {
	ctx, _ := runFift(t, "-1 { 111 } { 222 } cond")
	if got := popInt64(t, ctx); got != 111 {
		t.Fatalf("true branch = %d, want 111", got)
	}
	ctx, _ = runFift(t, "0 { 111 } { 222 } cond")
	if got := popInt64(t, ctx); got != 222 {
		t.Fatalf("false branch = %d, want 222", got)
	}
}

func TestTimesRepeatsBodyExactCount(t *testing.T) {
	ctx, _ := runFift(t, "0 3 { 1+ } times")
	if got := popInt64(t, ctx); got != 3 {
		t.Fatalf("0 3 { 1+ } times = %d, want 3", got)
	}
}

func TestRepeatedWordCallDoesNotShareCursorState(t *testing.T) {
	// The same user word is called three times in a row (no recursion:
	// the dictionary has no self-reference syntax here), so the same
	// WordList value is entered more than once in the same run — the
	// property WordList.Step's fresh-ListCursor design protects.
	ctx, _ := runFift(t, ": incr dup 1+ ; 1 incr incr incr")
	if got := popInt64(t, ctx); got != 4 {
		t.Fatalf("1 incr incr incr = %d, want 4 (nip not called, so dup leaves one extra)", got)
	}
}

func TestUndefinedWordExits(t *testing.T) {
	var out bytes.Buffer
	ctx := NewContext(strings.NewReader("nosuchword"), "test", &out, &out, 1)
	if code := Interpret(ctx); code == 0 {
		t.Fatalf("expected nonzero exit for undefined word")
	}
}

func TestDotPrintsAndPops(t *testing.T) {
	_, out := runFift(t, "42 .")
	if !strings.Contains(out, "42") {
		t.Fatalf("output %q does not contain 42", out)
	}
}

// A negative value stored with i, and read back with i@ must keep its
// sign: the n-bit two's-complement encoding is i,'s job, not the
// caller's (see Builder.StoreInt).
func TestStoreSignedNegativeRoundTrip(t *testing.T) {
	ctx, _ := runFift(t, "-5 <b 8 i, b> <s 8 i@")
	if got := popInt64(t, ctx); got != -5 {
		t.Fatalf("i@ after i, = %d, want -5", got)
	}
}
