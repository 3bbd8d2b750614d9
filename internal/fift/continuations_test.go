// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package fift

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ton-blockchain/ton-sub013/internal/cont"
	"github.com/ton-blockchain/ton-sub013/internal/stack"
)

func TestWordListStepReturnsFreshCursorEachTime(t *testing.T) {
	words := []cont.Continuation{
		cont.NewNativeFunc("push1", func(st cont.State) (cont.Continuation, error) {
			st.Stack().Push(stack.FromInt64(1))
			return nil, nil
		}),
	}
	wl := NewWordList(words)

	var out bytes.Buffer
	ctx := NewContext(strings.NewReader(""), "t", &out, &out, 1)

	c1, err := wl.Step(ctx)
	if err != nil {
		t.Fatal(err)
	}
	cur1, ok := c1.(*ListCursor)
	if !ok {
		t.Fatalf("expected *ListCursor, got %T", c1)
	}

	c2, err := wl.Step(ctx)
	if err != nil {
		t.Fatal(err)
	}
	cur2 := c2.(*ListCursor)

	if cur1 == cur2 {
		t.Fatalf("WordList.Step must return a fresh ListCursor on each call")
	}
	if cur1.Position != 0 || cur2.Position != 0 {
		t.Fatalf("fresh cursors must start at position 0")
	}
}

func TestInterpretLoopExecutesKnownWord(t *testing.T) {
	var out bytes.Buffer
	ctx := NewContext(strings.NewReader("5 3 +"), "t", &out, &out, 1)
	if code := Interpret(ctx); code != 0 {
		t.Fatalf("Interpret exited %d", code)
	}
	v, err := ctx.Stack().Pop()
	if err != nil {
		t.Fatal(err)
	}
	if v.(stack.Int257).ToBig().Int64() != 8 {
		t.Fatalf("got %v, want 8", v)
	}
}
