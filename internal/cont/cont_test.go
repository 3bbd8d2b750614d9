// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package cont

import (
	"testing"

	"github.com/ton-blockchain/ton-sub013/internal/stack"
)

// fakeState is a minimal cont.State for exercising the dispatcher
// without pulling in Fift or TVM.
type fakeState struct {
	s    *stack.Stack
	next Continuation
}

func newFakeState() *fakeState { return &fakeState{s: stack.New()} }

func (f *fakeState) Stack() *stack.Stack   { return f.s }
func (f *fakeState) Next() Continuation    { return f.next }
func (f *fakeState) SetNext(c Continuation) { f.next = c }

func pushN(n int64) Continuation {
	return NewNativeFunc("push", func(s State) (Continuation, error) {
		s.Stack().Push(stack.FromInt64(n))
		return nil, nil
	})
}

func TestSeqLawsAssociativity(t *testing.T) {
	st := newFakeState()
	c := Cons(pushN(1), Cons(pushN(2), pushN(3)))
	if err := Run(c, st, nil); err != nil {
		t.Fatal(err)
	}
	want := []int64{1, 2, 3}
	for i := len(want) - 1; i >= 0; i-- {
		v, err := st.Stack().Pop()
		if err != nil {
			t.Fatal(err)
		}
		if v.(stack.Int257).ToBig().Int64() != want[i] {
			t.Fatalf("stack order mismatch at %d: got %v want %d", i, v, want[i])
		}
	}
}

func TestSeqIdentity(t *testing.T) {
	a := pushN(42)
	if Cons(a, nil) != a {
		t.Fatalf("seq(a, null) must equal a")
	}
	if Cons(nil, a) != a {
		t.Fatalf("seq(null, b) must equal b")
	}
}

func TestRepeatRunsBodyExactlyN(t *testing.T) {
	st := newFakeState()
	body := NewNativeFunc("incr", func(s State) (Continuation, error) {
		s.Stack().Push(stack.FromInt64(1))
		return nil, nil
	})
	r := NewRepeat(body, nil, 5)
	if err := Run(r, st, nil); err != nil {
		t.Fatal(err)
	}
	if st.Stack().Depth() != 5 {
		t.Fatalf("depth = %d, want 5", st.Stack().Depth())
	}
}

func TestRepeatZeroOrNegativeShortCircuits(t *testing.T) {
	st := newFakeState()
	body := pushN(1)
	after := pushN(99)
	r := NewRepeat(body, after, 0)
	if err := Run(r, st, nil); err != nil {
		t.Fatal(err)
	}
	if st.Stack().Depth() != 1 {
		t.Fatalf("only `after` should have run, depth = %d", st.Stack().Depth())
	}
	top, _ := st.Stack().Top()
	if top.(stack.Int257).ToBig().Int64() != 99 {
		t.Fatalf("top = %v, want 99", top)
	}
}

func TestUntilLoopsUntilTrue(t *testing.T) {
	st := newFakeState()
	count := 0
	body := NewNativeFunc("body", func(s State) (Continuation, error) {
		count++
		s.Stack().Push(stack.FromInt64(boolInt(count >= 3)))
		return nil, nil
	})
	u := NewUntil(body, pushN(-1))
	if err := Run(u, st, nil); err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Fatalf("body ran %d times, want 3", count)
	}
	top, _ := st.Stack().Top()
	if top.(stack.Int257).ToBig().Int64() != -1 {
		t.Fatalf("after 'until' should run last, top = %v", top)
	}
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func TestWhileLoop(t *testing.T) {
	st := newFakeState()
	n := 0
	cond := NewNativeFunc("cond", func(s State) (Continuation, error) {
		s.Stack().Push(stack.FromInt64(boolInt(n < 3)))
		return nil, nil
	})
	body := NewNativeFunc("body", func(s State) (Continuation, error) {
		n++
		return nil, nil
	})
	w := NewWhile(cond, body, pushN(7))
	if err := Run(w, st, nil); err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("body ran %d times, want 3", n)
	}
	top, _ := st.Stack().Top()
	if top.(stack.Int257).ToBig().Int64() != 7 {
		t.Fatalf("after while should push 7, got %v", top)
	}
}

func TestQuitStopsRun(t *testing.T) {
	st := newFakeState()
	c := Cons(pushN(1), NewQuit(5))
	err := Run(c, st, nil)
	qs, ok := err.(*QuitSignal)
	if !ok {
		t.Fatalf("expected QuitSignal, got %v", err)
	}
	if qs.ExitCode != 5 {
		t.Fatalf("exit code = %d, want 5", qs.ExitCode)
	}
}
