// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package fift

import (
	"github.com/ton-blockchain/ton-sub013/internal/cont"
	"github.com/ton-blockchain/ton-sub013/internal/stack"
	"github.com/ton-blockchain/ton-sub013/internal/vmerrors"
)

// base provides the stack.Value plumbing every Fift-specific
// continuation needs, the same minimal shape as internal/cont's
// unexported base (that one can't be embedded from here, so it is
// duplicated rather than exported purely for this package's benefit).
type base struct{ name string }

func (base) Kind() stack.Kind    { return stack.KindContinuation }
func (base) ContinuationMarker() {}
func (b base) String() string    { return "Cont(" + b.name + ")" }

// WordList is a compiled word's body: a fixed vector of continuations
// run in order (spec.md §3 "word-list(vector<continuation>)"). It is
// the value a `: name ... ;` definition or a `{ ... }` bracket leaves
// behind — pushed onto the stack, stored in the dictionary, or both.
type WordList struct {
	base
	Words []cont.Continuation
}

// NewWordList wraps words as a word-list continuation.
func NewWordList(words []cont.Continuation) *WordList {
	return &WordList{base: base{"word-list"}, Words: words}
}

// Step hands off to a fresh ListCursor positioned at the start of the
// list; invoking the same WordList value twice (e.g. two calls to the
// same user word) never shares or mutates cursor state between calls.
func (w *WordList) Step(cont.State) (cont.Continuation, error) {
	return &ListCursor{base: base{"list-cursor"}, List: w.Words}, nil
}

// ListCursor is the active runtime position within a word-list: "the
// next word to run is List[Position]; once exhausted, resume Parent"
// (spec.md §3 "list-cursor(parent, list, position)"). Parent is usually
// left nil, which falls through to state.Next() exactly like an
// OrdinaryCont running off the end of its code.
type ListCursor struct {
	base
	Parent   cont.Continuation
	List     []cont.Continuation
	Position int
}

func (c *ListCursor) Step(st cont.State) (cont.Continuation, error) {
	if c.Position >= len(c.List) {
		return c.Parent, nil
	}
	rest := &ListCursor{base: base{"list-cursor"}, Parent: c.Parent, List: c.List, Position: c.Position + 1}
	st.SetNext(cont.Cons(rest, st.Next()))
	return c.List[c.Position], nil
}

// InterpretLoop is the Fift-specific "interpret-loop" continuation
// (spec.md §3, §4.8): each Step scans one word, classifies it against
// the dictionary, and either tail-calls it or compiles it, then
// re-enters itself — the outer read-eval loop as a single recurring
// continuation rather than a hand-written `for` loop, so it composes
// with the same cont.Run dispatcher TVM uses.
type InterpretLoop struct{ base }

// NewInterpretLoop returns the loop continuation.
func NewInterpretLoop() *InterpretLoop { return &InterpretLoop{base{"interpret-loop"}} }

func (l *InterpretLoop) Step(st cont.State) (cont.Continuation, error) {
	ctx, ok := st.(*Context)
	if !ok {
		return nil, vmerrors.ErrFatal
	}
	if ctx.Parser.Eof() {
		return cont.NewQuit(ctx.ExitCode), nil
	}
	word, ok := ctx.Parser.NextWord()
	if !ok {
		return cont.NewQuit(ctx.ExitCode), nil
	}

	if entry, found := ctx.Dict.Lookup(word); found {
		return ctx.compileExecute(entry.Def, entry.Active)
	}
	vals, ok := ParseNumber(word)
	if !ok {
		return nil, &UndefinedWordError{Word: word}
	}
	return ctx.compileExecute(cont.NewLiteralPush("number:"+word, vals...), false)
}

// UndefinedWordError is raised when a scanned token is neither a known
// word nor a parseable number (spec.md §4.8 names the unknown-word case
// but leaves the exact surfaced error to the implementation, the way
// IntError does in the original).
type UndefinedWordError struct{ Word string }

func (e *UndefinedWordError) Error() string { return "fift: undefined word " + e.Word }

// compileExecute implements spec.md §4.8 step 4 ("compile-execute"):
// interpret mode or an active word tail-calls c immediately (re-queuing
// the loop behind it, the same cont.Cons return-address idiom
// internal/tvm's CALL family uses); compile mode and a passive word
// appends c to the innermost open word-list, inlining a short (≤2
// item) word-list body directly rather than nesting it one level
// deeper.
func (ctx *Context) compileExecute(c cont.Continuation, active bool) (cont.Continuation, error) {
	if ctx.State <= StateInterpret || active {
		ctx.next = cont.Cons(NewInterpretLoop(), ctx.next)
		return c, nil
	}
	frame := ctx.topCompile()
	if frame == nil {
		return nil, vmerrors.ErrFatal
	}
	if wl, ok := c.(*WordList); ok && len(wl.Words) <= 2 {
		frame.words = append(frame.words, wl.Words...)
	} else {
		frame.words = append(frame.words, c)
	}
	return NewInterpretLoop(), nil
}
