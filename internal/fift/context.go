// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

// Package fift implements the Fift script interpreter: a Forth-style
// outer loop (spec.md §3 "Continuation" Fift-specific variants, §4.8
// "Fift outer loop") built on the same cont.Continuation dispatcher the
// TVM engine uses (internal/tvm), and a word dictionary backed by the
// same persistent treap (internal/treap) that spec.md §4.9 describes.
//
// Grounded on crypto/fift/IntCtx.h/.cpp and Dictionary.h/.cpp: IntCtx's
// mutable interpreter state (stack, dictionary, parser, exit code)
// becomes Context here, and a DictEntry/Dictionary pair that wraps the
// shared treap exactly as Dictionary.h wraps its Hashmap in a mutable
// box.
package fift

import (
	"io"

	"pgregory.net/rand"

	"github.com/ton-blockchain/ton-sub013/internal/cont"
	"github.com/ton-blockchain/ton-sub013/internal/stack"
	"github.com/ton-blockchain/ton-sub013/internal/treap"
)

// Interpreter states (spec.md §4.8: "state ∈ {interpret = 0, compile >
// 0, internal = -1}"). Compile states nest: entering another `{ ... }`
// bumps the depth so `}` always closes the innermost bracket.
const (
	StateInterpret = 0
	StateInternal  = -1
)

// compileFrame is one nesting level of `{ ... }` or `: name ... ;`
// being built; words accumulates the word-list body (spec.md §3
// "word-list(vector<continuation>)").
type compileFrame struct {
	words   []cont.Continuation
	defName string // non-empty only for a `:`-started frame
}

// Context is the Fift interpreter's mutable state: the data stack it
// shares with every word, the current dictionary, the active parse
// position, and the compile-bracket nesting stack (spec.md §3
// "IntCtx"-equivalent state, grounded on crypto/fift/IntCtx.h's IntCtx
// struct). It implements cont.State so the same dispatcher in
// internal/cont drives both Fift and TVM.
type Context struct {
	stack *stack.Stack
	next  cont.Continuation

	Dict  *Dictionary
	Atoms *stack.AtomTable
	Pr    *treap.Priorities
	Rand  *rand.Rand

	State int

	Parser      *ParseCtx
	parserStack []*ParseCtx

	compileStack []*compileFrame

	Out io.Writer
	Err io.Writer

	ExitCode int

	// Now returns the current Unix time for the `now` word; nil defaults
	// to a fixed value rather than reaching for a wall clock the way
	// time.Now() would, so a run stays reproducible unless the caller
	// wires a real clock in (cmd/fift does).
	Now func() int64
}

// NewContext builds a Context with a fresh stack and dictionary, ready
// to interpret from r (spec.md §4.8's "seekeof?" reads from here).
// seed mixes into both the dictionary's treap priorities and the
// interpreter's own `random` word (spec.md §5 "Randomness").
func NewContext(r io.Reader, filename string, out, errOut io.Writer, seed int64) *Context {
	pr := treap.NewPriorities(seed)
	ctx := &Context{
		stack: stack.New(),
		Dict:  NewDictionary(pr),
		Atoms: stack.NewAtomTable(),
		Pr:    pr,
		Rand:  rand.New(rand.NewSource(uint64(seed))),
		State: StateInterpret,
		Out:   out,
		Err:   errOut,
	}
	ctx.Parser = NewParseCtx(r, filename, "", 0)
	RegisterCoreWords(ctx.Dict)
	return ctx
}

func (ctx *Context) Stack() *stack.Stack         { return ctx.stack }
func (ctx *Context) Next() cont.Continuation     { return ctx.next }
func (ctx *Context) SetNext(n cont.Continuation) { ctx.next = n }

// EnterCtx switches the current parse position to a nested source
// (spec.md §6.5's "include search is handled by the external
// source-lookup collaborator" — the collaborator itself, resolving a
// filename to a reader, is left to the caller; EnterCtx only manages
// the resulting stack of parse positions, as IntCtx::enter_ctx does).
func (ctx *Context) EnterCtx(p *ParseCtx) {
	ctx.parserStack = append(ctx.parserStack, ctx.Parser)
	ctx.Parser = p
}

// LeaveCtx pops back to the parse position that was active before the
// most recent EnterCtx, reporting whether one existed.
func (ctx *Context) LeaveCtx() bool {
	if len(ctx.parserStack) == 0 {
		return false
	}
	n := len(ctx.parserStack) - 1
	ctx.Parser = ctx.parserStack[n]
	ctx.parserStack = ctx.parserStack[:n]
	return true
}

// pushCompile opens a new word-list frame (entered by `{` or `:`).
func (ctx *Context) pushCompile(defName string) {
	ctx.compileStack = append(ctx.compileStack, &compileFrame{defName: defName})
	ctx.State++
}

// topCompile returns the innermost open frame, or nil outside any
// bracket.
func (ctx *Context) topCompile() *compileFrame {
	if len(ctx.compileStack) == 0 {
		return nil
	}
	return ctx.compileStack[len(ctx.compileStack)-1]
}

// popCompile closes the innermost frame and returns its accumulated
// body.
func (ctx *Context) popCompile() *compileFrame {
	n := len(ctx.compileStack)
	if n == 0 {
		return nil
	}
	f := ctx.compileStack[n-1]
	ctx.compileStack = ctx.compileStack[:n-1]
	ctx.State--
	return f
}
