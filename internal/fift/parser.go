// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package fift

import (
	"bufio"
	"io"
	"math/big"
	"strings"

	"github.com/ton-blockchain/ton-sub013/internal/stack"
)

// ParseCtx scans whitespace-delimited words out of a source, the Go
// replacement for crypto/fift/IntCtx.h's ParseCtx: that struct manages a
// raw line buffer and a moving `const char*`; bufio.Reader plus a
// decoded-line string and byte offset does the same job without manual
// pointer arithmetic.
type ParseCtx struct {
	Filename     string
	CurrentDir   string
	IncludeDepth int
	LineNo       int

	r        *bufio.Reader
	line     string
	pos      int
	needLine bool
	atEOF    bool
}

// NewParseCtx wraps r as a word source (spec.md §4.8's input for
// "seekeof?"/"word-prefix-find").
func NewParseCtx(r io.Reader, filename, curdir string, depth int) *ParseCtx {
	return &ParseCtx{
		Filename: filename, CurrentDir: curdir, IncludeDepth: depth,
		r: bufio.NewReader(r), needLine: true,
	}
}

func isFiftSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }

func (p *ParseCtx) loadNextLine() bool {
	if p.atEOF {
		return false
	}
	line, err := p.r.ReadString('\n')
	if line == "" && err != nil {
		p.atEOF = true
		return false
	}
	if err != nil {
		p.atEOF = true // last line had no trailing newline; still usable once
	}
	p.line = line
	p.pos = 0
	p.LineNo++
	p.needLine = false
	return true
}

// Eof reports whether the source is exhausted (spec.md §4.8
// "seekeof?... on EOF, terminate").
func (p *ParseCtx) Eof() bool {
	if !p.needLine {
		return false
	}
	return !p.loadNextLine()
}

func (p *ParseCtx) skipSpace() bool {
	for {
		if p.needLine {
			if !p.loadNextLine() {
				return false
			}
		}
		for p.pos < len(p.line) && isFiftSpace(p.line[p.pos]) {
			p.pos++
		}
		if p.pos < len(p.line) {
			return true
		}
		p.needLine = true
	}
}

// NextWord scans the next whitespace-delimited token (spec.md §4.8
// step 1/2: skip spaces, scan next token).
func (p *ParseCtx) NextWord() (string, bool) {
	if !p.skipSpace() {
		return "", false
	}
	start := p.pos
	for p.pos < len(p.line) && !isFiftSpace(p.line[p.pos]) {
		p.pos++
	}
	return p.line[start:p.pos], true
}

// ScanWordTo reads raw text up through (and consuming) the next byte
// equal to delim, crossing line boundaries if needed — the primitive
// behind string-literal words like `" ... "` (IntCtx.h's
// scan_word_to).
func (p *ParseCtx) ScanWordTo(delim byte) (string, bool) {
	var sb strings.Builder
	for {
		if p.needLine {
			if !p.loadNextLine() {
				return sb.String(), false
			}
		}
		idx := strings.IndexByte(p.line[p.pos:], delim)
		if idx < 0 {
			sb.WriteString(p.line[p.pos:])
			p.needLine = true
			continue
		}
		sb.WriteString(p.line[p.pos : p.pos+idx])
		p.pos += idx + 1
		return sb.String(), true
	}
}

// ParseNumber implements spec.md §4.8's number recognizer ("prefixes
// -?0x, -?0b, -?0 (as decimal), decimal fractions p/q ... range-checked
// against 257-bit signed"), grounded on parse_number in
// crypto/fift/words.cpp: a plain integer yields one value, a `p/q`
// fraction yields the numerator then the denominator, in that order,
// matching interpret_parse_number's push sequence.
func ParseNumber(word string) ([]stack.Value, bool) {
	if idx := strings.IndexByte(word, '/'); idx >= 0 {
		num, ok1 := parseIntLiteral(word[:idx])
		den, ok2 := parseIntLiteral(word[idx+1:])
		if !ok1 || !ok2 {
			return nil, false
		}
		nv, dv := stack.FromBig(num), stack.FromBig(den)
		if nv.IsNaN() || dv.IsNaN() {
			return nil, false
		}
		return []stack.Value{nv, dv}, true
	}
	v, ok := parseIntLiteral(word)
	if !ok {
		return nil, false
	}
	fv := stack.FromBig(v)
	if fv.IsNaN() {
		return nil, false
	}
	return []stack.Value{fv}, true
}

func parseIntLiteral(s string) (*big.Int, bool) {
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	if s == "" {
		return nil, false
	}
	base := 10
	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		base = 16
		s = s[2:]
	case strings.HasPrefix(s, "0b"), strings.HasPrefix(s, "0B"):
		base = 2
		s = s[2:]
	}
	if s == "" {
		return nil, false
	}
	v, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, false
	}
	if neg {
		v.Neg(v)
	}
	return v, true
}
