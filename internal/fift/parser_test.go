// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package fift

import (
	"strings"
	"testing"

	"github.com/ton-blockchain/ton-sub013/internal/stack"
)

func TestParseCtxNextWord(t *testing.T) {
	p := NewParseCtx(strings.NewReader("  foo   bar\nbaz"), "t", "", 0)
	for _, want := range []string{"foo", "bar", "baz"} {
		got, ok := p.NextWord()
		if !ok {
			t.Fatalf("expected word %q, got eof", want)
		}
		if got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	}
	if _, ok := p.NextWord(); ok {
		t.Fatalf("expected eof after last word")
	}
}

func TestParseCtxScanWordTo(t *testing.T) {
	p := NewParseCtx(strings.NewReader(`hello world" rest`), "t", "", 0)
	s, ok := p.ScanWordTo('"')
	if !ok {
		t.Fatalf("expected delimiter found")
	}
	if s != "hello world" {
		t.Fatalf("got %q, want %q", s, "hello world")
	}
	rest, _ := p.NextWord()
	if rest != "rest" {
		t.Fatalf("got %q, want %q", rest, "rest")
	}
}

func TestParseNumberDecimal(t *testing.T) {
	vs, ok := ParseNumber("123")
	if !ok || len(vs) != 1 {
		t.Fatalf("ParseNumber(123) = %v, %v", vs, ok)
	}
	if vs[0].(stack.Int257).ToBig().Int64() != 123 {
		t.Fatalf("got %v, want 123", vs[0])
	}
}

func TestParseNumberNegativeHexAndBinary(t *testing.T) {
	vs, ok := ParseNumber("-0x1A")
	if !ok || vs[0].(stack.Int257).ToBig().Int64() != -26 {
		t.Fatalf("ParseNumber(-0x1A) = %v, %v", vs, ok)
	}
	vs, ok = ParseNumber("0b101")
	if !ok || vs[0].(stack.Int257).ToBig().Int64() != 5 {
		t.Fatalf("ParseNumber(0b101) = %v, %v", vs, ok)
	}
}

func TestParseNumberFractionPushesNumeratorThenDenominator(t *testing.T) {
	vs, ok := ParseNumber("3/4")
	if !ok || len(vs) != 2 {
		t.Fatalf("ParseNumber(3/4) = %v, %v", vs, ok)
	}
	if vs[0].(stack.Int257).ToBig().Int64() != 3 {
		t.Fatalf("numerator = %v, want 3", vs[0])
	}
	if vs[1].(stack.Int257).ToBig().Int64() != 4 {
		t.Fatalf("denominator = %v, want 4", vs[1])
	}
}

func TestParseNumberRejectsGarbage(t *testing.T) {
	if _, ok := ParseNumber("not-a-number"); ok {
		t.Fatalf("expected ParseNumber to reject a non-numeric word")
	}
	if _, ok := ParseNumber(""); ok {
		t.Fatalf("expected ParseNumber to reject the empty word")
	}
}
