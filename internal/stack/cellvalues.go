// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package stack

import (
	"fmt"

	"github.com/ton-blockchain/ton-sub013/internal/cellstore"
)

// CellValue wraps a finalized cell as a stack entry.
type CellValue struct{ Cell *cellstore.Cell }

func (CellValue) Kind() Kind { return KindCell }
func (c CellValue) String() string {
	return fmt.Sprintf("Cell{%x}", c.Cell.Hash())
}

// SliceValue wraps a cell-slice read cursor as a stack entry.
type SliceValue struct{ Slice *cellstore.Slice }

func (SliceValue) Kind() Kind { return KindSlice }
func (s SliceValue) String() string {
	return fmt.Sprintf("Slice{bits=%d refs=%d}", s.Slice.BitsLeft(), s.Slice.RefsLeft())
}

// BuilderValue wraps an in-progress cell builder as a stack entry.
type BuilderValue struct{ Builder *cellstore.Builder }

func (BuilderValue) Kind() Kind { return KindBuilder }
func (b BuilderValue) String() string {
	return fmt.Sprintf("Builder{bits=%d refs=%d}", b.Builder.BitLen(), b.Builder.RefsCount())
}
