// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package cellstore

import (
	"testing"

	"go.uber.org/mock/gomock"
)

func TestLoaderCachesAfterFirstLoad(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := NewMockCellDbReader(ctrl)

	var hash Hash256
	hash[0] = 0xAB
	want := CellRecord{RefCount: 1, Cell: EmptyCell}

	reader.EXPECT().Load(hash).Return(want, nil).Times(1)

	loader, err := NewLoader(reader, 16)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		c, err := loader.Load(hash)
		if err != nil {
			t.Fatal(err)
		}
		if c != want.Cell {
			t.Fatalf("Load returned %v, want %v", c, want.Cell)
		}
	}
}

func TestLoaderPropagatesCellNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := NewMockCellDbReader(ctrl)

	var hash Hash256
	reader.EXPECT().Load(hash).Return(CellRecord{}, nil).Times(1)

	loader, err := NewLoader(reader, 16)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := loader.Load(hash); err == nil {
		t.Fatalf("expected an error for a record with no resolved Cell")
	}
}
