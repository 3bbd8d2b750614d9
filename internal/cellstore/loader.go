// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package cellstore

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ton-blockchain/ton-sub013/internal/vmerrors"
)

// Hash256 is a content-addressing key: a cell's level-0 hash.
type Hash256 = [hashBytes]byte

// CellRecord is what a CellDbReader hands back for a stored hash: the
// persisted refcount plus (if available) the fully-deserialized cell
// (spec.md §4.2). The disk key-value store itself is out of scope (§1);
// this interface is the capability boundary the core consumes.
type CellRecord struct {
	RefCount int
	Cell     *Cell
}

// CellDbReader is the external collaborator the Cell store depends on
// to resolve an ExtCell into a loaded Cell (spec.md §1, §4.2). Safe for
// concurrent use by multiple VM instances (spec.md §5).
type CellDbReader interface {
	Load(hash Hash256) (CellRecord, error)
}

// CellDbWriter is the matching write-side capability (spec.md §1:
// "set/erase(hash, record)").
type CellDbWriter interface {
	Set(hash Hash256, rec CellRecord) error
	Erase(hash Hash256) error
}

// ExtCell stands in for an unloaded child cell: it carries only the
// (level_mask, hash, depth) triple needed to compute a parent's hash, and
// resolves lazily through a CellDbReader (spec.md §3 "ExtCell", §4.2).
type ExtCell struct {
	levelMask LevelMask
	hashes    []Hash256
	depths    []uint16

	reader CellDbReader
	hash   Hash256 // level-0 hash, used as the lookup key

	mu       sync.Mutex
	resolved *Cell
}

// NewExtCell constructs a stub from the metadata recorded alongside a
// stored cell's child list (spec.md §4.2: "for each child parses a
// (level_mask, hashes, depths) triple").
func NewExtCell(levelMask LevelMask, hashes []Hash256, depths []uint16, reader CellDbReader) *ExtCell {
	return &ExtCell{levelMask: levelMask, hashes: hashes, depths: depths, reader: reader, hash: hashes[0]}
}

func (e *ExtCell) LevelMask() LevelMask { return e.levelMask }
func (e *ExtCell) Hash() Hash256        { return e.hash }

// Resolve loads the backing Cell, memoizing the result. Safe for
// concurrent calls (spec.md §4.2 "Concurrency").
func (e *ExtCell) Resolve() (*Cell, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.resolved != nil {
		return e.resolved, nil
	}
	rec, err := e.reader.Load(e.hash)
	if err != nil {
		return nil, err
	}
	if rec.Cell == nil {
		return nil, vmerrors.ErrCellNotFound
	}
	e.resolved = rec.Cell
	return e.resolved, nil
}

// Loader wraps a CellDbReader with an LRU cache of resolved cells, the
// way the teacher's hash_cache.go LRU-caches keccak results ahead of a
// slow recompute (interpreter/lfvm/hash_cache.go). Loading a cell this
// way is opaque to callers and thread-safe (spec.md §4.2, §5).
type Loader struct {
	reader CellDbReader
	cache  *lru.Cache[Hash256, *Cell]
}

// NewLoader wraps reader with an LRU of the given size.
func NewLoader(reader CellDbReader, cacheSize int) (*Loader, error) {
	c, err := lru.New[Hash256, *Cell](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Loader{reader: reader, cache: c}, nil
}

// Load resolves hash to a Cell, consulting (and populating) the LRU.
func (l *Loader) Load(hash Hash256) (*Cell, error) {
	if c, ok := l.cache.Get(hash); ok {
		return c, nil
	}
	rec, err := l.reader.Load(hash)
	if err != nil {
		return nil, err
	}
	if rec.Cell == nil {
		return nil, vmerrors.ErrCellNotFound
	}
	l.cache.Add(hash, rec.Cell)
	return rec.Cell, nil
}

// MemoryCellDb is a trivial in-memory CellDbReader/Writer, useful for
// tests and for scripts that build their own cell graphs rather than
// loading them from a persistent bag-of-cells (the real disk store is
// out of scope, spec.md §1).
type MemoryCellDb struct {
	mu      sync.RWMutex
	records map[Hash256]CellRecord
}

// NewMemoryCellDb returns an empty in-memory store.
func NewMemoryCellDb() *MemoryCellDb {
	return &MemoryCellDb{records: make(map[Hash256]CellRecord)}
}

func (m *MemoryCellDb) Load(hash Hash256) (CellRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[hash]
	if !ok {
		return CellRecord{}, vmerrors.ErrCellNotFound
	}
	return rec, nil
}

func (m *MemoryCellDb) Set(hash Hash256, rec CellRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[hash] = rec
	return nil
}

func (m *MemoryCellDb) Erase(hash Hash256) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, hash)
	return nil
}
