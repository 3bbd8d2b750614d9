// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

// Package gas implements the VM's resource meter: a credit/limit/max
// triple with consumption hooks (spec.md §3 "Gas state", §4.4).
package gas

import "github.com/ton-blockchain/ton-sub013/internal/vmerrors"

// Per-operation gas premiums fixed by spec.md §4.7/§5.
const (
	StackEntryGasPrice  = 1   // per entry of stack depth above 32 inspected
	TupleEntryGasPrice  = 1   // per tuple entry created/inspected
	CellLoadGasPrice    = 100 // first touch of a cell through a slice/ref
	CellReloadGasPrice  = 25  // repeat touch of an already-loaded cell in this run
	CellCreateGasPrice  = 500 // NEWC .. ENDC
	FreeStackDepth      = 32  // stack inspection up to this depth is free
	ImplicitJumpGasPrice = 10 // charged every 9th continuation jump, spec.md §4.5
)

// Gas is the (base, limit, max, remaining) meter of spec.md §4.4.
type Gas struct {
	base      int64
	limit     int64
	max       int64
	remaining int64
	credit    int64

	// freePool backs the cheap-mode behaviors of spec.md §4.4 ("a
	// secondary counter ... first N CHKSIGN, first K GETEXTRABALANCE").
	freePool map[string]int
}

// New creates a meter with the given limit, max, and starting credit
// (credit is added to the initial remaining balance and must be repaid
// by commit time, spec.md §4.4 "final_ok").
func New(limit, max, credit int64) *Gas {
	return &Gas{
		base:      limit + credit,
		limit:     limit,
		max:       max,
		credit:    credit,
		remaining: limit + credit,
		freePool:  make(map[string]int),
	}
}

// Consumed returns base - remaining, where base starts as limit+credit
// in New and grows with the limit in ChangeLimit (spec.md §4.4
// "consumed = base - remaining").
func (g *Gas) Consumed() int64 { return g.base - g.remaining }

// Remaining returns the current remaining balance (may be negative
// immediately after a failing Consume, before the caller aborts).
func (g *Gas) Remaining() int64 { return g.remaining }

// Limit returns the current limit.
func (g *Gas) Limit() int64 { return g.limit }

// Consume deducts amount from remaining; if remaining goes negative the
// ErrOutOfGas sentinel is returned (spec.md §4.4 "consume(n)").
func (g *Gas) Consume(amount int64) error {
	g.remaining -= amount
	if g.remaining < 0 {
		return vmerrors.ErrOutOfGas
	}
	return nil
}

// ChangeLimit raises the limit up to max (ACCEPT asks for far more than
// max, so its limit lands on max, spec.md §5). If remaining had already gone
// negative and the new limit covers what's been consumed, execution may
// resume (spec.md §4.4 "change_limit").
func (g *Gas) ChangeLimit(newLimit int64) {
	if newLimit > g.max {
		newLimit = g.max
	}
	if newLimit <= g.limit {
		return
	}
	delta := newLimit - g.limit
	g.limit = newLimit
	g.base += delta
	g.remaining += delta
}

// FinalOK reports whether the run's committed state is allowed to
// surface: the credit added to remaining at New must still be covered,
// i.e. remaining >= credit (spec.md §4.4 "final_ok").
func (g *Gas) FinalOK() bool {
	return g.remaining >= g.credit
}

// ChargeStackDepth charges for opcodes that inspect stack depth beyond
// the free allowance (spec.md §4.3 "Depth gas").
func (g *Gas) ChargeStackDepth(depth int) error {
	if depth <= FreeStackDepth {
		return nil
	}
	return g.Consume(int64(depth-FreeStackDepth) * StackEntryGasPrice)
}

// ChargeTuple charges for the entries of a newly built or inspected
// tuple.
func (g *Gas) ChargeTuple(entries int) error {
	return g.Consume(int64(entries) * TupleEntryGasPrice)
}

// TakeFree consumes one unit from a named free-gas pool (e.g. "chksign",
// "getextrabalance") up to the given budget, reporting whether this call
// was free. Once the pool is exhausted, callers must Consume the normal
// price themselves.
func (g *Gas) TakeFree(pool string, budget int) bool {
	used := g.freePool[pool]
	if used >= budget {
		return false
	}
	g.freePool[pool] = used + 1
	return true
}
