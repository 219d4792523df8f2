// Copyright © 2026 Ironvale Software
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

// broad.go is the broad phase: a uniform spatial hash over body AABBs that
// produces a deduplicated candidate pair list for the narrow phase. Cells,
// the pair set, and the output pair list are all owned by the World and
// reused tick to tick to keep the hot path allocation-free.

import "math"

// cellKey identifies one cell of the spatial hash.
type cellKey struct {
	x, y int32
}

// pairKey is an order-independent key for a body pair, used to deduplicate
// candidates across cells.
type pairKey struct {
	lo, hi BodyID
}

func makePairKey(a, b BodyID) pairKey {
	if a.index < b.index || (a.index == b.index && a.gen <= b.gen) {
		return pairKey{a, b}
	}
	return pairKey{b, a}
}

// broadPhase holds the reusable spatial-hash state for one World.
type broadPhase struct {
	cellSize float64

	cells   map[cellKey][]BodyID
	used    []cellKey // cells touched this pass, for O(used) clearing.
	seen    map[pairKey]struct{}
	pairs   []pairKey
}

func newBroadPhase(cellSize float64) *broadPhase {
	return &broadPhase{
		cellSize: cellSize,
		cells:    make(map[cellKey][]BodyID),
		seen:     make(map[pairKey]struct{}),
	}
}

// reset clears cell contents (without freeing the backing slices/maps) and
// the pair accumulator, ready for the next generate() call.
func (bp *broadPhase) reset() {
	for _, k := range bp.used {
		bp.cells[k] = bp.cells[k][:0]
	}
	bp.used = bp.used[:0]
	for k := range bp.seen {
		delete(bp.seen, k)
	}
	bp.pairs = bp.pairs[:0]
}

func (bp *broadPhase) cellRange(ab *AABB) (x0, y0, x1, y1 int32) {
	x0 = int32(math.Floor(ab.Min.X / bp.cellSize))
	y0 = int32(math.Floor(ab.Min.Y / bp.cellSize))
	x1 = int32(math.Floor(ab.Max.X / bp.cellSize))
	y1 = int32(math.Floor(ab.Max.Y / bp.cellSize))
	return
}

// insert places b into every cell its AABB overlaps.
func (bp *broadPhase) insert(id BodyID, ab *AABB) {
	x0, y0, x1, y1 := bp.cellRange(ab)
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			key := cellKey{x, y}
			list, ok := bp.cells[key]
			if !ok {
				bp.used = append(bp.used, key)
			}
			bp.cells[key] = append(list, id)
		}
	}
}

// generate builds candidate pairs from the current cell contents, skipping
// pairs where both bodies are sleeping or are already connected via a
// constraint. w is used to look up body state for the skip tests.
func (bp *broadPhase) generate(w *World) []pairKey {
	for _, key := range bp.used {
		list := bp.cells[key]
		for i := 0; i < len(list); i++ {
			for j := i + 1; j < len(list); j++ {
				a, b := list[i], list[j]
				if a == b {
					continue
				}
				pk := makePairKey(a, b)
				if _, dup := bp.seen[pk]; dup {
					continue
				}
				bp.seen[pk] = struct{}{}

				ba, okA := w.body(a)
				bb, okB := w.body(b)
				if !okA || !okB {
					continue
				}
				if ba.sleeping && bb.sleeping {
					continue
				}
				if _, connected := ba.connected[b]; connected {
					continue
				}
				bp.pairs = append(bp.pairs, pk)
			}
		}
	}
	return bp.pairs
}
