// Copyright © 2026 Ironvale Software
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

// contact.go turns the broad phase's candidate pairs into manifolds for the
// solver, and maintains each body's contacts_current / contacts_previous
// cache used to diff contact-added/removed events at the end of a full
// step. Manifold objects are pooled rather than allocated per pair per
// substep.

import "github.com/ironvale/phys2d/math/lin"

// manifoldPool is a simple free list of *Manifold, reused across substeps
// and ticks to keep the hot path allocation-free.
type manifoldPool struct {
	free []*Manifold
}

func (p *manifoldPool) get() *Manifold {
	if n := len(p.free); n > 0 {
		m := p.free[n-1]
		p.free = p.free[:n-1]
		*m = Manifold{}
		return m
	}
	return &Manifold{}
}

func (p *manifoldPool) release(m *Manifold) {
	p.free = append(p.free, m)
}

// narrowPhase runs collide() over every candidate pair, recording a
// manifold (and updating each body's contacts_current cache) for every pair
// that actually overlaps. Previously returned manifolds are released back
// to the pool first, so the returned slice is only valid until the next
// call to narrowPhase.
func (w *World) narrowPhase(pairs []pairKey) []*Manifold {
	for _, m := range w.activeManifolds {
		w.manifolds.release(m)
	}
	w.activeManifolds = w.activeManifolds[:0]

	for _, pk := range pairs {
		a, okA := w.body(pk.lo)
		b, okB := w.body(pk.hi)
		if !okA || !okB {
			continue
		}
		if a.sleeping && b.sleeping {
			continue
		}
		if !a.aabb.Overlaps(&b.aabb) {
			continue
		}
		m := w.manifolds.get()
		if !collide(a, b, m) {
			w.manifolds.release(m)
			continue
		}
		w.activeManifolds = append(w.activeManifolds, m)

		var normalFromB lin.V2
		normalFromB.Neg(&m.Normal)
		recordContact(a, b.id, &m.Point, &m.Normal)
		recordContact(b, a.id, &m.Point, &normalFromB)
	}
	return w.activeManifolds
}

// recordContact updates body's contacts_current cache for the pair with
// other, keeping the most recent manifold if several substeps in one full
// step touch the same pair.
func recordContact(body *Body, other BodyID, point *lin.V2, normal *lin.V2) {
	if body.contactsCurrent == nil {
		body.contactsCurrent = map[BodyID]Contact{}
	}
	body.contactsCurrent[other] = Contact{Point: *point, Normal: *normal}
}

// diffContactEvents computes the end-of-step contact events: set
// differences between contacts_current and contacts_previous per body,
// then current becomes previous and current is cleared.
func (w *World) diffContactEvents() {
	for _, b := range w.liveBodies() {
		for other, c := range b.contactsCurrent {
			if _, existed := b.contactsPrevious[other]; !existed {
				w.events.push(ContactAdded, b.id, other, c.Point, c.Normal)
			}
		}
		for other, c := range b.contactsPrevious {
			if _, still := b.contactsCurrent[other]; !still {
				w.events.push(ContactRemoved, b.id, other, c.Point, c.Normal)
			}
		}
		b.contactsPrevious = b.contactsCurrent
		b.contactsCurrent = make(map[BodyID]Contact, len(b.contactsPrevious))
	}
}
