// Copyright © 2026 Ironvale Software
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

// solver.go turns a narrow-phase Manifold into velocity and position
// changes: normal impulse, Coulomb friction, Baumgarte positional
// correction, and a small angular positional nudge. All of it runs once
// per substep, before constraint solving for the same substep (see
// world.go's substep loop).

import (
	"context"
	"log/slog"

	"github.com/ironvale/phys2d/math/lin"
)

const (
	positionalSlop    = 0.05
	positionalPercent = 0.6
	angularPercent    = 0.01
)

// resolveContact applies impulse resolution (normal + friction) followed by
// positional correction for one manifold. wakeImpulseThreshold controls
// the wake-on-impact check.
func resolveContact(w *World, m *Manifold, wakeImpulseThreshold float64) {
	a, okA := w.body(m.A)
	b, okB := w.body(m.B)
	if !okA || !okB {
		return
	}

	var rA, rB lin.V2
	rA.Sub(&m.Point, &a.center)
	rB.Sub(&m.Point, &b.center)

	var vRel lin.V2
	velocityRelative(a, b, &rA, &rB, &vRel)

	closing := vRel.Dot(&m.Normal)

	impulseMag := m.Penetration * absF(closing)
	if impulseMag > wakeImpulseThreshold {
		if !a.locked && a.sleeping {
			a.wake()
		}
		if !b.locked && b.sleeping {
			b.wake()
		}
	}

	invMA, invMB := a.effInvMass(), b.effInvMass()
	invIA, invIB := a.effInvInertia(), b.effInvInertia()

	if closing <= 0 {
		rAxN := rA.Cross(&m.Normal)
		rBxN := rB.Cross(&m.Normal)
		k := invMA + invMB + rAxN*rAxN*invIA + rBxN*rBxN*invIB
		if k <= lin.Epsilon && slog.Default().Enabled(context.Background(), slog.LevelDebug) {
			slog.Debug("degenerate effective mass in normal impulse, skipping", "a", a.id, "b", b.id)
		}
		if k > lin.Epsilon && !(a.sleeping || b.sleeping) {
			e := min64(a.restitution, b.restitution)
			j := -(1 + e) * closing / k

			var impulse lin.V2
			impulse.Scale(&m.Normal, j)
			applyImpulse(a, b, &rA, &rB, &impulse, invMA, invMB, invIA, invIB)

			// Recompute relative velocity for the friction pass.
			velocityRelative(a, b, &rA, &rB, &vRel)
			var tangent lin.V2
			vAlongN := vRel.Dot(&m.Normal)
			tangent.Scale(&m.Normal, vAlongN)
			tangent.Sub(&vRel, &tangent)
			if !tangent.AeqZ() {
				tangent.Unit(&tangent)
				rAxT := rA.Cross(&tangent)
				rBxT := rB.Cross(&tangent)
				kt := invMA + invMB + rAxT*rAxT*invIA + rBxT*rBxT*invIB
				if kt <= lin.Epsilon && slog.Default().Enabled(context.Background(), slog.LevelDebug) {
					slog.Debug("degenerate effective mass in friction impulse, skipping", "a", a.id, "b", b.id)
				}
				if kt > lin.Epsilon {
					jt := -vRel.Dot(&tangent) / kt
					mu := max64(a.friction, b.friction)
					maxJt := mu * absF(j)
					jt = lin.Clamp(jt, -maxJt, maxJt)

					var friction lin.V2
					friction.Scale(&tangent, jt)
					applyImpulse(a, b, &rA, &rB, &friction, invMA, invMB, invIA, invIB)
				}
			}
		}
	}

	positionalCorrection(a, b, m, invMA, invMB)
	angularCorrection(a, b, m, &rA, &rB, invIA, invIB)
}

// velocityRelative computes vRel = (B.vel + omegaB x rB) - (A.vel + omegaA x rA).
func velocityRelative(a, b *Body, rA, rB *lin.V2, out *lin.V2) {
	var vA, vB lin.V2
	a.velocityAt(rA, &vA)
	b.velocityAt(rB, &vB)
	out.Sub(&vB, &vA)
}

// applyImpulse distributes impulse (already signed/scaled) to both bodies'
// linear and angular velocity, skipping locked bodies via their zero
// effective inverse mass/inertia and sleeping bodies by an explicit check.
func applyImpulse(a, b *Body, rA, rB *lin.V2, impulse *lin.V2, invMA, invMB, invIA, invIB float64) {
	if invMA > 0 && !a.sleeping {
		var d lin.V2
		d.Scale(impulse, -invMA)
		a.velocity.Add(&a.velocity, &d)
	}
	if invMB > 0 && !b.sleeping {
		var d lin.V2
		d.Scale(impulse, invMB)
		b.velocity.Add(&b.velocity, &d)
	}
	if invIA > 0 && !a.sleeping {
		a.angularVelocity -= rA.Cross(impulse) * invIA
	}
	if invIB > 0 && !b.sleeping {
		b.angularVelocity += rB.Cross(impulse) * invIB
	}
}

// positionalCorrection applies Baumgarte linear correction proportional to
// penetration depth beyond a small slop, split by inverse mass.
func positionalCorrection(a, b *Body, m *Manifold, invMA, invMB float64) {
	invSum := invMA + invMB
	if invSum <= lin.Epsilon {
		return
	}
	depth := m.Penetration - positionalSlop
	if depth <= 0 {
		return
	}
	mag := depth / invSum * positionalPercent
	var correction lin.V2
	correction.Scale(&m.Normal, mag)

	if invMA > 0 {
		var shift lin.V2
		shift.Scale(&correction, -invMA)
		a.center.Add(&a.center, &shift)
		a.refreshAABB()
	}
	if invMB > 0 {
		var shift lin.V2
		shift.Scale(&correction, invMB)
		b.center.Add(&b.center, &shift)
		b.refreshAABB()
	}
}

// angularCorrection applies a small angular positional nudge to each body
// with nonzero inverse inertia: angularPercent * penetration / |r|, where r
// is the body's lever arm to the contact, in the sign of cross(r, normal).
func angularCorrection(a, b *Body, m *Manifold, rA, rB *lin.V2, invIA, invIB float64) {
	if invIA > 0 {
		lenA := rA.Len()
		if lenA > lin.Epsilon {
			sign := lin.Sign(rA.Cross(&m.Normal))
			a.angle += sign * (m.Penetration / lenA) * angularPercent
		}
	}
	if invIB > 0 {
		lenB := rB.Len()
		if lenB > lin.Epsilon {
			sign := lin.Sign(rB.Cross(&m.Normal))
			b.angle += sign * (m.Penetration / lenB) * angularPercent
		}
	}
}

func min64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
