// Copyright © 2026 Ironvale Software
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

// constraint.go implements two constraint variants: Weld (removes relative
// translation and rotation) and Axis/revolute (removes relative
// translation only). Both are solved by direct positional correction
// proportional to inverse mass/inertia, applied once per substep after
// contact response, rather than building and solving a matrix system.

import (
	"fmt"

	"github.com/ironvale/phys2d/math/lin"
)

// ConstraintKind distinguishes Weld from Axis for dispatch and diagnostics.
type ConstraintKind int

const (
	KindWeld ConstraintKind = iota
	KindAxis
)

// Constraint rigidly or partially couples two distinct bodies.
type Constraint struct {
	id   ConstraintID
	kind ConstraintKind

	a, b BodyID

	localAnchorA lin.V2
	localAnchorB lin.V2

	// initialRelativeAngle is captured at construction for Weld constraints
	// only; Axis constraints leave relative rotation free and ignore it.
	initialRelativeAngle float64

	canBreak       bool
	isBroken       bool
	breakThreshold float64
	errorAccum     float64 // running measure of corrective work, used against breakThreshold.
}

// ID returns this constraint's stable identity.
func (c *Constraint) ID() ConstraintID { return c.id }

// Kind returns Weld or Axis.
func (c *Constraint) Kind() ConstraintKind { return c.kind }

// Bodies returns the two endpoint ids.
func (c *Constraint) Bodies() (BodyID, BodyID) { return c.a, c.b }

// Broken reports whether the constraint has snapped and is pending removal.
func (c *Constraint) Broken() bool { return c.isBroken }

// worldAnchor returns body's local anchor transformed into world space.
func worldAnchor(body *Body, local *lin.V2, out *lin.V2) *lin.V2 {
	out.Rotate(local, body.angle)
	out.Add(out, &body.center)
	return out
}

// solve applies one substep's worth of positional (and, for weld, angular)
// correction for the constraint; a weld also removes the pair's relative
// angular velocity. When canBreak is set, the positional plus angular error
// magnitude is added to errorAccum and the constraint is marked broken once
// that exceeds breakThreshold. Returns the positional error magnitude
// observed before correction.
func (c *Constraint) solve(w *World) float64 {
	a, okA := w.body(c.a)
	b, okB := w.body(c.b)
	if !okA || !okB || c.isBroken {
		return 0
	}

	var wa, wb lin.V2
	worldAnchor(a, &c.localAnchorA, &wa)
	worldAnchor(b, &c.localAnchorB, &wb)

	var posError lin.V2
	posError.Sub(&wb, &wa)
	errMag := posError.Len()

	invMA, invMB := a.effInvMass(), b.effInvMass()
	invSum := invMA + invMB
	if invSum > lin.Epsilon {
		var correction lin.V2
		correction.Scale(&posError, 1.0/invSum)
		if invMA > 0 {
			var shiftA lin.V2
			shiftA.Scale(&correction, invMA)
			a.center.Add(&a.center, &shiftA)
			a.refreshAABB()
		}
		if invMB > 0 {
			var shiftB lin.V2
			shiftB.Scale(&correction, -invMB)
			b.center.Add(&b.center, &shiftB)
			b.refreshAABB()
		}
	}

	angErr := 0.0
	if c.kind == KindWeld {
		angErr = lin.NormalizeAngle((b.angle - a.angle) - c.initialRelativeAngle)
		invIA, invIB := a.effInvInertia(), b.effInvInertia()
		invISum := invIA + invIB
		if invISum > lin.Epsilon {
			correction := angErr / invISum
			if invIA > 0 {
				a.angle += correction * invIA
			}
			if invIB > 0 {
				b.angle -= correction * invIB
			}
		}

		// Velocity-level correction: remove relative angular velocity so a
		// welded pair stops fighting the positional correction every substep.
		if invISum > lin.Epsilon {
			relOmega := b.angularVelocity - a.angularVelocity
			if invIA > 0 {
				a.angularVelocity += relOmega * (invIA / invISum)
			}
			if invIB > 0 {
				b.angularVelocity -= relOmega * (invIB / invISum)
			}
		}
	}

	if c.canBreak {
		c.errorAccum += errMag + absF(angErr)
		if c.errorAccum > c.breakThreshold {
			c.isBroken = true
		}
	}

	return errMag
}

func absF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// newConstraint validates and builds a constraint; World.CreateWeld /
// CreateAxis wire it into both bodies' registries.
func newConstraint(kind ConstraintKind, a *Body, anchorA lin.V2, b *Body, anchorB lin.V2, canBreak bool, breakThreshold float64) (*Constraint, error) {
	if a.id == b.id {
		return nil, fmt.Errorf("constraint endpoints are the same body: %w", ErrInvalidConstraint)
	}
	c := &Constraint{
		kind:           kind,
		a:              a.id,
		b:              b.id,
		localAnchorA:   anchorA,
		localAnchorB:   anchorB,
		canBreak:       canBreak,
		breakThreshold: breakThreshold,
	}
	if kind == KindWeld {
		c.initialRelativeAngle = lin.NormalizeAngle(b.angle - a.angle)
	}
	return c, nil
}
