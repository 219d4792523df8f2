// Copyright © 2026 Ironvale Software
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironvale/phys2d/math/lin"
)

func TestApplyImpulseUpdatesLinearAndAngular(t *testing.T) {
	shape, err := NewCircle(5)
	require.NoError(t, err)
	a := makeTestBody(shape, lin.V2Of(0, 0), 0)
	b := makeTestBody(shape, lin.V2Of(10, 0), 0)

	rA := lin.V2Of(0, 1)
	rB := lin.V2Of(0, -1)
	impulse := lin.V2Of(1, 0)

	invMA, invMB := a.effInvMass(), b.effInvMass()
	invIA, invIB := a.effInvInertia(), b.effInvInertia()

	applyImpulse(a, b, &rA, &rB, &impulse, invMA, invMB, invIA, invIB)

	assert.Less(t, a.velocity.X, 0.0)
	assert.Greater(t, b.velocity.X, 0.0)
	assert.NotEqual(t, 0.0, a.angularVelocity)
	assert.NotEqual(t, 0.0, b.angularVelocity)
}

func TestApplyImpulseSkipsSleepingBody(t *testing.T) {
	shape, err := NewCircle(5)
	require.NoError(t, err)
	a := makeTestBody(shape, lin.V2Of(0, 0), 0)
	a.sleeping = true
	b := makeTestBody(shape, lin.V2Of(10, 0), 0)

	rA := lin.V2Of(0, 1)
	rB := lin.V2Of(0, -1)
	impulse := lin.V2Of(1, 0)

	applyImpulse(a, b, &rA, &rB, &impulse, a.effInvMass(), b.effInvMass(), a.effInvInertia(), b.effInvInertia())
	assert.Equal(t, 0.0, a.velocity.X)
	assert.Greater(t, b.velocity.X, 0.0)
}

func TestPositionalCorrectionSplitsByInverseMass(t *testing.T) {
	shape, err := NewCircle(5)
	require.NoError(t, err)
	a := makeTestBody(shape, lin.V2Of(0, 0), 0)
	a.setMass(1)
	b := makeTestBody(shape, lin.V2Of(1, 0), 0)
	b.setMass(3)

	m := &Manifold{Normal: lin.V2Of(1, 0), Penetration: 1.0}
	positionalCorrection(a, b, m, a.effInvMass(), b.effInvMass())

	assert.Less(t, a.center.X, 0.0)
	assert.Greater(t, b.center.X, 1.0)
	// the lighter body (smaller mass => larger invMass) moves further.
	assert.Greater(t, -a.center.X, b.center.X-1.0)
}

func TestPositionalCorrectionNoOpBelowSlop(t *testing.T) {
	shape, err := NewCircle(5)
	require.NoError(t, err)
	a := makeTestBody(shape, lin.V2Of(0, 0), 0)
	b := makeTestBody(shape, lin.V2Of(1, 0), 0)

	m := &Manifold{Normal: lin.V2Of(1, 0), Penetration: positionalSlop / 2}
	positionalCorrection(a, b, m, a.effInvMass(), b.effInvMass())
	assert.Equal(t, 0.0, a.center.X)
	assert.Equal(t, 1.0, b.center.X)
}

func TestPositionalCorrectionNoOpWhenBothLocked(t *testing.T) {
	shape, err := NewCircle(5)
	require.NoError(t, err)
	a := makeTestBody(shape, lin.V2Of(0, 0), 0)
	a.locked = true
	b := makeTestBody(shape, lin.V2Of(1, 0), 0)
	b.locked = true

	m := &Manifold{Normal: lin.V2Of(1, 0), Penetration: 5}
	positionalCorrection(a, b, m, a.effInvMass(), b.effInvMass())
	assert.Equal(t, 0.0, a.center.X)
	assert.Equal(t, 1.0, b.center.X)
}

func TestResolveContactElasticBounceReversesVelocity(t *testing.T) {
	w := NewWorld(Gravity(lin.V2Of(0, 0)))
	a, err := w.CreateCircle(lin.V2Of(-5, 0), 5, Mass(1), Restitution(1), FrictionCoef(0))
	require.NoError(t, err)
	b, err := w.CreateCircle(lin.V2Of(5, 0), 5, Mass(1), Restitution(1), FrictionCoef(0))
	require.NoError(t, err)
	require.NoError(t, w.SetVelocity(a, lin.V2Of(2, 0)))
	require.NoError(t, w.SetVelocity(b, lin.V2Of(-2, 0)))

	m := &Manifold{A: a, B: b, Normal: lin.V2Of(1, 0), Point: lin.V2Of(0, 0), Penetration: 0}
	resolveContact(w, m, w.config.WakeImpulse)

	ba, bb := w.Body(a), w.Body(b)
	assert.InDelta(t, -2, ba.Velocity().X, 1e-6)
	assert.InDelta(t, 2, bb.Velocity().X, 1e-6)
}

func TestResolveContactFrictionClampedByCoulombCone(t *testing.T) {
	w := NewWorld(Gravity(lin.V2Of(0, 0)))
	a, err := w.CreateCircle(lin.V2Of(-5, 0), 5, Mass(1), Restitution(0), FrictionCoef(1))
	require.NoError(t, err)
	b, err := w.CreateCircle(lin.V2Of(5, 0), 5, Mass(1), Restitution(0), FrictionCoef(1))
	require.NoError(t, err)
	require.NoError(t, w.SetVelocity(a, lin.V2Of(1, 5)))

	m := &Manifold{A: a, B: b, Normal: lin.V2Of(1, 0), Point: lin.V2Of(0, 0), Penetration: 0}
	resolveContact(w, m, w.config.WakeImpulse)

	ba := w.Body(a)
	assert.Less(t, absF(ba.Velocity().Y), 5.0)
}
