// Copyright © 2026 Ironvale Software
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironvale/phys2d/math/lin"
)

func TestNewConstraintRejectsSameBody(t *testing.T) {
	shape, err := NewCircle(5)
	require.NoError(t, err)
	a := makeTestBody(shape, lin.V2Of(0, 0), 0)
	a.id = BodyID{index: 1, gen: 1}

	_, err = newConstraint(KindWeld, a, lin.V2Of(0, 0), a, lin.V2Of(0, 0), false, 0)
	assert.ErrorIs(t, err, ErrInvalidConstraint)
}

func TestWeldConstraintPullsAnchorsTogether(t *testing.T) {
	w := NewWorld(Gravity(lin.V2Of(0, 0)))
	a, err := w.CreateCircle(lin.V2Of(0, 0), 5, Locked())
	require.NoError(t, err)
	b, err := w.CreateCircle(lin.V2Of(20, 0), 5, Mass(1))
	require.NoError(t, err)

	cid, err := w.CreateWeld(a, lin.V2Of(5, 0), b, lin.V2Of(-5, 0), false, 0)
	require.NoError(t, err)
	c, ok := w.constraint(cid)
	require.True(t, ok)

	for i := 0; i < 50; i++ {
		c.solve(w)
	}

	bodyB := w.Body(b)
	assert.InDelta(t, 10.0, bodyB.Center().X, 0.5)
}

func TestAxisConstraintLeavesRelativeRotationFree(t *testing.T) {
	w := NewWorld(Gravity(lin.V2Of(0, 0)))
	a, err := w.CreateCircle(lin.V2Of(0, 0), 5, Locked())
	require.NoError(t, err)
	b, err := w.CreateCircle(lin.V2Of(10, 0), 5, Mass(1))
	require.NoError(t, err)

	cid, err := w.CreateAxis(a, lin.V2Of(5, 0), b, lin.V2Of(-5, 0), false, 0)
	require.NoError(t, err)
	c, ok := w.constraint(cid)
	require.True(t, ok)

	bodyB := w.Body(b)
	bodyB.angle = 1.5

	for i := 0; i < 10; i++ {
		c.solve(w)
	}
	assert.InDelta(t, 1.5, bodyB.Angle(), 1e-9)
}

func TestConstraintBreaksAboveThreshold(t *testing.T) {
	w := NewWorld(Gravity(lin.V2Of(0, 0)))
	a, err := w.CreateCircle(lin.V2Of(0, 0), 5, Locked())
	require.NoError(t, err)
	b, err := w.CreateCircle(lin.V2Of(100, 0), 5, Mass(1))
	require.NoError(t, err)

	cid, err := w.CreateWeld(a, lin.V2Of(0, 0), b, lin.V2Of(0, 0), true, 1.0)
	require.NoError(t, err)
	c, ok := w.constraint(cid)
	require.True(t, ok)

	broke := false
	for i := 0; i < 20; i++ {
		c.solve(w)
		if c.Broken() {
			broke = true
			break
		}
	}
	assert.True(t, broke)
}

func TestConstraintNeverBreaksWithDefaultThreshold(t *testing.T) {
	w := NewWorld(Gravity(lin.V2Of(0, 0)))
	a, err := w.CreateCircle(lin.V2Of(0, 0), 5, Locked())
	require.NoError(t, err)
	b, err := w.CreateCircle(lin.V2Of(100, 0), 5, Mass(1))
	require.NoError(t, err)

	cid, err := w.CreateWeld(a, lin.V2Of(0, 0), b, lin.V2Of(0, 0), false, 0)
	require.NoError(t, err)
	c, ok := w.constraint(cid)
	require.True(t, ok)

	for i := 0; i < 20; i++ {
		c.solve(w)
	}
	assert.False(t, c.Broken())
}
