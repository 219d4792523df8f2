// Copyright © 2026 Ironvale Software
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironvale/phys2d/math/lin"
)

func TestBodySetMassCollapsesAtInfiniteMass(t *testing.T) {
	shape, err := NewCircle(5)
	require.NoError(t, err)
	b := &Body{shape: shape}

	b.setMass(10)
	assert.Greater(t, b.invMass, 0.0)
	assert.Greater(t, b.invInertia, 0.0)

	b.setMass(InfiniteMass)
	assert.Equal(t, 0.0, b.invMass)
	assert.Equal(t, 0.0, b.invInertia)

	b.setMass(-1)
	assert.Equal(t, 0.0, b.invMass)
}

func TestBodyEffInvMassZeroWhenLocked(t *testing.T) {
	shape, err := NewCircle(5)
	require.NoError(t, err)
	b := &Body{shape: shape}
	b.setMass(10)
	require.Greater(t, b.invMass, 0.0)

	b.locked = true
	assert.Equal(t, 0.0, b.effInvMass())
	assert.Equal(t, 0.0, b.effInvInertia())
}

func TestBodyEffInvInertiaZeroWhenNotRotating(t *testing.T) {
	shape, err := NewCircle(5)
	require.NoError(t, err)
	b := &Body{shape: shape, canRotate: false}
	b.setMass(10)
	assert.Equal(t, 0.0, b.effInvInertia())
	assert.Greater(t, b.effInvMass(), 0.0)
}

func TestBodyWakeSleepCycle(t *testing.T) {
	shape, err := NewCircle(5)
	require.NoError(t, err)
	b := &Body{shape: shape}
	b.setMass(1)
	b.velocity = lin.V2Of(3, 4)
	b.angularVelocity = 2

	b.sleep()
	assert.True(t, b.sleeping)
	assert.Equal(t, lin.V2Of(0, 0), b.velocity)
	assert.Equal(t, 0.0, b.angularVelocity)

	b.sleepTime = 5
	b.wake()
	assert.False(t, b.sleeping)
	assert.Equal(t, 0.0, b.sleepTime)
}

func TestBodyWakeNoOpWhenLocked(t *testing.T) {
	shape, err := NewCircle(5)
	require.NoError(t, err)
	b := &Body{shape: shape, locked: true, sleeping: true, sleepTime: 3}
	b.wake()
	assert.True(t, b.sleeping)
	assert.Equal(t, 3.0, b.sleepTime)
}

func TestBodyVelocityAtIncludesAngularContribution(t *testing.T) {
	shape, err := NewCircle(5)
	require.NoError(t, err)
	b := &Body{shape: shape}
	b.velocity = lin.V2Of(1, 0)
	b.angularVelocity = 2

	r := lin.V2Of(0, 1)
	var out lin.V2
	b.velocityAt(&r, &out)

	var perp lin.V2
	perp.CrossScalar(2, &r)
	var want lin.V2
	want.Add(&b.velocity, &perp)
	assert.InDelta(t, want.X, out.X, 1e-9)
	assert.InDelta(t, want.Y, out.Y, 1e-9)
}

func TestBodyRefreshAABBTracksPose(t *testing.T) {
	shape, err := NewCircle(5)
	require.NoError(t, err)
	b := &Body{shape: shape, center: lin.V2Of(10, 10)}
	b.refreshAABB()
	assert.InDelta(t, 5.0, b.aabb.Min.X, 1e-9)
	assert.InDelta(t, 15.0, b.aabb.Max.X, 1e-9)
}
