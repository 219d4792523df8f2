// Copyright © 2026 Ironvale Software
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironvale/phys2d/math/lin"
)

func makeTestBody(shape Shape, center lin.V2, angle float64) *Body {
	b := &Body{shape: shape, center: center, angle: angle, canRotate: true}
	b.setMass(shape.Area())
	b.refreshAABB()
	return b
}

func TestCollideCircleCircleOverlap(t *testing.T) {
	ca, err := NewCircle(5)
	require.NoError(t, err)
	cb, err := NewCircle(5)
	require.NoError(t, err)

	a := makeTestBody(ca, lin.V2Of(0, 0), 0)
	b := makeTestBody(cb, lin.V2Of(8, 0), 0)

	var m Manifold
	ok := collide(a, b, &m)
	require.True(t, ok)
	assert.InDelta(t, 2.0, m.Penetration, 1e-9)
	assert.InDelta(t, 1.0, m.Normal.X, 1e-9)
	assert.InDelta(t, 0.0, m.Normal.Y, 1e-9)
}

func TestCollideCircleCircleNoOverlap(t *testing.T) {
	ca, err := NewCircle(5)
	require.NoError(t, err)
	cb, err := NewCircle(5)
	require.NoError(t, err)

	a := makeTestBody(ca, lin.V2Of(0, 0), 0)
	b := makeTestBody(cb, lin.V2Of(100, 0), 0)

	var m Manifold
	assert.False(t, collide(a, b, &m))
}

func TestCollidePolygonPolygonOverlap(t *testing.T) {
	pa, err := NewBox(10, 10)
	require.NoError(t, err)
	pb, err := NewBox(10, 10)
	require.NoError(t, err)

	a := makeTestBody(pa, lin.V2Of(0, 0), 0)
	b := makeTestBody(pb, lin.V2Of(8, 0), 0)

	var m Manifold
	ok := collide(a, b, &m)
	require.True(t, ok)
	assert.InDelta(t, 2.0, m.Penetration, 1e-9)
}

func TestCollidePolygonPolygonSeparated(t *testing.T) {
	pa, err := NewBox(10, 10)
	require.NoError(t, err)
	pb, err := NewBox(10, 10)
	require.NoError(t, err)

	a := makeTestBody(pa, lin.V2Of(0, 0), 0)
	b := makeTestBody(pb, lin.V2Of(50, 0), 0)

	var m Manifold
	assert.False(t, collide(a, b, &m))
}

func TestCollidePolygonCircleOutside(t *testing.T) {
	box, err := NewBox(10, 10)
	require.NoError(t, err)
	circ, err := NewCircle(3)
	require.NoError(t, err)

	poly := makeTestBody(box, lin.V2Of(0, 0), 0)
	ball := makeTestBody(circ, lin.V2Of(7, 0), 0)

	var m Manifold
	ok := collide(poly, ball, &m)
	require.True(t, ok)
	assert.Greater(t, m.Penetration, 0.0)
	assert.InDelta(t, 1.0, m.Normal.X, 1e-6)
}

func TestCollidePolygonCircleInside(t *testing.T) {
	box, err := NewBox(20, 20)
	require.NoError(t, err)
	circ, err := NewCircle(3)
	require.NoError(t, err)

	poly := makeTestBody(box, lin.V2Of(0, 0), 0)
	ball := makeTestBody(circ, lin.V2Of(1, 0), 0)

	var m Manifold
	ok := collide(poly, ball, &m)
	require.True(t, ok)
	assert.Greater(t, m.Penetration, circ.Radius)
}

func TestCollideCircleOperandOrderCanonicalized(t *testing.T) {
	box, err := NewBox(10, 10)
	require.NoError(t, err)
	circ, err := NewCircle(3)
	require.NoError(t, err)

	poly := makeTestBody(box, lin.V2Of(0, 0), 0)
	ball := makeTestBody(circ, lin.V2Of(7, 0), 0)

	var mPolyFirst, mCircleFirst Manifold
	require.True(t, collide(poly, ball, &mPolyFirst))
	require.True(t, collide(ball, poly, &mCircleFirst))

	assert.InDelta(t, mPolyFirst.Normal.X, -mCircleFirst.Normal.X, 1e-9)
	assert.InDelta(t, mPolyFirst.Normal.Y, -mCircleFirst.Normal.Y, 1e-9)
}
