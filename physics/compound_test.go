// Copyright © 2026 Ironvale Software
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironvale/phys2d/math/lin"
)

func TestTriangulateSquareProducesTwoTriangles(t *testing.T) {
	square := []lin.V2{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	tris, err := triangulate(square)
	require.NoError(t, err)
	assert.Len(t, tris, 2)
	for _, tri := range tris {
		assert.Len(t, tri, 3)
	}
}

func TestDecomposeConcaveRejectsTooFewVertices(t *testing.T) {
	_, err := decomposeConcave([]lin.V2{{0, 0}, {1, 0}})
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestDecomposeConcaveLShapeYieldsConvexPieces(t *testing.T) {
	lshape := []lin.V2{
		{0, 0}, {40, 0}, {40, 10}, {10, 10}, {10, 40}, {0, 40},
	}
	pieces, err := decomposeConcave(lshape)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(pieces), 2)
	for _, p := range pieces {
		assert.True(t, isConvex(p), "every decomposed piece must be convex")
	}
}

func TestGreedyMergeCombinesTwoTrianglesBackIntoASquare(t *testing.T) {
	square := []lin.V2{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	tris, err := triangulate(square)
	require.NoError(t, err)
	require.Len(t, tris, 2)

	merged := greedyMerge(tris)
	require.Len(t, merged, 1)
	area, _, _ := signedAreaAndCentroid(merged[0])
	assert.InDelta(t, 100.0, area, 1e-6)
}

func TestMergeSharedEdgeRejectsNonAdjacentPolygons(t *testing.T) {
	p := []lin.V2{{0, 0}, {10, 0}, {10, 10}}
	q := []lin.V2{{100, 100}, {110, 100}, {110, 110}}
	_, ok := mergeSharedEdge(p, q)
	assert.False(t, ok)
}

func TestSharedFeatureFindsSharedEdge(t *testing.T) {
	p := []lin.V2{{0, 0}, {10, 0}, {10, 10}}
	q := []lin.V2{{10, 10}, {10, 0}, {20, 10}}
	a, b, ok := sharedFeature(p, q)
	require.True(t, ok)
	assert.True(t, a.Aeq(&lin.V2{X: 10, Y: 0}) || a.Aeq(&lin.V2{X: 10, Y: 10}))
	_ = b
}

func TestWeldPlanConnectsAllPiecesWithMinimalEdges(t *testing.T) {
	pieces := [][]lin.V2{
		{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
		{{10, 0}, {20, 0}, {20, 10}, {10, 10}},
		{{20, 0}, {30, 0}, {30, 10}, {20, 10}},
	}
	welds := weldPlan(pieces)
	assert.Len(t, welds, 2)
}

func TestDropCollinearRemovesStraightVertex(t *testing.T) {
	verts := []lin.V2{{0, 0}, {5, 0}, {10, 0}, {10, 10}, {0, 10}}
	out := dropCollinear(verts)
	assert.Len(t, out, 4)
}
