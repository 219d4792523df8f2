// Copyright © 2026 Ironvale Software
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

// compound.go decomposes a concave simple polygon into convex pieces:
// ear-clipping triangulation, then a greedy pass that merges adjacent
// pieces sharing an edge back together as long as the result stays convex.
// The pieces are then wired into a minimum spanning set of weld
// constraints using union-find over shared edges/vertices.

import (
	"fmt"
	"math"

	"github.com/ironvale/phys2d/math/lin"
)

// decomposeConcave triangulates verts and greedily re-merges triangles into
// larger convex polygons, returning the final convex piece list.
func decomposeConcave(verts []lin.V2) ([][]lin.V2, error) {
	if len(verts) < 3 {
		return nil, fmt.Errorf("concave polygon needs >= 3 vertices: %w", ErrInvalidGeometry)
	}
	tris, err := triangulate(verts)
	if err != nil {
		return nil, err
	}
	return greedyMerge(tris), nil
}

// triangulate ear-clips a simple polygon of >= 3 vertices in consistent
// (CCW) winding into triangles.
func triangulate(verts []lin.V2) ([][]lin.V2, error) {
	area, _, _ := signedAreaAndCentroid(verts)
	pts := verts
	if area < 0 {
		pts = append([]lin.V2{}, verts...)
		reverse(pts)
	}
	n := len(pts)
	remaining := make([]int, n)
	for i := range remaining {
		remaining[i] = i
	}

	var tris [][]lin.V2
	for len(remaining) > 3 {
		earIdx := -1
		for k := 0; k < len(remaining); k++ {
			i0 := remaining[(k-1+len(remaining))%len(remaining)]
			i1 := remaining[k]
			i2 := remaining[(k+1)%len(remaining)]
			a, b, c := pts[i0], pts[i1], pts[i2]
			if !convexVertex(a, b, c) {
				continue
			}
			isEar := true
			for _, m := range remaining {
				if m == i0 || m == i1 || m == i2 {
					continue
				}
				if pointInTriangle(pts[m], a, b, c) {
					isEar = false
					break
				}
			}
			if isEar {
				earIdx = k
				tris = append(tris, []lin.V2{a, b, c})
				break
			}
		}
		if earIdx < 0 {
			return nil, fmt.Errorf("ear clipping found no ear for a remaining %d-gon: %w", len(remaining), ErrInvalidGeometry)
		}
		remaining = append(remaining[:earIdx], remaining[earIdx+1:]...)
	}
	tris = append(tris, []lin.V2{pts[remaining[0]], pts[remaining[1]], pts[remaining[2]]})
	return tris, nil
}

// convexVertex reports whether b is a convex (left-turning, CCW) vertex of
// the path a->b->c.
func convexVertex(a, b, c lin.V2) bool {
	var e1, e2 lin.V2
	e1.Sub(&b, &a)
	e2.Sub(&c, &b)
	return e1.Cross(&e2) > lin.Epsilon
}

// pointInTriangle uses the sign of the three edge cross products.
func pointInTriangle(p, a, b, c lin.V2) bool {
	d1 := cross3(p, a, b)
	d2 := cross3(p, b, c)
	d3 := cross3(p, c, a)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func cross3(p, a, b lin.V2) float64 {
	var ap, ab lin.V2
	ap.Sub(&p, &a)
	ab.Sub(&b, &a)
	return ab.Cross(&ap)
}

// greedyMerge repeatedly merges any pair of adjacent polygons that share an
// edge and whose union is convex, until no more merges are possible.
func greedyMerge(polys [][]lin.V2) [][]lin.V2 {
	for {
		mergedAny := false
		for i := 0; i < len(polys); i++ {
			for j := i + 1; j < len(polys); j++ {
				merged, ok := mergeSharedEdge(polys[i], polys[j])
				if !ok {
					continue
				}
				polys[i] = merged
				polys = append(polys[:j], polys[j+1:]...)
				mergedAny = true
				break
			}
			if mergedAny {
				break
			}
		}
		if !mergedAny {
			break
		}
	}
	return polys
}

// mergeSharedEdge merges p and q if they share exactly one edge (traversed
// in opposite directions, as is always the case for two CCW-wound faces
// that share a border) and the result, with collinear vertices removed, is
// convex.
func mergeSharedEdge(p, q []lin.V2) ([]lin.V2, bool) {
	n, m := len(p), len(q)
	for i := 0; i < n; i++ {
		p0, p1 := p[i], p[(i+1)%n]
		for j := 0; j < m; j++ {
			q0, q1 := q[j], q[(j+1)%m]
			if !p0.Aeq(&q1) || !p1.Aeq(&q0) {
				continue
			}
			merged := make([]lin.V2, 0, n+m-2)
			for k := 0; k < n; k++ {
				merged = append(merged, p[(i+1+k)%n])
			}
			for k := 0; k < m-2; k++ {
				merged = append(merged, q[(j+2+k)%m])
			}
			merged = dropCollinear(merged)
			if len(merged) < 3 {
				continue
			}
			area, _, _ := signedAreaAndCentroid(merged)
			if math.Abs(area) < lin.Epsilon {
				continue
			}
			if area < 0 {
				reverse(merged)
			}
			if !isConvex(merged) {
				continue
			}
			return merged, true
		}
	}
	return nil, false
}

// dropCollinear removes vertices that lie on the straight line between
// their neighbors.
func dropCollinear(verts []lin.V2) []lin.V2 {
	n := len(verts)
	if n < 3 {
		return verts
	}
	out := make([]lin.V2, 0, n)
	for i := 0; i < n; i++ {
		a := verts[(i-1+n)%n]
		b := verts[i]
		c := verts[(i+1)%n]
		var e1, e2 lin.V2
		e1.Sub(&b, &a)
		e2.Sub(&c, &b)
		if math.Abs(e1.Cross(&e2)) < lin.Epsilon {
			continue
		}
		out = append(out, b)
	}
	if len(out) < 3 {
		return verts
	}
	return out
}

// weldEdge describes one weld to create between piece i and piece j at the
// midpoint of their shared feature, in the concave polygon's own vertex
// frame (the caller still needs to add the compound's center and subtract
// each body's center to get local anchors).
type weldEdge struct {
	i, j             int
	sharedA, sharedB lin.V2
}

// weldPlan builds a minimum spanning set of welds connecting every piece
// (at most len(pieces)-1 welds), preferring shared edges over shared
// vertices, using union-find to avoid redundant welds between pieces
// already connected transitively.
func weldPlan(pieces [][]lin.V2) []weldEdge {
	parent := make([]int, len(pieces))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(x, y int) { parent[find(x)] = find(y) }

	var edges []weldEdge
	for i := 0; i < len(pieces); i++ {
		for j := i + 1; j < len(pieces); j++ {
			if find(i) == find(j) {
				continue
			}
			if a, b, ok := sharedFeature(pieces[i], pieces[j]); ok {
				union(i, j)
				edges = append(edges, weldEdge{i: i, j: j, sharedA: a, sharedB: b})
			}
		}
	}
	return edges
}

// sharedFeature returns the endpoints of a shared edge between p and q if
// one exists, else a shared vertex repeated twice, else ok=false.
func sharedFeature(p, q []lin.V2) (a, b lin.V2, ok bool) {
	for i := range p {
		p0, p1 := p[i], p[(i+1)%len(p)]
		for j := range q {
			q0, q1 := q[j], q[(j+1)%len(q)]
			if (p0.Aeq(&q0) && p1.Aeq(&q1)) || (p0.Aeq(&q1) && p1.Aeq(&q0)) {
				return p0, p1, true
			}
		}
	}
	for _, pv := range p {
		for _, qv := range q {
			if pv.Aeq(&qv) {
				return pv, pv, true
			}
		}
	}
	return lin.V2{}, lin.V2{}, false
}
