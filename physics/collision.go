// Copyright © 2026 Ironvale Software
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

// collision.go is the narrow phase: given a candidate pair of bodies it
// decides whether they actually overlap and, if so, produces a Manifold.
// Dispatch is a small table keyed by ShapeKind pair, so adding a shape
// kind never requires a type switch over every existing shape.

import (
	"context"
	"log/slog"
	"math"

	"github.com/ironvale/phys2d/math/lin"
)

// Manifold is the result of a single narrow-phase test: two bodies, the
// contact point, the outward normal from a to b, and the penetration
// depth. Manifolds are pooled by the World (see contact.go) rather than
// allocated per pair per substep.
type Manifold struct {
	A, B        BodyID
	Normal      lin.V2 // unit, points from A toward B.
	Point       lin.V2
	Penetration float64
}

// collideFunc tests bodies a, b (already known to be in canonical shape
// order for the pair) and fills m if they overlap. Returns false if no
// collision (m is left untouched).
type collideFunc func(a, b *Body, m *Manifold) bool

// collideTable dispatches on (a.Kind(), b.Kind()). Polygon-circle is only
// registered one way; collide() canonically orders operands so a circle is
// always the second operand when paired with a polygon.
var collideTable = map[[2]ShapeKind]collideFunc{
	{KindCircle, KindCircle}:   collideCircleCircle,
	{KindPolygon, KindPolygon}: collidePolygonPolygon,
	{KindPolygon, KindCircle}:  collidePolygonCircle,
}

// collide runs the narrow phase for bodies a and b, writing into m on
// collision. It canonicalizes operand order (circle always second when
// paired with a polygon) before dispatch and fixes m.A/m.B/m.Normal back up
// for the original (a, b) order afterward.
func collide(a, b *Body, m *Manifold) bool {
	ak, bk := a.shape.Kind(), b.shape.Kind()
	if ak == KindCircle && bk == KindPolygon {
		if !collidePolygonCircle(b, a, m) {
			return false
		}
		m.A, m.B = a.id, b.id
		m.Normal.Neg(&m.Normal)
		return true
	}
	fn, ok := collideTable[[2]ShapeKind{ak, bk}]
	if !ok {
		return false
	}
	if !fn(a, b, m) {
		return false
	}
	m.A, m.B = a.id, b.id
	return true
}

// collideCircleCircle tests two circles by comparing center distance
// against the sum of radii.
func collideCircleCircle(a, b *Body, m *Manifold) bool {
	ca, cb := a.shape.(*Circle), b.shape.(*Circle)

	var n lin.V2
	n.Sub(&b.center, &a.center)
	r := ca.Radius + cb.Radius
	lenSqr := n.LenSqr()
	if lenSqr > r*r {
		return false
	}

	var unit lin.V2
	length := math.Sqrt(lenSqr)
	if length < lin.Epsilon {
		unit.SetS(1, 0) // coincident centers: arbitrary normal (NumericDegeneracy).
		if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
			slog.Debug("coincident circle centers, using arbitrary normal", "a", a.id, "b", b.id)
		}
	} else {
		unit.Scale(&n, 1.0/length)
	}

	m.Penetration = r - length
	m.Normal = unit

	var pa, pb lin.V2
	pa.Scale(&unit, ca.Radius)
	pa.Add(&pa, &a.center)
	pb.Scale(&unit, -cb.Radius)
	pb.Add(&pb, &b.center)
	m.Point.Add(&pa, &pb)
	m.Point.Scale(&m.Point, 0.5)
	return true
}

// collidePolygonPolygon tests two convex polygons using the separating
// axis theorem over both polygons' face normals.
func collidePolygonPolygon(a, b *Body, m *Manifold) bool {
	pa, pb := a.shape.(*Polygon), b.shape.(*Polygon)

	bestOverlap := lin.Large
	var bestAxis lin.V2
	fromA := true

	if overlap, axis, ok := satMinOverlap(pa, a.center, a.angle, pb, b.center, b.angle); ok {
		if overlap < bestOverlap {
			bestOverlap, bestAxis, fromA = overlap, axis, true
		}
	} else {
		return false
	}
	if overlap, axis, ok := satMinOverlap(pb, b.center, b.angle, pa, a.center, a.angle); ok {
		if overlap < bestOverlap {
			bestOverlap, bestAxis, fromA = overlap, axis, false
		}
	} else {
		return false
	}

	// bestAxis currently points outward from whichever polygon contributed
	// it; normalize so the manifold normal points from a toward b.
	normal := bestAxis
	if fromA {
		// axis already points from A's edge outward, i.e. roughly A->B.
	} else {
		normal.Neg(&normal)
	}
	var centerDelta lin.V2
	centerDelta.Sub(&b.center, &a.center)
	if normal.Dot(&centerDelta) < 0 {
		normal.Neg(&normal)
	}

	supA := supportPoint(pa, a.center, a.angle, &normal, true)
	var negNormal lin.V2
	negNormal.Neg(&normal)
	supB := supportPoint(pb, b.center, b.angle, &negNormal, true)

	m.Normal = normal
	m.Penetration = bestOverlap
	m.Point.Add(&supA, &supB)
	m.Point.Scale(&m.Point, 0.5)
	return true
}

// satMinOverlap projects subject's edge normals (as candidate axes) against
// both subject and other, returning the minimum-overlap axis found (pointing
// outward from subject) or ok=false the moment a separating axis is found.
func satMinOverlap(subject *Polygon, subjCenter lin.V2, subjAngle float64, other *Polygon, otherCenter lin.V2, otherAngle float64) (overlap float64, axis lin.V2, ok bool) {
	overlap = lin.Large
	subjVerts := subject.Vertices(&subjCenter, subjAngle)
	otherVerts := other.Vertices(&otherCenter, otherAngle)
	n := len(subject.local)
	for i := 0; i < n; i++ {
		var ax lin.V2
		subject.WorldNormal(i, subjAngle, &ax)

		minA, maxA := projectPolygon(subjVerts, &ax)
		minB, maxB := projectPolygon(otherVerts, &ax)

		o := math.Min(maxA, maxB) - math.Max(minA, minB)
		if o <= 0 {
			return 0, lin.V2{}, false
		}
		if o < overlap {
			overlap = o
			axis = ax
		}
	}
	return overlap, axis, true
}

func projectPolygon(verts []lin.V2, axis *lin.V2) (min, max float64) {
	min = verts[0].Dot(axis)
	max = min
	for _, v := range verts[1:] {
		d := v.Dot(axis)
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	return min, max
}

// supportPoint returns the vertex of p (placed at center/angle) furthest
// along dir (or furthest opposite dir if max==false).
func supportPoint(p *Polygon, center lin.V2, angle float64, dir *lin.V2, max bool) lin.V2 {
	verts := p.Vertices(&center, angle)
	best := verts[0]
	bestDot := best.Dot(dir)
	for _, v := range verts[1:] {
		d := v.Dot(dir)
		if (max && d > bestDot) || (!max && d < bestDot) {
			best, bestDot = v, d
		}
	}
	return best
}

// collidePolygonCircle tests a polygon against a circle, handling both the
// circle-center-outside and circle-center-inside-the-polygon cases. a must
// be the polygon, b the circle.
func collidePolygonCircle(a, b *Body, m *Manifold) bool {
	poly := a.shape.(*Polygon)
	circ := b.shape.(*Circle)

	verts := poly.Vertices(&a.center, a.angle)
	n := len(verts)

	bestDistSqr := lin.Large
	var closest lin.V2
	var edgeNormal lin.V2
	for i := 0; i < n; i++ {
		v0, v1 := verts[i], verts[(i+1)%n]
		cp := closestPointOnSegment(&v0, &v1, &b.center)
		var d lin.V2
		d.Sub(&b.center, &cp)
		distSqr := d.LenSqr()
		if distSqr < bestDistSqr {
			bestDistSqr = distSqr
			closest = cp
			poly.WorldNormal(i, a.angle, &edgeNormal)
		}
	}

	inside := poly.PointIn(&a.center, a.angle, &b.center)
	dist := math.Sqrt(bestDistSqr)

	if inside {
		var normal lin.V2
		normal.Sub(&closest, &b.center)
		if normal.AeqZ() {
			normal = edgeNormal
			normal.Neg(&normal)
		} else {
			normal.Unit(&normal)
		}
		m.Normal = normal
		m.Penetration = circ.Radius + dist
		m.Point = closest
		return true
	}

	if dist > circ.Radius {
		return false
	}
	var normal lin.V2
	if dist < lin.Epsilon {
		normal = edgeNormal // center on the edge: fall back to the edge normal (NumericDegeneracy).
		if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
			slog.Debug("circle center on polygon edge, using edge normal", "polygon", a.id, "circle", b.id)
		}
	} else {
		normal.Sub(&b.center, &closest)
		normal.Unit(&normal)
	}
	m.Normal = normal
	m.Penetration = circ.Radius - dist
	m.Point = closest
	return true
}

// closestPointOnSegment returns the closest point to p on segment [a,b].
func closestPointOnSegment(a, b, p *lin.V2) lin.V2 {
	var ab, ap lin.V2
	ab.Sub(b, a)
	ap.Sub(p, a)
	lenSqr := ab.LenSqr()
	if lenSqr < lin.Epsilon {
		return *a
	}
	t := lin.Clamp(ap.Dot(&ab)/lenSqr, 0, 1)
	var out lin.V2
	out.Scale(&ab, t)
	out.Add(&out, a)
	return out
}
