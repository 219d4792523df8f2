// Copyright © 2026 Ironvale Software
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

// shape.go defines the local-space collision primitives: circles, boxes,
// and general convex polygons. A Shape is always centered at the local
// origin; combine it with a body's (center, angle) to place it in world
// space. Shapes do not allocate on the collision hot path: callers supply
// the AABB to fill in, and Vertices writes into a scratch slice owned by
// the shape.

import (
	"fmt"
	"math"

	"github.com/ironvale/phys2d/math/lin"
)

// ShapeKind enumerates the variants handled by narrow phase. Dispatch is
// done on this tag rather than runtime type assertions scattered through
// the package.
type ShapeKind int

const (
	KindCircle ShapeKind = iota
	KindPolygon
)

// Shape is a local-space collision primitive. It is immutable after
// construction: callers that need a different size must build a new shape.
type Shape interface {
	Kind() ShapeKind

	// Vertices returns the shape's vertices transformed into world space
	// for the given center and angle. Circles return a perimeter
	// approximation (8*max(1, r/20) evenly spaced vertices). The returned
	// slice is owned by the shape; callers must not retain it across the
	// next call.
	Vertices(center *lin.V2, angle float64) []lin.V2

	// LocalVertices returns the shape's un-transformed vertices.
	LocalVertices() []lin.V2

	// Aabb fills ab with the world-space axis-aligned bounding box for the
	// given center and angle. Returns ab.
	Aabb(center *lin.V2, angle float64, ab *AABB) *AABB

	// Inertia returns the moment of inertia for the given mass, about the
	// shape's local origin (which is always its centroid).
	Inertia(mass float64) float64

	// Area returns the shape's area, used to default a body's mass.
	Area() float64

	// PointIn returns true if the world point p lies inside the shape
	// placed at (center, angle).
	PointIn(center *lin.V2, angle float64, p *lin.V2) bool

	// Width and Height return the shape's local-space bounding extents,
	// useful for display / diagnostics.
	Width() float64
	Height() float64
}

// AABB is an axis-aligned, world-space bounding box.
type AABB struct {
	Min lin.V2
	Max lin.V2
}

// Overlaps returns true if a and b intersect (touching-only does not count).
func (a *AABB) Overlaps(b *AABB) bool {
	return a.Max.X > b.Min.X && a.Min.X < b.Max.X &&
		a.Max.Y > b.Min.Y && a.Min.Y < b.Max.Y
}

// Union grows a to also cover b. Returns a.
func (a *AABB) Union(b *AABB) *AABB {
	a.Min.X, a.Min.Y = math.Min(a.Min.X, b.Min.X), math.Min(a.Min.Y, b.Min.Y)
	a.Max.X, a.Max.Y = math.Max(a.Max.X, b.Max.X), math.Max(a.Max.Y, b.Max.Y)
	return a
}

// ============================================================================
// circle

// Circle is a collision primitive defined by a radius around the origin.
type Circle struct {
	Radius float64

	verts []lin.V2 // scratch: perimeter approximation, world space.
}

// NewCircle creates a Circle shape. Returns ErrInvalidGeometry if radius
// is not positive and finite.
func NewCircle(radius float64) (*Circle, error) {
	if !(radius > 0) || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("circle radius %g: %w", radius, ErrInvalidGeometry)
	}
	n := circleVertexCount(radius)
	return &Circle{Radius: radius, verts: make([]lin.V2, n)}, nil
}

// circleVertexCount scales vertex density with radius: 8*max(1, r/20)
// evenly spaced vertices.
func circleVertexCount(r float64) int {
	n := 8.0 * math.Max(1.0, r/20.0)
	return int(n)
}

func (c *Circle) Kind() ShapeKind { return KindCircle }

func (c *Circle) LocalVertices() []lin.V2 {
	out := make([]lin.V2, len(c.verts))
	for i := range out {
		a := float64(i) / float64(len(out)) * lin.PIx2
		out[i] = lin.V2Of(math.Cos(a)*c.Radius, math.Sin(a)*c.Radius)
	}
	return out
}

func (c *Circle) Vertices(center *lin.V2, angle float64) []lin.V2 {
	n := len(c.verts)
	for i := 0; i < n; i++ {
		a := float64(i)/float64(n)*lin.PIx2 + angle
		s, cs := math.Sincos(a)
		c.verts[i].X = center.X + cs*c.Radius
		c.verts[i].Y = center.Y + s*c.Radius
	}
	return c.verts
}

func (c *Circle) Aabb(center *lin.V2, angle float64, ab *AABB) *AABB {
	ab.Min.X, ab.Min.Y = center.X-c.Radius, center.Y-c.Radius
	ab.Max.X, ab.Max.Y = center.X+c.Radius, center.Y+c.Radius
	return ab
}

func (c *Circle) Area() float64 { return lin.PI * c.Radius * c.Radius }

func (c *Circle) Inertia(mass float64) float64 { return 0.5 * mass * c.Radius * c.Radius }

func (c *Circle) PointIn(center *lin.V2, angle float64, p *lin.V2) bool {
	dx, dy := p.X-center.X, p.Y-center.Y
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

func (c *Circle) Width() float64  { return c.Radius * 2 }
func (c *Circle) Height() float64 { return c.Radius * 2 }

// ============================================================================
// polygon (general convex polygon; Box is a constructor producing one)

// Polygon is a convex collision primitive with 3 or more vertices, stored
// re-centered at its own centroid. Winding is normalized to
// counter-clockwise in the engine's screen-space (+Y down) convention.
type Polygon struct {
	local []lin.V2 // local-space vertices, centroid at origin.
	norms []lin.V2 // local-space outward edge normals, one per edge.

	world []lin.V2 // scratch: world-space transformed vertices.
}

// NewBox creates a Box shape: a 4-vertex polygon centered at the local
// origin with the given full width and height.
func NewBox(width, height float64) (*Polygon, error) {
	if !(width > 0) || !(height > 0) {
		return nil, fmt.Errorf("box %gx%g: %w", width, height, ErrInvalidGeometry)
	}
	hw, hh := width/2, height/2
	return NewPolygon([]lin.V2{
		{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh},
	})
}

// NewPolygon creates a convex Polygon from >= 3 local-space vertices. The
// vertices are re-centered at their centroid and their winding is
// normalized. Returns ErrInvalidGeometry if there are fewer than 3
// vertices, the polygon is degenerate (zero area), or the input is not
// simple and convex.
func NewPolygon(verts []lin.V2) (*Polygon, error) {
	if len(verts) < 3 {
		return nil, fmt.Errorf("polygon needs >= 3 vertices, got %d: %w", len(verts), ErrInvalidGeometry)
	}
	area, cx, cy := signedAreaAndCentroid(verts)
	if math.Abs(area) < lin.Epsilon {
		return nil, fmt.Errorf("polygon has zero area: %w", ErrInvalidGeometry)
	}
	local := make([]lin.V2, len(verts))
	for i, v := range verts {
		local[i] = lin.V2Of(v.X-cx, v.Y-cy)
	}
	if area < 0 {
		reverse(local)
	}
	if !isConvex(local) {
		return nil, fmt.Errorf("polygon is not convex: %w", ErrInvalidGeometry)
	}
	p := &Polygon{
		local: local,
		norms: make([]lin.V2, len(local)),
		world: make([]lin.V2, len(local)),
	}
	p.computeNormals()
	return p, nil
}

func reverse(v []lin.V2) {
	for i, j := 0, len(v)-1; i < j; i, j = i+1, j-1 {
		v[i], v[j] = v[j], v[i]
	}
}

// signedAreaAndCentroid returns the polygon's signed area (positive for
// CCW winding in a +Y-up sense) and its centroid, using the standard
// shoelace-based polygon centroid formula.
func signedAreaAndCentroid(v []lin.V2) (area, cx, cy float64) {
	n := len(v)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := v[i].X*v[j].Y - v[j].X*v[i].Y
		area += cross
		cx += (v[i].X + v[j].X) * cross
		cy += (v[i].Y + v[j].Y) * cross
	}
	area *= 0.5
	if math.Abs(area) < lin.Epsilon {
		return area, 0, 0
	}
	cx /= 6 * area
	cy /= 6 * area
	return area, cx, cy
}

// isConvex returns true if consecutive edge cross products all share sign
// (allowing near-zero/collinear edges).
func isConvex(v []lin.V2) bool {
	n := len(v)
	sign := 0.0
	for i := 0; i < n; i++ {
		a, b, c := v[i], v[(i+1)%n], v[(i+2)%n]
		e1 := lin.V2Of(b.X-a.X, b.Y-a.Y)
		e2 := lin.V2Of(c.X-b.X, c.Y-b.Y)
		cross := e1.Cross(&e2)
		if math.Abs(cross) < lin.Epsilon {
			continue
		}
		if sign == 0 {
			sign = math.Copysign(1, cross)
		} else if math.Copysign(1, cross) != sign {
			return false
		}
	}
	return true
}

func (p *Polygon) computeNormals() {
	n := len(p.local)
	for i := 0; i < n; i++ {
		a, b := p.local[i], p.local[(i+1)%n]
		edge := lin.V2Of(b.X-a.X, b.Y-a.Y)
		// outward normal for CCW winding in +Y-down screen space.
		p.norms[i] = lin.V2Of(edge.Y, -edge.X)
		p.norms[i].Unit(&p.norms[i])
	}
}

func (p *Polygon) Kind() ShapeKind { return KindPolygon }

func (p *Polygon) LocalVertices() []lin.V2 {
	out := make([]lin.V2, len(p.local))
	copy(out, p.local)
	return out
}

// Normals returns the shape's local-space outward edge normals, one per
// edge starting at vertex i.
func (p *Polygon) Normals() []lin.V2 { return p.norms }

func (p *Polygon) Vertices(center *lin.V2, angle float64) []lin.V2 {
	for i, lv := range p.local {
		p.world[i].Rotate(&lv, angle)
		p.world[i].Add(&p.world[i], center)
	}
	return p.world
}

// WorldNormal returns edge i's outward normal transformed by angle.
func (p *Polygon) WorldNormal(i int, angle float64, out *lin.V2) *lin.V2 {
	return out.Rotate(&p.norms[i], angle)
}

func (p *Polygon) Aabb(center *lin.V2, angle float64, ab *AABB) *AABB {
	verts := p.Vertices(center, angle)
	ab.Min = verts[0]
	ab.Max = verts[0]
	for _, v := range verts[1:] {
		if v.X < ab.Min.X {
			ab.Min.X = v.X
		}
		if v.Y < ab.Min.Y {
			ab.Min.Y = v.Y
		}
		if v.X > ab.Max.X {
			ab.Max.X = v.X
		}
		if v.Y > ab.Max.Y {
			ab.Max.Y = v.Y
		}
	}
	return ab
}

func (p *Polygon) Area() float64 {
	area, _, _ := signedAreaAndCentroid(p.local)
	return math.Abs(area)
}

// Inertia uses the standard polygon moment-of-inertia formula about the
// centroid (which is the local origin by construction).
func (p *Polygon) Inertia(mass float64) float64 {
	var numer, denom float64
	n := len(p.local)
	for i := 0; i < n; i++ {
		a, b := p.local[i], p.local[(i+1)%n]
		cross := math.Abs(a.Cross(&b))
		term := a.Dot(&a) + a.Dot(&b) + b.Dot(&b)
		numer += cross * term
		denom += cross
	}
	if denom < lin.Epsilon {
		return 0
	}
	return mass / 6.0 * (numer / denom)
}

func (p *Polygon) PointIn(center *lin.V2, angle float64, pt *lin.V2) bool {
	verts := p.Vertices(center, angle)
	inside := false
	n := len(verts)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := verts[i], verts[j]
		if (vi.Y > pt.Y) != (vj.Y > pt.Y) {
			xInt := (vj.X-vi.X)*(pt.Y-vi.Y)/(vj.Y-vi.Y) + vi.X
			if pt.X < xInt {
				inside = !inside
			}
		}
	}
	return inside
}

func (p *Polygon) Width() float64 {
	var ab AABB
	zero := lin.V2{}
	p.Aabb(&zero, 0, &ab)
	return ab.Max.X - ab.Min.X
}

func (p *Polygon) Height() float64 {
	var ab AABB
	zero := lin.V2{}
	p.Aabb(&zero, 0, &ab)
	return ab.Max.Y - ab.Min.Y
}
