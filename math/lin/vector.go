// Copyright © 2026 Ironvale Software
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

import "math"

// V2 is a 2 element vector used for both points and directions.
// +X is right, +Y is down, matching the engine's screen-space convention.
type V2 struct {
	X float64
	Y float64
}

// NewV2 returns a zeroed vector.
func NewV2() *V2 { return &V2{} }

// V2Of is a convenience constructor for a vector literal.
func V2Of(x, y float64) V2 { return V2{x, y} }

// Eq (==) returns true if v and a have identical elements.
func (v *V2) Eq(a *V2) bool { return v.X == a.X && v.Y == a.Y }

// Aeq (~=) returns true if v and a are equal within Epsilon.
func (v *V2) Aeq(a *V2) bool { return Aeq(v.X, a.X) && Aeq(v.Y, a.Y) }

// AeqZ (~=0) returns true if v has essentially zero length.
func (v *V2) AeqZ() bool { return v.LenSqr() < Epsilon*Epsilon }

// SetS (=) sets v's elements directly. Returns v.
func (v *V2) SetS(x, y float64) *V2 {
	v.X, v.Y = x, y
	return v
}

// Set (=, copy) sets v to have the same elements as a. Returns v.
func (v *V2) Set(a *V2) *V2 {
	v.X, v.Y = a.X, a.Y
	return v
}

// Add (+) sets v = a + b. Returns v. v may alias a or b.
func (v *V2) Add(a, b *V2) *V2 {
	v.X, v.Y = a.X+b.X, a.Y+b.Y
	return v
}

// Sub (-) sets v = a - b. Returns v. v may alias a or b.
func (v *V2) Sub(a, b *V2) *V2 {
	v.X, v.Y = a.X-b.X, a.Y-b.Y
	return v
}

// Scale sets v = a * s. Returns v. v may alias a.
func (v *V2) Scale(a *V2, s float64) *V2 {
	v.X, v.Y = a.X*s, a.Y*s
	return v
}

// Neg sets v = -a. Returns v.
func (v *V2) Neg(a *V2) *V2 {
	v.X, v.Y = -a.X, -a.Y
	return v
}

// Dot returns the dot product of v and a.
func (v *V2) Dot(a *V2) float64 { return v.X*a.X + v.Y*a.Y }

// Cross returns the 2D cross product (scalar) v.X*a.Y - v.Y*a.X.
func (v *V2) Cross(a *V2) float64 { return v.X*a.Y - v.Y*a.X }

// CrossScalar sets v = s x a, the 2D cross product of a scalar and a
// vector: (-s*a.Y, s*a.X). This is the "perp, scaled" operation used to
// turn an angular velocity into the linear velocity contribution at an
// offset from a body's center.
func (v *V2) CrossScalar(s float64, a *V2) *V2 {
	v.X, v.Y = -s*a.Y, s*a.X
	return v
}

// Perp sets v to the left-hand perpendicular of a: (-a.Y, a.X). Returns v.
func (v *V2) Perp(a *V2) *V2 {
	v.X, v.Y = -a.Y, a.X
	return v
}

// LenSqr returns the squared length of v.
func (v *V2) LenSqr() float64 { return v.X*v.X + v.Y*v.Y }

// Len returns the length of v.
func (v *V2) Len() float64 { return math.Sqrt(v.LenSqr()) }

// Unit normalizes a into v. If a is near zero length, v is set to (1, 0)
// as an arbitrary unit vector rather than dividing by (near) zero.
// Returns v.
func (v *V2) Unit(a *V2) *V2 {
	l := a.Len()
	if l < Epsilon {
		v.SetS(1, 0)
		return v
	}
	v.Scale(a, 1.0/l)
	return v
}

// Rotate sets v to a rotated by angle radians (CCW in screen space, i.e.
// visually clockwise given the +Y-down convention). Returns v.
func (v *V2) Rotate(a *V2, angle float64) *V2 {
	s, c := math.Sincos(angle)
	x, y := a.X*c-a.Y*s, a.X*s+a.Y*c
	v.X, v.Y = x, y
	return v
}

// Lerp sets v to the linear interpolation of a and b by t in [0,1].
func (v *V2) Lerp(a, b *V2, t float64) *V2 {
	v.X = a.X + (b.X-a.X)*t
	v.Y = a.Y + (b.Y-a.Y)*t
	return v
}
