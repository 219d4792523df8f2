// Copyright © 2026 Ironvale Software
// Use is governed by a BSD-style license found in the LICENSE file.

// Package lin provides the 2D linear math used by the physics engine:
// vectors, rotation helpers, and small scalar utilities. It favours
// pointer-receiver methods that mutate and return the receiver so that
// hot loops (broad phase, narrow phase, the solver) can reuse scratch
// vectors instead of allocating.
package lin

import "math"

// Various scalar constants used throughout the physics package.
const (
	PI     float64 = math.Pi
	PIx2   float64 = PI * 2
	HalfPi float64 = PIx2 * 0.25

	// Epsilon is used to distinguish when a float is close enough to a
	// number (usually zero) to treat it as that number.
	Epsilon float64 = 0.000001

	// Large is a stand-in for "no limit" where math.MaxFloat64 would
	// otherwise invite overflow in subsequent arithmetic.
	Large float64 = math.MaxFloat32
)

// Rad converts degrees to radians.
func Rad(deg float64) float64 { return deg * PIx2 / 360.0 }

// Deg converts radians to degrees.
func Deg(rad float64) float64 { return rad * 360.0 / PIx2 }

// Aeq (~=) almost-equals returns true if a and b are close enough that
// the difference is floating point noise.
func Aeq(a, b float64) bool { return math.Abs(a-b) < Epsilon }

// AeqZ (~=) almost-equals-zero returns true if x is close enough to zero
// that it makes no difference.
func AeqZ(x float64) bool { return math.Abs(x) < Epsilon }

// Clamp returns x restricted to the closed interval [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Sign returns -1, 0, or 1 depending on the sign of x.
func Sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// NormalizeAngle reduces an angle in radians to (-PI, PI].
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, PIx2)
	if a <= -PI {
		a += PIx2
	} else if a > PI {
		a -= PIx2
	}
	return a
}
