// Copyright © 2026 Ironvale Software
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import "errors"

// Creation-time error kinds. Runtime degeneracies are resolved locally and
// never surfaced as errors — see collision.go and world.go.
var (
	// ErrInvalidGeometry: polygon with < 3 vertices, a non-convex or
	// zero-area polygon, or a non-positive circle radius/box extent.
	ErrInvalidGeometry = errors.New("physics: invalid geometry")

	// ErrInvalidConstraint: constraint referencing the same body twice,
	// or a body that has already been removed from the world.
	ErrInvalidConstraint = errors.New("physics: invalid constraint")

	// ErrInvalidMass: non-finite mass or inertia. No constructor in this
	// package returns it; a non-finite Mass option is not rejected.
	ErrInvalidMass = errors.New("physics: invalid mass")
)
