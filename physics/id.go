// Copyright © 2026 Ironvale Software
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

// Bodies and constraints form a cyclic graph: constraints reference two
// bodies, bodies reference their constraints. Rather than keep that graph
// alive with Go pointers (which would fight the removal cascade and make
// "is this body still live" an ownership question), both are identified by
// generational indices into arenas owned by the World. A stale id (its
// generation no longer matches the slot) is simply not found — no
// dangling pointer, no panic.

// BodyID is an opaque, stable reference to a Body. The zero value never
// refers to a live body.
type BodyID struct {
	index uint32
	gen   uint32
}

// ConstraintID is an opaque, stable reference to a Constraint.
type ConstraintID struct {
	index uint32
	gen   uint32
}

// Valid returns false for the zero-value id, a convenience for callers
// that use BodyID{} as a "no body" sentinel.
func (id BodyID) Valid() bool { return id.gen != 0 }

// Valid returns false for the zero-value id.
func (id ConstraintID) Valid() bool { return id.gen != 0 }
