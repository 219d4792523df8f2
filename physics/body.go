// Copyright © 2026 Ironvale Software
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

// body.go holds the per-body simulation state: pose, motion, inertial
// properties, material, flags, cached AABB, contact caches, and the
// connected-object set used to skip broad-phase pairs across a
// constraint. Bodies are owned by the World's arena (see id.go,
// world.go) and referenced everywhere else by BodyID.

import (
	"github.com/ironvale/phys2d/math/lin"
)

// InfiniteMass is the inverse-mass cutoff: a body whose mass would imply
// inv_mass at or below 1/InfiniteMass is treated as having zero inverse
// mass for solver purposes.
const InfiniteMass = 1e6

// Contact records one side of a cached contact between this body and
// another: the contact point and the surface normal pointing from this
// body toward the other.
type Contact struct {
	Point  lin.V2
	Normal lin.V2
}

// Body is a single rigid body owned by a World.
type Body struct {
	id    BodyID
	shape Shape

	// Pose.
	center     lin.V2
	centerPrev lin.V2
	angle      float64

	// Motion.
	velocity        lin.V2
	angularVelocity float64

	// Inertial.
	mass       float64
	invMass    float64
	inertia    float64
	invInertia float64

	// Material.
	restitution float64
	friction    float64

	// Flags.
	locked    bool
	canRotate bool
	canSleep  bool
	sleeping  bool
	sleepTime float64 // accumulated seconds of continuous sub-threshold motion.

	aabb AABB

	contactsCurrent  map[BodyID]Contact
	contactsPrevious map[BodyID]Contact

	connected map[BodyID]struct{}

	constraints []ConstraintID

	userData any
}

// ID returns this body's stable identity.
func (b *Body) ID() BodyID { return b.id }

// Shape returns the body's collision shape.
func (b *Body) Shape() Shape { return b.shape }

// Center returns the body's world-space center.
func (b *Body) Center() lin.V2 { return b.center }

// Angle returns the body's orientation in radians.
func (b *Body) Angle() float64 { return b.angle }

// Velocity returns the body's current linear velocity.
func (b *Body) Velocity() lin.V2 { return b.velocity }

// AngularVelocity returns the body's current angular velocity.
func (b *Body) AngularVelocity() float64 { return b.angularVelocity }

// AABB returns the body's cached world-space bounding box.
func (b *Body) AABB() AABB { return b.aabb }

// Mass returns the body's mass (for display; locked bodies still report
// their assigned mass even though they behave as infinitely massive).
func (b *Body) Mass() float64 { return b.mass }

// Locked returns true if the body is immovable.
func (b *Body) Locked() bool { return b.locked }

// Sleeping returns true if the body is currently asleep.
func (b *Body) Sleeping() bool { return b.sleeping }

// CanRotate returns whether integration applies angular motion to this body.
func (b *Body) CanRotate() bool { return b.canRotate }

// UserData returns the opaque value set with SetUserData, nil if unset.
func (b *Body) UserData() any { return b.userData }

// SetUserData attaches an opaque value to the body (e.g. a host-side
// entity id) for the caller's own bookkeeping; the engine never reads it.
func (b *Body) SetUserData(v any) { b.userData = v }

// effInvMass returns the inverse mass to use in solver formulas: zero for
// locked bodies regardless of their assigned mass.
func (b *Body) effInvMass() float64 {
	if b.locked {
		return 0
	}
	return b.invMass
}

// effInvInertia returns the inverse inertia to use in solver formulas:
// zero for locked or non-rotating bodies.
func (b *Body) effInvInertia() float64 {
	if b.locked || !b.canRotate {
		return 0
	}
	return b.invInertia
}

// setMass derives invMass/inertia/invInertia from the given mass. A mass
// at or above InfiniteMass collapses to zero inverse mass/inertia.
func (b *Body) setMass(mass float64) {
	b.mass = mass
	if mass <= 0 || mass >= InfiniteMass {
		b.invMass = 0
	} else {
		b.invMass = 1.0 / mass
	}
	b.inertia = b.shape.Inertia(mass)
	if b.inertia <= lin.Epsilon || b.invMass == 0 {
		b.invInertia = 0
	} else {
		b.invInertia = 1.0 / b.inertia
	}
}

// wake clears the sleep flag and timer. Locked bodies are never put to
// sleep in the first place, so waking one is a no-op.
func (b *Body) wake() {
	if b.locked {
		return
	}
	if b.sleeping {
		b.sleeping = false
	}
	b.sleepTime = 0
}

// sleep puts the body to sleep, zeroing its velocities.
func (b *Body) sleep() {
	b.sleeping = true
	b.velocity.SetS(0, 0)
	b.angularVelocity = 0
}

// refreshAABB recomputes the cached world AABB from the current pose.
func (b *Body) refreshAABB() { b.shape.Aabb(&b.center, b.angle, &b.aabb) }

// velocityAt returns the linear velocity of the body's material point at
// world-space offset r from its center: v + omega x r.
func (b *Body) velocityAt(r *lin.V2, out *lin.V2) *lin.V2 {
	var perp lin.V2
	perp.CrossScalar(b.angularVelocity, r)
	return out.Add(&b.velocity, &perp)
}
