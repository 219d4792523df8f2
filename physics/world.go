// Copyright © 2026 Ironvale Software
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

// world.go is the public entry point: body/constraint creation, the fixed
// timestep tick, point queries and active-body operations, and the
// removal cascade. Bodies and constraints live in generational-index
// arenas, dense slot slices keyed by index with a generation counter per
// slot, rather than being referenced by pointer, so the dense slots
// themselves carry a generation for reuse after removal.

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/ironvale/phys2d/math/lin"
)

const (
	fixedDt        = 1.0 / 144.0
	substeps       = 8
	maxAccumulator = 0.1

	outOfBounds = 2000.0

	linearVelocityCutoff  = 1e-3
	angularVelocityCutoff = 1e-3
	angularDampingFactor  = 0.999

	defaultRestitution = 0.0
	defaultFriction    = 0.2
	defaultBreakThresh = 1e9 // effectively unbreakable unless overridden.
)

// World owns every Body and Constraint and drives the simulation.
type World struct {
	config Config

	bodySlots   []*Body
	bodyGen     []uint32
	freeBodyIdx []uint32

	constraintSlots   []*Constraint
	constraintGen     []uint32
	freeConstraintIdx []uint32

	broad           *broadPhase
	manifolds       manifoldPool
	activeManifolds []*Manifold
	events          eventQueue

	attractors map[BodyID]float64

	pendingBodyRemoval       []BodyID
	pendingConstraintRemoval []ConstraintID

	accumulator float64
}

// NewWorld creates a World, applying opts on top of the package defaults.
func NewWorld(opts ...Option) *World {
	cfg := configDefaults
	for _, o := range opts {
		o(&cfg)
	}
	return &World{
		config:     cfg,
		broad:      newBroadPhase(cfg.CellSize),
		attractors: make(map[BodyID]float64),
	}
}

// Config returns the world's current configuration.
func (w *World) Config() Config { return w.config }

// SetPaused pauses or resumes the world; a paused world's Tick is a no-op.
func (w *World) SetPaused(paused bool) { w.config.Paused = paused }

// Paused reports whether the world is currently paused.
func (w *World) Paused() bool { return w.config.Paused }

// ============================================================================
// arenas

func (w *World) allocBodySlot(b *Body) BodyID {
	if n := len(w.freeBodyIdx); n > 0 {
		idx := w.freeBodyIdx[n-1]
		w.freeBodyIdx = w.freeBodyIdx[:n-1]
		w.bodyGen[idx]++
		w.bodySlots[idx] = b
		id := BodyID{index: idx, gen: w.bodyGen[idx]}
		b.id = id
		return id
	}
	idx := uint32(len(w.bodySlots))
	w.bodySlots = append(w.bodySlots, b)
	w.bodyGen = append(w.bodyGen, 1)
	id := BodyID{index: idx, gen: 1}
	b.id = id
	return id
}

func (w *World) freeBody(id BodyID) {
	if _, ok := w.body(id); !ok {
		return
	}
	delete(w.attractors, id)
	w.bodySlots[id.index] = nil
	w.freeBodyIdx = append(w.freeBodyIdx, id.index)
}

// body resolves a BodyID to its live Body, following the generational-index
// rules: a stale id (mismatched generation) or a freed slot is simply not
// found.
func (w *World) body(id BodyID) (*Body, bool) {
	if int(id.index) >= len(w.bodySlots) {
		return nil, false
	}
	b := w.bodySlots[id.index]
	if b == nil || w.bodyGen[id.index] != id.gen {
		return nil, false
	}
	return b, true
}

// liveBodies returns every currently-allocated body. Order follows arena
// slot order (stable within a run, not across removal/reuse).
func (w *World) liveBodies() []*Body {
	out := make([]*Body, 0, len(w.bodySlots))
	for _, b := range w.bodySlots {
		if b != nil {
			out = append(out, b)
		}
	}
	return out
}

// Bodies returns every currently-allocated body's id.
func (w *World) Bodies() []BodyID {
	out := make([]BodyID, 0, len(w.bodySlots))
	for _, b := range w.bodySlots {
		if b != nil {
			out = append(out, b.id)
		}
	}
	return out
}

func (w *World) allocConstraintSlot(c *Constraint) ConstraintID {
	if n := len(w.freeConstraintIdx); n > 0 {
		idx := w.freeConstraintIdx[n-1]
		w.freeConstraintIdx = w.freeConstraintIdx[:n-1]
		w.constraintGen[idx]++
		w.constraintSlots[idx] = c
		id := ConstraintID{index: idx, gen: w.constraintGen[idx]}
		c.id = id
		return id
	}
	idx := uint32(len(w.constraintSlots))
	w.constraintSlots = append(w.constraintSlots, c)
	w.constraintGen = append(w.constraintGen, 1)
	id := ConstraintID{index: idx, gen: 1}
	c.id = id
	return id
}

func (w *World) freeConstraint(id ConstraintID) {
	if int(id.index) >= len(w.constraintSlots) {
		return
	}
	w.constraintSlots[id.index] = nil
	w.freeConstraintIdx = append(w.freeConstraintIdx, id.index)
}

func (w *World) constraint(id ConstraintID) (*Constraint, bool) {
	if int(id.index) >= len(w.constraintSlots) {
		return nil, false
	}
	c := w.constraintSlots[id.index]
	if c == nil || w.constraintGen[id.index] != id.gen {
		return nil, false
	}
	return c, true
}

func (w *World) liveConstraints() []*Constraint {
	out := make([]*Constraint, 0, len(w.constraintSlots))
	for _, c := range w.constraintSlots {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// ============================================================================
// body creation

// BodyOption configures material/flags at creation time, following the same
// functional-options idiom as World's Option (config.go).
type BodyOption func(*Body)

// Mass overrides the default (shape area) mass. A mass <= 0 falls back to
// the shape's area; a mass >= InfiniteMass collapses the body's inverse
// mass/inertia to zero.
func Mass(m float64) BodyOption { return func(b *Body) { b.setMass(m) } }

// Locked makes the body immovable: infinite effective mass and inertia,
// never integrated, never put to sleep (it is already motionless).
func Locked() BodyOption {
	return func(b *Body) {
		b.locked = true
		b.canSleep = false
	}
}

// Restitution sets the body's bounciness coefficient, clamped to [0,1].
func Restitution(e float64) BodyOption {
	return func(b *Body) { b.restitution = lin.Clamp(e, 0, 1) }
}

// FrictionCoef sets the body's Coulomb friction coefficient, clamped to [0,1].
func FrictionCoef(f float64) BodyOption {
	return func(b *Body) { b.friction = lin.Clamp(f, 0, 1) }
}

// NoRotate prevents integration and response from ever changing the body's
// angle or angular velocity.
func NoRotate() BodyOption {
	return func(b *Body) { b.canRotate = false }
}

// NoSleep excludes the body from the sleep state machine; it stays Awake
// regardless of how little it moves. The removal cascade does not remember
// this setting: once the body's last constraint is removed, it may sleep
// again.
func NoSleep() BodyOption {
	return func(b *Body) { b.canSleep = false }
}

func newBodyFromShape(shape Shape, center lin.V2, angle float64, opts []BodyOption) *Body {
	b := &Body{
		shape:       shape,
		center:      center,
		centerPrev:  center,
		angle:       angle,
		canRotate:   true,
		canSleep:    true,
		restitution: defaultRestitution,
		friction:    defaultFriction,
	}
	b.setMass(shape.Area())
	for _, o := range opts {
		o(b)
	}
	if b.mass <= 0 {
		b.setMass(shape.Area())
	}
	b.refreshAABB()
	return b
}

// CreateCircle creates a circular body. Mass defaults to the circle's area
// unless overridden with Mass(); Locked() makes it immovable.
func (w *World) CreateCircle(center lin.V2, radius float64, opts ...BodyOption) (BodyID, error) {
	shape, err := NewCircle(radius)
	if err != nil {
		return BodyID{}, err
	}
	b := newBodyFromShape(shape, center, 0, opts)
	return w.allocBodySlot(b), nil
}

// CreateBox creates a rectangular body of the given full width/height.
func (w *World) CreateBox(center lin.V2, width, height, angle float64, opts ...BodyOption) (BodyID, error) {
	shape, err := NewBox(width, height)
	if err != nil {
		return BodyID{}, err
	}
	b := newBodyFromShape(shape, center, angle, opts)
	return w.allocBodySlot(b), nil
}

// CreatePolygon creates a convex polygon body from local-space vertices.
func (w *World) CreatePolygon(center lin.V2, verts []lin.V2, angle float64, opts ...BodyOption) (BodyID, error) {
	shape, err := NewPolygon(verts)
	if err != nil {
		return BodyID{}, err
	}
	b := newBodyFromShape(shape, center, angle, opts)
	return w.allocBodySlot(b), nil
}

// CreateConcavePolygon decomposes a (possibly non-convex) simple polygon
// into convex pieces, creates one Body per piece, and welds adjacent
// pieces together. Returns the ids of all child bodies.
func (w *World) CreateConcavePolygon(center lin.V2, verts []lin.V2, opts ...BodyOption) ([]BodyID, error) {
	pieces, err := decomposeConcave(verts)
	if err != nil {
		return nil, err
	}
	ids := make([]BodyID, 0, len(pieces))
	bodies := make([]*Body, 0, len(pieces))
	for _, piece := range pieces {
		// piece vertices are in the compound's local frame; NewPolygon
		// re-centers them around their own centroid, so recover that
		// centroid here to place the body correctly in world space.
		_, cx, cy := signedAreaAndCentroid(piece)
		centroid := lin.V2Of(cx, cy)

		shape, err := NewPolygon(piece)
		if err != nil {
			return nil, err
		}
		var worldCenter lin.V2
		worldCenter.Add(&center, &centroid)
		b := newBodyFromShape(shape, worldCenter, 0, opts)
		ids = append(ids, w.allocBodySlot(b))
		bodies = append(bodies, b)
	}
	welds := weldPlan(pieces)
	for _, e := range welds {
		var anchorLocal lin.V2
		anchorLocal.Add(&e.sharedA, &e.sharedB)
		anchorLocal.Scale(&anchorLocal, 0.5)
		var anchorWorld lin.V2
		anchorWorld.Add(&center, &anchorLocal)

		var localA, localB lin.V2
		localA.Sub(&anchorWorld, &bodies[e.i].center)
		localB.Sub(&anchorWorld, &bodies[e.j].center)
		if _, err := w.CreateWeld(ids[e.i], localA, ids[e.j], localB, false, 0); err != nil {
			slog.Error("failed to weld decomposed concave polygon piece", "error", err)
		}
	}
	return ids, nil
}

// ============================================================================
// constraints

// CreateWeld rigidly fixes two bodies' anchors and relative angle.
// anchorA/anchorB are in each body's local frame.
func (w *World) CreateWeld(a BodyID, anchorA lin.V2, b BodyID, anchorB lin.V2, canBreak bool, breakThreshold float64) (ConstraintID, error) {
	return w.createConstraint(KindWeld, a, anchorA, b, anchorB, canBreak, breakThreshold)
}

// CreateAxis pins two bodies' anchors together, leaving relative rotation
// free (a revolute joint).
func (w *World) CreateAxis(a BodyID, anchorA lin.V2, b BodyID, anchorB lin.V2, canBreak bool, breakThreshold float64) (ConstraintID, error) {
	return w.createConstraint(KindAxis, a, anchorA, b, anchorB, canBreak, breakThreshold)
}

func (w *World) createConstraint(kind ConstraintKind, aID BodyID, anchorA lin.V2, bID BodyID, anchorB lin.V2, canBreak bool, breakThreshold float64) (ConstraintID, error) {
	a, okA := w.body(aID)
	b, okB := w.body(bID)
	if !okA || !okB {
		return ConstraintID{}, fmt.Errorf("constraint endpoint does not exist: %w", ErrInvalidConstraint)
	}
	if breakThreshold <= 0 {
		breakThreshold = defaultBreakThresh
	}
	c, err := newConstraint(kind, a, anchorA, b, anchorB, canBreak, breakThreshold)
	if err != nil {
		return ConstraintID{}, err
	}
	id := w.allocConstraintSlot(c)

	a.constraints = append(a.constraints, id)
	b.constraints = append(b.constraints, id)
	if a.connected == nil {
		a.connected = map[BodyID]struct{}{}
	}
	if b.connected == nil {
		b.connected = map[BodyID]struct{}{}
	}
	a.connected[bID] = struct{}{}
	b.connected[aID] = struct{}{}
	a.canSleep = false
	b.canSleep = false
	return id, nil
}

// ============================================================================
// gravity attractors

// AddAttractor marks a body as a point-gravity source with the given
// strength; every other body accelerates toward it by strength/distance²
// per second.
func (w *World) AddAttractor(id BodyID, strength float64) error {
	if _, ok := w.body(id); !ok {
		return fmt.Errorf("attractor body does not exist: %w", ErrInvalidConstraint)
	}
	w.attractors[id] = strength
	return nil
}

// RemoveAttractor stops id acting as a gravity source.
func (w *World) RemoveAttractor(id BodyID) { delete(w.attractors, id) }

// ============================================================================
// removal

// Remove enqueues a body for removal; it is actually dropped from the
// world between fixed steps.
func (w *World) Remove(id BodyID) {
	w.pendingBodyRemoval = append(w.pendingBodyRemoval, id)
}

// processRemovalQueue drains the body and constraint removal queues,
// cascading from bodies to their constraints.
func (w *World) processRemovalQueue() {
	if len(w.pendingBodyRemoval) == 0 && len(w.pendingConstraintRemoval) == 0 {
		return
	}
	constraintQueue := append([]ConstraintID{}, w.pendingConstraintRemoval...)
	w.pendingConstraintRemoval = w.pendingConstraintRemoval[:0]

	for _, bid := range w.pendingBodyRemoval {
		b, ok := w.body(bid)
		if !ok {
			continue
		}
		constraintQueue = append(constraintQueue, b.constraints...)
		w.freeBody(bid)
	}
	w.pendingBodyRemoval = w.pendingBodyRemoval[:0]

	for _, cid := range constraintQueue {
		c, ok := w.constraint(cid)
		if !ok {
			continue
		}
		if a, ok := w.body(c.a); ok {
			delete(a.connected, c.b)
			a.constraints = removeConstraintID(a.constraints, cid)
			if len(a.connected) == 0 {
				a.canSleep = true
			}
		}
		if b, ok := w.body(c.b); ok {
			delete(b.connected, c.a)
			b.constraints = removeConstraintID(b.constraints, cid)
			if len(b.connected) == 0 {
				b.canSleep = true
			}
		}
		w.freeConstraint(cid)
	}
}

func removeConstraintID(list []ConstraintID, id ConstraintID) []ConstraintID {
	for i, cid := range list {
		if cid == id {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// ============================================================================
// queries and active-body operations

// Body returns the live Body for id, or nil if it no longer exists.
func (w *World) Body(id BodyID) *Body {
	b, ok := w.body(id)
	if !ok {
		return nil
	}
	return b
}

// PickBody returns the id of the first live body (in arena order) whose
// shape contains the world point p.
func (w *World) PickBody(p lin.V2) (BodyID, bool) {
	for _, b := range w.bodySlots {
		if b == nil {
			continue
		}
		if b.shape.PointIn(&b.center, b.angle, &p) {
			return b.id, true
		}
	}
	return BodyID{}, false
}

// Grab performs a velocity-based soft grab at the world point p against
// body id: it sets the body's velocity to (center - p) * -10 and wakes it,
// with no joint created.
func (w *World) Grab(id BodyID, p lin.V2) error {
	b, ok := w.body(id)
	if !ok {
		return fmt.Errorf("grab: body does not exist: %w", ErrInvalidConstraint)
	}
	var d lin.V2
	d.Sub(&b.center, &p)
	d.Scale(&d, -10)
	b.velocity = d
	b.wake()
	return nil
}

// SetVelocity sets a body's linear velocity directly and wakes it.
func (w *World) SetVelocity(id BodyID, v lin.V2) error {
	b, ok := w.body(id)
	if !ok {
		return fmt.Errorf("set velocity: body does not exist: %w", ErrInvalidConstraint)
	}
	if b.locked {
		return nil
	}
	b.velocity = v
	b.wake()
	return nil
}

// AddVelocity adds dv to a body's linear velocity and wakes it.
func (w *World) AddVelocity(id BodyID, dv lin.V2) error {
	b, ok := w.body(id)
	if !ok {
		return fmt.Errorf("add velocity: body does not exist: %w", ErrInvalidConstraint)
	}
	if b.locked {
		return nil
	}
	b.velocity.Add(&b.velocity, &dv)
	b.wake()
	return nil
}

// Wake wakes a sleeping body (a no-op for locked or already-awake bodies).
func (w *World) Wake(id BodyID) {
	if b, ok := w.body(id); ok {
		b.wake()
	}
}

// SetLocked locks or unlocks a body. Locking zeroes its velocity.
func (w *World) SetLocked(id BodyID, locked bool) error {
	b, ok := w.body(id)
	if !ok {
		return fmt.Errorf("set locked: body does not exist: %w", ErrInvalidConstraint)
	}
	b.locked = locked
	if locked {
		b.velocity.SetS(0, 0)
		b.angularVelocity = 0
		b.canSleep = false
	}
	return nil
}

// FreezeAll zeroes the velocity and angular velocity of every non-locked
// body, leaving poses untouched.
func (w *World) FreezeAll() {
	for _, b := range w.bodySlots {
		if b == nil || b.locked {
			continue
		}
		b.velocity.SetS(0, 0)
		b.angularVelocity = 0
	}
}

// DrainEvents returns and clears the queued contact-added/contact-removed
// events accumulated since the last call.
func (w *World) DrainEvents() []ContactEvent { return w.events.drain() }

// ============================================================================
// tick

// Tick advances the simulation by elapsed real seconds. A paused world
// ignores the call entirely. Time is scaled by the configured
// TimeScale (clamped to [0.1, 2.0]) and accumulated in fixed `fixedDt`
// increments, with the accumulator itself clamped to avoid a spiral of
// death under sustained slow calls.
func (w *World) Tick(elapsed float64) {
	if w.config.Paused {
		return
	}
	scale := lin.Clamp(w.config.TimeScale, 0.1, 2.0)
	w.accumulator += elapsed * scale
	if w.accumulator > maxAccumulator {
		w.accumulator = maxAccumulator
	}
	for w.accumulator >= fixedDt {
		w.broad.reset()
		for _, b := range w.bodySlots {
			if b != nil {
				w.broad.insert(b.id, &b.aabb)
			}
		}
		// Sleeping bodies still need to be present in the hash: an awake
		// body can collide into one that's asleep. generate() is what
		// skips the case where both sides of a pair are asleep.
		pairs := w.broad.generate(w)
		w.updatePhysics(pairs)
		w.processRemovalQueue()
		w.accumulator -= fixedDt
	}
}

// updatePhysics runs the substep loop: each of N substeps re-runs narrow
// phase over the step's broad-phase pairs, resolves contacts, solves
// constraints, then integrates every body by dt/N. Contact events are
// only diffed/emitted on the final substep.
func (w *World) updatePhysics(pairs []pairKey) {
	sub := fixedDt / float64(substeps)
	for i := 0; i < substeps; i++ {
		manifolds := w.narrowPhase(pairs)
		for _, m := range manifolds {
			resolveContact(w, m, w.config.WakeImpulse)
		}
		for _, c := range w.liveConstraints() {
			c.solve(w)
			if c.isBroken {
				w.pendingConstraintRemoval = append(w.pendingConstraintRemoval, c.id)
			}
		}
		w.integrate(sub)
	}
	w.diffContactEvents()
	w.updateSleepAndBounds(fixedDt)
}

// integrate applies gravity (global + attractors), linear/angular damping,
// and pose integration to every non-locked, non-sleeping body.
func (w *World) integrate(dt float64) {
	gravity := w.config.Gravity
	gravity.Scale(&gravity, w.config.GravityScale)

	for _, b := range w.bodySlots {
		if b == nil || b.locked || b.sleeping {
			continue
		}
		accel := gravity
		for attractorID, strength := range w.attractors {
			if attractorID == b.id {
				continue
			}
			att, ok := w.body(attractorID)
			if !ok {
				continue
			}
			var dir lin.V2
			dir.Sub(&att.center, &b.center)
			distSqr := dir.LenSqr()
			if distSqr < lin.Epsilon {
				continue
			}
			dist := math.Sqrt(distSqr)
			dir.Scale(&dir, strength/(distSqr*dist))
			accel.Add(&accel, &dir)
		}

		var dv lin.V2
		dv.Scale(&accel, dt)
		b.velocity.Add(&b.velocity, &dv)

		b.velocity.X = applyDamping(b.velocity.X, w.config.Friction, dt)
		b.velocity.Y = applyDamping(b.velocity.Y, w.config.Friction, dt)
		if b.velocity.LenSqr() < linearVelocityCutoff*linearVelocityCutoff {
			b.velocity.SetS(0, 0)
		}

		var dx lin.V2
		dx.Scale(&b.velocity, dt)
		b.center.Add(&b.center, &dx)

		if b.canRotate {
			b.angle += b.angularVelocity * dt
			b.angularVelocity *= angularDampingFactor
			if absF(b.angularVelocity) < angularVelocityCutoff {
				b.angularVelocity = 0
			}
		}
		b.refreshAABB()
	}
}

// applyDamping subtracts friction*dt from v toward zero, never overshooting
// past zero.
func applyDamping(v, friction, dt float64) float64 {
	d := lin.Sign(v) * friction * dt
	if absF(d) >= absF(v) {
		return 0
	}
	return v - d
}

// updateSleepAndBounds runs the sleep state machine and the out-of-bounds
// check once per full fixed step.
func (w *World) updateSleepAndBounds(dt float64) {
	for _, b := range w.bodySlots {
		if b == nil {
			continue
		}
		if math.Abs(b.center.X) > outOfBounds || math.Abs(b.center.Y) > outOfBounds {
			w.Remove(b.id)
			continue
		}
		if b.locked {
			continue
		}
		if !b.sleeping {
			var delta lin.V2
			delta.Sub(&b.center, &b.centerPrev)
			disp := delta.Len()
			if b.canSleep && disp < w.config.LinearSleep && absF(b.angularVelocity) < w.config.AngularSleep {
				b.sleepTime += dt
				if b.sleepTime >= w.config.SleepTime {
					b.sleep()
				}
			} else {
				b.sleepTime = 0
			}
		}
		b.centerPrev = b.center
	}
}
