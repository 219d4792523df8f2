// Copyright © 2026 Ironvale Software
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

// events.go queues contact add/remove notifications instead of invoking
// subscriber code during resolution: records are appended to a queue
// drained between ticks, preserving a single-threaded, non-reentrant
// contract.

import "github.com/ironvale/phys2d/math/lin"

// ContactEventKind distinguishes an added from a removed contact.
type ContactEventKind int

const (
	ContactAdded ContactEventKind = iota
	ContactRemoved
)

// ContactEvent is one entry in the queue drained by World.DrainEvents.
type ContactEvent struct {
	Kind   ContactEventKind
	Body   BodyID
	Other  BodyID
	Point  lin.V2
	Normal lin.V2
}

// eventQueue is a reusable slice-backed queue owned by the World.
type eventQueue struct {
	events []ContactEvent
}

func (q *eventQueue) push(kind ContactEventKind, body, other BodyID, point, normal lin.V2) {
	q.events = append(q.events, ContactEvent{
		Kind: kind, Body: body, Other: other, Point: point, Normal: normal,
	})
}

// drain returns the queued events and clears the queue (retaining capacity).
func (q *eventQueue) drain() []ContactEvent {
	out := q.events
	q.events = q.events[:0]
	return out
}
