package ecs

import "github.com/go-gl/mathgl/mgl64"

// EventKind names a collision state change.
type EventKind string

const (
	EventLanded    EventKind = "landed"
	EventCeiling   EventKind = "ceiling"
	EventWall      EventKind = "wall"
	EventDepthWall EventKind = "depth_wall"
	EventSubmerged EventKind = "submerged"
	EventSurfaced  EventKind = "surfaced"
)

// ContactEvent is emitted when a body starts touching terrain on an axis or changes
// its submerged state.
type ContactEvent struct {
	Tick   uint64
	Entity Entity
	Kind   EventKind
	// Normal points from the body towards the obstruction; zero for liquid events.
	Normal mgl64.Vec3
}

// EventQueue is a FIFO of contact events.
type EventQueue struct {
	items []ContactEvent
}

func (q *EventQueue) Push(evt ContactEvent) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all queued events and clears the queue.
func (q *EventQueue) Drain() []ContactEvent {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
