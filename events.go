package obb2d

import (
	"github.com/vectrix2d/obb2d/body"
	"github.com/vectrix2d/obb2d/constraint"
)

// EventType identifies which kind of Event a listener is subscribing to.
type EventType uint8

const (
	ContactBegin EventType = iota
	ContactEnd
)

// Event is implemented by every event type Step can emit.
type Event interface {
	Type() EventType
}

// ContactBeginEvent fires the first step a body pair has a nonempty
// manifold.
type ContactBeginEvent struct {
	Key          constraint.ArbiterKey
	Body1, Body2 *body.Body
}

func (e ContactBeginEvent) Type() EventType { return ContactBegin }

// ContactEndEvent fires the step a previously-contacting body pair's
// manifold becomes empty. World.Clear discards contact state without
// emitting ContactEnd events.
type ContactEndEvent struct {
	Key          constraint.ArbiterKey
	Body1, Body2 *body.Body
}

func (e ContactEndEvent) Type() EventType { return ContactEnd }

// EventListener is a callback registered with Events.Subscribe.
type EventListener func(event Event)

// Events tracks which body pairs were in contact last step versus this
// step, turning the transition into ContactBegin/ContactEnd events. It
// keys on constraint.ArbiterKey, which World already canonicalizes by
// monotonic body index (see World.AddBody), so no pointer arithmetic is
// needed to get a stable, ordered pair identity.
type Events struct {
	listeners map[EventType][]EventListener

	buffer []Event

	activeLastStep map[constraint.ArbiterKey]bool
	activeThisStep map[constraint.ArbiterKey]bool
}

// NewEvents returns an Events with no listeners and empty contact state.
func NewEvents() Events {
	return Events{
		listeners:      make(map[EventType][]EventListener),
		buffer:         make([]Event, 0, 16),
		activeLastStep: make(map[constraint.ArbiterKey]bool),
		activeThisStep: make(map[constraint.ArbiterKey]bool),
	}
}

// Subscribe registers listener to be called whenever Step emits an event
// of the given type.
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordContact marks key as in contact for this step, to be diffed
// against the previous step once all arbiters have been processed.
func (e *Events) recordContact(key constraint.ArbiterKey) {
	e.activeThisStep[key] = true
}

// reconcile compares this step's active pairs against last step's and
// buffers the resulting Begin/End events, using arbiters to resolve a key
// back to the two bodies involved. End events for pairs whose arbiter the
// broad phase already erased are buffered there, not here.
func (e *Events) reconcile(arbiters map[constraint.ArbiterKey]*constraint.Arbiter) {
	for key := range e.activeThisStep {
		if !e.activeLastStep[key] {
			arb := arbiters[key]
			e.buffer = append(e.buffer, ContactBeginEvent{Key: key, Body1: arb.Body1, Body2: arb.Body2})
		}
	}
	for key := range e.activeLastStep {
		if !e.activeThisStep[key] {
			if arb, ok := arbiters[key]; ok {
				e.buffer = append(e.buffer, ContactEndEvent{Key: key, Body1: arb.Body1, Body2: arb.Body2})
			}
		}
	}

	e.activeLastStep, e.activeThisStep = e.activeThisStep, e.activeLastStep
	clear(e.activeThisStep)
}

// flush dispatches all buffered events to their listeners and clears the
// buffer.
func (e *Events) flush() {
	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}
