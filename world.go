// Package obb2d is a small rigid-body physics engine for 2D oriented
// boxes: SAT collision detection with feature-tagged contact manifolds,
// persistent per-pair arbiters for warm starting, and a sequential-impulse
// Gauss-Seidel solver over contacts and pin joints.
package obb2d

import (
	"sort"

	"github.com/vectrix2d/obb2d/body"
	"github.com/vectrix2d/obb2d/constraint"
	"github.com/vectrix2d/obb2d/vec2"
)

// World owns a set of bodies and joints and steps them forward in time.
// Step is single-threaded and free of suspension points by design: the
// engine's determinism guarantee (same inputs, same outputs, bit for
// bit) depends on it, so World never spawns goroutines mid-step.
type World struct {
	Bodies []*body.Body
	Joints []*constraint.Joint

	// Arbiters holds one persistent entry per body pair that currently
	// has a nonempty manifold, keyed by the canonical ArbiterKey built
	// from each body's World-assigned index. Entries whose manifold
	// goes back to zero are deleted, matching box2d-lite's
	// insert-or-update-or-erase broad phase.
	Arbiters map[constraint.ArbiterKey]*constraint.Arbiter

	Gravity    vec2.Vec2
	Iterations int

	Config SolverConfig

	Events Events

	bodyIndex map[*body.Body]int
	nextIndex int
}

// New returns an empty World with the default solver configuration and
// 10 solver iterations, matching box2d-lite's sample scenes.
func New(gravity vec2.Vec2) *World {
	return &World{
		Arbiters:   make(map[constraint.ArbiterKey]*constraint.Arbiter),
		Gravity:    gravity,
		Iterations: 10,
		Config:     DefaultSolverConfig(),
		Events:     NewEvents(),
		bodyIndex:  make(map[*body.Body]int),
	}
}

// AddBody adds a body to the world and assigns it a monotonically
// increasing index. That index, not the body's pointer, is what
// canonicalizes ArbiterKey ordering between this body and every other,
// so two processes stepping the same scene in the same order build
// identical arbiter maps regardless of allocator behavior.
func (w *World) AddBody(b *body.Body) {
	w.Bodies = append(w.Bodies, b)
	w.bodyIndex[b] = w.nextIndex
	w.nextIndex++
}

// AddJoint adds a pin joint to the world. Both of its bodies must
// already have been added via AddBody.
func (w *World) AddJoint(j *constraint.Joint) {
	w.Joints = append(w.Joints, j)
}

// BodyIndex returns the monotonic index AddBody assigned to b, and
// whether b is known to this World.
func (w *World) BodyIndex(b *body.Body) (int, bool) {
	idx, ok := w.bodyIndex[b]
	return idx, ok
}

// Clear removes every body, joint, and arbiter from the world, resetting
// it to the state New would produce (but keeping Gravity, Iterations,
// Config, and registered event listeners).
func (w *World) Clear() {
	w.Bodies = nil
	w.Joints = nil
	w.Arbiters = make(map[constraint.ArbiterKey]*constraint.Arbiter)
	w.bodyIndex = make(map[*body.Body]int)
	w.nextIndex = 0
	clear(w.Events.activeLastStep)
	clear(w.Events.activeThisStep)
	w.Events.buffer = w.Events.buffer[:0]
}

// Step advances the world by dt seconds: it finds and updates contact
// arbiters, integrates forces into velocities, warm-starts and
// pre-steps every constraint, runs Iterations Gauss-Seidel sweeps over
// contacts then joints, integrates velocities into positions, and
// finally clears accumulated forces and flushes contact events.
func (w *World) Step(dt float32) {
	invDt := float32(0)
	if dt > 0 {
		invDt = 1 / dt
	}

	w.broadAndNarrowPhase()

	for _, b := range w.Bodies {
		if b.IsStatic() {
			continue
		}
		b.Velocity = b.Velocity.Add(w.Gravity.Add(b.Force.Mul(b.InvMass)).Mul(dt))
		b.AngularVelocity += dt * b.InvI * b.Torque
	}

	for _, key := range w.sortedArbiterKeys() {
		arb := w.Arbiters[key]
		arb.PreStep(invDt, w.Config.AccumulateImpulses)
		if !w.Config.PositionCorrection {
			for i := 0; i < arb.NumContacts; i++ {
				arb.Contacts[i].Bias = 0
			}
		}
	}
	for _, j := range w.Joints {
		j.PreStep(invDt, w.Config.WarmStarting, w.Config.PositionCorrection)
	}

	for i := 0; i < w.Iterations; i++ {
		for _, key := range w.sortedArbiterKeys() {
			w.Arbiters[key].ApplyImpulse(w.Config.AccumulateImpulses)
		}
		for _, j := range w.Joints {
			j.ApplyImpulse()
		}
	}

	for _, b := range w.Bodies {
		if b.IsStatic() {
			continue
		}
		b.Position = b.Position.Add(b.Velocity.Mul(dt))
		b.Rotation += dt * b.AngularVelocity

		b.Force = vec2.Vec2{}
		b.Torque = 0
	}

	w.Events.reconcile(w.Arbiters)
	w.Events.flush()
}

// broadAndNarrowPhase is box2d-lite's O(n^2) BroadPhase: every body pair
// is tested directly (no acceleration structure), skipping pairs where
// both bodies are static since two immovable boxes can never need a
// constraint between them. A pair whose manifold goes empty has its
// arbiter erased rather than kept with NumContacts == 0, so Arbiters
// only ever holds pairs currently touching.
func (w *World) broadAndNarrowPhase() {
	for i := 0; i < len(w.Bodies); i++ {
		for j := i + 1; j < len(w.Bodies); j++ {
			b1, b2 := w.Bodies[i], w.Bodies[j]
			if b1.IsStatic() && b2.IsStatic() {
				continue
			}

			idx1, idx2 := w.bodyIndex[b1], w.bodyIndex[b2]
			key := constraint.NewArbiterKey(idx1, idx2)

			// Arbiter bodies are stored in a fixed order (lower index
			// first) so a contact's feature IDs always mean "edges on
			// the lower-indexed body / edges on the higher-indexed
			// body", independent of which order broadAndNarrowPhase
			// happened to visit them in.
			lo, hi := b1, b2
			if idx2 < idx1 {
				lo, hi = b2, b1
			}

			newContacts, numNew := constraint.Collide(lo, hi)

			existing, ok := w.Arbiters[key]
			switch {
			case numNew > 0 && !ok:
				w.Arbiters[key] = constraint.NewArbiterFromContacts(lo, hi, newContacts, numNew)
			case numNew > 0 && ok:
				existing.Update(newContacts, numNew, w.Config.WarmStarting)
			case numNew == 0 && ok:
				if w.Events.activeLastStep[key] {
					w.Events.buffer = append(w.Events.buffer, ContactEndEvent{Key: key, Body1: existing.Body1, Body2: existing.Body2})
				}
				delete(w.Arbiters, key)
			}

			if numNew > 0 {
				w.Events.recordContact(key)
			}
		}
	}
}

// sortedArbiterKeys returns the current arbiter keys in ascending
// (Index1, Index2) order. Go's map iteration order is randomized, so
// without this a run of Step could apply Gauss-Seidel sweeps to the same
// contacts in a different order every time, changing the result; sorting
// the keys is the cheapest way to make iteration deterministic without a
// custom ordered-map type.
func (w *World) sortedArbiterKeys() []constraint.ArbiterKey {
	keys := make([]constraint.ArbiterKey, 0, len(w.Arbiters))
	for k := range w.Arbiters {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Index1 != keys[j].Index1 {
			return keys[i].Index1 < keys[j].Index1
		}
		return keys[i].Index2 < keys[j].Index2
	})
	return keys
}
