// Package physics wraps the Chipmunk2D port github.com/jakecoffman/cp behind
// a small handle-based API. Callers work in display units (pixels); the world
// converts to simulation units with a fixed scale factor.
//
// The world knows nothing about gameplay. Entities are attached to handles by
// the registry package, and contacts are reported as handle pairs.
package physics

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/spacewar/internal/config"
	"github.com/vovakirdan/spacewar/internal/core"
)

// Handle identifies a body in a World. Handles are never reused within a
// World, so a stale handle can never alias a newer body.
type Handle uint64

// ErrUnknownHandle is returned when a handle has no live body.
var ErrUnknownHandle = errors.New("physics: unknown handle")

// ContactFunc receives the two bodies of a contact-begin event. The order of
// a and b is unspecified.
type ContactFunc func(a, b Handle)

// entityCollision is the single collision type every shape carries.
const entityCollision cp.CollisionType = 1

type bodyRef struct {
	body  *cp.Body
	shape *cp.Shape
}

// World is a rigid-body world of circles with no gravity.
// It is not safe for concurrent use.
type World struct {
	space     *cp.Space
	cfg       config.PhysicsConfig
	bodies    map[Handle]bodyRef
	byShape   map[*cp.Shape]Handle
	next      Handle
	pending   [][2]Handle
	onContact ContactFunc
}

// NewWorld creates an empty world.
func NewWorld(cfg config.PhysicsConfig) *World {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{})
	space.Iterations = uint(cfg.Iterations)

	w := &World{
		space:   space,
		cfg:     cfg,
		bodies:  make(map[Handle]bodyRef),
		byShape: make(map[*cp.Shape]Handle),
	}

	handler := space.NewCollisionHandler(entityCollision, entityCollision)
	handler.BeginFunc = w.begin
	return w
}

// OnContact sets the receiver of contact-begin events. Events are buffered
// while the solver runs and delivered after Step returns from the engine, so
// fn may inspect the world freely.
func (w *World) OnContact(fn ContactFunc) {
	w.onContact = fn
}

// begin runs inside cp's step. It only records the pair.
func (w *World) begin(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
	sa, sb := arb.Shapes()
	a, okA := w.byShape[sa]
	b, okB := w.byShape[sb]
	if okA && okB {
		w.pending = append(w.pending, [2]Handle{a, b})
	}
	return true
}

// Step advances the world by dt seconds, clamped to [0, MaxStep], and
// returns the step actually taken. Accumulated forces are cleared afterwards
// and buffered contacts are delivered in the order the engine reported them.
func (w *World) Step(dt float64) float64 {
	dt = core.ClampF(dt, 0, w.cfg.MaxStep)
	if dt == 0 {
		return 0
	}

	w.space.Step(dt)

	for _, ref := range w.bodies {
		ref.body.SetForce(cp.Vector{})
		ref.body.SetTorque(0)
	}

	pending := w.pending
	w.pending = w.pending[:0]
	if w.onContact != nil {
		for _, p := range pending {
			w.onContact(p[0], p[1])
		}
	}
	return dt
}

// CreateBody adds a circle centered at pos (display units) and returns its
// handle. Dynamic bodies get mass from the configured density; the others
// are kinematic and move only by the velocity they are given.
func (w *World) CreateBody(pos core.Vec, radius float64, dynamic bool) Handle {
	r := w.ToSim(radius)

	var body *cp.Body
	if dynamic {
		mass := w.cfg.Density * math.Pi * r * r
		body = cp.NewBody(mass, cp.MomentForCircle(mass, 0, r, cp.Vector{}))
	} else {
		body = cp.NewKinematicBody()
	}
	body.SetPosition(w.toSimVec(pos))

	shape := cp.NewCircle(body, r, cp.Vector{})
	shape.SetFriction(w.cfg.Friction)
	shape.SetElasticity(w.cfg.Elasticity)
	shape.SetCollisionType(entityCollision)

	w.space.AddBody(body)
	w.space.AddShape(shape)

	w.next++
	h := w.next
	w.bodies[h] = bodyRef{body: body, shape: shape}
	w.byShape[shape] = h
	return h
}

// DestroyBody removes a body from the world. Unknown handles and bodies that
// are no longer attached to the space are skipped. It reports whether a body
// was removed.
func (w *World) DestroyBody(h Handle) bool {
	ref, ok := w.bodies[h]
	if !ok {
		return false
	}
	delete(w.bodies, h)
	delete(w.byShape, ref.shape)

	if !w.space.ContainsBody(ref.body) {
		return false
	}
	w.space.RemoveShape(ref.shape)
	w.space.RemoveBody(ref.body)
	return true
}

// Contains reports whether h names a live body.
func (w *World) Contains(h Handle) bool {
	_, ok := w.bodies[h]
	return ok
}

// Len returns the number of live bodies.
func (w *World) Len() int {
	return len(w.bodies)
}

// Handles returns the live handles in ascending order.
func (w *World) Handles() []Handle {
	out := make([]Handle, 0, len(w.bodies))
	for h := range w.bodies {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Position returns the body's center in display units.
func (w *World) Position(h Handle) (core.Vec, error) {
	ref, ok := w.bodies[h]
	if !ok {
		return core.Vec{}, fmt.Errorf("position of %d: %w", h, ErrUnknownHandle)
	}
	return w.toDisplayVec(ref.body.Position()), nil
}

// SetPosition teleports the body to pos (display units).
func (w *World) SetPosition(h Handle, pos core.Vec) error {
	ref, ok := w.bodies[h]
	if !ok {
		return fmt.Errorf("set position of %d: %w", h, ErrUnknownHandle)
	}
	ref.body.SetPosition(w.toSimVec(pos))
	return nil
}

// Velocity returns the body's velocity in display units per second.
func (w *World) Velocity(h Handle) (core.Vec, error) {
	ref, ok := w.bodies[h]
	if !ok {
		return core.Vec{}, fmt.Errorf("velocity of %d: %w", h, ErrUnknownHandle)
	}
	return w.toDisplayVec(ref.body.Velocity()), nil
}

// SetVelocity sets the body's velocity in display units per second.
func (w *World) SetVelocity(h Handle, v core.Vec) error {
	ref, ok := w.bodies[h]
	if !ok {
		return fmt.Errorf("set velocity of %d: %w", h, ErrUnknownHandle)
	}
	ref.body.SetVelocityVector(w.toSimVec(v))
	return nil
}

// Clear destroys every body and drops any undelivered contacts.
func (w *World) Clear() {
	for h := range w.bodies {
		w.DestroyBody(h)
	}
	w.pending = w.pending[:0]
}

// ToSim converts a display-space length to simulation units.
func (w *World) ToSim(x float64) float64 {
	return x / w.cfg.Scale
}

// ToDisplay converts a simulation-space length to display units.
func (w *World) ToDisplay(x float64) float64 {
	return x * w.cfg.Scale
}

func (w *World) toSimVec(v core.Vec) cp.Vector {
	return cp.Vector{X: w.ToSim(v.X), Y: w.ToSim(v.Y)}
}

func (w *World) toDisplayVec(v cp.Vector) core.Vec {
	return core.Vec{X: w.ToDisplay(v.X), Y: w.ToDisplay(v.Y)}
}
