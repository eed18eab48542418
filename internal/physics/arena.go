package physics

import (
	"fmt"

	"github.com/fynnbrem/homepage/internal/dynamo"
)

// Step advances balls by one tick inside bounds. pointer may be nil; when set
// its mass is refreshed from w and it attracts every ball. The order of the
// phases matters: trails, pointer, world gravity, mutual gravity, pointer
// gravity, collisions, movement.
//
// Step returns the number of ball-ball collisions resolved.
func Step(balls []*Ball, w World, bounds Bounds, pointer *VoidBall) int {
	UpdatePaths(balls, w.TrailLength)

	if pointer != nil {
		pointer.Mass = w.PointerGravity
	}

	for _, b := range balls {
		applyWorldGravity(b, w.WorldGravity)
	}

	// j < i visits every unordered pair once.
	for i := range balls {
		for j := 0; j < i; j++ {
			applyBallGravity(balls[i], balls[j], w.GravityScaling, w.MinForceDistance)
		}
	}

	if pointer != nil {
		for _, b := range balls {
			applyVoidBallGravity(b, *pointer, w.GravityScaling, w.MinForceDistance)
		}
	}

	contacts := 0
	if w.Collision {
		for i := range balls {
			for j := 0; j < i; j++ {
				if overlap := Overlap(balls[i], balls[j]); overlap > 0 {
					if Collide(balls[i], balls[j], overlap) {
						contacts++
					}
				}
			}
		}
	}

	for _, b := range balls {
		MoveInBox(b, bounds, w.WallElasticity)
	}
	return contacts
}

func applyWorldGravity(b *Ball, gravity Directional) {
	force := RotatedVector(gravity.Angle, gravity.Magnitude)
	b.Vel = b.Vel.Add(force.Mul(1 / b.Mass))
}

func applyBallGravity(b1, b2 *Ball, distanceExp, minDistance float64) {
	force := Force(b1.Void(), b2.Void(), distanceExp, minDistance)
	b1.Vel = b1.Vel.Add(force.Mul(1 / b1.Mass))
	b2.Vel = b2.Vel.Add(Negate(force.Mul(1 / b2.Mass)))
}

func applyVoidBallGravity(b *Ball, void VoidBall, distanceExp, minDistance float64) {
	force := Force(b.Void(), void, distanceExp, minDistance)
	b.Vel = b.Vel.Add(force.Mul(1 / b.Mass))
}

// Arena owns a set of balls, the box they live in and the pointer attractor.
// It is not safe for concurrent use; edits must happen between ticks.
type Arena struct {
	Balls  []*Ball
	Bounds Bounds

	pointer       VoidBall
	pointerActive bool
	tick          int
	contacts      int
	totalContacts int
}

func NewArena(bounds Bounds, balls ...*Ball) *Arena {
	a := &Arena{Bounds: bounds, Balls: make([]*Ball, 0, len(balls))}
	a.Balls = append(a.Balls, balls...)
	return a
}

// Step advances the arena by one tick using w.
func (a *Arena) Step(w World) {
	var pointer *VoidBall
	if a.pointerActive {
		pointer = &a.pointer
	}
	a.contacts = Step(a.Balls, w, a.Bounds, pointer)
	a.totalContacts += a.contacts
	a.tick++
}

// Tick returns the number of steps taken.
func (a *Arena) Tick() int { return a.tick }

// Contacts returns the collisions resolved in the last step.
func (a *Arena) Contacts() int { return a.contacts }

// TotalContacts returns the collisions resolved since creation.
func (a *Arena) TotalContacts() int { return a.totalContacts }

// SetPointer moves the pointer attractor to pos. The pointer is only active
// while pos lies inside the arena.
func (a *Arena) SetPointer(pos Vector2) {
	a.pointer.Pos = pos
	a.pointerActive = a.Bounds.Contains(pos)
}

func (a *Arena) ClearPointer() {
	a.pointerActive = false
}

// Pointer returns the pointer attractor and whether it is active.
func (a *Arena) Pointer() (VoidBall, bool) {
	return a.pointer, a.pointerActive
}

// Add appends b. Ids must be unique.
func (a *Arena) Add(b *Ball) error {
	if _, ok := a.Ball(b.ID); ok {
		return fmt.Errorf("ball %q: %w", b.ID, dynamo.ErrDuplicateID)
	}
	a.Balls = append(a.Balls, b)
	return nil
}

// Remove deletes the ball with the given id and reports whether it existed.
func (a *Arena) Remove(id string) bool {
	for i, b := range a.Balls {
		if b.ID == id {
			a.Balls = append(a.Balls[:i], a.Balls[i+1:]...)
			return true
		}
	}
	return false
}

func (a *Arena) Ball(id string) (*Ball, bool) {
	for _, b := range a.Balls {
		if b.ID == id {
			return b, true
		}
	}
	return nil, false
}

// Apply edits the ball matching cfg.ID in place.
func (a *Arena) Apply(cfg BallConfig) error {
	b, ok := a.Ball(cfg.ID)
	if !ok {
		return fmt.Errorf("ball %q: %w", cfg.ID, dynamo.ErrNotFound)
	}
	return b.Apply(cfg)
}

// Configs returns the editable values of all balls in order.
func (a *Arena) Configs() []BallConfig {
	out := make([]BallConfig, len(a.Balls))
	for i, b := range a.Balls {
		out[i] = b.Config()
	}
	return out
}

// Valid reports whether every ball has a finite state.
func (a *Arena) Valid() bool {
	for _, b := range a.Balls {
		if !b.Valid() {
			return false
		}
	}
	return true
}

// KineticEnergy returns the summed kinetic energy of all balls.
func (a *Arena) KineticEnergy() float64 {
	e := 0.0
	for _, b := range a.Balls {
		e += b.KineticEnergy()
	}
	return e
}

// Momentum returns the summed momentum of all balls.
func (a *Arena) Momentum() Vector2 {
	p := Vector2{}
	for _, b := range a.Balls {
		p = p.Add(b.Momentum())
	}
	return p
}

// Clone deep-copies the arena. The copy steps independently.
func (a *Arena) Clone() *Arena {
	c := *a
	c.Balls = CloneBalls(a.Balls)
	return &c
}
