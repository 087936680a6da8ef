package sim

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/rps-arena/internal/core"
)

// Entity is a single mobile particle in the arena.
type Entity struct {
	Pos    core.Vec2 // Center position
	Vel    core.Vec2 // Units per second
	Kind   Kind
	Radius float64
}

// NewEntity creates an entity at pos moving at speed in a uniformly random
// direction drawn from rng.
func NewEntity(pos core.Vec2, kind Kind, radius, speed float64, rng *rand.Rand) Entity {
	angle := rng.Float64() * 2 * math.Pi
	return Entity{
		Pos:    pos,
		Vel:    core.FromAngle(angle, speed),
		Kind:   kind,
		Radius: radius,
	}
}

// Update advances the entity by dt seconds and bounces it off the arena walls.
// On wall contact the position is clamped so the full extent stays inside
// [0, width] x [0, height] and the velocity component on that axis flips.
func (e *Entity) Update(dt, width, height float64) {
	e.Pos = e.Pos.Add(e.Vel.Scale(dt))

	if e.Pos.X-e.Radius < 0 {
		e.Pos.X = e.Radius
		e.Vel.X = -e.Vel.X
	} else if e.Pos.X+e.Radius > width {
		e.Pos.X = width - e.Radius
		e.Vel.X = -e.Vel.X
	}

	if e.Pos.Y-e.Radius < 0 {
		e.Pos.Y = e.Radius
		e.Vel.Y = -e.Vel.Y
	} else if e.Pos.Y+e.Radius > height {
		e.Pos.Y = height - e.Radius
		e.Vel.Y = -e.Vel.Y
	}
}

// contain clamps the position into the arena without touching velocity.
// Collision separation can push an entity past a wall; the next Update
// reflects it if it is still heading outward.
func (e *Entity) contain(width, height float64) {
	e.Pos.X = core.ClampF(e.Pos.X, e.Radius, width-e.Radius)
	e.Pos.Y = core.ClampF(e.Pos.Y, e.Radius, height-e.Radius)
}

// Speed returns the magnitude of the velocity.
func (e *Entity) Speed() float64 {
	return e.Vel.Len()
}
