package physics

import (
	"fmt"
	"math"

	"github.com/fynnbrem/homepage/internal/dynamo"
)

// Directional is a force given by magnitude and clockwise angle from "up".
type Directional struct {
	Magnitude float64 `yaml:"magnitude" toml:"magnitude" json:"magnitude"`
	Angle     float64 `yaml:"angle" toml:"angle" json:"angle"`
}

// World holds the arena-wide options read on every tick.
type World struct {
	// PointerGravity is the mass of the pointer attractor.
	PointerGravity float64 `yaml:"pointer_gravity" toml:"pointer_gravity" json:"pointer_gravity"`
	// TrailLength caps the number of path samples per ball.
	TrailLength int `yaml:"trail_length" toml:"trail_length" json:"trail_length"`
	// GravityScaling is the distance falloff exponent of all gravity.
	GravityScaling float64 `yaml:"gravity_scaling" toml:"gravity_scaling" json:"gravity_scaling"`
	// WallElasticity is combined with each ball's elasticity on wall bounces.
	WallElasticity float64     `yaml:"wall_elasticity" toml:"wall_elasticity" json:"wall_elasticity"`
	WorldGravity   Directional `yaml:"world_gravity" toml:"world_gravity" json:"world_gravity"`
	// Collision toggles ball-ball collision resolution.
	Collision bool `yaml:"collision" toml:"collision" json:"collision"`
	// MinForceDistance is the separation below which gravity is clamped.
	MinForceDistance float64 `yaml:"min_force_distance" toml:"min_force_distance" json:"min_force_distance"`
}

const (
	DefaultPointerGravity = 1500.0
	DefaultTrailLength    = 30
	DefaultGravityScaling = 1.7
	DefaultWallElasticity = 0.9
)

func DefaultWorld() World {
	return World{
		PointerGravity:   DefaultPointerGravity,
		TrailLength:      DefaultTrailLength,
		GravityScaling:   DefaultGravityScaling,
		WallElasticity:   DefaultWallElasticity,
		WorldGravity:     Directional{Magnitude: 0, Angle: math.Pi},
		Collision:        true,
		MinForceDistance: DefaultMinForceDistance,
	}
}

func (w World) Validate() error {
	if w.TrailLength < 0 {
		return fmt.Errorf("trail length %d: %w", w.TrailLength, dynamo.ErrParameterBounds)
	}
	if w.WallElasticity < 0 || w.WallElasticity > 1 || math.IsNaN(w.WallElasticity) {
		return fmt.Errorf("wall elasticity %v not in [0, 1]: %w", w.WallElasticity, dynamo.ErrParameterBounds)
	}
	if w.MinForceDistance < 0 || !dynamo.Finite(w.MinForceDistance) {
		return fmt.Errorf("min force distance %v: %w", w.MinForceDistance, dynamo.ErrParameterBounds)
	}
	if !dynamo.Finite(w.PointerGravity, w.GravityScaling, w.WorldGravity.Magnitude, w.WorldGravity.Angle) {
		return fmt.Errorf("non-finite world option: %w", dynamo.ErrParameterBounds)
	}
	return nil
}

// GetParams returns the tunable numeric options.
func (w *World) GetParams() map[string]float64 {
	return map[string]float64{
		"pointer_gravity": w.PointerGravity,
		"trail_length":    float64(w.TrailLength),
		"gravity_scaling": w.GravityScaling,
		"wall_elasticity": w.WallElasticity,
		"gravity":         w.WorldGravity.Magnitude,
		"gravity_angle":   w.WorldGravity.Angle,
	}
}

func (w *World) SetParam(name string, value float64) error {
	switch name {
	case "pointer_gravity":
		w.PointerGravity = value
	case "trail_length":
		if value < 0 {
			return fmt.Errorf("trail length %v: %w", value, dynamo.ErrParameterBounds)
		}
		w.TrailLength = int(value)
	case "gravity_scaling":
		w.GravityScaling = value
	case "wall_elasticity":
		w.WallElasticity = math.Max(0, math.Min(1, value))
	case "gravity":
		w.WorldGravity.Magnitude = value
	case "gravity_angle":
		w.WorldGravity.Angle = math.Mod(value, 2*math.Pi)
	default:
		return fmt.Errorf("unknown parameter %q: %w", name, dynamo.ErrParameterBounds)
	}
	return nil
}
