package physics

import (
	"fmt"
	"math"

	"github.com/fynnbrem/homepage/internal/dynamo"
)

// VoidBall is a massive point without extent. It attracts balls but takes no
// part in collisions and is never moved by the engine.
type VoidBall struct {
	Pos  Vector2
	Mass float64
}

// Ball is a rigid circular body.
type Ball struct {
	ID         string
	Pos        Vector2
	Vel        Vector2
	Mass       float64
	Radius     float64
	Elasticity float64
	Color      string
	// Path holds past positions, most recent first.
	Path []Vector2
}

// BallConfig is the user-editable subset of a Ball.
type BallConfig struct {
	ID         string  `yaml:"id" toml:"id" json:"id"`
	Color      string  `yaml:"color" toml:"color" json:"color"`
	Mass       float64 `yaml:"mass" toml:"mass" json:"mass"`
	Radius     float64 `yaml:"radius" toml:"radius" json:"radius"`
	Elasticity float64 `yaml:"elasticity" toml:"elasticity" json:"elasticity"`
}

// Validate rejects configurations the force and impulse formulas cannot
// handle.
func (c BallConfig) Validate() error {
	if c.Mass <= 0 || !dynamo.Finite(c.Mass) {
		return fmt.Errorf("ball %q: mass %v: %w", c.ID, c.Mass, dynamo.ErrInvalidMass)
	}
	if c.Radius < 0 || !dynamo.Finite(c.Radius) {
		return fmt.Errorf("ball %q: radius %v: %w", c.ID, c.Radius, dynamo.ErrInvalidRadius)
	}
	if c.Elasticity < 0 || c.Elasticity > 1 || math.IsNaN(c.Elasticity) {
		return fmt.Errorf("ball %q: elasticity %v not in [0, 1]: %w", c.ID, c.Elasticity, dynamo.ErrParameterBounds)
	}
	return nil
}

// NewBall creates a ball from cfg at pos moving with vel. A missing id is
// replaced by a fresh one.
func NewBall(cfg BallConfig, pos, vel Vector2) (*Ball, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.ID == "" {
		cfg.ID = NewBallID()
	}
	return &Ball{
		ID:         cfg.ID,
		Pos:        pos,
		Vel:        vel,
		Mass:       cfg.Mass,
		Radius:     cfg.Radius,
		Elasticity: cfg.Elasticity,
		Color:      cfg.Color,
		Path:       []Vector2{},
	}, nil
}

// Config reduces the ball to its editable values.
func (b *Ball) Config() BallConfig {
	return BallConfig{
		ID:         b.ID,
		Color:      b.Color,
		Mass:       b.Mass,
		Radius:     b.Radius,
		Elasticity: b.Elasticity,
	}
}

// Apply copies the editable values of cfg onto the ball. The id is not
// changed.
func (b *Ball) Apply(cfg BallConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	b.Color = cfg.Color
	b.Mass = cfg.Mass
	b.Radius = cfg.Radius
	b.Elasticity = cfg.Elasticity
	return nil
}

// Void returns the ball as a gravity source.
func (b *Ball) Void() VoidBall {
	return VoidBall{Pos: b.Pos, Mass: b.Mass}
}

func (b *Ball) Clone() *Ball {
	c := *b
	c.Path = make([]Vector2, len(b.Path))
	copy(c.Path, b.Path)
	return &c
}

// Momentum returns m*v.
func (b *Ball) Momentum() Vector2 {
	return b.Vel.Mul(b.Mass)
}

// KineticEnergy returns m*|v|^2/2.
func (b *Ball) KineticEnergy() float64 {
	return 0.5 * b.Mass * b.Vel.LenSqr()
}

// Valid reports whether position and velocity are finite.
func (b *Ball) Valid() bool {
	return dynamo.Finite(b.Pos[0], b.Pos[1], b.Vel[0], b.Vel[1])
}

// RecordPath prepends the current position to the path and truncates it to
// maxLength entries.
func (b *Ball) RecordPath(maxLength int) {
	if maxLength <= 0 {
		b.Path = b.Path[:0]
		return
	}
	if len(b.Path) > maxLength {
		b.Path = b.Path[:maxLength]
	}
	if len(b.Path) < maxLength {
		b.Path = append(b.Path, Vector2{})
	}
	copy(b.Path[1:], b.Path)
	b.Path[0] = b.Pos
}

// UpdatePaths records the current position of every ball.
func UpdatePaths(balls []*Ball, maxLength int) {
	for _, b := range balls {
		b.RecordPath(maxLength)
	}
}

// CloneBalls deep-copies balls, paths included.
func CloneBalls(balls []*Ball) []*Ball {
	out := make([]*Ball, len(balls))
	for i, b := range balls {
		out[i] = b.Clone()
	}
	return out
}
