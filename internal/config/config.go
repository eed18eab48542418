package config

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/fynnbrem/homepage/internal/collider"
	"github.com/fynnbrem/homepage/internal/dynamo"
	"github.com/fynnbrem/homepage/internal/physics"
	"github.com/fynnbrem/homepage/internal/sim"
)

const (
	DefaultWidth    = 600.0
	DefaultHeight   = 700.0
	DefaultTicks    = 600
	DefaultPiDigits = 3
)

// Scenario is everything needed to start an arena run or a pi run.
type Scenario struct {
	Name    string         `yaml:"name,omitempty" toml:"name,omitempty"`
	World   physics.World  `yaml:"world" toml:"world"`
	Bounds  BoundsConfig   `yaml:"bounds" toml:"bounds"`
	Balls   []BallSpec     `yaml:"balls" toml:"balls"`
	Random  RandomConfig   `yaml:"random" toml:"random"`
	Tick    TickConfig     `yaml:"tick" toml:"tick"`
	Pointer *PointerConfig `yaml:"pointer,omitempty" toml:"pointer,omitempty"`
	Pi      PiConfig       `yaml:"pi" toml:"pi"`
}

type BoundsConfig struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

type BallSpec struct {
	physics.BallConfig `yaml:",inline"`
	Pos                [2]float64 `yaml:"pos" toml:"pos"`
	Vel                [2]float64 `yaml:"vel" toml:"vel"`
}

// RandomConfig adds Count balls with random parameters, resting at random
// positions. Seed makes the draw repeatable.
type RandomConfig struct {
	Count int   `yaml:"count" toml:"count"`
	Seed  int64 `yaml:"seed" toml:"seed"`
}

type TickConfig struct {
	Rate        float64 `yaml:"rate" toml:"rate"`
	Ticks       int     `yaml:"ticks" toml:"ticks"`
	SampleEvery int     `yaml:"sample_every" toml:"sample_every"`
}

// PointerConfig pins the pointer attractor for headless runs.
type PointerConfig struct {
	X float64 `yaml:"x" toml:"x"`
	Y float64 `yaml:"y" toml:"y"`
}

type PiConfig struct {
	Digits         int     `yaml:"digits" toml:"digits"`
	SquashInterval float64 `yaml:"squash_interval" toml:"squash_interval"`
	TransformLevel float64 `yaml:"transform_level" toml:"transform_level"`
	MaxEvents      int64   `yaml:"max_events" toml:"max_events"`
}

// Default returns the arena as the site ships it.
func Default() *Scenario {
	roster := physics.DefaultRoster()
	balls := make([]BallSpec, len(roster))
	for i, b := range roster {
		balls[i] = SpecFromBall(b)
	}
	return &Scenario{
		Name:   "default",
		World:  physics.DefaultWorld(),
		Bounds: BoundsConfig{Width: DefaultWidth, Height: DefaultHeight},
		Balls:  balls,
		Tick: TickConfig{
			Rate:        sim.DefaultTickRate,
			Ticks:       DefaultTicks,
			SampleEvery: 1,
		},
		Pi: PiConfig{Digits: DefaultPiDigits},
	}
}

func SpecFromBall(b *physics.Ball) BallSpec {
	return BallSpec{
		BallConfig: b.Config(),
		Pos:        [2]float64{b.Pos[0], b.Pos[1]},
		Vel:        [2]float64{b.Vel[0], b.Vel[1]},
	}
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Load reads a scenario from YAML, or TOML when path ends in .toml. Missing
// fields keep their defaults.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := Default()
	s.Name = ""
	if isTOML(path) {
		if _, err := toml.Decode(string(data), s); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

func Save(path string, s *Scenario) error {
	var data []byte
	if isTOML(path) {
		var sb strings.Builder
		if err := toml.NewEncoder(&sb).Encode(s); err != nil {
			return err
		}
		data = []byte(sb.String())
	} else {
		var err error
		data, err = yaml.Marshal(s)
		if err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

func (s *Scenario) Validate() error {
	if err := s.World.Validate(); err != nil {
		return err
	}
	if s.Bounds.Width <= 0 || s.Bounds.Height <= 0 {
		return fmt.Errorf("bounds %vx%v: %w", s.Bounds.Width, s.Bounds.Height, dynamo.ErrParameterBounds)
	}
	for _, b := range s.Balls {
		if err := b.Validate(); err != nil {
			return err
		}
		if !dynamo.Finite(b.Pos[0], b.Pos[1], b.Vel[0], b.Vel[1]) {
			return fmt.Errorf("ball %q: %w", b.ID, dynamo.ErrInvalidState)
		}
	}
	if s.Random.Count < 0 {
		return fmt.Errorf("random ball count %d: %w", s.Random.Count, dynamo.ErrParameterBounds)
	}
	if s.Tick.Rate < 0 || s.Tick.Ticks < 0 || s.Tick.SampleEvery < 0 {
		return fmt.Errorf("tick settings %+v: %w", s.Tick, dynamo.ErrParameterBounds)
	}
	if s.Pi.Digits < 0 {
		return fmt.Errorf("pi digits %d: %w", s.Pi.Digits, dynamo.ErrParameterBounds)
	}
	return nil
}

// Build creates the arena and world described by the scenario.
func (s *Scenario) Build() (*physics.Arena, physics.World, error) {
	if err := s.Validate(); err != nil {
		return nil, physics.World{}, err
	}

	bounds := physics.NewBounds(s.Bounds.Width, s.Bounds.Height)
	arena := physics.NewArena(bounds)
	for _, spec := range s.Balls {
		b, err := physics.NewBall(spec.BallConfig, physics.Vec(spec.Pos[0], spec.Pos[1]), physics.Vec(spec.Vel[0], spec.Vel[1]))
		if err != nil {
			return nil, physics.World{}, err
		}
		if err := arena.Add(b); err != nil {
			return nil, physics.World{}, err
		}
	}

	rng := rand.New(rand.NewSource(s.Random.Seed))
	for i := 0; i < s.Random.Count; i++ {
		cfg := physics.RandomBallConfig(rng)
		pos := physics.Vec(
			bounds.Left+cfg.Radius+rng.Float64()*(bounds.Width()-2*cfg.Radius),
			bounds.Top+cfg.Radius+rng.Float64()*(bounds.Height()-2*cfg.Radius),
		)
		b, err := physics.NewBall(cfg, pos, physics.Vector2{})
		if err != nil {
			return nil, physics.World{}, err
		}
		if err := arena.Add(b); err != nil {
			return nil, physics.World{}, err
		}
	}

	if s.Pointer != nil {
		arena.SetPointer(physics.Vec(s.Pointer.X, s.Pointer.Y))
	}
	return arena, s.World, nil
}

func (s *Scenario) SimConfig() sim.Config {
	return sim.Config{
		TickRate:      s.Tick.Rate,
		Ticks:         s.Tick.Ticks,
		SampleEvery:   s.Tick.SampleEvery,
		ValidateState: true,
	}
}

// PiSetup returns the pi experiment for s.Pi.Digits and the matching
// simulation options.
func (s *Scenario) PiSetup() (collider.Setup, collider.Options, error) {
	setup, err := collider.SetupForDigits(s.Pi.Digits)
	if err != nil {
		return collider.Setup{}, collider.Options{}, err
	}
	opts := collider.Options{
		SquashInterval: s.Pi.SquashInterval,
		TransformLevel: s.Pi.TransformLevel,
		MaxEvents:      s.Pi.MaxEvents,
	}
	return setup, opts, opts.Validate()
}
