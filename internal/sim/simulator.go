package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/fynnbrem/homepage/internal/dynamo"
	"github.com/fynnbrem/homepage/internal/physics"
)

// Simulator steps an arena at a fixed rate under one world configuration.
type Simulator struct {
	arena     *physics.Arena
	world     physics.World
	metrics   []Metric
	observers []Observer
}

func New(arena *physics.Arena, world physics.World) *Simulator {
	return &Simulator{
		arena:     arena,
		world:     world,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Arena returns the arena driven by RunWithCallback and RunRealtime.
func (s *Simulator) Arena() *physics.Arena { return s.arena }

// World returns a pointer to the live world so parameters can be tuned
// between ticks.
func (s *Simulator) World() *physics.World { return &s.world }

// Run steps a copy of the arena cfg.Ticks times. The simulator's own arena
// is left untouched.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	a := s.arena.Clone()
	result := &Result{
		Snapshots: make([]Snapshot, 0, cfg.Ticks/cfg.SampleEvery+2),
		Metrics:   make(map[string]float64),
		Final:     a,
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	result.Snapshots = append(result.Snapshots, TakeSnapshot(a, cfg.TickRate))
	result.InitialEnergy = a.KineticEnergy()

	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		t := float64(a.Tick()) / cfg.TickRate
		for _, m := range s.metrics {
			m.Observe(a, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(a, t)
		}

		a.Step(s.world)

		if cfg.ValidateState && !a.Valid() {
			return result, &dynamo.SimulationError{Step: a.Tick(), Time: t, Wrapped: dynamo.ErrInvalidState}
		}
		result.StepsTaken++

		if (i+1)%cfg.SampleEvery == 0 || i+1 == cfg.Ticks {
			result.Snapshots = append(result.Snapshots, TakeSnapshot(a, cfg.TickRate))
		}
	}

	result.Contacts = a.TotalContacts() - s.arena.TotalContacts()
	result.FinalEnergy = a.KineticEnergy()
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.TickRate < 0 || !dynamo.Finite(cfg.TickRate) {
		return fmt.Errorf("tick rate %v: %w", cfg.TickRate, dynamo.ErrParameterBounds)
	}
	if cfg.Ticks < 0 {
		return fmt.Errorf("ticks %d: %w", cfg.Ticks, dynamo.ErrParameterBounds)
	}
	if cfg.SampleEvery < 0 {
		return fmt.Errorf("sample interval %d: %w", cfg.SampleEvery, dynamo.ErrParameterBounds)
	}
	return s.world.Validate()
}

// RunWithCallback steps the simulator's own arena as fast as possible and
// calls fn after every tick. Returning false from fn stops the run.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, fn func(a *physics.Arena) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}
	cfg = cfg.withDefaults()

	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := s.tick(cfg); err != nil {
			return err
		}
		if !fn(s.arena) {
			return nil
		}
	}
	return nil
}

// RunRealtime is RunWithCallback paced by a ticker at cfg.TickRate. With
// cfg.Ticks == 0 it runs until ctx ends or fn returns false.
func (s *Simulator) RunRealtime(ctx context.Context, cfg Config, fn func(a *physics.Arena) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}
	cfg = cfg.withDefaults()

	ticker := time.NewTicker(time.Duration(float64(time.Second) / cfg.TickRate))
	defer ticker.Stop()

	for i := 0; cfg.Ticks == 0 || i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if err := s.tick(cfg); err != nil {
			return err
		}
		if !fn(s.arena) {
			return nil
		}
	}
	return nil
}

func (s *Simulator) tick(cfg Config) error {
	t := float64(s.arena.Tick()) / cfg.TickRate
	for _, obs := range s.observers {
		obs.OnStep(s.arena, t)
	}
	s.arena.Step(s.world)
	if cfg.ValidateState && !s.arena.Valid() {
		return &dynamo.SimulationError{Step: s.arena.Tick(), Time: t, Wrapped: dynamo.ErrInvalidState}
	}
	return nil
}
