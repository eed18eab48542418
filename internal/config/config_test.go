package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fynnbrem/homepage/internal/dynamo"
	"github.com/fynnbrem/homepage/internal/physics"
)

func TestDefault(t *testing.T) {
	s := Default()

	if s.World != physics.DefaultWorld() {
		t.Errorf("unexpected default world %+v", s.World)
	}
	if s.Bounds.Width != 600 || s.Bounds.Height != 700 {
		t.Errorf("expected 600x700 arena, got %vx%v", s.Bounds.Width, s.Bounds.Height)
	}
	if len(s.Balls) != 3 {
		t.Errorf("expected the 3-ball roster, got %d balls", len(s.Balls))
	}
	if s.Tick.Rate != 60 {
		t.Errorf("expected 60 Hz, got %v", s.Tick.Rate)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("default scenario invalid: %v", err)
	}
}

func TestBuild(t *testing.T) {
	s := Default()
	s.Pointer = &PointerConfig{X: 100, Y: 120}

	arena, world, err := s.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if len(arena.Balls) != 3 {
		t.Errorf("expected 3 balls, got %d", len(arena.Balls))
	}
	if world != s.World {
		t.Error("world not carried over")
	}
	roster := physics.DefaultRoster()
	for i, b := range arena.Balls {
		if b.ID != roster[i].ID || b.Pos != roster[i].Pos || b.Vel != roster[i].Vel {
			t.Errorf("ball %d does not match the roster", i)
		}
	}
	p, active := arena.Pointer()
	if !active || p.Pos != physics.Vec(100, 120) {
		t.Errorf("pointer %v active=%v", p.Pos, active)
	}
}

func TestBuildRandom(t *testing.T) {
	s := Default()
	s.Balls = nil
	s.Random = RandomConfig{Count: 20, Seed: 42}

	arena, _, err := s.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if len(arena.Balls) != 20 {
		t.Fatalf("expected 20 balls, got %d", len(arena.Balls))
	}
	for _, b := range arena.Balls {
		if b.Pos[0]-b.Radius < 0 || b.Pos[0]+b.Radius > 600 || b.Pos[1]-b.Radius < 0 || b.Pos[1]+b.Radius > 700 {
			t.Errorf("ball %s at %v sticks out of the arena", b.ID, b.Pos)
		}
	}

	again, _, err := s.Build()
	if err != nil {
		t.Fatal(err)
	}
	for i := range arena.Balls {
		if arena.Balls[i].Pos != again.Balls[i].Pos || arena.Balls[i].Mass != again.Balls[i].Mass {
			t.Errorf("ball %d differs between builds with the same seed", i)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Scenario)
		want   error
	}{
		{"zero width", func(s *Scenario) { s.Bounds.Width = 0 }, dynamo.ErrParameterBounds},
		{"zero mass", func(s *Scenario) { s.Balls[0].Mass = 0 }, dynamo.ErrInvalidMass},
		{"negative radius", func(s *Scenario) { s.Balls[1].Radius = -1 }, dynamo.ErrInvalidRadius},
		{"wall elasticity", func(s *Scenario) { s.World.WallElasticity = 1.5 }, dynamo.ErrParameterBounds},
		{"negative ticks", func(s *Scenario) { s.Tick.Ticks = -1 }, dynamo.ErrParameterBounds},
		{"negative random", func(s *Scenario) { s.Random.Count = -3 }, dynamo.ErrParameterBounds},
		{"negative digits", func(s *Scenario) { s.Pi.Digits = -1 }, dynamo.ErrParameterBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(s)
			if err := s.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if _, _, err := s.Build(); err == nil {
				t.Error("expected Build to fail")
			}
		})
	}
}

func TestBuildDuplicateID(t *testing.T) {
	s := Default()
	s.Balls[1].ID = s.Balls[0].ID
	if _, _, err := s.Build(); !errors.Is(err, dynamo.ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, ext := range []string{".yaml", ".toml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "scenario"+ext)
			s, err := GetPreset("heavy-center")
			if err != nil {
				t.Fatal(err)
			}
			s.Pointer = &PointerConfig{X: 10, Y: 20}
			s.Pi.SquashInterval = 0.25

			if err := Save(path, s); err != nil {
				t.Fatalf("save failed: %v", err)
			}
			loaded, err := Load(path)
			if err != nil {
				t.Fatalf("load failed: %v", err)
			}

			if loaded.World != s.World {
				t.Errorf("world %+v, want %+v", loaded.World, s.World)
			}
			if len(loaded.Balls) != len(s.Balls) {
				t.Fatalf("expected %d balls, got %d", len(s.Balls), len(loaded.Balls))
			}
			for i := range s.Balls {
				if loaded.Balls[i] != s.Balls[i] {
					t.Errorf("ball %d: %+v, want %+v", i, loaded.Balls[i], s.Balls[i])
				}
			}
			if loaded.Pointer == nil || *loaded.Pointer != *s.Pointer {
				t.Errorf("pointer %+v", loaded.Pointer)
			}
			if loaded.Pi != s.Pi {
				t.Errorf("pi %+v, want %+v", loaded.Pi, s.Pi)
			}
		})
	}
}

func TestLoadPartial(t *testing.T) {
	tests := []struct {
		file, body string
	}{
		{"partial.yaml", "world:\n  gravity_scaling: 2\ntick:\n  ticks: 10\n"},
		{"partial.toml", "[world]\ngravity_scaling = 2.0\n\n[tick]\nticks = 10\n"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.body), 0644); err != nil {
				t.Fatal(err)
			}
			s, err := Load(path)
			if err != nil {
				t.Fatalf("load failed: %v", err)
			}
			if s.World.GravityScaling != 2 {
				t.Errorf("gravity scaling %v, want 2", s.World.GravityScaling)
			}
			if s.World.PointerGravity != physics.DefaultPointerGravity {
				t.Errorf("pointer gravity lost its default: %v", s.World.PointerGravity)
			}
			if s.Tick.Ticks != 10 || s.Tick.Rate != 60 {
				t.Errorf("tick %+v", s.Tick)
			}
			if len(s.Balls) != 3 {
				t.Errorf("expected default roster, got %d balls", len(s.Balls))
			}
			if s.Name != "partial" {
				t.Errorf("name %q, want file stem", s.Name)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestPiSetup(t *testing.T) {
	s := Default()
	s.Pi = PiConfig{Digits: 4, SquashInterval: 1, TransformLevel: 2}

	setup, opts, err := s.PiSetup()
	if err != nil {
		t.Fatal(err)
	}
	if setup.MassRatio != 1e6 {
		t.Errorf("mass ratio %v, want 1e6", setup.MassRatio)
	}
	if opts.SquashInterval != 1 || opts.TransformLevel != 2 {
		t.Errorf("options %+v", opts)
	}

	s.Pi.SquashInterval = -1
	if _, _, err := s.PiSetup(); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
}

func TestSimConfig(t *testing.T) {
	s := Default()
	cfg := s.SimConfig()
	if cfg.Ticks != DefaultTicks || cfg.TickRate != 60 || !cfg.ValidateState {
		t.Errorf("unexpected sim config %+v", cfg)
	}
}
