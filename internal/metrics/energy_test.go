package metrics

import (
	"context"
	"math"
	"testing"

	"github.com/fynnbrem/homepage/internal/physics"
	"github.com/fynnbrem/homepage/internal/sim"
)

func singleBall(pos, vel physics.Vector2) *physics.Arena {
	return physics.NewArena(physics.NewBounds(600, 700), &physics.Ball{
		ID: "a", Pos: pos, Vel: vel, Mass: 2, Radius: 10, Elasticity: 1, Path: []physics.Vector2{},
	})
}

func TestEnergy(t *testing.T) {
	m := NewEnergy()
	a := singleBall(physics.Vec(100, 100), physics.Vec(3, 4))

	m.Observe(a, 0)
	if math.Abs(m.Value()-25) > 1e-9 {
		t.Errorf("expected energy 25, got %f", m.Value())
	}

	a.Balls[0].Vel = physics.Vec(0, 0)
	m.Observe(a, 1)
	if math.Abs(m.Value()-12.5) > 1e-9 {
		t.Errorf("expected mean energy 12.5, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDrift(t *testing.T) {
	m := NewEnergyDrift()
	a := singleBall(physics.Vec(100, 100), physics.Vec(1, 0))

	m.Observe(a, 0)
	a.Balls[0].Vel = physics.Vec(0.5, 0)
	m.Observe(a, 1)
	a.Balls[0].Vel = physics.Vec(1, 0)
	m.Observe(a, 2)

	if math.Abs(m.Value()-0.75) > 1e-9 {
		t.Errorf("expected max drift 0.75, got %f", m.Value())
	}
}

func TestEnergyDriftElasticBox(t *testing.T) {
	// no gravity, fully elastic walls: a lone ball keeps its speed
	w := physics.DefaultWorld()
	w.WallElasticity = 1
	s := sim.New(singleBall(physics.Vec(300, 300), physics.Vec(7, -3)), w)
	drift := NewEnergyDrift()
	s.AddMetric(drift)

	res, err := s.Run(context.Background(), sim.Config{Ticks: 500})
	if err != nil {
		t.Fatal(err)
	}
	if res.Metrics["energy_drift"] > 1e-12 {
		t.Errorf("expected no drift, got %g", res.Metrics["energy_drift"])
	}
}

func TestMomentumDrift(t *testing.T) {
	m := NewMomentumDrift()
	a := singleBall(physics.Vec(100, 100), physics.Vec(1, 0))

	m.Observe(a, 0)
	a.Balls[0].Vel = physics.Vec(-1, 0)
	m.Observe(a, 1)

	if math.Abs(m.Value()-4) > 1e-9 {
		t.Errorf("expected drift 4, got %f", m.Value())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestStability(t *testing.T) {
	a := singleBall(physics.Vec(100, 100), physics.Vec(0, 0))

	tests := []struct {
		name string
		pos  physics.Vector2
		want float64
	}{
		{"inside", physics.Vec(100, 100), 1},
		{"within margin", physics.Vec(-5, 100), 1},
		{"outside", physics.Vec(-50, 100), 0},
		{"NaN", physics.Vec(math.NaN(), 100), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStability(10)
			a.Balls[0].Pos = tt.pos
			s.Observe(a, 0)
			if s.Value() != tt.want {
				t.Errorf("got %v, want %v", s.Value(), tt.want)
			}
		})
	}

	if NewStability(0).Value() != 1 {
		t.Error("expected 1 without samples")
	}
}

func TestContacts(t *testing.T) {
	balls := []*physics.Ball{
		{ID: "l", Pos: physics.Vec(100, 100), Vel: physics.Vec(5, 0), Mass: 1, Radius: 10, Elasticity: 1, Path: []physics.Vector2{}},
		{ID: "r", Pos: physics.Vec(115, 100), Vel: physics.Vec(-5, 0), Mass: 1, Radius: 10, Elasticity: 1, Path: []physics.Vector2{}},
	}
	a := physics.NewArena(physics.NewBounds(600, 700), balls...)
	w := physics.DefaultWorld()
	w.GravityScaling = 0

	c := NewContacts()
	c.Observe(a, 0)
	if c.Value() != 0 {
		t.Errorf("expected 0 before any step, got %v", c.Value())
	}
	a.Step(w)
	c.Observe(a, 1)
	if a.TotalContacts() == 0 {
		t.Fatal("expected the balls to touch")
	}
	if c.Value() != float64(a.TotalContacts()) {
		t.Errorf("got %v, want %d", c.Value(), a.TotalContacts())
	}
}
