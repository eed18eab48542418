package sim

import "github.com/fynnbrem/homepage/internal/physics"

// DefaultTickRate is the arena's frame rate in ticks per second.
const DefaultTickRate = 60.0

type Metric interface {
	Name() string
	Observe(a *physics.Arena, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(a *physics.Arena, t float64)
}

type Config struct {
	// TickRate only converts ticks to seconds; a tick is always one unit of
	// simulation time. 0 means DefaultTickRate.
	TickRate float64
	// Ticks is the run length. RunRealtime treats 0 as unbounded.
	Ticks         int
	ValidateState bool
	// SampleEvery takes a snapshot every n ticks; 0 means every tick.
	SampleEvery int
}

func (c Config) withDefaults() Config {
	if c.TickRate == 0 {
		c.TickRate = DefaultTickRate
	}
	if c.SampleEvery == 0 {
		c.SampleEvery = 1
	}
	return c
}

type BallState struct {
	ID  string          `json:"id"`
	Pos physics.Vector2 `json:"pos"`
	Vel physics.Vector2 `json:"vel"`
}

type Snapshot struct {
	Tick  int         `json:"tick"`
	Time  float64     `json:"time"`
	Balls []BallState `json:"balls"`
}

func TakeSnapshot(a *physics.Arena, tickRate float64) Snapshot {
	s := Snapshot{
		Tick:  a.Tick(),
		Time:  float64(a.Tick()) / tickRate,
		Balls: make([]BallState, len(a.Balls)),
	}
	for i, b := range a.Balls {
		s.Balls[i] = BallState{ID: b.ID, Pos: b.Pos, Vel: b.Vel}
	}
	return s
}

type Result struct {
	Snapshots     []Snapshot
	Metrics       map[string]float64
	StepsTaken    int
	Contacts      int
	InitialEnergy float64
	FinalEnergy   float64
	// Final is the arena after the last tick, trails included.
	Final *physics.Arena
}
