package metrics

import "github.com/fynnbrem/homepage/internal/physics"

// Stability is the share of observed ticks in which every ball had a finite
// state and its center inside the arena widened by margin.
type Stability struct {
	name       string
	margin     float64
	violations int
	samples    int
}

func NewStability(margin float64) *Stability {
	return &Stability{
		name:   "stability",
		margin: margin,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(a *physics.Arena, t float64) {
	s.samples++
	box := physics.Bounds{
		Left:   a.Bounds.Left - s.margin,
		Right:  a.Bounds.Right + s.margin,
		Top:    a.Bounds.Top - s.margin,
		Bottom: a.Bounds.Bottom + s.margin,
	}
	for _, b := range a.Balls {
		if !b.Valid() || !box.Contains(b.Pos) {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
