package config

import (
	"fmt"
	"math"
	"sort"

	"github.com/fynnbrem/homepage/internal/dynamo"
	"github.com/fynnbrem/homepage/internal/physics"
)

func ball(id, color string, mass, radius, elasticity float64, pos, vel [2]float64) BallSpec {
	return BallSpec{
		BallConfig: physics.BallConfig{ID: id, Color: color, Mass: mass, Radius: radius, Elasticity: elasticity},
		Pos:        pos,
		Vel:        vel,
	}
}

var Presets = map[string]func() *Scenario{
	"default": Default,
	"binary": func() *Scenario {
		s := Default()
		s.Name = "binary"
		s.World.TrailLength = 60
		s.Balls = []BallSpec{
			ball("left", "#e37e21", 500, 20, 1, [2]float64{250, 350}, [2]float64{0, -3}),
			ball("right", "#eda503", 500, 20, 1, [2]float64{350, 350}, [2]float64{0, 3}),
		}
		return s
	},
	"heavy-center": func() *Scenario {
		s := Default()
		s.Name = "heavy-center"
		s.World.TrailLength = 45
		s.Balls = []BallSpec{
			ball("sun", "#f59e0b", 1000, 45, 0.2, [2]float64{300, 350}, [2]float64{0, 0}),
			ball("inner", "#fb923c", 25, 5, 0.9, [2]float64{300, 250}, [2]float64{4, 0}),
			ball("middle", "#ea580c", 50, 10, 0.9, [2]float64{300, 500}, [2]float64{-3, 0}),
			ball("outer", "#c2410c", 25, 5, 0.9, [2]float64{80, 350}, [2]float64{0, 2.5}),
		}
		return s
	},
	"zero-g-billiards": func() *Scenario {
		s := Default()
		s.Name = "zero-g-billiards"
		s.World.PointerGravity = 0
		s.World.WallElasticity = 1
		s.World.WorldGravity = physics.Directional{Magnitude: 0, Angle: math.Pi}
		s.Balls = []BallSpec{ball("cue", "#ffffff", 1, 12, 1, [2]float64{300, 600}, [2]float64{0, -8})}
		// five-row rack pointing at the cue ball
		n := 0
		for row := 0; row < 5; row++ {
			for col := 0; col <= row; col++ {
				x := 300 + (float64(col)-float64(row)/2)*25
				y := 250 - float64(row)*22
				s.Balls = append(s.Balls, ball(fmt.Sprintf("rack-%d", n), "#e37e21", 1, 12, 1, [2]float64{x, y}, [2]float64{0, 0}))
				n++
			}
		}
		return s
	},
	"rain": func() *Scenario {
		s := Default()
		s.Name = "rain"
		s.World.WorldGravity = physics.Directional{Magnitude: 50, Angle: math.Pi}
		s.World.WallElasticity = 0.6
		s.Balls = nil
		s.Random = RandomConfig{Count: 12, Seed: 1}
		return s
	},
}

// GetPreset returns a fresh copy of the named preset.
func GetPreset(name string) (*Scenario, error) {
	fn, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("preset %q: %w", name, dynamo.ErrUnknownPreset)
	}
	return fn(), nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
