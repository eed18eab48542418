package physics

import (
	"math/rand"

	uuid "github.com/satori/go.uuid"
)

// SpawnPos is where interactively added balls appear.
var SpawnPos = Vector2{200, 200}

// NewBallID returns a fresh random ball id.
func NewBallID() string {
	return uuid.NewV4().String()
}

// SpawnBall creates a resting ball at SpawnPos.
func SpawnBall(cfg BallConfig) (*Ball, error) {
	return NewBall(cfg, SpawnPos, Vector2{})
}

var randomParams = struct {
	radius     []float64
	mass       []float64
	elasticity []float64
	color      []string
}{
	radius:     []float64{5, 10, 15, 20, 25, 35, 45},
	mass:       []float64{25, 50, 100, 250, 500, 1000},
	elasticity: []float64{0, 0.1, 0.2, 0.8, 0.9, 1},
	color: []string{
		// reds
		"#912500", "#ac1500",
		// oranges
		"#b34500", "#cd4315", "#ed6503", "#dc7e2e",
		// yellows
		"#e37e21", "#faa300", "#eda503", "#ffc341",
	},
}

// RandomBallConfig draws a ball configuration from the preset value lists.
func RandomBallConfig(rng *rand.Rand) BallConfig {
	return BallConfig{
		ID:         NewBallID(),
		Color:      randomParams.color[rng.Intn(len(randomParams.color))],
		Mass:       randomParams.mass[rng.Intn(len(randomParams.mass))],
		Radius:     randomParams.radius[rng.Intn(len(randomParams.radius))],
		Elasticity: randomParams.elasticity[rng.Intn(len(randomParams.elasticity))],
	}
}

// DefaultRoster returns the three balls the arena starts with.
func DefaultRoster() []*Ball {
	return []*Ball{
		{
			ID:         "abb9b19c-7946-4d60-a12d-cd5d38323f5c",
			Pos:        Vector2{100, 100},
			Vel:        Vector2{10, 0},
			Mass:       100,
			Radius:     25,
			Elasticity: 1,
			Color:      "#e37e21",
			Path:       []Vector2{},
		},
		{
			ID:         "32e51e1b-b922-4059-a37c-7ceb1ccef856",
			Pos:        Vector2{225, 100},
			Vel:        Vector2{5, 5},
			Mass:       200,
			Radius:     15,
			Elasticity: 0.8,
			Color:      "#eda503",
			Path:       []Vector2{},
		},
		{
			ID:         "fb13f223-081d-4ada-9f51-2c4302d08df6",
			Pos:        Vector2{150, 150},
			Vel:        Vector2{0, -2},
			Mass:       50,
			Radius:     10,
			Elasticity: 0.2,
			Color:      "#b34500",
			Path:       []Vector2{},
		},
	}
}
