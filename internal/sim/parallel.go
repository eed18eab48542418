package sim

import (
	"context"
	"sync"

	"github.com/fynnbrem/homepage/internal/physics"
)

type SweepResult struct {
	World  physics.World
	Result *Result
	Err    error
}

// Sweep runs the arena once per world, concurrently. Each run gets its own
// copy of the arena and its own metrics from newMetrics, which may be nil.
// Results are in the order of worlds.
func Sweep(ctx context.Context, arena *physics.Arena, worlds []physics.World, cfg Config, newMetrics func() []Metric) []SweepResult {
	results := make([]SweepResult, len(worlds))

	var wg sync.WaitGroup
	for i := range worlds {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			s := New(arena.Clone(), worlds[idx])
			if newMetrics != nil {
				for _, m := range newMetrics() {
					s.AddMetric(m)
				}
			}

			res, err := s.Run(ctx, cfg)
			results[idx] = SweepResult{World: worlds[idx], Result: res, Err: err}
		}(i)
	}

	wg.Wait()
	return results
}

// WorldsFor returns copies of base with the named parameter set to each of
// values.
func WorldsFor(base physics.World, param string, values []float64) ([]physics.World, error) {
	worlds := make([]physics.World, len(values))
	for i, v := range values {
		w := base
		if err := w.SetParam(param, v); err != nil {
			return nil, err
		}
		worlds[i] = w
	}
	return worlds, nil
}
