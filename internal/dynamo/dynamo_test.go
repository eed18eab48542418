package dynamo

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"
)

func TestFinite(t *testing.T) {
	tests := []struct {
		name string
		vals []float64
		want bool
	}{
		{"empty", nil, true},
		{"normal", []float64{1, -2, 3.5}, true},
		{"with NaN", []float64{1, math.NaN()}, false},
		{"with +Inf", []float64{math.Inf(1)}, false},
		{"with -Inf", []float64{0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Finite(tt.vals...); got != tt.want {
				t.Errorf("Finite() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSimulationError(t *testing.T) {
	err := &SimulationError{Time: 1.5, Step: 90, Wrapped: ErrInvalidState}
	expected := "step 90 (t=1.5000): dynamo: invalid state (NaN or Inf detected)"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, ErrInvalidState) {
		t.Error("SimulationError does not unwrap to its cause")
	}
}

func TestParallelForCoversRange(t *testing.T) {
	tests := []struct {
		name       string
		n, workers int
	}{
		{"empty", 0, 4},
		{"single", 1, 4},
		{"more workers than items", 7, 16},
		{"default workers", 100, 0},
		{"one worker", 1001, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen := make([]int32, tt.n)
			err := ParallelFor(context.Background(), tt.n, tt.workers, func(ctx context.Context, i int) error {
				atomic.AddInt32(&seen[i], 1)
				return nil
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for i, c := range seen {
				if c != 1 {
					t.Fatalf("index %d visited %d times", i, c)
				}
			}
		})
	}
}

func TestParallelForStopsOnError(t *testing.T) {
	var calls int32
	err := ParallelFor(context.Background(), 1000, 2, func(ctx context.Context, i int) error {
		atomic.AddInt32(&calls, 1)
		switch {
		case i < 3:
			return nil
		case i == 3:
			return ErrDiverged
		}
		<-ctx.Done()
		return nil
	})
	if !errors.Is(err, ErrDiverged) {
		t.Fatalf("expected ErrDiverged, got %v", err)
	}
	if c := atomic.LoadInt32(&calls); c >= 1000 {
		t.Errorf("expected the error to stop the loop, got %d calls", c)
	}
}

func TestParallelForCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := ParallelFor(ctx, 10, 2, func(ctx context.Context, i int) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
