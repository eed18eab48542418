package collider

import (
	"context"
	"fmt"
	"math"

	"github.com/fynnbrem/homepage/internal/dynamo"
)

// MinorLength is the drawn width of the minor block.
const MinorLength = 80.0

// Setup is a ready-to-run pi experiment.
type Setup struct {
	Blocks    BlockConfig
	MassRatio float64
	Digits    int
	// MinorLength and MajorLength are drawing widths. The major block grows
	// with the log of the mass ratio, smoothed by a 0.8 power.
	MinorLength float64
	MajorLength float64
}

// MassRatioForDigits returns 100^(digits-1).
func MassRatioForDigits(digits int) float64 {
	return math.Pow(100, float64(digits-1))
}

// SetupForDigits builds the experiment whose collision count spells the
// first digits of pi.
func SetupForDigits(digits int) (Setup, error) {
	if digits < 1 {
		return Setup{}, fmt.Errorf("digits %d: %w", digits, dynamo.ErrParameterBounds)
	}
	ratio := MassRatioForDigits(digits)
	sizeRatio := math.Pow(1+math.Log(ratio)/math.Log(100), 0.8)
	return Setup{
		Blocks: BlockConfig{
			Minor: Mass{Mass: 1, Vel: 0, Pos: 20},
			Major: Mass{Mass: ratio, Vel: -1, Pos: 25},
		},
		MassRatio:   ratio,
		Digits:      digits,
		MinorLength: MinorLength,
		MajorLength: MinorLength * sizeRatio,
	}, nil
}

// PiDigits returns the first n digits of pi as an integer, e.g. 314 for n=3.
// n is limited to 18.
func PiDigits(n int) int64 {
	const digits = "314159265358979323"
	if n < 1 {
		return 0
	}
	if n > len(digits) {
		n = len(digits)
	}
	var v int64
	for _, c := range digits[:n] {
		v = v*10 + int64(c-'0')
	}
	return v
}

// countSquashInterval is longer than any run, so a count keeps the first
// record and one flushed record holding everything after it.
const countSquashInterval = 1e12

// CountForDigits returns the number of collisions for the given number of
// digits without keeping the individual records.
func CountForDigits(ctx context.Context, digits int) (int64, error) {
	setup, err := SetupForDigits(digits)
	if err != nil {
		return 0, err
	}
	records, err := SimulateContext(ctx, setup.Blocks, Options{SquashInterval: countSquashInterval})
	return CountCollisions(records), err
}
