package collider

import (
	"context"
	"fmt"

	"github.com/fynnbrem/homepage/internal/dynamo"
	"github.com/fynnbrem/homepage/internal/physics"
)

// DefaultMaxEvents bounds a single simulation. Ten digits of pi need a
// little over 3e9 collisions.
const DefaultMaxEvents int64 = 10_000_000_000

// cancelCheckInterval is how many loop rounds pass between context checks.
const cancelCheckInterval = 1 << 16

// Mass is a block on the line.
type Mass struct {
	Mass float64 `msgpack:"mass" yaml:"mass" toml:"mass" json:"mass"`
	Vel  float64 `msgpack:"vel" yaml:"vel" toml:"vel" json:"vel"`
	Pos  float64 `msgpack:"pos" yaml:"pos" toml:"pos" json:"pos"`
}

// BlockConfig is the starting state. Major starts right of minor and moves
// towards it.
type BlockConfig struct {
	Minor Mass `msgpack:"minor" yaml:"minor" toml:"minor" json:"minor"`
	Major Mass `msgpack:"major" yaml:"major" toml:"major" json:"major"`
}

// Record is a snapshot of both blocks right after a collision.
type Record struct {
	// Squashes is the number of collisions this record stands for, itself
	// included. It is always at least 1.
	Squashes int64 `msgpack:"squashes" json:"squashes"`
	// Time is the absolute time of the collision.
	Time float64 `msgpack:"time" json:"time"`
	// DeltaTime is the time since the previous record.
	DeltaTime float64 `msgpack:"delta_time" json:"delta_time"`
	MinorVel  float64 `msgpack:"minor_vel" json:"minor_vel"`
	MajorVel  float64 `msgpack:"major_vel" json:"major_vel"`
	MinorPos  float64 `msgpack:"minor_pos" json:"minor_pos"`
	MajorPos  float64 `msgpack:"major_pos" json:"major_pos"`
}

// Options tune the record output. None of them change the physics.
type Options struct {
	// SquashInterval is the minimum time between two records. Collisions
	// closer to the last record are merged into the next one.
	SquashInterval float64 `msgpack:"squash_interval" yaml:"squash_interval" toml:"squash_interval" json:"squash_interval"`
	// TransformLevel compresses long gaps on the time axis; 0 disables it.
	TransformLevel float64 `msgpack:"transform_level" yaml:"transform_level" toml:"transform_level" json:"transform_level"`
	// MaxEvents bounds the number of collisions; 0 means DefaultMaxEvents.
	MaxEvents int64 `msgpack:"max_events" yaml:"max_events" toml:"max_events" json:"max_events"`
}

func (m Mass) validate(name string) error {
	if m.Mass <= 0 || !dynamo.Finite(m.Mass) {
		return fmt.Errorf("%s block mass %v: %w", name, m.Mass, dynamo.ErrInvalidMass)
	}
	if !dynamo.Finite(m.Vel, m.Pos) {
		return fmt.Errorf("%s block state: %w", name, dynamo.ErrInvalidState)
	}
	return nil
}

func (c BlockConfig) Validate() error {
	if err := c.Minor.validate("minor"); err != nil {
		return err
	}
	if err := c.Major.validate("major"); err != nil {
		return err
	}
	if c.Minor.Pos < 0 {
		return fmt.Errorf("minor block behind the wall at %v: %w", c.Minor.Pos, dynamo.ErrParameterBounds)
	}
	if c.Major.Pos < c.Minor.Pos {
		return fmt.Errorf("major block left of minor block: %w", dynamo.ErrParameterBounds)
	}
	return nil
}

func (o Options) Validate() error {
	if o.SquashInterval < 0 || !dynamo.Finite(o.SquashInterval) {
		return fmt.Errorf("squash interval %v: %w", o.SquashInterval, dynamo.ErrParameterBounds)
	}
	if o.TransformLevel < 0 || !dynamo.Finite(o.TransformLevel) {
		return fmt.Errorf("transform level %v: %w", o.TransformLevel, dynamo.ErrParameterBounds)
	}
	if o.MaxEvents < 0 {
		return fmt.Errorf("max events %d: %w", o.MaxEvents, dynamo.ErrParameterBounds)
	}
	return nil
}

// Simulate returns every collision of the blocks in cfg, squashed according
// to opts. The blocks are treated as touching at the start: the major block
// is moved onto the minor block's position before the first collision.
func Simulate(cfg BlockConfig, opts Options) ([]Record, error) {
	return SimulateContext(context.Background(), cfg, opts)
}

// SimulateContext is Simulate with cancellation. A canceled run returns the
// context error and no records.
//
// If the event budget runs out, the records so far are returned together
// with dynamo.ErrIterationLimit.
func SimulateContext(ctx context.Context, cfg BlockConfig, opts Options) ([]Record, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	maxEvents := opts.MaxEvents
	if maxEvents == 0 {
		maxEvents = DefaultMaxEvents
	}

	minor := cfg.Minor
	major := cfg.Major
	major.Pos = minor.Pos

	rec := newRecorder(opts.SquashInterval, newCompressor(opts.TransformLevel))
	var events int64
	limit := func() ([]Record, error) {
		return rec.finish(), fmt.Errorf("after %d collisions: %w", events, dynamo.ErrIterationLimit)
	}

	for iter := 0; ; iter++ {
		if iter%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		// Block to block: the minor block has to be faster to catch up.
		if major.Vel >= minor.Vel {
			break
		}
		if events >= maxEvents {
			return limit()
		}
		relVel := major.Vel - minor.Vel
		blockDt := -(major.Pos - minor.Pos) / relVel

		minor.Pos += blockDt * minor.Vel
		major.Pos = minor.Pos

		dMinor, dMajor := physics.CollisionVelocityDelta(relVel, minor.Mass, major.Mass, 1)
		minor.Vel += dMinor
		major.Vel += dMajor
		events++
		if err := rec.push(blockDt, minor, major); err != nil {
			return nil, &dynamo.SimulationError{Step: int(events), Time: rec.total, Wrapped: err}
		}

		// Block to wall: only if the minor block moves towards the wall.
		if minor.Vel >= 0 {
			break
		}
		if events >= maxEvents {
			return limit()
		}
		wallDt := -minor.Pos / minor.Vel

		minor.Pos = 0
		major.Pos += wallDt * major.Vel
		minor.Vel = -minor.Vel
		events++
		if err := rec.push(wallDt, minor, major); err != nil {
			return nil, &dynamo.SimulationError{Step: int(events), Time: rec.total, Wrapped: err}
		}
	}

	return rec.finish(), nil
}

// CountCollisions returns the number of collisions the records stand for.
func CountCollisions(records []Record) int64 {
	var n int64
	for _, r := range records {
		n += r.Squashes
	}
	return n
}

// recorder accumulates time and squashes dense collisions.
type recorder struct {
	interval   float64
	compress   *compressor
	records    []Record
	total      float64
	lastSquash float64
	lastRecord float64
	pending    int64
	last       Record
}

func newRecorder(interval float64, c *compressor) *recorder {
	return &recorder{
		interval: interval,
		compress: c,
		// negative so the first collision is never squashed
		lastSquash: -interval*2 - 1,
	}
}

func (r *recorder) push(dt float64, minor, major Mass) error {
	if !dynamo.Finite(dt, minor.Pos, minor.Vel, major.Pos, major.Vel) || dt < 0 {
		return dynamo.ErrDiverged
	}
	r.total += r.compress.apply(dt)
	r.last = Record{
		Time:     r.total,
		MinorVel: minor.Vel,
		MajorVel: major.Vel,
		MinorPos: minor.Pos,
		MajorPos: major.Pos,
	}
	if r.total > r.lastSquash+r.interval {
		r.emit()
		r.lastSquash = r.total
	} else {
		r.pending++
	}
	return nil
}

func (r *recorder) emit() {
	rec := r.last
	rec.Squashes = 1 + r.pending
	rec.DeltaTime = rec.Time - r.lastRecord
	r.records = append(r.records, rec)
	r.lastRecord = rec.Time
	r.pending = 0
}

// finish flushes collisions that were squashed after the last record, so the
// final state and the total count survive.
func (r *recorder) finish() []Record {
	if r.pending > 0 {
		r.pending--
		r.emit()
	}
	if r.records == nil {
		r.records = []Record{}
	}
	return r.records
}
