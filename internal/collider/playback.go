package collider

import "sort"

// CalculatePosition returns the position of a body after time t under
// constant acceleration.
func CalculatePosition(pos, vel, acc, t float64) float64 {
	return pos + vel*t + 0.5*acc*t*t
}

// InterpolatePosition moves linearly from startPos at startTime to endPos at
// endTime and returns the position at current.
func InterpolatePosition(startPos, endPos, startTime, endTime, current float64) float64 {
	if endTime == startTime {
		return endPos
	}
	rel := (current - startTime) / (endTime - startTime)
	return startPos + (endPos-startPos)*rel
}

// Frame is the state of the blocks at one playback time.
type Frame struct {
	Time     float64
	MinorPos float64
	MajorPos float64
	// Collisions is the number of collisions up to Time.
	Collisions int64
	// Final is set once the last collision has passed.
	Final bool
}

// Playback replays a record list. Between records the blocks move in a
// straight line from one snapshot to the next; after the last record they
// keep their final velocities.
type Playback struct {
	start   Mass
	records []Record
	counts  []int64
}

// NewPlayback prepares records produced from cfg for replay.
func NewPlayback(cfg BlockConfig, records []Record) *Playback {
	counts := make([]int64, len(records))
	var n int64
	for i, r := range records {
		n += r.Squashes
		counts[i] = n
	}
	return &Playback{start: cfg.Minor, records: records, counts: counts}
}

// Duration returns the time of the last record.
func (p *Playback) Duration() float64 {
	if len(p.records) == 0 {
		return 0
	}
	return p.records[len(p.records)-1].Time
}

// Total returns the number of collisions in the replay.
func (p *Playback) Total() int64 {
	if len(p.counts) == 0 {
		return 0
	}
	return p.counts[len(p.counts)-1]
}

// At returns the frame at time t.
func (p *Playback) At(t float64) Frame {
	if len(p.records) == 0 {
		return Frame{Time: t, MinorPos: p.start.Pos, MajorPos: p.start.Pos, Final: true}
	}

	// index of the first record strictly after t
	next := sort.Search(len(p.records), func(i int) bool { return p.records[i].Time > t })

	if next == len(p.records) {
		last := p.records[len(p.records)-1]
		dt := t - last.Time
		return Frame{
			Time:       t,
			MinorPos:   CalculatePosition(last.MinorPos, last.MinorVel, 0, dt),
			MajorPos:   CalculatePosition(last.MajorPos, last.MajorVel, 0, dt),
			Collisions: p.Total(),
			Final:      true,
		}
	}

	to := p.records[next]
	var from Record
	var count int64
	if next == 0 {
		from = Record{MinorPos: p.start.Pos, MajorPos: p.start.Pos}
	} else {
		from = p.records[next-1]
		count = p.counts[next-1]
	}
	return Frame{
		Time:       t,
		MinorPos:   InterpolatePosition(from.MinorPos, to.MinorPos, from.Time, to.Time, t),
		MajorPos:   InterpolatePosition(from.MajorPos, to.MajorPos, from.Time, to.Time, t),
		Collisions: count,
	}
}
