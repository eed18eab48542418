package collider

import "math"

// compressor reshapes time deltas for playback pacing. Each delta is raised
// to 2/(2+level) and scaled so the first non-zero delta keeps its length:
// short gaps stay as they are while the long gaps near the end of a run
// shrink.
type compressor struct {
	exp   float64
	scale float64
	fixed bool
}

func newCompressor(level float64) *compressor {
	if level == 0 {
		return nil
	}
	return &compressor{exp: 2 / (2 + level)}
}

func (c *compressor) apply(dt float64) float64 {
	if c == nil || dt == 0 {
		return dt
	}
	if !c.fixed {
		c.scale = dt / math.Pow(dt, c.exp)
		c.fixed = true
	}
	return c.scale * math.Pow(dt, c.exp)
}
