package viz

import (
	"math"

	"github.com/fynnbrem/homepage/internal/physics"
)

// Viewport maps world coordinates onto canvas sub-pixels with one scale for
// both axes, keeping the world's aspect ratio.
type Viewport struct {
	Bounds  physics.Bounds
	Scale   float64
	OffsetX int
	OffsetY int
}

// Fit returns the largest viewport that shows all of b on c, centered.
func Fit(b physics.Bounds, c *Canvas) Viewport {
	pw, ph := float64(c.PixelWidth()-1), float64(c.PixelHeight()-1)
	scale := math.Min(pw/b.Width(), ph/b.Height())
	return Viewport{
		Bounds:  b,
		Scale:   scale,
		OffsetX: int((pw - b.Width()*scale) / 2),
		OffsetY: int((ph - b.Height()*scale) / 2),
	}
}

func (v Viewport) ToPixel(p physics.Vector2) (int, int) {
	x := (p[0]-v.Bounds.Left)*v.Scale + float64(v.OffsetX)
	y := (p[1]-v.Bounds.Top)*v.Scale + float64(v.OffsetY)
	return int(math.Round(x)), int(math.Round(y))
}

func (v Viewport) ToWorld(x, y int) physics.Vector2 {
	return physics.Vec(
		float64(x-v.OffsetX)/v.Scale+v.Bounds.Left,
		float64(y-v.OffsetY)/v.Scale+v.Bounds.Top,
	)
}

// Length converts a world distance to whole sub-pixels.
func (v Viewport) Length(l float64) int {
	return int(math.Round(l * v.Scale))
}
