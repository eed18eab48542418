package physics

// Bounds is an axis-aligned box. Y grows downwards, so Top < Bottom.
type Bounds struct {
	Left, Right, Top, Bottom float64
}

// NewBounds returns the box [0, width] x [0, height].
func NewBounds(width, height float64) Bounds {
	return Bounds{Left: 0, Right: width, Top: 0, Bottom: height}
}

func (b Bounds) Width() float64  { return b.Right - b.Left }
func (b Bounds) Height() float64 { return b.Bottom - b.Top }

// Contains reports whether p lies inside the box, edges included.
func (b Bounds) Contains(p Vector2) bool {
	return p[0] >= b.Left && p[0] <= b.Right && p[1] >= b.Top && p[1] <= b.Bottom
}

// MoveInBox moves the ball by its velocity while keeping it inside box.
// Each axis is handled on its own: a ball that would cross a wall is clamped
// to touch it and its velocity on that axis is reflected and scaled by the
// combined restitution of ball and wall.
func MoveInBox(ball *Ball, box Bounds, wallElasticity float64) {
	restitution := CombineRestitution(ball.Elasticity, wallElasticity)
	target := ball.Pos.Add(ball.Vel)
	radius := ball.Radius

	switch {
	case target[0]-radius < box.Left:
		ball.Pos[0] = box.Left + radius
		ball.Vel[0] = -ball.Vel[0] * restitution
	case target[0]+radius > box.Right:
		ball.Pos[0] = box.Right - radius
		ball.Vel[0] = -ball.Vel[0] * restitution
	default:
		ball.Pos[0] = target[0]
	}

	switch {
	case target[1]-radius < box.Top:
		ball.Pos[1] = box.Top + radius
		ball.Vel[1] = -ball.Vel[1] * restitution
	case target[1]+radius > box.Bottom:
		ball.Pos[1] = box.Bottom - radius
		ball.Vel[1] = -ball.Vel[1] * restitution
	default:
		ball.Pos[1] = target[1]
	}
}
