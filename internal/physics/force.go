package physics

import "math"

// DefaultMinForceDistance is the separation below which gravity stops
// growing. It keeps the radius-less pointer from flinging balls when it sits
// on top of them.
const DefaultMinForceDistance = 10.0

// Force returns the gravitational force between a and b as a vector pointing
// from a to b. The magnitude is m_a*m_b / d^distanceExp; the direction vector
// is left unnormalized and the extra 1/d is folded into the exponent.
//
// Separations below minDistance are clamped to it. Coincident bodies yield the
// zero vector.
func Force(a, b VoidBall, distanceExp, minDistance float64) Vector2 {
	distance := Distance(a.Pos, b.Pos)
	if distance == 0 {
		return Vector2{}
	}
	distance = math.Max(minDistance, distance)
	scale := a.Mass * b.Mass / math.Pow(distance, 1+distanceExp)
	return b.Pos.Sub(a.Pos).Mul(scale)
}
