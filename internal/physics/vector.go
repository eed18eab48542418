package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vector2 is a 2D value vector. Operations return new vectors, so a Vector2
// can be shared freely between bodies without aliasing.
type Vector2 = mgl64.Vec2

// Vec builds a Vector2.
func Vec(x, y float64) Vector2 {
	return Vector2{x, y}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vector2) float64 {
	return a.Sub(b).Len()
}

// Negate returns -v.
func Negate(v Vector2) Vector2 {
	return Vector2{-v[0], -v[1]}
}

// RotatedVector returns a vector of the given length rotated clockwise by
// angle radians from the positive y-axis, so angle 0 points up on screen.
func RotatedVector(angle, length float64) Vector2 {
	return Vector2{math.Sin(angle) * length, -math.Cos(angle) * length}
}

// DegreeToRad converts degrees to radians.
func DegreeToRad(degree float64) float64 {
	return degree / 180 * math.Pi
}

// RadToDegree converts radians to degrees.
func RadToDegree(rad float64) float64 {
	return rad * 180 / math.Pi
}

// RoundTo rounds num to the n-th decimal. Negative n rounds before the
// decimal point.
func RoundTo(num float64, n int) float64 {
	factor := math.Pow(10, float64(n))
	return math.Round(num*factor) / factor
}

// FloorTo floors num to the n-th decimal. Negative n floors before the
// decimal point.
func FloorTo(num float64, n int) float64 {
	factor := math.Pow(10, float64(n))
	return math.Floor(num*factor) / factor
}
