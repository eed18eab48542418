package physics

// CombineRestitution returns the coefficient of restitution for a contact
// between two bodies. The true value is a property of the pair, not of either
// body; the product is used as an approximation.
func CombineRestitution(cor1, cor2 float64) float64 {
	return cor1 * cor2
}

// CollisionVelocityDelta returns the velocity change of two bodies after a
// one-dimensional collision along their contact normal.
//
// relVel is the relative velocity v2 - v1. The impulse is not scaled with the
// mass product of the bodies, so each delta multiplies in the other body's
// mass instead of dividing out its own.
func CollisionVelocityDelta(relVel, mass1, mass2, restitution float64) (dv1, dv2 float64) {
	impulse := (1 + restitution) * relVel / (mass1 + mass2)
	return impulse * mass2, -impulse * mass1
}
