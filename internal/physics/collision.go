package physics

// fallbackNormal separates two balls whose centers coincide exactly, where
// the contact normal is undefined.
var fallbackNormal = Vector2{1, 0}

// Overlap returns how far two balls interpenetrate. It is positive when they
// overlap and negative otherwise.
func Overlap(a, b *Ball) float64 {
	return a.Radius + b.Radius - Distance(a.Pos, b.Pos)
}

// Collide resolves a contact between two overlapping balls. overlap must be
// positive. Both velocities receive the collision impulse along the contact
// normal and both positions are pushed apart, the lighter ball moving
// further.
//
// Pairs already moving apart are left untouched and Collide returns false.
func Collide(a, b *Ball, overlap float64) bool {
	offset := b.Pos.Sub(a.Pos)
	norm := fallbackNormal
	if offset.LenSqr() > 0 {
		norm = offset.Normalize()
	}
	relativeVel := b.Vel.Sub(a.Vel)
	collisionVel := norm.Dot(relativeVel)

	if collisionVel > 0 {
		return false
	}

	restitution := CombineRestitution(a.Elasticity, b.Elasticity)
	dva, dvb := CollisionVelocityDelta(collisionVel, a.Mass, b.Mass, restitution)
	a.Vel = a.Vel.Add(norm.Mul(dva))
	b.Vel = b.Vel.Add(norm.Mul(dvb))

	separation := overlap / (a.Mass + b.Mass)
	a.Pos = a.Pos.Sub(norm.Mul(b.Mass * separation))
	b.Pos = b.Pos.Add(norm.Mul(a.Mass * separation))
	return true
}
