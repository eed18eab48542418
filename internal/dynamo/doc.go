// Package dynamo holds the primitives shared by the arena engine and the
// block collider: domain errors, the parameter interface used by the live
// viewers, and a small fan-out helper for running independent simulations.
//
// # Errors
//
// Every validation failure in the engine packages wraps one of the sentinel
// errors declared here, so callers can branch with [errors.Is]:
//
//	if _, err := physics.NewBall(cfg, pos, vel); errors.Is(err, dynamo.ErrInvalidMass) {
//	    ...
//	}
//
// # Thread Safety
//
// Nothing in the engine packages is safe for concurrent mutation of the same
// arena. Independent simulations may run in parallel; see [ParallelFor].
package dynamo
