// Package physics implements the gravity arena: circular balls that attract
// each other and a pointer-controlled point mass, collide with configurable
// restitution and bounce off the walls of a box.
//
// The engine advances in fixed ticks. One call to [Step] (or [Arena.Step])
// applies, in order:
//
//   - trail recording
//   - world gravity
//   - pairwise ball gravity ([Force])
//   - pointer gravity
//   - pairwise collision resolution ([Collide])
//   - movement with wall bounces ([MoveInBox])
//
// Velocities are in distance units per tick; a tick is the unit of time.
//
// # Example
//
//	arena := physics.NewArena(physics.NewBounds(600, 700), physics.DefaultRoster()...)
//	world := physics.DefaultWorld()
//	for i := 0; i < 60; i++ {
//	    arena.Step(world)
//	}
package physics
