// Package collider enumerates the collisions of two blocks sliding on a
// frictionless line towards a wall.
//
// The small ("minor") block sits between the wall at position 0 and the
// large ("major") block, which approaches from the right. All collisions are
// perfectly elastic. Instead of stepping time, [Simulate] solves for the time
// of the next block-block or block-wall contact in closed form and jumps
// straight to it. With a mass ratio of 100^(n-1) the total number of
// collisions spells the first n digits of pi.
//
// Collisions can become arbitrarily dense, so records closer together than
// the squash interval are merged. Each record counts how many collisions it
// stands for, so no collision is lost from the total.
//
// [Worker] runs simulations off the caller's goroutine and [Playback] turns a
// record list back into block positions for any point in time.
package collider
