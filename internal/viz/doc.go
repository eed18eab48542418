// Package viz draws the arena and the pi collider in the terminal.
//
// Both viewers are Bubble Tea programs rendering onto a [Canvas] of braille
// characters:
//
//   - [ArenaModel]: the live gravity arena. The mouse steers the pointer
//     attractor, world options are tuned from the keyboard and the kinetic
//     energy is charted as the arena runs.
//   - [PlaybackModel]: computes a block collision run on a
//     collider.Worker and replays it with a running collision counter.
//
// # Key Bindings (arena)
//
//	Space - Pause/Resume
//	R     - Reset arena and world options
//	Tab   - Select world option, Up/Down to tune
//	A/X   - Add a random ball / remove the newest
//	P     - Toggle the pointer
//	G     - Toggle GIF recording
//	T     - Cycle color themes
//	?     - Show help overlay
//
// # Recording
//
// G records canvas frames and writes them to arena.gif in the working
// directory when pressed again.
package viz
