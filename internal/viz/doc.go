// Package viz provides the live terminal view of a bouncing ball.
//
// The view is a Bubble Tea model: every tick advances the ball by a fixed
// number of steps, redraws it on a vertical column and appends its height
// to a rolling asciigraph plot.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset to the start state
//	+/-   - Raise/lower restitution by 0.05
//	Q     - Quit
package viz
