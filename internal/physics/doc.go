// Package physics provides the bouncing-ball model.
//
// A [Ball] holds one body's vertical position and velocity and advances
// them with a fixed time step under constant gravity. A floor at y=0
// reflects the ball, keeping a fraction of its speed set by the
// restitution coefficient:
//
//   - restitution 1: perfectly elastic, speed is preserved exactly
//   - 0 < restitution < 1: damped; rebounds slower than the rest
//     threshold are zeroed so the ball settles instead of micro-bouncing
//   - restitution 0: the ball stops dead on contact
//
// [Ball] also implements [dynamo.Hamiltonian] and [dynamo.Configurable]:
//
//	ball, _ := physics.NewBall(cfg, 20, 0)
//	for s := range ball.Run(300) {
//	    e := ball.Energy(s)
//	}
package physics
