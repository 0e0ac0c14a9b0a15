// Package dynamo provides the core types shared by the bouncing-ball
// simulation packages.
//
//   - [Sample]: one post-step snapshot of the ball (position, velocity)
//   - [Stepper]: anything that advances by one fixed step
//   - [Metric] and [Observer]: hooks the runner feeds every sample to
//   - [SimError]: an error located at a specific step
//
// # Example
//
//	ball, err := physics.NewBall(physics.DefaultBallConfig(), 20, 0)
//	if err != nil {
//	    return err
//	}
//	for s := range ball.Run(300) {
//	    fmt.Println(s.Position, s.Velocity)
//	}
//
// # Thread Safety
//
// Steppers own their state exclusively and are NOT safe for concurrent use.
package dynamo
