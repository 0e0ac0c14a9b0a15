package analysis

import "github.com/san-kum/ballsim/internal/dynamo"

// BounceIntervals returns the number of steps between consecutive
// contacts. Fewer than two contacts yields an empty slice.
func BounceIntervals(samples []dynamo.Sample) []int {
	intervals := make([]int, 0)
	last := -1
	for _, s := range samples {
		if !s.Bounced {
			continue
		}
		if last >= 0 {
			intervals = append(intervals, s.Step-last)
		}
		last = s.Step
	}
	return intervals
}

// Heights extracts the position trace from samples.
func Heights(samples []dynamo.Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Position
	}
	return out
}

// Velocities extracts the velocity trace from samples.
func Velocities(samples []dynamo.Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Velocity
	}
	return out
}
