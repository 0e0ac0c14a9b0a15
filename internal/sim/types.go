package sim

import "github.com/san-kum/ballsim/internal/dynamo"

type Options struct {
	Steps int
	// KeepEvery records every n-th sample; the last sample is always kept.
	KeepEvery     int
	ValidateState bool
}

func DefaultOptions() Options {
	return Options{
		Steps:         1000,
		KeepEvery:     1,
		ValidateState: true,
	}
}

type Result struct {
	Start        dynamo.Sample
	Samples      []dynamo.Sample
	Metrics      map[string]float64
	StepsTaken   int
	Bounces      int
	FirstContact int
}
