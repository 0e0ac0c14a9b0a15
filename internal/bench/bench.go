// Package bench holds the timed workloads behind the sum and stress
// commands. Both take a timing.Clock so they can be tested without
// depending on real elapsed time.
package bench

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/physics"
	"github.com/san-kum/ballsim/internal/timing"
)

const (
	DefaultSumN        = 1_000_000
	DefaultStressSteps = 100_000_000
)

type Report struct {
	Name       string
	Iterations int
	Elapsed    time.Duration
	Sum        int64
	Final      dynamo.Sample
}

// PerSecond is the iteration throughput, or 0 when nothing was measured.
func (r Report) PerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Iterations) / r.Elapsed.Seconds()
}

// Sum adds the integers 0..n-1.
func Sum(n int, clock timing.Clock) Report {
	timer := timing.NewTimer(clock)

	timer.Start()
	var s int64
	for i := 0; i < n; i++ {
		s += int64(i)
	}
	timer.Stop()

	return Report{
		Name:       "sum",
		Iterations: max(n, 0),
		Elapsed:    timer.Elapsed(),
		Sum:        s,
	}
}

// Stress steps ball the given number of times and reports the final state.
func Stress(ball *physics.Ball, steps int, clock timing.Clock) Report {
	timer := timing.NewTimer(clock)
	last := ball.Current()

	timer.Start()
	for i := 0; i < steps; i++ {
		last = ball.Step()
	}
	timer.Stop()

	return Report{
		Name:       "stress",
		Iterations: max(steps, 0),
		Elapsed:    timer.Elapsed(),
		Final:      last,
	}
}

func WriteTable(w io.Writer, reports ...Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tITERATIONS\tTIME(s)\tTIME(ms)\tITER/SEC\tRESULT")

	for _, r := range reports {
		result := fmt.Sprintf("y=%.6f vy=%.6f", r.Final.Position, r.Final.Velocity)
		if r.Name == "sum" {
			result = fmt.Sprintf("%d", r.Sum)
		}
		fmt.Fprintf(tw, "%s\t%d\t%.6f\t%.3f\t%.0f\t%s\n",
			r.Name,
			r.Iterations,
			r.Elapsed.Seconds(),
			float64(r.Elapsed.Microseconds())/1000,
			r.PerSecond(),
			result,
		)
	}

	return tw.Flush()
}
