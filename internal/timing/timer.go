package timing

import "time"

// Timer is a start/stop stopwatch.
type Timer struct {
	clock   Clock
	start   time.Time
	elapsed time.Duration
	running bool
}

// NewTimer returns a timer reading clock, or the wall clock if clock is nil.
func NewTimer(clock Clock) *Timer {
	if clock == nil {
		clock = WallClock{}
	}
	return &Timer{clock: clock}
}

func (t *Timer) Start() {
	t.start = t.clock.Now()
	t.elapsed = 0
	t.running = true
}

// Stop ends the measurement and returns the elapsed seconds.
// Calling Stop on a stopped timer returns the last measurement.
func (t *Timer) Stop() float64 {
	if t.running {
		t.elapsed = t.clock.Now().Sub(t.start)
		t.running = false
	}
	return t.elapsed.Seconds()
}

func (t *Timer) Elapsed() time.Duration {
	if t.running {
		return t.clock.Now().Sub(t.start)
	}
	return t.elapsed
}
