// Package timing measures elapsed time behind an injectable clock so that
// benchmark code can be tested without sleeping.
package timing

import (
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
}

type WallClock struct{}

func (WallClock) Now() time.Time { return time.Now() }

// ManualClock only moves when told to. If Tick is non-zero every call to
// Now advances the clock by Tick after reading it.
type ManualClock struct {
	mu   sync.Mutex
	now  time.Time
	Tick time.Duration
}

func NewManualClock(start time.Time, tick time.Duration) *ManualClock {
	return &ManualClock{now: start, Tick: tick}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.Tick)
	return t
}

func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
