// Package stats contains event rate counters used to instrument how often measurements are
// produced.
package stats

import (
	"sync"
	"time"

	clk "github.com/benbjohnson/clock"
	"go.uber.org/atomic"
)

// RateCounter counts events and reports their average rate over a moving window. The rate is
// recomputed lazily on read, once more than the averaging interval has elapsed since the last
// recomputation; in between, the previous rate is returned.
type RateCounter struct {
	interval time.Duration
	clock    clk.Clock

	count *atomic.Uint64

	mu          sync.Mutex
	latestCount uint64
	latestTime  time.Time
	latestRate  float64
}

// NewRateCounter returns a counter averaging over the given interval. A nil clock means the
// wall clock.
func NewRateCounter(interval time.Duration, clock clk.Clock) *RateCounter {
	if clock == nil {
		clock = clk.New()
	}
	return &RateCounter{
		interval:   interval,
		clock:      clock,
		count:      atomic.NewUint64(0),
		latestTime: clock.Now(),
	}
}

// Event records one occurrence.
func (rc *RateCounter) Event() {
	rc.count.Inc()
}

// Count returns the total number of events recorded.
func (rc *RateCounter) Count() uint64 {
	return rc.count.Load()
}

// Interval returns the averaging interval.
func (rc *RateCounter) Interval() time.Duration {
	return rc.interval
}

// Rate returns the event rate in events per second.
func (rc *RateCounter) Rate() float64 {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	now := rc.clock.Now()
	dt := now.Sub(rc.latestTime)
	if dt > rc.interval {
		count := rc.count.Load()
		rc.latestRate = float64(count-rc.latestCount) / dt.Seconds()
		rc.latestCount = count
		rc.latestTime = now
	}
	return rc.latestRate
}
