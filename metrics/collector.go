package metrics

import (
	"sync"
	"time"
)

const retention = 2 * time.Hour

type bucket struct {
	requests int64
	errors   int64 // 5xx responses
	total    time.Duration
}

// Collector aggregates request outcomes into per-minute buckets.
// It keeps two hours of history, enough to compare the last hour with the one before.
type Collector struct {
	mu      sync.Mutex
	buckets map[int64]*bucket
	started time.Time
	now     func() time.Time
}

func NewCollector() *Collector {
	return NewCollectorWithClock(time.Now)
}

// NewCollectorWithClock is used by tests to control time
func NewCollectorWithClock(now func() time.Time) *Collector {
	return &Collector{
		buckets: make(map[int64]*bucket),
		started: now(),
		now:     now,
	}
}

// Record adds one finished request
func (c *Collector) Record(status int, elapsed time.Duration) {
	now := c.now()
	minute := now.Unix() / 60

	c.mu.Lock()
	defer c.mu.Unlock()

	b, ok := c.buckets[minute]
	if !ok {
		b = &bucket{}
		c.buckets[minute] = b
		c.prune(now)
	}
	b.requests++
	b.total += elapsed
	if status >= 500 {
		b.errors++
	}
}

func (c *Collector) prune(now time.Time) {
	oldest := now.Add(-retention).Unix() / 60
	for minute := range c.buckets {
		if minute < oldest {
			delete(c.buckets, minute)
		}
	}
}

// Summary describes the last hour of traffic
type Summary struct {
	Requests        int64         `json:"requests"`
	Errors          int64         `json:"errors"`
	PreviousErrors  int64         `json:"previous_errors"` // 5xx in the hour before
	AvgResponseMS   float64       `json:"avg_response_ms"`
	ErrorRate       float64       `json:"error_rate"`
	AvailabilityPct float64       `json:"availability_pct"`
	Uptime          time.Duration `json:"uptime"`
}

func (c *Collector) Summary() Summary {
	now := c.now()
	current := now.Unix() / 60
	hourAgo := current - 60
	twoHoursAgo := current - 120

	c.mu.Lock()
	defer c.mu.Unlock()

	var s Summary
	var total time.Duration
	for minute, b := range c.buckets {
		switch {
		case minute > hourAgo:
			s.Requests += b.requests
			s.Errors += b.errors
			total += b.total
		case minute > twoHoursAgo:
			s.PreviousErrors += b.errors
		}
	}

	s.Uptime = now.Sub(c.started)
	s.AvailabilityPct = 100
	if s.Requests > 0 {
		s.AvgResponseMS = float64(total.Microseconds()) / float64(s.Requests) / 1000
		s.ErrorRate = float64(s.Errors) / float64(s.Requests)
		s.AvailabilityPct = (1 - s.ErrorRate) * 100
	}
	return s
}
