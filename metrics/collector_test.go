package metrics

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.mu.Unlock()
}

func TestCollector_Summary(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 7, 10, 0, 0, 0, time.UTC)}
	c := NewCollectorWithClock(clock.Now)

	c.Record(http.StatusOK, 100*time.Millisecond)
	c.Record(http.StatusOK, 300*time.Millisecond)
	c.Record(http.StatusBadRequest, 200*time.Millisecond)
	c.Record(http.StatusInternalServerError, 400*time.Millisecond)

	s := c.Summary()
	assert.Equal(t, int64(4), s.Requests)
	assert.Equal(t, int64(1), s.Errors)
	assert.InDelta(t, 250.0, s.AvgResponseMS, 0.001)
	assert.InDelta(t, 0.25, s.ErrorRate, 0.0001)
	assert.InDelta(t, 75.0, s.AvailabilityPct, 0.0001)
}

func TestCollector_PreviousHour(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 7, 10, 0, 0, 0, time.UTC)}
	c := NewCollectorWithClock(clock.Now)

	c.Record(http.StatusBadGateway, time.Millisecond)
	c.Record(http.StatusServiceUnavailable, time.Millisecond)

	clock.Advance(70 * time.Minute)
	c.Record(http.StatusInternalServerError, time.Millisecond)

	s := c.Summary()
	assert.Equal(t, int64(1), s.Requests)
	assert.Equal(t, int64(1), s.Errors)
	assert.Equal(t, int64(2), s.PreviousErrors)
	assert.Equal(t, 70*time.Minute, s.Uptime)
}

func TestCollector_PrunesOldBuckets(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 7, 10, 0, 0, 0, time.UTC)}
	c := NewCollectorWithClock(clock.Now)

	c.Record(http.StatusOK, time.Millisecond)
	clock.Advance(3 * time.Hour)
	c.Record(http.StatusOK, time.Millisecond)

	c.mu.Lock()
	n := len(c.buckets)
	c.mu.Unlock()
	assert.Equal(t, 1, n)
}

func TestCollector_EmptyIsFullyAvailable(t *testing.T) {
	s := NewCollector().Summary()
	assert.Zero(t, s.Requests)
	assert.Equal(t, 100.0, s.AvailabilityPct)
}
