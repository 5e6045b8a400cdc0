package clock

import (
	"sync"
	"time"
)

// Clock is the engine's only source of "now". Booking dates are civil UTC
// dates, so every implementation reports UTC.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func NewRealClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// MockClock is a settable clock safe for use from concurrent requests.
type MockClock struct {
	mu  sync.RWMutex
	now time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{now: t.UTC()}
}

func (c *MockClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t.UTC()
	c.mu.Unlock()
}

// Add moves the clock forward by d and returns the new time.
func (c *MockClock) Add(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}
