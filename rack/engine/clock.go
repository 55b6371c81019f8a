package engine

import (
	"sync"
	"time"
)

// Clock is the engine's time reference, in seconds. Implementations must
// be monotonic; the zero point is arbitrary.
type Clock interface {
	Now() float64
}

// SystemClock reads the host's monotonic clock.
type SystemClock struct {
	start time.Time
}

// NewSystemClock returns a clock that starts counting from now.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Now returns the seconds elapsed since the clock was created.
func (c *SystemClock) Now() float64 {
	return time.Since(c.start).Seconds()
}

// MockClock is a settable clock for deterministic scheduling tests.
type MockClock struct {
	mu  sync.Mutex
	now float64
}

// Now returns the mock time.
func (c *MockClock) Now() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the mock time to t.
func (c *MockClock) Set(t float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the mock time forward by dt seconds.
func (c *MockClock) Advance(dt float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += dt
}
