// Package timeutil provides a testable abstraction over the wall clock and
// the time limit a run is held to.
package timeutil

import (
	"sync"
	"time"
)

// Clock provides an abstraction over time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Since returns the duration since t.
	Since(t time.Time) time.Duration
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

func (RealClock) Now() time.Time                  { return time.Now() }
func (RealClock) Since(t time.Time) time.Duration { return time.Since(t) }

// MockClock is a manually controlled clock for testing. With a non-zero
// auto-advance, every call to Now moves it forward first.
type MockClock struct {
	mu   sync.Mutex
	now  time.Time
	auto time.Duration
}

// NewMockClock creates a new MockClock set to the given time.
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{now: t}
}

// Now returns the mocked current time.
func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(c.auto)
	return c.now
}

// Set sets the mock clock to a specific time.
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the mock clock forward by d.
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// SetAutoAdvance makes every subsequent Now advance the clock by d first.
func (c *MockClock) SetAutoAdvance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.auto = d
}

// Since returns the duration since t.
func (c *MockClock) Since(t time.Time) time.Duration {
	return c.Now().Sub(t)
}

// Budget tracks a time limit from the moment it was created. A zero limit
// never expires.
type Budget struct {
	clock Clock
	start time.Time
	limit time.Duration
}

// NewBudget starts a budget of limit on clock.
func NewBudget(clock Clock, limit time.Duration) *Budget {
	return &Budget{clock: clock, start: clock.Now(), limit: limit}
}

// Elapsed returns the time spent so far.
func (b *Budget) Elapsed() time.Duration { return b.clock.Since(b.start) }

// Exceeded reports whether the limit has been reached.
func (b *Budget) Exceeded() bool {
	return b.limit > 0 && b.Elapsed() >= b.limit
}
