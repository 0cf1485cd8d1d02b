package timeutil

import (
	"testing"
	"time"
)

func TestRealClock_Now(t *testing.T) {
	clock := RealClock{}
	before := time.Now()
	now := clock.Now()
	after := time.Now()

	if now.Before(before) || now.After(after) {
		t.Errorf("Now() = %v, expected between %v and %v", now, before, after)
	}
}

func TestRealClock_Since(t *testing.T) {
	clock := RealClock{}
	past := time.Now().Add(-time.Second)
	d := clock.Since(past)

	if d < time.Second {
		t.Errorf("Since() returned %v, expected >= 1s", d)
	}
}

func TestMockClock_SetAndAdvance(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewMockClock(start)

	if got := clock.Now(); !got.Equal(start) {
		t.Errorf("Now() = %v, want %v", got, start)
	}
	clock.Advance(5 * time.Second)
	if got := clock.Since(start); got != 5*time.Second {
		t.Errorf("Since() = %v, want 5s", got)
	}
	later := start.Add(time.Hour)
	clock.Set(later)
	if got := clock.Now(); !got.Equal(later) {
		t.Errorf("Now() = %v, want %v", got, later)
	}
}

func TestMockClock_AutoAdvance(t *testing.T) {
	start := time.Unix(0, 0)
	clock := NewMockClock(start)
	clock.SetAutoAdvance(time.Minute)

	first := clock.Now()
	second := clock.Now()
	if d := second.Sub(first); d != time.Minute {
		t.Errorf("consecutive Now() differ by %v, want 1m", d)
	}
	if d := first.Sub(start); d != time.Minute {
		t.Errorf("first Now() is %v after start, want 1m", d)
	}
}

func TestBudget(t *testing.T) {
	clock := NewMockClock(time.Unix(0, 0))
	b := NewBudget(clock, 10*time.Second)

	if b.Exceeded() {
		t.Error("fresh budget already exceeded")
	}
	clock.Advance(9 * time.Second)
	if b.Exceeded() {
		t.Error("budget exceeded early")
	}
	clock.Advance(time.Second)
	if !b.Exceeded() {
		t.Error("budget not exceeded at the limit")
	}
	if got := b.Elapsed(); got != 10*time.Second {
		t.Errorf("Elapsed() = %v, want 10s", got)
	}
}

func TestBudget_ZeroLimitNeverExpires(t *testing.T) {
	clock := NewMockClock(time.Unix(0, 0))
	b := NewBudget(clock, 0)
	clock.Advance(1000 * time.Hour)
	if b.Exceeded() {
		t.Error("zero-limit budget expired")
	}
}
