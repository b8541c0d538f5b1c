package sched

import (
	"sort"
	"sync"
	"time"
)

// Clock abstracts time for delayed task settlement so tests can run
// simulated delays deterministically.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
	// AfterFunc runs fn once d has elapsed.
	AfterFunc(d time.Duration, fn func())
}

// WallClock is the real-time clock.
type WallClock struct{}

// Now returns the current wall time.
func (WallClock) Now() time.Time { return time.Now() }

// AfterFunc schedules fn on a real timer.
func (WallClock) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

// After returns a task that settles successfully once delay has elapsed
// per the given clock. The settlement re-enters the dispatcher, so the
// waiting code resumes cooperatively.
func After(d *Dispatcher, clock Clock, delay time.Duration) *Task {
	t, settle := d.NewTask()
	clock.AfterFunc(delay, func() { settle(nil) })
	return t
}

// FakeClock provides controllable time for deterministic lifecycle tests.
// All methods are safe for concurrent use.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	due time.Time
	fn  func()
}

// NewFakeClock returns a FakeClock starting at a fixed epoch.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc registers fn to fire when the clock advances past d from now.
// A non-positive d fires on the next Advance call.
func (c *FakeClock) AfterFunc(d time.Duration, fn func()) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.timers = append(c.timers, &fakeTimer{due: c.now.Add(d), fn: fn})
	c.mu.Unlock()
}

// Advance moves the clock forward by d and fires due timers in deadline
// order. Timer callbacks run on the calling goroutine; they typically
// settle tasks, which queue their continuations on the dispatcher.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due, pending []*fakeTimer
	for _, tm := range c.timers {
		if !tm.due.After(c.now) {
			due = append(due, tm)
		} else {
			pending = append(pending, tm)
		}
	}
	c.timers = pending
	sort.SliceStable(due, func(i, j int) bool { return due[i].due.Before(due[j].due) })
	c.mu.Unlock()

	for _, tm := range due {
		tm.fn()
	}
}
