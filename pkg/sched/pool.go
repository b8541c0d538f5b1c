package sched

import (
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// defaultPoolSize bounds the goroutines used for background hook work.
const defaultPoolSize = 64

var (
	poolOnce sync.Once
	pool     *ants.Pool
)

func workers() *ants.Pool {
	poolOnce.Do(func() {
		p, err := ants.NewPool(defaultPoolSize)
		if err != nil {
			// ants only fails on invalid sizes; fall back to unbounded.
			p, _ = ants.NewPool(-1)
		}
		pool = p
	})
	return pool
}

// Go runs fn on the shared worker pool and settles the returned task back
// on the dispatcher. This is the sanctioned way for hook bodies to leave
// the UI thread: the work itself runs in the background, and its
// completion re-enters the single logical thread as a dispatcher job.
func Go(d *Dispatcher, fn func() error) *Task {
	t, settle := d.NewTask()
	if fn == nil {
		settle(nil)
		return t
	}
	if err := workers().Submit(func() {
		defer func() {
			if r := recover(); r != nil {
				settle(fmt.Errorf("background work panicked: %v", r))
			}
		}()
		settle(fn())
	}); err != nil {
		settle(err)
	}
	return t
}
