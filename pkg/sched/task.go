package sched

import "sync"

// SettleFunc settles a pending task. The first call wins; later calls are
// ignored.
type SettleFunc func(err error)

// Task is a settle-once completion value for asynchronous lifecycle work.
// A nil error means success. Continuations registered with OnSettled run
// on the task's dispatcher.
type Task struct {
	d     *Dispatcher
	mu    sync.Mutex
	done  bool
	err   error
	conts []func(error)
}

// Completed returns a task that settled successfully before it was observed.
// Hooks return it to signal that no suspension occurred.
func Completed() *Task {
	return &Task{done: true}
}

// Failed returns a task that settled with the given error.
func Failed(err error) *Task {
	return &Task{done: true, err: err}
}

// NewTask creates a pending task bound to this dispatcher along with its
// settle function. The settle function is safe to call from any goroutine;
// continuations run as dispatcher jobs.
func (d *Dispatcher) NewTask() (*Task, SettleFunc) {
	t := &Task{d: d}
	return t, t.settle
}

// Done reports whether the task has settled.
func (t *Task) Done() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done
}

// Err returns the task's error, or nil if it succeeded or is still pending.
func (t *Task) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// OnSettled registers a continuation to run once the task settles.
// If the task already settled, the continuation runs immediately on the
// calling goroutine; otherwise it is posted to the dispatcher at settle
// time.
func (t *Task) OnSettled(fn func(error)) {
	if fn == nil {
		return
	}
	t.mu.Lock()
	if t.done {
		err := t.err
		t.mu.Unlock()
		fn(err)
		return
	}
	t.conts = append(t.conts, fn)
	t.mu.Unlock()
}

func (t *Task) settle(err error) {
	t.mu.Lock()
	if t.done {
		t.mu.Unlock()
		return
	}
	t.done = true
	t.err = err
	conts := t.conts
	t.conts = nil
	t.mu.Unlock()

	for _, fn := range conts {
		fn := fn
		t.d.Post(func() { fn(err) })
	}
	if t.d != nil {
		t.d.wake()
	}
}
