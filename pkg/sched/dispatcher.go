package sched

import "sync"

// Dispatcher is a single-threaded cooperative job queue.
// All component lifecycle work runs as dispatcher jobs or while a caller
// pumps the queue via Await or Yield, so no job ever runs concurrently
// with another.
type Dispatcher struct {
	mu    sync.Mutex
	cond  *sync.Cond
	queue []func()
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{}
	d.cond = sync.NewCond(&d.mu)
	return d
}

// Post schedules a job to run on the dispatcher.
// Safe to call from any goroutine.
func (d *Dispatcher) Post(job func()) {
	if job == nil {
		return
	}
	d.mu.Lock()
	d.queue = append(d.queue, job)
	d.cond.Broadcast()
	d.mu.Unlock()
}

// Pending returns the number of queued jobs.
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}

// runNext pops and runs a single job. Returns false if the queue was empty.
func (d *Dispatcher) runNext() bool {
	d.mu.Lock()
	if len(d.queue) == 0 {
		d.mu.Unlock()
		return false
	}
	job := d.queue[0]
	d.queue = d.queue[1:]
	d.mu.Unlock()
	job()
	return true
}

// Flush runs queued jobs until the queue is empty, including jobs posted
// by the jobs themselves.
func (d *Dispatcher) Flush() {
	for d.runNext() {
	}
}

// Yield runs exactly the jobs that were queued at the moment of the call,
// then returns control to the caller. Jobs posted during the yield stay
// queued. This is the single cooperative suspension point used by
// render-and-yield: the caller gives any pending render a chance to
// execute, then resumes.
func (d *Dispatcher) Yield() {
	d.mu.Lock()
	n := len(d.queue)
	d.mu.Unlock()
	for i := 0; i < n; i++ {
		if !d.runNext() {
			return
		}
	}
}

// Await pumps the dispatcher until the task settles, then returns its
// error. While the task is pending, queued jobs run one at a time; when
// the queue is empty, Await blocks until a job is posted or the task
// settles. Await is reentrant: a job run by Flush may itself Await.
func (d *Dispatcher) Await(t *Task) error {
	if t == nil {
		return nil
	}
	for {
		if t.Done() {
			return t.Err()
		}
		if d.runNext() {
			continue
		}
		d.mu.Lock()
		for len(d.queue) == 0 && !t.Done() {
			d.cond.Wait()
		}
		d.mu.Unlock()
	}
}

// wake unblocks any Await waiting on an empty queue.
func (d *Dispatcher) wake() {
	d.mu.Lock()
	d.cond.Broadcast()
	d.mu.Unlock()
}
