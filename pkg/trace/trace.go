package trace

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/go-blazr/blazr/pkg/core"
)

const defaultCapacity = 256

// Event is a single recorded lifecycle transition.
type Event struct {
	// Seq is the monotonic order of the event across all components
	// sharing this recorder.
	Seq uint64 `json:"seq"`
	// Time is when the event was recorded.
	Time time.Time `json:"ts"`
	// Component is the short instance identifier.
	Component string `json:"component"`
	// TypeName is the declared component type name.
	TypeName string `json:"typeName"`
	// Kind is the transition kind (render-requested, suspension, ...).
	Kind string `json:"kind"`
	// Phase names the hook or phase involved, when applicable.
	Phase string `json:"phase,omitempty"`
	// First marks first-time paths (first push, first after-render).
	First bool `json:"first,omitempty"`
	// Err carries the failure text for hook-error events.
	Err string `json:"err,omitempty"`
}

func (e Event) String() string {
	s := fmt.Sprintf("#%d %s %s[%s] %s", e.Seq, e.Time.Format("15:04:05.000"), e.TypeName, e.Component, e.Kind)
	if e.Phase != "" {
		s += " phase=" + e.Phase
	}
	if e.First {
		s += " first"
	}
	if e.Err != "" {
		s += " err=" + e.Err
	}
	return s
}

// Recorder stores recent lifecycle events in a ring buffer.
// It implements core.Observer and is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	now     func() time.Time
	echo    io.Writer
	events  []Event
	index   int
	count   int
	dropped int
	seq     uint64
}

// NewRecorder creates a recorder holding up to capacity events.
// A non-positive capacity uses the default.
func NewRecorder(capacity int) *Recorder {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Recorder{
		now:    time.Now,
		events: make([]Event, capacity),
	}
}

// SetEcho mirrors every recorded event as a text line to w.
// Pass nil to disable echoing.
func (r *Recorder) SetEcho(w io.Writer) {
	r.mu.Lock()
	r.echo = w
	r.mu.Unlock()
}

// setClock overrides the timestamp source for tests.
func (r *Recorder) setClock(now func() time.Time) {
	r.mu.Lock()
	r.now = now
	r.mu.Unlock()
}

// Transition records a lifecycle transition. Part of core.Observer.
func (r *Recorder) Transition(t core.Transition) {
	r.mu.Lock()
	r.seq++
	e := Event{
		Seq:       r.seq,
		Time:      r.now(),
		Component: t.Component,
		TypeName:  t.TypeName,
		Kind:      t.Kind.String(),
		Phase:     t.Phase,
		First:     t.First,
	}
	if t.Err != nil {
		e.Err = t.Err.Error()
	}
	if r.count == len(r.events) {
		r.dropped++
	} else {
		r.count++
	}
	r.events[r.index] = e
	r.index = (r.index + 1) % len(r.events)
	echo := r.echo
	r.mu.Unlock()

	if echo != nil {
		fmt.Fprintln(echo, "[blazr trace] "+e.String())
	}
}

// Events returns the retained events in chronological order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.count == 0 {
		return nil
	}
	out := make([]Event, r.count)
	if r.count < len(r.events) {
		copy(out, r.events[:r.count])
	} else {
		n := copy(out, r.events[r.index:])
		copy(out[n:], r.events[:r.index])
	}
	return out
}

// Dropped returns how many events were overwritten after the buffer
// filled.
func (r *Recorder) Dropped() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// Len returns the number of retained events.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}
