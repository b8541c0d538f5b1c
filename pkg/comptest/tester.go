package comptest

import (
	"testing"
	"time"

	"github.com/go-blazr/blazr/pkg/core"
	"github.com/go-blazr/blazr/pkg/sched"
	"github.com/go-blazr/blazr/pkg/vtree"
)

// Mountable is a bound-or-bindable component the tester can host.
type Mountable interface {
	core.Component
	Attach(core.RenderSink) error
}

// ParamSetter is the parameter-push entry point shared by all variants.
type ParamSetter interface {
	SetParameters(core.Params) error
}

// Tester hosts components without a real renderer. It implements
// core.RenderSink: queued fragments become dispatcher jobs, and every
// executed fragment's tree is recorded in order.
type Tester struct {
	d     *sched.Dispatcher
	clock *sched.FakeClock

	nodes     []*vtree.Node
	notifiers []core.AfterRenderNotifier
	notifyErr error
}

// NewTester creates a tester with a fresh dispatcher and fake clock.
// Call Cleanup when done, or use NewTesterWithT instead.
func NewTester() *Tester {
	return &Tester{
		d:     sched.NewDispatcher(),
		clock: sched.NewFakeClock(),
	}
}

// NewTesterWithT creates a tester that cleans up via t.Cleanup.
// This is the recommended constructor for tests.
func NewTesterWithT(t *testing.T) *Tester {
	t.Helper()
	tester := NewTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup drains any work still queued on the dispatcher.
func (t *Tester) Cleanup() {
	t.d.Flush()
}

// Dispatcher returns the tester's cooperative dispatcher.
func (t *Tester) Dispatcher() *sched.Dispatcher { return t.d }

// Clock returns the fake clock for advancing simulated time.
func (t *Tester) Clock() *sched.FakeClock { return t.clock }

// Mount binds the component to the tester's dispatcher and attaches it
// with the tester as its render sink.
func (t *Tester) Mount(c Mountable) error {
	core.Bind(c, t.d)
	return c.Attach(t)
}

// Render accepts a queued fragment. Part of core.RenderSink. The
// fragment is executed as a dispatcher job; stale fragments (nil trees)
// are discarded. When auto-notification is enabled, every executed
// render is followed by one render-completion notification.
func (t *Tester) Render(f core.RenderFragment) {
	t.d.Post(func() {
		node := f()
		if node == nil {
			return
		}
		t.nodes = append(t.nodes, node)
		for _, n := range t.notifiers {
			if err := n.NotifyAfterRender(); err != nil && t.notifyErr == nil {
				t.notifyErr = err
			}
		}
	})
}

// AutoNotify registers a component for automatic render-completion
// notification: after each executed render the tester calls
// NotifyAfterRender once, the way a live host would.
func (t *Tester) AutoNotify(n core.AfterRenderNotifier) {
	t.notifiers = append(t.notifiers, n)
}

// NotifyErr returns the first error produced by auto-notification.
func (t *Tester) NotifyErr() error { return t.notifyErr }

// Push sets parameters on the component and pumps the dispatcher until
// idle, so the returned state includes all renders the push produced.
func (t *Tester) Push(c ParamSetter, p core.Params) error {
	err := c.SetParameters(p)
	t.d.Flush()
	return err
}

// Pump runs queued dispatcher jobs to exhaustion.
func (t *Tester) Pump() {
	t.d.Flush()
}

// AdvanceSoon schedules a fake-clock advance behind the work already
// queued on the dispatcher. Two posting levels make sure the advance
// lands behind jobs queued after the caller returns, such as a render
// requested on suspension. Call it before a push whose hooks wait on
// the tester's clock.
func (t *Tester) AdvanceSoon(d time.Duration) {
	t.d.Post(func() {
		t.d.Post(func() { t.clock.Advance(d) })
	})
}

// AdvanceAndPump advances the fake clock immediately and pumps until
// idle. Use it for timers armed by work that has already settled.
func (t *Tester) AdvanceAndPump(d time.Duration) {
	t.clock.Advance(d)
	t.d.Flush()
}

// Renders returns how many fragments have executed to a live tree.
func (t *Tester) Renders() int { return len(t.nodes) }

// Nodes returns the executed trees in render order.
func (t *Tester) Nodes() []*vtree.Node { return t.nodes }

// LastNode returns the most recently rendered tree, or nil.
func (t *Tester) LastNode() *vtree.Node {
	if len(t.nodes) == 0 {
		return nil
	}
	return t.nodes[len(t.nodes)-1]
}

// LastMarkup renders the most recent tree to markup, or "".
func (t *Tester) LastMarkup() string {
	n := t.LastNode()
	if n == nil {
		return ""
	}
	return vtree.Markup(n)
}
