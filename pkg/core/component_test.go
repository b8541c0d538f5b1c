package core

import (
	goerrors "errors"
	"testing"

	"github.com/go-blazr/blazr/pkg/errors"
	"github.com/go-blazr/blazr/pkg/sched"
	"github.com/go-blazr/blazr/pkg/vtree"
)

// recordSink queues fragment execution on the dispatcher the way a real
// host does, and records every executed render.
type recordSink struct {
	d       *sched.Dispatcher
	renders int
	nodes   []*vtree.Node
}

func newRecordSink(d *sched.Dispatcher) *recordSink {
	return &recordSink{d: d}
}

func (s *recordSink) Render(f RenderFragment) {
	s.d.Post(func() {
		node := f()
		s.renders++
		s.nodes = append(s.nodes, node)
	})
}

// recordObserver collects transitions for assertions.
type recordObserver struct {
	transitions []Transition
}

func (o *recordObserver) Transition(t Transition) {
	o.transitions = append(o.transitions, t)
}

func (o *recordObserver) count(kind TransitionKind) int {
	n := 0
	for _, t := range o.transitions {
		if t.Kind == kind {
			n++
		}
	}
	return n
}

func (o *recordObserver) find(kind TransitionKind) (Transition, bool) {
	for _, t := range o.transitions {
		if t.Kind == kind {
			return t, true
		}
	}
	return Transition{}, false
}

// plainComponent is a minimal-variant component with a fixed body.
type plainComponent struct {
	UIBase
	label string
}

func (c *plainComponent) Render() *vtree.Node {
	return vtree.Elem("span", nil, vtree.Text(c.label))
}

func newPlain(t *testing.T, d *sched.Dispatcher, sink RenderSink) *plainComponent {
	t.Helper()
	c := &plainComponent{label: "x"}
	Bind(c, d)
	if err := c.Attach(sink); err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	return c
}

func TestBind_AssignsIdentity(t *testing.T) {
	d := sched.NewDispatcher()
	a := &plainComponent{}
	b := &plainComponent{}
	Bind(a, d)
	Bind(b, d)

	if a.ID() == "" {
		t.Fatal("expected a non-empty instance id")
	}
	if a.ID() == b.ID() {
		t.Errorf("expected distinct ids, both are %q", a.ID())
	}
	if a.TypeName() != "plainComponent" {
		t.Errorf("expected type name plainComponent, got %q", a.TypeName())
	}
	if a.Dispatcher() != d {
		t.Error("expected the bound dispatcher")
	}
}

func TestAttach_Twice(t *testing.T) {
	d := sched.NewDispatcher()
	sink := newRecordSink(d)
	c := newPlain(t, d, sink)

	err := c.Attach(sink)
	if err == nil {
		t.Fatal("expected an error on second attach")
	}
	if !goerrors.Is(err, errors.ErrAlreadyAttached) {
		t.Errorf("expected ErrAlreadyAttached, got %v", err)
	}
}

func TestAttach_NilSink(t *testing.T) {
	d := sched.NewDispatcher()
	c := &plainComponent{}
	Bind(c, d)

	if err := c.Attach(nil); err == nil {
		t.Fatal("expected an error for a nil sink")
	}
}

func TestRequestRender_BeforeAttachIsDropped(t *testing.T) {
	d := sched.NewDispatcher()
	c := &plainComponent{}
	Bind(c, d)

	c.RequestRender()

	if c.RenderPending() {
		t.Error("render should not be pending without a sink")
	}
}

func TestRequestRender_Coalesces(t *testing.T) {
	d := sched.NewDispatcher()
	sink := newRecordSink(d)
	c := newPlain(t, d, sink)

	c.RequestRender()
	c.RequestRender()
	c.RequestRender()

	if !c.RenderPending() {
		t.Fatal("expected a pending render")
	}
	d.Flush()

	if sink.renders != 1 {
		t.Fatalf("expected exactly 1 render, got %d", sink.renders)
	}
	if c.RenderPending() {
		t.Error("pending flag should clear when the host executes the fragment")
	}

	// A fresh request after execution renders again.
	c.RequestRender()
	d.Flush()
	if sink.renders != 2 {
		t.Errorf("expected 2 renders, got %d", sink.renders)
	}
}

// gatedComponent always suppresses renders through its gate.
type gatedComponent struct {
	UIBase
}

func (c *gatedComponent) Render() *vtree.Node { return vtree.Text("gated") }
func (c *gatedComponent) ShouldRender() bool  { return false }

func TestRequestRender_FirstRequestOverridesGate(t *testing.T) {
	d := sched.NewDispatcher()
	sink := newRecordSink(d)
	c := &gatedComponent{}
	Bind(c, d)
	if err := c.Attach(sink); err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	obs := &recordObserver{}
	c.SetObserver(obs)

	c.RequestRender()
	d.Flush()
	if sink.renders != 1 {
		t.Fatalf("first request must render even with a blocking gate, got %d renders", sink.renders)
	}

	c.RequestRender()
	d.Flush()
	if sink.renders != 1 {
		t.Errorf("gate should suppress later requests, got %d renders", sink.renders)
	}
	if obs.count(TransitionRenderSuppressed) != 1 {
		t.Errorf("expected 1 suppression transition, got %d", obs.count(TransitionRenderSuppressed))
	}
}

// framedComponent wraps its body in an outer frame.
type framedComponent struct {
	UIBase
}

func (c *framedComponent) Render() *vtree.Node { return vtree.Text("body") }

func (c *framedComponent) Frame(content RenderFragment) *vtree.Node {
	return vtree.Elem("div", vtree.Attrs("class", "frame"), content())
}

func TestFragment_FrameWrapsBody(t *testing.T) {
	d := sched.NewDispatcher()
	sink := newRecordSink(d)
	c := &framedComponent{}
	Bind(c, d)
	if err := c.Attach(sink); err != nil {
		t.Fatalf("attach failed: %v", err)
	}

	c.RequestRender()
	d.Flush()

	if len(sink.nodes) != 1 {
		t.Fatalf("expected 1 rendered node, got %d", len(sink.nodes))
	}
	if got := vtree.Markup(sink.nodes[0]); got != `<div class="frame">body</div>` {
		t.Errorf("unexpected markup %q", got)
	}
}

func TestFragment_NoBodyRendersEmptyGroup(t *testing.T) {
	d := sched.NewDispatcher()
	sink := newRecordSink(d)

	// No Renderer implementation at all.
	c := &struct{ UIBase }{}
	Bind(c, d)
	if err := c.Attach(sink); err != nil {
		t.Fatalf("attach failed: %v", err)
	}

	c.RequestRender()
	d.Flush()

	if len(sink.nodes) != 1 || sink.nodes[0] == nil {
		t.Fatal("expected an empty fragment node, not nil")
	}
	if sink.nodes[0].Kind() != vtree.KindFragment {
		t.Errorf("expected a fragment, got %v", sink.nodes[0].Kind())
	}
}

func TestRenderAndYield_ExecutesPendingRender(t *testing.T) {
	d := sched.NewDispatcher()
	sink := newRecordSink(d)
	c := newPlain(t, d, sink)

	c.RenderAndYield()

	if sink.renders != 1 {
		t.Fatalf("yield should let the pending render execute, got %d", sink.renders)
	}
	if c.RenderPending() {
		t.Error("pending flag should be clear after the yield")
	}
	if !c.HasRendered() {
		t.Error("HasRendered should be true after an executed render")
	}
}

func TestDetach_SilencesRenders(t *testing.T) {
	d := sched.NewDispatcher()
	sink := newRecordSink(d)
	c := newPlain(t, d, sink)

	c.Detach()
	c.Detach() // idempotent

	c.RequestRender()
	c.RenderAndYield()
	d.Flush()
	if sink.renders != 0 {
		t.Errorf("detached component must not render, got %d", sink.renders)
	}

	err := c.SetParameters(nil)
	if !goerrors.Is(err, errors.ErrDetached) {
		t.Errorf("expected ErrDetached from SetParameters, got %v", err)
	}
	if err := c.Attach(sink); !goerrors.Is(err, errors.ErrDetached) {
		t.Errorf("expected ErrDetached from Attach, got %v", err)
	}
}

func TestDetach_IgnoresQueuedFragment(t *testing.T) {
	d := sched.NewDispatcher()
	sink := newRecordSink(d)
	c := newPlain(t, d, sink)

	c.RequestRender()
	c.Detach()
	d.Flush()

	// The fragment was already queued; executing it after detach yields nil.
	if len(sink.nodes) != 1 || sink.nodes[0] != nil {
		t.Errorf("expected one nil render for the stale fragment, got %v", sink.nodes)
	}
	if c.HasRendered() {
		t.Error("a stale fragment must not count as a completed render")
	}
}

// badParams fails every parameter copy.
type badParams struct {
	UIBase
}

func (c *badParams) Render() *vtree.Node { return vtree.Text("") }

func (c *badParams) ApplyParams(Params) error {
	return goerrors.New("unknown field")
}

func TestSetParameters_CopyFailureIsFatalAndSynchronous(t *testing.T) {
	d := sched.NewDispatcher()
	sink := newRecordSink(d)
	c := &badParams{}
	Bind(c, d)
	if err := c.Attach(sink); err != nil {
		t.Fatalf("attach failed: %v", err)
	}

	err := c.SetParameters(Params{"x": 1})
	if err == nil {
		t.Fatal("expected a parameter-copy error")
	}
	var ce *errors.ComponentError
	if !goerrors.As(err, &ce) || ce.Kind != errors.KindParams {
		t.Errorf("expected a KindParams ComponentError, got %v", err)
	}
	d.Flush()
	if sink.renders != 0 {
		t.Errorf("a failed push must not render, got %d", sink.renders)
	}
}
