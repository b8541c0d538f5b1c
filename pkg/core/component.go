package core

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"reflect"
	"time"

	"github.com/go-blazr/blazr/pkg/errors"
	"github.com/go-blazr/blazr/pkg/sched"
	"github.com/go-blazr/blazr/pkg/vtree"
)

// Component is satisfied by any struct that embeds one of the variant
// bases. Bind and the trace package accept Component so callers can pass
// their concrete component directly.
type Component interface {
	base() *BaseComponent
}

func (b *BaseComponent) base() *BaseComponent { return b }

// BaseComponent provides identity, render-pending coalescing, and
// frame/body composition shared by all variants. It is not used directly;
// embed UIBase, ControlBase, or ComponentBase instead.
type BaseComponent struct {
	id       string
	typeName string
	self     any
	d        *sched.Dispatcher
	sink     RenderSink
	body     RenderFragment
	frame    func(RenderFragment) *vtree.Node
	observer Observer

	renderPending bool
	requestedOnce bool
	hasRendered   bool
	initialized   bool
	detached      bool
}

// Bind prepares an embedded component base for use: it assigns the
// process-unique instance token, captures the concrete component for hook
// discovery, fixes the body producer, and records the dispatcher. Call it
// once, right after constructing the component.
func Bind(c Component, d *sched.Dispatcher) {
	b := c.base()
	b.self = c
	b.d = d
	b.id = newID()
	b.typeName = componentTypeName(c)
	if r, ok := c.(Renderer); ok {
		b.body = r.Render
	}
	if f, ok := c.(Framer); ok {
		b.frame = f.Frame
	}
}

// ID returns the short process-unique instance identifier.
func (b *BaseComponent) ID() string { return b.id }

// TypeName returns the declared component type name.
func (b *BaseComponent) TypeName() string { return b.typeName }

// Initialized reports whether the one-time initialization sequence has run.
func (b *BaseComponent) Initialized() bool { return b.initialized }

// HasRendered reports whether the host has executed at least one render
// fragment for this instance.
func (b *BaseComponent) HasRendered() bool { return b.hasRendered }

// RenderPending reports whether a render request is outstanding.
func (b *BaseComponent) RenderPending() bool { return b.renderPending }

// Detached reports whether the component has been detached by the host.
func (b *BaseComponent) Detached() bool { return b.detached }

// Dispatcher returns the dispatcher the component was bound to.
func (b *BaseComponent) Dispatcher() *sched.Dispatcher { return b.d }

// SetObserver installs a lifecycle observer. Pass nil to remove it.
// Observers are purely observational.
func (b *BaseComponent) SetObserver(o Observer) { b.observer = o }

// Attach binds the host-provided render sink. The sink is set exactly
// once; a second call fails with ErrAlreadyAttached.
func (b *BaseComponent) Attach(sink RenderSink) error {
	if b.detached {
		return b.detachedErr("core.Attach")
	}
	if b.sink != nil {
		return &errors.ComponentError{
			Op:        "core.Attach",
			Kind:      errors.KindAttach,
			Component: b.id,
			Err:       errors.ErrAlreadyAttached,
		}
	}
	if sink == nil {
		return &errors.ComponentError{
			Op:        "core.Attach",
			Kind:      errors.KindAttach,
			Component: b.id,
			Err:       fmt.Errorf("nil render sink"),
		}
	}
	b.sink = sink
	return nil
}

// Detach marks the component as detached from its render sink. Detach is
// idempotent. After detachment, render requests and interaction dispatch
// are silent no-ops, late asynchronous hook completions are ignored, and
// Attach or SetParameters return ErrDetached.
func (b *BaseComponent) Detach() {
	if b.detached {
		return
	}
	b.detached = true
	b.observe(TransitionDetached, "", false, nil)
}

// RequestRender asks the host for a render. While a render is pending the
// call is a no-op, so any burst of requests coalesces into one render.
// The very first request on a fresh instance always renders; afterwards
// the component's render gate (default: always allow) decides. The
// pending flag clears only when the host executes the fragment, never
// when the request is issued.
func (b *BaseComponent) RequestRender() {
	if b.detached {
		return
	}
	b.observe(TransitionRenderRequested, "", false, nil)
	if b.sink == nil {
		errors.Report(&errors.ComponentError{
			Op:        "core.RequestRender",
			Kind:      errors.KindRender,
			Component: b.id,
			Err:       errors.ErrNotAttached,
		})
		return
	}
	if b.renderPending {
		b.observe(TransitionRenderCoalesced, "", false, nil)
		return
	}
	if b.requestedOnce && !b.allowRender() {
		b.observe(TransitionRenderSuppressed, "", false, nil)
		return
	}
	b.requestedOnce = true
	b.renderPending = true
	b.observe(TransitionRenderQueued, "", false, nil)
	b.sink.Render(b.fragment())
}

// RenderAndYield requests a render, then cooperatively suspends once so
// any pending render executes before the caller resumes. Variants use it
// to surface a visible intermediate state in the middle of long-running
// work.
func (b *BaseComponent) RenderAndYield() {
	if b.detached {
		return
	}
	b.RequestRender()
	b.d.Yield()
}

// fragment composes the deferred producer handed to the sink: the frame
// wrapping the body if a frame is set, else the body directly. Executing
// it clears the pending flag.
func (b *BaseComponent) fragment() RenderFragment {
	body := b.body
	if body == nil {
		body = func() *vtree.Node { return vtree.Group() }
	}
	compose := body
	if b.frame != nil {
		frame := b.frame
		compose = func() *vtree.Node { return frame(body) }
	}
	return func() *vtree.Node {
		if b.detached {
			return nil
		}
		b.renderPending = false
		b.hasRendered = true
		b.observe(TransitionRenderExecuted, "", false, nil)
		return compose()
	}
}

func (b *BaseComponent) allowRender() bool {
	if g, ok := b.self.(RenderGate); ok {
		return g.ShouldRender()
	}
	return true
}

// applyParams copies pushed values into component state. A failure is
// fatal to the push and surfaces synchronously.
func (b *BaseComponent) applyParams(p Params) error {
	r, ok := b.self.(ParamReceiver)
	if !ok {
		return nil
	}
	if err := r.ApplyParams(p); err != nil {
		return &errors.ComponentError{
			Op:        "core.SetParameters",
			Kind:      errors.KindParams,
			Component: b.id,
			Err:       err,
		}
	}
	return nil
}

// runHook invokes a synchronous hook with panic recovery.
func (b *BaseComponent) runHook(hook string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = b.hookPanic(hook, r)
		}
	}()
	fn()
	return nil
}

// startAsyncHook invokes an asynchronous hook and normalizes its result:
// a nil task counts as settled-successfully, and a panic while starting
// becomes a HookError.
func (b *BaseComponent) startAsyncHook(hook string, fn func() *sched.Task) (t *sched.Task, err error) {
	defer func() {
		if r := recover(); r != nil {
			t = nil
			err = b.hookPanic(hook, r)
		}
	}()
	t = fn()
	if t == nil {
		t = sched.Completed()
	}
	return t, nil
}

// awaitHook pumps the dispatcher until the hook's task settles and wraps
// any failure.
func (b *BaseComponent) awaitHook(hook string, t *sched.Task) error {
	if err := b.d.Await(t); err != nil {
		he := &errors.HookError{
			Component: b.id,
			TypeName:  b.typeName,
			Hook:      hook,
			Err:       err,
			Timestamp: time.Now(),
		}
		errors.ReportHookError(he)
		b.observe(TransitionHookError, hook, false, he)
		return he
	}
	return nil
}

func (b *BaseComponent) hookPanic(hook string, recovered any) error {
	he := &errors.HookError{
		Component:  b.id,
		TypeName:   b.typeName,
		Hook:       hook,
		Recovered:  recovered,
		StackTrace: errors.CaptureStack(),
		Timestamp:  time.Now(),
	}
	errors.ReportHookError(he)
	b.observe(TransitionHookError, hook, false, he)
	return he
}

// startInteraction invokes a user-triggered callback with panic recovery.
func (b *BaseComponent) startInteraction(h InteractionHandler, arg any) (t *sched.Task, err error) {
	defer func() {
		if r := recover(); r != nil {
			t = nil
			err = b.hookPanic("InteractionHandler", r)
		}
	}()
	if h == nil {
		return sched.Completed(), nil
	}
	t = h(arg)
	if t == nil {
		t = sched.Completed()
	}
	return t, nil
}

func (b *BaseComponent) detachedErr(op string) error {
	return &errors.ComponentError{
		Op:        op,
		Kind:      errors.KindDetached,
		Component: b.id,
		Err:       errors.ErrDetached,
	}
}

func (b *BaseComponent) observe(kind TransitionKind, phase string, first bool, err error) {
	if b.observer == nil {
		return
	}
	b.observer.Transition(Transition{
		Kind:      kind,
		Component: b.id,
		TypeName:  b.typeName,
		Phase:     phase,
		First:     first,
		Err:       err,
	})
}

// newID returns a locally generated process-unique token. No shared
// counter is involved, so component construction needs no global state.
func newID() string {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return fmt.Sprintf("%08x", time.Now().UnixNano()&0xffffffff)
	}
	return hex.EncodeToString(buf[:])
}

func componentTypeName(c any) string {
	t := reflect.TypeOf(c)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "unknown"
	}
	return t.Name()
}
