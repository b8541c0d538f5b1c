package core

import "github.com/go-blazr/blazr/pkg/sched"

// ControlBase is the mid-tier variant: exactly one asynchronous update
// hook runs on every parameter push, including the first, and every
// interaction dispatch requests a render once the callback settles. The
// hook receives a firstRun flag instead of having separate init and
// update slots.
type ControlBase struct {
	BaseComponent
}

// SetParameters copies pushed values, runs the component's
// ParamsChangedHook if it has one, awaits its completion, and requests a
// final render. The scheduler does not force an intermediate render while
// the hook is in flight; only explicit calls inside the hook render.
// A hook failure propagates after the render-pending flag is restored to
// its pre-call value.
func (c *ControlBase) SetParameters(p Params) (err error) {
	b := &c.BaseComponent
	if b.detached {
		return b.detachedErr("core.SetParameters")
	}
	pre := b.renderPending
	defer func() {
		if err != nil {
			b.renderPending = pre
		}
	}()

	if err = b.applyParams(p); err != nil {
		return err
	}

	firstRun := !b.initialized
	b.observe(TransitionPhaseStart, "update", firstRun, nil)
	if h, ok := b.self.(ParamsChangedHook); ok {
		var t *sched.Task
		t, err = b.startAsyncHook("OnParametersChanged", func() *sched.Task {
			return h.OnParametersChanged(firstRun)
		})
		if err != nil {
			return err
		}
		if !t.Done() {
			b.observe(TransitionSuspension, "OnParametersChanged", firstRun, nil)
		}
		if err = b.awaitHook("OnParametersChanged", t); err != nil {
			return err
		}
	}
	b.initialized = true
	b.observe(TransitionPhaseEnd, "update", firstRun, nil)
	b.RequestRender()
	return nil
}

// DispatchInteraction invokes a user-triggered callback and requests
// exactly one render after it settles, regardless of whether it
// suspended.
func (c *ControlBase) DispatchInteraction(h InteractionHandler, arg any) error {
	b := &c.BaseComponent
	if b.detached {
		return nil
	}
	b.observe(TransitionInteractionStart, "interaction", false, nil)
	t, err := b.startInteraction(h, arg)
	if err == nil {
		if !t.Done() {
			b.observe(TransitionSuspension, "interaction", false, nil)
		}
		err = b.awaitHook("InteractionHandler", t)
	}
	b.RequestRender()
	b.observe(TransitionInteractionEnd, "interaction", false, err)
	return err
}
