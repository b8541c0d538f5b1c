package core

import "github.com/go-blazr/blazr/pkg/sched"

// ComponentBase is the full variant: a four-hook protocol on the
// parameter-push path ({sync-init, async-init, sync-params, async-params})
// and a two-hook protocol on the render-completion path
// ({sync-after-render, async-after-render}), with precise interleaving.
//
// When an asynchronous hook suspends, a render is requested before the
// push awaits it, so callers see the in-flight state. On the first push,
// if async-init already rendered on yield, a suspension of async-params
// in the same push does not render again; this keeps adjacent suspensions
// from painting twice back-to-back while still rendering immediately
// whenever code actually yields.
type ComponentBase struct {
	BaseComponent

	// afterRenderSeen is the sticky one-way flag behind the after-render
	// "is first" argument. Set on the first notification, never reset.
	afterRenderSeen bool
}

// SetParameters drives the push state machine. On the first push the init
// pair runs before the params pair; every push ends with one
// unconditional render request. Any hook failure propagates after the
// render-pending flag is restored to its pre-call value.
func (c *ComponentBase) SetParameters(p Params) (err error) {
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

	renderedOnYield := false
	if !b.initialized {
		b.initialized = true
		b.observe(TransitionPhaseStart, "init", true, nil)
		if h, ok := b.self.(InitHook); ok {
			if err = b.runHook("OnInitialized", h.OnInitialized); err != nil {
				return err
			}
		}
		if h, ok := b.self.(InitAsyncHook); ok {
			var t *sched.Task
			t, err = b.startAsyncHook("OnInitializedAsync", h.OnInitializedAsync)
			if err != nil {
				return err
			}
			if !t.Done() {
				b.observe(TransitionSuspension, "OnInitializedAsync", true, nil)
				b.observe(TransitionYieldRender, "OnInitializedAsync", true, nil)
				b.RequestRender()
				renderedOnYield = true
			}
			if err = b.awaitHook("OnInitializedAsync", t); err != nil {
				return err
			}
		}
		b.observe(TransitionPhaseEnd, "init", true, nil)
	}

	b.observe(TransitionPhaseStart, "params", false, nil)
	if h, ok := b.self.(ParamsHook); ok {
		if err = b.runHook("OnParametersSet", h.OnParametersSet); err != nil {
			return err
		}
	}
	if h, ok := b.self.(ParamsAsyncHook); ok {
		var t *sched.Task
		t, err = b.startAsyncHook("OnParametersSetAsync", h.OnParametersSetAsync)
		if err != nil {
			return err
		}
		if !t.Done() {
			b.observe(TransitionSuspension, "OnParametersSetAsync", false, nil)
			if !renderedOnYield {
				b.observe(TransitionYieldRender, "OnParametersSetAsync", false, nil)
				b.RequestRender()
			}
		}
		if err = b.awaitHook("OnParametersSetAsync", t); err != nil {
			return err
		}
	}
	b.observe(TransitionPhaseEnd, "params", false, nil)

	b.RequestRender()
	return nil
}

// NotifyAfterRender is called by the host exactly once per completed
// render. It runs the after-render hooks with the sticky "is first"
// flag and never requests a further render automatically: a hook that
// mutates observable state must request its own render. Notifications
// arriving after detachment are ignored.
func (c *ComponentBase) NotifyAfterRender() (err error) {
	b := &c.BaseComponent
	if b.detached {
		return nil
	}
	pre := b.renderPending
	defer func() {
		if err != nil {
			b.renderPending = pre
		}
	}()

	first := !c.afterRenderSeen
	c.afterRenderSeen = true
	b.observe(TransitionAfterRenderStart, "after-render", first, nil)
	if h, ok := b.self.(AfterRenderHook); ok {
		if err = b.runHook("OnAfterRender", func() { h.OnAfterRender(first) }); err != nil {
			return err
		}
	}
	if h, ok := b.self.(AfterRenderAsyncHook); ok {
		var t *sched.Task
		t, err = b.startAsyncHook("OnAfterRenderAsync", func() *sched.Task {
			return h.OnAfterRenderAsync(first)
		})
		if err != nil {
			return err
		}
		if !t.Done() {
			b.observe(TransitionSuspension, "OnAfterRenderAsync", first, nil)
		}
		if err = b.awaitHook("OnAfterRenderAsync", t); err != nil {
			return err
		}
	}
	b.observe(TransitionAfterRenderEnd, "after-render", first, nil)
	return nil
}

// DispatchInteraction invokes a user-triggered callback. If the callback
// does not settle synchronously a render is requested before awaiting it,
// to surface the in-flight state; once it settles a final render is
// requested unconditionally.
func (c *ComponentBase) DispatchInteraction(h InteractionHandler, arg any) error {
	b := &c.BaseComponent
	if b.detached {
		return nil
	}
	b.observe(TransitionInteractionStart, "interaction", false, nil)
	t, err := b.startInteraction(h, arg)
	if err == nil {
		if !t.Done() {
			b.observe(TransitionSuspension, "interaction", false, nil)
			b.observe(TransitionYieldRender, "interaction", false, nil)
			b.RequestRender()
		}
		err = b.awaitHook("InteractionHandler", t)
	}
	b.RequestRender()
	b.observe(TransitionInteractionEnd, "interaction", false, err)
	return err
}
