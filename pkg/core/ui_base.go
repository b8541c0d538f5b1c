package core

// UIBase is the minimal variant: no data-loading phase and no automatic
// re-render after interactions. Intended for presentation-only components
// whose caller controls rendering precisely, such as two-way-bound leaf
// widgets whose container already re-renders.
type UIBase struct {
	BaseComponent
}

// SetParameters copies pushed values into component state and
// unconditionally requests a render. The call completes without
// suspending.
func (u *UIBase) SetParameters(p Params) error {
	b := &u.BaseComponent
	if b.detached {
		return b.detachedErr("core.SetParameters")
	}
	if err := b.applyParams(p); err != nil {
		return err
	}
	b.initialized = true
	b.RequestRender()
	return nil
}

// DispatchInteraction invokes a user-triggered callback and waits for it
// to settle. No render is requested: a handler that mutates observable
// state must call RequestRender itself.
func (u *UIBase) DispatchInteraction(h InteractionHandler, arg any) error {
	b := &u.BaseComponent
	if b.detached {
		return nil
	}
	b.observe(TransitionInteractionStart, "interaction", false, nil)
	t, err := b.startInteraction(h, arg)
	if err != nil {
		b.observe(TransitionInteractionEnd, "interaction", false, err)
		return err
	}
	err = b.awaitHook("InteractionHandler", t)
	b.observe(TransitionInteractionEnd, "interaction", false, err)
	return err
}
