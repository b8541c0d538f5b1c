package core

// TransitionKind identifies a lifecycle transition point.
type TransitionKind int

const (
	// TransitionPhaseStart marks the start of a lifecycle phase.
	TransitionPhaseStart TransitionKind = iota
	// TransitionPhaseEnd marks the end of a lifecycle phase.
	TransitionPhaseEnd
	// TransitionRenderRequested marks a requestRender call arriving.
	TransitionRenderRequested
	// TransitionRenderQueued marks a fragment handed to the sink.
	TransitionRenderQueued
	// TransitionRenderCoalesced marks a request dropped because one is
	// already pending.
	TransitionRenderCoalesced
	// TransitionRenderSuppressed marks a request blocked by the
	// component's render gate.
	TransitionRenderSuppressed
	// TransitionRenderExecuted marks the host invoking the fragment.
	TransitionRenderExecuted
	// TransitionSuspension marks an asynchronous hook that did not settle
	// synchronously.
	TransitionSuspension
	// TransitionYieldRender marks a render requested specifically because
	// a hook suspended.
	TransitionYieldRender
	// TransitionAfterRenderStart marks the start of after-render dispatch.
	TransitionAfterRenderStart
	// TransitionAfterRenderEnd marks the end of after-render dispatch.
	TransitionAfterRenderEnd
	// TransitionInteractionStart marks the start of interaction dispatch.
	TransitionInteractionStart
	// TransitionInteractionEnd marks the end of interaction dispatch.
	TransitionInteractionEnd
	// TransitionHookError marks a hook failure before it propagates.
	TransitionHookError
	// TransitionDetached marks the component's detachment.
	TransitionDetached
)

func (k TransitionKind) String() string {
	switch k {
	case TransitionPhaseStart:
		return "phase-start"
	case TransitionPhaseEnd:
		return "phase-end"
	case TransitionRenderRequested:
		return "render-requested"
	case TransitionRenderQueued:
		return "render-queued"
	case TransitionRenderCoalesced:
		return "render-coalesced"
	case TransitionRenderSuppressed:
		return "render-suppressed"
	case TransitionRenderExecuted:
		return "render-executed"
	case TransitionSuspension:
		return "suspension"
	case TransitionYieldRender:
		return "yield-render"
	case TransitionAfterRenderStart:
		return "after-render-start"
	case TransitionAfterRenderEnd:
		return "after-render-end"
	case TransitionInteractionStart:
		return "interaction-start"
	case TransitionInteractionEnd:
		return "interaction-end"
	case TransitionHookError:
		return "hook-error"
	case TransitionDetached:
		return "detached"
	default:
		return "unknown"
	}
}

// Transition is a single lifecycle transition, tagged with the component's
// short instance identifier and declared type name.
type Transition struct {
	Kind      TransitionKind
	Component string
	TypeName  string
	// Phase names the hook or phase involved, when applicable.
	Phase string
	// First is true when the transition belongs to a first-time path
	// (first push, first after-render notification).
	First bool
	// Err carries the failure for TransitionHookError.
	Err error
}

// Observer receives every lifecycle transition of a component. It must be
// purely observational: implementations never influence which branch of
// the state machine executes.
type Observer interface {
	Transition(t Transition)
}
