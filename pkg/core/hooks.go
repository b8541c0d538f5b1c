package core

import (
	"github.com/go-blazr/blazr/pkg/sched"
	"github.com/go-blazr/blazr/pkg/vtree"
)

// RenderFragment is a pure, deferred function from current component state
// to a visual-tree description. It must be safe to invoke once at an
// arbitrary later time chosen by the host.
type RenderFragment func() *vtree.Node

// RenderSink is the host-side acceptor that receives a render fragment and
// eventually invokes it.
type RenderSink interface {
	Render(RenderFragment)
}

// Params carries externally pushed parameter values.
type Params map[string]any

// ParamReceiver is implemented by components that copy pushed parameter
// values into their own fields. A returned error is fatal to that push and
// surfaces synchronously to the host.
type ParamReceiver interface {
	ApplyParams(Params) error
}

// Renderer supplies the component's body fragment. It is captured once at
// Bind time.
type Renderer interface {
	Render() *vtree.Node
}

// Framer optionally wraps the component's body in an outer frame.
type Framer interface {
	Frame(content RenderFragment) *vtree.Node
}

// RenderGate is the optional render-suppression predicate. The very first
// render request on a fresh instance ignores it.
type RenderGate interface {
	ShouldRender() bool
}

// InteractionHandler is a user-triggered callback dispatched through the
// component so automatic render behavior applies. Returning nil is
// equivalent to returning an already-settled task.
type InteractionHandler func(arg any) *sched.Task

// InitHook runs synchronously on the first parameter push, before any
// other hook. Full variant only.
type InitHook interface {
	OnInitialized()
}

// InitAsyncHook runs on the first parameter push after InitHook. If the
// returned task does not settle synchronously, a render is requested
// before the push awaits it.
type InitAsyncHook interface {
	OnInitializedAsync() *sched.Task
}

// ParamsHook runs synchronously on every parameter push. Full variant only.
type ParamsHook interface {
	OnParametersSet()
}

// ParamsAsyncHook runs on every parameter push after ParamsHook. If the
// returned task does not settle synchronously, a render is requested
// before the push awaits it, unless the init phase of the same push
// already rendered on yield.
type ParamsAsyncHook interface {
	OnParametersSetAsync() *sched.Task
}

// ParamsChangedHook is the mid-tier variant's single update hook, run on
// every parameter push including the first. firstRun is true until the
// first push completes, so one hook body can cover both first-run setup
// and subsequent updates.
type ParamsChangedHook interface {
	OnParametersChanged(firstRun bool) *sched.Task
}

// AfterRenderHook runs synchronously on every render-completion
// notification. first is true on exactly the first notification for a
// given instance. A hook that mutates observable state must request its
// own render; the core never renders automatically after it.
type AfterRenderHook interface {
	OnAfterRender(first bool)
}

// AfterRenderAsyncHook runs after AfterRenderHook on every
// render-completion notification.
type AfterRenderAsyncHook interface {
	OnAfterRenderAsync(first bool) *sched.Task
}

// AfterRenderNotifier is satisfied by components that take part in the
// render-completion protocol. Hosts call it exactly once per completed
// render.
type AfterRenderNotifier interface {
	NotifyAfterRender() error
}
