// Package core provides the component lifecycle and render-scheduling
// state machine.
//
// A component is a struct that embeds one of three variant bases and
// implements the optional hook interfaces it cares about:
//
//   - [UIBase] is the cheapest binding: every parameter push renders, and
//     interaction callbacks never render automatically.
//   - [ControlBase] adds a single asynchronous update hook run on every
//     push plus automatic post-interaction rendering.
//   - [ComponentBase] reproduces the full multi-phase protocol:
//     init/params hooks on the push path and after-render hooks on the
//     render-completion path.
//
// All three share [BaseComponent]: instance identity, render-pending
// coalescing, and frame/body composition. The base never paints; it hands
// a pure render fragment to the host's [RenderSink] and the host invokes
// it later.
//
// # Wiring
//
//	type counter struct {
//	    core.ControlBase
//	    clicks int
//	}
//
//	func (c *counter) Render() *vtree.Node {
//	    return vtree.Elem("span", nil, vtree.Text(strconv.Itoa(c.clicks)))
//	}
//
//	c := &counter{}
//	core.Bind(c, dispatcher)
//	if err := c.Attach(sink); err != nil { ... }
//	if err := c.SetParameters(nil); err != nil { ... }
//
// Hooks are discovered by type assertion on the concrete component, so a
// variant only pays for the hook slots it implements.
//
// # Execution model
//
// Single logical thread, cooperative. Asynchronous hooks return a
// *sched.Task; awaiting a suspended hook pumps the dispatcher, so an
// already-queued render executes before the hook resumes. The
// render-pending flag is the sole coordination primitive: it coalesces
// requests, it does not guard data.
package core
