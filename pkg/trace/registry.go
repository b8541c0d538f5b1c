package trace

import (
	cmap "github.com/orcaman/concurrent-map/v2"

	"github.com/go-blazr/blazr/pkg/core"
)

// Instrumentable is the slice of a component the registry needs.
// *core.BaseComponent satisfies it through promotion, so any bound
// component can be instrumented directly.
type Instrumentable interface {
	ID() string
	TypeName() string
	SetObserver(core.Observer)
}

// Entry describes one live instrumented component.
type Entry struct {
	ID       string
	TypeName string
	// Name is the host-assigned label, for humans reading the trace.
	Name string
}

// Registry tracks which components are currently instrumented.
// Hosts typically keep one registry per circuit or window.
type Registry struct {
	entries cmap.ConcurrentMap[string, Entry]
}

func NewRegistry() *Registry {
	return &Registry{entries: cmap.New[Entry]()}
}

// Instrument attaches rec as the component's observer and registers it
// under the given label. Re-instrumenting replaces the previous entry.
func (g *Registry) Instrument(c Instrumentable, name string, rec *Recorder) {
	c.SetObserver(rec)
	g.entries.Set(c.ID(), Entry{ID: c.ID(), TypeName: c.TypeName(), Name: name})
}

// Release detaches the observer and forgets the component.
func (g *Registry) Release(c Instrumentable) {
	c.SetObserver(nil)
	g.entries.Remove(c.ID())
}

// Lookup returns the entry for a component id.
func (g *Registry) Lookup(id string) (Entry, bool) {
	return g.entries.Get(id)
}

// Live returns a snapshot of all instrumented components.
func (g *Registry) Live() []Entry {
	out := make([]Entry, 0, g.entries.Count())
	g.entries.IterCb(func(_ string, e Entry) {
		out = append(out, e)
	})
	return out
}

// Count returns the number of instrumented components.
func (g *Registry) Count() int {
	return g.entries.Count()
}
