package trace

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-blazr/blazr/pkg/core"
	"github.com/go-blazr/blazr/pkg/sched"
	"github.com/go-blazr/blazr/pkg/vtree"
)

func testEvent(r *Recorder, kind core.TransitionKind) {
	r.Transition(core.Transition{Kind: kind, Component: "c1", TypeName: "widget"})
}

func TestRecorder_SequenceIsMonotonic(t *testing.T) {
	r := NewRecorder(8)
	for i := 0; i < 5; i++ {
		testEvent(r, core.TransitionRenderRequested)
	}

	events := r.Events()
	require.Len(t, events, 5)
	for i, e := range events {
		assert.Equal(t, uint64(i+1), e.Seq)
	}
	assert.Zero(t, r.Dropped())
}

func TestRecorder_RingKeepsNewestEvents(t *testing.T) {
	r := NewRecorder(4)
	kinds := []core.TransitionKind{
		core.TransitionPhaseStart,
		core.TransitionRenderRequested,
		core.TransitionRenderQueued,
		core.TransitionRenderExecuted,
		core.TransitionPhaseEnd,
		core.TransitionDetached,
	}
	for _, k := range kinds {
		testEvent(r, k)
	}

	events := r.Events()
	require.Len(t, events, 4)
	assert.Equal(t, 2, r.Dropped())
	assert.Equal(t, "render-queued", events[0].Kind)
	assert.Equal(t, "detached", events[3].Kind)
	assert.Equal(t, uint64(3), events[0].Seq)
	assert.Equal(t, uint64(6), events[3].Seq)
}

func TestRecorder_EchoWritesOneLinePerEvent(t *testing.T) {
	var buf bytes.Buffer
	r := NewRecorder(8)
	r.setClock(func() time.Time { return time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC) })
	r.SetEcho(&buf)

	r.Transition(core.Transition{
		Kind:      core.TransitionYieldRender,
		Component: "c7",
		TypeName:  "counter",
		Phase:     "OnInitializedAsync",
		First:     true,
	})

	line := buf.String()
	assert.Contains(t, line, "[blazr trace] #1")
	assert.Contains(t, line, "counter[c7] yield-render")
	assert.Contains(t, line, "phase=OnInitializedAsync")
	assert.Contains(t, line, "first")
}

func TestRecorder_HookErrorCarriesFailureText(t *testing.T) {
	r := NewRecorder(8)
	r.Transition(core.Transition{
		Kind:      core.TransitionHookError,
		Component: "c1",
		TypeName:  "widget",
		Phase:     "OnParametersSet",
		Err:       fmt.Errorf("store unavailable"),
	})

	events := r.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "hook-error", events[0].Kind)
	assert.Equal(t, "store unavailable", events[0].Err)
}

// tracedWidget is a minimal full-lifecycle component for integration
// coverage.
type tracedWidget struct {
	core.ComponentBase
	state string
}

func (w *tracedWidget) Render() *vtree.Node { return vtree.Text(w.state) }

func (w *tracedWidget) OnInitialized() {
	w.state = "ready"
}

type jobSink struct {
	d       *sched.Dispatcher
	renders int
}

func (s *jobSink) Render(f core.RenderFragment) {
	s.d.Post(func() {
		if f() != nil {
			s.renders++
		}
	})
}

func runLifecycle(rec *Recorder) int {
	d := sched.NewDispatcher()
	sink := &jobSink{d: d}
	w := &tracedWidget{}
	core.Bind(w, d)
	if rec != nil {
		w.SetObserver(rec)
	}
	if err := w.Attach(sink); err != nil {
		panic(err)
	}
	if err := w.SetParameters(nil); err != nil {
		panic(err)
	}
	d.Flush()
	w.NotifyAfterRender()
	d.Flush()
	return sink.renders
}

func TestRecorder_ObservesFullLifecycleInOrder(t *testing.T) {
	rec := NewRecorder(64)
	renders := runLifecycle(rec)
	require.Equal(t, 1, renders)

	events := rec.Events()
	require.NotEmpty(t, events)

	// The recorded order mirrors the lifecycle: the initialization phase
	// opens before any render is queued, and the render executes before
	// after-render dispatch begins.
	idx := func(kind string) int {
		for i, e := range events {
			if e.Kind == kind {
				return i
			}
		}
		t.Fatalf("no %s event in %v", kind, events)
		return -1
	}
	assert.Less(t, idx("phase-start"), idx("render-queued"))
	assert.Less(t, idx("render-queued"), idx("render-executed"))
	assert.Less(t, idx("render-executed"), idx("after-render-start"))

	for _, e := range events {
		assert.NotEmpty(t, e.Component)
		assert.Equal(t, "tracedWidget", e.TypeName)
	}
}

func TestRecorder_DoesNotChangeBehaviour(t *testing.T) {
	// The same scenario renders identically with and without a recorder.
	plain := runLifecycle(nil)
	traced := runLifecycle(NewRecorder(64))
	assert.Equal(t, plain, traced)
}

func TestRegistry_InstrumentAndRelease(t *testing.T) {
	d := sched.NewDispatcher()
	w := &tracedWidget{}
	core.Bind(w, d)

	g := NewRegistry()
	rec := NewRecorder(8)
	g.Instrument(w, "header", rec)

	require.Equal(t, 1, g.Count())
	e, ok := g.Lookup(w.ID())
	require.True(t, ok)
	assert.Equal(t, "header", e.Name)
	assert.Equal(t, "tracedWidget", e.TypeName)

	live := g.Live()
	require.Len(t, live, 1)
	assert.Equal(t, w.ID(), live[0].ID)

	g.Release(w)
	assert.Zero(t, g.Count())

	// Released components no longer feed the recorder.
	before := rec.Len()
	w.Detach()
	assert.Equal(t, before, rec.Len())
}

func TestLoadOptional_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadOptional(t.TempDir())
	require.NoError(t, err)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, defaultCapacity, cfg.Capacity)
	assert.False(t, cfg.Echo)
}

func TestLoadOptional_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	data := []byte("enabled: true\ncapacity: 32\necho: true\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), data, 0o644))

	cfg, err := LoadOptional(dir)
	require.NoError(t, err)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 32, cfg.Capacity)
	assert.True(t, cfg.Echo)
}

func TestLoadOptional_RejectsBadFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("capacity: [oops"), 0o644))

	_, err := LoadOptional(dir)
	assert.Error(t, err)
}

func TestConfig_NewRecorder(t *testing.T) {
	disabled := &Config{Enabled: false}
	assert.Nil(t, disabled.NewRecorder())

	enabled := &Config{Enabled: true, Capacity: 16}
	r := enabled.NewRecorder()
	require.NotNil(t, r)
	for i := 0; i < 20; i++ {
		testEvent(r, core.TransitionRenderRequested)
	}
	assert.Equal(t, 16, r.Len())
}
