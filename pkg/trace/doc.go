// Package trace provides the diagnostic decorator for the lifecycle core.
//
// A Recorder implements core.Observer: every lifecycle transition becomes
// a strictly ordered event, tagged with a monotonic sequence number, the
// component's short instance identifier, and its declared type name.
// Events live in a fixed-capacity ring buffer; an optional echo writer
// mirrors them as text lines.
//
// The recorder is purely observational. It never alters which branch of
// the lifecycle state machine executes, and it logs hook failures before
// they propagate without ever suppressing them.
package trace
