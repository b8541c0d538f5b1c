// Package sched provides the cooperative execution model shared by all
// components of a running UI tree.
//
// A Dispatcher is a single logical thread: at most one job runs at a time,
// and lifecycle code only ever executes inside dispatcher jobs or while a
// caller pumps the dispatcher through Await or Yield. Post is safe to call
// from any goroutine, which is how timers and background work re-enter the
// UI thread.
//
// A Task is a settle-once completion value. Lifecycle hooks return a Task;
// a hook that finishes its work before returning hands back an already
// settled task, while a hook that suspends hands back a pending one and
// settles it later through the dispatcher. Await pumps queued jobs while
// waiting, so an already-queued render executes before the suspended
// caller resumes.
package sched
