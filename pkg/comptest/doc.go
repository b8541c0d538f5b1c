// Package comptest provides an isolated host harness for lifecycle
// components. A Tester plays the host role: it owns the cooperative
// dispatcher and a fake clock, accepts queued render fragments, executes
// them as dispatcher jobs, and records the produced visual trees so tests
// can assert on render counts and markup deterministically.
package comptest
