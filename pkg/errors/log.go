package errors

import (
	"fmt"
	"os"
)

// LogHandler is a Handler that logs errors to stderr.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

// HandleError logs a ComponentError to stderr.
func (h *LogHandler) HandleError(err *ComponentError) {
	if err == nil {
		return
	}
	if h.Verbose {
		fmt.Fprintf(os.Stderr, "[blazr error] %s [%s]", err.Op, err.Kind)
		if err.Component != "" {
			fmt.Fprintf(os.Stderr, " component=%s", err.Component)
		}
		fmt.Fprintf(os.Stderr, ": %v\n", err.Err)
	} else {
		fmt.Fprintf(os.Stderr, "[blazr error] %s: %v\n", err.Op, err.Err)
	}
}

// HandleHookError logs a HookError to stderr.
func (h *LogHandler) HandleHookError(err *HookError) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "[blazr hook error] %s\n", err.Error())
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", err.StackTrace)
	}
}
