// Package errors provides structured error types for the frond runtime.
//
// Errors are categorized by Phase (where in the runtime the error occurred)
// and Kind (error category). The Error type includes context: the operation,
// the offending value, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseRender, errors.KindListenerState).
//		Op("detach").
//		Detail("listener %q was never attached", "click").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.BaselineMissing()
//	err := errors.InvalidInput(errors.PhaseConfig, "Update function is required")
//
// All errors implement the standard error interface and support errors.Is/As.
//
// Contract violations fail fast: the runtime panics with an *Error value for
// conditions that indicate application bugs (startup re-run, reentrant model
// access, rendering without a baseline). Operational failures are returned.
package errors
