package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the runtime the error occurred
type Phase string

const (
	PhaseConfig    Phase = "config"    // configuration validation
	PhaseBootstrap Phase = "bootstrap" // mount point adoption
	PhaseStartup   Phase = "startup"   // the run sequence
	PhaseDispatch  Phase = "dispatch"  // message and effect processing
	PhaseRender    Phase = "render"    // view, patch, post-render
	PhaseCommand   Phase = "command"   // asynchronous command handling
	PhaseRouting   Phase = "routing"   // navigation and routes
	PhaseHost      Phase = "host"      // host platform operations
)

// Kind categorizes the error
type Kind string

const (
	KindInitConsumed    Kind = "init_consumed"    // startup ran twice
	KindModelMissing    Kind = "model_missing"    // after-mount produced no model
	KindBaselineMissing Kind = "baseline_missing" // render with no stored tree
	KindReentrantAccess Kind = "reentrant_access" // nested exclusive model access
	KindListenerState   Kind = "listener_state"   // attach/detach lifecycle violation
	KindMountMissing    Kind = "mount_missing"    // mount point absent or invalid
	KindNotInitialized  Kind = "not_initialized"
	KindInvalidInput    Kind = "invalid_input"
	KindInvalidData     Kind = "invalid_data"
	KindUnsupported     Kind = "unsupported"
	KindNotFound        Kind = "not_found"
	KindExhausted       Kind = "exhausted" // a scheduling queue refused to quiesce
)

// Error is the structured error type used throughout the runtime
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Op     string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Op != "" {
		b.WriteString(" in ")
		b.WriteString(e.Op)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Op sets the operation name
func (b *Builder) Op(op string) *Builder {
	b.err.Op = op
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InitConsumed reports a second consumption of the one-shot init config.
func InitConsumed() *Error {
	return &Error{
		Phase:  PhaseStartup,
		Kind:   KindInitConsumed,
		Detail: "init config already consumed; Run may only be called once",
	}
}

// ModelMissing reports an absent model where one is required.
func ModelMissing(op string) *Error {
	return &Error{
		Phase:  PhaseStartup,
		Kind:   KindModelMissing,
		Op:     op,
		Detail: "no model installed",
	}
}

// BaselineMissing reports a render with no stored baseline tree.
func BaselineMissing() *Error {
	return &Error{
		Phase:  PhaseRender,
		Kind:   KindBaselineMissing,
		Detail: "no baseline tree; render before bootstrap or after a failed render",
	}
}

// ReentrantAccess reports a nested exclusive access to runtime state.
func ReentrantAccess(op string) *Error {
	return &Error{
		Phase:  PhaseDispatch,
		Kind:   KindReentrantAccess,
		Op:     op,
		Detail: "state is already borrowed",
	}
}

// ListenerState reports an attach/detach lifecycle violation.
func ListenerState(phase Phase, op, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindListenerState,
		Op:     op,
		Detail: detail,
	}
}

// MountMissing reports an absent or invalid mount point.
func MountMissing(detail string) *Error {
	return &Error{
		Phase:  PhaseBootstrap,
		Kind:   KindMountMissing,
		Detail: detail,
	}
}

// NotInitialized creates a not-initialized error for a missing component.
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Detail: detail,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
