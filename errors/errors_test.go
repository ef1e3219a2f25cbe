package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseRender,
				Kind:   KindListenerState,
				Op:     "detach",
				Detail: "listener was never attached",
			},
			contains: []string{"[render]", "listener_state", "detach", "listener was never attached"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDispatch,
				Kind:  KindReentrantAccess,
			},
			contains: []string{"[dispatch]", "reentrant_access"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseHost,
				Kind:   KindInvalidData,
				Detail: "bad node",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[host]", "invalid_data", "bad node", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseCommand,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	// Test with errors.Unwrap
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseRender,
		Kind:  KindBaselineMissing,
		Op:    "render",
	}

	// Same phase and kind
	if !err.Is(&Error{Phase: PhaseRender, Kind: KindBaselineMissing}) {
		t.Error("Is should match same phase and kind")
	}

	// Different phase
	if err.Is(&Error{Phase: PhaseStartup, Kind: KindBaselineMissing}) {
		t.Error("Is should not match different phase")
	}

	// Different kind
	if err.Is(&Error{Phase: PhaseRender, Kind: KindListenerState}) {
		t.Error("Is should not match different kind")
	}

	// Test with errors.Is
	target := &Error{Phase: PhaseRender, Kind: KindBaselineMissing}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseDispatch, KindReentrantAccess).
		Op("update").
		Value("model").
		Cause(cause).
		Detail("borrowed by %s", "view").
		Build()

	if err.Phase != PhaseDispatch {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseDispatch)
	}
	if err.Kind != KindReentrantAccess {
		t.Errorf("Kind = %v, want %v", err.Kind, KindReentrantAccess)
	}
	if err.Op != "update" {
		t.Errorf("Op = %v, want 'update'", err.Op)
	}
	if err.Value != "model" {
		t.Errorf("Value = %v, want 'model'", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "borrowed by view" {
		t.Errorf("Detail = %v, want 'borrowed by view'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("InitConsumed", func(t *testing.T) {
		err := InitConsumed()
		if err.Phase != PhaseStartup || err.Kind != KindInitConsumed {
			t.Errorf("got %v/%v, want startup/init_consumed", err.Phase, err.Kind)
		}
	})

	t.Run("BaselineMissing", func(t *testing.T) {
		err := BaselineMissing()
		if err.Kind != KindBaselineMissing {
			t.Errorf("Kind = %v, want %v", err.Kind, KindBaselineMissing)
		}
	})

	t.Run("ReentrantAccess", func(t *testing.T) {
		err := ReentrantAccess("update")
		if err.Kind != KindReentrantAccess {
			t.Errorf("Kind = %v, want %v", err.Kind, KindReentrantAccess)
		}
		if err.Op != "update" {
			t.Errorf("Op = %v, want 'update'", err.Op)
		}
	})

	t.Run("ListenerState", func(t *testing.T) {
		err := ListenerState(PhaseRender, "detach", "already detached")
		if err.Kind != KindListenerState {
			t.Errorf("Kind = %v, want %v", err.Kind, KindListenerState)
		}
		if err.Phase != PhaseRender {
			t.Errorf("Phase = %v, want %v", err.Phase, PhaseRender)
		}
	})

	t.Run("MountMissing", func(t *testing.T) {
		err := MountMissing("mount point is nil")
		if err.Phase != PhaseBootstrap || err.Kind != KindMountMissing {
			t.Errorf("got %v/%v, want bootstrap/mount_missing", err.Phase, err.Kind)
		}
	})

	t.Run("NotInitialized", func(t *testing.T) {
		err := NotInitialized(PhaseDispatch, "app")
		if err.Kind != KindNotInitialized {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNotInitialized)
		}
		if !strings.Contains(err.Detail, "app") {
			t.Errorf("Detail = %v, should name the component", err.Detail)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseHost, "listener handle", "h42")
		if err.Kind != KindNotFound {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNotFound)
		}
		if !strings.Contains(err.Detail, "h42") {
			t.Errorf("Detail = %v, should contain the name", err.Detail)
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		cause := errors.New("io failure")
		err := Wrap(PhaseCommand, KindInvalidData, cause, "decode message")
		if !errors.Is(err, cause) {
			t.Error("wrapped error should match cause via errors.Is")
		}
	})
}
