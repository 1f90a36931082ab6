package app

import (
	"errors"
	"os"
	"testing"
)

func TestOperationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *OperationError
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "op only",
			err:      &OperationError{Op: "save"},
			expected: "save",
		},
		{
			name:     "op and target",
			err:      &OperationError{Op: "open", Target: "/path/file.txt"},
			expected: "open /path/file.txt",
		},
		{
			name:     "full error chain",
			err:      &OperationError{Op: "open", Target: "/path/file.txt", Err: errors.New("io error")},
			expected: "open /path/file.txt: io error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.err.Error()
			if result != tt.expected {
				t.Errorf("Error() = '%s', expected '%s'", result, tt.expected)
			}
		})
	}
}

func TestOperationError_Unwrap(t *testing.T) {
	err := NewOperationError("save", "/path/file.txt", os.ErrPermission)

	if !errors.Is(err, os.ErrPermission) {
		t.Error("expected errors.Is to find the wrapped error")
	}

	var nilErr *OperationError
	if nilErr.Unwrap() != nil {
		t.Error("nil receiver should unwrap to nil")
	}
}

func TestInitError(t *testing.T) {
	err := &InitError{Component: "backend", Err: errors.New("no tty")}

	if err.Error() != "init backend: no tty" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if errors.Unwrap(err) == nil {
		t.Error("expected wrapped error")
	}
}
