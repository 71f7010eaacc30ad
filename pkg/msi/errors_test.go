package msi_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/robDaglio/msi/pkg/msi"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, msi.ExitSuccess},
		{"general error", errors.New("something went wrong"), msi.ExitGeneralError},
		{"invalid config", msi.ErrInvalidConfig, msi.ExitConfigError},
		{"unsupported auth", msi.ErrUnsupportedAuthMethod, msi.ExitConfigError},
		{"connection failed", msi.ErrConnectionFailed, msi.ExitConnectionError},
		{"cursor failed", msi.ErrCursorFailed, msi.ExitCursorError},
		{"query failed", msi.ErrQueryFailed, msi.ExitQueryError},
		{"wrapped connection failed", fmt.Errorf("connect: %w", msi.ErrConnectionFailed), msi.ExitConnectionError},
		{"wrapped query failed", fmt.Errorf("%w: table missing", msi.ErrQueryFailed), msi.ExitQueryError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := msi.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeForError_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown flag", errors.New("unknown flag --foo"), msi.ExitUsageError},
		{"unknown shorthand flag", errors.New("unknown shorthand flag: 'x'"), msi.ExitUsageError},
		{"accepts args", errors.New("accepts 1 arg(s), received 0"), msi.ExitUsageError},
		{"required flag", errors.New("required flag \"database\" not set"), msi.ExitUsageError},
		{"invalid argument", errors.New("invalid argument \"abc\" for \"--port\""), msi.ExitUsageError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := msi.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeForError_ConnectionPatterns(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"failed to connect", errors.New("failed to connect to database")},
		{"connection refused", errors.New("dial tcp 127.0.0.1:3306: connection refused")},
		{"no such host", errors.New("dial tcp: lookup nowhere.invalid: no such host")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := msi.ExitCodeForError(tt.err); got != msi.ExitConnectionError {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, msi.ExitConnectionError)
			}
		})
	}
}
