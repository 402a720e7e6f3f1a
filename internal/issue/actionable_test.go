// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name: "operation only",
			err: &ActionableError{
				Operation: "load metadata bundle",
			},
			expected: "failed to load metadata bundle",
		},
		{
			name: "operation with resource",
			err: &ActionableError{
				Operation: "load metadata bundle",
				Resource:  "./metadata.json",
			},
			expected: "failed to load metadata bundle: ./metadata.json",
		},
		{
			name: "operation with cause",
			err: &ActionableError{
				Operation: "parse run manifest",
				Cause:     errors.New("toml: line 5: unexpected token"),
			},
			expected: "failed to parse run manifest: toml: line 5: unexpected token",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "load metadata bundle",
				Resource:  "./metadata.json",
				Cause:     errors.New("file not found"),
			},
			expected: "failed to load metadata bundle: ./metadata.json: file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	cause := errors.New("no such file")
	withCause := &ActionableError{Operation: "load metadata bundle", Cause: cause}
	if !errors.Is(withCause.Unwrap(), cause) {
		t.Error("Unwrap() should return the cause error")
	}

	noCause := &ActionableError{Operation: "load metadata bundle"}
	if noCause.Unwrap() != nil {
		t.Error("Unwrap() should return nil when no cause")
	}
}

func TestActionableError_ErrorsIs(t *testing.T) {
	sentinel := errors.New("bundle magic mismatch")
	wrapped := &ActionableError{Operation: "read metadata bundle", Cause: sentinel}

	if !errors.Is(wrapped, sentinel) {
		t.Error("errors.Is should see through ActionableError to the cause")
	}
}

func TestActionableError_Format(t *testing.T) {
	tests := []struct {
		name     string
		err      *ActionableError
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name: "simple error non-verbose",
			err: &ActionableError{
				Operation: "resolve toolchain",
			},
			verbose:  false,
			contains: []string{"failed to resolve toolchain"},
		},
		{
			name: "error with suggestions",
			err: &ActionableError{
				Operation:   "load metadata bundle",
				Resource:    "./metadata.json",
				Suggestions: []string{"Re-run the extractor", "Check file permissions"},
			},
			verbose: false,
			contains: []string{
				"failed to load metadata bundle",
				"./metadata.json",
				"• Re-run the extractor",
				"• Check file permissions",
			},
		},
		{
			name: "error chain in verbose mode",
			err: &ActionableError{
				Operation: "parse metadata",
				Cause:     errors.New("unexpected end of input"),
			},
			verbose: true,
			contains: []string{
				"failed to parse metadata",
				"Error chain:",
				"1. unexpected end of input",
			},
		},
		{
			name: "no error chain in non-verbose",
			err: &ActionableError{
				Operation: "parse metadata",
				Cause:     errors.New("unexpected end of input"),
			},
			verbose:  false,
			contains: []string{"failed to parse metadata: unexpected end of input"},
			excludes: []string{"Error chain:"},
		},
		{
			name: "nested error chain verbose",
			err: &ActionableError{
				Operation: "render artifacts",
				Cause: &ActionableError{
					Operation: "write artifact",
					Cause:     errors.New("disk full"),
				},
			},
			verbose: true,
			contains: []string{
				"Error chain:",
				"1. failed to write artifact: disk full",
				"2. disk full",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Format(tt.verbose)

			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("Format() missing %q\ngot:\n%s", s, got)
				}
			}

			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("Format() should not contain %q\ngot:\n%s", s, got)
				}
			}
		})
	}
}

func TestErrorContext_Build(t *testing.T) {
	tests := []struct {
		name       string
		setup      func() *ErrorContext
		wantNil    bool
		checkError func(t *testing.T, err *ActionableError)
	}{
		{
			name: "minimal with operation",
			setup: func() *ErrorContext {
				return NewErrorContext().WithOperation("probe toolchain root")
			},
			wantNil: false,
			checkError: func(t *testing.T, err *ActionableError) {
				t.Helper()
				if err.Operation != "probe toolchain root" {
					t.Errorf("Operation = %q, want %q", err.Operation, "probe toolchain root")
				}
			},
		},
		{
			name: "missing operation returns nil",
			setup: func() *ErrorContext {
				return NewErrorContext().WithResource("artifacts/out")
			},
			wantNil: true,
		},
		{
			name: "full context",
			setup: func() *ErrorContext {
				return NewErrorContext().
					WithOperation("load config").
					WithResource("~/.config/typedump/typedump.cue").
					WithSuggestion("Check syntax").
					WithSuggestion("Verify permissions").
					Wrap(errors.New("parse error"))
			},
			wantNil: false,
			checkError: func(t *testing.T, err *ActionableError) {
				t.Helper()
				if err.Operation != "load config" {
					t.Errorf("Operation = %q", err.Operation)
				}
				if err.Resource != "~/.config/typedump/typedump.cue" {
					t.Errorf("Resource = %q", err.Resource)
				}
				if len(err.Suggestions) != 2 {
					t.Errorf("Suggestions count = %d, want 2", len(err.Suggestions))
				}
				if err.Cause == nil || err.Cause.Error() != "parse error" {
					t.Errorf("Cause = %v", err.Cause)
				}
			},
		},
		{
			name: "suggestions accumulate",
			setup: func() *ErrorContext {
				return NewErrorContext().
					WithOperation("render").
					WithSuggestion("Suggestion 1").
					WithSuggestion("Suggestion 2").
					WithSuggestion("Suggestion 3")
			},
			wantNil: false,
			checkError: func(t *testing.T, err *ActionableError) {
				t.Helper()
				if len(err.Suggestions) != 3 {
					t.Errorf("Suggestions count = %d, want 3", len(err.Suggestions))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := tt.setup()
			err := ctx.Build()

			if tt.wantNil {
				if err != nil {
					t.Errorf("Build() = %v, want nil", err)
				}
				return
			}

			if err == nil {
				t.Fatal("Build() returned nil, want error")
			}

			if tt.checkError != nil {
				tt.checkError(t, err)
			}
		})
	}
}

func TestErrorContext_BuildError(t *testing.T) {
	err := NewErrorContext().WithOperation("write artifact").BuildError()
	if err == nil {
		t.Fatal("BuildError() returned nil")
	}
	if _, ok := errors.AsType[*ActionableError](err); !ok {
		t.Error("BuildError() should return *ActionableError")
	}

	// A context without an operation builds to a plain nil, not a typed nil.
	if errNil := NewErrorContext().BuildError(); errNil != nil {
		t.Error("BuildError() should return nil when operation missing")
	}
}

func TestActionableError_ErrorInterface(t *testing.T) {
	var _ error = (*ActionableError)(nil)
}

// A context set up once can wrap different causes, e.g. one per artifact in
// a batch write.
func TestErrorContext_Reuse(t *testing.T) {
	ctx := NewErrorContext().
		WithOperation("write artifact").
		WithResource("artifacts/GameManager.cs").
		WithSuggestion("Check free disk space")

	err1 := ctx.Wrap(errors.New("disk full")).Build()
	err2 := ctx.Wrap(errors.New("permission denied")).Build()

	if err1.Cause.Error() == err2.Cause.Error() {
		t.Error("reused context should carry the latest cause")
	}
	if err1.Operation != err2.Operation {
		t.Error("reused context should preserve operation")
	}
}
