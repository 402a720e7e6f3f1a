// SPDX-License-Identifier: MPL-2.0

package dump

import (
	"errors"
	"fmt"
)

var (
	// ErrInputNotFound is the sentinel error wrapped by InputNotFoundError.
	ErrInputNotFound = errors.New("input not found")
	// ErrAnalysisFailure is the sentinel error wrapped by AnalysisFailureError.
	ErrAnalysisFailure = errors.New("analysis failure")
)

type (
	// InputNotFoundError reports a missing run input: the binary, the
	// metadata bundle, a resolved toolchain directory, or its marker file.
	// The run aborts before writing any artifact.
	InputNotFoundError struct {
		Path string
	}

	// AnalysisFailureError reports that analysis produced no usable images
	// for the input pair. Cause is nil when the analyzer succeeded but
	// returned an empty image list.
	AnalysisFailureError struct {
		Binary   string
		Metadata string
		Cause    error
	}
)

// Error implements the error interface for InputNotFoundError.
func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("input not found: %s", e.Path)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InputNotFoundError) Unwrap() error { return ErrInputNotFound }

// Error implements the error interface for AnalysisFailureError.
func (e *AnalysisFailureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("analyzing %s with %s: %v", e.Binary, e.Metadata, e.Cause)
	}
	return fmt.Sprintf("analyzing %s with %s produced no images", e.Binary, e.Metadata)
}

// Unwrap exposes the sentinel and, when present, the underlying cause, so
// both errors.Is(err, ErrAnalysisFailure) and checks against the analyzer's
// own error types keep working.
func (e *AnalysisFailureError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrAnalysisFailure}
	}
	return []error{ErrAnalysisFailure, e.Cause}
}
