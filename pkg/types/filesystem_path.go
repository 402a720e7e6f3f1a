// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFilesystemPath is the sentinel error wrapped by InvalidFilesystemPathError.
var ErrInvalidFilesystemPath = errors.New("invalid filesystem path")

type (
	// FilesystemPath is a path handed to the dumper: the binary under
	// analysis, a toolchain root, or an artifact output base. Validity is
	// purely lexical. The path must be non-empty, not whitespace-only, and
	// free of NUL bytes; whether it exists is checked at the point of use,
	// not here.
	FilesystemPath string

	// InvalidFilesystemPathError reports a FilesystemPath that fails
	// lexical validation. Reason says which rule the value broke.
	InvalidFilesystemPathError struct {
		Value  FilesystemPath
		Reason string
	}
)

// String returns the path as a plain string.
func (p FilesystemPath) String() string { return string(p) }

// IsValid returns whether the FilesystemPath passes lexical validation.
func (p FilesystemPath) IsValid() (bool, []error) {
	var reason string
	switch {
	case strings.TrimSpace(string(p)) == "":
		reason = "must be non-empty"
	case strings.ContainsRune(string(p), 0):
		reason = "must not contain NUL bytes"
	default:
		return true, nil
	}
	return false, []error{&InvalidFilesystemPathError{Value: p, Reason: reason}}
}

// Error implements the error interface for InvalidFilesystemPathError.
func (e *InvalidFilesystemPathError) Error() string {
	return fmt.Sprintf("invalid filesystem path %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidFilesystemPath for errors.Is() compatibility.
func (e *InvalidFilesystemPathError) Unwrap() error { return ErrInvalidFilesystemPath }
