// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidWildcardPath is the sentinel error wrapped by InvalidWildcardPathError.
var ErrInvalidWildcardPath = errors.New("invalid wildcard path")

type (
	// WildcardPath represents a filesystem path that may contain '*' glob
	// segments, such as a versioned toolchain root ("/opt/unity/20*").
	// The zero value ("") is valid and means the path is not configured;
	// resolution only happens in modes that require it.
	WildcardPath string

	// InvalidWildcardPathError is returned when a WildcardPath value is
	// non-empty but whitespace-only (structurally invalid).
	InvalidWildcardPathError struct {
		Value WildcardPath
	}
)

// Error implements the error interface.
func (e *InvalidWildcardPathError) Error() string {
	return fmt.Sprintf("invalid wildcard path %q (must not be whitespace-only)", e.Value)
}

// Unwrap returns ErrInvalidWildcardPath so callers can use errors.Is for programmatic detection.
func (e *InvalidWildcardPathError) Unwrap() error { return ErrInvalidWildcardPath }

// String returns the string representation of the WildcardPath.
func (p WildcardPath) String() string { return string(p) }

// HasPattern reports whether the path contains at least one '*' segment and
// therefore needs resolution before it can be probed.
func (p WildcardPath) HasPattern() bool { return strings.ContainsRune(string(p), '*') }

// Validate returns nil if the WildcardPath is structurally valid,
// or a validation error if it is not.
// The zero value ("") is valid — it means no path is configured.
// Non-empty values must contain visible characters (not be whitespace-only).
func (p WildcardPath) Validate() error {
	if p != "" && strings.TrimSpace(string(p)) == "" {
		return &InvalidWildcardPathError{Value: p}
	}
	return nil
}
