// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidExitCode matches any InvalidExitCodeError via errors.Is.
var ErrInvalidExitCode = errors.New("invalid exit code")

type (
	// ExitCode is the process exit status a dump run reports. Codes stay in
	// the POSIX 0-255 range; the zero value means success. typedump itself
	// only ever emits ExitSuccess or ExitFailure.
	ExitCode int

	// InvalidExitCodeError reports a code outside the 0-255 range.
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

const (
	// ExitSuccess is reported when a dump run produced every requested artifact.
	ExitSuccess ExitCode = 0

	// ExitFailure is reported when input validation, analysis, or rendering failed.
	ExitFailure ExitCode = 1
)

// Error implements the error interface.
func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("exit code %d is outside the range 0-255", e.Value)
}

// Unwrap returns ErrInvalidExitCode for errors.Is() compatibility.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate rejects codes a process cannot actually exit with.
func (c ExitCode) Validate() error {
	if c < 0 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// IsSuccess reports whether the run completed with every artifact written.
func (c ExitCode) IsSuccess() bool { return c == ExitSuccess }

// String renders the code in decimal.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
