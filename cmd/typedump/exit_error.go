// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"typedump/pkg/types"
)

// ExitError carries the exit code a failed command wants the process to
// report. RunE handlers return it instead of calling os.Exit so deferred
// cleanup still runs; Execute unwraps it at the top of the stack.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

// Error returns the wrapped error's message, or a generic one when the
// exit code stands alone.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the wrapped error, if any.
func (e *ExitError) Unwrap() error { return e.Err }
