// SPDX-License-Identifier: MPL-2.0

// Package stopwatch provides scoped duration measurement: a block of work is
// wrapped in Measure, and its elapsed time is reported on every exit path,
// including error returns and panics. The orchestrator uses it to time each
// image independently.
package stopwatch
