// SPDX-License-Identifier: MPL-2.0

package stopwatch

import "time"

type (
	// Clock abstracts time operations for deterministic testing.
	// Production code uses RealClock; tests use testutil.FakeClock.
	Clock interface {
		// Now returns the current time.
		Now() time.Time

		// Since returns the time elapsed since t.
		Since(t time.Time) time.Duration
	}

	// RealClock implements Clock using actual system time.
	// This is the default for production code.
	RealClock struct{}

	// ReportFunc receives the label and elapsed duration of a measured scope.
	ReportFunc func(label string, elapsed time.Duration)

	// Stopwatch measures labelled scopes of work against a Clock and hands
	// every completed measurement to its ReportFunc.
	Stopwatch struct {
		clock  Clock
		report ReportFunc
	}
)

// Now returns the current system time.
func (RealClock) Now() time.Time { return time.Now() }

// Since returns the time elapsed since t.
func (RealClock) Since(t time.Time) time.Duration { return time.Since(t) }

// New returns a Stopwatch measuring against clock and reporting through
// report. A nil clock falls back to RealClock; a nil report discards
// measurements.
func New(clock Clock, report ReportFunc) *Stopwatch {
	if clock == nil {
		clock = RealClock{}
	}
	return &Stopwatch{clock: clock, report: report}
}

// Measure runs fn and reports its elapsed time under label on every exit
// path: normal return, error return, and panic. The error from fn is
// returned unchanged.
func (s *Stopwatch) Measure(label string, fn func() error) error {
	start := s.clock.Now()
	defer func() {
		if s.report != nil {
			s.report(label, s.clock.Since(start))
		}
	}()
	return fn()
}
