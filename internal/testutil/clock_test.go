// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"sync"
	"testing"
	"time"
)

func TestFakeClockDefaultsToFixedReferenceTime(t *testing.T) {
	t.Parallel()

	clock := NewFakeClock(time.Time{})
	want := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	if !clock.Now().Equal(want) {
		t.Errorf("NewFakeClock(zero).Now() = %v, want %v", clock.Now(), want)
	}
}

func TestFakeClockAdvance(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := NewFakeClock(start)

	clock.Advance(90 * time.Second)
	if got := clock.Now(); !got.Equal(start.Add(90 * time.Second)) {
		t.Errorf("Now() after Advance = %v, want %v", got, start.Add(90*time.Second))
	}
	if got := clock.Since(start); got != 90*time.Second {
		t.Errorf("Since(start) = %v, want %v", got, 90*time.Second)
	}
}

func TestFakeClockConcurrentAccess(t *testing.T) {
	t.Parallel()

	clock := NewFakeClock(time.Time{})
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			clock.Advance(time.Millisecond)
		}()
		go func() {
			defer wg.Done()
			_ = clock.Now()
		}()
	}
	wg.Wait()

	want := time.Date(2020, 1, 1, 0, 0, 0, 10*int(time.Millisecond), time.UTC)
	if !clock.Now().Equal(want) {
		t.Errorf("Now() after concurrent advances = %v, want %v", clock.Now(), want)
	}
}
