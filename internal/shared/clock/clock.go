// Package clock provides an injectable time source. Domain and application
// code never reads ambient time directly so transition and retention logic
// stays deterministically testable.
package clock

import "time"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func NewSystemClock() SystemClock {
	return SystemClock{}
}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Fixed is a Clock pinned to a single instant, advanced explicitly.
// Intended for tests.
type Fixed struct {
	current time.Time
}

func NewFixed(t time.Time) *Fixed {
	return &Fixed{current: t.UTC()}
}

func (f *Fixed) Now() time.Time {
	return f.current
}

// Advance moves the fixed clock forward by d.
func (f *Fixed) Advance(d time.Duration) {
	f.current = f.current.Add(d)
}
