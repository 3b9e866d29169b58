package clock

import (
	"time"

	"go.uber.org/fx"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Clock is an interface that abstracts the functionality for measuring time,
// so time-triggered behavior can be driven deterministically in tests.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
	// After waits for at least the duration d and then delivers the
	// current time on the returned channel.
	After(d time.Duration) <-chan time.Time
}

type clock struct{}

// New creates a new instance of Clock.
func New() Clock {
	return clock{}
}

func (clock) Now() time.Time {
	return time.Now()
}

func (clock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
