package providers

import (
	"time"
)

// Clock supplies the current time. Injected so date validation in the
// booking lifecycle can be tested deterministically.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
