package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock stamps processed_at on reports. Tests freeze it via SetClock.
var clock = clockwork.NewRealClock()

// SetClock replaces the report time source. Pass nil to restore the real clock.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Now returns the current time from the package clock.
func Now() time.Time {
	return clock.Now()
}
