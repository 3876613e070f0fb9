package domain

import "time"

// CurrentTimeProvider abstracts the clock for deterministic tests.
type CurrentTimeProvider interface {
	Now() time.Time
}
