package clock

import "time"

// Clock is an interface for time operations to enable testability.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

// Real returns the system clock.
func Real() Clock { return realClock{} }

func (realClock) Now() time.Time { return time.Now() }

// Fixed is a test clock that always reports the same instant.
type Fixed struct{ T time.Time }

func (f Fixed) Now() time.Time { return f.T }
