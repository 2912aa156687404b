package output

import "time"

// Clock supplies "now" for timestamping marks and for past/future session
// classification.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock port.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }
