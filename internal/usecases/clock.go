package usecases

import "time"

// Clock supplies the timestamp deadlines are compared against
type Clock interface {
	Now() time.Time
}

// SystemClock reads wall-clock time in UTC
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
