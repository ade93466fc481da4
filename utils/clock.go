package utils

import "time"

// Clock is the source of wall clock time. Injecting it makes start
// time arithmetic reproducible in tests.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (self RealClock) Now() time.Time {
	return time.Now()
}

// MockClock always returns a fixed time.
type MockClock struct {
	MockNow time.Time
}

func (self MockClock) Now() time.Time {
	return self.MockNow
}
