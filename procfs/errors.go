package procfs

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// Returned when the pid directory disappeared between the
	// table listing and the record extraction. The enumerator
	// silently drops such processes.
	ErrorProcessNotRunning = errors.New("process not running")

	ErrorMalformedUptime = errors.New("malformed uptime data")
	ErrorMalformedStat   = errors.New("malformed stat data")
	ErrorSystemTime      = errors.New("system time unavailable")

	NotImplementedError = errors.New("not implemented")
)

// ClockRateError means the host's clock tick resolution could not be
// determined. Without it no start time can be converted from ticks,
// so enumeration aborts instead of emitting wrong times.
type ClockRateError struct {
	Err error
}

func (self *ClockRateError) Error() string {
	return fmt.Sprintf("clock tick rate unavailable: %v", self.Err)
}

func (self *ClockRateError) Unwrap() error {
	return self.Err
}
