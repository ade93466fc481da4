//go:build linux || freebsd
// +build linux freebsd

package procfs

import (
	"github.com/tklauser/go-sysconf"
)

// ClockTicksPerSecond returns the kernel's scheduler clock resolution
// (sysconf(_SC_CLK_TCK)). Process start times in the stat file are
// expressed in these units.
func ClockTicksPerSecond() (int64, error) {
	return sysconf.Sysconf(sysconf.SC_CLK_TCK)
}
