//go:build !linux && !freebsd
// +build !linux,!freebsd

package procfs

func ClockTicksPerSecond() (int64, error) {
	return 0, NotImplementedError
}
