package procfs

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// startTime recovers the wall clock start time of a process. The
// kernel only records it as scheduler ticks since boot (field 22 of
// the stat file), so boot time is reconstructed first: the current
// wall clock minus the uptime. The sum is truncated to whole
// seconds.
func (self *ProcessTable) startTime(
	pid int32, ticks_per_second float64) (time.Time, error) {

	uptime_data, err := os.ReadFile(filepath.Join(self.root, "uptime"))
	if err != nil {
		return time.Time{}, err
	}

	uptime_fields := strings.Fields(string(uptime_data))
	if len(uptime_fields) == 0 {
		return time.Time{}, ErrorMalformedUptime
	}

	uptime_seconds, err := strconv.ParseFloat(uptime_fields[0], 64)
	if err != nil {
		return time.Time{}, ErrorMalformedUptime
	}

	stat_data, err := os.ReadFile(filepath.Join(
		self.root, strconv.Itoa(int(pid)), "stat"))
	if err != nil {
		return time.Time{}, err
	}

	ticks, err := startTicks(string(stat_data))
	if err != nil {
		return time.Time{}, err
	}

	now := self.clock.Now()
	if now.Unix() < 0 {
		return time.Time{}, ErrorSystemTime
	}

	now_seconds := float64(now.UnixNano()) / float64(time.Second)
	boot_time := now_seconds - uptime_seconds

	return time.Unix(int64(boot_time+ticks/ticks_per_second), 0), nil
}

// startTicks pulls the starttime field out of a raw stat line. The
// comm field (2) may itself contain spaces and parentheses, so
// fields are counted from the last closing parenthesis instead of
// the start of the line.
func startTicks(stat string) (float64, error) {
	idx := strings.LastIndex(stat, ") ")
	if idx < 0 {
		return 0, ErrorMalformedStat
	}

	// starttime is field 22 of the full record. Fields 1 and 2
	// (pid and comm) precede the parenthesis, leaving index 19
	// here.
	fields := strings.Fields(stat[idx+2:])
	if len(fields) < 20 {
		return 0, ErrorMalformedStat
	}

	ticks, err := strconv.ParseFloat(fields[19], 64)
	if err != nil {
		return 0, ErrorMalformedStat
	}

	return ticks, nil
}
