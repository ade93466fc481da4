package procfs

import (
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"www.velocidex.com/golang/pslist/logging"
)

// ProcessRecord is one process observed in the snapshot. Only the
// pid is guaranteed - each other field is nil if it could not be
// read, because the process may exit (or deny us access) at any
// point while we collect it.
type ProcessRecord struct {
	Pid int32 `json:"Pid"`

	// The raw argv with embedded NUL separators, exactly as the
	// kernel reports it. Present but empty for kernel threads.
	CommandLine *string `json:"CommandLine,omitempty"`

	// Resolved target of the exe link.
	Exe *string `json:"Exe,omitempty"`

	// Owner account name, or the decimal uid if the uid has no
	// passwd entry.
	Username *string `json:"Username,omitempty"`

	// Wall clock start time truncated to the second.
	StartTime *time.Time `json:"StartTime,omitempty"`

	// Human readable scheduler state, e.g. "S (sleeping)".
	State *string `json:"State,omitempty"`
}

// extractRecord reads each field of one process independently. A
// failed read leaves that field nil and the rest intact - in the
// worst case the record carries only the pid.
func (self *ProcessTable) extractRecord(
	pid int32, ticks_per_second float64) *ProcessRecord {

	record := &ProcessRecord{Pid: pid}
	pid_dir := filepath.Join(self.root, strconv.Itoa(int(pid)))

	// Kernel threads expose an empty cmdline file. That still
	// counts as a readable command line.
	data, err := os.ReadFile(filepath.Join(pid_dir, "cmdline"))
	if err == nil {
		cmdline := string(data)
		record.CommandLine = &cmdline
	}

	// The exe link is only readable for our own processes (or
	// with CAP_SYS_PTRACE) and is dangling for kernel threads.
	exe, err := os.Readlink(filepath.Join(pid_dir, "exe"))
	if err == nil {
		record.Exe = &exe
	}

	// The owner of the pid directory is the process owner.
	var stat unix.Stat_t
	err = unix.Stat(pid_dir, &stat)
	if err == nil {
		username := usernameForUid(stat.Uid)
		record.Username = &username
	}

	start_time, err := self.startTime(pid, ticks_per_second)
	if err != nil {
		logging.GetLogger(nil, &logging.GenericComponent).Debug(
			"pslist: start time for pid %v: %v", pid, err)
	} else {
		record.StartTime = &start_time
	}

	status, err := os.ReadFile(filepath.Join(pid_dir, "status"))
	if err == nil {
		state, pres := findState(string(status))
		if pres {
			record.State = &state
		}
	}

	return record
}

// findState extracts the scheduler state from the status file text.
// The kernel renders the line as "State:\tS (sleeping)".
func findState(status string) (string, bool) {
	for _, line := range strings.Split(status, "\n") {
		if strings.HasPrefix(line, "State:") {
			_, state, ok := strings.Cut(line, "\t")
			return state, ok
		}
	}

	return "", false
}

// usernameForUid resolves a uid against the host account database.
// Uids without a passwd entry (common inside containers) come back
// as the decimal string, same as ps renders them.
func usernameForUid(uid uint32) string {
	uid_string := strconv.FormatUint(uint64(uid), 10)

	user_record, err := user.LookupId(uid_string)
	if err != nil {
		return uid_string
	}

	return user_record.Username
}
