package procfs

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"www.velocidex.com/golang/pslist/utils"
)

// A real uptime file: seconds since boot, then aggregate idle time.
const test_uptime = "48267.42 193846.71\n"

// The wall clock all table fixtures run at: 1700000000.42. With the
// uptime above boot happened at 1699951733 and a process started at
// 12345 ticks (rate 100) began at 1699951856.45.
var (
	test_now            = time.Unix(1700000000, 420000000)
	test_start_of_12345 = int64(1699951856)
)

// statLine renders a stat file the way the kernel does, with the
// starttime field (22) substituted.
func statLine(pid int32, comm string, starttime string) string {
	return fmt.Sprintf(
		"%d (%s) S 1 %d %d 0 -1 4194560 1523 0 0 0 10 20 0 0 20 0 1 0 "+
			"%s 223456256 1866 18446744073709551615 0 0 0 0 0 0 0 "+
			"0 0 0 0 0 17 0 0 0 0 0 0\n",
		pid, comm, pid, pid, starttime)
}

func writeUptime(t *testing.T, root string, content string) {
	t.Helper()

	err := os.WriteFile(filepath.Join(root, "uptime"), []byte(content), 0600)
	require.NoError(t, err)
}

func writeProcEntry(t *testing.T, root string,
	pid int32, files map[string]string) {
	t.Helper()

	pid_dir := filepath.Join(root, strconv.Itoa(int(pid)))
	err := os.MkdirAll(pid_dir, 0700)
	require.NoError(t, err)

	for name, content := range files {
		err := os.WriteFile(
			filepath.Join(pid_dir, name), []byte(content), 0600)
		require.NoError(t, err)
	}
}

func testProcessTable(root string) *ProcessTable {
	return NewProcessTable(Options{
		RootPath: root,
		Clock:    utils.MockClock{MockNow: test_now},
		ClockTick: func() (int64, error) {
			return 100, nil
		},
	})
}
