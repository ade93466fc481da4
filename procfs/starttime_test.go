package procfs

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"www.velocidex.com/golang/pslist/utils"
)

func TestStartTime(t *testing.T) {
	root := t.TempDir()
	writeUptime(t, root, test_uptime)
	writeProcEntry(t, root, 4242, map[string]string{
		"stat": statLine(4242, "kworker/0:1H", "12345"),
	})

	table := testProcessTable(root)
	start_time, err := table.startTime(4242, 100)
	require.NoError(t, err)

	// boot time (now - uptime) plus 123.45 seconds, truncated.
	assert.Equal(t, test_start_of_12345, start_time.Unix())
	assert.Equal(t, 0, start_time.Nanosecond())
}

// Processes that started later must never sort earlier, including
// at sub-second tick distances that truncation collapses.
func TestStartTimeMonotonicInTicks(t *testing.T) {
	root := t.TempDir()
	writeUptime(t, root, test_uptime)

	table := testProcessTable(root)

	previous := time.Time{}
	for _, ticks := range []string{
		"0", "1", "49", "50", "99", "100", "101", "12345", "4294967295"} {
		writeProcEntry(t, root, 77, map[string]string{
			"stat": statLine(77, "ticker", ticks),
		})

		start_time, err := table.startTime(77, 100)
		require.NoError(t, err)

		assert.False(t, start_time.Before(previous),
			"start time went backwards at %v ticks", ticks)
		previous = start_time
	}
}

var malformed_uptime_fixtures = []struct {
	name   string
	uptime string
}{
	{"empty", ""},
	{"whitespace only", "   \n"},
	{"not a number", "forty seconds\n"},
}

func TestStartTimeMalformedUptime(t *testing.T) {
	for _, fixture := range malformed_uptime_fixtures {
		t.Run(fixture.name, func(t *testing.T) {
			root := t.TempDir()
			writeUptime(t, root, fixture.uptime)
			writeProcEntry(t, root, 1, map[string]string{
				"stat": statLine(1, "init", "100"),
			})

			_, err := testProcessTable(root).startTime(1, 100)
			assert.ErrorIs(t, err, ErrorMalformedUptime)
		})
	}
}

var malformed_stat_fixtures = []struct {
	name string
	stat string
}{
	{"empty", ""},
	{"no comm delimiter", "12 S 1 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0\n"},
	{"truncated", "12 (cat) S 1 2 3 4\n"},
	{"starttime not a number", "12 (cat) S 1 12 12 0 -1 0 0 0 0 0 " +
		"0 0 0 0 20 0 1 0 soon 0 0 0\n"},
}

func TestStartTimeMalformedStat(t *testing.T) {
	for _, fixture := range malformed_stat_fixtures {
		t.Run(fixture.name, func(t *testing.T) {
			root := t.TempDir()
			writeUptime(t, root, test_uptime)
			writeProcEntry(t, root, 12, map[string]string{
				"stat": fixture.stat,
			})

			_, err := testProcessTable(root).startTime(12, 100)
			assert.ErrorIs(t, err, ErrorMalformedStat)
		})
	}
}

func TestStartTimeMissingStat(t *testing.T) {
	root := t.TempDir()
	writeUptime(t, root, test_uptime)

	_, err := testProcessTable(root).startTime(12, 100)
	assert.Error(t, err)
}

func TestStartTimeSystemClockBeforeEpoch(t *testing.T) {
	root := t.TempDir()
	writeUptime(t, root, test_uptime)
	writeProcEntry(t, root, 1, map[string]string{
		"stat": statLine(1, "init", "100"),
	})

	table := NewProcessTable(Options{
		RootPath: root,
		Clock:    utils.MockClock{MockNow: time.Unix(-7200, 0)},
		ClockTick: func() (int64, error) {
			return 100, nil
		},
	})

	_, err := table.startTime(1, 100)
	assert.ErrorIs(t, err, ErrorSystemTime)
}

// The comm field is attacker controlled - a process may rename
// itself to contain spaces, parentheses or both. Field counting must
// anchor on the last closing parenthesis.
var start_ticks_fixtures = []struct {
	name  string
	comm  string
	ticks float64
}{
	{"plain", "bash", 12345},
	{"spaces", "tmux: server", 54321},
	{"parens", "awkward)", 1},
	{"parens and spaces", "Web (Content) worker", 99},
	{"trailing space", "sd-pam ", 240},
}

func TestStartTicks(t *testing.T) {
	for _, fixture := range start_ticks_fixtures {
		t.Run(fixture.name, func(t *testing.T) {
			stat := statLine(
				999, fixture.comm,
				strconv.FormatFloat(fixture.ticks, 'f', -1, 64))

			ticks, err := startTicks(stat)
			require.NoError(t, err)
			assert.Equal(t, fixture.ticks, ticks)
		})
	}
}
