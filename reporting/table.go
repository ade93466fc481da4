package reporting

import (
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"www.velocidex.com/golang/pslist/procfs"
)

const (
	// Rendered in place of an optional field that could not be
	// read at snapshot time.
	Placeholder = "-"

	// Rendered when the start time could not be computed.
	UnknownTime = "unknown"

	TimeFormat = "2006-01-02 15:04:05"
)

var tableColumns = []string{
	"Pid", "Username", "CommandLine", "Exe", "StartTime", "State"}

// OutputRecordsToTable renders one row per process. Partially
// populated records are normal output - absent fields degrade to
// placeholders, they never suppress the row.
func OutputRecordsToTable(records []*procfs.ProcessRecord,
	with_headers bool, out io.Writer) *tablewriter.Table {

	table := tablewriter.NewWriter(out)
	if with_headers {
		table.SetHeader(tableColumns)
	}
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for _, record := range records {
		table.Append(recordToRow(record))
	}

	return table
}

func recordToRow(record *procfs.ProcessRecord) []string {
	start_time := UnknownTime
	if record.StartTime != nil {
		start_time = record.StartTime.Format(TimeFormat)
	}

	return []string{
		strconv.FormatInt(int64(record.Pid), 10),
		orPlaceholder(record.Username),
		flattenCmdline(record.CommandLine),
		orPlaceholder(record.Exe),
		start_time,
		orPlaceholder(record.State),
	}
}

func orPlaceholder(value *string) string {
	if value == nil {
		return Placeholder
	}
	return *value
}

// The kernel separates argv members with NUL bytes. Map them to
// spaces for display - the record itself keeps the raw bytes.
func flattenCmdline(cmdline *string) string {
	if cmdline == nil {
		return Placeholder
	}
	return strings.TrimRight(
		strings.ReplaceAll(*cmdline, "\x00", " "), " ")
}
