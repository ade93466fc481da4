package reporting

import (
	"io"

	"github.com/Velocidex/ordereddict"

	"www.velocidex.com/golang/pslist/json"
	"www.velocidex.com/golang/pslist/procfs"
)

// RecordToDict flattens a record into the ordered row shape the
// machine readable outputs emit. Fields that could not be read are
// omitted entirely rather than serialized as null.
func RecordToDict(record *procfs.ProcessRecord) *ordereddict.Dict {
	row := ordereddict.NewDict().Set("Pid", record.Pid)

	if record.Username != nil {
		row.Set("Username", *record.Username)
	}

	if record.CommandLine != nil {
		row.Set("CommandLine", flattenCmdline(record.CommandLine))
	}

	if record.Exe != nil {
		row.Set("Exe", *record.Exe)
	}

	if record.StartTime != nil {
		row.Set("StartTime", record.StartTime.Format(TimeFormat))
	}

	if record.State != nil {
		row.Set("State", *record.State)
	}

	return row
}

func recordsToDicts(records []*procfs.ProcessRecord) []*ordereddict.Dict {
	rows := make([]*ordereddict.Dict, 0, len(records))
	for _, record := range records {
		rows = append(rows, RecordToDict(record))
	}
	return rows
}

func OutputRecordsToJSON(records []*procfs.ProcessRecord,
	out io.Writer) error {

	serialized, err := json.MarshalIndent(recordsToDicts(records))
	if err != nil {
		return err
	}

	_, err = out.Write(append(serialized, '\n'))
	return err
}

// OutputRecordsToJSONL writes one compact JSON document per process.
func OutputRecordsToJSONL(records []*procfs.ProcessRecord,
	out io.Writer) error {

	serialized, err := json.MarshalJsonl(recordsToDicts(records))
	if err != nil {
		return err
	}

	_, err = out.Write(serialized)
	return err
}
