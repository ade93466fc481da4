package reporting

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"www.velocidex.com/golang/pslist/json"
	"www.velocidex.com/golang/pslist/vtesting/goldie"
)

func TestRecordToDict(t *testing.T) {
	records := sampleRecords()

	goldie.AssertJson(t, "TestRecordToDict", RecordToDict(records[0]))

	// Absent fields are omitted, not nulled.
	partial := RecordToDict(records[1])
	assert.Equal(t, []string{"Pid"}, partial.Keys())
}

func TestOutputRecordsToJSON(t *testing.T) {
	out := &bytes.Buffer{}
	err := OutputRecordsToJSON(sampleRecords(), out)
	require.NoError(t, err)

	goldie.Assert(t, "TestOutputRecordsToJSON", out.Bytes())
}

func TestOutputRecordsToJSONL(t *testing.T) {
	out := &bytes.Buffer{}
	err := OutputRecordsToJSONL(sampleRecords(), out)
	require.NoError(t, err)

	goldie.Assert(t, "TestOutputRecordsToJSONL", out.Bytes())

	// Every line must stand alone as a document.
	lines := bytes.Split(bytes.TrimRight(out.Bytes(), "\n"), []byte("\n"))
	require.Len(t, lines, 2)

	for _, line := range lines {
		row := map[string]interface{}{}
		require.NoError(t, json.Unmarshal(line, &row))
		assert.Contains(t, row, "Pid")
	}
}

func TestOutputRecordsToJSONEmpty(t *testing.T) {
	out := &bytes.Buffer{}
	err := OutputRecordsToJSON(nil, out)
	require.NoError(t, err)

	assert.Equal(t, "[]\n", out.String())
}
