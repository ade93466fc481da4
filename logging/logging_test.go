package logging

import (
	"bytes"
	"testing"
	"time"

	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"www.velocidex.com/golang/pslist/config"
)

func TestGetLoggerMemoizes(t *testing.T) {
	config_obj := config.GetDefaultConfig()
	require.NoError(t, InitLogging(config_obj))

	first := GetLogger(config_obj, &GenericComponent)
	second := GetLogger(config_obj, &GenericComponent)
	assert.Same(t, first, second)

	tool := GetLogger(config_obj, &ToolComponent)
	assert.NotSame(t, first, tool)
}

func TestGetLoggerWithNilConfig(t *testing.T) {
	logger := GetLogger(nil, &GenericComponent)
	require.NotNil(t, logger)
	assert.Equal(t, logrus.InfoLevel, logger.Logger.Level)
}

func TestFormatter(t *testing.T) {
	defer func() {
		SuppressLogging = false
		NoColor = false
	}()
	NoColor = true

	out := &bytes.Buffer{}
	formatter := &Formatter{stderr_map: lfshook.WriterMap{
		logrus.InfoLevel: out,
	}}

	entry := &logrus.Entry{
		Level:   logrus.InfoLevel,
		Message: "table has <green>42</> rows",
		Time:    time.Date(2024, 3, 5, 14, 30, 15, 0, time.UTC),
	}

	serialized, err := formatter.Format(entry)
	require.NoError(t, err)
	assert.Nil(t, serialized)

	rendered := out.String()
	assert.Contains(t, rendered, "[INFO]")
	assert.Contains(t, rendered, "table has 42 rows")
	assert.NotContains(t, rendered, "<green>")

	// Levels without a console writer stay silent.
	out.Reset()
	entry.Level = logrus.DebugLevel
	_, err = formatter.Format(entry)
	require.NoError(t, err)
	assert.Empty(t, out.String())

	// Suppression silences the console entirely.
	out.Reset()
	entry.Level = logrus.InfoLevel
	SuppressLogging = true
	_, err = formatter.Format(entry)
	require.NoError(t, err)
	assert.Empty(t, out.String())
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "<red>x</>", normalize("<red>x"))
	assert.Equal(t, "<red>x</>", normalize("<red>x</>"))
	assert.Equal(t, "x", normalize("x</>"))
}

func TestClearTag(t *testing.T) {
	assert.Equal(t, "hello world",
		clearTag("<important>hello</> <green>world</>"))
}

func TestPrelogFlushesOnInit(t *testing.T) {
	defer func() { SuppressLogging = false }()
	SuppressLogging = true

	Prelog("queued before init %v", 1)

	config_obj := config.GetDefaultConfig()
	require.NoError(t, InitLogging(config_obj))

	mu.Lock()
	remaining := len(prelogs)
	mu.Unlock()
	assert.Equal(t, 0, remaining)
}
