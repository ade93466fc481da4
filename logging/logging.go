package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	rotatelogs "github.com/Velocidex/file-rotatelogs"
	"github.com/gookit/color"
	"github.com/pkg/errors"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"

	"www.velocidex.com/golang/pslist/config"
)

var (
	SuppressLogging = false
	NoColor         = false

	GenericComponent = "pslist"
	ToolComponent    = "pslist-cli"

	// The global log manager. InitLogging replaces it, but
	// GetLogger also works before that with default settings so
	// library users do not have to configure anything.
	Manager *LogManager

	mu      sync.Mutex
	prelogs []string

	tag_regex         = regexp.MustCompile(`<([a-zA-Z_]+)>`)
	closing_tag_regex = regexp.MustCompile(`</>`)
)

type LogContext struct {
	*logrus.Logger
}

func (self *LogContext) Debug(format string, v ...interface{}) {
	if self.Logger != nil {
		self.Logger.Debugf(format, v...)
	}
}

func (self *LogContext) Info(format string, v ...interface{}) {
	if self.Logger != nil {
		self.Logger.Infof(format, v...)
	}
}

func (self *LogContext) Warn(format string, v ...interface{}) {
	if self.Logger != nil {
		self.Logger.Warnf(format, v...)
	}
}

func (self *LogContext) Error(format string, v ...interface{}) {
	if self.Logger != nil {
		self.Logger.Errorf(format, v...)
	}
}

type LogManager struct {
	mu       sync.Mutex
	contexts map[*string]*LogContext
}

// GetLogger returns the cached logger for the component, building it
// on first use. A nil config_obj produces a console only logger with
// default settings.
func (self *LogManager) GetLogger(
	config_obj *config.Config, component *string) *LogContext {
	self.mu.Lock()
	defer self.mu.Unlock()

	ctx, pres := self.contexts[component]
	if !pres {
		ctx = self.makeNewComponent(config_obj, component)
		self.contexts[component] = ctx
	}
	return ctx
}

func (self *LogManager) Reset() {
	self.mu.Lock()
	defer self.mu.Unlock()

	self.contexts = make(map[*string]*LogContext)
}

func (self *LogManager) makeNewComponent(
	config_obj *config.Config, component *string) *LogContext {

	logger := logrus.New()
	logger.Out = io.Discard
	logger.Level = logrus.InfoLevel

	stderr_map := lfshook.WriterMap{
		logrus.DebugLevel: os.Stderr,
		logrus.InfoLevel:  os.Stderr,
		logrus.WarnLevel:  os.Stderr,
		logrus.ErrorLevel: os.Stderr,
	}
	logger.Formatter = &Formatter{stderr_map: stderr_map}

	if config_obj != nil && config_obj.Logging != nil {
		level, err := logrus.ParseLevel(config_obj.Logging.Level)
		if err == nil {
			logger.Level = level
		}

		if config_obj.Logging.OutputDirectory != "" {
			base_filename := filepath.Join(
				config_obj.Logging.OutputDirectory,
				*component+".log")

			rotator, err := getRotator(config_obj, base_filename)
			if err != nil {
				Prelog("Unable to file log %v: %v",
					*component, err)
			} else {
				logger.Hooks.Add(lfshook.NewHook(
					lfshook.WriterMap{
						logrus.DebugLevel: rotator,
						logrus.InfoLevel:  rotator,
						logrus.WarnLevel:  rotator,
						logrus.ErrorLevel: rotator,
					}, &logrus.JSONFormatter{}))
			}
		}
	}

	return &LogContext{Logger: logger}
}

// Log files are rotated and expired based on the config.
func getRotator(config_obj *config.Config,
	base_path string) (io.Writer, error) {

	max_age := config_obj.Logging.MaxAge
	if max_age == 0 {
		max_age = 86400 * 30 // 30 days.
	}

	rotation := config_obj.Logging.RotationTime
	if rotation == 0 {
		rotation = 86400 * 7 // 7 days.
	}

	result, err := rotatelogs.New(
		base_path+".%Y%m%d%H%M",
		rotatelogs.WithLinkName(base_path),
		rotatelogs.WithMaxAge(time.Duration(max_age)*time.Second),
		rotatelogs.WithRotationTime(time.Duration(rotation)*time.Second),
	)
	if err != nil {
		return nil, errors.Wrap(err, "creating log rotator")
	}

	return result, nil
}

func GetLogger(config_obj *config.Config, component *string) *LogContext {
	mu.Lock()
	if Manager == nil {
		Manager = &LogManager{
			contexts: make(map[*string]*LogContext),
		}
	}
	manager := Manager
	mu.Unlock()

	return manager.GetLogger(config_obj, component)
}

func InitLogging(config_obj *config.Config) error {
	mu.Lock()
	Manager = &LogManager{
		contexts: make(map[*string]*LogContext),
	}
	mu.Unlock()

	if config_obj.Logging != nil &&
		config_obj.Logging.OutputDirectory != "" {
		err := os.MkdirAll(config_obj.Logging.OutputDirectory, 0700)
		if err != nil {
			return errors.Wrap(err, "creating log directory")
		}
	}

	FlushPrelogs(config_obj)

	return nil
}

// Prelog queues a message logged before the logging system is
// configured. InitLogging replays the queue into the generic
// component.
func Prelog(format string, v ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	prelogs = append(prelogs, fmt.Sprintf(format, v...))
}

func FlushPrelogs(config_obj *config.Config) {
	logger := GetLogger(config_obj, &GenericComponent)

	mu.Lock()
	queued := prelogs
	prelogs = nil
	mu.Unlock()

	for _, line := range queued {
		logger.Info("%s", line)
	}
}

type Formatter struct {
	stderr_map lfshook.WriterMap
}

func (self *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	if SuppressLogging {
		return nil, nil
	}

	b := &bytes.Buffer{}

	levelText := strings.ToUpper(entry.Level.String())
	fmt.Fprintf(b, "[%s] %v %s ", levelText,
		entry.Time.Format(time.RFC3339),
		strings.TrimRight(entry.Message, "\r\n"))

	if len(entry.Data) > 0 {
		serialized, _ := json.Marshal(entry.Data)
		fmt.Fprintf(b, "%s", serialized)
	}

	// Only print to the console if there is an stderr map for this
	// level.
	writer, pres := self.stderr_map[entry.Level]
	if pres {
		if NoColor {
			fmt.Fprintln(writer, clearTag(b.String()))
		} else {
			color.Fprintln(writer, normalize(b.String()))
		}
	}

	return nil, nil
}

// Color markup needs balanced opening and closing tags or the
// terminal state leaks into the next line.
func normalize(line string) string {
	opening_matches := tag_regex.FindAllString(line, -1)
	closing_matches := closing_tag_regex.FindAllString(line, -1)

	if len(opening_matches) > len(closing_matches) {
		for i := 0; i < len(opening_matches)-len(closing_matches); i++ {
			line += "</>"
		}
	} else if len(opening_matches) < len(closing_matches) {
		line = closing_tag_regex.ReplaceAllString(line, "")
	}

	return line
}

func clearTag(line string) string {
	line = tag_regex.ReplaceAllString(line, "")
	return closing_tag_regex.ReplaceAllString(line, "")
}
