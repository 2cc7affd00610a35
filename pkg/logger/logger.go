package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	formatter "github.com/antonfisher/nested-logrus-formatter"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Leveled logging shared by every package in the service.
// - provides Debug/Info/Warn/Error/Fatal variants and Init(level)
// - structured fields for request-scoped context
// - optional rotating file output next to stderr

// Fields tags a log line with structured context.
type Fields = logrus.Fields

var (
	mu  sync.Mutex
	std = newLogger()
)

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&formatter.Formatter{
		TimestampFormat: "02 Jan 06 - 15:04:05",
		HideKeys:        false,
		NoColors:        true,
	})
	l.SetOutput(os.Stderr)
	return l
}

// Init sets the global log level (case-insensitive: debug, info, warn, error,
// fatal). When LOG_FILE is set, output is mirrored into a size-capped
// rotating file. Call early during startup. Default level is Info.
func Init(l string) {
	mu.Lock()
	defer mu.Unlock()

	std.SetLevel(parseLevel(l))

	writers := []io.Writer{os.Stderr}
	if file := strings.TrimSpace(os.Getenv("LOG_FILE")); file != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   file,
			MaxSize:    100,
			MaxAge:     7,
			MaxBackups: 3,
			LocalTime:  true,
			Compress:   true,
		})
	}
	std.SetOutput(io.MultiWriter(writers...))
}

func parseLevel(l string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}

func Debugf(format string, v ...interface{}) {
	std.Debugf(format, v...)
}

func Infof(format string, v ...interface{}) {
	std.Infof(format, v...)
}

func Warnf(format string, v ...interface{}) {
	std.Warnf(format, v...)
}

func Errorf(format string, v ...interface{}) {
	std.Errorf(format, v...)
}

func Fatalf(format string, v ...interface{}) {
	std.Fatalf(format, v...)
}

// Println kept for brief messages (maps to Info)
func Println(v ...interface{}) {
	std.Infoln(v...)
}

// Debug/Info/Warn/Error helpers that accept a single string
func Debug(v string) { std.Debug(v) }
func Info(v string)  { std.Info(v) }
func Warn(v string)  { std.Warn(v) }
func Error(v string) { std.Error(v) }

// WithFields returns an entry carrying structured context.
func WithFields(fields Fields) *logrus.Entry {
	return std.WithFields(fields)
}

// ErrorWithTraceID logs at error level and returns the trace id the entry was
// tagged with. The request id is reused when the fields carry one, otherwise
// a fresh id is generated so the log line can still be found later.
func ErrorWithTraceID(fields Fields, msg string) string {
	if fields == nil {
		fields = Fields{}
	}

	traceID, _ := fields["request_id"].(string)
	if traceID == "" {
		id, err := uuid.NewRandom()
		if err != nil {
			traceID = "unknown"
		} else {
			traceID = id.String()
		}
	}

	fields["trace_id"] = traceID
	std.WithFields(fields).Error(msg)
	return traceID
}

// LevelString returns the current level as text.
func LevelString() string {
	switch std.GetLevel() {
	case logrus.DebugLevel:
		return "debug"
	case logrus.WarnLevel:
		return "warn"
	case logrus.ErrorLevel:
		return "error"
	case logrus.FatalLevel:
		return "fatal"
	default:
		return "info"
	}
}
