package jsonlog

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog"
)

// Level type to represent the severity level for a log entry
type Level int8

const (
	LevelInfo Level = iota
	LevelError
	LevelFatal
	LevelOff
)

// zerolog maps the severity level onto zerolog's levels.
func (l Level) zerolog() zerolog.Level {
	switch l {
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelError:
		return zerolog.ErrorLevel
	case LevelFatal:
		return zerolog.FatalLevel
	default:
		return zerolog.Disabled
	}
}

// ParseLevel converts a level name (case insensitive) into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "INFO", "":
		return LevelInfo, nil
	case "ERROR":
		return LevelError, nil
	case "FATAL":
		return LevelFatal, nil
	case "OFF":
		return LevelOff, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Logger writes levelled JSON log entries through zerolog. Entries below
// the minimum level are dropped by zerolog itself.
type Logger struct {
	zl   zerolog.Logger
	exit func(int)
}

// NewLogger return a new Logger instance which writes log entries at or above
// a minimum severity level to a specific output destination
func NewLogger(out io.Writer, minLevel Level) *Logger {
	return &Logger{
		// Each zerolog event is a single Write call; SyncWriter keeps
		// concurrent entries from interleaving on writers that aren't safe.
		zl: zerolog.New(zerolog.SyncWriter(out)).
			Level(minLevel.zerolog()).
			With().
			Timestamp().
			Logger(),
		exit: os.Exit,
	}
}

// PrintInfo writes message and properties at LevelInfo.
func (l *Logger) PrintInfo(message string, properties map[string]string) {
	l.print(LevelInfo, message, properties)
}

// PrintError writes err and properties at LevelError, with a stack trace.
func (l *Logger) PrintError(err error, properties map[string]string) {
	l.print(LevelError, err.Error(), properties)
}

// PrintFatal writes err and properties at LevelFatal and terminates the
// process.
func (l *Logger) PrintFatal(err error, properties map[string]string) {
	l.print(LevelFatal, err.Error(), properties)
	l.exit(1)
}

func (l *Logger) print(level Level, message string, properties map[string]string) {
	// WithLevel never exits the process, even at FatalLevel.
	e := l.zl.WithLevel(level.zerolog())
	if !e.Enabled() {
		return
	}

	if len(properties) > 0 {
		dict := zerolog.Dict()
		for k, v := range properties {
			dict = dict.Str(k, v)
		}
		e = e.Dict("properties", dict)
	}

	// Include a stack trace for entries at the ERROR and FATAL level
	if level >= LevelError {
		e = e.Str("trace", string(debug.Stack()))
	}

	e.Msg(message)
}

// Write lets the logger stand in as an io.Writer, for example as the
// http.Server error log. Messages are written at LevelError.
func (l *Logger) Write(message []byte) (n int, err error) {
	l.print(LevelError, strings.TrimRight(string(message), "\n"), nil)
	return len(message), nil
}
