// Package util provides low-level helpers shared by all other packages.
package util

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// LogLevel controls output verbosity.
type LogLevel int

const (
	LogQuiet   LogLevel = 0
	LogNormal  LogLevel = 1
	LogVerbose LogLevel = 2
	LogDebug   LogLevel = 3
)

// timestampFormat matches the short wall-clock prefix used in debug mode.
const timestampFormat = "15:04:05.000"

// Logger writes levelled messages to stderr with optional timestamps
// and level prefixes.  Rendering is delegated to a zerolog console
// writer; the API stays printf-style so call sites read like plain
// progress messages.
type Logger struct {
	level      LogLevel
	output     io.Writer
	timestamps bool // if true, prepend wall-clock timestamps
	tag        string
	zl         zerolog.Logger
}

// Filtering is per Logger; open the global gate down to trace.
func init() {
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
}

// NewLogger returns a Logger that prints messages at or below the given
// verbosity (0 = quiet, 1 = normal, 2 = verbose, 3 = debug).
func NewLogger(verbosity int) *Logger {
	l := &Logger{
		level:      LogLevel(verbosity),
		output:     os.Stderr,
		timestamps: verbosity >= 3, // auto-enable timestamps in debug mode
	}
	l.rebuild()
	return l
}

// SetTimestamps enables or disables timestamp prefixes.
func (l *Logger) SetTimestamps(on bool) {
	l.timestamps = on
	l.rebuild()
}

// SetOutput overrides the output writer (default: os.Stderr).
func (l *Logger) SetOutput(w io.Writer) {
	l.output = w
	l.rebuild()
}

// Level returns the current log level.
func (l *Logger) Level() LogLevel { return l.level }

// With returns a child logger whose lines carry tag=<component>.  The
// child shares the parent's writer and verbosity.
func (l *Logger) With(tag string) *Logger {
	child := *l
	child.tag = tag
	child.zl = l.zl.With().Str("tag", tag).Logger()
	return &child
}

// Info prints when verbosity ≥ 1.  Prefixed with [INF].
func (l *Logger) Info(format string, args ...interface{}) {
	l.write(l.zl.Info(), format, args...)
}

// Warn prints when verbosity ≥ 1.  Prefixed with [WRN].
func (l *Logger) Warn(format string, args ...interface{}) {
	l.write(l.zl.Warn(), format, args...)
}

// Verbose prints when verbosity ≥ 2.  Prefixed with [VRB].
func (l *Logger) Verbose(format string, args ...interface{}) {
	l.write(l.zl.Debug(), format, args...)
}

// Debug prints when verbosity ≥ 3.  Prefixed with [DBG].
func (l *Logger) Debug(format string, args ...interface{}) {
	l.write(l.zl.Trace(), format, args...)
}

// Error always prints regardless of verbosity.  Prefixed with [ERR].
func (l *Logger) Error(format string, args ...interface{}) {
	l.write(l.zl.Error(), format, args...)
}

func (l *Logger) write(ev *zerolog.Event, format string, args ...interface{}) {
	if ev == nil {
		return
	}
	if l.timestamps {
		ev = ev.Str(zerolog.TimestampFieldName, time.Now().Format(timestampFormat))
	}
	ev.Msg(fmt.Sprintf(format, args...))
}

// rebuild recreates the zerolog pipeline after an output or timestamp
// change.  Writes are serialised so both relay loops can log at once.
func (l *Logger) rebuild() {
	parts := []string{zerolog.LevelFieldName, zerolog.MessageFieldName}
	if l.timestamps {
		parts = append([]string{zerolog.TimestampFieldName}, parts...)
	}

	cw := zerolog.ConsoleWriter{
		Out:             zerolog.SyncWriter(l.output),
		NoColor:         true,
		PartsOrder:      parts,
		FormatLevel:     formatLevel,
		FormatTimestamp: func(i interface{}) string { return fmt.Sprint(i) },
	}

	zl := zerolog.New(cw).Level(zerologLevel(l.level))
	if l.tag != "" {
		zl = zl.With().Str("tag", l.tag).Logger()
	}
	l.zl = zl
}

func zerologLevel(level LogLevel) zerolog.Level {
	switch {
	case level <= LogQuiet:
		return zerolog.ErrorLevel
	case level == LogNormal:
		return zerolog.InfoLevel
	case level == LogVerbose:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// formatLevel maps zerolog level names onto the bracketed tags.
func formatLevel(i interface{}) string {
	switch fmt.Sprint(i) {
	case "error", "fatal", "panic":
		return "[ERR]"
	case "warn":
		return "[WRN]"
	case "info":
		return "[INF]"
	case "debug":
		return "[VRB]"
	default:
		return "[DBG]"
	}
}
