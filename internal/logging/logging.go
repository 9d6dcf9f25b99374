// Package logging is a small leveled logger over the standard log package.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Level orders log severities.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

// String returns the upper-case level name.
func (l Level) String() string {
	if n, ok := levelNames[l]; ok {
		return n
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// ParseLevel maps debug, info, warn/warning and error to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Logger writes lines at or above its level.
type Logger struct {
	level  Level
	logger *log.Logger
}

// New returns a Logger writing to w.
func New(w io.Writer, level Level) *Logger {
	return &Logger{
		level:  level,
		logger: log.New(w, "", log.LstdFlags|log.Lmicroseconds),
	}
}

// Stderr returns a Logger on os.Stderr.
func Stderr(level Level) *Logger { return New(os.Stderr, level) }

// Discard returns a Logger that drops everything.
func Discard() *Logger { return New(io.Discard, LevelError+1) }

// Enabled reports whether lines at level would be written.
func (l *Logger) Enabled(level Level) bool { return l != nil && level >= l.level }

func (l *Logger) output(level Level, msg string) {
	if !l.Enabled(level) {
		return
	}
	_ = l.logger.Output(3, level.String()+": "+msg)
}

// Debugf logs a debug line.
func (l *Logger) Debugf(format string, args ...any) { l.output(LevelDebug, fmt.Sprintf(format, args...)) }

// Infof logs an info line.
func (l *Logger) Infof(format string, args ...any) { l.output(LevelInfo, fmt.Sprintf(format, args...)) }

// Warnf logs a warning.
func (l *Logger) Warnf(format string, args ...any) { l.output(LevelWarn, fmt.Sprintf(format, args...)) }

// Errorf logs an error line.
func (l *Logger) Errorf(format string, args ...any) { l.output(LevelError, fmt.Sprintf(format, args...)) }
