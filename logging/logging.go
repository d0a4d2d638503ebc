// Package logging writes structured diagnostics to a log file.
//
// The terminal belongs to the UI while repolens runs, so nothing here ever
// writes to stdout or stderr. Logging is off until Init is called with a
// non-empty path.
package logging

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	logger     *log.Logger
	loggerOnce sync.Once
	logEnabled bool
)

// ParseLevel maps a level name to a log level. Unknown names map to info.
func ParseLevel(s string) log.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// Init opens logPath for appending and routes all logging there.
// Only the first call has an effect. An empty path leaves logging disabled.
func Init(logPath string, level log.Level) error {
	var initErr error
	loggerOnce.Do(func() {
		if logPath == "" {
			logEnabled = false
			return
		}

		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			initErr = err
			return
		}

		logger = log.NewWithOptions(f, log.Options{
			Level:           level,
			Prefix:          "repolens",
			ReportTimestamp: true,
		})
		logEnabled = true
	})
	return initErr
}

// SetLogger replaces the logger. Passing nil disables logging.
func SetLogger(l *log.Logger) {
	logger = l
	logEnabled = l != nil
}

// Enabled reports whether log output goes anywhere.
func Enabled() bool {
	return logEnabled && logger != nil
}

// Debug logs at debug level.
func Debug(msg string, keyvals ...any) {
	if Enabled() {
		logger.Debug(msg, keyvals...)
	}
}

// Info logs at info level.
func Info(msg string, keyvals ...any) {
	if Enabled() {
		logger.Info(msg, keyvals...)
	}
}

// Warn logs at warn level.
func Warn(msg string, keyvals ...any) {
	if Enabled() {
		logger.Warn(msg, keyvals...)
	}
}

// Error logs at error level.
func Error(msg string, keyvals ...any) {
	if Enabled() {
		logger.Error(msg, keyvals...)
	}
}

// Op starts timing an operation and returns the function that logs its
// outcome.
//
// Usage:
//
//	done := logging.Op("LoadSnapshot", "path", path)
//	defer func() { done(err) }()
func Op(op string, keyvals ...any) func(error) {
	finish := OpWithResult(op, keyvals...)
	return func(err error) {
		finish(err)
	}
}

// OpWithResult is like Op but accepts result key-values at completion.
//
// Usage:
//
//	done := logging.OpWithResult("TreeFromDir", "root", root)
//	// ... operation ...
//	done(nil, "nodes", count)
func OpWithResult(op string, keyvals ...any) func(error, ...any) {
	if !Enabled() {
		return func(error, ...any) {}
	}

	start := time.Now()
	return func(err error, resultKeyvals ...any) {
		duration := time.Since(start)

		args := make([]any, 0, len(keyvals)+len(resultKeyvals)+6)
		args = append(args, "op", op)
		args = append(args, "duration", duration.String())
		args = append(args, keyvals...)
		args = append(args, resultKeyvals...)

		if err != nil {
			args = append(args, "error", err.Error())
			logger.Error("operation failed", args...)
		} else {
			logger.Info("operation complete", args...)
		}
	}
}

// Truncate shortens s to maxLen bytes for safe logging of user text.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
