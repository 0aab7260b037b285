// Package logging wraps charmbracelet/log with the process-wide logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

var Logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "Teleflix"})

// Init configures the shared logger. Unknown levels fall back to info.
func Init(w io.Writer, level string) {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = log.InfoLevel
	}
	Logger = log.NewWithOptions(w, log.Options{
		Prefix:          "Teleflix",
		ReportTimestamp: true,
		ReportCaller:    lvl == log.DebugLevel,
		TimeFormat:      "15:04:05",
		Level:           lvl,
	})
	if err != nil && level != "" {
		Logger.Warn("unknown log level, using info", "level", level)
	}
}

// Debug logs a debug message
func Debug(msg interface{}, keyvals ...interface{}) {
	Logger.Debug(fmt.Sprintf("%v", msg), keyvals...)
}

// Info logs an info message
func Info(msg interface{}, keyvals ...interface{}) {
	Logger.Info(fmt.Sprintf("%v", msg), keyvals...)
}

// Warn logs a warning message
func Warn(msg interface{}, keyvals ...interface{}) {
	Logger.Warn(fmt.Sprintf("%v", msg), keyvals...)
}

// Error logs an error message
func Error(msg interface{}, keyvals ...interface{}) {
	Logger.Error(fmt.Sprintf("%v", msg), keyvals...)
}
