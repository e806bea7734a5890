// Package logging wraps charmbracelet/log for the CLI and the HTTP service.
package logging

import (
	"io"
	stdlog "log"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // process-wide default
var defaultLogger atomic.Pointer[log.Logger]

// New returns a stderr logger at level ("debug", "info", "warn" or
// "error"; anything else means info).
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter is New writing to w.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{})
	logger.SetLevel(parseLevel(level))
	return logger
}

// NewInteractive logs user-facing messages to stdout without level
// prefixes, so they read as plain output.
func NewInteractive() *log.Logger {
	styles := log.DefaultStyles()
	for level, style := range styles.Levels {
		styles.Levels[level] = style.SetString("")
	}

	logger := log.NewWithOptions(os.Stdout, log.Options{})
	logger.SetStyles(styles)
	return logger
}

// NewServer is the timestamped logger of the HTTP service.
func NewServer(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{ReportTimestamp: true, Prefix: "gobbcode"})
	logger.SetLevel(parseLevel(level))
	return logger
}

// Slog adapts logger for libraries that take a *slog.Logger.
func Slog(logger *log.Logger) *slog.Logger {
	return slog.New(logger)
}

// StdLog adapts logger for http.Server.ErrorLog; every line logs at error.
func StdLog(logger *log.Logger) *stdlog.Logger {
	return logger.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel})
}

func parseLevel(level string) log.Level {
	if strings.EqualFold(level, "warning") {
		return log.WarnLevel
	}
	parsed, err := log.ParseLevel(strings.ToLower(level))
	if err != nil || parsed > log.ErrorLevel {
		return log.InfoLevel
	}
	return parsed
}

// Default returns the process-wide logger, an info-level stderr logger
// until SetDefault replaces it.
func Default() *log.Logger {
	if logger := defaultLogger.Load(); logger != nil {
		return logger
	}
	defaultLogger.CompareAndSwap(nil, New("info"))
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) {
	defaultLogger.Store(logger)
}

// SetLevel changes the level of the default logger.
func SetLevel(level string) {
	Default().SetLevel(parseLevel(level))
}
