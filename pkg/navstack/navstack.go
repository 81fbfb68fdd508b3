// Package navstack reconciles a declarative navigation route against the
// realized stack of navigation frames.
//
// The route and router subpackages hold the diffing algorithm and the
// serialized executor. This package handles process-wide setup: logging,
// file configuration, and the error types shared by every subpackage.
package navstack

import (
	"io"
	"log/slog"

	"github.com/BrandonKowalski/navstack/pkg/navstack/constants"
	"github.com/BrandonKowalski/navstack/pkg/navstack/internal"
)

// Options configures process-wide navstack setup.
type Options struct {
	LogPath  string    // Full path for log file including filename (creates parent directories)
	LogLevel string    // Level for the application logger ("debug", "info", "warn", "error")
	Output   io.Writer // Replaces stderr as the log destination when set
}

// Init configures logging. Must be called before the first logger is
// requested to take effect. Setting NAVSTACK_ENVIRONMENT=DEV raises the
// internal router logger to debug.
func Init(options Options) {
	if options.Output != nil {
		internal.SetOutput(options.Output)
	}
	if options.LogPath != "" {
		internal.SetLogPath(options.LogPath)
	}

	if constants.IsDevMode() {
		internal.SetInternalLogLevel(slog.LevelDebug)
	} else {
		internal.SetInternalLogLevel(slog.LevelWarn)
	}

	if options.LogLevel != "" {
		internal.SetRawLogLevel(options.LogLevel)
	}
}

// InitFromConfig calls Init with the logging settings of cfg.
func InitFromConfig(cfg Config) {
	Init(Options{LogPath: cfg.LogPath, LogLevel: cfg.LogLevel})
}

// Close flushes and closes the log file, if one was opened.
func Close() {
	internal.CloseLogger()
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRouterLogLevel sets the minimum log level for the router's internal logger.
func SetRouterLogLevel(level slog.Level) {
	internal.SetInternalLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}
