// Package internal contains logging infrastructure shared by the navstack
// packages. Types and functions in this package are not part of the public API.
package internal

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	logFile *os.File
	logPath string
	output  io.Writer

	setupOnce sync.Once

	loggerOnce sync.Once
	logger     *slog.Logger
	levelVar   = &slog.LevelVar{}

	internalLoggerOnce sync.Once
	internalLogger     *slog.Logger
	internalLevelVar   = &slog.LevelVar{}
)

// SetLogPath sets the full path for the log file, including filename.
// Creates all necessary parent directories. Must be called before the first
// logger is requested.
func SetLogPath(path string) {
	logPath = path
}

// SetOutput replaces the destination of both loggers. Must be called before
// the first logger is requested.
func SetOutput(w io.Writer) {
	output = w
}

func setup() {
	setupOnce.Do(func() {
		if output != nil {
			return
		}
		output = os.Stderr
		if logPath == "" {
			return
		}

		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			return
		}

		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			// Can't open log file, console only
			return
		}
		logFile = f
		output = io.MultiWriter(os.Stderr, logFile)
	})
}

// GetLogger returns the application logger.
func GetLogger() *slog.Logger {
	loggerOnce.Do(func() {
		setup()
		logger = slog.New(slog.NewJSONHandler(output, &slog.HandlerOptions{Level: levelVar}))
	})
	return logger
}

// GetInternalLogger returns the logger used by the router and executor.
func GetInternalLogger() *slog.Logger {
	internalLoggerOnce.Do(func() {
		setup()
		internalLogger = slog.New(slog.NewJSONHandler(output, &slog.HandlerOptions{Level: internalLevelVar})).
			With("component", "navstack")
	})
	return internalLogger
}

func SetLogLevel(level slog.Level) {
	levelVar.Set(level)
}

func SetInternalLogLevel(level slog.Level) {
	internalLevelVar.Set(level)
}

// ParseLevel maps a raw level name to a slog level. Unknown names map to info.
func ParseLevel(rawLevel string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(rawLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func SetRawLogLevel(rawLevel string) {
	SetLogLevel(ParseLevel(rawLevel))
}

func CloseLogger() {
	if logFile != nil {
		logFile.Close()
	}
}
