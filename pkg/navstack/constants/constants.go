// Package constants defines shared constants, environment variable names, and
// default values used throughout navstack.
package constants

import (
	"os"
	"time"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// Environment variables read by navstack.
const (
	EnvironmentEnvVar  = "NAVSTACK_ENVIRONMENT"   // DEV enables debug logging for the internal logger
	LogLevelEnvVar     = "NAVSTACK_LOG_LEVEL"     // debug, info, warn, error
	LogPathEnvVar      = "NAVSTACK_LOG_PATH"      // full path of the log file
	StuckTimeoutEnvVar = "NAVSTACK_STUCK_TIMEOUT" // Go duration, e.g. 3s
	ConfigPathEnvVar   = "NAVSTACK_CONFIG"        // path of a TOML config file
	FeatureEnvPrefix   = "NAVSTACK_FEATURE_"      // prefix for feature flag toggles
)

// IsDevMode returns true if running in development mode (NAVSTACK_ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv(EnvironmentEnvVar) == Development
}

// Default timing constants.
const (
	// DefaultStuckTimeout is how long the worker waits for a routable to call
	// its completion handler before reporting the router as stuck.
	DefaultStuckTimeout = 3 * time.Second

	// DefaultLoopBuffer is the number of pending frame calls a Loop accepts
	// before Dispatch blocks the worker.
	DefaultLoopBuffer = 64
)

// RouteSeparator joins segments in the textual form of a route.
const RouteSeparator = "/"
