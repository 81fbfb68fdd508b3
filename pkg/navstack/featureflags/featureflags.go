// Package featureflags resolves opt-in router behaviors from config and
// environment.
package featureflags

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BrandonKowalski/navstack/pkg/navstack/constants"
)

// Stage indicates the lifecycle of a feature flag.
type Stage string

const (
	StageExperimental Stage = "experimental"
	StageBeta         Stage = "beta"
	StageGA           Stage = "ga"
)

// Name is the canonical identifier for a feature flag (kebab-case).
type Name string

const (
	// FeatureDeferredCommit records the last navigation state only after its
	// routing actions have completed, and reconciles on the router's worker.
	FeatureDeferredCommit Name = "deferred-commit"
)

// Definition tracks the metadata for a feature flag.
type Definition struct {
	Name        Name
	Description string
	Stage       Stage
	Default     bool
}

var registry = map[Name]Definition{
	FeatureDeferredCommit: {
		Name:        FeatureDeferredCommit,
		Description: "Commit the last navigation state after its batch completes instead of when it is scheduled.",
		Stage:       StageExperimental,
		Default:     false,
	},
}

// ErrUnknownFeature is returned when a caller references a flag that has not been registered.
var ErrUnknownFeature = errors.New("unknown feature flag")

// DefinitionByName returns the definition for the provided feature.
func DefinitionByName(name Name) (Definition, bool) {
	def, ok := registry[name]
	return def, ok
}

// Definitions returns the full set of registered flags in alphabetical order.
func Definitions() []Definition {
	defs := make([]Definition, 0, len(registry))
	for _, def := range registry {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].Name < defs[j].Name
	})
	return defs
}

// Flags is a resolved set of feature flags.
type Flags struct {
	values map[Name]bool
}

// Enabled reports whether the provided feature is on.
func (f Flags) Enabled(name Name) bool {
	return f.values[name]
}

// EnvVar returns the environment variable that toggles the flag (e.g. NAVSTACK_FEATURE_DEFERRED_COMMIT).
func (d Definition) EnvVar() string {
	upper := strings.ToUpper(string(d.Name))
	return constants.FeatureEnvPrefix + strings.ReplaceAll(upper, "-", "_")
}

// Resolve combines defaults plus explicit sources (config, flags, env) into a Flags set.
// Tokens may be comma separated.
func Resolve(sources ...[]string) (Flags, error) {
	values := make(map[Name]bool, len(registry))
	for _, def := range registry {
		if def.Default {
			values[def.Name] = true
		}
	}
	for _, source := range sources {
		for _, value := range source {
			for _, token := range strings.Split(value, ",") {
				token = strings.TrimSpace(token)
				if token == "" {
					continue
				}
				name := normalizeName(token)
				if _, ok := registry[name]; !ok {
					return Flags{}, fmt.Errorf("%w: %s", ErrUnknownFeature, token)
				}
				values[name] = true
			}
		}
	}
	return Flags{values: values}, nil
}

// EnabledFromEnv scans the environment (or the provided list) for truthy
// NAVSTACK_FEATURE_* variables and returns their flag names.
func EnabledFromEnv(environ []string) []string {
	if environ == nil {
		environ = os.Environ()
	}
	var enabled []string
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(key, constants.FeatureEnvPrefix) {
			continue
		}
		if !isTruthy(value) {
			continue
		}
		enabled = append(enabled, string(normalizeName(strings.TrimPrefix(key, constants.FeatureEnvPrefix))))
	}
	return enabled
}

func normalizeName(raw string) Name {
	raw = strings.ToLower(strings.TrimSpace(raw))
	return Name(strings.ReplaceAll(raw, "_", "-"))
}

func isTruthy(val string) bool {
	switch strings.TrimSpace(strings.ToLower(val)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}
