package navstack

import (
	"os"
	"strings"
	"time"

	"github.com/BrandonKowalski/navstack/pkg/navstack/constants"
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Duration is a time.Duration that decodes from strings like "3s" in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config holds the file-backed router settings.
//
//	stuck_timeout = "3s"
//	log_level = "info"
//	log_path = "/var/log/app/navstack.log"
//	features = ["deferred-commit"]
type Config struct {
	StuckTimeout Duration `toml:"stuck_timeout"`
	LogLevel     string   `toml:"log_level"`
	LogPath      string   `toml:"log_path"`
	Features     []string `toml:"features"`
}

// DefaultConfig returns a Config with the default stuck timeout and info logging.
func DefaultConfig() Config {
	return Config{
		StuckTimeout: Duration{constants.DefaultStuckTimeout},
		LogLevel:     "info",
	}
}

// LoadConfig reads a TOML config file on top of DefaultConfig and applies
// environment overrides. An empty path only applies the environment.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, errors.Wrapf(err, "load config %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, errors.Errorf("load config %s: unknown key %q", path, undecoded[0].String())
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if cfg.StuckTimeout.Duration <= 0 {
		return Config{}, errors.Errorf("stuck_timeout must be positive, got %s", cfg.StuckTimeout.Duration)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(constants.StuckTimeoutEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrapf(err, "invalid %s", constants.StuckTimeoutEnvVar)
		}
		c.StuckTimeout = Duration{d}
	}
	if v := os.Getenv(constants.LogLevelEnvVar); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(constants.LogPathEnvVar); v != "" {
		c.LogPath = v
	}
	return nil
}
