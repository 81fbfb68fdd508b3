// main.go bootstraps navplan: it builds the root Cobra command, binds flags to viper and executes with a signal-aware context.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/BrandonKowalski/navstack/pkg/navstack"
	"github.com/BrandonKowalski/navstack/pkg/navstack/constants"
	"github.com/BrandonKowalski/navstack/pkg/navstack/featureflags"
	"github.com/BrandonKowalski/navstack/pkg/navstack/router"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rootCmd := newRootCommand()
	err := rootCmd.ExecuteContext(ctx)
	navstack.Close()
	handleError(err)
	if err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	logLevel   string
	configPath string
	timeout    time.Duration
	features   []string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{
		logLevel:   "warn",
		configPath: os.Getenv(constants.ConfigPathEnvVar),
	}
	cmd := &cobra.Command{
		Use:           "navplan",
		Short:         "Plan and replay navigation route transitions",
		Long:          "navplan prints the push, pop and change actions between two routes and drives scripted navigation sessions through a router.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := parseLogLevel(opts.logLevel)
			if err != nil {
				return err
			}
			navstack.Init(navstack.Options{Output: cmd.ErrOrStderr()})
			navstack.SetLogLevel(level)
			navstack.SetRouterLogLevel(level)
			if _, err := featureflags.Resolve(opts.features, featureflags.EnabledFromEnv(nil)); err != nil {
				return err
			}
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", opts.logLevel, "Log level for router output (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", opts.configPath, "Path to a navstack TOML config file")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "How long to wait for each completion handler (overrides config)")
	cmd.PersistentFlags().StringSliceVar(&opts.features, "feature", nil, "Enable experimental router features (repeat or pass comma-separated names)")

	planCmd := newPlanCommand()
	runCmd := newRunCommand(opts)
	recordCmd := newRecordCommand()
	replayCmd := newReplayCommand(opts)
	sessionsCmd := newSessionsCommand()
	cmd.AddCommand(planCmd, runCmd, recordCmd, replayCmd, sessionsCmd)
	cmd.Example = `  # Show what moving from the login screen back to the tab bar does
  navplan plan tabBar/login tabBar

  # Run a scripted flow and keep a recording of it
  navplan run flows/login.yaml --record nav.db

  # Replay the recording with the deferred commit mode
  navplan replay --db nav.db --session <id> --feature deferred-commit`
	bindViper(cmd, planCmd, runCmd, recordCmd, replayCmd, sessionsCmd)
	return cmd
}

// routerOptions merges the navstack config file, environment and command
// line into router options.
func (o *rootOptions) routerOptions(cmd *cobra.Command) (router.Options, error) {
	cfg, err := navstack.LoadConfig(o.configPath)
	if err != nil {
		return router.Options{}, err
	}
	if o.timeout > 0 {
		cfg.StuckTimeout = navstack.Duration{Duration: o.timeout}
	}
	cfg.Features = append(cfg.Features, o.features...)
	opts, err := router.OptionsFromConfig(cfg)
	if err != nil {
		return router.Options{}, err
	}
	warn := color.New(color.FgYellow)
	opts.OnStuck = func() {
		warn.Fprintln(cmd.ErrOrStderr(), localize(msgStuckWarning, map[string]any{"Timeout": cfg.StuckTimeout.Duration.String()}))
	}
	return opts, nil
}

func bindViper(commands ...*cobra.Command) {
	if len(commands) == 0 {
		return
	}
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix("NAVPLAN")
	v.AutomaticEnv()
	configFile := os.Getenv("NAVPLAN_CONFIG_FILE")
	configureConfigFile(v, configFile)

	cobra.OnInitialize(func() {
		for _, cmd := range commands {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				cobra.CheckErr(err)
			}
			if err := v.BindPFlags(cmd.PersistentFlags()); err != nil {
				cobra.CheckErr(err)
			}
		}
		if err := readConfigFile(v, configFile != ""); err != nil {
			cobra.CheckErr(err)
		}
		for _, cmd := range commands {
			flagSets := []*pflag.FlagSet{cmd.Flags(), cmd.PersistentFlags()}
			for _, fs := range flagSets {
				fs.VisitAll(func(f *pflag.Flag) {
					if f.Changed {
						return
					}
					if !v.IsSet(f.Name) {
						return
					}
					val := fmt.Sprintf("%v", v.Get(f.Name))
					if val != "" {
						_ = f.Value.Set(val)
					}
				})
			}
		}
	})
}

func configureConfigFile(v *viper.Viper, explicitPath string) {
	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
		return
	}
	v.SetConfigName("config")
	for _, dir := range configSearchDirs() {
		v.AddConfigPath(dir)
	}
}

func readConfigFile(v *viper.Viper, strict bool) error {
	if err := v.ReadInConfig(); err != nil {
		var cfgErr viper.ConfigFileNotFoundError
		if errors.As(err, &cfgErr) && !strict {
			return nil
		}
		return err
	}
	return nil
}

func configSearchDirs() []string {
	added := make(map[string]struct{})
	var dirs []string
	add := func(path string) {
		if path == "" {
			return
		}
		if _, ok := added[path]; ok {
			return
		}
		added[path] = struct{}{}
		dirs = append(dirs, path)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		add(filepath.Join(xdg, "navplan"))
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		add(filepath.Join(home, ".config", "navplan"))
		add(filepath.Join(home, ".navplan"))
	}
	return dirs
}

func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q (expected debug, info, warn, or error)", level)
	}
}

func handleError(err error) {
	if err == nil || errors.Is(err, pflag.ErrHelp) {
		return
	}
	message := err.Error()
	switch {
	case errors.Is(err, featureflags.ErrUnknownFeature):
		names := make([]string, 0)
		for _, def := range featureflags.Definitions() {
			names = append(names, string(def.Name))
		}
		message = fmt.Sprintf("%s\nHint: known features are %s.", err, strings.Join(names, ", "))
	case errors.Is(err, navstack.ErrEmptySegment):
		message = fmt.Sprintf("%s\nHint: routes are written as segment/segment with no empty parts.", err)
	case errors.Is(err, context.DeadlineExceeded):
		message = fmt.Sprintf("%s\nHint: a routable never completed; raise --timeout or check the frame's completion handler.", err)
	case navstack.IsDecodeError(err):
		message = fmt.Sprintf("%s\nHint: the recording may come from an incompatible navplan version.", err)
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
}
