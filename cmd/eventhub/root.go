package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"eventhub"
	"eventhub/internal/actions"
	"eventhub/internal/config"
	"eventhub/internal/logging"
)

// app holds the persistent flags and the process environment
type app struct {
	configPath string
	logLevel   string
	production bool

	stdout io.Writer
	stderr io.Writer
	getenv func(string) string
}

func newApp() *app {
	return &app{
		configPath: config.DefaultFileName,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		getenv:     os.Getenv,
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "eventhub",
		Short:         "Synchronous event hub with an interactive console and an HTTP bridge",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runConsole(cmd.Context())
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", a.configPath, "config file (.toml, .yaml or .json)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug|info|warn|error|off (env "+config.EnvLogLevel+")")
	flags.BoolVar(&a.production, "production", false, "skip listener validation")

	root.AddCommand(
		newConsoleCmd(a),
		newServeCmd(a),
		newEmitCmd(a),
		newInitCmd(a),
	)
	return root
}

// loadConfig reads the config file, then applies the environment and flags
// in that order. The boolean reports whether the file existed.
func (a *app) loadConfig() (*config.Config, bool, error) {
	cfg, found, err := config.LoadOrDefault(a.configPath)
	if err != nil {
		return nil, false, err
	}
	cfg.ApplyEnv(a.getenv)
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.production {
		cfg.ProductionMode = true
	}
	return cfg, found, nil
}

// hubOptions leaves the build-tag default alone unless production mode was
// asked for explicitly
func hubOptions(cfg *config.Config) []eventhub.Option {
	if cfg.ProductionMode {
		return []eventhub.Option{eventhub.WithProductionMode(true)}
	}
	return nil
}

// buildHub creates a hub pre-populated from the configured listeners
func buildHub(cfg *config.Config, catalog *actions.Catalog) (*eventhub.Hub, error) {
	listeners, err := catalog.Build(cfg.Listeners)
	if err != nil {
		return nil, fmt.Errorf("failed to build listeners: %w", err)
	}
	return eventhub.New(append(hubOptions(cfg), eventhub.WithListeners(listeners))...), nil
}

func (a *app) stderrLogger(cfg *config.Config) (zerolog.Logger, io.Closer, error) {
	return logging.New(logging.Options{Level: cfg.LogLevel, Writer: a.stderr, Console: true})
}
