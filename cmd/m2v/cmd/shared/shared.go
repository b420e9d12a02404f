// Package shared holds the state every m2v subcommand builds before it runs:
// configuration, logger, metrics and progress output.
package shared

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"memo2vec/internal/app/logging"
	"memo2vec/internal/app/metrics"
	"memo2vec/internal/app/progress"
	"memo2vec/internal/config"
)

// GlobalFlags are bound to the root command's persistent flags.
type GlobalFlags struct {
	ConfigFile  string
	Verbose     bool
	MetricsFile string
	Progress    bool
}

var Global GlobalFlags

var (
	apiKeys *config.APIKeys
	envFile string
)

// SetAPIKeys records the keys loaded from the environment at startup.
func SetAPIKeys(keys *config.APIKeys, envPath string) {
	apiKeys = keys
	envFile = envPath
}

// Runtime is what a subcommand needs to run.
type Runtime struct {
	Config   *config.Config
	Logger   *zap.Logger
	Metrics  *metrics.Recorder
	Progress *progress.Manager
}

// Setup loads the configuration (defaults, then --config, then environment),
// lets apply copy the subcommand's flags over it, validates the result and
// builds the logger, metrics and progress output.
func Setup(command string, apply func(cfg *config.Config)) (*Runtime, error) {
	cfg, err := config.Load(Global.ConfigFile, apiKeys)
	if err != nil {
		return nil, err
	}
	if Global.Verbose {
		cfg.Verbose = true
	}
	if Global.MetricsFile != "" {
		cfg.MetricsFile = Global.MetricsFile
	}
	if Global.Progress {
		cfg.Progress = true
	}
	if apply != nil {
		apply(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.NewLogger(cfg.Verbose)
	if err != nil {
		return nil, err
	}
	logger = logging.WithRun(logger, command)
	if envFile != "" {
		logger.Debug("Loaded environment file", zap.String("path", envFile))
	}
	if apiKeys != nil {
		logger.Debug("API keys available", zap.Strings("services", apiKeys.Available()))
	}

	return &Runtime{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics.New(),
		Progress: progress.NewManager(progress.Config{
			Enabled: progress.ShouldShowProgress(cfg.Progress),
		}),
	}, nil
}

// Close flushes progress output, writes the metrics file and syncs the
// logger.
func (r *Runtime) Close() {
	r.Progress.Wait()
	if err := r.Metrics.WriteFile(r.Config.MetricsFile); err != nil {
		r.Logger.Warn("Failed to write metrics file", zap.String("path", r.Config.MetricsFile), zap.Error(err))
	}
	_ = r.Logger.Sync()
}

// Context returns a context canceled on SIGINT or SIGTERM.
func Context() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// StringFlag copies a string flag into dst when it was set on the command line.
func StringFlag(cmd *cobra.Command, name string, value string, dst *string) {
	if cmd.Flags().Changed(name) {
		*dst = value
	}
}

// IntFlag copies an int flag into dst when it was set on the command line.
func IntFlag(cmd *cobra.Command, name string, value int, dst *int) {
	if cmd.Flags().Changed(name) {
		*dst = value
	}
}
