package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/chronos-health-scores/internal/config"
	"github.com/chronos-health-scores/internal/logging"
	"github.com/chronos-health-scores/internal/service"
)

var version = "dev"

// app holds what the subcommands share once the configuration is loaded.
type app struct {
	configPath string
	logLevel   string

	manager *config.Manager
	logger  *logrus.Logger
	closer  io.Closer
	service *service.ScoringService
}

func (a *app) newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "healthscore",
		Short: "Healthscore - biomarker based health score calculators",
		Long: `Healthscore computes health scores from biomarker panels and body measurements.

It estimates biological age, 10-year cardiovascular risk, a metabolic health
score and a body composition analysis. Inputs are JSON or YAML documents; any
field left out keeps its default value.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a healthscore.yaml configuration file")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Override the configured log level (trace, debug, info, warn, error)")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return a.setup()
	}

	// Add subcommands
	cmd.AddCommand(newBioAgeCommand(a))
	cmd.AddCommand(newCardioCommand(a))
	cmd.AddCommand(newMetabolicCommand(a))
	cmd.AddCommand(newBodyCompCommand(a))
	cmd.AddCommand(newBatchCommand(a))
	cmd.AddCommand(newRangesCommand())

	return cmd
}

// setup loads the configuration and builds the logger and scoring service.
func (a *app) setup() error {
	var opts []config.Option
	if a.configPath != "" {
		opts = append(opts, config.WithConfigFile(a.configPath))
	}

	manager, err := config.NewManager(opts...)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		manager.SetLogLevel(a.logLevel)
	}
	if err := manager.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	cfg := manager.GetConfig()
	logger, closer, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}

	svc, err := service.NewScoringService(logger, cfg)
	if err != nil {
		closer.Close()
		return fmt.Errorf("failed to create scoring service: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"environment": cfg.Environment,
		"config_file": manager.ConfigFileUsed(),
		"cache":       cfg.Cache.Enabled,
	}).Debug("Configuration loaded")

	a.manager = manager
	a.logger = logger
	a.closer = closer
	a.service = svc
	return nil
}

func (a *app) close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}

// run executes cmd and then releases what setup opened. Cobra skips the
// post-run hooks when a command fails, so the log file is closed here.
func (a *app) run(ctx context.Context, cmd *cobra.Command) (err error) {
	defer func() {
		err = errors.Join(err, a.close())
	}()
	return cmd.ExecuteContext(ctx)
}

func execute(ctx context.Context) error {
	a := &app{}
	return a.run(ctx, a.newRootCommand())
}
