package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bmitracker/internal/config"
)

// cli carries state shared by every subcommand of one invocation.
type cli struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	root := &cobra.Command{
		Use:   "bmitracker",
		Short: "Body mass index calculator and weight history tracker",
		Long: `bmitracker computes BMI from metric or imperial measurements, keeps a dated
weight history, exports it, and can ask a text-generation service for short
lifestyle insights.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.initConfig,
	}

	// Global flags
	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default: $HOME/.config/bmitracker/config.yaml)")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "console", "log format (console, json)")
	root.PersistentFlags().String("store", "", "storage driver (memory, sqlite, postgres, redis)")
	root.PersistentFlags().String("dsn", "", "storage location: sqlite path, postgres connection string or redis URL")

	// Bind flags to viper
	_ = c.v.BindPFlag("logging.level", root.PersistentFlags().Lookup("log-level"))
	_ = c.v.BindPFlag("logging.format", root.PersistentFlags().Lookup("log-format"))
	_ = c.v.BindPFlag("store.driver", root.PersistentFlags().Lookup("store"))
	_ = c.v.BindPFlag("store.dsn", root.PersistentFlags().Lookup("dsn"))

	root.AddCommand(c.bmiCmd())
	root.AddCommand(c.historyCmd())
	root.AddCommand(c.prefsCmd())
	root.AddCommand(c.insightsCmd())
	root.AddCommand(c.serveCmd())
	root.AddCommand(versionCmd())
	return root
}

func (c *cli) initConfig(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	if err := config.Init(c.v, c.cfgFile); err != nil {
		return err
	}
	cfg, err := config.FromViper(c.v)
	if err != nil {
		return err
	}
	logger, err := cfg.Logging.NewLogger(cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	slog.SetDefault(logger)
	c.cfg, c.logger = cfg, logger
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bmitracker %s\n", version)
		},
	}
}
