package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/wdm0006/datavis/internal/config"
	"github.com/wdm0006/datavis/internal/logging"
)

// app carries state built once, before any subcommand runs.
type app struct {
	cfgFile  string
	logLevel string

	cfg     config.Config
	log     *slog.Logger
	cleanup func()
}

func newRootCmd() *cobra.Command {
	a := &app{cleanup: func() {}}
	root := &cobra.Command{
		Use:           "datavis",
		Short:         "Clean tabular files and draw quick statistical charts",
		Long:          `datavis loads a CSV, Excel, JSON Lines or Parquet file, fills its missing values and renders pairplots, correlation heatmaps, countplots, boxplots and histograms, from the command line or a small web UI.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.cleanup()
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (.json, .yaml or .toml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "debug|info|warn|error (overrides config)")

	root.AddCommand(
		newServeCmd(a),
		newCleanCmd(a),
		newPlotCmd(a),
		newProfileCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg
	a.log, a.cleanup = logging.Setup(cfg.Logging, cmd.ErrOrStderr())
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and exit",
		// config is not needed to print the version
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "datavis", version)
		},
	}
}
