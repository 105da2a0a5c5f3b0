// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lspp60/trackrec/internal/config"
	"github.com/lspp60/trackrec/internal/logging"
	"github.com/lspp60/trackrec/internal/metrics"
)

// Output formats.
const (
	formatTable = "table"
	formatJSON  = "json"
)

// app carries state shared by every subcommand.
type app struct {
	configPath string
	format     string
	metricsOut string

	cfg *config.Config
	out io.Writer
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "trackrec",
		Short:         "Hybrid track recommendation and ranking evaluation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.prepare(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return a.writeMetrics()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default: search trackrec.yaml, TRACKREC_CONFIG)")
	flags.StringVar(&a.format, "format", formatTable, "output format: table or json")
	flags.StringVar(&a.metricsOut, "metrics-out", "", "write Prometheus metrics to this textfile after the run")

	root.AddCommand(
		newRecommendCmd(a),
		newScoreCmd(a),
		newSimilarCmd(a),
		newEvaluateCmd(a),
	)
	return root
}

// prepare loads configuration and configures logging.
func (a *app) prepare(cmd *cobra.Command) error {
	if a.format != formatTable && a.format != formatJSON {
		return fmt.Errorf("--format must be %s or %s, got %q", formatTable, formatJSON, a.format)
	}

	cfg, err := config.LoadWithKoanf(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg
	a.out = cmd.OutOrStdout()

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.Format = cfg.Logging.Format
	logCfg.Caller = cfg.Logging.Caller
	logCfg.Output = cmd.ErrOrStderr()
	logging.Init(logCfg)

	if a.metricsOut == "" {
		a.metricsOut = cfg.Metrics.TextfilePath
	}

	logging.Ctx(cmd.Context()).Debug().
		Str("command", cmd.Name()).
		Str("loader", cfg.Data.Loader).
		Str("format", a.format).
		Msg("configuration loaded")
	return nil
}

func (a *app) writeMetrics() error {
	if a.metricsOut == "" {
		return nil
	}
	if err := metrics.WriteTextfile(a.metricsOut); err != nil {
		return err
	}
	logging.Info().Str("path", a.metricsOut).Msg("metrics written")
	return nil
}
