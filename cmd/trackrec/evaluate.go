// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lspp60/trackrec/internal/dataset"
	"github.com/lspp60/trackrec/internal/logging"
	"github.com/lspp60/trackrec/internal/recommend/evaluate"
)

func newEvaluateCmd(a *app) *cobra.Command {
	var (
		ks      []int
		scorers []string
		alpha   float64
		mode    string
		seed    int64
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Split the ratings and compare scorers on the held-out tracks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := a.cfg
			flags := cmd.Flags()
			if !flags.Changed("k") {
				ks = cfg.Evaluate.Ks
			}
			if !flags.Changed("scorers") {
				scorers = cfg.Evaluate.Scorers
			}
			if !flags.Changed("alpha") {
				alpha = cfg.Recommend.Alpha
			}
			if !flags.Changed("split-mode") {
				mode = cfg.Evaluate.SplitMode
			}
			if !flags.Changed("seed") {
				seed = cfg.Evaluate.Seed
			}

			evaluator, err := evaluate.NewEvaluator(ks)
			if err != nil {
				return err
			}

			bundle, err := loadBundle(ctx, cfg)
			if err != nil {
				return err
			}
			split, err := dataset.Split(dataset.NewInteractionStore(bundle.Interactions), dataset.SplitOptions{
				Threshold:    cfg.Evaluate.Threshold,
				TestFraction: cfg.Evaluate.TestFraction,
				Mode:         mode,
				Seed:         seed,
			})
			if err != nil {
				return fmt.Errorf("split: %w", err)
			}
			logging.Ctx(ctx).Info().
				Int("users", split.Users).
				Int("positives", split.Positives).
				Int("test_users", len(split.Test)).
				Int("held_out", split.HeldOut()).
				Str("mode", mode).
				Int64("seed", seed).
				Msg("interactions split")

			c, err := initComponents(ctx, cfg, bundle, split.Train, scorers)
			if err != nil {
				return err
			}
			runner, err := evaluate.NewRunner(c.Engine, evaluator, alpha, logging.Logger())
			if err != nil {
				return err
			}
			summary, err := runner.Run(ctx, split.Test, scorers)
			if err != nil {
				return err
			}

			if a.format == formatJSON {
				return summary.WriteJSON(a.out)
			}
			printSummary(a.out, summary)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntSliceVar(&ks, "k", nil, "ranking cut-offs (default: evaluate.ks)")
	flags.StringSliceVar(&scorers, "scorers", nil, "scorers to compare (default: evaluate.scorers)")
	flags.Float64Var(&alpha, "alpha", 0, "hybrid collaborative weight (default: recommend.alpha)")
	flags.StringVar(&mode, "split-mode", "", "random or temporal (default: evaluate.split_mode)")
	flags.Int64Var(&seed, "seed", 0, "random split seed (default: evaluate.seed)")
	return cmd
}
