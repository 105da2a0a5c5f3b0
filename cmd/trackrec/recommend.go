// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package main

import (
	"github.com/spf13/cobra"

	"github.com/lspp60/trackrec/internal/dataset"
	"github.com/lspp60/trackrec/internal/recommend"
)

// requestFlags are the request overrides shared by recommend and score.
type requestFlags struct {
	user   int
	alpha  float64
	topN   int
	scorer string
}

func (f *requestFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.user, "user", 0, "user id")
	cmd.Flags().Float64Var(&f.alpha, "alpha", 0, "collaborative weight in [0,1] (default: recommend.alpha)")
	cmd.Flags().StringVar(&f.scorer, "scorer", "", "hybrid, content, collaborative or knn (default: recommend.scorer)")
	_ = cmd.MarkFlagRequired("user")
}

// request builds an engine request, keeping configured defaults for unset flags.
func (f *requestFlags) request(cmd *cobra.Command, engine *recommend.Engine) recommend.Request {
	req := engine.NewRequest(f.user)
	if cmd.Flags().Changed("alpha") {
		req.Alpha = f.alpha
	}
	if cmd.Flags().Changed("top-n") {
		req.TopN = f.topN
	}
	if f.scorer != "" {
		req.Scorer = f.scorer
	}
	return req
}

// loadComponents reads the dataset and builds an engine over all interactions.
func (a *app) loadComponents(cmd *cobra.Command) (*components, error) {
	bundle, err := loadBundle(cmd.Context(), a.cfg)
	if err != nil {
		return nil, err
	}
	return initComponents(cmd.Context(), a.cfg, bundle, dataset.NewInteractionStore(bundle.Interactions), nil)
}

func newRecommendCmd(a *app) *cobra.Command {
	f := &requestFlags{}
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank unrated tracks for a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.loadComponents(cmd)
			if err != nil {
				return err
			}

			res, err := c.Engine.Recommend(cmd.Context(), f.request(cmd, c.Engine))
			if err != nil {
				return err
			}
			if a.format == formatJSON {
				return writeJSON(a.out, res)
			}
			printResult(a.out, c.Items, res)
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().IntVar(&f.topN, "top-n", 0, "list length (default: recommend.top_n)")
	return cmd
}
