// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package main

import (
	"github.com/spf13/cobra"

	"github.com/lspp60/trackrec/internal/recommend"
)

func newSimilarCmd(a *app) *cobra.Command {
	var (
		item int
		topN int
	)

	cmd := &cobra.Command{
		Use:   "similar",
		Short: "List the tracks most similar in content to a track",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.loadComponents(cmd)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("top-n") {
				topN = a.cfg.Recommend.TopN
			}
			similar, err := c.Engine.Similar(cmd.Context(), item, topN)
			if err != nil {
				return err
			}
			if a.format == formatJSON {
				return writeJSON(a.out, struct {
					ItemID  int                    `json:"item_id"`
					Similar []recommend.ScoredItem `json:"similar"`
				}{ItemID: item, Similar: similar})
			}
			printSimilar(a.out, c.Items, item, similar)
			return nil
		},
	}
	cmd.Flags().IntVar(&item, "item", 0, "track id")
	cmd.Flags().IntVar(&topN, "top-n", 0, "list length (default: recommend.top_n)")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}
