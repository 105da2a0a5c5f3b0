// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package main

import (
	"github.com/spf13/cobra"
)

func newScoreCmd(a *app) *cobra.Command {
	f := &requestFlags{}
	var item int

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Show the score breakdown of one track for a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.loadComponents(cmd)
			if err != nil {
				return err
			}

			req := f.request(cmd, c.Engine)
			cs, err := c.Engine.Score(cmd.Context(), req, item)
			if err != nil {
				return err
			}
			if a.format == formatJSON {
				return writeJSON(a.out, cs)
			}
			printScore(a.out, c.Items, req.Scorer, cs)
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().IntVar(&item, "item", 0, "track id")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}
