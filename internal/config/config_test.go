// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package config

import (
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults",
			mutate: func(*Config) {},
		},
		{
			name:    "alpha below zero",
			mutate:  func(c *Config) { c.Recommend.Alpha = -0.01 },
			wantErr: "recommend.alpha",
		},
		{
			name:    "top_n zero",
			mutate:  func(c *Config) { c.Recommend.TopN = 0 },
			wantErr: "recommend.top_n",
		},
		{
			name:    "unknown scorer",
			mutate:  func(c *Config) { c.Recommend.Scorer = "popularity" },
			wantErr: "recommend.scorer",
		},
		{
			name:    "unknown loader",
			mutate:  func(c *Config) { c.Data.Loader = "parquet" },
			wantErr: "data.loader",
		},
		{
			name:    "missing items path",
			mutate:  func(c *Config) { c.Data.ItemsPath = "" },
			wantErr: "data.items_path",
		},
		{
			name:    "empty ks",
			mutate:  func(c *Config) { c.Evaluate.Ks = nil },
			wantErr: "evaluate.ks",
		},
		{
			name:    "negative k",
			mutate:  func(c *Config) { c.Evaluate.Ks = []int{5, -1} },
			wantErr: "evaluate.ks[1]",
		},
		{
			name:    "duplicate k",
			mutate:  func(c *Config) { c.Evaluate.Ks = []int{5, 10, 5} },
			wantErr: "duplicate cut-off 5",
		},
		{
			name:    "unknown evaluation scorer",
			mutate:  func(c *Config) { c.Evaluate.Scorers = []string{"hybrid", "ease"} },
			wantErr: "evaluate.scorers[1]",
		},
		{
			name:    "test fraction one",
			mutate:  func(c *Config) { c.Evaluate.TestFraction = 1 },
			wantErr: "evaluate.test_fraction",
		},
		{
			name:    "unknown split mode",
			mutate:  func(c *Config) { c.Evaluate.SplitMode = "leave-one-out" },
			wantErr: "evaluate.split_mode",
		},
		{
			name:    "inverted rating scale",
			mutate:  func(c *Config) { c.Recommend.RatingMin = 5; c.Recommend.RatingMax = 1 },
			wantErr: "recommend.rating_max",
		},
		{
			name:    "threshold off scale",
			mutate:  func(c *Config) { c.Evaluate.Threshold = 7 },
			wantErr: "evaluate.threshold",
		},
		{
			name:    "zero knn neighbors",
			mutate:  func(c *Config) { c.Recommend.KNN.Neighbors = 0 },
			wantErr: "recommend.knn.neighbors",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "logging.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}
