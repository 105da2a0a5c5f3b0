// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package config

// Config holds all application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file for persistent settings
//  3. Environment Variables: Override any setting via TRACKREC_* variables
type Config struct {
	Data      DataConfig      `koanf:"data"`
	Recommend RecommendConfig `koanf:"recommend"`
	Evaluate  EvaluateConfig  `koanf:"evaluate"`
	Logging   LoggingConfig   `koanf:"logging"`
	Metrics   MetricsConfig   `koanf:"metrics"`
}

// DataConfig locates the flat files the stores and providers are built from.
type DataConfig struct {
	// InteractionsPath is a CSV with user_id, track_id, rating and an optional timestamp column.
	InteractionsPath string `koanf:"interactions_path" validate:"required"`

	// ItemsPath is a CSV with track_id, title, genre and an optional artist column.
	ItemsPath string `koanf:"items_path" validate:"required"`

	// PredictionsPath optionally points at a precomputed user_id, track_id, estimate table.
	// When empty, the baseline predictor supplies collaborative scores.
	PredictionsPath string `koanf:"predictions_path"`

	// SimilarityPath optionally points at a precomputed item_a, item_b, score table.
	// When empty, TF-IDF similarity is computed from item text.
	SimilarityPath string `koanf:"similarity_path"`

	// Loader selects how flat files are read: csv (encoding/csv) or duckdb (read_csv_auto).
	// Default: csv
	Loader string `koanf:"loader" validate:"oneof=csv duckdb"`
}

// RecommendConfig holds scoring engine settings.
type RecommendConfig struct {
	// Alpha is the collaborative weight of the hybrid blend.
	// Default: 0.7
	Alpha float64 `koanf:"alpha" validate:"gte=0,lte=1"`

	// TopN is the default length of a recommendation list.
	// Default: 10
	TopN int `koanf:"top_n" validate:"gt=0"`

	// RatingMin and RatingMax bound the rating scale.
	// Default: 1 and 5
	RatingMin float64 `koanf:"rating_min"`
	RatingMax float64 `koanf:"rating_max" validate:"gt=0"`

	// Scorer is the scorer used by the recommend command.
	// Default: hybrid
	Scorer string `koanf:"scorer" validate:"oneof=hybrid content collaborative knn"`

	// CacheSize is the number of result lists kept in the LRU cache. 0 disables caching.
	// Default: 1024
	CacheSize int `koanf:"cache_size" validate:"gte=0"`

	KNN      KNNConfig      `koanf:"knn"`
	Baseline BaselineConfig `koanf:"baseline"`
}

// KNNConfig configures the co-rating neighborhood scorer.
type KNNConfig struct {
	// Neighbors is k, the number of rated neighbors aggregated per candidate.
	// k = 1 reproduces the single-closest-neighbor policy.
	// Default: 20
	Neighbors int `koanf:"neighbors" validate:"gt=0"`

	// Shrinkage damps similarities computed from few co-raters.
	// Default: 10
	Shrinkage float64 `koanf:"shrinkage" validate:"gte=0"`

	// MinCommonUsers is the minimum number of co-raters for a non-zero similarity.
	// Default: 2
	MinCommonUsers int `koanf:"min_common_users" validate:"gte=1"`
}

// BaselineConfig configures the bias baseline used as the collaborative fallback.
type BaselineConfig struct {
	// UserDamping and ItemDamping shrink biases of sparse users and items toward zero.
	// Default: 10 and 25
	UserDamping float64 `koanf:"user_damping" validate:"gte=0"`
	ItemDamping float64 `koanf:"item_damping" validate:"gte=0"`
}

// EvaluateConfig holds offline evaluation settings.
type EvaluateConfig struct {
	// Ks are the ranking cut-offs.
	// Default: 1, 5, 10, 20
	Ks []int `koanf:"ks" validate:"min=1,dive,gt=0"`

	// Scorers are evaluated side by side.
	// Default: hybrid, content, collaborative, knn
	Scorers []string `koanf:"scorers" validate:"min=1,dive,oneof=hybrid content collaborative knn"`

	// Threshold is the minimum rating of a relevant (positive) interaction.
	// Default: 4.0
	Threshold float64 `koanf:"threshold"`

	// TestFraction is the share of each user's positives held out.
	// Default: 0.2
	TestFraction float64 `koanf:"test_fraction" validate:"gt=0,lt=1"`

	// SplitMode is random (seeded shuffle) or temporal (latest positives held out).
	// Default: random
	SplitMode string `koanf:"split_mode" validate:"oneof=random temporal"`

	// Seed makes the random split reproducible.
	// Default: 42
	Seed int64 `koanf:"seed"`

	// Workers bounds per-user parallelism. 0 uses runtime.NumCPU().
	// Default: 0
	Workers int `koanf:"workers" validate:"gte=0"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// MetricsConfig holds Prometheus export settings.
type MetricsConfig struct {
	// TextfilePath receives the registry in text exposition format after a run.
	// Empty disables the export.
	TextfilePath string `koanf:"textfile_path"`
}

// Load reads configuration using the default search paths.
// See LoadWithKoanf for the layering rules.
func Load() (*Config, error) {
	return LoadWithKoanf("")
}
