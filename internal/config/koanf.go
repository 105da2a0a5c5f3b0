// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"trackrec.yaml",
	"trackrec.yml",
	"config.yaml",
	"config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "TRACKREC_CONFIG"

// envPrefix limits the environment layer to trackrec variables.
const envPrefix = "TRACKREC_"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			InteractionsPath: "data/ratings.csv",
			ItemsPath:        "data/tracks.csv",
			PredictionsPath:  "", // baseline predictor when empty
			SimilarityPath:   "", // TF-IDF over item text when empty
			Loader:           "csv",
		},
		Recommend: RecommendConfig{
			Alpha:     0.7,
			TopN:      10,
			RatingMin: 1,
			RatingMax: 5,
			Scorer:    "hybrid",
			CacheSize: 1024,
			KNN: KNNConfig{
				Neighbors:      20,
				Shrinkage:      10,
				MinCommonUsers: 2,
			},
			Baseline: BaselineConfig{
				UserDamping: 10,
				ItemDamping: 25,
			},
		},
		Evaluate: EvaluateConfig{
			Ks:           []int{1, 5, 10, 20},
			Scorers:      []string{"hybrid", "content", "collaborative", "knn"},
			Threshold:    4.0,
			TestFraction: 0.2,
			SplitMode:    "random",
			Seed:         42,
			Workers:      0, // 0 = use runtime.NumCPU()
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Metrics: MetricsConfig{
			TextfilePath: "",
		},
	}
}

// Default returns the built-in configuration without reading files or the environment.
func Default() *Config {
	return defaultConfig()
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: configPath when non-empty, otherwise the first file found by findConfigFile
//  3. Environment Variables: TRACKREC_* overrides
//
// An explicitly requested configPath that does not exist is an error;
// a missing file on the search path is not.
func LoadWithKoanf(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath == "" {
		configPath = findConfigFile()
	} else if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("config file %s: %w", configPath, err)
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// TRACKREC_ALPHA -> recommend.alpha
	// TRACKREC_EVAL_KS -> evaluate.ks
	if err := k.Load(env.Provider(envPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"evaluate.ks",
	"evaluate.scorers",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings; the unmarshaler converts the resulting
// string elements to ints where the target field requires it.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps TRACKREC_* variable names (lower-cased, prefix removed) to koanf paths.
var envMappings = map[string]string{
	// Data
	"interactions": "data.interactions_path",
	"items":        "data.items_path",
	"predictions":  "data.predictions_path",
	"similarity":   "data.similarity_path",
	"loader":       "data.loader",

	// Recommendation
	"alpha":                 "recommend.alpha",
	"top_n":                 "recommend.top_n",
	"rating_min":            "recommend.rating_min",
	"rating_max":            "recommend.rating_max",
	"scorer":                "recommend.scorer",
	"cache_size":            "recommend.cache_size",
	"knn_neighbors":         "recommend.knn.neighbors",
	"knn_shrinkage":         "recommend.knn.shrinkage",
	"knn_min_common":        "recommend.knn.min_common_users",
	"baseline_user_damping": "recommend.baseline.user_damping",
	"baseline_item_damping": "recommend.baseline.item_damping",

	// Evaluation
	"eval_ks":        "evaluate.ks",
	"eval_scorers":   "evaluate.scorers",
	"eval_threshold": "evaluate.threshold",
	"test_fraction":  "evaluate.test_fraction",
	"split_mode":     "evaluate.split_mode",
	"seed":           "evaluate.seed",
	"workers":        "evaluate.workers",

	// Observability
	"log_level":   "logging.level",
	"log_format":  "logging.format",
	"log_caller":  "logging.caller",
	"metrics_out": "metrics.textfile_path",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped variables return "" and are ignored, so unrelated TRACKREC_*
// variables (including TRACKREC_CONFIG) never leak into the config tree.
//
// Examples:
//   - TRACKREC_ALPHA -> recommend.alpha
//   - TRACKREC_KNN_NEIGHBORS -> recommend.knn.neighbors
//   - TRACKREC_LOG_LEVEL -> logging.level
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	if path, ok := envMappings[key]; ok {
		return path
	}
	return ""
}
