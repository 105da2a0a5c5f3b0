// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

/*
Package config provides centralized configuration management for trackrec.

Configuration is loaded with Koanf v2 from three layers, later layers
overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file (--config flag, TRACKREC_CONFIG, or the default search paths)
 3. TRACKREC_* environment variables

# Configuration Structure

  - DataConfig: flat-file locations and the loader used to read them (csv or duckdb)
  - RecommendConfig: blend weight, list length, rating scale, scorer, cache and KNN settings
  - EvaluateConfig: cut-offs, relevance threshold, train/test split and worker count
  - LoggingConfig: zerolog level, format and caller reporting
  - MetricsConfig: Prometheus textfile output

# Environment Variables

Data:
  - TRACKREC_INTERACTIONS: ratings file (default: data/ratings.csv)
  - TRACKREC_ITEMS: track metadata file (default: data/tracks.csv)
  - TRACKREC_PREDICTIONS: optional precomputed (user,item,estimate) table
  - TRACKREC_SIMILARITY: optional precomputed (item_a,item_b,score) table
  - TRACKREC_LOADER: csv or duckdb (default: csv)

Recommendation:
  - TRACKREC_ALPHA: collaborative weight in [0,1] (default: 0.7)
  - TRACKREC_TOP_N: list length (default: 10)
  - TRACKREC_RATING_MIN / TRACKREC_RATING_MAX: rating scale (default: 1-5)
  - TRACKREC_SCORER: hybrid, content, collaborative or knn (default: hybrid)
  - TRACKREC_CACHE_SIZE: cached result lists, 0 disables (default: 1024)
  - TRACKREC_KNN_NEIGHBORS, TRACKREC_KNN_SHRINKAGE, TRACKREC_KNN_MIN_COMMON
  - TRACKREC_BASELINE_USER_DAMPING, TRACKREC_BASELINE_ITEM_DAMPING

Evaluation:
  - TRACKREC_EVAL_KS: comma-separated cut-offs (default: 1,5,10,20)
  - TRACKREC_EVAL_SCORERS: comma-separated scorer names
  - TRACKREC_EVAL_THRESHOLD: relevance threshold (default: 4.0)
  - TRACKREC_TEST_FRACTION: held-out share of positives (default: 0.2)
  - TRACKREC_SPLIT_MODE: random or temporal (default: random)
  - TRACKREC_SEED: split seed (default: 42)
  - TRACKREC_WORKERS: parallel users, 0 = runtime.NumCPU()

Observability:
  - TRACKREC_LOG_LEVEL, TRACKREC_LOG_FORMAT, TRACKREC_LOG_CALLER
  - TRACKREC_METRICS_OUT: Prometheus textfile path (empty disables)

# Usage

	cfg, err := config.LoadWithKoanf(configPath)
	if err != nil {
	    return fmt.Errorf("load config: %w", err)
	}
*/
package config
