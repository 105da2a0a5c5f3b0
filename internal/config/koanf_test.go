// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Data.Loader != "csv" {
		t.Errorf("Data.Loader = %q, want csv", cfg.Data.Loader)
	}
	if cfg.Recommend.Alpha != 0.7 {
		t.Errorf("Recommend.Alpha = %v, want 0.7", cfg.Recommend.Alpha)
	}
	if cfg.Recommend.TopN != 10 {
		t.Errorf("Recommend.TopN = %d, want 10", cfg.Recommend.TopN)
	}
	if cfg.Recommend.RatingMin != 1 || cfg.Recommend.RatingMax != 5 {
		t.Errorf("rating scale = [%v, %v], want [1, 5]", cfg.Recommend.RatingMin, cfg.Recommend.RatingMax)
	}
	if !reflect.DeepEqual(cfg.Evaluate.Ks, []int{1, 5, 10, 20}) {
		t.Errorf("Evaluate.Ks = %v, want [1 5 10 20]", cfg.Evaluate.Ks)
	}
	if cfg.Evaluate.Threshold != 4.0 {
		t.Errorf("Evaluate.Threshold = %v, want 4.0", cfg.Evaluate.Threshold)
	}
	if cfg.Evaluate.SplitMode != "random" {
		t.Errorf("Evaluate.SplitMode = %q, want random", cfg.Evaluate.SplitMode)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadWithKoanf_Defaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")

	cfg, err := LoadWithKoanf("")
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Recommend.Scorer != "hybrid" {
		t.Errorf("Recommend.Scorer = %q, want hybrid", cfg.Recommend.Scorer)
	}
	if cfg.Recommend.KNN.Neighbors != 20 {
		t.Errorf("Recommend.KNN.Neighbors = %d, want 20", cfg.Recommend.KNN.Neighbors)
	}
}

func TestLoadWithKoanf_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trackrec.yaml")
	content := `
data:
  interactions_path: /srv/ratings.csv
  loader: duckdb
recommend:
  alpha: 0.5
  top_n: 25
  knn:
    neighbors: 1
evaluate:
  ks: [3, 7]
  split_mode: temporal
logging:
  level: debug
  format: console
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadWithKoanf(path)
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Data.InteractionsPath != "/srv/ratings.csv" {
		t.Errorf("Data.InteractionsPath = %q, want /srv/ratings.csv", cfg.Data.InteractionsPath)
	}
	if cfg.Data.ItemsPath != "data/tracks.csv" {
		t.Errorf("Data.ItemsPath = %q, want default data/tracks.csv", cfg.Data.ItemsPath)
	}
	if cfg.Data.Loader != "duckdb" {
		t.Errorf("Data.Loader = %q, want duckdb", cfg.Data.Loader)
	}
	if cfg.Recommend.Alpha != 0.5 {
		t.Errorf("Recommend.Alpha = %v, want 0.5", cfg.Recommend.Alpha)
	}
	if cfg.Recommend.TopN != 25 {
		t.Errorf("Recommend.TopN = %d, want 25", cfg.Recommend.TopN)
	}
	if cfg.Recommend.KNN.Neighbors != 1 {
		t.Errorf("Recommend.KNN.Neighbors = %d, want 1", cfg.Recommend.KNN.Neighbors)
	}
	if cfg.Recommend.KNN.Shrinkage != 10 {
		t.Errorf("Recommend.KNN.Shrinkage = %v, want default 10", cfg.Recommend.KNN.Shrinkage)
	}
	if !reflect.DeepEqual(cfg.Evaluate.Ks, []int{3, 7}) {
		t.Errorf("Evaluate.Ks = %v, want [3 7]", cfg.Evaluate.Ks)
	}
	if cfg.Evaluate.SplitMode != "temporal" {
		t.Errorf("Evaluate.SplitMode = %q, want temporal", cfg.Evaluate.SplitMode)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q, want console", cfg.Logging.Format)
	}
}

func TestLoadWithKoanf_MissingExplicitFile(t *testing.T) {
	_, err := LoadWithKoanf(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadWithKoanf_ConfigPathEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("recommend:\n  top_n: 3\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := LoadWithKoanf("")
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Recommend.TopN != 3 {
		t.Errorf("Recommend.TopN = %d, want 3", cfg.Recommend.TopN)
	}
}

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trackrec.yaml")
	if err := os.WriteFile(path, []byte("recommend:\n  alpha: 0.2\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("TRACKREC_ALPHA", "0.9")
	t.Setenv("TRACKREC_EVAL_KS", "2, 4,8")
	t.Setenv("TRACKREC_EVAL_SCORERS", "hybrid,knn")
	t.Setenv("TRACKREC_KNN_NEIGHBORS", "5")
	t.Setenv("TRACKREC_LOG_LEVEL", "warn")
	t.Setenv("TRACKREC_METRICS_OUT", "/tmp/trackrec.prom")
	t.Setenv("TRACKREC_UNRELATED", "ignored")

	cfg, err := LoadWithKoanf(path)
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Recommend.Alpha != 0.9 {
		t.Errorf("Recommend.Alpha = %v, want 0.9 (env beats file)", cfg.Recommend.Alpha)
	}
	if !reflect.DeepEqual(cfg.Evaluate.Ks, []int{2, 4, 8}) {
		t.Errorf("Evaluate.Ks = %v, want [2 4 8]", cfg.Evaluate.Ks)
	}
	if !reflect.DeepEqual(cfg.Evaluate.Scorers, []string{"hybrid", "knn"}) {
		t.Errorf("Evaluate.Scorers = %v, want [hybrid knn]", cfg.Evaluate.Scorers)
	}
	if cfg.Recommend.KNN.Neighbors != 5 {
		t.Errorf("Recommend.KNN.Neighbors = %d, want 5", cfg.Recommend.KNN.Neighbors)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
	if cfg.Metrics.TextfilePath != "/tmp/trackrec.prom" {
		t.Errorf("Metrics.TextfilePath = %q, want /tmp/trackrec.prom", cfg.Metrics.TextfilePath)
	}
}

func TestLoadWithKoanf_InvalidEnv(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("TRACKREC_ALPHA", "1.5")

	_, err := LoadWithKoanf("")
	if err == nil {
		t.Fatal("expected validation error for alpha 1.5")
	}
	if !strings.Contains(err.Error(), "recommend.alpha") {
		t.Errorf("error should name recommend.alpha, got %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env      string
		expected string
	}{
		{"TRACKREC_INTERACTIONS", "data.interactions_path"},
		{"TRACKREC_LOADER", "data.loader"},
		{"TRACKREC_ALPHA", "recommend.alpha"},
		{"TRACKREC_TOP_N", "recommend.top_n"},
		{"TRACKREC_KNN_MIN_COMMON", "recommend.knn.min_common_users"},
		{"TRACKREC_BASELINE_ITEM_DAMPING", "recommend.baseline.item_damping"},
		{"TRACKREC_EVAL_KS", "evaluate.ks"},
		{"TRACKREC_SPLIT_MODE", "evaluate.split_mode"},
		{"TRACKREC_LOG_FORMAT", "logging.format"},
		{"TRACKREC_METRICS_OUT", "metrics.textfile_path"},
		{"TRACKREC_CONFIG", ""},
		{"TRACKREC_SOMETHING_ELSE", ""},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			if got := envTransformFunc(tt.env); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.expected)
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "env.yaml")
	if err := os.WriteFile(path, []byte("{}"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(ConfigPathEnvVar, path)
	if got := findConfigFile(); got != path {
		t.Errorf("findConfigFile() = %q, want %q", got, path)
	}

	t.Setenv(ConfigPathEnvVar, filepath.Join(dir, "missing.yaml"))
	if got := findConfigFile(); got != "" {
		t.Errorf("findConfigFile() with missing env path = %q, want empty", got)
	}
}
