// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package recommend

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Alpha is the default collaborative weight of the hybrid blend.
	// Default: 0.7.
	Alpha float64 `json:"alpha" validate:"gte=0,lte=1"`

	// TopN is the default recommendation list length.
	// Default: 10.
	TopN int `json:"top_n" validate:"gt=0"`

	// Scale bounds ratings and normalizes scores.
	// Default: 1-5.
	Scale RatingScale `json:"rating_scale"`

	// DefaultScorer is used when a request names no scorer.
	// Default: "hybrid".
	DefaultScorer string `json:"default_scorer" validate:"required"`

	// Cache contains result cache parameters.
	Cache CacheConfig `json:"cache"`

	// Workers bounds the parallelism of batch recommendation.
	// 0 uses runtime.NumCPU().
	Workers int `json:"workers" validate:"gte=0"`
}

// CacheConfig contains result cache parameters.
type CacheConfig struct {
	// Enabled turns the result cache on.
	// Default: true.
	Enabled bool `json:"enabled"`

	// Capacity is the number of result lists kept.
	// Default: 1024.
	Capacity int `json:"capacity" validate:"gte=0"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		Alpha:         0.7,
		TopN:          10,
		Scale:         DefaultRatingScale(),
		DefaultScorer: ScorerHybrid,
		Cache: CacheConfig{
			Enabled:  true,
			Capacity: 1024,
		},
		Workers: 0,
	}
}

// Validate checks that all parameters are within valid ranges.
// Errors match ErrInvalidConfiguration.
func (c *Config) Validate() error {
	if err := validateParams(c); err != nil {
		return err
	}
	return c.Scale.Validate()
}
