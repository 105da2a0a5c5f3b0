// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package config

import (
	"fmt"

	"github.com/lspp60/trackrec/internal/validation"
)

// Validate checks struct-level constraints and the cross-field rules
// the validator tags cannot express.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}

	if err := c.validateRatingScale(); err != nil {
		return err
	}

	return c.validateKs()
}

// validateRatingScale ensures the scale is non-empty and the threshold lies on it.
func (c *Config) validateRatingScale() error {
	r := c.Recommend
	if r.RatingMin < 0 {
		return fmt.Errorf("recommend.rating_min must be non-negative, got %g", r.RatingMin)
	}
	if r.RatingMax <= r.RatingMin {
		return fmt.Errorf("recommend.rating_max (%g) must be greater than recommend.rating_min (%g)",
			r.RatingMax, r.RatingMin)
	}
	if c.Evaluate.Threshold < r.RatingMin || c.Evaluate.Threshold > r.RatingMax {
		return fmt.Errorf("evaluate.threshold %g outside rating scale [%g, %g]",
			c.Evaluate.Threshold, r.RatingMin, r.RatingMax)
	}
	return nil
}

// validateKs rejects duplicate cut-offs.
func (c *Config) validateKs() error {
	seen := make(map[int]struct{}, len(c.Evaluate.Ks))
	for _, k := range c.Evaluate.Ks {
		if _, dup := seen[k]; dup {
			return fmt.Errorf("evaluate.ks contains duplicate cut-off %d", k)
		}
		seen[k] = struct{}{}
	}
	return nil
}
