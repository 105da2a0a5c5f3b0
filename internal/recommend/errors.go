// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package recommend

import (
	"errors"
	"fmt"

	"github.com/lspp60/trackrec/internal/validation"
)

var (
	// ErrInvalidConfiguration is returned for out-of-range parameters:
	// alpha outside [0,1], non-positive top_n, an invalid rating scale or an unknown scorer.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrNotFound is returned when a single-entity lookup references an unknown item.
	ErrNotFound = errors.New("not found")
)

// ConfigError describes which parameter was rejected and why.
// It matches ErrInvalidConfiguration with errors.Is.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// Unwrap returns ErrInvalidConfiguration.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfiguration
}

func invalidConfig(field, format string, args ...any) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// validateParams runs struct validation and reports the first failing field as a ConfigError.
func validateParams(v any) error {
	err := validation.ValidateStruct(v)
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if errors.As(err, &errs) && len(errs) > 0 {
		return &ConfigError{Field: errs[0].Path, Reason: errs[0].Message}
	}
	return &ConfigError{Field: "unknown", Reason: err.Error()}
}
