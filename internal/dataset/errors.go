// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package dataset

import (
	"errors"
	"fmt"
)

// ErrInvalidData is returned for unreadable rows, missing required
// columns and ratings off the configured scale.
var ErrInvalidData = errors.New("invalid data")

// RowError locates a bad value in an input file.
type RowError struct {
	Path   string
	Line   int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s:%d: column %s: %v", e.Path, e.Line, e.Column, e.Err)
}

// Unwrap returns ErrInvalidData.
func (e *RowError) Unwrap() []error {
	return []error{ErrInvalidData, e.Err}
}
