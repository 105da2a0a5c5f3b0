// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package dataset

import (
	"context"
	"fmt"
	"time"

	"github.com/lspp60/trackrec/internal/logging"
	"github.com/lspp60/trackrec/internal/recommend"
)

// Loader kinds.
const (
	LoaderCSV    = "csv"
	LoaderDuckDB = "duckdb"
)

// Loader reads the input tables from flat files.
type Loader interface {
	LoadInteractions(ctx context.Context, path string) ([]recommend.Interaction, error)
	LoadItems(ctx context.Context, path string) ([]recommend.Item, error)
	LoadPredictions(ctx context.Context, path string) ([]recommend.Prediction, error)
	LoadSimilarities(ctx context.Context, path string) ([]recommend.SimilarityEntry, error)
	Close() error
}

// NewLoader returns the loader of the given kind.
func NewLoader(kind string) (Loader, error) {
	switch kind {
	case LoaderCSV, "":
		return NewCSVLoader(), nil
	case LoaderDuckDB:
		return NewDuckDBLoader()
	default:
		return nil, fmt.Errorf("unknown loader %q (want %s or %s)", kind, LoaderCSV, LoaderDuckDB)
	}
}

// Paths names the input files. Predictions and Similarity are optional.
type Paths struct {
	Interactions string
	Items        string
	Predictions  string
	Similarity   string
}

// Bundle is the raw content of the input files.
type Bundle struct {
	Interactions []recommend.Interaction
	Items        []recommend.Item
	Predictions  []recommend.Prediction
	Similarities []recommend.SimilarityEntry
}

// Load reads every configured file with l and checks ratings against scale.
func Load(ctx context.Context, l Loader, paths Paths, scale recommend.RatingScale) (*Bundle, error) {
	logger := logging.WithComponent("dataset")
	start := time.Now()

	b := &Bundle{}
	var err error

	if b.Items, err = l.LoadItems(ctx, paths.Items); err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	if b.Interactions, err = l.LoadInteractions(ctx, paths.Interactions); err != nil {
		return nil, fmt.Errorf("load interactions: %w", err)
	}
	if err := ValidateRatings(b.Interactions, scale); err != nil {
		return nil, fmt.Errorf("load interactions: %w", err)
	}
	if paths.Predictions != "" {
		if b.Predictions, err = l.LoadPredictions(ctx, paths.Predictions); err != nil {
			return nil, fmt.Errorf("load predictions: %w", err)
		}
	}
	if paths.Similarity != "" {
		if b.Similarities, err = l.LoadSimilarities(ctx, paths.Similarity); err != nil {
			return nil, fmt.Errorf("load similarities: %w", err)
		}
	}

	logger.Info().
		Int("items", len(b.Items)).
		Int("interactions", len(b.Interactions)).
		Int("predictions", len(b.Predictions)).
		Int("similarities", len(b.Similarities)).
		Dur("duration", time.Since(start)).
		Msg("dataset loaded")

	return b, nil
}
