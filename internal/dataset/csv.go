// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lspp60/trackrec/internal/metrics"
	"github.com/lspp60/trackrec/internal/recommend"
)

// CSVLoader streams comma-separated files with a header row.
type CSVLoader struct{}

// NewCSVLoader creates a CSV loader.
func NewCSVLoader() *CSVLoader {
	return &CSVLoader{}
}

// LoadInteractions reads user_id, track_id, rating and an optional timestamp.
func (l *CSVLoader) LoadInteractions(ctx context.Context, path string) ([]recommend.Interaction, error) {
	return readCSV(ctx, path, interactionSchema, parseInteraction)
}

// LoadItems reads track_id and optional title, genre and artist.
func (l *CSVLoader) LoadItems(ctx context.Context, path string) ([]recommend.Item, error) {
	return readCSV(ctx, path, itemSchema, parseItem)
}

// LoadPredictions reads user_id, track_id and estimate.
func (l *CSVLoader) LoadPredictions(ctx context.Context, path string) ([]recommend.Prediction, error) {
	return readCSV(ctx, path, predictionSchema, parsePrediction)
}

// LoadSimilarities reads item_a, item_b and score.
func (l *CSVLoader) LoadSimilarities(ctx context.Context, path string) ([]recommend.SimilarityEntry, error) {
	return readCSV(ctx, path, similaritySchema, parseSimilarity)
}

// Close is a no-op.
func (l *CSVLoader) Close() error {
	return nil
}

// readCSV parses every data row of path with parse.
func readCSV[T any](ctx context.Context, path string, schema tableSchema, parse rowParser[T]) ([]T, error) {
	start := time.Now()

	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", schema.table, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.ReuseRecord = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: empty file: %w", path, ErrInvalidData)
	}
	if err != nil {
		return nil, &RowError{Path: path, Line: 1, Err: err}
	}
	cols, err := schema.resolve(header)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var rows []T
	for line := 2; ; line++ {
		if line%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &RowError{Path: path, Line: line, Err: err}
		}
		if isBlank(record) {
			continue
		}

		row, col, err := parse(record, cols)
		if err != nil {
			return nil, &RowError{Path: path, Line: line, Column: col, Err: err}
		}
		rows = append(rows, row)
	}

	metrics.RecordDatasetLoad(schema.table, len(rows), time.Since(start))
	return rows, nil
}

func isBlank(record []string) bool {
	for _, field := range record {
		if field != "" {
			return false
		}
	}
	return true
}
