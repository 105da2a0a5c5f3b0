// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // DuckDB driver

	"github.com/lspp60/trackrec/internal/metrics"
	"github.com/lspp60/trackrec/internal/recommend"
)

// queryTimeout bounds a single file scan.
const queryTimeout = 5 * time.Minute

// DuckDBLoader reads the same files through an in-memory DuckDB instance.
// read_csv_auto sniffs the delimiter, quoting and header, so files with
// non-standard dialects load without configuration.
type DuckDBLoader struct {
	conn *sql.DB
}

// NewDuckDBLoader opens an in-memory DuckDB database.
func NewDuckDBLoader() (*DuckDBLoader, error) {
	conn, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping duckdb: %w", err)
	}
	return &DuckDBLoader{conn: conn}, nil
}

// LoadInteractions reads user_id, track_id, rating and an optional timestamp.
func (l *DuckDBLoader) LoadInteractions(ctx context.Context, path string) ([]recommend.Interaction, error) {
	return queryCSV(ctx, l.conn, path, interactionSchema, parseInteraction)
}

// LoadItems reads track_id and optional title, genre and artist.
func (l *DuckDBLoader) LoadItems(ctx context.Context, path string) ([]recommend.Item, error) {
	return queryCSV(ctx, l.conn, path, itemSchema, parseItem)
}

// LoadPredictions reads user_id, track_id and estimate.
func (l *DuckDBLoader) LoadPredictions(ctx context.Context, path string) ([]recommend.Prediction, error) {
	return queryCSV(ctx, l.conn, path, predictionSchema, parsePrediction)
}

// LoadSimilarities reads item_a, item_b and score.
func (l *DuckDBLoader) LoadSimilarities(ctx context.Context, path string) ([]recommend.SimilarityEntry, error) {
	return queryCSV(ctx, l.conn, path, similaritySchema, parseSimilarity)
}

// Close closes the database.
func (l *DuckDBLoader) Close() error {
	return l.conn.Close()
}

// quoteLiteral renders s as a SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// queryCSV scans path with read_csv_auto. Every column is read as text and
// parsed by the same row parsers as the CSV loader, so both loaders accept
// the same values.
func queryCSV[T any](ctx context.Context, conn *sql.DB, path string, schema tableSchema, parse rowParser[T]) ([]T, error) {
	start := time.Now()

	query := fmt.Sprintf(
		"SELECT * FROM read_csv_auto(%s, header = true, all_varchar = true)",
		quoteLiteral(path),
	)

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", schema.table, err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns %s: %w", schema.table, err)
	}
	cols, err := schema.resolve(header)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	values := make([]sql.NullString, len(header))
	dest := make([]any, len(header))
	for i := range values {
		dest[i] = &values[i]
	}
	record := make([]string, len(header))

	var out []T
	for line := 2; rows.Next(); line++ {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", schema.table, err)
		}
		for i, v := range values {
			record[i] = v.String
		}
		if isBlank(record) {
			continue
		}

		row, col, err := parse(record, cols)
		if err != nil {
			return nil, &RowError{Path: path, Line: line, Column: col, Err: err}
		}
		out = append(out, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", schema.table, err)
	}

	metrics.RecordDatasetLoad(schema.table, len(out), time.Since(start))
	return out, nil
}
