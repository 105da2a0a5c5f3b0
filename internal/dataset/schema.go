// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/lspp60/trackrec/internal/recommend"
)

// Table names used in metrics and logs.
const (
	TableInteractions = "interactions"
	TableItems        = "items"
	TablePredictions  = "predictions"
	TableSimilarities = "similarities"
)

// column is a logical column and the header names that map to it.
type column struct {
	name     string
	aliases  []string
	required bool
}

// tableSchema lists the columns a table is read with.
type tableSchema struct {
	table   string
	columns []column
}

var (
	interactionSchema = tableSchema{
		table: TableInteractions,
		columns: []column{
			{name: "user_id", aliases: []string{"user_id", "user", "userid"}, required: true},
			{name: "item_id", aliases: []string{"track_id", "item_id", "item", "trackid"}, required: true},
			{name: "rating", aliases: []string{"rating", "score", "play_count", "plays"}, required: true},
			{name: "timestamp", aliases: []string{"timestamp", "ts", "time", "rated_at"}},
		},
	}

	itemSchema = tableSchema{
		table: TableItems,
		columns: []column{
			{name: "item_id", aliases: []string{"track_id", "item_id", "id", "trackid"}, required: true},
			{name: "title", aliases: []string{"title", "track_name", "name"}},
			{name: "genre", aliases: []string{"genre", "genres"}},
			{name: "artist", aliases: []string{"artist", "artist_name", "artists"}},
		},
	}

	predictionSchema = tableSchema{
		table: TablePredictions,
		columns: []column{
			{name: "user_id", aliases: []string{"user_id", "user", "uid"}, required: true},
			{name: "item_id", aliases: []string{"track_id", "item_id", "item", "iid"}, required: true},
			{name: "estimate", aliases: []string{"estimate", "est", "prediction", "score"}, required: true},
		},
	}

	similaritySchema = tableSchema{
		table: TableSimilarities,
		columns: []column{
			{name: "item_a", aliases: []string{"item_a", "track_a", "item_id_a", "source"}, required: true},
			{name: "item_b", aliases: []string{"item_b", "track_b", "item_id_b", "target"}, required: true},
			{name: "score", aliases: []string{"score", "similarity", "sim"}, required: true},
		},
	}
)

// columnIndex maps logical column names to record positions. -1 marks an
// absent optional column.
type columnIndex map[string]int

// resolve matches a header row against the schema.
func (s tableSchema) resolve(header []string) (columnIndex, error) {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := positions[h]; !dup {
			positions[h] = i
		}
	}

	idx := make(columnIndex, len(s.columns))
	for _, col := range s.columns {
		idx[col.name] = -1
		for _, alias := range col.aliases {
			if pos, ok := positions[alias]; ok {
				idx[col.name] = pos
				break
			}
		}
		if idx[col.name] < 0 && col.required {
			return nil, fmt.Errorf("%s: missing column %s (accepted: %s): %w",
				s.table, col.name, strings.Join(col.aliases, ", "), ErrInvalidData)
		}
	}
	return idx, nil
}

// value returns the trimmed field of a logical column, or "" when absent.
func (c columnIndex) value(record []string, name string) string {
	pos := c[name]
	if pos < 0 || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}

// rowParser converts one record into a typed row.
type rowParser[T any] func(record []string, cols columnIndex) (T, string, error)

func parseInteraction(record []string, cols columnIndex) (recommend.Interaction, string, error) {
	var inter recommend.Interaction
	var err error

	if inter.UserID, err = parseID(cols.value(record, "user_id")); err != nil {
		return inter, "user_id", err
	}
	if inter.ItemID, err = parseID(cols.value(record, "item_id")); err != nil {
		return inter, "item_id", err
	}
	if inter.Rating, err = parseFloat(cols.value(record, "rating")); err != nil {
		return inter, "rating", err
	}
	if inter.Timestamp, err = parseTimestamp(cols.value(record, "timestamp")); err != nil {
		return inter, "timestamp", err
	}
	return inter, "", nil
}

func parseItem(record []string, cols columnIndex) (recommend.Item, string, error) {
	id, err := parseID(cols.value(record, "item_id"))
	if err != nil {
		return recommend.Item{}, "item_id", err
	}
	return recommend.Item{
		ID:     id,
		Title:  cols.value(record, "title"),
		Genre:  cols.value(record, "genre"),
		Artist: cols.value(record, "artist"),
	}, "", nil
}

func parsePrediction(record []string, cols columnIndex) (recommend.Prediction, string, error) {
	var p recommend.Prediction
	var err error

	if p.UserID, err = parseID(cols.value(record, "user_id")); err != nil {
		return p, "user_id", err
	}
	if p.ItemID, err = parseID(cols.value(record, "item_id")); err != nil {
		return p, "item_id", err
	}
	if p.Estimate, err = parseFloat(cols.value(record, "estimate")); err != nil {
		return p, "estimate", err
	}
	return p, "", nil
}

func parseSimilarity(record []string, cols columnIndex) (recommend.SimilarityEntry, string, error) {
	var e recommend.SimilarityEntry
	var err error

	if e.ItemA, err = parseID(cols.value(record, "item_a")); err != nil {
		return e, "item_a", err
	}
	if e.ItemB, err = parseID(cols.value(record, "item_b")); err != nil {
		return e, "item_b", err
	}
	if e.Score, err = parseFloat(cols.value(record, "score")); err != nil {
		return e, "score", err
	}
	return e, "", nil
}

// parseID accepts integers, including integral floats such as "12.0".
func parseID(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty id")
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return int(f), nil
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return f, nil
}

// timestampLayouts are tried in order after unix seconds.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseTimestamp accepts unix seconds or a date-time. Empty is the zero time.
func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if sec, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(sec, 0).UTC(), nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		sec, frac := math.Modf(f)
		return time.Unix(int64(sec), int64(frac*1e9)).UTC(), nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}
