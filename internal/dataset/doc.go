// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

// Package dataset loads and holds the flat-file inputs of a run: ratings,
// track metadata, and optional precomputed predictions and similarities.
//
// # Loaders
//
// Two loaders read the same files:
//
//   - CSVLoader: encoding/csv, streaming row by row
//   - DuckDBLoader: DuckDB read_csv_auto, handling quoting and dialect detection
//
// Columns are matched by name, case-insensitively, with aliases
// (track_id, item_id and id all name the item column).
//
// # Stores
//
// InteractionStore and ItemStore are immutable after construction.
// Dataset combines them into the recommend.DataProvider the engine reads.
//
// # Split
//
// Split partitions each user's positive ratings into train and test.
// The split is stratified by user and reproducible for a given seed.
package dataset
