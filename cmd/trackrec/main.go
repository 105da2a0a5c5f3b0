// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

// Package main is the entry point for the trackrec command line tool.
//
// trackrec ranks music tracks for a user by blending a collaborative rating
// estimate with content similarity to the tracks the user already rated, and
// evaluates the ranking quality of the available scorers offline.
//
// # Application Architecture
//
// Every command initializes components in the following order:
//
//  1. Configuration: defaults, optional YAML file and TRACKREC_* variables (Koanf v2)
//  2. Logging: zerolog configured from the logging section
//  3. Dataset: interactions, items and optional artifact tables (csv or DuckDB loader)
//  4. Providers: content similarity (precomputed table or TF-IDF), rating
//     predictor (precomputed table over the bias baseline), co-rating similarity
//  5. Engine: scorers hybrid, content, collaborative and knn registered
//
// The evaluate command splits the interactions into train and test first and
// builds the providers from the train part only.
//
// # Commands
//
//	trackrec recommend --user 7 --alpha 0.7 --top-n 10
//	trackrec score --user 7 --item 42
//	trackrec similar --item 42 --top-n 5
//	trackrec evaluate --k 1,5,10,20 --scorers hybrid,content,collaborative,knn
//
// Global flags select the config file (--config), the output format
// (--format table|json) and an optional Prometheus textfile (--metrics-out).
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the command context. Batch work stops scheduling
// new users and the command exits with the cancellation error.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/lspp60/trackrec/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.ContextWithNewRunID(ctx)

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("command failed")
		stop()
		os.Exit(1)
	}
}
