// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

// Package logging provides centralized zerolog-based structured logging for trackrec.
//
// The package keeps a single global logger that every command and component
// derives child loggers from. JSON output is the default; console output is
// intended for interactive use of the CLI.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "console",
//	})
//
//	logging.Info().Str("scorer", "hybrid").Msg("scorer registered")
//	logging.Ctx(ctx).Debug().Int("user_id", 42).Msg("recommendation complete")
//
// # Components
//
// Long-lived components receive a zerolog.Logger by value and attach a
// component field once:
//
//	logger := logging.WithComponent("evaluate")
//
// # Context Propagation
//
// A run id groups every log line of one CLI invocation. Request ids of single
// recommendation queries are assigned by the engine.
//
//	ctx = logging.ContextWithNewRunID(ctx)
//	logging.Ctx(ctx).Info().Msg("evaluation started")
//
// Always terminate log chains with .Msg() or .Send().
package logging
