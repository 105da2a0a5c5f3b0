// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package evaluate

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/lspp60/trackrec/internal/logging"
	"github.com/lspp60/trackrec/internal/metrics"
	"github.com/lspp60/trackrec/internal/recommend"
)

// outcomeEvaluated labels users that were scored.
const outcomeEvaluated = "evaluated"

// Runner evaluates registered scorers of an engine against held-out items.
type Runner struct {
	engine    *recommend.Engine
	evaluator *Evaluator
	alpha     float64
	logger    zerolog.Logger
}

// NewRunner creates a runner. alpha is the hybrid blend weight of every request.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRunner(engine *recommend.Engine, evaluator *Evaluator, alpha float64, logger zerolog.Logger) (*Runner, error) {
	if engine == nil || evaluator == nil {
		return nil, fmt.Errorf("runner: engine and evaluator are required")
	}
	if !(alpha >= 0 && alpha <= 1) {
		return nil, &recommend.ConfigError{Field: "alpha", Reason: fmt.Sprintf("must be within [0, 1], got %g", alpha)}
	}
	return &Runner{
		engine:    engine,
		evaluator: evaluator,
		alpha:     alpha,
		logger:    logger.With().Str("component", "evaluate").Logger(),
	}, nil
}

// Run evaluates each scorer over the users of truth, in ascending user order.
// Only users with held-out items are evaluated. An unknown scorer fails the
// run before any user is scored.
func (r *Runner) Run(ctx context.Context, truth map[int][]int, scorers []string) (*Summary, error) {
	start := time.Now()

	users := make([]int, 0, len(truth))
	for u, items := range truth {
		if len(items) > 0 {
			users = append(users, u)
		}
	}
	sort.Ints(users)

	summary := &Summary{
		Alpha:     r.alpha,
		Ks:        r.evaluator.Ks(),
		Users:     len(users),
		Reports:   make([]*Report, 0, len(scorers)),
		StartedAt: start.UTC(),
	}

	for _, scorer := range scorers {
		report, err := r.RunScorer(ctx, scorer, users, truth)
		if err != nil {
			return nil, fmt.Errorf("evaluate %s: %w", scorer, err)
		}
		summary.Reports = append(summary.Reports, report)
	}

	summary.Duration = time.Since(start)
	logger := r.log(ctx)
	logger.Info().
		Int("users", summary.Users).
		Int("scorers", len(summary.Reports)).
		Dur("duration", summary.Duration).
		Msg("evaluation complete")

	return summary, nil
}

// RunScorer evaluates one scorer for users. Per-user failures are recorded
// in the report; configuration errors and cancellation abort the run.
func (r *Runner) RunScorer(ctx context.Context, scorer string, users []int, truth map[int][]int) (*Report, error) {
	start := time.Now()

	req := r.engine.NewRequest(0)
	req.Scorer = scorer
	req.Alpha = r.alpha
	req.TopN = r.evaluator.MaxK()

	batch, err := r.engine.RecommendAll(ctx, users, req)
	if err != nil {
		return nil, err
	}

	results := make([]*UserResult, 0, len(batch))
	var failures []UserFailure
	for _, b := range batch {
		if b.Err != nil {
			failures = append(failures, newFailure(b.UserID, fmt.Errorf("user %d: %w", b.UserID, b.Err)))
			continue
		}
		if b.Result == nil {
			failures = append(failures, newFailure(b.UserID, fmt.Errorf("user %d: %w", b.UserID, ErrMissingRanking)))
			continue
		}
		res, err := r.evaluator.EvaluateUser(b.UserID, b.Result.ItemIDs(), truth[b.UserID])
		if err != nil {
			failures = append(failures, newFailure(b.UserID, err))
			continue
		}
		results = append(results, res)
	}

	report := r.evaluator.Aggregate(results, failures)
	report.Scorer = scorer
	r.record(report)

	logger := r.log(ctx)
	event := logger.Info()
	if report.SkippedTotal() > 0 {
		event = logger.Warn().Interface("skipped", report.Skipped)
	}
	event.
		Str("scorer", scorer).
		Int("users", report.Users).
		Float64("mrr", report.MRR.Mean).
		Dur("duration", time.Since(start)).
		Msg("scorer evaluated")

	return report, nil
}

// log returns the runner logger tagged with the run id of ctx.
func (r *Runner) log(ctx context.Context) zerolog.Logger {
	if id := logging.RunIDFromContext(ctx); id != "" {
		return r.logger.With().Str("run_id", id).Logger()
	}
	return r.logger
}

// record exports the report to the metrics registry.
func (r *Runner) record(report *Report) {
	metrics.EvaluationUsersTotal.WithLabelValues(report.Scorer, outcomeEvaluated).Add(float64(report.Users))
	for _, f := range report.Failures {
		metrics.RecordEvaluationUser(report.Scorer, f.Reason)
	}

	metrics.SetEvaluationMetric(report.Scorer, MetricMRR, 0, report.MRR.Mean)
	for _, kr := range report.PerK {
		for _, name := range []string{MetricPrecision, MetricRecall, MetricMRR, MetricHitRate, MetricNDCG} {
			m, _ := kr.Metric(name)
			metrics.SetEvaluationMetric(report.Scorer, name, kr.K, m.Mean)
		}
	}
}
