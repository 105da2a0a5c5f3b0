// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package recommend

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lspp60/trackrec/internal/cache"
	"github.com/lspp60/trackrec/internal/logging"
	"github.com/lspp60/trackrec/internal/metrics"
)

// scorerSimilar labels metrics of Similar queries.
const scorerSimilar = "similar"

// Engine ranks candidates for users with registered scorers.
// It is safe for concurrent use: the data it reads is immutable and every
// scoring call keeps its accumulators private.
type Engine struct {
	config *Config
	logger zerolog.Logger

	data       DataProvider
	similarity SimilarityProvider

	scorers     map[string]Scorer
	scorerOrder []string
	scorerMu    sync.RWMutex

	cache *cache.LRU[string, *Result]

	requestCount atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	coldStarts   atomic.Int64
	errorCount   atomic.Int64
}

// Request describes one recommendation query.
type Request struct {
	// RequestID is a unique identifier for tracing. Generated when empty.
	RequestID string `json:"request_id,omitempty"`

	// UserID is the user to recommend for.
	UserID int `json:"user_id"`

	// Scorer names the registered scorer. Defaults to Config.DefaultScorer.
	Scorer string `json:"scorer,omitempty"`

	// Alpha is the collaborative weight in [0,1]; read by the hybrid scorer.
	Alpha float64 `json:"alpha" validate:"gte=0,lte=1"`

	// TopN is the maximum list length.
	TopN int `json:"top_n" validate:"gt=0"`
}

// BatchResult is the outcome for one user of RecommendAll.
type BatchResult struct {
	UserID int
	Result *Result
	Err    error
}

// Stats contains engine counters.
type Stats struct {
	Requests    int64 `json:"requests"`
	CacheHits   int64 `json:"cache_hits"`
	CacheMisses int64 `json:"cache_misses"`
	ColdStarts  int64 `json:"cold_starts"`
	Errors      int64 `json:"errors"`
}

// NewEngine creates a recommendation engine over a training view.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, data DataProvider, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if data == nil {
		return nil, fmt.Errorf("data provider not set")
	}

	e := &Engine{
		config:  cfg,
		logger:  logger.With().Str("component", "recommend").Logger(),
		data:    data,
		scorers: make(map[string]Scorer),
	}
	if cfg.Cache.Enabled && cfg.Cache.Capacity > 0 {
		e.cache = cache.NewLRU[string, *Result](cfg.Cache.Capacity, 0)
	}
	return e, nil
}

// SetSimilarityProvider sets the provider used by Similar.
func (e *Engine) SetSimilarityProvider(p SimilarityProvider) {
	e.scorerMu.Lock()
	defer e.scorerMu.Unlock()
	e.similarity = p
}

// RegisterScorer adds a scorer, replacing any scorer with the same name.
// Replacing a scorer drops every cached result.
func (e *Engine) RegisterScorer(s Scorer) {
	e.scorerMu.Lock()
	defer e.scorerMu.Unlock()

	if _, exists := e.scorers[s.Name()]; !exists {
		e.scorerOrder = append(e.scorerOrder, s.Name())
	} else if e.cache != nil {
		e.cache.Clear()
	}
	e.scorers[s.Name()] = s
	e.logger.Info().
		Str("scorer", s.Name()).
		Msg("registered scorer")
}

// Scorers returns the registered scorer names in registration order.
func (e *Engine) Scorers() []string {
	e.scorerMu.RLock()
	defer e.scorerMu.RUnlock()

	names := make([]string, len(e.scorerOrder))
	copy(names, e.scorerOrder)
	return names
}

// NewRequest returns a request for userID with the configured defaults.
func (e *Engine) NewRequest(userID int) Request {
	return Request{
		UserID: userID,
		Scorer: e.config.DefaultScorer,
		Alpha:  e.config.Alpha,
		TopN:   e.config.TopN,
	}
}

// Recommend returns the top-N ranked items for a user, never including
// items the user rated in the training data.
// An unknown user is a cold start, not an error.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	e.requestCount.Add(1)

	req = e.prepareRequest(req)
	logger := e.createRequestLogger(ctx, req)

	scorer, err := e.lookup(req)
	if err != nil {
		e.recordFailure(req.Scorer, start, err)
		return nil, err
	}

	if resp := e.tryGetCachedResult(req, start, logger); resp != nil {
		return resp, nil
	}

	rated := e.data.RatedItems(req.UserID)
	cold := len(rated) == 0
	candidates := filterCandidates(e.data.AllItems(), buildExclusionSet(rated))

	scores, err := scorer.Score(ctx, Query{
		UserID:     req.UserID,
		Alpha:      req.Alpha,
		Rated:      rated,
		Candidates: candidates,
	})
	if err != nil {
		e.recordFailure(req.Scorer, start, err)
		return nil, fmt.Errorf("score candidates for user %d: %w", req.UserID, err)
	}

	result := &Result{
		RequestID:  req.RequestID,
		UserID:     req.UserID,
		Scorer:     scorer.Name(),
		Alpha:      req.Alpha,
		Items:      Rank(scores, req.TopN),
		Candidates: len(candidates),
		ColdStart:  cold,
		LatencyMS:  time.Since(start).Milliseconds(),
	}

	if cold {
		e.coldStarts.Add(1)
		metrics.RecordColdStart(scorer.Name())
		logger.Debug().Msg("cold start: no training history")
	}
	metrics.RecordRecommendRequest(scorer.Name(), time.Since(start), len(candidates), nil)
	e.cacheResult(req, result)

	logger.Debug().
		Int("candidates", len(candidates)).
		Int("returned", len(result.Items)).
		Bool("cold_start", cold).
		Int64("latency_ms", result.LatencyMS).
		Msg("recommendation complete")

	return result, nil
}

// RecommendItems is the plain form of Recommend with the default scorer.
func (e *Engine) RecommendItems(ctx context.Context, userID int, alpha float64, topN int) ([]int, error) {
	req := e.NewRequest(userID)
	req.Alpha = alpha
	req.TopN = topN

	res, err := e.Recommend(ctx, req)
	if err != nil {
		return nil, err
	}
	return res.ItemIDs(), nil
}

// RecommendAll runs Recommend for every user with at most Config.Workers in flight.
// Results are positional: out[i] belongs to users[i]. A failing user is recorded
// in its BatchResult and does not stop the others. Once ctx is cancelled no new
// users are scheduled and ctx.Err() is returned with the partial results;
// unscheduled slots carry their UserID and ctx.Err().
//
//nolint:gocritic // hugeParam: template passed by value for immutability
func (e *Engine) RecommendAll(ctx context.Context, users []int, template Request) ([]BatchResult, error) {
	if _, err := e.lookup(e.prepareRequest(template)); err != nil {
		return nil, err
	}

	out := make([]BatchResult, len(users))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers())

	scheduled := 0
	for i, userID := range users {
		if gctx.Err() != nil {
			break
		}
		scheduled++
		req := template
		req.UserID = userID
		req.RequestID = ""
		g.Go(func() error {
			res, err := e.Recommend(gctx, req)
			out[i] = BatchResult{UserID: userID, Result: res, Err: err}
			return nil
		})
	}

	_ = g.Wait() // per-user errors live in out
	if err := ctx.Err(); err != nil {
		for i := scheduled; i < len(users); i++ {
			out[i] = BatchResult{UserID: users[i], Err: err}
		}
		return out, err
	}
	return out, nil
}

// Score returns the score breakdown of a single (user, item) pair.
// An unknown item is ErrNotFound.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Score(ctx context.Context, req Request, itemID int) (*CandidateScore, error) {
	req = e.prepareRequest(req)

	scorer, err := e.lookup(req)
	if err != nil {
		return nil, err
	}
	if !e.data.HasItem(itemID) {
		return nil, fmt.Errorf("item %d: %w", itemID, ErrNotFound)
	}

	scores, err := scorer.Score(ctx, Query{
		UserID:     req.UserID,
		Alpha:      req.Alpha,
		Rated:      e.data.RatedItems(req.UserID),
		Candidates: []int{itemID},
	})
	if err != nil {
		return nil, fmt.Errorf("score item %d for user %d: %w", itemID, req.UserID, err)
	}
	if len(scores) != 1 {
		return nil, fmt.Errorf("score item %d: scorer %s returned %d scores", itemID, scorer.Name(), len(scores))
	}
	return &scores[0], nil
}

// Similar returns the topN items most similar to itemID ("more like this"),
// excluding the item itself. An unknown item is ErrNotFound.
func (e *Engine) Similar(ctx context.Context, itemID, topN int) ([]ScoredItem, error) {
	start := time.Now()

	if topN <= 0 {
		return nil, invalidConfig("top_n", "must be positive, got %d", topN)
	}

	e.scorerMu.RLock()
	sim := e.similarity
	e.scorerMu.RUnlock()
	if sim == nil {
		return nil, fmt.Errorf("similarity provider not set")
	}

	if !e.data.HasItem(itemID) {
		err := fmt.Errorf("item %d: %w", itemID, ErrNotFound)
		metrics.RecordRecommendRequest(scorerSimilar, time.Since(start), 0, err)
		return nil, err
	}

	all := e.data.AllItems()
	m := NewScoreMap(len(all))
	for i, id := range all {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if id != itemID {
			m.Set(id, clamp01(sim.Similarity(itemID, id)))
		}
	}

	items := Rank(m.Candidates(0), topN)
	metrics.RecordRecommendRequest(scorerSimilar, time.Since(start), m.Len(), nil)
	return items, nil
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Requests:    e.requestCount.Load(),
		CacheHits:   e.cacheHits.Load(),
		CacheMisses: e.cacheMisses.Load(),
		ColdStarts:  e.coldStarts.Load(),
		Errors:      e.errorCount.Load(),
	}
}

// prepareRequest applies defaults and generates a request ID if needed.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) Request {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	if req.Scorer == "" {
		req.Scorer = e.config.DefaultScorer
	}
	return req
}

// lookup validates the request and resolves its scorer.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) lookup(req Request) (Scorer, error) {
	if err := validateParams(&req); err != nil {
		return nil, err
	}

	e.scorerMu.RLock()
	defer e.scorerMu.RUnlock()

	scorer, ok := e.scorers[req.Scorer]
	if !ok {
		return nil, invalidConfig("scorer", "unknown scorer %q", req.Scorer)
	}
	return scorer, nil
}

// createRequestLogger creates a logger with request context.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) createRequestLogger(ctx context.Context, req Request) zerolog.Logger {
	lc := e.logger.With().
		Str("request_id", req.RequestID).
		Int("user_id", req.UserID).
		Str("scorer", req.Scorer)
	if id := logging.RunIDFromContext(ctx); id != "" {
		lc = lc.Str("run_id", id)
	}
	return lc.Logger()
}

// cacheKey identifies a result by every request field that affects it.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func cacheKey(req Request) string {
	return fmt.Sprintf("%s|%d|%g|%d", req.Scorer, req.UserID, req.Alpha, req.TopN)
}

// tryGetCachedResult attempts to serve a cached result.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) tryGetCachedResult(req Request, start time.Time, logger zerolog.Logger) *Result {
	if e.cache == nil {
		return nil
	}

	cached, ok := e.cache.Get(cacheKey(req))
	if !ok {
		e.cacheMisses.Add(1)
		metrics.RecordCacheMiss()
		return nil
	}

	e.cacheHits.Add(1)
	metrics.RecordCacheHit()

	res := cached.clone()
	res.RequestID = req.RequestID
	res.CacheHit = true
	res.LatencyMS = time.Since(start).Milliseconds()
	if res.ColdStart {
		e.coldStarts.Add(1)
		metrics.RecordColdStart(res.Scorer)
	}
	metrics.RecordRecommendRequest(res.Scorer, time.Since(start), res.Candidates, nil)
	logger.Debug().Msg("cache hit")
	return res
}

// cacheResult stores a copy of the result if caching is enabled.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) cacheResult(req Request, res *Result) {
	if e.cache != nil {
		e.cache.Add(cacheKey(req), res.clone())
	}
}

func (e *Engine) recordFailure(scorer string, start time.Time, err error) {
	e.errorCount.Add(1)
	metrics.RecordRecommendRequest(scorer, time.Since(start), 0, err)
}

func (e *Engine) workers() int {
	if e.config.Workers > 0 {
		return e.config.Workers
	}
	return runtime.NumCPU()
}

// buildExclusionSet collects the items a user already rated.
func buildExclusionSet(rated []Rating) map[int]struct{} {
	exclude := make(map[int]struct{}, len(rated))
	for _, r := range rated {
		exclude[r.ItemID] = struct{}{}
	}
	return exclude
}

// filterCandidates removes excluded items, keeping catalog order.
func filterCandidates(items []int, exclude map[int]struct{}) []int {
	filtered := make([]int, 0, len(items))
	for _, id := range items {
		if _, excluded := exclude[id]; !excluded {
			filtered = append(filtered, id)
		}
	}
	return filtered
}
