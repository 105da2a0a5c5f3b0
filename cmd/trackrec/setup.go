// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lspp60/trackrec/internal/config"
	"github.com/lspp60/trackrec/internal/dataset"
	"github.com/lspp60/trackrec/internal/logging"
	"github.com/lspp60/trackrec/internal/recommend"
	"github.com/lspp60/trackrec/internal/recommend/algorithms"
)

// components holds everything a command needs once the data is loaded.
type components struct {
	Engine *recommend.Engine
	Items  *dataset.ItemStore
	Train  *dataset.InteractionStore
}

// scorerRegistrar builds the providers and registers the scorers.
type scorerRegistrar struct {
	engine    *recommend.Engine
	cfg       *config.Config
	scale     recommend.RatingScale
	bundle    *dataset.Bundle
	train     *dataset.InteractionStore
	scorerSet map[string]bool
	logger    zerolog.Logger
}

// ratingScale returns the configured rating scale.
func ratingScale(cfg *config.Config) recommend.RatingScale {
	return recommend.RatingScale{Min: cfg.Recommend.RatingMin, Max: cfg.Recommend.RatingMax}
}

// loadBundle reads the configured files with the configured loader.
func loadBundle(ctx context.Context, cfg *config.Config) (*dataset.Bundle, error) {
	loader, err := dataset.NewLoader(cfg.Data.Loader)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := loader.Close(); cerr != nil {
			logging.Warn().Err(cerr).Msg("failed to close loader")
		}
	}()

	return dataset.Load(ctx, loader, dataset.Paths{
		Interactions: cfg.Data.InteractionsPath,
		Items:        cfg.Data.ItemsPath,
		Predictions:  cfg.Data.PredictionsPath,
		Similarity:   cfg.Data.SimilarityPath,
	}, ratingScale(cfg))
}

// initComponents builds the engine over train. scorers limits the scorers
// registered; nil registers all of them.
func initComponents(ctx context.Context, cfg *config.Config, bundle *dataset.Bundle, train *dataset.InteractionStore, scorers []string) (*components, error) {
	logger := logging.WithComponent("setup")
	start := time.Now()

	items := dataset.NewItemStore(bundle.Items)
	engine, err := recommend.NewEngine(buildEngineConfig(cfg), dataset.NewDataset(items, train), logging.Logger())
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}

	if scorers == nil {
		scorers = []string{recommend.ScorerHybrid, recommend.ScorerContent, recommend.ScorerCollaborative, recommend.ScorerKNN}
	}
	registrar := &scorerRegistrar{
		engine:    engine,
		cfg:       cfg,
		scale:     ratingScale(cfg),
		bundle:    bundle,
		train:     train,
		scorerSet: buildScorerSet(scorers),
		logger:    logger,
	}
	if err := registrar.registerAllScorers(ctx); err != nil {
		return nil, err
	}

	logger.Info().
		Int("items", items.Len()).
		Int("train_interactions", train.Len()).
		Strs("scorers", engine.Scorers()).
		Dur("duration", time.Since(start)).
		Msg("engine ready")

	return &components{Engine: engine, Items: items, Train: train}, nil
}

// buildEngineConfig creates the engine configuration from app config.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	return &recommend.Config{
		Alpha:         cfg.Recommend.Alpha,
		TopN:          cfg.Recommend.TopN,
		Scale:         ratingScale(cfg),
		DefaultScorer: cfg.Recommend.Scorer,
		Cache: recommend.CacheConfig{
			Enabled:  cfg.Recommend.CacheSize > 0,
			Capacity: cfg.Recommend.CacheSize,
		},
		Workers: cfg.Evaluate.Workers,
	}
}

// buildScorerSet converts the scorer slice to a set for O(1) lookup.
func buildScorerSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}

// registerAllScorers builds only the providers the enabled scorers need.
// The content similarity is always built because Similar reads it.
func (r *scorerRegistrar) registerAllScorers(ctx context.Context) error {
	sim, err := r.contentSimilarity(ctx)
	if err != nil {
		return err
	}
	r.engine.SetSimilarityProvider(sim)

	content, err := recommend.NewContentScorer(sim, r.scale)
	if err != nil {
		return err
	}

	var cf *recommend.CollaborativeScorer
	if r.scorerSet[recommend.ScorerHybrid] || r.scorerSet[recommend.ScorerCollaborative] {
		pred, err := r.predictor(ctx)
		if err != nil {
			return err
		}
		if cf, err = recommend.NewCollaborativeScorer(pred, r.scale); err != nil {
			return err
		}
	}

	if r.scorerSet[recommend.ScorerHybrid] {
		r.engine.RegisterScorer(recommend.NewHybridScorer(content, cf))
	}
	if r.scorerSet[recommend.ScorerContent] {
		r.engine.RegisterScorer(content)
	}
	if r.scorerSet[recommend.ScorerCollaborative] {
		r.engine.RegisterScorer(cf)
	}
	if r.scorerSet[recommend.ScorerKNN] {
		if err := r.registerKNN(ctx); err != nil {
			return err
		}
	}
	return nil
}

// contentSimilarity returns the precomputed similarity table when one was
// loaded, otherwise a TF-IDF cosine matrix over item text.
func (r *scorerRegistrar) contentSimilarity(ctx context.Context) (recommend.SimilarityProvider, error) {
	if len(r.bundle.Similarities) > 0 {
		table, err := algorithms.NewSimilarityTable(r.bundle.Similarities)
		if err != nil {
			return nil, fmt.Errorf("similarity table: %w", err)
		}
		r.logger.Info().Int("pairs", table.Len()).Msg("using precomputed content similarity")
		return table, nil
	}

	tfidf, err := algorithms.FitTFIDF(ctx, r.bundle.Items, algorithms.DefaultTFIDFConfig())
	if err != nil {
		return nil, fmt.Errorf("fit tf-idf: %w", err)
	}
	ids := make([]int, len(r.bundle.Items))
	for i, it := range r.bundle.Items {
		ids[i] = it.ID
	}
	matrix, err := algorithms.NewSimilarityMatrix(ctx, ids, tfidf, r.cfg.Evaluate.Workers)
	if err != nil {
		return nil, fmt.Errorf("similarity matrix: %w", err)
	}
	r.logger.Info().
		Int("items", matrix.Len()).
		Int("vocabulary", tfidf.VocabularySize()).
		Msg("computed tf-idf content similarity")
	return matrix, nil
}

// predictor returns the precomputed prediction table over the baseline,
// or the baseline alone.
func (r *scorerRegistrar) predictor(ctx context.Context) (recommend.Predictor, error) {
	baseline, err := algorithms.FitBaseline(ctx, r.train.Interactions(), r.scale, algorithms.BaselineConfig{
		UserDamping: r.cfg.Recommend.Baseline.UserDamping,
		ItemDamping: r.cfg.Recommend.Baseline.ItemDamping,
	})
	if err != nil {
		return nil, fmt.Errorf("fit baseline: %w", err)
	}
	if len(r.bundle.Predictions) == 0 {
		r.logger.Info().Float64("mean", baseline.Mean()).Msg("using baseline predictor")
		return baseline, nil
	}

	table, err := algorithms.NewPredictionTable(r.bundle.Predictions, baseline)
	if err != nil {
		return nil, fmt.Errorf("prediction table: %w", err)
	}
	r.logger.Info().Int("predictions", table.Len()).Msg("using precomputed predictions")
	return table, nil
}

// registerKNN builds co-rating similarity from train and registers the knn scorer.
func (r *scorerRegistrar) registerKNN(ctx context.Context) error {
	knnCfg := r.cfg.Recommend.KNN
	sim, err := algorithms.NewCoRatingSimilarity(ctx, r.train.Interactions(), algorithms.CoRatingConfig{
		Shrinkage:      knnCfg.Shrinkage,
		MinCommonUsers: knnCfg.MinCommonUsers,
		NumWorkers:     r.cfg.Evaluate.Workers,
	})
	if err != nil {
		return fmt.Errorf("co-rating similarity: %w", err)
	}
	knn, err := recommend.NewKnnScorer(sim, r.scale, knnCfg.Neighbors)
	if err != nil {
		return err
	}
	r.engine.RegisterScorer(knn)
	r.logger.Info().
		Int("items", sim.Len()).
		Int("pairs", sim.Pairs()).
		Int("neighbors", knnCfg.Neighbors).
		Msg("co-rating similarity ready")
	return nil
}
