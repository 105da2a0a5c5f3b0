// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package algorithms

import (
	"context"
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/lspp60/trackrec/internal/recommend"
)

// TFIDFConfig contains configuration for the text vectorizer.
type TFIDFConfig struct {
	// MaxNGram is the longest word n-gram extracted (1 or 2).
	// Default: 2.
	MaxNGram int

	// StopWords drops common English words before n-grams are built.
	// Default: true.
	StopWords bool
}

// DefaultTFIDFConfig returns the default vectorizer configuration.
func DefaultTFIDFConfig() TFIDFConfig {
	return TFIDFConfig{
		MaxNGram:  2,
		StopWords: true,
	}
}

// TFIDF holds an L2-normalized TF-IDF vector per item, built from the
// item's title, genre and artist.
//
// Term weights use smoothed inverse document frequency:
//
//	idf(t) = ln((1 + n) / (1 + df(t))) + 1
//
// so the cosine similarity of two items is the dot product of their vectors.
type TFIDF struct {
	config     TFIDFConfig
	vocabulary map[string]int
	idf        []float64
	vectors    map[int]sparseVector
}

// FitTFIDF builds the vocabulary and item vectors.
// Items with a duplicate id replace the earlier entry.
//
//nolint:gocritic // rangeValCopy: Item passed by value in range, acceptable for clarity
func FitTFIDF(ctx context.Context, items []recommend.Item, cfg TFIDFConfig) (*TFIDF, error) {
	if cfg.MaxNGram <= 0 {
		cfg.MaxNGram = 1
	}
	if cfg.MaxNGram > 2 {
		cfg.MaxNGram = 2
	}

	docs := make(map[int][]string, len(items))
	for _, item := range items {
		docs[item.ID] = terms(item.Text(), cfg)
	}
	if ContextCancelled(ctx) {
		return nil, ctx.Err()
	}

	// Document frequencies
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{}, len(doc))
		for _, term := range doc {
			if _, ok := seen[term]; !ok {
				seen[term] = struct{}{}
				df[term]++
			}
		}
	}

	vocab := make([]string, 0, len(df))
	for term := range df {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)

	t := &TFIDF{
		config:     cfg,
		vocabulary: make(map[string]int, len(vocab)),
		idf:        make([]float64, len(vocab)),
		vectors:    make(map[int]sparseVector, len(docs)),
	}
	n := float64(len(docs))
	for i, term := range vocab {
		t.vocabulary[term] = i
		t.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	for id, doc := range docs {
		if ContextCancelled(ctx) {
			return nil, ctx.Err()
		}
		t.vectors[id] = t.vectorize(doc)
	}
	return t, nil
}

// vectorize weighs term counts by idf and L2-normalizes the result.
func (t *TFIDF) vectorize(doc []string) sparseVector {
	counts := make(map[int]float64, len(doc))
	for _, term := range doc {
		if idx, ok := t.vocabulary[term]; ok {
			counts[idx]++
		}
	}

	v := sparseVector{
		indices: make([]int, 0, len(counts)),
		values:  make([]float64, 0, len(counts)),
	}
	for idx := range counts {
		v.indices = append(v.indices, idx)
	}
	sort.Ints(v.indices)
	for _, idx := range v.indices {
		v.values = append(v.values, counts[idx]*t.idf[idx])
	}

	if norm := v.norm(); norm > 0 {
		for i := range v.values {
			v.values[i] /= norm
		}
	}
	return v
}

// Similarity returns the cosine similarity of two items.
// An item is fully similar to itself; unknown items score 0.
func (t *TFIDF) Similarity(a, b int) float64 {
	va, ok := t.vectors[a]
	if !ok {
		return 0
	}
	if a == b {
		return 1
	}
	vb, ok := t.vectors[b]
	if !ok {
		return 0
	}
	return math.Max(0, math.Min(1, va.dot(vb)))
}

// Has reports whether the item was vectorized.
func (t *TFIDF) Has(itemID int) bool {
	_, ok := t.vectors[itemID]
	return ok
}

// VocabularySize returns the number of distinct terms.
func (t *TFIDF) VocabularySize() int {
	return len(t.vocabulary)
}

// Terms returns the item's terms ordered by descending weight, at most limit.
func (t *TFIDF) Terms(itemID, limit int) []string {
	v, ok := t.vectors[itemID]
	if !ok {
		return nil
	}

	order := make([]int, len(v.indices))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return v.values[order[i]] > v.values[order[j]]
	})
	if limit > 0 && len(order) > limit {
		order = order[:limit]
	}

	byIndex := make([]string, len(t.vocabulary))
	for term, idx := range t.vocabulary {
		byIndex[idx] = term
	}
	out := make([]string, len(order))
	for i, pos := range order {
		out[i] = byIndex[v.indices[pos]]
	}
	return out
}

// terms extracts unigrams and, if configured, bigrams from text.
func terms(text string, cfg TFIDFConfig) []string {
	words := tokenize(text)
	if cfg.StopWords {
		kept := words[:0]
		for _, w := range words {
			if _, stop := englishStopWords[w]; !stop {
				kept = append(kept, w)
			}
		}
		words = kept
	}

	out := make([]string, 0, len(words)*cfg.MaxNGram)
	out = append(out, words...)
	if cfg.MaxNGram >= 2 {
		for i := 0; i+1 < len(words); i++ {
			out = append(out, words[i]+" "+words[i+1])
		}
	}
	return out
}

// tokenize case-folds text, strips accents and splits it into words of
// at least two letters or digits.
func tokenize(text string) []string {
	stripAccents := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(stripAccents, text)
	if err != nil {
		folded = text
	}
	folded = cases.Fold().String(folded)

	fields := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	words := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= 2 {
			words = append(words, f)
		}
	}
	return words
}
