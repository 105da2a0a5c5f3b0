// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-json"

	"github.com/lspp60/trackrec/internal/dataset"
	"github.com/lspp60/trackrec/internal/recommend"
	"github.com/lspp60/trackrec/internal/recommend/evaluate"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8A8A8A"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F4B36E"))
)

// renderTable draws rows under headers with a thin border.
func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// itemLabel returns the title and genre of id, empty when unknown.
func itemLabel(items *dataset.ItemStore, id int) (title, genre string) {
	if it, ok := items.Item(id); ok {
		return it.Title, it.Genre
	}
	return "", ""
}

// rankedRows renders a ranked list with item metadata.
func rankedRows(items *dataset.ItemStore, ranked []recommend.ScoredItem) [][]string {
	rows := make([][]string, len(ranked))
	for i, it := range ranked {
		title, genre := itemLabel(items, it.ItemID)
		rows[i] = []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(it.ItemID),
			title,
			genre,
			formatScore(it.Score),
			formatScore(it.CF),
			formatScore(it.Content),
		}
	}
	return rows
}

var rankedHeaders = []string{"#", "Track", "Title", "Genre", "Score", "CF", "Content"}

func printResult(w io.Writer, items *dataset.ItemStore, res *recommend.Result) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Recommendations for user %d (%s, alpha %.2f)", res.UserID, res.Scorer, res.Alpha)))
	if res.ColdStart {
		fmt.Fprintln(w, warnStyle.Render("cold start: user has no training history"))
	}
	if len(res.Items) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("no candidates"))
		return
	}
	fmt.Fprintln(w, renderTable(rankedHeaders, rankedRows(items, res.Items)))
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%d candidates scored in %dms", res.Candidates, res.LatencyMS)))
}

func printScore(w io.Writer, items *dataset.ItemStore, scorer string, cs *recommend.CandidateScore) {
	title, genre := itemLabel(items, cs.ItemID)
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("User %d, track %d (%s)", cs.UserID, cs.ItemID, scorer)))
	fmt.Fprintln(w, renderTable(
		[]string{"Title", "Genre", "Score", "CF", "Content"},
		[][]string{{title, genre, formatScore(cs.Score), formatScore(cs.CF), formatScore(cs.Content)}},
	))
}

func printSimilar(w io.Writer, items *dataset.ItemStore, itemID int, similar []recommend.ScoredItem) {
	title, _ := itemLabel(items, itemID)
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Tracks similar to %d %s", itemID, title)))
	if len(similar) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("no similar tracks"))
		return
	}

	rows := make([][]string, len(similar))
	for i, it := range similar {
		t, g := itemLabel(items, it.ItemID)
		rows[i] = []string{strconv.Itoa(i + 1), strconv.Itoa(it.ItemID), t, g, formatScore(it.Score)}
	}
	fmt.Fprintln(w, renderTable([]string{"#", "Track", "Title", "Genre", "Similarity"}, rows))
}

// summaryCell renders a mean, or n/a when no user had a defined value.
func summaryCell(m evaluate.MetricSummary) string {
	if m.Users == 0 {
		return "n/a"
	}
	return formatScore(m.Mean)
}

func printSummary(w io.Writer, s *evaluate.Summary) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Evaluation over %d users (alpha %.2f)", s.Users, s.Alpha)))

	for _, r := range s.Reports {
		rows := make([][]string, len(r.PerK))
		for i, kr := range r.PerK {
			rows[i] = []string{
				strconv.Itoa(kr.K),
				summaryCell(kr.Precision),
				summaryCell(kr.Recall),
				summaryCell(kr.MRR),
				summaryCell(kr.HitRate),
				summaryCell(kr.NDCG),
			}
		}

		fmt.Fprintln(w)
		fmt.Fprintln(w, headerStyle.Render(r.Scorer))
		fmt.Fprintln(w, renderTable([]string{"K", "Precision", "Recall", "MRR", "Hit rate", "NDCG"}, rows))
		fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("MRR %s over %d users", summaryCell(r.MRR), r.Users)))
		if n := r.SkippedTotal(); n > 0 {
			fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("skipped %d users: %v", n, r.Skipped)))
		}
		if len(r.PerK) > 0 && r.PerK[0].Recall.Undefined > 0 {
			fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("recall and NDCG undefined for %d users", r.PerK[0].Recall.Undefined)))
		}
	}
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("completed in %s", s.Duration.Round(time.Millisecond))))
}
