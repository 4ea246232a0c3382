// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/verte-zerg/fiszki/internal/model"
	"github.com/verte-zerg/fiszki/internal/srs"
)

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// SessionMetrics computes answers per minute and accuracy (0..1) for a session.
func SessionMetrics(correct, wrong int, durationMs int64) (perMinute, accuracy float64) {
	den := float64(correct + wrong)
	if den > 0 {
		accuracy = float64(correct) / den
	}
	if durationMs <= 0 {
		return 0, accuracy
	}
	minutes := float64(durationMs) / 60000.0
	return den / minutes, accuracy
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		n := i + 1
		if i >= window {
			sum -= values[i-window]
			n = window
		}
		out[i] = sum / float64(n)
	}
	return out
}

// Sparkline renders values as a single line of block characters.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := minMax(values)
	if math.Abs(hi-lo) < 1e-9 {
		return strings.Repeat(string(sparkLevels[len(sparkLevels)/2]), len(values))
	}
	var b strings.Builder
	top := float64(len(sparkLevels) - 1)
	for _, v := range values {
		idx := int(math.Round((v - lo) / (hi - lo) * top))
		b.WriteRune(sparkLevels[idx])
	}
	return b.String()
}

func minMax(values []float64) (lo, hi float64) {
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// RenderSummary prints totals for sessions.
func RenderSummary(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	var totalRate, totalAcc, bestAcc float64
	var answers int
	var durationMs int64
	for _, s := range sessions {
		rate, acc := SessionMetrics(s.Correct, s.Wrong, s.DurationMs)
		totalRate += rate
		totalAcc += acc
		bestAcc = math.Max(bestAcc, acc)
		answers += s.Correct + s.Wrong
		durationMs += s.DurationMs
	}
	count := float64(len(sessions))
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", len(sessions)),
		fmt.Sprintf("Words reviewed: %d", answers),
		fmt.Sprintf("Study time: %.1f min", float64(durationMs)/60000.0),
		fmt.Sprintf("Avg answers/min: %.2f", totalRate/count),
		fmt.Sprintf("Avg accuracy: %.2f%%", totalAcc/count*100),
		fmt.Sprintf("Best accuracy: %.2f%%", bestAcc*100),
		"",
	}
	return writeLines(w, lines)
}

// RenderCurves prints smoothed accuracy and pace trends as sparklines.
func RenderCurves(w io.Writer, sessions []model.SessionAggregate, window int) error {
	if len(sessions) == 0 {
		return nil
	}
	rates := make([]float64, len(sessions))
	accs := make([]float64, len(sessions))
	for i, s := range sessions {
		rate, acc := SessionMetrics(s.Correct, s.Wrong, s.DurationMs)
		rates[i] = rate
		accs[i] = acc * 100
	}
	accs = MovingAverage(accs, window)
	rates = MovingAverage(rates, window)
	accLo, accHi := minMax(accs)
	rateLo, rateHi := minMax(rates)
	lines := []string{
		fmt.Sprintf("Trends (window %d)", window),
		fmt.Sprintf("Accuracy    %s  %.0f%%..%.0f%%", Sparkline(accs), accLo, accHi),
		fmt.Sprintf("Answers/min %s  %.1f..%.1f", Sparkline(rates), rateLo, rateHi),
		"",
	}
	return writeLines(w, lines)
}

// RenderWordTable prints per-word aggregates, least accurate first.
func RenderWordTable(w io.Writer, title string, aggs []model.WordAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No word stats found.")
		return err
	}
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	headers, rows := WordRows(aggs)
	rightAlign := map[int]bool{1: true, 2: true, 3: true}
	lines := formatTable(headers, rows, rightAlign)
	return writeLines(w, append(lines, ""))
}

// WordRows sorts aggregates by lowest accuracy and formats them as table rows.
func WordRows(aggs []model.WordAggregate) ([]string, [][]string) {
	sorted := make([]model.WordAggregate, len(aggs))
	copy(sorted, aggs)
	sort.SliceStable(sorted, func(i, j int) bool {
		ai, aj := wordAccuracy(sorted[i]), wordAccuracy(sorted[j])
		if ai == aj {
			return sorted[i].Word < sorted[j].Word
		}
		return ai < aj
	})
	headers := []string{"Word", "Accuracy", "Correct", "Wrong"}
	rows := make([][]string, 0, len(sorted))
	for _, agg := range sorted {
		rows = append(rows, []string{
			agg.Word,
			fmt.Sprintf("%.2f%%", wordAccuracy(agg)*100),
			fmt.Sprintf("%d", agg.Correct),
			fmt.Sprintf("%d", agg.Wrong),
		})
	}
	return headers, rows
}

func wordAccuracy(agg model.WordAggregate) float64 {
	total := agg.Correct + agg.Wrong
	if total == 0 {
		return 1
	}
	return float64(agg.Correct) / float64(total)
}

// RenderDueCounts prints how many items fall into each review status.
func RenderDueCounts(w io.Writer, counts srs.Counts) error {
	rows := [][]string{
		{srs.DueNow.Symbol(), "Due now", fmt.Sprintf("%d", counts.DueNow)},
		{srs.Soon.Symbol(), "Within an hour", fmt.Sprintf("%d", counts.Soon)},
		{srs.Today.Symbol(), "Today", fmt.Sprintf("%d", counts.Today)},
		{srs.Later.Symbol(), "Later", fmt.Sprintf("%d", counts.Later)},
		{srs.NotStarted.Symbol(), "Not started", fmt.Sprintf("%d", counts.NotStarted)},
	}
	lines := []string{fmt.Sprintf("Review status (%d words)", counts.Total)}
	lines = append(lines, formatTable(nil, rows, map[int]bool{2: true})...)
	return writeLines(w, lines)
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
