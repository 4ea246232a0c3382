package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/fiszki/internal/model"
	"github.com/verte-zerg/fiszki/internal/srs"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSessionMetrics(t *testing.T) {
	rate, acc := SessionMetrics(9, 3, 120000)
	if !approx(rate, 6) || !approx(acc, 0.75) {
		t.Fatalf("unexpected metrics: %v %v", rate, acc)
	}
	rate, acc = SessionMetrics(1, 1, 0)
	if rate != 0 || !approx(acc, 0.5) {
		t.Fatalf("expected zero rate for empty duration, got %v %v", rate, acc)
	}
	if rate, acc := SessionMetrics(0, 0, 1000); rate != 0 || acc != 0 {
		t.Fatalf("expected zeros without answers, got %v %v", rate, acc)
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if !approx(got[i], want[i]) {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	in := []float64{1, 2}
	out := MovingAverage(in, 1)
	out[0] = 9
	if in[0] != 1 {
		t.Fatalf("window 1 must copy the input")
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 7}); got != "▁█" {
		t.Fatalf("unexpected sparkline: %q", got)
	}
	if got := Sparkline([]float64{3, 3, 3}); got != "▅▅▅" {
		t.Fatalf("unexpected flat sparkline: %q", got)
	}
	if Sparkline(nil) != "" {
		t.Fatalf("expected empty sparkline")
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, nil); err != nil || !strings.Contains(buf.String(), "No sessions found.") {
		t.Fatalf("unexpected empty summary: %q %v", buf.String(), err)
	}
	buf.Reset()
	sessions := []model.SessionAggregate{
		{Correct: 8, Wrong: 2, DurationMs: 60000},
		{Correct: 5, Wrong: 5, DurationMs: 120000},
	}
	if err := RenderSummary(&buf, sessions); err != nil {
		t.Fatalf("summary: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Sessions: 2", "Words reviewed: 20", "Study time: 3.0 min", "Avg answers/min: 7.50", "Avg accuracy: 65.00%", "Best accuracy: 80.00%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderWordTableOrdersByAccuracy(t *testing.T) {
	var buf bytes.Buffer
	aggs := []model.WordAggregate{
		{Word: "easy", Correct: 4},
		{Word: "hard", Correct: 1, Wrong: 3},
	}
	if err := RenderWordTable(&buf, "Words", aggs); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if strings.Index(out, "hard") > strings.Index(out, "easy") {
		t.Fatalf("expected least accurate word first:\n%s", out)
	}
	if !strings.Contains(out, "25.00%") {
		t.Fatalf("expected accuracy column:\n%s", out)
	}
}

func TestRenderDueCounts(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	due := model.NewItem("due", now)
	due.Repetitions = 1
	fresh := model.NewItem("fresh", now)
	counts := srs.CountStatuses([]*model.VocabularyItem{due, fresh}, now)

	var buf bytes.Buffer
	if err := RenderDueCounts(&buf, counts); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Review status (2 words)") {
		t.Fatalf("missing title:\n%s", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Due now") && !strings.HasSuffix(strings.TrimSpace(line), "1") {
			t.Fatalf("unexpected due line: %q", line)
		}
	}
}
