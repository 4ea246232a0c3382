package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/fiszki/internal/model"
)

var t0 = time.Date(2025, 6, 2, 18, 0, 0, 0, time.UTC)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "fiszki.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	})
	return s
}

func summary(start time.Time, unit string, words ...model.WordTally) model.SessionSummary {
	sum := model.SessionSummary{
		StartedAt: start,
		EndedAt:   start.Add(5 * time.Minute),
		DeckPath:  "words.json",
		Unit:      unit,
		Duration:  5 * time.Minute,
		Words:     words,
	}
	for _, w := range words {
		sum.Correct += w.Correct
		sum.Wrong += w.Wrong
	}
	return sum
}

func TestInsertAndListSessions(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := summary(t0, "1",
		model.WordTally{ItemID: "a", Word: "apple", Correct: 2, Wrong: 1},
		model.WordTally{ItemID: "b", Word: "pear", Correct: 1},
	)
	second := summary(t0.Add(24*time.Hour), "2",
		model.WordTally{ItemID: "a", Word: "apple", Wrong: 2},
	)
	for _, sum := range []model.SessionSummary{second, first} {
		if _, err := s.InsertSession(ctx, sum); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	sessions, err := s.ListSessions(ctx, model.StatsConfig{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].Unit != "1" || sessions[0].Correct != 3 || sessions[0].Wrong != 1 || sessions[0].DurationMs != 300000 {
		t.Fatalf("unexpected oldest session: %+v", sessions[0])
	}
	if !sessions[1].EndedAt.Equal(second.EndedAt) {
		t.Fatalf("unexpected ended_at: %v", sessions[1].EndedAt)
	}

	since := t0.Add(time.Hour)
	filtered, err := s.ListSessions(ctx, model.StatsConfig{Since: &since})
	if err != nil || len(filtered) != 1 || filtered[0].Unit != "2" {
		t.Fatalf("unexpected since filter: %+v %v", filtered, err)
	}
	byUnit, err := s.ListSessions(ctx, model.StatsConfig{Unit: "1"})
	if err != nil || len(byUnit) != 1 {
		t.Fatalf("unexpected unit filter: %+v %v", byUnit, err)
	}
	last, err := s.ListSessions(ctx, model.StatsConfig{Last: 1})
	if err != nil || len(last) != 1 || last[0].Unit != "2" {
		t.Fatalf("unexpected last filter: %+v %v", last, err)
	}

	ids := []int64{sessions[0].SessionID, sessions[1].SessionID}
	words, err := s.ListWordAggregatesForSessions(ctx, ids)
	if err != nil {
		t.Fatalf("word aggregates: %v", err)
	}
	if len(words) != 2 || words[0].Word != "apple" || words[0].Correct != 2 || words[0].Wrong != 3 {
		t.Fatalf("unexpected word aggregates: %+v", words)
	}
}

func TestInsertEmptySessionSkipped(t *testing.T) {
	s := openTestStore(t)
	id, err := s.InsertSession(context.Background(), summary(t0, "1"))
	if err != nil || id != 0 {
		t.Fatalf("expected skipped insert, got %d %v", id, err)
	}
	sessions, err := s.ListSessions(context.Background(), model.StatsConfig{})
	if err != nil || len(sessions) != 0 {
		t.Fatalf("expected no sessions, got %+v %v", sessions, err)
	}
}

func TestGetWeakWordsAndTopUnits(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	inserts := []model.SessionSummary{
		summary(t0, "1",
			model.WordTally{ItemID: "a", Word: "apple", Wrong: 5},
			model.WordTally{ItemID: "c", Word: "cat", Correct: 4},
		),
		summary(t0.Add(time.Hour), "2",
			model.WordTally{ItemID: "b", Word: "bear", Correct: 1, Wrong: 1},
			model.WordTally{ItemID: "d", Word: "dog", Correct: 3, Wrong: 1},
		),
		summary(t0.Add(2*time.Hour), "2",
			model.WordTally{Word: "eel", Correct: 1},
		),
	}
	for _, sum := range inserts {
		if _, err := s.InsertSession(ctx, sum); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	weak, err := s.GetWeakWords(ctx, 10, 5)
	if err != nil {
		t.Fatalf("weak: %v", err)
	}
	if len(weak) != 3 || weak[0].Word != "apple" || weak[1].Word != "bear" || weak[2].Word != "dog" {
		t.Fatalf("unexpected weak order: %+v", weak)
	}
	recent, err := s.GetWeakWords(ctx, 2, 5)
	if err != nil || len(recent) != 2 || recent[0].Word != "bear" {
		t.Fatalf("unexpected windowed weak words: %+v %v", recent, err)
	}

	units, err := s.TopUnits(ctx, 5)
	if err != nil {
		t.Fatalf("top units: %v", err)
	}
	if len(units) != 2 || units[0].Unit != "1" || units[0].WordsReviewed != 9 || units[1].Unit != "2" || units[1].WordsReviewed != 7 {
		t.Fatalf("unexpected top units: %+v", units)
	}
}
