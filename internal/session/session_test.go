package session

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/verte-zerg/fiszki/internal/model"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestAccumulatorSummary(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 4, 1, 18, 0, 0, 0, time.UTC)}
	acc := New(clock.now, "deck.json", "Unit 3")
	acc.Start()
	clock.advance(30 * time.Second)
	acc.Record(true)
	acc.Record(true)
	acc.Record(false)
	clock.advance(90 * time.Second)

	s := acc.Finish()
	if s.Correct != 2 || s.Wrong != 1 || s.WordsReviewed() != 3 {
		t.Fatalf("unexpected counts: %+v", s)
	}
	if s.Duration != 2*time.Minute {
		t.Fatalf("expected 2m duration, got %v", s.Duration)
	}
	if math.Abs(s.Accuracy-200.0/3.0) > 1e-9 {
		t.Fatalf("unexpected accuracy %f", s.Accuracy)
	}
	if s.Unit != "Unit 3" || s.DeckPath != "deck.json" {
		t.Fatalf("unexpected labels: %+v", s)
	}
}

func TestFinishIsIdempotent(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	acc := New(clock.now, "", "")
	acc.Start()
	acc.Record(true)
	clock.advance(time.Minute)
	first := acc.Finish()
	clock.advance(time.Hour)
	acc.Record(false)
	second := acc.Finish()

	a, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	b, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(a) != string(b) {
		t.Fatalf("summaries differ:\n%s\n%s", a, b)
	}
}

func TestFinishWithoutAnswers(t *testing.T) {
	clock := &fakeClock{t: time.Unix(50, 0)}
	acc := New(clock.now, "", "")
	s := acc.Finish()
	if s.Accuracy != 0 || s.Duration != 0 || s.WordsReviewed() != 0 {
		t.Fatalf("expected empty summary, got %+v", s)
	}
}

func TestRecordStartsImplicitly(t *testing.T) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	acc := New(clock.now, "", "")
	acc.Record(false)
	if !acc.Started() {
		t.Fatalf("expected implicit start")
	}
	clock.advance(10 * time.Second)
	correct, wrong, elapsed := acc.Snapshot()
	if correct != 0 || wrong != 1 || elapsed != 10*time.Second {
		t.Fatalf("unexpected snapshot: %d %d %v", correct, wrong, elapsed)
	}
}

func TestRecordItemTallies(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	acc := New(clock.now, "", "")
	a := &model.VocabularyItem{ID: "id-a", Word: "a"}
	b := &model.VocabularyItem{Word: "b"}
	acc.RecordItem(a, true)
	acc.RecordItem(b, false)
	acc.RecordItem(a, false)
	s := acc.Finish()
	if len(s.Words) != 2 {
		t.Fatalf("expected 2 word tallies, got %d", len(s.Words))
	}
	if s.Words[0].ItemID != "id-a" || s.Words[0].Correct != 1 || s.Words[0].Wrong != 1 {
		t.Fatalf("unexpected tally for a: %+v", s.Words[0])
	}
	if s.Words[1].Word != "b" || s.Words[1].Wrong != 1 {
		t.Fatalf("unexpected tally for b: %+v", s.Words[1])
	}
}

func TestFinishReturnsIndependentWordTallies(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	acc := New(clock.now, "", "")
	acc.RecordItem(&model.VocabularyItem{ID: "a1", Word: "apple"}, true)
	first := acc.Finish()
	if len(first.Words) != 1 {
		t.Fatalf("expected one word tally, got %+v", first.Words)
	}
	first.Words[0].Correct = 99

	second := acc.Finish()
	if second.Words[0].Correct != 1 {
		t.Fatalf("editing one summary changed another: %+v", second.Words)
	}
}
