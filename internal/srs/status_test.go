package srs

import (
	"testing"
	"time"

	"github.com/verte-zerg/fiszki/internal/model"
)

func startedItem(next time.Time) *model.VocabularyItem {
	item := model.NewItem("word", t0)
	item.Repetitions = 1
	item.NextReview = next
	return item
}

func TestStatusOfBoundaries(t *testing.T) {
	cases := []struct {
		offset time.Duration
		want   Status
	}{
		{-time.Minute, DueNow},
		{0, DueNow},
		{30 * time.Second, Soon},
		{60 * time.Minute, Soon},
		{61 * time.Minute, Today},
		{24 * time.Hour, Today},
		{24*time.Hour + time.Minute, Later},
	}
	for _, tc := range cases {
		got := StatusOf(startedItem(t0.Add(tc.offset)), t0)
		if got != tc.want {
			t.Fatalf("offset %v: expected %s, got %s", tc.offset, tc.want, got)
		}
	}
}

func TestStatusOfNotStarted(t *testing.T) {
	item := model.NewItem("new", t0)
	item.NextReview = t0.Add(-time.Hour)
	if got := StatusOf(item, t0); got != NotStarted {
		t.Fatalf("expected not_started, got %s", got)
	}
}

func TestDueItemsKeepsOrder(t *testing.T) {
	a := startedItem(t0.Add(-time.Minute))
	b := startedItem(t0.Add(time.Minute))
	c := &model.VocabularyItem{Word: "bare"}
	d := startedItem(t0)
	due := DueItems([]*model.VocabularyItem{a, b, c, d}, t0)
	if len(due) != 3 || due[0] != a || due[1] != c || due[2] != d {
		t.Fatalf("unexpected due items: %v", due)
	}
	if c.Ease != model.DefaultEase || !c.NextReview.Equal(t0) {
		t.Fatalf("expected defaults on bare item: %+v", c)
	}
}

func TestCountStatuses(t *testing.T) {
	items := []*model.VocabularyItem{
		model.NewItem("a", t0),
		startedItem(t0),
		startedItem(t0.Add(10 * time.Minute)),
		startedItem(t0.Add(2 * time.Hour)),
		startedItem(t0.Add(48 * time.Hour)),
	}
	c := CountStatuses(items, t0)
	want := Counts{NotStarted: 1, DueNow: 1, Soon: 1, Today: 1, Later: 1, Total: 5}
	if c != want {
		t.Fatalf("expected %+v, got %+v", want, c)
	}
}

func TestStatusOfLeavesItemUntouched(t *testing.T) {
	item := &model.VocabularyItem{Word: "bare", Repetitions: 2}
	if got := StatusOf(item, t0); got != DueNow {
		t.Fatalf("expected missing next review to count as due, got %v", got)
	}
	if !item.NextReview.IsZero() || item.Ease != 0 || item.Interval != 0 {
		t.Fatalf("status lookup mutated item: %+v", item)
	}
}
