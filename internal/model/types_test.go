package model

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestEnsureDefaults(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	item := &VocabularyItem{Word: "apple"}
	item.EnsureDefaults(now)
	if item.Ease != DefaultEase || item.Interval != DefaultInterval || item.Repetitions != 0 {
		t.Fatalf("unexpected defaults: %+v", item)
	}
	if !item.NextReview.Equal(now) {
		t.Fatalf("expected next review %v, got %v", now, item.NextReview)
	}

	later := now.Add(time.Hour)
	item.Ease = 1.8
	item.EnsureDefaults(later)
	if item.Ease != 1.8 || !item.NextReview.Equal(now) {
		t.Fatalf("defaults overwrote existing state: %+v", item)
	}
}

func TestErrorRateAndAccuracy(t *testing.T) {
	item := &VocabularyItem{Word: "pear"}
	if item.ErrorRate() != 0 || item.Accuracy() != 0 {
		t.Fatalf("expected zero rates for untouched item")
	}
	item.CorrectCount = 8
	item.WrongCount = 2
	if math.Abs(item.ErrorRate()-0.2) > 1e-9 {
		t.Fatalf("expected error rate 0.2, got %f", item.ErrorRate())
	}
	if math.Abs(item.Accuracy()-80) > 1e-9 {
		t.Fatalf("expected accuracy 80, got %f", item.Accuracy())
	}
}

func TestValidate(t *testing.T) {
	now := time.Unix(0, 0)
	valid := NewItem("plum", now)
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid item, got %v", err)
	}

	cases := map[string]func(*VocabularyItem){
		"empty word":     func(it *VocabularyItem) { it.Word = "" },
		"negative wrong": func(it *VocabularyItem) { it.WrongCount = -1 },
		"nan ease":       func(it *VocabularyItem) { it.Ease = math.NaN() },
		"inf ease":       func(it *VocabularyItem) { it.Ease = math.Inf(1) },
		"low ease":       func(it *VocabularyItem) { it.Ease = 1.0 },
		"zero interval":  func(it *VocabularyItem) { it.Interval = 0 },
		"negative reps":  func(it *VocabularyItem) { it.Repetitions = -2 },
	}
	for name, mutate := range cases {
		item := NewItem("plum", now)
		mutate(item)
		if err := item.Validate(); !errors.Is(err, ErrInvalidItemState) {
			t.Fatalf("%s: expected ErrInvalidItemState, got %v", name, err)
		}
	}
}
