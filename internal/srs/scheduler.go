package srs

import (
	"fmt"
	"math"
	"time"

	"github.com/verte-zerg/fiszki/internal/model"
)

// Early successful repetitions use fixed intervals in minutes.
const (
	firstInterval  = 1
	secondInterval = 3
)

// MaxInterval caps the gap between reviews at a century, in minutes.
// Larger values would overflow time.Duration.
const MaxInterval = 100 * 365 * 24 * 60

// Update applies one review with the given grade to the item.
// Invalid grades are rejected and leave the item untouched.
func Update(item *model.VocabularyItem, quality Quality, now time.Time) error {
	if !quality.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidQuality, int(quality))
	}
	item.EnsureDefaults(now)

	ease := nextEase(item.Ease, quality)
	repetitions := 0
	interval := firstInterval
	if quality.Passed() {
		repetitions = item.Repetitions + 1
		switch repetitions {
		case 1:
			interval = firstInterval
		case 2:
			interval = secondInterval
		default:
			interval = scaledInterval(item.Interval, ease)
		}
	}

	next := now.Add(time.Duration(interval) * time.Minute)
	if next.Before(item.NextReview) {
		// Never move a scheduled review backwards.
		next = item.NextReview
	}

	item.Ease = ease
	item.Interval = interval
	item.Repetitions = repetitions
	item.NextReview = next
	return nil
}

// Answer records a binary answer: it bumps the item's tallies and reschedules it.
func Answer(item *model.VocabularyItem, correct bool, now time.Time) error {
	if err := Update(item, QualityFromAnswer(correct), now); err != nil {
		return err
	}
	if correct {
		item.CorrectCount++
	} else {
		item.WrongCount++
	}
	return nil
}

func scaledInterval(interval int, ease float64) int {
	scaled := math.Floor(float64(interval) * ease)
	if scaled >= MaxInterval || math.IsNaN(scaled) {
		return MaxInterval
	}
	if scaled < firstInterval {
		return firstInterval
	}
	return int(scaled)
}

func nextEase(ease float64, quality Quality) float64 {
	miss := float64(QualityPerfect - quality)
	ease += 0.1 - miss*(0.08+miss*0.02)
	if ease < model.MinEase {
		return model.MinEase
	}
	return ease
}
