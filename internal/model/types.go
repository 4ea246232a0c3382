// Package model defines shared data structures.
package model

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Scheduling defaults for items that have never been reviewed.
const (
	DefaultEase     = 2.5
	MinEase         = 1.3
	DefaultInterval = 1
)

// ErrInvalidItemState reports a stored item that violates the scheduling invariants.
var ErrInvalidItemState = errors.New("invalid item state")

// VocabularyItem is a single flashcard together with its review history.
type VocabularyItem struct {
	ID            string
	Word          string
	Pronunciation string
	PartOfSpeech  string
	Definition    string
	Translation   string
	Unit          string
	Page          int

	CorrectCount int
	WrongCount   int

	// Spaced repetition state. Interval is measured in minutes.
	Ease        float64
	Interval    int
	Repetitions int
	NextReview  time.Time
}

// NewItem returns an item with default scheduling state due at now.
func NewItem(word string, now time.Time) *VocabularyItem {
	item := &VocabularyItem{Word: word}
	item.EnsureDefaults(now)
	return item
}

// EnsureDefaults fills zero-valued scheduling fields.
func (it *VocabularyItem) EnsureDefaults(now time.Time) {
	if it.Ease == 0 {
		it.Ease = DefaultEase
	}
	if it.Interval == 0 {
		it.Interval = DefaultInterval
	}
	if it.NextReview.IsZero() {
		it.NextReview = now
	}
}

// Attempts returns the number of recorded answers.
func (it *VocabularyItem) Attempts() int {
	return it.CorrectCount + it.WrongCount
}

// ErrorRate returns the share of wrong answers, or 0 when never attempted.
func (it *VocabularyItem) ErrorRate() float64 {
	total := it.Attempts()
	if total == 0 {
		return 0
	}
	return float64(it.WrongCount) / float64(total)
}

// Accuracy returns the percentage of correct answers, or 0 when never attempted.
func (it *VocabularyItem) Accuracy() float64 {
	total := it.Attempts()
	if total == 0 {
		return 0
	}
	return 100 * float64(it.CorrectCount) / float64(total)
}

// Validate checks the item against the scheduling invariants.
func (it *VocabularyItem) Validate() error {
	switch {
	case it.Word == "":
		return fmt.Errorf("%w: empty word", ErrInvalidItemState)
	case it.CorrectCount < 0 || it.WrongCount < 0:
		return fmt.Errorf("%w: %q has negative answer counts", ErrInvalidItemState, it.Word)
	case math.IsNaN(it.Ease) || math.IsInf(it.Ease, 0):
		return fmt.Errorf("%w: %q has non-finite ease", ErrInvalidItemState, it.Word)
	case it.Ease < MinEase:
		return fmt.Errorf("%w: %q has ease %.2f below %.1f", ErrInvalidItemState, it.Word, it.Ease, MinEase)
	case it.Interval < 1:
		return fmt.Errorf("%w: %q has interval %d", ErrInvalidItemState, it.Word, it.Interval)
	case it.Repetitions < 0:
		return fmt.Errorf("%w: %q has negative repetitions", ErrInvalidItemState, it.Word)
	}
	return nil
}

// StudyConfig defines study session settings.
type StudyConfig struct {
	DeckPath  string
	Units     []string
	Category  string
	Search    string
	Status    string
	Hard      bool
	Difficult bool
	DueOnly   bool
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Unit        string
	Since       *time.Time
	Last        int
	CurveWindow int
}

// WordTally counts answers for one word within a session.
type WordTally struct {
	ItemID  string
	Word    string
	Correct int
	Wrong   int
}

// SessionSummary captures a completed study session.
type SessionSummary struct {
	StartedAt time.Time
	EndedAt   time.Time
	DeckPath  string
	Unit      string
	Correct   int
	Wrong     int
	Duration  time.Duration
	Accuracy  float64
	Words     []WordTally
}

// WordsReviewed returns the number of answers given in the session.
func (s SessionSummary) WordsReviewed() int {
	return s.Correct + s.Wrong
}

// SessionAggregate summarizes a stored session for reporting.
type SessionAggregate struct {
	SessionID  int64
	EndedAt    time.Time
	Unit       string
	Correct    int
	Wrong      int
	DurationMs int64
}

// WordAggregate aggregates per-word answers across sessions.
type WordAggregate struct {
	ItemID  string
	Word    string
	Correct int
	Wrong   int
}

// UnitTotal counts answers given for a unit across all sessions.
type UnitTotal struct {
	Unit          string
	WordsReviewed int
}
