package srs

import (
	"time"

	"github.com/verte-zerg/fiszki/internal/model"
)

// Status classifies how soon an item needs review.
type Status int

const (
	// NotStarted items have never been answered correctly.
	NotStarted Status = iota
	// DueNow items are scheduled at or before now.
	DueNow
	// Soon items are due within the next hour.
	Soon
	// Today items are due within the next 24 hours.
	Today
	// Later items are due after that.
	Later
)

const (
	soonMinutes  = 60
	todayMinutes = 24 * 60
)

var statusNames = [...]string{
	NotStarted: "not_started",
	DueNow:     "due_now",
	Soon:       "soon",
	Today:      "today",
	Later:      "later",
}

var statusSymbols = [...]string{
	NotStarted: "○",
	DueNow:     "●",
	Soon:       "◕",
	Today:      "◑",
	Later:      "◔",
}

func (s Status) String() string {
	if s < NotStarted || s > Later {
		return "unknown"
	}
	return statusNames[s]
}

// Symbol returns a one-glyph marker for the status.
func (s Status) Symbol() string {
	if s < NotStarted || s > Later {
		return "?"
	}
	return statusSymbols[s]
}

// StatusOf classifies an item relative to now without modifying it.
func StatusOf(item *model.VocabularyItem, now time.Time) Status {
	if item.Repetitions == 0 {
		return NotStarted
	}
	next := item.NextReview
	if next.IsZero() {
		next = now
	}
	diff := next.Sub(now).Minutes()
	switch {
	case diff <= 0:
		return DueNow
	case diff <= soonMinutes:
		return Soon
	case diff <= todayMinutes:
		return Today
	default:
		return Later
	}
}

// DueItems returns the items whose next review is at or before now, in input order.
func DueItems(items []*model.VocabularyItem, now time.Time) []*model.VocabularyItem {
	var due []*model.VocabularyItem
	for _, item := range items {
		item.EnsureDefaults(now)
		if !item.NextReview.After(now) {
			due = append(due, item)
		}
	}
	return due
}

// Counts tallies items per review status.
type Counts struct {
	DueNow     int
	Soon       int
	Today      int
	Later      int
	NotStarted int
	Total      int
}

// CountStatuses classifies every item relative to now.
func CountStatuses(items []*model.VocabularyItem, now time.Time) Counts {
	c := Counts{Total: len(items)}
	for _, item := range items {
		switch StatusOf(item, now) {
		case NotStarted:
			c.NotStarted++
		case DueNow:
			c.DueNow++
		case Soon:
			c.Soon++
		case Today:
			c.Today++
		default:
			c.Later++
		}
	}
	return c
}
