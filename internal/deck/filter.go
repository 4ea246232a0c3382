// Package deck narrows a word list down to a study pool.
package deck

import (
	"sort"
	"strings"

	"github.com/verte-zerg/fiszki/internal/model"
)

// FilterFunc returns true when an item should be kept.
type FilterFunc func(*model.VocabularyItem) bool

// Learning statuses understood by ByStatus.
const (
	StatusUntouched = "untouched"
	StatusLearning  = "learning"
	StatusKnown     = "known"
	StatusDifficult = "difficult"
)

// Error-rate thresholds for the difficulty views.
const (
	DifficultDeckRate = 0.5
	HardFilterRate    = 0.4
)

// Apply keeps the items accepted by every filter, preserving order.
// The returned slice shares item pointers with the input.
func Apply(items []*model.VocabularyItem, filters ...FilterFunc) []*model.VocabularyItem {
	out := make([]*model.VocabularyItem, 0, len(items))
next:
	for _, item := range items {
		for _, f := range filters {
			if f != nil && !f(item) {
				continue next
			}
		}
		out = append(out, item)
	}
	return out
}

// ByUnits keeps items from any of the given units. No units keeps everything.
func ByUnits(units ...string) FilterFunc {
	if len(units) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(units))
	for _, u := range units {
		set[u] = struct{}{}
	}
	return func(item *model.VocabularyItem) bool {
		_, ok := set[item.Unit]
		return ok
	}
}

// ByCategory keeps items with the given part of speech, ignoring case.
func ByCategory(category string) FilterFunc {
	if category == "" {
		return nil
	}
	return func(item *model.VocabularyItem) bool {
		return strings.EqualFold(item.PartOfSpeech, category)
	}
}

// Search keeps items whose word, translation or definition contains query.
func Search(query string) FilterFunc {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	return func(item *model.VocabularyItem) bool {
		return strings.Contains(strings.ToLower(item.Word), query) ||
			strings.Contains(strings.ToLower(item.Translation), query) ||
			strings.Contains(strings.ToLower(item.Definition), query)
	}
}

// ByStatus keeps items in the given learning status. Unknown statuses keep nothing.
func ByStatus(status string) FilterFunc {
	if status == "" {
		return nil
	}
	return func(item *model.VocabularyItem) bool {
		total := item.Attempts()
		switch strings.ToLower(status) {
		case StatusUntouched:
			return total == 0
		case StatusLearning:
			return total > 0 && total <= 5
		case StatusKnown:
			return item.CorrectCount > 3
		case StatusDifficult:
			return total > 0 && item.WrongCount > item.CorrectCount
		default:
			return false
		}
	}
}

// ValidStatus reports whether status is understood by ByStatus.
func ValidStatus(status string) bool {
	switch strings.ToLower(status) {
	case StatusUntouched, StatusLearning, StatusKnown, StatusDifficult:
		return true
	}
	return false
}

// MinErrorRate keeps attempted items whose error rate is at least rate.
func MinErrorRate(rate float64) FilterFunc {
	return func(item *model.VocabularyItem) bool {
		return item.Attempts() > 0 && item.ErrorRate() >= rate
	}
}

// Difficult returns attempted items with an error rate above rate, hardest first.
func Difficult(items []*model.VocabularyItem, rate float64) []*model.VocabularyItem {
	out := Apply(items, func(item *model.VocabularyItem) bool {
		return item.Attempts() > 0 && item.ErrorRate() > rate
	})
	SortByErrorRate(out)
	return out
}

// SortByErrorRate orders items by descending error rate; ties keep input order.
func SortByErrorRate(items []*model.VocabularyItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ErrorRate() > items[j].ErrorRate()
	})
}
