package stats

import (
	"sort"

	"github.com/verte-zerg/fiszki/internal/model"
)

// MostReviewed returns the n words with the most answers.
func MostReviewed(aggs []model.WordAggregate, n int) []model.WordAggregate {
	if n <= 0 || len(aggs) == 0 {
		return nil
	}
	out := make([]model.WordAggregate, len(aggs))
	copy(out, aggs)
	sort.Slice(out, func(i, j int) bool {
		ti := out[i].Correct + out[i].Wrong
		tj := out[j].Correct + out[j].Wrong
		if ti == tj {
			return out[i].Word < out[j].Word
		}
		return ti > tj
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}
