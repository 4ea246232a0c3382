// Package selector draws the next card from a candidate pool.
package selector

import (
	"errors"
	"math/rand"
	"time"

	"github.com/verte-zerg/fiszki/internal/model"
)

// ErrEmptyPool is returned when there is nothing to draw from.
var ErrEmptyPool = errors.New("selector: empty candidate pool")

// errorBoost scales the error rate into extra weight; a word that is
// always missed weighs 1+errorBoost.
const errorBoost = 3.0

// Selector performs weighted random draws.
type Selector struct {
	rnd *rand.Rand
}

// New returns a Selector seeded with the current time.
func New() *Selector {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource returns a Selector drawing from src.
func NewWithSource(src rand.Source) *Selector {
	return &Selector{rnd: rand.New(src)}
}

// Weight returns the selection weight of an item, between 1 and 1+errorBoost.
// Items that were never answered get the baseline weight.
func Weight(item *model.VocabularyItem) float64 {
	if item.Attempts() == 0 {
		return 1
	}
	w := 1 + errorBoost*item.ErrorRate()
	if w < 1 {
		return 1
	}
	return w
}

// Select draws one item, biased toward items with a high error rate.
// Draws are independent, so the same item may come up twice in a row.
func (s *Selector) Select(pool []*model.VocabularyItem) (*model.VocabularyItem, error) {
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}
	weights := make([]float64, len(pool))
	total := 0.0
	for i, item := range pool {
		w := Weight(item)
		weights[i] = w
		total += w
	}

	r := s.rnd.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r < acc {
			return pool[i], nil
		}
	}
	// Float rounding can leave r just above the final sum.
	return pool[len(pool)-1], nil
}
