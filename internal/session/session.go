// Package session tallies the answers of a single study session.
package session

import (
	"time"

	"github.com/verte-zerg/fiszki/internal/model"
)

// Accumulator counts answers between Start and Finish.
// It is not safe for concurrent use.
type Accumulator struct {
	now      func() time.Time
	deckPath string
	unit     string

	started   bool
	startedAt time.Time
	correct   int
	wrong     int
	words     map[string]*model.WordTally
	order     []string

	finished bool
	summary  model.SessionSummary
}

// New returns an accumulator reading time from now. A nil clock uses time.Now.
func New(now func() time.Time, deckPath, unit string) *Accumulator {
	if now == nil {
		now = time.Now
	}
	return &Accumulator{now: now, deckPath: deckPath, unit: unit}
}

// Start marks the beginning of the session. Repeated calls are no-ops.
func (a *Accumulator) Start() {
	if a.started || a.finished {
		return
	}
	a.started = true
	a.startedAt = a.now()
}

// Record counts one answer. The session starts on the first answer if
// Start was not called; answers after Finish are ignored.
func (a *Accumulator) Record(correct bool) {
	a.record(nil, correct)
}

// RecordItem counts one answer and attributes it to item.
func (a *Accumulator) RecordItem(item *model.VocabularyItem, correct bool) {
	a.record(item, correct)
}

func (a *Accumulator) record(item *model.VocabularyItem, correct bool) {
	if a.finished {
		return
	}
	a.Start()
	if correct {
		a.correct++
	} else {
		a.wrong++
	}
	if item == nil {
		return
	}
	key := item.ID
	if key == "" {
		key = item.Word
	}
	if a.words == nil {
		a.words = map[string]*model.WordTally{}
	}
	tally, ok := a.words[key]
	if !ok {
		tally = &model.WordTally{ItemID: item.ID, Word: item.Word}
		a.words[key] = tally
		a.order = append(a.order, key)
	}
	if correct {
		tally.Correct++
	} else {
		tally.Wrong++
	}
}

// Snapshot returns the running totals without finishing the session.
func (a *Accumulator) Snapshot() (correct, wrong int, elapsed time.Duration) {
	if a.finished {
		return a.summary.Correct, a.summary.Wrong, a.summary.Duration
	}
	if a.started {
		elapsed = a.now().Sub(a.startedAt)
	}
	return a.correct, a.wrong, elapsed
}

// Started reports whether the session has begun.
func (a *Accumulator) Started() bool {
	return a.started
}

// Finish freezes the session and returns its summary. Later calls return
// the same summary.
func (a *Accumulator) Finish() model.SessionSummary {
	if a.finished {
		return a.frozen()
	}
	a.finished = true
	endedAt := a.now()
	startedAt := a.startedAt
	if !a.started {
		startedAt = endedAt
	}
	words := make([]model.WordTally, 0, len(a.order))
	for _, key := range a.order {
		words = append(words, *a.words[key])
	}
	a.summary = model.SessionSummary{
		StartedAt: startedAt,
		EndedAt:   endedAt,
		DeckPath:  a.deckPath,
		Unit:      a.unit,
		Correct:   a.correct,
		Wrong:     a.wrong,
		Duration:  endedAt.Sub(startedAt),
		Accuracy:  Accuracy(a.correct, a.wrong),
		Words:     words,
	}
	return a.frozen()
}

// frozen returns the stored summary with its own copy of the word tallies.
func (a *Accumulator) frozen() model.SessionSummary {
	s := a.summary
	s.Words = append([]model.WordTally(nil), a.summary.Words...)
	return s
}

// Accuracy returns the percentage of correct answers, 0 when there are none.
func Accuracy(correct, wrong int) float64 {
	total := correct + wrong
	if total == 0 {
		return 0
	}
	return 100 * float64(correct) / float64(total)
}
