// Package srs implements the minute-granularity SM-2 review schedule.
package srs

import (
	"errors"
	"fmt"
)

// ErrInvalidQuality is returned when a recall grade falls outside 0..5.
var ErrInvalidQuality = errors.New("srs: invalid quality")

// Quality is an SM-2 recall grade.
type Quality int

const (
	// QualityBlackout means the answer was not recalled at all.
	QualityBlackout Quality = iota
	// QualityIncorrect means an incorrect answer that felt close.
	QualityIncorrect
	// QualityIncorrectFamiliar means an incorrect answer; the binary "did not know it" grade.
	QualityIncorrectFamiliar
	// QualityCorrectDifficult means a correct answer after serious effort.
	QualityCorrectDifficult
	// QualityCorrectHesitation means a correct answer after some hesitation; the binary "knew it" grade.
	QualityCorrectHesitation
	// QualityPerfect means an immediate correct answer.
	QualityPerfect
)

// passThreshold is the lowest grade that counts as a successful recall.
const passThreshold = QualityCorrectDifficult

// IsValid reports whether q is within 0..5.
func (q Quality) IsValid() bool {
	return q >= QualityBlackout && q <= QualityPerfect
}

// Passed reports whether q counts as a successful recall.
func (q Quality) Passed() bool {
	return q >= passThreshold
}

func (q Quality) String() string {
	return fmt.Sprintf("Quality(%d)", int(q))
}

// QualityFromAnswer maps a binary knew-it answer to a recall grade.
func QualityFromAnswer(correct bool) Quality {
	if correct {
		return QualityCorrectHesitation
	}
	return QualityIncorrectFamiliar
}
