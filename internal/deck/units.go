package deck

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/verte-zerg/fiszki/internal/model"
)

const previewDefinitionRunes = 50

// UnitCount is a unit name with the number of items in it.
type UnitCount struct {
	Unit  string
	Count int
}

// Units lists the distinct units in natural order ("2" before "10").
func Units(items []*model.VocabularyItem) []UnitCount {
	counts := map[string]int{}
	for _, item := range items {
		counts[item.Unit]++
	}
	out := make([]UnitCount, 0, len(counts))
	for unit, n := range counts {
		out = append(out, UnitCount{Unit: unit, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		return NaturalLess(out[i].Unit, out[j].Unit)
	})
	return out
}

// Categories lists the distinct non-empty parts of speech, sorted.
func Categories(items []*model.VocabularyItem) []string {
	set := map[string]struct{}{}
	for _, item := range items {
		if item.PartOfSpeech != "" {
			set[item.PartOfSpeech] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// NaturalLess compares strings treating digit runs as numbers.
func NaturalLess(a, b string) bool {
	ac, bc := naturalChunks(a), naturalChunks(b)
	for i := 0; i < len(ac) && i < len(bc); i++ {
		x, y := ac[i], bc[i]
		xn, xerr := strconv.Atoi(x)
		yn, yerr := strconv.Atoi(y)
		switch {
		case xerr == nil && yerr == nil:
			if xn != yn {
				return xn < yn
			}
		case xerr == nil:
			return true
		case yerr == nil:
			return false
		default:
			if x != y {
				return x < y
			}
		}
	}
	if len(ac) != len(bc) {
		return len(ac) < len(bc)
	}
	return a < b
}

func naturalChunks(s string) []string {
	var chunks []string
	var b strings.Builder
	digits := false
	for i, r := range s {
		d := unicode.IsDigit(r)
		if i > 0 && d != digits {
			chunks = append(chunks, b.String())
			b.Reset()
		}
		digits = d
		b.WriteRune(r)
	}
	if b.Len() > 0 {
		chunks = append(chunks, b.String())
	}
	return chunks
}

// Summary aggregates answer counts for a group of items.
type Summary struct {
	Total     int
	Attempts  int
	Correct   int
	Wrong     int
	Accuracy  float64
	Untouched int
	Difficult int
}

// Summarize aggregates answer counts over items.
func Summarize(items []*model.VocabularyItem) Summary {
	s := Summary{Total: len(items)}
	for _, item := range items {
		s.Correct += item.CorrectCount
		s.Wrong += item.WrongCount
		if item.Attempts() == 0 {
			s.Untouched++
		}
		if item.WrongCount > item.CorrectCount {
			s.Difficult++
		}
	}
	s.Attempts = s.Correct + s.Wrong
	if s.Attempts > 0 {
		s.Accuracy = 100 * float64(s.Correct) / float64(s.Attempts)
	}
	return s
}

// Preview renders a one-line description of an item.
func Preview(item *model.VocabularyItem) string {
	var parts []string
	if item.Word != "" {
		parts = append(parts, item.Word)
	}
	if item.Pronunciation != "" {
		parts = append(parts, fmt.Sprintf("[%s]", item.Pronunciation))
	}
	if item.PartOfSpeech != "" {
		parts = append(parts, fmt.Sprintf("(%s)", item.PartOfSpeech))
	}
	if item.Definition != "" {
		parts = append(parts, clipRunes(item.Definition, previewDefinitionRunes))
	}
	return strings.Join(parts, " ")
}

func clipRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
