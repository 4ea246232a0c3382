// Package export writes word lists in formats other tools understand.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/fiszki/internal/deck"
	"github.com/verte-zerg/fiszki/internal/model"
	"github.com/verte-zerg/fiszki/internal/vocab"
)

// Supported export formats.
const (
	FormatAnki  = "anki"
	FormatCSV   = "csv"
	FormatJSON  = "json"
	FormatStats = "stats"
)

const statsTopDifficult = 10

var csvHeader = []string{"word", "pronunciation", "part_of_speech", "definition", "translation", "unit", "page", "correct_count", "wrong_count"}

// Anki writes one "front<TAB>back" line per item.
func Anki(w io.Writer, items []*model.VocabularyItem) error {
	for _, item := range items {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", ankiField(item.Word), ankiBack(item)); err != nil {
			return err
		}
	}
	return nil
}

func ankiBack(item *model.VocabularyItem) string {
	var parts []string
	if item.Pronunciation != "" {
		parts = append(parts, "["+item.Pronunciation+"]")
	}
	if item.PartOfSpeech != "" {
		parts = append(parts, "("+item.PartOfSpeech+")")
	}
	if item.Definition != "" {
		parts = append(parts, item.Definition)
	}
	if item.Translation != "" {
		parts = append(parts, "= "+item.Translation)
	}
	return ankiField(strings.Join(parts, " "))
}

// Tabs and newlines would break the line format.
var ankiEscaper = strings.NewReplacer("\t", " ", "\r", " ", "\n", " ")

func ankiField(s string) string {
	return ankiEscaper.Replace(s)
}

// CSV writes items with a header row.
func CSV(w io.Writer, items []*model.VocabularyItem) error {
	if len(items) == 0 {
		return fmt.Errorf("no words to export")
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, item := range items {
		page := ""
		if item.Page != 0 {
			page = strconv.Itoa(item.Page)
		}
		row := []string{
			item.Word,
			item.Pronunciation,
			item.PartOfSpeech,
			item.Definition,
			item.Translation,
			item.Unit,
			page,
			strconv.Itoa(item.CorrectCount),
			strconv.Itoa(item.WrongCount),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// JSON writes items in the word list format.
func JSON(w io.Writer, items []*model.VocabularyItem) error {
	data, err := vocab.Encode("export.json", items)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// StatsText writes a plain-text learning report.
func StatsText(w io.Writer, items []*model.VocabularyItem, now time.Time) error {
	s := deck.Summarize(items)
	lines := []string{
		"Flashcard statistics",
		"====================",
		"Date: " + now.Format("2006-01-02 15:04:05"),
		"",
		fmt.Sprintf("Total words: %d", s.Total),
		fmt.Sprintf("Correct answers: %d", s.Correct),
		fmt.Sprintf("Wrong answers: %d", s.Wrong),
		fmt.Sprintf("Total attempts: %d", s.Attempts),
		fmt.Sprintf("Accuracy: %.1f%%", s.Accuracy),
		"",
		fmt.Sprintf("Untouched words (0 attempts): %d", s.Untouched),
		"Hardest words (more wrong than correct):",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	var hardest []*model.VocabularyItem
	for _, item := range items {
		if item.WrongCount > item.CorrectCount {
			hardest = append(hardest, item)
		}
	}
	sort.SliceStable(hardest, func(i, j int) bool {
		return hardest[i].WrongCount > hardest[j].WrongCount
	})
	if len(hardest) > statsTopDifficult {
		hardest = hardest[:statsTopDifficult]
	}
	for _, item := range hardest {
		if _, err := fmt.Fprintf(w, "  - %s: %d wrong, %d correct\n", item.Word, item.WrongCount, item.CorrectCount); err != nil {
			return err
		}
	}
	return nil
}

// Write renders items in the named format.
func Write(w io.Writer, format string, items []*model.VocabularyItem, now time.Time) error {
	switch strings.ToLower(format) {
	case FormatAnki:
		return Anki(w, items)
	case FormatCSV:
		return CSV(w, items)
	case FormatJSON:
		return JSON(w, items)
	case FormatStats:
		return StatsText(w, items, now)
	default:
		return fmt.Errorf("unknown export format %q (available: anki, csv, json, stats)", format)
	}
}

// ToFile renders items in the named format and writes them atomically to path.
func ToFile(path, format string, items []*model.VocabularyItem, now time.Time) error {
	var buf bytes.Buffer
	if err := Write(&buf, format, items, now); err != nil {
		return err
	}
	return vocab.WriteFileAtomic(path, buf.Bytes())
}
