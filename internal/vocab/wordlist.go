// Package vocab loads and stores vocabulary word lists.
package vocab

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/fiszki/internal/model"
)

// record is the on-disk shape of one item. Scheduling fields are pointers so
// that absent keys can be told apart from zero values.
type record struct {
	ID            string   `json:"id,omitempty" yaml:"id,omitempty"`
	Word          string   `json:"word" yaml:"word"`
	Pronunciation string   `json:"pronunciation,omitempty" yaml:"pronunciation,omitempty"`
	PartOfSpeech  string   `json:"part_of_speech,omitempty" yaml:"part_of_speech,omitempty"`
	Definition    string   `json:"definition,omitempty" yaml:"definition,omitempty"`
	Translation   string   `json:"translation,omitempty" yaml:"translation,omitempty"`
	Unit          string   `json:"unit" yaml:"unit"`
	Page          int      `json:"page,omitempty" yaml:"page,omitempty"`
	CorrectCount  int      `json:"correct_count" yaml:"correct_count"`
	WrongCount    int      `json:"wrong_count" yaml:"wrong_count"`
	Ease          *float64 `json:"sr_ease,omitempty" yaml:"sr_ease,omitempty"`
	Interval      *int     `json:"sr_interval,omitempty" yaml:"sr_interval,omitempty"`
	Repetitions   *int     `json:"sr_repetitions,omitempty" yaml:"sr_repetitions,omitempty"`
	NextReview    *string  `json:"next_review,omitempty" yaml:"next_review,omitempty"`
}

// Timestamps written by older tools may lack a zone; those are read as local time.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

type format int

const (
	formatJSON format = iota
	formatYAML
)

func formatFor(path string) format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatJSON
	}
}

// Load reads a word list, validates it and fills missing scheduling state.
// Items without an ID get a fresh UUID.
func Load(path string, now time.Time) ([]*model.VocabularyItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []record
	switch formatFor(path) {
	case formatYAML:
		err = yaml.Unmarshal(data, &records)
	default:
		err = json.Unmarshal(data, &records)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode word list: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}

	items := make([]*model.VocabularyItem, 0, len(records))
	for i, rec := range records {
		item, err := rec.toItem(now)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (r record) toItem(now time.Time) (*model.VocabularyItem, error) {
	item := &model.VocabularyItem{
		ID:            r.ID,
		Word:          strings.TrimSpace(r.Word),
		Pronunciation: r.Pronunciation,
		PartOfSpeech:  r.PartOfSpeech,
		Definition:    r.Definition,
		Translation:   r.Translation,
		Unit:          r.Unit,
		Page:          r.Page,
		CorrectCount:  r.CorrectCount,
		WrongCount:    r.WrongCount,
		Ease:          model.DefaultEase,
		Interval:      model.DefaultInterval,
		NextReview:    now,
	}
	if r.Ease != nil {
		item.Ease = *r.Ease
	}
	if r.Interval != nil {
		item.Interval = *r.Interval
	}
	if r.Repetitions != nil {
		item.Repetitions = *r.Repetitions
	}
	if r.NextReview != nil && *r.NextReview != "" {
		ts, err := parseTimestamp(*r.NextReview)
		if err != nil {
			return nil, fmt.Errorf("%w: %q has bad next_review: %v", model.ErrInvalidItemState, item.Word, err)
		}
		item.NextReview = ts
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	return item, nil
}

func parseTimestamp(value string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ts, nil
	}
	var lastErr error
	for _, layout := range naiveLayouts {
		ts, err := time.ParseInLocation(layout, value, time.Local)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func fromItem(item *model.VocabularyItem) record {
	ease := item.Ease
	interval := item.Interval
	reps := item.Repetitions
	next := item.NextReview.Format(time.RFC3339Nano)
	return record{
		ID:            item.ID,
		Word:          item.Word,
		Pronunciation: item.Pronunciation,
		PartOfSpeech:  item.PartOfSpeech,
		Definition:    item.Definition,
		Translation:   item.Translation,
		Unit:          item.Unit,
		Page:          item.Page,
		CorrectCount:  item.CorrectCount,
		WrongCount:    item.WrongCount,
		Ease:          &ease,
		Interval:      &interval,
		Repetitions:   &reps,
		NextReview:    &next,
	}
}

// Encode serializes items in the format implied by path.
func Encode(path string, items []*model.VocabularyItem) ([]byte, error) {
	records := make([]record, len(items))
	for i, item := range items {
		records[i] = fromItem(item)
	}
	if formatFor(path) == formatYAML {
		return yaml.Marshal(records)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save rewrites the whole word list atomically.
func Save(path string, items []*model.VocabularyItem) error {
	data, err := Encode(path, items)
	if err != nil {
		return fmt.Errorf("failed to encode word list: %w", err)
	}
	return WriteFileAtomic(path, data)
}

// WriteFileAtomic writes data to a temp file next to path and renames it into place.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
