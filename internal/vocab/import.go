package vocab

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/verte-zerg/fiszki/internal/model"
)

// ImportConfig describes where vocabulary columns live in a spreadsheet.
// Columns are spreadsheet letters; an empty column is not imported.
type ImportConfig struct {
	FilePath            string
	SheetName           string // First sheet when empty.
	WordColumn          string
	TranslationColumn   string
	DefinitionColumn    string
	UnitColumn          string
	PartOfSpeechColumn  string
	PronunciationColumn string
	PageColumn          string
	StartRow            int // 1-based.
}

// DefaultImportConfig returns the column layout used by exported sheets.
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		WordColumn:          "A",
		TranslationColumn:   "B",
		DefinitionColumn:    "C",
		UnitColumn:          "D",
		PartOfSpeechColumn:  "E",
		PronunciationColumn: "F",
		PageColumn:          "G",
		StartRow:            2,
	}
}

// ImportResult summarizes an import run.
type ImportResult struct {
	TotalProcessed int
	Created        int
	Updated        int
	Skipped        int
	Errors         []string
}

type columnIndexes struct {
	word, translation, definition, unit, pos, pronunciation, page int
}

// ReadSpreadsheet reads vocabulary rows from an .xlsx or .csv file.
// Rows without a word are skipped and reported in the result.
func ReadSpreadsheet(cfg ImportConfig, now time.Time) ([]*model.VocabularyItem, ImportResult, error) {
	var result ImportResult
	cols, err := resolveColumns(cfg)
	if err != nil {
		return nil, result, err
	}
	var rows [][]string
	if strings.EqualFold(filepath.Ext(cfg.FilePath), ".csv") {
		rows, err = readCSVRows(cfg.FilePath)
	} else {
		rows, err = readExcelRows(cfg.FilePath, cfg.SheetName)
	}
	if err != nil {
		return nil, result, err
	}

	start := cfg.StartRow
	if start < 1 {
		start = 1
	}
	var items []*model.VocabularyItem
	for i, row := range rows {
		rowNum := i + 1
		if rowNum < start {
			continue
		}
		result.TotalProcessed++
		item, err := itemFromRow(row, cols, now)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		items = append(items, item)
	}
	return items, result, nil
}

func resolveColumns(cfg ImportConfig) (columnIndexes, error) {
	if cfg.WordColumn == "" {
		return columnIndexes{}, fmt.Errorf("word column is required")
	}
	var idx columnIndexes
	fields := []struct {
		letter string
		target *int
	}{
		{cfg.WordColumn, &idx.word},
		{cfg.TranslationColumn, &idx.translation},
		{cfg.DefinitionColumn, &idx.definition},
		{cfg.UnitColumn, &idx.unit},
		{cfg.PartOfSpeechColumn, &idx.pos},
		{cfg.PronunciationColumn, &idx.pronunciation},
		{cfg.PageColumn, &idx.page},
	}
	for _, f := range fields {
		if f.letter == "" {
			*f.target = -1
			continue
		}
		n, err := excelize.ColumnNameToNumber(strings.ToUpper(f.letter))
		if err != nil {
			return columnIndexes{}, fmt.Errorf("invalid column %q: %w", f.letter, err)
		}
		*f.target = n - 1
	}
	return idx, nil
}

func readExcelRows(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close for read-only spreadsheet.
			_ = cerr
		}
	}()
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("spreadsheet has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func readCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only CSV.
			_ = cerr
		}
	}()
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func itemFromRow(row []string, cols columnIndexes, now time.Time) (*model.VocabularyItem, error) {
	cell := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	word := cell(cols.word)
	if word == "" {
		return nil, fmt.Errorf("missing word")
	}
	item := model.NewItem(word, now)
	item.ID = uuid.NewString()
	item.Translation = cell(cols.translation)
	item.Definition = cell(cols.definition)
	item.Unit = cell(cols.unit)
	item.PartOfSpeech = cell(cols.pos)
	item.Pronunciation = cell(cols.pronunciation)
	if page := cell(cols.page); page != "" {
		n, err := strconv.Atoi(page)
		if err != nil {
			return nil, fmt.Errorf("invalid page %q", page)
		}
		item.Page = n
	}
	return item, nil
}

func mergeKey(item *model.VocabularyItem) string {
	return strings.ToLower(item.Word) + "\x00" + item.Unit
}

// Merge folds incoming items into existing ones keyed by word and unit.
// Matching items keep their review history and take non-empty descriptive
// fields from the incoming copy; new items are appended.
func Merge(existing, incoming []*model.VocabularyItem) (merged []*model.VocabularyItem, created, updated int) {
	merged = append(merged, existing...)
	index := make(map[string]*model.VocabularyItem, len(existing))
	for _, item := range existing {
		index[mergeKey(item)] = item
	}
	for _, in := range incoming {
		key := mergeKey(in)
		cur, ok := index[key]
		if !ok {
			merged = append(merged, in)
			index[key] = in
			created++
			continue
		}
		refresh(&cur.Translation, in.Translation)
		refresh(&cur.Definition, in.Definition)
		refresh(&cur.PartOfSpeech, in.PartOfSpeech)
		refresh(&cur.Pronunciation, in.Pronunciation)
		if in.Page != 0 {
			cur.Page = in.Page
		}
		updated++
	}
	return merged, created, updated
}

func refresh(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// Import reads a spreadsheet and merges it into existing.
func Import(cfg ImportConfig, existing []*model.VocabularyItem, now time.Time) ([]*model.VocabularyItem, ImportResult, error) {
	incoming, result, err := ReadSpreadsheet(cfg, now)
	if err != nil {
		return nil, result, err
	}
	merged, created, updated := Merge(existing, incoming)
	result.Created = created
	result.Updated = updated
	return merged, result, nil
}
