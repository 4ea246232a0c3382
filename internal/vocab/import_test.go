package vocab

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/verte-zerg/fiszki/internal/model"
)

func TestReadSpreadsheetXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.xlsx")
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Word", "Translation", "Definition", "Unit", "POS", "Pron", "Page"},
		{"apple", "jabłko", "a fruit", "1", "noun", "ˈæpl", "3"},
		{"", "pusty", "", "1", "", "", ""},
		{"run", "biegać", "", "2", "verb", "", ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save xlsx: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close xlsx: %v", err)
	}

	cfg := DefaultImportConfig()
	cfg.FilePath = path
	items, result, err := ReadSpreadsheet(cfg, t0)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if result.TotalProcessed != 3 || result.Skipped != 1 || len(result.Errors) != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Word != "apple" || items[0].Page != 3 || items[0].PartOfSpeech != "noun" || items[0].ID == "" {
		t.Fatalf("unexpected first item: %+v", items[0])
	}
	if items[1].Unit != "2" || items[1].Ease != model.DefaultEase {
		t.Fatalf("unexpected second item: %+v", items[1])
	}
}

func TestReadSpreadsheetCSV(t *testing.T) {
	path := writeFile(t, "words.csv", "word,translation\ncat,kot\ndog,pies\n")
	cfg := ImportConfig{FilePath: path, WordColumn: "A", TranslationColumn: "B", StartRow: 2}
	items, result, err := ReadSpreadsheet(cfg, t0)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(items) != 2 || result.TotalProcessed != 2 || items[1].Translation != "pies" {
		t.Fatalf("unexpected import: %+v %+v", items, result)
	}
}

func TestReadSpreadsheetBadColumn(t *testing.T) {
	cfg := ImportConfig{FilePath: "x.csv", WordColumn: "1"}
	if _, _, err := ReadSpreadsheet(cfg, t0); err == nil {
		t.Fatalf("expected invalid column error")
	}
}

func TestMergeKeepsHistory(t *testing.T) {
	old := model.NewItem("Apple", t0)
	old.Unit = "1"
	old.CorrectCount = 4
	old.Repetitions = 2
	old.Translation = "stare"

	incomingSame := model.NewItem("apple", t0)
	incomingSame.Unit = "1"
	incomingSame.Translation = "jabłko"
	incomingOther := model.NewItem("apple", t0)
	incomingOther.Unit = "2"

	merged, created, updated := Merge([]*model.VocabularyItem{old}, []*model.VocabularyItem{incomingSame, incomingOther})
	if created != 1 || updated != 1 || len(merged) != 2 {
		t.Fatalf("unexpected merge: created=%d updated=%d len=%d", created, updated, len(merged))
	}
	if merged[0] != old || old.CorrectCount != 4 || old.Repetitions != 2 || old.Translation != "jabłko" {
		t.Fatalf("existing item not refreshed in place: %+v", old)
	}
	if merged[1] != incomingOther {
		t.Fatalf("expected new item appended")
	}
}
