package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/fiszki/internal/model"
)

var t0 = time.Date(2025, 7, 1, 20, 15, 0, 0, time.UTC)

func sampleItems() []*model.VocabularyItem {
	a := model.NewItem("apple", t0)
	a.Pronunciation = "ˈæpl"
	a.PartOfSpeech = "noun"
	a.Definition = "a round\tfruit"
	a.Translation = "jabłko"
	a.Unit = "1"
	a.Page = 12
	a.CorrectCount = 3
	a.WrongCount = 1
	b := model.NewItem("run", t0)
	b.WrongCount = 4
	c := model.NewItem("sit", t0)
	c.WrongCount = 6
	c.CorrectCount = 1
	return []*model.VocabularyItem{a, b, c}
}

func TestAnki(t *testing.T) {
	var buf bytes.Buffer
	if err := Anki(&buf, sampleItems()); err != nil {
		t.Fatalf("anki: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "apple\t[ˈæpl] (noun) a round fruit = jabłko" {
		t.Fatalf("unexpected anki line: %q", lines[0])
	}
	if lines[1] != "run\t" {
		t.Fatalf("unexpected bare line: %q", lines[1])
	}
}

func TestAnkiEscapesWord(t *testing.T) {
	item := model.NewItem("ice\tcream\n", t0)
	item.Translation = "lody"
	var buf bytes.Buffer
	if err := Anki(&buf, []*model.VocabularyItem{item}); err != nil {
		t.Fatalf("anki: %v", err)
	}
	if got := buf.String(); got != "ice cream \t= lody\n" {
		t.Fatalf("unexpected anki line: %q", got)
	}
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := CSV(&buf, sampleItems()); err != nil {
		t.Fatalf("csv: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 4 || records[0][0] != "word" || records[0][8] != "wrong_count" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	if records[1][6] != "12" || records[1][7] != "3" || records[2][6] != "" {
		t.Fatalf("unexpected rows: %v", records[1:])
	}
	if err := CSV(&buf, nil); err == nil {
		t.Fatalf("expected error for empty export")
	}
}

func TestStatsText(t *testing.T) {
	var buf bytes.Buffer
	if err := StatsText(&buf, sampleItems(), t0); err != nil {
		t.Fatalf("stats: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Date: 2025-07-01 20:15:00", "Total words: 3", "Total attempts: 15", "Accuracy: 26.7%", "Untouched words (0 attempts): 0"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	sit := strings.Index(out, "  - sit: 6 wrong, 1 correct")
	run := strings.Index(out, "  - run: 4 wrong, 0 correct")
	if sit < 0 || run < 0 || sit > run {
		t.Fatalf("expected hardest words ordered by wrong count:\n%s", out)
	}
}

func TestToFileUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := ToFile(path, "pdf", sampleItems(), t0); err == nil {
		t.Fatalf("expected unknown format error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no file to be written")
	}
}

func TestToFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := ToFile(path, FormatJSON, sampleItems(), t0); err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), `"word": "apple"`) {
		t.Fatalf("unexpected json: %s", data)
	}
}
