package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Word", "Accuracy", "Wrong"}
	rows := [][]string{
		{"cat", "97.50%", "12"},
		{"żółw", "8.00%", "3"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Word Accuracy Wrong" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "cat    97.50%    12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "żółw    8.00%     3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"Word", "N"}, [][]string{{"日本", "1"}}, nil)
	if lines[1] != "日本 1" {
		t.Fatalf("expected double-width runes to fill the column, got %q", lines[1])
	}
}
