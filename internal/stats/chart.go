package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const (
	barGlyph            = "█"
	minBarWidth         = 10
	terminalWidthBackup = 80
)

// Bar is one labelled value in a bar chart.
type Bar struct {
	Label string
	Value float64
}

// BarChart renders horizontal bars scaled to the largest value.
// A width of 0 or less uses the terminal width.
func BarChart(w io.Writer, title string, bars []Bar, width int) error {
	if len(bars) == 0 {
		return nil
	}
	if width <= 0 {
		width = TerminalWidth()
	}
	labelWidth := 0
	valueWidth := 0
	maxVal := 0.0
	for _, b := range bars {
		labelWidth = max(labelWidth, runewidth.StringWidth(b.Label))
		valueWidth = max(valueWidth, len(formatValue(b.Value)))
		maxVal = math.Max(maxVal, b.Value)
	}
	barWidth := BarWidthFor(width, labelWidth, valueWidth)

	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	for _, b := range bars {
		n := 0
		if maxVal > 0 && b.Value > 0 {
			n = int(math.Round(b.Value / maxVal * float64(barWidth)))
			n = max(n, 1)
		}
		line := fmt.Sprintf("%s │%s%s %*s",
			runewidth.FillRight(b.Label, labelWidth),
			strings.Repeat(barGlyph, n),
			strings.Repeat(" ", barWidth-n),
			valueWidth, formatValue(b.Value))
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// BarWidthFor computes how many cells the bars may use in totalWidth.
func BarWidthFor(totalWidth, labelWidth, valueWidth int) int {
	// Label, " │", bar, " ", value.
	width := totalWidth - labelWidth - 2 - 1 - valueWidth
	return max(width, minBarWidth)
}

func formatValue(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

// TerminalWidth returns the width of stdout, or a fallback when it is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
