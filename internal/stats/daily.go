package stats

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/verte-zerg/fiszki/internal/model"
)

// DayStats rolls up the sessions ended on one calendar day.
type DayStats struct {
	Day      time.Time
	Sessions int
	Answers  int
	Minutes  float64
	Accuracy float64 // Mean session accuracy in percent.
}

func dayOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DailyStats groups sessions by the local day they ended on, oldest first.
func DailyStats(sessions []model.SessionAggregate, loc *time.Location) []DayStats {
	if loc == nil {
		loc = time.Local
	}
	byDay := map[time.Time]*DayStats{}
	accSums := map[time.Time]float64{}
	for _, s := range sessions {
		day := dayOf(s.EndedAt, loc)
		ds, ok := byDay[day]
		if !ok {
			ds = &DayStats{Day: day}
			byDay[day] = ds
		}
		_, acc := SessionMetrics(s.Correct, s.Wrong, s.DurationMs)
		ds.Sessions++
		ds.Answers += s.Correct + s.Wrong
		ds.Minutes += float64(s.DurationMs) / 60000.0
		accSums[day] += acc * 100
	}
	out := make([]DayStats, 0, len(byDay))
	for day, ds := range byDay {
		ds.Accuracy = accSums[day] / float64(ds.Sessions)
		out = append(out, *ds)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Day.Before(out[j].Day)
	})
	return out
}

// LastDays returns one entry per day for the n days ending on now's day,
// including days without sessions.
func LastDays(sessions []model.SessionAggregate, now time.Time, n int) []DayStats {
	if n <= 0 {
		return nil
	}
	loc := now.Location()
	today := dayOf(now, loc)
	first := today.AddDate(0, 0, -(n - 1))
	byDay := map[time.Time]DayStats{}
	for _, ds := range DailyStats(sessions, loc) {
		byDay[ds.Day] = ds
	}
	out := make([]DayStats, 0, n)
	for day := first; !day.After(today); day = day.AddDate(0, 0, 1) {
		ds, ok := byDay[day]
		if !ok {
			ds = DayStats{Day: day}
		}
		out = append(out, ds)
	}
	return out
}

// RenderDaily prints a per-day table followed by a bar chart of answers.
func RenderDaily(w io.Writer, days []DayStats, width int) error {
	if len(days) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Daily"); err != nil {
		return err
	}
	headers := []string{"Day", "Sessions", "Words", "Minutes", "Accuracy"}
	rows := make([][]string, 0, len(days))
	bars := make([]Bar, 0, len(days))
	for _, ds := range days {
		label := ds.Day.Format("Mon 01-02")
		acc := "-"
		if ds.Sessions > 0 {
			acc = fmt.Sprintf("%.1f%%", ds.Accuracy)
		}
		rows = append(rows, []string{
			label,
			fmt.Sprintf("%d", ds.Sessions),
			fmt.Sprintf("%d", ds.Answers),
			fmt.Sprintf("%.1f", ds.Minutes),
			acc,
		})
		bars = append(bars, Bar{Label: label, Value: float64(ds.Answers)})
	}
	lines := formatTable(headers, rows, map[int]bool{1: true, 2: true, 3: true, 4: true})
	if err := writeLines(w, append(lines, "")); err != nil {
		return err
	}
	return BarChart(w, "Words reviewed per day", bars, width)
}
