package stats

import (
	"context"
	"io"
	"time"

	"github.com/verte-zerg/fiszki/internal/model"
	"github.com/verte-zerg/fiszki/internal/store"
)

const (
	reportDays      = 7
	reportWeakWords = 10
	reportTopUnits  = 5
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Sessions         []model.SessionAggregate
	WindowSessionIDs []int64
	WordAggsAll      []model.WordAggregate
	WordAggsWindow   []model.WordAggregate
	WeakWords        []model.WordAggregate
	TopUnits         []model.UnitTotal
	Days             []DayStats
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig, now time.Time) (Report, error) {
	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}

	allIDs := sessionIDs(sessions)
	windowIDs := lastSessionIDs(sessions, cfg.CurveWindow)
	wordAggsAll, err := st.ListWordAggregatesForSessions(ctx, allIDs)
	if err != nil {
		return Report{}, err
	}
	wordAggsWindow, err := st.ListWordAggregatesForSessions(ctx, windowIDs)
	if err != nil {
		return Report{}, err
	}
	window := cfg.CurveWindow
	if window <= 0 {
		window = len(sessions)
	}
	weak, err := st.GetWeakWords(ctx, window, reportWeakWords)
	if err != nil {
		return Report{}, err
	}
	units, err := st.TopUnits(ctx, reportTopUnits)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Sessions:         sessions,
		WindowSessionIDs: windowIDs,
		WordAggsAll:      wordAggsAll,
		WordAggsWindow:   wordAggsWindow,
		WeakWords:        weak,
		TopUnits:         units,
		Days:             LastDays(sessions, now, reportDays),
	}, nil
}

func sessionIDs(sessions []model.SessionAggregate) []int64 {
	ids := make([]int64, len(sessions))
	for i, s := range sessions {
		ids[i] = s.SessionID
	}
	return ids
}

func lastSessionIDs(sessions []model.SessionAggregate, window int) []int64 {
	if window <= 0 || len(sessions) <= window {
		return sessionIDs(sessions)
	}
	return sessionIDs(sessions[len(sessions)-window:])
}

// RenderReport prints the full text report.
func RenderReport(w io.Writer, report Report, window, width int) error {
	if err := RenderSummary(w, report.Sessions); err != nil {
		return err
	}
	if len(report.Sessions) == 0 {
		return nil
	}
	if err := RenderCurves(w, report.Sessions, window); err != nil {
		return err
	}
	if err := RenderDaily(w, report.Days, width); err != nil {
		return err
	}
	if err := BarChart(w, "Most studied units", UnitBars(report.TopUnits), width); err != nil {
		return err
	}
	if err := RenderWordTable(w, "Weakest words", report.WeakWords); err != nil {
		return err
	}
	return RenderWordTable(w, "Most reviewed words", MostReviewed(report.WordAggsWindow, reportWeakWords))
}

// UnitBars converts unit totals to chart bars.
func UnitBars(units []model.UnitTotal) []Bar {
	bars := make([]Bar, 0, len(units))
	for _, u := range units {
		label := u.Unit
		if label == "" {
			label = "(all)"
		}
		bars = append(bars, Bar{Label: "Unit " + label, Value: float64(u.WordsReviewed)})
	}
	return bars
}
