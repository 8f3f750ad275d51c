package session

import (
	"strings"

	"brand-insights-go/internal/aggregator"
	"brand-insights-go/internal/focus"
	"brand-insights-go/internal/types"
)

const (
	TabCurrent  = "current"
	TabPrevious = "previous"
	TabFocus    = "focus"
)

// Overview is the unfocused brand summary.
type Overview struct {
	Aggregation *aggregator.Result `json:"aggregation"`
	Charts      aggregator.Charts  `json:"charts"`
	Tables      aggregator.Tables  `json:"tables"`
}

// View is everything derived from one snapshot's data.
type View struct {
	ActiveResultsTab string        `json:"active_results_tab"`
	Overview         *Overview     `json:"overview,omitempty"`
	Focus            *focus.Report `json:"focus,omitempty"`
	NotFoundMessage  string        `json:"not_found_message,omitempty"`
}

// BuildView derives the presentation data. It is pure: the same inputs
// always give the same view.
func BuildView(current types.ModelResultSet, similar []types.HistoricalResult, brandFilter string, similarOnly bool, topK int) View {
	trimmed := strings.TrimSpace(brandFilter)
	v := View{ActiveResultsTab: TabCurrent}
	if similarOnly {
		v.ActiveResultsTab = TabPrevious
		if trimmed != "" {
			v.ActiveResultsTab = TabFocus
		}
	}

	// the overview is only shown alongside historical results
	if agg := aggregator.Aggregate(current, similar, brandFilter); agg != nil && len(similar) > 0 && trimmed == "" {
		ov := &Overview{
			Aggregation: agg,
			Charts:      aggregator.BuildCharts(agg, topK),
			Tables:      aggregator.Tables{Historical: aggregator.Table(agg.Historical)},
		}
		if !similarOnly {
			ov.Tables.Current = aggregator.Table(agg.Current)
		}
		v.Overview = ov
	}

	// the focus analysis needs something to look in
	if trimmed != "" && (current.Present() || len(similar) > 0) {
		report := focus.Analyze(current, similar, trimmed)
		v.Focus = &report
		if report.NotFound() {
			v.NotFoundMessage = NotFoundMessage(trimmed)
		}
	}
	return v
}
