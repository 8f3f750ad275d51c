// Package focus analyzes a single brand across the current answer and the
// similar historical answers, model by model.
package focus

import (
	"math"
	"sort"
	"strings"

	"brand-insights-go/internal/brand"
	"brand-insights-go/internal/types"
)

// CurrentMatch is the target brand as found in one model's current answer.
type CurrentMatch struct {
	Model                  string  `json:"model"`
	Position               int     `json:"position"`
	Sentiment              float64 `json:"sentiment"`
	LinkCount              int     `json:"link_count"`
	TotalMentions          int     `json:"total_mentions"`
	BrandMentionPercentage float64 `json:"brand_mention_percentage"`
}

// HistoricalMatch is the target brand as found in one model's answer to a similar question.
type HistoricalMatch struct {
	Model                  string  `json:"model"`
	Position               int     `json:"position"`
	Sentiment              float64 `json:"sentiment"`
	LinkCount              int     `json:"link_count"`
	Question               string  `json:"question"`
	SimilarityScore        float64 `json:"similarity_score"`
	TotalMentions          int     `json:"total_mentions"`
	BrandMentionPercentage float64 `json:"brand_mention_percentage"`
}

// ModelStats counts how often a model mentioned the brand relative to all
// brands it mentioned.
type ModelStats struct {
	Model                  string  `json:"model"`
	TotalMentions          int     `json:"total_mentions"`
	BrandMentions          int     `json:"brand_mentions"`
	BrandMentionPercentage float64 `json:"brand_mention_percentage"`
}

// Summary is the overall historical picture for the brand.
type Summary struct {
	TotalMentions    int      `json:"total_mentions"`
	AveragePosition  float64  `json:"average_position"`
	AverageSentiment float64  `json:"average_sentiment"`
	AverageLinkCount float64  `json:"average_link_count"`
	Questions        []string `json:"questions"`
}

// ModelSummary averages one model's historical matches.
type ModelSummary struct {
	Model                  string  `json:"model"`
	BrandMentions          int     `json:"brand_mentions"`
	AveragePosition        float64 `json:"average_position"`
	AverageSentiment       float64 `json:"average_sentiment"`
	AverageLinks           float64 `json:"average_links"`
	BrandMentionPercentage float64 `json:"brand_mention_percentage"`
}

type TrendPoint struct {
	Index             int     `json:"index"`
	Position          int     `json:"position"`
	Sentiment         float64 `json:"sentiment"`
	SimilarityPercent float64 `json:"similarity_percent"`
}

type ModelComparison struct {
	Model             string  `json:"model"`
	MentionPercentage float64 `json:"mention_percentage"`
	TotalMentions     int     `json:"total_mentions"`
	BrandMentions     int     `json:"brand_mentions"`
}

type ModelPoint struct {
	Model     string  `json:"model"`
	Position  int     `json:"position"`
	Sentiment float64 `json:"sentiment"`
}

// Report is everything the focused view shows for one brand.
type Report struct {
	Brand                string            `json:"brand"`
	Current              []CurrentMatch    `json:"current"`
	CurrentModelStats    []ModelStats      `json:"current_model_stats"`
	PositionChart        []ModelPoint      `json:"position_chart"`
	Historical           []HistoricalMatch `json:"historical"`
	HistoricalModelStats []ModelStats      `json:"historical_model_stats"`
	ModelSummaries       []ModelSummary    `json:"model_summaries"`
	Summary              Summary           `json:"summary"`
	Trend                []TrendPoint      `json:"trend"`
	ModelComparison      []ModelComparison `json:"model_comparison"`
	Found                bool              `json:"found"`
}

// NotFound reports that the brand appears in neither current nor historical answers.
func (r Report) NotFound() bool {
	return len(r.Current) == 0 && len(r.Historical) == 0
}

// Analyze extracts the target brand from every model answer. An empty
// (after trimming) target yields an empty report.
func Analyze(current types.ModelResultSet, historical []types.HistoricalResult, target string) Report {
	target = strings.TrimSpace(target)
	if target == "" {
		return Report{}
	}

	r := Report{
		Brand:                target,
		Current:              []CurrentMatch{},
		CurrentModelStats:    []ModelStats{},
		PositionChart:        []ModelPoint{},
		Historical:           []HistoricalMatch{},
		HistoricalModelStats: []ModelStats{},
		ModelSummaries:       []ModelSummary{},
		Summary:              Summary{Questions: []string{}},
		Trend:                []TrendPoint{},
		ModelComparison:      []ModelComparison{},
	}

	currentStats := newStatsTable()
	for _, mr := range current {
		total := len(mr.Mentions)
		m, ok := brand.Find(mr.Mentions, target)
		currentStats.add(mr.Model, total, ok)
		if !ok {
			continue
		}
		r.Current = append(r.Current, CurrentMatch{
			Model:                  mr.Model,
			Position:               m.Position,
			Sentiment:              m.Sentiment,
			LinkCount:              m.LinkCount,
			TotalMentions:          total,
			BrandMentionPercentage: 100 / float64(total),
		})
		r.PositionChart = append(r.PositionChart, ModelPoint{Model: mr.Model, Position: m.Position, Sentiment: m.Sentiment})
	}
	r.CurrentModelStats = currentStats.list()

	historicalStats := newStatsTable()
	var totalSentiment float64
	var totalLinks, totalPositions int
	for _, h := range historical {
		if !h.ProcessedResponses.Present() {
			continue
		}
		for _, mr := range h.ProcessedResponses {
			total := len(mr.Mentions)
			m, ok := brand.Find(mr.Mentions, target)
			historicalStats.add(mr.Model, total, ok)
			if !ok {
				continue
			}
			r.Historical = append(r.Historical, HistoricalMatch{
				Model:                  mr.Model,
				Position:               m.Position,
				Sentiment:              m.Sentiment,
				LinkCount:              m.LinkCount,
				Question:               h.Question,
				SimilarityScore:        h.SimilarityScore,
				TotalMentions:          total,
				BrandMentionPercentage: 100 / float64(total),
			})
			r.Summary.TotalMentions++
			totalSentiment += m.Sentiment
			totalLinks += m.LinkCount
			totalPositions += m.Position
			r.Summary.Questions = appendUnique(r.Summary.Questions, h.Question)
		}
	}
	r.HistoricalModelStats = historicalStats.list()

	if n := r.Summary.TotalMentions; n > 0 {
		r.Summary.AveragePosition = float64(totalPositions) / float64(n)
		r.Summary.AverageSentiment = totalSentiment / float64(n)
		r.Summary.AverageLinkCount = float64(totalLinks) / float64(n)
	}

	r.ModelSummaries = modelSummaries(r.HistoricalModelStats, r.Historical)
	r.Trend = trend(r.Historical)
	for _, s := range r.HistoricalModelStats {
		r.ModelComparison = append(r.ModelComparison, ModelComparison{
			Model:             s.Model,
			MentionPercentage: s.BrandMentionPercentage,
			TotalMentions:     s.TotalMentions,
			BrandMentions:     s.BrandMentions,
		})
	}
	r.Found = !r.NotFound()
	return r
}

// trend orders historical matches by ascending similarity. One point is not a trend.
func trend(matches []HistoricalMatch) []TrendPoint {
	if len(matches) <= 1 {
		return []TrendPoint{}
	}
	sorted := make([]HistoricalMatch, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SimilarityScore < sorted[j].SimilarityScore
	})
	out := make([]TrendPoint, 0, len(sorted))
	for i, m := range sorted {
		out = append(out, TrendPoint{
			Index:             i + 1,
			Position:          m.Position,
			Sentiment:         m.Sentiment,
			SimilarityPercent: math.Round(m.SimilarityScore*1000) / 10,
		})
	}
	return out
}

func modelSummaries(stats []ModelStats, matches []HistoricalMatch) []ModelSummary {
	out := []ModelSummary{}
	for _, s := range stats {
		var n, pos, links int
		var sentiment float64
		for _, m := range matches {
			if m.Model != s.Model {
				continue
			}
			n++
			pos += m.Position
			links += m.LinkCount
			sentiment += m.Sentiment
		}
		if n == 0 {
			continue
		}
		out = append(out, ModelSummary{
			Model:                  s.Model,
			BrandMentions:          s.BrandMentions,
			AveragePosition:        float64(pos) / float64(n),
			AverageSentiment:       sentiment / float64(n),
			AverageLinks:           float64(links) / float64(n),
			BrandMentionPercentage: s.BrandMentionPercentage,
		})
	}
	return out
}

// statsTable accumulates per-model counts in first-seen order.
type statsTable struct {
	stats []ModelStats
	index map[string]int
}

func newStatsTable() *statsTable {
	return &statsTable{index: map[string]int{}}
}

func (t *statsTable) add(model string, total int, matched bool) {
	i, ok := t.index[model]
	if !ok {
		i = len(t.stats)
		t.index[model] = i
		t.stats = append(t.stats, ModelStats{Model: model})
	}
	t.stats[i].TotalMentions += total
	if matched {
		t.stats[i].BrandMentions++
	}
}

// list computes percentages once every answer has been counted.
func (t *statsTable) list() []ModelStats {
	out := make([]ModelStats, 0, len(t.stats))
	for _, s := range t.stats {
		if s.TotalMentions > 0 {
			s.BrandMentionPercentage = float64(s.BrandMentions) / float64(s.TotalMentions) * 100
		}
		out = append(out, s)
	}
	return out
}

func appendUnique(list []string, v string) []string {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}
