package aggregator

import (
	"brand-insights-go/internal/brand"
	"brand-insights-go/internal/types"
)

// BrandStats accumulates every mention of one raw brand label.
// Models is filled for the current aggregate, Questions for the historical one.
type BrandStats struct {
	Brand          string   `json:"brand"`
	MentionCount   int      `json:"mention_count"`
	TotalSentiment float64  `json:"total_sentiment"`
	TotalLinks     int      `json:"total_links"`
	Models         []string `json:"models,omitempty"`
	Questions      []string `json:"questions,omitempty"`
	Positions      []int    `json:"positions"`
}

// AveragePosition is 0 when there are no positions.
func (s BrandStats) AveragePosition() float64 {
	if len(s.Positions) == 0 {
		return 0
	}
	sum := 0
	for _, p := range s.Positions {
		sum += p
	}
	return float64(sum) / float64(len(s.Positions))
}

// AverageSentiment is 0 when there are no mentions.
func (s BrandStats) AverageSentiment() float64 {
	if s.MentionCount == 0 {
		return 0
	}
	return s.TotalSentiment / float64(s.MentionCount)
}

// BrandAggregate lists brands in the order they were first seen.
type BrandAggregate []BrandStats

// Lookup finds a brand by its raw label.
func (a BrandAggregate) Lookup(name string) (BrandStats, bool) {
	for _, s := range a {
		if s.Brand == name {
			return s, true
		}
	}
	return BrandStats{}, false
}

// Result holds the two independent aggregates of one query.
type Result struct {
	Current    BrandAggregate `json:"current"`
	Historical BrandAggregate `json:"historical"`
}

// Aggregate groups every mention by its raw brand label, once for the current
// result and once across all historical results. It returns nil when there is
// nothing to aggregate or when brandFilter names a specific brand, in which
// case the focused analysis applies instead.
//
// Labels are not normalized here: "Nike" and "NIKE" stay separate entries.
func Aggregate(current types.ModelResultSet, historical []types.HistoricalResult, brandFilter string) *Result {
	if (!current.Present() && len(historical) == 0) || brand.IsActive(brandFilter) {
		return nil
	}

	cur := newBuilder()
	for _, mr := range current {
		for _, m := range mr.Mentions {
			s := cur.add(m)
			s.Models = appendUnique(s.Models, mr.Model)
		}
	}

	hist := newBuilder()
	for _, h := range historical {
		if !h.ProcessedResponses.Present() {
			continue
		}
		for _, mr := range h.ProcessedResponses {
			for _, m := range mr.Mentions {
				s := hist.add(m)
				s.Questions = appendUnique(s.Questions, h.Question)
			}
		}
	}

	return &Result{Current: cur.result(), Historical: hist.result()}
}

type builder struct {
	stats []*BrandStats
	index map[string]int
}

func newBuilder() *builder {
	return &builder{index: map[string]int{}}
}

func (b *builder) add(m types.MentionRecord) *BrandStats {
	i, ok := b.index[m.Brand]
	if !ok {
		i = len(b.stats)
		b.index[m.Brand] = i
		b.stats = append(b.stats, &BrandStats{Brand: m.Brand, Positions: []int{}})
	}
	s := b.stats[i]
	s.MentionCount++
	s.TotalSentiment += m.Sentiment
	s.TotalLinks += m.LinkCount
	s.Positions = append(s.Positions, m.Position)
	return s
}

func (b *builder) result() BrandAggregate {
	out := make(BrandAggregate, 0, len(b.stats))
	for _, s := range b.stats {
		out = append(out, *s)
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
