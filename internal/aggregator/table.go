package aggregator

import (
	"sort"
	"strings"
)

// Position tiers used to colour rank badges.
const (
	TierTop3  = "top3"
	TierTop5  = "top5"
	TierTop10 = "top10"
	TierRest  = "rest"
)

func PositionTier(pos float64) string {
	switch {
	case pos <= 3:
		return TierTop3
	case pos <= 5:
		return TierTop5
	case pos <= 10:
		return TierTop10
	default:
		return TierRest
	}
}

// Row is one line of the ranked brand table.
type Row struct {
	Brand            string  `json:"brand"`
	Mentions         int     `json:"mentions"`
	AveragePosition  float64 `json:"average_position"`
	AverageSentiment float64 `json:"average_sentiment"`
	TotalLinks       int     `json:"total_links"`
	Tier             string  `json:"tier"`
	Models           string  `json:"models,omitempty"`
	QuestionCount    int     `json:"question_count,omitempty"`
}

// Table ranks brands by ascending average position, best first.
func Table(agg BrandAggregate) []Row {
	rows := make([]Row, 0, len(agg))
	for _, s := range agg {
		avg := s.AveragePosition()
		rows = append(rows, Row{
			Brand:            s.Brand,
			Mentions:         s.MentionCount,
			AveragePosition:  avg,
			AverageSentiment: s.AverageSentiment(),
			TotalLinks:       s.TotalLinks,
			Tier:             PositionTier(avg),
			Models:           strings.Join(s.Models, ", "),
			QuestionCount:    len(s.Questions),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].AveragePosition < rows[j].AveragePosition
	})
	return rows
}

// Tables holds the ranked rows for both aggregates.
type Tables struct {
	Current    []Row `json:"current,omitempty"`
	Historical []Row `json:"historical,omitempty"`
}
