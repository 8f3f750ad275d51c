package aggregator

import "sort"

const (
	// DefaultTopK is how many brands a chart shows before folding the rest.
	DefaultTopK = 5
	// OthersLabel names the bucket holding everything past the top K.
	OthersLabel = "Otros"

	KindCurrent    = "current"
	KindHistorical = "historical"
)

type ChartBucket struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Type  string `json:"type"`
}

// Charts holds the pie data for both aggregates.
type Charts struct {
	Current    []ChartBucket `json:"current"`
	Historical []ChartBucket `json:"historical"`
}

// Bucketize keeps the topK brands by mention count (ties keep first-seen
// order) and folds the remainder into one "Otros" bucket when it is non-zero.
func Bucketize(agg BrandAggregate, topK int, kind string) []ChartBucket {
	if topK < 0 {
		topK = 0
	}
	sorted := make(BrandAggregate, len(agg))
	copy(sorted, agg)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MentionCount > sorted[j].MentionCount
	})

	out := make([]ChartBucket, 0, min(len(sorted), topK)+1)
	rest := 0
	for i, s := range sorted {
		if i < topK {
			out = append(out, ChartBucket{Name: s.Brand, Value: s.MentionCount, Type: kind})
			continue
		}
		rest += s.MentionCount
	}
	if rest > 0 {
		out = append(out, ChartBucket{Name: OthersLabel, Value: rest, Type: kind})
	}
	return out
}

// BuildCharts bucketizes both aggregates. A nil result yields empty charts.
func BuildCharts(r *Result, topK int) Charts {
	if r == nil {
		return Charts{Current: []ChartBucket{}, Historical: []ChartBucket{}}
	}
	return Charts{
		Current:    Bucketize(r.Current, topK, KindCurrent),
		Historical: Bucketize(r.Historical, topK, KindHistorical),
	}
}
