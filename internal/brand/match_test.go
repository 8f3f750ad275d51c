package brand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brand-insights-go/internal/types"
)

func TestFind_Empty(t *testing.T) {
	_, ok := Find(nil, "Nike")
	assert.False(t, ok)

	_, ok = Find([]types.MentionRecord{}, "Nike")
	assert.False(t, ok)
}

func TestFind_NoMatch(t *testing.T) {
	records := []types.MentionRecord{{Brand: "Adidas", Position: 1}, {Brand: "Puma", Position: 2}}
	_, ok := Find(records, "Nike")
	assert.False(t, ok)
}

func TestFind_NormalizedMatch(t *testing.T) {
	records := []types.MentionRecord{
		{Brand: "Adidas", Position: 1},
		{Brand: "Café Martínez", Position: 2, Sentiment: 0.4, LinkCount: 3},
	}
	got, ok := Find(records, "cafe martinez")
	require.True(t, ok)
	assert.Equal(t, 2, got.Position)
	assert.Equal(t, 3, got.LinkCount)
}

func TestFind_FirstWins(t *testing.T) {
	records := []types.MentionRecord{
		{Brand: "Nike", Position: 1, Sentiment: 0.9},
		{Brand: "nike", Position: 4, Sentiment: -0.2},
	}
	got, ok := Find(records, "NIKE")
	require.True(t, ok)
	assert.Equal(t, records[0], got)
}
