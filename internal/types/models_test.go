package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func models(s ModelResultSet) []string {
	out := make([]string, 0, len(s))
	for _, mr := range s {
		out = append(out, mr.Model)
	}
	return out
}

func TestModelResultSet_Unmarshal(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		present bool
		models  []string
	}{
		{"null", `null`, false, nil},
		{"string", `"n/a"`, false, nil},
		{"array", `[1, 2]`, false, nil},
		{"empty object", `{}`, true, []string{}},
		{"keeps key order", `{"zeta": [], "alpha": [], "mid": []}`, true, []string{"zeta", "alpha", "mid"}},
		{"skips non-array values", `{"gpt": [], "claude": "unavailable", "gemini": null}`, true, []string{"gpt"}},
		{"repeated key keeps first position", `{"gpt": [], "gemini": [], "gpt": [{"brand": "Nike", "position": 1}]}`, true, []string{"gpt", "gemini"}},
		{"repeated key with non-array last value", `{"gpt": [{"brand": "Nike", "position": 1}], "gemini": [], "gpt": "gone"}`, true, []string{"gemini"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s ModelResultSet
			require.NoError(t, json.Unmarshal([]byte(tt.body), &s))
			assert.Equal(t, tt.present, s.Present())
			if tt.present {
				assert.Equal(t, tt.models, models(s))
			}
		})
	}
}

func TestModelResultSet_RepeatedKeyTakesLastValue(t *testing.T) {
	var s ModelResultSet
	require.NoError(t, json.Unmarshal([]byte(`{"gpt": [{"brand": "Old", "position": 1}], "gemini": [], "gpt": [{"brand": "New", "position": 2}]}`), &s))
	require.Len(t, s, 2)
	assert.Equal(t, []MentionRecord{{Brand: "New", Position: 2}}, s[0].Mentions)
}

func TestModelResultSet_Marshal(t *testing.T) {
	tests := []struct {
		name string
		set  ModelResultSet
		want string
	}{
		{"nil", nil, `null`},
		{"empty", ModelResultSet{}, `{}`},
		{"nil mentions", ModelResultSet{{Model: "gpt"}}, `{"gpt":[]}`},
		{"order kept", ModelResultSet{
			{Model: "zeta", Mentions: []MentionRecord{{Brand: "Nike", Position: 1, Sentiment: 0.5, LinkCount: 2}}},
			{Model: "alpha", Mentions: []MentionRecord{}},
		}, `{"zeta":[{"brand":"Nike","position":1,"sentiment":0.5,"link_count":2}],"alpha":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(tt.set)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(raw))
		})
	}
}

func TestModelResultSet_RoundTrip(t *testing.T) {
	in := ModelResultSet{
		{Model: "openai", Mentions: []MentionRecord{{Brand: "Nike", Position: 1, Sentiment: 0.8, LinkCount: 3}}},
		{Model: "gemini", Mentions: []MentionRecord{}},
	}
	raw, err := json.Marshal(in)
	require.NoError(t, err)
	var out ModelResultSet
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, in, out)
}

func TestMentionRecord_Unmarshal(t *testing.T) {
	var m MentionRecord
	require.NoError(t, json.Unmarshal([]byte(`{"brand": "Nike", "position": 2.0, "sentiment": null, "link_count": null}`), &m))
	assert.Equal(t, MentionRecord{Brand: "Nike", Position: 2}, m)
}

func TestHistoricalResult_NonObjectBreakdownIsAbsent(t *testing.T) {
	var h HistoricalResult
	require.NoError(t, json.Unmarshal([]byte(`{"question": "q", "similarity_score": 0.4, "processed_responses": "n/a"}`), &h))
	assert.Equal(t, "q", h.Question)
	assert.False(t, h.ProcessedResponses.Present())
}

func TestQueryRequest_Validate(t *testing.T) {
	r := QueryRequest{Question: "  best shoes  "}
	require.NoError(t, r.Validate())
	assert.Equal(t, "best shoes", r.Question)

	blank := QueryRequest{Question: "   "}
	assert.Error(t, blank.Validate())
}
