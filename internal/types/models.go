package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// QueryRequest is the body sent to both backend endpoints.
type QueryRequest struct {
	Question    string `json:"question" validate:"required,max=4000"`
	Brand       string `json:"brand" validate:"max=200"`
	SimilarOnly bool   `json:"similar_only,omitempty"`
}

// Validate trims the question and checks it before anything goes to the backend.
func (r *QueryRequest) Validate() error {
	r.Question = strings.TrimSpace(r.Question)
	return validate.Struct(r)
}

// MentionRecord is one brand appearing in one model's answer.
type MentionRecord struct {
	Brand     string  `json:"brand"`
	Position  int     `json:"position"`
	Sentiment float64 `json:"sentiment"`
	LinkCount int     `json:"link_count"`
}

// UnmarshalJSON accepts whole numbers written as floats (1.0) for the integer
// fields. A null sentiment or link_count decodes as 0.
func (m *MentionRecord) UnmarshalJSON(data []byte) error {
	var aux struct {
		Brand     string  `json:"brand"`
		Position  float64 `json:"position"`
		Sentiment float64 `json:"sentiment"`
		LinkCount float64 `json:"link_count"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*m = MentionRecord{
		Brand:     aux.Brand,
		Position:  int(aux.Position),
		Sentiment: aux.Sentiment,
		LinkCount: int(aux.LinkCount),
	}
	return nil
}

// ModelResults is one model's ranked output for one question.
type ModelResults struct {
	Model    string
	Mentions []MentionRecord
}

// ModelResultSet keeps the backend's model order. A nil set means the
// backend sent nothing usable (absent, null or not an object); a decoded {}
// is empty but present.
type ModelResultSet []ModelResults

// Present reports whether the backend sent a result object at all.
func (s ModelResultSet) Present() bool {
	return s != nil
}

func (s *ModelResultSet) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*s = nil
		return nil
	}
	// anything other than an object carries no per-model breakdown
	if len(trimmed) == 0 || trimmed[0] != '{' {
		*s = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if _, err := dec.Token(); err != nil {
		return err
	}
	type entry struct {
		model string
		raw   json.RawMessage
	}
	var entries []entry
	index := map[string]int{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		model, ok := tok.(string)
		if !ok {
			return fmt.Errorf("model result set: expected key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("model %q: %w", model, err)
		}
		// a repeated key keeps its first position but takes the last value
		if i, ok := index[model]; ok {
			entries[i].raw = raw
			continue
		}
		index[model] = len(entries)
		entries = append(entries, entry{model: model, raw: raw})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	out := ModelResultSet{}
	for _, e := range entries {
		raw := bytes.TrimSpace(e.raw)
		// non-array values carry no mentions
		if len(raw) == 0 || raw[0] != '[' {
			continue
		}
		mentions := []MentionRecord{}
		if err := json.Unmarshal(raw, &mentions); err != nil {
			return fmt.Errorf("model %q: %w", e.model, err)
		}
		out = append(out, ModelResults{Model: e.model, Mentions: mentions})
	}
	*s = out
	return nil
}

func (s ModelResultSet) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, mr := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(mr.Model)
		if err != nil {
			return nil, err
		}
		mentions := mr.Mentions
		if mentions == nil {
			mentions = []MentionRecord{}
		}
		val, err := json.Marshal(mentions)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// HistoricalResult is a previously answered question the backend judged similar.
type HistoricalResult struct {
	Question           string         `json:"question"`
	SimilarityScore    float64        `json:"similarity_score"`
	ProcessedResponses ModelResultSet `json:"processed_responses"`
}

type DeepQueryResponse struct {
	CurrentResult          ModelResultSet     `json:"current_result"`
	SimilarPreviousResults []HistoricalResult `json:"similar_previous_results"`
}

type SimilarQuestionsResponse struct {
	SimilarPreviousResults []HistoricalResult `json:"similar_previous_results"`
}
