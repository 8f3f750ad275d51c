package dataset

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"brand-insights-go/internal/session"
	"brand-insights-go/internal/types"
)

func writeSheet(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, r := range rows {
		ref, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", ref, &r))
	}
	path := filepath.Join(t.TempDir(), "questions.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadQuestions_Headers(t *testing.T) {
	path := writeSheet(t, [][]any{
		{"Marca", "Pregunta"},
		{"Nike", "¿Mejores zapatillas?"},
		{"", "   "},
		{"", "best laptops"},
	})
	qs, err := LoadQuestions(path)
	require.NoError(t, err)
	assert.Equal(t, []Question{
		{Row: 2, Text: "¿Mejores zapatillas?", Brand: "Nike"},
		{Row: 4, Text: "best laptops"},
	}, qs)
}

func TestLoadQuestions_FallbackColumn(t *testing.T) {
	path := writeSheet(t, [][]any{
		{"texto", "otra"},
		{"best phones", "ignored"},
	})
	qs, err := LoadQuestions(path)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, "best phones", qs[0].Text)
	assert.Empty(t, qs[0].Brand)
}

func TestLoadQuestions_NoRows(t *testing.T) {
	_, err := LoadQuestions(writeSheet(t, [][]any{{"question"}}))
	assert.ErrorIs(t, err, ErrNoQuestions)

	_, err = LoadQuestions(writeSheet(t, [][]any{{"question"}, {""}}))
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestLoadQuestions_MissingFile(t *testing.T) {
	_, err := LoadQuestions(filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.Error(t, err)
}

func TestWriteReport(t *testing.T) {
	current := types.ModelResultSet{{Model: "gpt", Mentions: []types.MentionRecord{
		{Brand: "Nike", Position: 1, Sentiment: 0.5},
		{Brand: "Adidas", Position: 2},
	}}}
	historical := []types.HistoricalResult{{Question: "old", SimilarityScore: 0.7, ProcessedResponses: types.ModelResultSet{
		{Model: "gpt", Mentions: []types.MentionRecord{{Brand: "Nike", Position: 3}}},
	}}}

	overview := session.Snapshot{
		Request:                types.QueryRequest{Question: "best shoes"},
		CurrentResult:          current,
		SimilarPreviousResults: historical,
		View:                   session.BuildView(current, historical, "", false, 5),
	}
	focused := session.Snapshot{
		Request:                types.QueryRequest{Question: "best shoes", Brand: "Reebok", SimilarOnly: true},
		SimilarPreviousResults: historical,
		View:                   session.BuildView(nil, historical, "Reebok", true, 5),
	}
	failed := session.Snapshot{
		Request: types.QueryRequest{Question: "broken"},
		Error:   session.MsgGenericFailure,
	}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteReport(path, []session.Snapshot{overview, focused, failed}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{SummarySheet, "Q1", "Q2", "Q3"}, f.GetSheetList())

	rows, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	require.GreaterOrEqual(t, len(rows[1]), 6)
	assert.Equal(t, []string{"best shoes", "", "deep", "OK", "2", "1"}, rows[1][:6])
	assert.Equal(t, "similar", rows[2][2])
	assert.Equal(t, session.NotFoundMessage("Reebok"), rows[2][3])
	assert.Equal(t, "no", rows[2][6])
	assert.Equal(t, session.MsgGenericFailure, rows[3][3])

	detail, err := f.GetRows("Q1")
	require.NoError(t, err)
	var brands []string
	for _, r := range detail {
		if len(r) == 6 && (r[0] == "Nike" || r[0] == "Adidas") {
			brands = append(brands, r[0])
		}
	}
	assert.Equal(t, []string{"Nike", "Adidas", "Nike"}, brands)
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "OK", Status(session.Snapshot{}))
	assert.Equal(t, "info", Status(session.Snapshot{Info: "info"}))
	assert.Equal(t, "err", Status(session.Snapshot{Error: "err", Info: "info"}))
}
