// Package dataset reads batch question sheets and writes result workbooks.
package dataset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrNoQuestions is returned when a sheet has no usable question rows.
var ErrNoQuestions = errors.New("no data rows")

// Question is one row of a batch sheet.
type Question struct {
	Row   int    `json:"row"`
	Text  string `json:"question"`
	Brand string `json:"brand,omitempty"`
}

// LoadQuestions reads the first sheet. The question and brand columns are
// found by header heuristics; without a recognizable question header the
// first column is used.
func LoadQuestions(path string) ([]Question, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, ErrNoQuestions
	}

	questionIdx, brandIdx := columns(rows[0])
	var out []Question
	for i, r := range rows[1:] {
		q := Question{Row: i + 2, Text: strings.TrimSpace(cell(r, questionIdx))}
		if q.Text == "" {
			continue
		}
		q.Brand = strings.TrimSpace(cell(r, brandIdx))
		out = append(out, q)
	}
	if len(out) == 0 {
		return nil, ErrNoQuestions
	}
	return out, nil
}

func columns(header []string) (questionIdx, brandIdx int) {
	questionIdx, brandIdx = -1, -1
	for i, h := range header {
		l := strings.ToLower(strings.TrimSpace(h))
		switch {
		case strings.Contains(l, "question") || strings.Contains(l, "pregunta"):
			if questionIdx == -1 {
				questionIdx = i
			}
		case strings.Contains(l, "brand") || strings.Contains(l, "marca"):
			if brandIdx == -1 {
				brandIdx = i
			}
		}
	}
	if questionIdx == -1 {
		questionIdx = 0
		if brandIdx == 0 {
			brandIdx = -1
		}
	}
	return questionIdx, brandIdx
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
