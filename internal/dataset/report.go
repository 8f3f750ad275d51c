package dataset

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"brand-insights-go/internal/aggregator"
	"brand-insights-go/internal/focus"
	"brand-insights-go/internal/session"
)

const SummarySheet = "Resumen"

var summaryHeader = []any{"Pregunta", "Marca", "Modo", "Estado", "Marcas actuales", "Marcas históricas", "Marca encontrada"}

// WriteReport saves one summary sheet plus a Q<n> sheet per snapshot.
func WriteReport(path string, snapshots []session.Snapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SummarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("style: %w", err)
	}

	w := &sheetWriter{f: f, sheet: SummarySheet, bold: bold}
	w.header(summaryHeader...)
	for i, snap := range snapshots {
		w.row(summaryRow(snap)...)
		if err := writeDetail(f, bold, fmt.Sprintf("Q%d", i+1), snap); err != nil {
			return err
		}
	}
	if w.err != nil {
		return w.err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Status is the one-line outcome shown in the summary sheet.
func Status(snap session.Snapshot) string {
	switch {
	case snap.Error != "":
		return snap.Error
	case snap.Info != "":
		return snap.Info
	case snap.View.NotFoundMessage != "":
		return snap.View.NotFoundMessage
	default:
		return "OK"
	}
}

func summaryRow(snap session.Snapshot) []any {
	mode := "deep"
	if snap.Request.SimilarOnly {
		mode = "similar"
	}
	var current, historical int
	if ov := snap.View.Overview; ov != nil && ov.Aggregation != nil {
		current = len(ov.Aggregation.Current)
		historical = len(ov.Aggregation.Historical)
	}
	found := ""
	if snap.View.Focus != nil {
		found = "no"
		if snap.View.Focus.Found {
			found = "sí"
		}
	}
	return []any{snap.Request.Question, snap.Request.Brand, mode, Status(snap), current, historical, found}
}

func writeDetail(f *excelize.File, bold int, name string, snap session.Snapshot) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("new sheet %s: %w", name, err)
	}
	w := &sheetWriter{f: f, sheet: name, bold: bold}
	w.row("Pregunta", snap.Request.Question)
	if snap.Request.Brand != "" {
		w.row("Marca", snap.Request.Brand)
	}
	w.row("Estado", Status(snap))

	if ov := snap.View.Overview; ov != nil {
		if ov.Tables.Current != nil {
			w.blank()
			w.row("Resultados actuales")
			writeTable(w, ov.Tables.Current, "Modelos")
		}
		w.blank()
		w.row("Preguntas similares")
		writeTable(w, ov.Tables.Historical, "Preguntas")
	}
	if r := snap.View.Focus; r != nil && r.Found {
		writeFocus(w, r)
	}
	return w.err
}

func writeTable(w *sheetWriter, rows []aggregator.Row, extra string) {
	w.header("Marca", "Menciones", "Posición promedio", "Sentimiento promedio", "Enlaces", extra)
	for _, r := range rows {
		var last any = r.Models
		if extra == "Preguntas" {
			last = r.QuestionCount
		}
		w.row(r.Brand, r.Mentions, r.AveragePosition, r.AverageSentiment, r.TotalLinks, last)
	}
}

func writeFocus(w *sheetWriter, r *focus.Report) {
	if len(r.Current) > 0 {
		w.blank()
		w.row("Resultados actuales")
		w.header("Modelo", "Posición", "Sentimiento", "Enlaces", "Menciones totales", "% de menciones")
		for _, m := range r.Current {
			w.row(m.Model, m.Position, m.Sentiment, m.LinkCount, m.TotalMentions, m.BrandMentionPercentage)
		}
	}
	if len(r.Historical) > 0 {
		w.blank()
		w.row("Preguntas similares")
		w.header("Modelo", "Pregunta", "Similitud", "Posición", "Sentimiento", "Enlaces")
		for _, m := range r.Historical {
			w.row(m.Model, m.Question, m.SimilarityScore, m.Position, m.Sentiment, m.LinkCount)
		}
		w.blank()
		w.row("Menciones", r.Summary.TotalMentions)
		w.row("Posición promedio", r.Summary.AveragePosition)
		w.row("Sentimiento promedio", r.Summary.AverageSentiment)
		w.row("Enlaces promedio", r.Summary.AverageLinkCount)
	}
}

// sheetWriter appends rows and keeps the first error.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	bold  int
	next  int
	err   error
}

func (w *sheetWriter) row(values ...any) string {
	if w.err != nil {
		return ""
	}
	w.next++
	ref, err := excelize.CoordinatesToCellName(1, w.next)
	if err != nil {
		w.err = err
		return ""
	}
	if err := w.f.SetSheetRow(w.sheet, ref, &values); err != nil {
		w.err = fmt.Errorf("write %s!%s: %w", w.sheet, ref, err)
	}
	return ref
}

func (w *sheetWriter) header(values ...any) {
	start := w.row(values...)
	if w.err != nil || start == "" {
		return
	}
	end, err := excelize.CoordinatesToCellName(len(values), w.next)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetCellStyle(w.sheet, start, end, w.bold); err != nil {
		w.err = err
	}
}

func (w *sheetWriter) blank() {
	w.next++
}
