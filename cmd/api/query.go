package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"brand-insights-go/internal/session"
	"brand-insights-go/internal/types"
)

var queryCommand = &cobra.Command{
	Use:   "query",
	Short: "Submit one question and print the result",
	RunE:  runQuery,
}

var (
	queryQuestion string
	queryBrand    string
	querySimilar  bool
	queryJSON     bool
)

func init() {
	queryCommand.Flags().StringVarP(&queryQuestion, "question", "q", "", "Question to ask (required)")
	queryCommand.Flags().StringVarP(&queryBrand, "brand", "b", "", "Focus on a single brand")
	queryCommand.Flags().BoolVar(&querySimilar, "similar", false, "Only look up similar past questions")
	queryCommand.Flags().BoolVar(&queryJSON, "json", false, "Print the full snapshot as JSON")
	_ = queryCommand.MarkFlagRequired("question")
	rootCmd.AddCommand(queryCommand)
}

func runQuery(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	snap, err := a.session.Submit(cmd.Context(), types.QueryRequest{
		Question:    queryQuestion,
		Brand:       queryBrand,
		SimilarOnly: querySimilar,
	})
	if err != nil {
		return err
	}
	if queryJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}
	printSummary(cmd.OutOrStdout(), snap)
	return nil
}

// printSummary writes a short human-readable digest of a snapshot.
func printSummary(w io.Writer, snap session.Snapshot) {
	fmt.Fprintf(w, "Pregunta: %s\n", snap.Request.Question)
	switch {
	case snap.Error != "":
		fmt.Fprintf(w, "Error: %s\n", snap.Error)
		return
	case snap.Info != "":
		fmt.Fprintln(w, snap.Info)
		return
	}

	if ov := snap.View.Overview; ov != nil {
		if len(ov.Tables.Current) > 0 {
			fmt.Fprintln(w, "\nResultados actuales:")
			for i, r := range ov.Tables.Current {
				fmt.Fprintf(w, "  %d. %s  menciones=%d  posición=%.1f  sentimiento=%.2f  modelos=%s\n",
					i+1, r.Brand, r.Mentions, r.AveragePosition, r.AverageSentiment, r.Models)
			}
		}
		fmt.Fprintf(w, "\nPreguntas similares: %d\n", len(snap.SimilarPreviousResults))
		for i, r := range ov.Tables.Historical {
			fmt.Fprintf(w, "  %d. %s  menciones=%d  posición=%.1f  preguntas=%d\n",
				i+1, r.Brand, r.Mentions, r.AveragePosition, r.QuestionCount)
		}
	}

	if r := snap.View.Focus; r != nil {
		if !r.Found {
			fmt.Fprintln(w, snap.View.NotFoundMessage)
			return
		}
		fmt.Fprintf(w, "\nMarca: %s\n", r.Brand)
		for _, m := range r.Current {
			fmt.Fprintf(w, "  %s: posición %d de %d (sentimiento %.2f)\n", m.Model, m.Position, m.TotalMentions, m.Sentiment)
		}
		if r.Summary.TotalMentions > 0 {
			fmt.Fprintf(w, "  histórico: %d menciones, posición promedio %.1f, sentimiento promedio %.2f\n",
				r.Summary.TotalMentions, r.Summary.AveragePosition, r.Summary.AverageSentiment)
		}
	}
}
