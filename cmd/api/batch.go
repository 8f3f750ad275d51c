package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"brand-insights-go/internal/dataset"
	"brand-insights-go/internal/session"
	"brand-insights-go/internal/types"
)

var batchCommand = &cobra.Command{
	Use:   "batch",
	Short: "Run every question of a spreadsheet and write a report workbook",
	RunE:  runBatch,
}

var (
	batchIn      string
	batchOut     string
	batchSimilar bool
	batchLimit   int
)

func init() {
	batchCommand.Flags().StringVarP(&batchIn, "in", "i", "", "Input .xlsx with a question column and optional brand column (required)")
	batchCommand.Flags().StringVarP(&batchOut, "out", "o", "report.xlsx", "Output report path")
	batchCommand.Flags().BoolVar(&batchSimilar, "similar", false, "Only look up similar past questions")
	batchCommand.Flags().IntVar(&batchLimit, "limit", 0, "Process at most N questions (0 = all)")
	_ = batchCommand.MarkFlagRequired("in")
	rootCmd.AddCommand(batchCommand)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	questions, err := dataset.LoadQuestions(batchIn)
	if err != nil {
		return fmt.Errorf("failed to load questions: %w", err)
	}
	if batchLimit > 0 && len(questions) > batchLimit {
		questions = questions[:batchLimit]
	}
	log := a.log.Component("batch").WithField("input", batchIn).WithField("questions", len(questions))
	log.Info("starting batch")

	ctx := cmd.Context()
	snapshots := make([]session.Snapshot, 0, len(questions))
	for _, q := range questions {
		snap, err := a.session.Submit(ctx, types.QueryRequest{Question: q.Text, Brand: q.Brand, SimilarOnly: batchSimilar})
		if err != nil {
			// invalid rows are reported, not fatal
			log.WithField("row", q.Row).WithField("error", err.Error()).Warn("skipping question")
			snap = session.Snapshot{Request: types.QueryRequest{Question: q.Text, Brand: q.Brand, SimilarOnly: batchSimilar}, Error: err.Error()}
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "[%d/%d] %s: %s\n", len(snapshots)+1, len(questions), q.Text, dataset.Status(snap))
		snapshots = append(snapshots, snap)
	}

	if err := dataset.WriteReport(batchOut, snapshots); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	log.WithField("output", batchOut).Info("batch finished")
	return nil
}
