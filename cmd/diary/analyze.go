package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/marcoviero/daily-diary/internal/analysis"
	"github.com/marcoviero/daily-diary/internal/cli"
)

// analysisPeriod resolves the --days flag into a date range ending today,
// anchored to local midnight so the window follows the user's calendar day.
func analysisPeriod(days int) (time.Time, time.Time) {
	now := time.Now()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := end.AddDate(0, 0, -days)
	return start, end
}

func analyzeCmd() *cobra.Command {
	var days int
	var target string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the full analysis dashboard",
		Long: `Builds the daily feature table for the period and runs every analysis
pass over it: summary stats, factor correlations, delayed effects,
weekday patterns, medication effectiveness, and threshold insights.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			eng := analysis.NewEngine(store, engineOptions())
			start, end := analysisPeriod(days)

			summary, err := eng.GetSummaryStats(ctx, start, end)
			if err != nil {
				return err
			}
			cmd.Println(cli.RenderSummary(summary))
			if summary == nil {
				return nil
			}

			correlations, err := eng.AnalyzeCorrelations(ctx, target, start, end)
			if err != nil {
				return err
			}
			cmd.Println(cli.RenderCorrelations(topCorrelations(correlations, 10)))

			lags, err := eng.AnalyzeLagCorrelations(ctx, target, start, end)
			if err != nil {
				return err
			}
			cmd.Println(cli.RenderLagCorrelations(lags))

			patterns, err := eng.FindPatterns(ctx, start, end)
			if err != nil {
				return err
			}
			cmd.Println(cli.RenderPatterns(patterns))

			cmd.Println(cli.RenderMedications(eng.AnalyzeMedicationEffectiveness(ctx, start, end)))

			insights, err := eng.GetInsights(ctx, start, end)
			if err != nil {
				return err
			}
			cmd.Println(cli.RenderInsights(insights))

			return nil
		},
	}

	cmd.PersistentFlags().IntVar(&days, "days", 90, "number of days to analyze")
	cmd.PersistentFlags().StringVar(&target, "target", analysis.DefaultTarget, "target metric to correlate against")

	cmd.AddCommand(correlationsCmd(&days, &target))
	cmd.AddCommand(lagsCmd(&days, &target))
	cmd.AddCommand(patternsCmd(&days))
	cmd.AddCommand(medicationsCmd(&days))
	cmd.AddCommand(insightsCmd(&days))
	cmd.AddCommand(summaryCmd(&days))

	return cmd
}

func topCorrelations(results []analysis.CorrelationResult, n int) []analysis.CorrelationResult {
	if len(results) > n {
		return results[:n]
	}
	return results
}

func correlationsCmd(days *int, target *string) *cobra.Command {
	return &cobra.Command{
		Use:   "correlations",
		Short: "Same-day factor correlations against the target metric",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			eng := analysis.NewEngine(store, engineOptions())
			start, end := analysisPeriod(*days)

			results, err := eng.AnalyzeCorrelations(ctx, *target, start, end)
			if err != nil {
				return err
			}
			cmd.Println(cli.RenderCorrelations(results))
			return nil
		},
	}
}

func lagsCmd(days *int, target *string) *cobra.Command {
	return &cobra.Command{
		Use:   "lags",
		Short: "Delayed-effect correlations at multiple day offsets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			eng := analysis.NewEngine(store, engineOptions())
			start, end := analysisPeriod(*days)

			results, err := eng.AnalyzeLagCorrelations(ctx, *target, start, end)
			if err != nil {
				return err
			}
			cmd.Println(cli.RenderLagCorrelations(results))
			return nil
		},
	}
}

func patternsCmd(days *int) *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "Day-of-week and weekend symptom patterns",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			eng := analysis.NewEngine(store, engineOptions())
			start, end := analysisPeriod(*days)

			patterns, err := eng.FindPatterns(ctx, start, end)
			if err != nil {
				return err
			}
			cmd.Println(cli.RenderPatterns(patterns))
			return nil
		},
	}
}

func medicationsCmd(days *int) *cobra.Command {
	return &cobra.Command{
		Use:   "medications",
		Short: "Medication effectiveness vs baseline days",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			eng := analysis.NewEngine(store, engineOptions())
			start, end := analysisPeriod(*days)

			cmd.Println(cli.RenderMedications(eng.AnalyzeMedicationEffectiveness(ctx, start, end)))
			return nil
		},
	}
}

func insightsCmd(days *int) *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Threshold-triggered recommendations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			eng := analysis.NewEngine(store, engineOptions())
			start, end := analysisPeriod(*days)

			insights, err := eng.GetInsights(ctx, start, end)
			if err != nil {
				return err
			}
			cmd.Println(cli.RenderInsights(insights))
			return nil
		},
	}
}

func summaryCmd(days *int) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Scalar summary of the analysis period",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			eng := analysis.NewEngine(store, engineOptions())
			start, end := analysisPeriod(*days)

			summary, err := eng.GetSummaryStats(ctx, start, end)
			if err != nil {
				return err
			}
			cmd.Println(cli.RenderSummary(summary))
			return nil
		},
	}
}
