package cli

import (
	"fmt"
	"strings"

	"github.com/marcoviero/daily-diary/internal/analysis"
)

// RenderSummary formats the period overview box.
func RenderSummary(stats *analysis.SummaryStats) string {
	if stats == nil {
		return SubtleStyle.Render("Not enough data recorded for this period.")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Period: %s to %s (%d days)\n",
		stats.StartDate.Format("2006-01-02"), stats.EndDate.Format("2006-01-02"), stats.PeriodDays)
	fmt.Fprintf(&b, "Days with symptoms: %d (%.0f%%)\n", stats.DaysWithSymptoms, stats.SymptomRate*100)
	if stats.AvgWellbeing != nil {
		fmt.Fprintf(&b, "Average wellbeing: %.1f/10\n", *stats.AvgWellbeing)
	}
	if stats.AvgSleepScore != nil {
		fmt.Fprintf(&b, "Average sleep score: %.0f\n", *stats.AvgSleepScore)
	}
	fmt.Fprintf(&b, "Total activity: %.1f h, %.0f m climbed", stats.TotalActivityHours, stats.TotalElevationM)

	return RenderBox("Summary", b.String())
}

// RenderCorrelations formats a correlation result list, one line per factor.
func RenderCorrelations(results []analysis.CorrelationResult) string {
	if len(results) == 0 {
		return SubtleStyle.Render("No factors had enough paired data to test.")
	}

	var b strings.Builder
	b.WriteString(FormatTitle("Correlations"))
	b.WriteString("\n")
	for _, r := range results {
		line := fmt.Sprintf("%-30s r=%+.2f  p=%.3f  n=%d  %s",
			r.Factor, r.Correlation, r.PValue, r.NSamples, r.Strength())
		if r.IsSignificant() {
			b.WriteString(BoldStyle.Render(line))
		} else {
			b.WriteString(SubtleStyle.Render(line))
		}
		b.WriteString("\n")
		if r.IsSignificant() {
			b.WriteString(InfoStyle.Render("  " + r.Interpretation))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// RenderLagCorrelations formats the delayed-effect results.
func RenderLagCorrelations(results []analysis.LagCorrelationResult) string {
	if len(results) == 0 {
		return SubtleStyle.Render("No delayed effects passed screening.")
	}

	var b strings.Builder
	b.WriteString(FormatTitle("Delayed Effects"))
	b.WriteString("\n")
	for _, r := range results {
		marker := SubtleStyle.Render("·")
		if r.Significant {
			marker = SuccessStyle.Render(SuccessIcon)
		}
		fmt.Fprintf(&b, "%s %-30s best lag %dd  r=%+.2f  p=%.3f  n=%d\n",
			marker, r.Factor, r.OptimalLag, r.Correlation, r.PValue, r.NSamples)
		b.WriteString(SubtleStyle.Render("  " + r.Interpretation))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderPatterns formats detected symptom patterns.
func RenderPatterns(patterns []analysis.SymptomPattern) string {
	if len(patterns) == 0 {
		return SubtleStyle.Render("No weekday or weekend patterns detected.")
	}

	var b strings.Builder
	b.WriteString(FormatTitle("Patterns"))
	b.WriteString("\n")
	for _, p := range patterns {
		fmt.Fprintf(&b, "• %s\n", p.Description)
	}
	return b.String()
}

// RenderMedications formats the medication effectiveness comparison.
func RenderMedications(analyses []analysis.MedicationAnalysis) string {
	if len(analyses) == 0 {
		return SubtleStyle.Render("No medications recorded in this period.")
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(PillIcon + " Medications"))
	b.WriteString("\n")
	for _, a := range analyses {
		fmt.Fprintf(&b, "%s", BoldStyle.Render(a.Name))
		if a.TypicalDosage != "" {
			fmt.Fprintf(&b, " (%s)", a.TypicalDosage)
		}
		fmt.Fprintf(&b, " - taken %d time(s) over %d day(s), quality: %s\n",
			a.TimesTaken, a.DaysTaken, a.Quality)
		if a.SameDayReliefRate != nil {
			fmt.Fprintf(&b, "  Same-day relief rate: %.0f%%\n", *a.SameDayReliefRate*100)
		}
		if a.EffectivenessNotes != "" {
			b.WriteString(InfoStyle.Render("  " + a.EffectivenessNotes))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// RenderInsights formats the actionable recommendations, color-coded by priority.
func RenderInsights(insights []analysis.Insight) string {
	if len(insights) == 0 {
		return SubtleStyle.Render("No threshold-triggered insights for this period.")
	}

	var b strings.Builder
	b.WriteString(FormatTitle("Insights"))
	b.WriteString("\n")
	for _, ins := range insights {
		style := LowPriorityStyle
		switch ins.Priority {
		case analysis.PriorityHigh:
			style = HighPriorityStyle
		case analysis.PriorityMedium:
			style = MediumPriorityStyle
		}
		fmt.Fprintf(&b, "%s %s\n", style.Render(fmt.Sprintf("[%s/%s]", ins.Priority, ins.Category)), ins.Finding)
		b.WriteString(SubtleStyle.Render("  - " + ins.Recommendation))
		b.WriteString("\n")
	}
	return b.String()
}
