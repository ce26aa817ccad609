package analysis

import (
	"context"
	"time"
)

// GetSummaryStats returns a scalar overview of the analysis period, or nil
// when the period has insufficient data.
func (e *Engine) GetSummaryStats(ctx context.Context, start, end time.Time) (*SummaryStats, error) {
	table, err := e.BuildFeatureTable(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if table.Empty() {
		return nil, nil
	}

	stats := &SummaryStats{
		PeriodDays: table.Len(),
		StartDate:  table.Rows[0].Date,
		EndDate:    table.Rows[table.Len()-1].Date,
	}

	var wellbeingSum, wellbeingN, sleepSum, sleepN float64
	var activityMinutes float64
	for i := range table.Rows {
		row := &table.Rows[i]
		if row.HasSymptoms {
			stats.DaysWithSymptoms++
		}
		if row.OverallWellbeing != nil {
			wellbeingSum += *row.OverallWellbeing
			wellbeingN++
		}
		if row.SleepScore != nil {
			sleepSum += *row.SleepScore
			sleepN++
		}
		activityMinutes += row.ActivityMinutes
		stats.TotalElevationM += row.ElevationGain
	}

	stats.SymptomRate = float64(stats.DaysWithSymptoms) / float64(table.Len())
	stats.TotalActivityHours = activityMinutes / 60
	if wellbeingN > 0 {
		stats.AvgWellbeing = ptr(wellbeingSum / wellbeingN)
	}
	if sleepN > 0 {
		stats.AvgSleepScore = ptr(sleepSum / sleepN)
	}

	return stats, nil
}
