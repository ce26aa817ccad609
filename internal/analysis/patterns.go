package analysis

import (
	"context"
	"fmt"
	"time"
)

// Pattern emission thresholds.
const (
	weekdaySpreadThreshold = 0.15
	weekendDiffThreshold   = 0.10
)

var dayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// FindPatterns looks for day-of-week and weekend/weekday skew in symptom
// occurrence. Patterns below their thresholds are simply not emitted.
func (e *Engine) FindPatterns(ctx context.Context, start, end time.Time) ([]SymptomPattern, error) {
	table, err := e.BuildFeatureTable(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if table.Empty() {
		return nil, nil
	}

	var patterns []SymptomPattern

	if p := weekdayPattern(table); p != nil {
		patterns = append(patterns, *p)
	}
	if p := weekendPattern(table); p != nil {
		patterns = append(patterns, *p)
	}

	return patterns, nil
}

// weekdayPattern emits when the spread between the worst and best weekday
// occurrence rates exceeds 0.15 (strictly).
func weekdayPattern(t *FeatureTable) *SymptomPattern {
	var counts, symptomatic [7]float64
	total := 0.0
	for i := range t.Rows {
		row := &t.Rows[i]
		counts[row.DayOfWeek]++
		if row.HasSymptoms {
			symptomatic[row.DayOfWeek]++
			total++
		}
	}
	if total == 0 {
		return nil
	}

	worst, best := -1, -1
	var worstRate, bestRate float64
	for d := 0; d < 7; d++ {
		if counts[d] == 0 {
			continue
		}
		rate := symptomatic[d] / counts[d]
		if worst < 0 || rate > worstRate {
			worst, worstRate = d, rate
		}
		if best < 0 || rate < bestRate {
			best, bestRate = d, rate
		}
	}
	if worst < 0 || worstRate-bestRate <= weekdaySpreadThreshold {
		return nil
	}

	return &SymptomPattern{
		Type: PatternDayOfWeek,
		Description: fmt.Sprintf("Symptoms are most common on %ss (%.0f%% of days) and least common on %ss (%.0f%% of days).",
			dayNames[worst], worstRate*100, dayNames[best], bestRate*100),
		Frequency: worstRate,
		Details: map[string]any{
			"worst_day":  dayNames[worst],
			"best_day":   dayNames[best],
			"worst_rate": worstRate,
			"best_rate":  bestRate,
		},
	}
}

// weekendPattern emits when weekend and weekday occurrence rates differ by
// more than 0.10 (strictly), labeling which side is elevated.
func weekendPattern(t *FeatureTable) *SymptomPattern {
	var weekendDays, weekendSymptoms, weekdayDays, weekdaySymptoms float64
	for i := range t.Rows {
		row := &t.Rows[i]
		if row.IsWeekend {
			weekendDays++
			if row.HasSymptoms {
				weekendSymptoms++
			}
		} else {
			weekdayDays++
			if row.HasSymptoms {
				weekdaySymptoms++
			}
		}
	}
	if weekendDays == 0 || weekdayDays == 0 {
		return nil
	}

	weekendRate := weekendSymptoms / weekendDays
	weekdayRate := weekdaySymptoms / weekdayDays
	diff := weekendRate - weekdayRate
	if diff < 0 {
		diff = -diff
	}
	if diff <= weekendDiffThreshold {
		return nil
	}

	description := fmt.Sprintf("Symptoms are more common on weekends (%.0f%%) than weekdays (%.0f%%).",
		weekendRate*100, weekdayRate*100)
	frequency := weekendRate
	if weekdayRate > weekendRate {
		description = fmt.Sprintf("Symptoms are less common on weekends (%.0f%%) than weekdays (%.0f%%).",
			weekendRate*100, weekdayRate*100)
		frequency = weekdayRate
	}

	return &SymptomPattern{
		Type:        PatternWeekend,
		Description: description,
		Frequency:   frequency,
		Details: map[string]any{
			"weekend_rate": weekendRate,
			"weekday_rate": weekdayRate,
		},
	}
}
