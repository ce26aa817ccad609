package analysis

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// Insight rule gates.
const (
	minInsightGroup  = 5
	goodInsightGroup = 10

	sleepScoreCutoff    = 70.0
	sleepRelativeExcess = 1.3

	weekendAbsoluteDiff = 0.15

	caffeineCutoffMg       = 200.0
	caffeineRelativeExcess = 1.2

	activeMinutesCutoff    = 30.0
	exerciseRelativeExcess = 1.2

	pressureRelativeExcess = 1.3
)

// insightRule evaluates one fixed rule over the table, returning nil when
// the rule's gate is not met.
type insightRule func(*FeatureTable) *Insight

// GetInsights applies the fixed threshold rules to the feature table and
// returns the triggered recommendations sorted by priority (high, medium,
// low), preserving rule order within each tier.
func (e *Engine) GetInsights(ctx context.Context, start, end time.Time) ([]Insight, error) {
	table, err := e.BuildFeatureTable(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if table.Empty() {
		return nil, nil
	}

	rules := []insightRule{
		sleepInsight,
		weekendInsight,
		caffeineInsight,
		exerciseInsight,
		pressureInsight,
	}

	var insights []Insight
	for _, rule := range rules {
		if ins := rule(table); ins != nil {
			insights = append(insights, *ins)
		}
	}

	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Priority.rank() < insights[j].Priority.rank()
	})

	return insights, nil
}

// groupRates accumulates symptom occurrence per group.
type groupRates struct {
	days     int
	symptoms int
}

func (g *groupRates) add(hasSymptoms bool) {
	g.days++
	if hasSymptoms {
		g.symptoms++
	}
}

func (g *groupRates) rate() float64 {
	if g.days == 0 {
		return 0
	}
	return float64(g.symptoms) / float64(g.days)
}

func groupQuality(a, b groupRates) DataQuality {
	if a.days >= goodInsightGroup && b.days >= goodInsightGroup {
		return QualityGood
	}
	return QualityLimited
}

// sleepInsight fires when days with sleep score below 70 carry a symptom
// rate at least 30% higher (relative) than days at 70 or above.
func sleepInsight(t *FeatureTable) *Insight {
	var low, high groupRates
	for i := range t.Rows {
		row := &t.Rows[i]
		if row.SleepScore == nil {
			continue
		}
		if *row.SleepScore < sleepScoreCutoff {
			low.add(row.HasSymptoms)
		} else {
			high.add(row.HasSymptoms)
		}
	}
	if low.days < minInsightGroup || high.days < minInsightGroup {
		return nil
	}
	if low.rate() <= high.rate()*sleepRelativeExcess {
		return nil
	}

	return &Insight{
		Category: "sleep",
		Priority: PriorityHigh,
		Finding: fmt.Sprintf("Symptoms occur on %.0f%% of days after poor sleep (score below %.0f), vs %.0f%% after good sleep.",
			low.rate()*100, sleepScoreCutoff, high.rate()*100),
		Recommendation: "Prioritize sleep quality: consistent bedtime, limited screens before bed.",
		Quality:        groupQuality(low, high),
	}
}

// weekendInsight fires when weekend and weekday symptom rates differ by more
// than 0.15 absolute, naming the elevated side.
func weekendInsight(t *FeatureTable) *Insight {
	var weekend, weekday groupRates
	for i := range t.Rows {
		row := &t.Rows[i]
		if row.IsWeekend {
			weekend.add(row.HasSymptoms)
		} else {
			weekday.add(row.HasSymptoms)
		}
	}
	if weekend.days < minInsightGroup || weekday.days < minInsightGroup {
		return nil
	}

	diff := weekend.rate() - weekday.rate()
	if diff < 0 {
		diff = -diff
	}
	if diff <= weekendAbsoluteDiff {
		return nil
	}

	side, other := "weekends", "weekdays"
	elevated, baseline := weekend.rate(), weekday.rate()
	if weekday.rate() > weekend.rate() {
		side, other = "weekdays", "weekends"
		elevated, baseline = weekday.rate(), weekend.rate()
	}

	return &Insight{
		Category: "lifestyle",
		Priority: PriorityMedium,
		Finding: fmt.Sprintf("Symptoms are notably more common on %s (%.0f%%) than %s (%.0f%%).",
			side, elevated*100, other, baseline*100),
		Recommendation: fmt.Sprintf("Review what differs on %s: routine, diet, sleep schedule, or stress.", side),
		Quality:        groupQuality(weekend, weekday),
	}
}

// caffeineInsight fires when days following caffeine intake above 200mg
// carry a symptom rate at least 20% higher (relative) than the rest.
func caffeineInsight(t *FeatureTable) *Insight {
	var high, low groupRates
	for i := range t.Rows {
		row := &t.Rows[i]
		if row.PrevCaffeineMg == nil {
			continue
		}
		if *row.PrevCaffeineMg > caffeineCutoffMg {
			high.add(row.HasSymptoms)
		} else {
			low.add(row.HasSymptoms)
		}
	}
	if high.days < minInsightGroup || low.days < minInsightGroup {
		return nil
	}
	if high.rate() <= low.rate()*caffeineRelativeExcess {
		return nil
	}

	return &Insight{
		Category: "diet",
		Priority: PriorityMedium,
		Finding: fmt.Sprintf("Days after heavy caffeine intake (over %.0fmg) show a %.0f%% symptom rate, vs %.0f%% otherwise.",
			caffeineCutoffMg, high.rate()*100, low.rate()*100),
		Recommendation: "Consider capping caffeine, especially in the afternoon.",
		Quality:        groupQuality(high, low),
	}
}

// exerciseInsight fires when inactive days (under 30 minutes) carry a
// symptom rate at least 20% higher (relative) than active days.
func exerciseInsight(t *FeatureTable) *Insight {
	var active, inactive groupRates
	for i := range t.Rows {
		row := &t.Rows[i]
		if row.ActivityMinutes >= activeMinutesCutoff {
			active.add(row.HasSymptoms)
		} else {
			inactive.add(row.HasSymptoms)
		}
	}
	if active.days < minInsightGroup || inactive.days < minInsightGroup {
		return nil
	}
	if inactive.rate() <= active.rate()*exerciseRelativeExcess {
		return nil
	}

	return &Insight{
		Category: "exercise",
		Priority: PriorityMedium,
		Finding: fmt.Sprintf("Inactive days (under %.0f min) show a %.0f%% symptom rate, vs %.0f%% on active days.",
			activeMinutesCutoff, inactive.rate()*100, active.rate()*100),
		Recommendation: "Aim for at least 30 minutes of activity most days.",
		Quality:        groupQuality(active, inactive),
	}
}

// pressureInsight fires when bottom-quartile pressure days carry a symptom
// rate at least 30% higher (relative) than top-quartile days.
func pressureInsight(t *FeatureTable) *Insight {
	type obs struct {
		pressure    float64
		hasSymptoms bool
	}
	var rows []obs
	for i := range t.Rows {
		row := &t.Rows[i]
		if row.PressureHPa == nil {
			continue
		}
		rows = append(rows, obs{*row.PressureHPa, row.HasSymptoms})
	}

	quartile := len(rows) / 4
	if quartile < minInsightGroup {
		return nil
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].pressure < rows[j].pressure })

	var low, high groupRates
	for _, o := range rows[:quartile] {
		low.add(o.hasSymptoms)
	}
	for _, o := range rows[len(rows)-quartile:] {
		high.add(o.hasSymptoms)
	}
	if low.rate() <= high.rate()*pressureRelativeExcess {
		return nil
	}

	return &Insight{
		Category: "weather",
		Priority: PriorityLow,
		Finding: fmt.Sprintf("Low-pressure days show a %.0f%% symptom rate, vs %.0f%% on high-pressure days.",
			low.rate()*100, high.rate()*100),
		Recommendation: "Pressure drops may be a trigger; consider preemptive measures when a front approaches.",
		Quality:        groupQuality(low, high),
	}
}
