package analysis

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/marcoviero/daily-diary/internal/common"
	"github.com/marcoviero/daily-diary/internal/model"
)

// minMedicationNotes is the smallest times-taken count for which a
// comparative effectiveness note is written.
const minMedicationNotes = 3

// AnalyzeMedicationEffectiveness compares symptom severity on dosing days
// against baseline days, per distinct medication. It reads raw medication
// and symptom records rather than the daily table. A storage failure yields
// an empty result list; a medication without enough data is reported with an
// insufficient quality label rather than dropped.
func (e *Engine) AnalyzeMedicationEffectiveness(ctx context.Context, start, end time.Time) []MedicationAnalysis {
	medications, err := e.store.GetRawMedications(ctx, start, end)
	if err != nil {
		common.LogError(err, "medication query failed, returning no analyses", nil)
		return nil
	}
	if len(medications) == 0 {
		return nil
	}

	symptoms, err := e.store.GetRawSymptoms(ctx, start, end)
	if err != nil {
		common.LogError(err, "symptom query failed, returning no analyses", nil)
		return nil
	}

	dates, err := e.store.GetRawDailyDates(ctx, start, end)
	if err != nil {
		common.LogError(err, "daily dates query failed, returning no analyses", nil)
		return nil
	}

	headachesByDay := headacheObservations(symptoms)

	groups := make(map[string][]model.MedicationRecord)
	var order []string
	for _, med := range medications {
		name := med.NormalizedName()
		if _, ok := groups[name]; !ok {
			order = append(order, name)
		}
		groups[name] = append(groups[name], med)
	}

	results := make([]MedicationAnalysis, 0, len(groups))
	for _, name := range order {
		results = append(results, analyzeMedication(name, groups[name], headachesByDay, dates))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TimesTaken > results[j].TimesTaken
	})

	return results
}

// headacheObservations collects headache-category symptom records per day,
// ordered by onset time.
func headacheObservations(symptoms []model.SymptomRecord) map[string][]model.SymptomRecord {
	byDay := make(map[string][]model.SymptomRecord)
	for _, s := range symptoms {
		if !s.Type.IsHeadache() {
			continue
		}
		key := dayKey(s.Date)
		byDay[key] = append(byDay[key], s)
	}
	for key := range byDay {
		obs := byDay[key]
		sort.SliceStable(obs, func(i, j int) bool { return obs[i].OnsetMinutes < obs[j].OnsetMinutes })
	}
	return byDay
}

func analyzeMedication(name string, records []model.MedicationRecord, headachesByDay map[string][]model.SymptomRecord, universe []time.Time) MedicationAnalysis {
	result := MedicationAnalysis{
		Name:          name,
		TypicalDosage: typicalDosage(records),
		TimesTaken:    len(records),
		Quality:       MedicationQuality(len(records)),
	}

	dosingDays := make(map[string]bool)
	for _, r := range records {
		dosingDays[dayKey(r.Date)] = true
	}
	result.DaysTaken = len(dosingDays)

	for day := range dosingDays {
		if len(headachesByDay[day]) > 0 {
			result.DaysWithSymptom++
		}
	}

	// Severity comparison over the baseline universe: a day's severity is
	// its worst headache, or zero when headache-free.
	var onSum, onN, otherSum, otherN float64
	for _, d := range universe {
		key := dayKey(d)
		severity := worstSeverity(headachesByDay[key])
		if dosingDays[key] {
			onSum += severity
			onN++
		} else {
			otherSum += severity
			otherN++
		}
	}
	if onN > 0 {
		result.MeanSeverityOnDays = ptr(onSum / onN)
	}
	if otherN > 0 {
		result.MeanSeverityOther = ptr(otherSum / otherN)
	}

	result.SameDayReliefRate = reliefRate(dosingDays, headachesByDay)

	if result.TimesTaken >= minMedicationNotes {
		result.EffectivenessNotes = effectivenessNotes(&result)
	}

	return result
}

// typicalDosage returns the most common non-empty dosage string; earlier
// records win ties.
func typicalDosage(records []model.MedicationRecord) string {
	counts := make(map[string]int)
	best := ""
	for _, r := range records {
		if r.Dosage == "" {
			continue
		}
		counts[r.Dosage]++
		if best == "" || counts[r.Dosage] > counts[best] {
			best = r.Dosage
		}
	}
	return best
}

func worstSeverity(obs []model.SymptomRecord) float64 {
	worst := 0.0
	for _, o := range obs {
		if o.Severity > worst {
			worst = o.Severity
		}
	}
	return worst
}

// reliefRate applies the same-day relief heuristic: on each dosing day with
// at least two headache observations, a strictly decreasing last-vs-first
// severity counts as relief. Returns nil when no dosing day qualifies.
func reliefRate(dosingDays map[string]bool, headachesByDay map[string][]model.SymptomRecord) *float64 {
	relief, noRelief := 0, 0
	for day := range dosingDays {
		obs := headachesByDay[day]
		if len(obs) < 2 {
			continue
		}
		if obs[len(obs)-1].Severity < obs[0].Severity {
			relief++
		} else {
			noRelief++
		}
	}
	if relief+noRelief == 0 {
		return nil
	}
	return ptr(float64(relief) / float64(relief+noRelief))
}

func effectivenessNotes(a *MedicationAnalysis) string {
	if a.MeanSeverityOnDays == nil || a.MeanSeverityOther == nil {
		return fmt.Sprintf("Taken %d time(s); not enough baseline days to compare severity.", a.TimesTaken)
	}

	on, other := *a.MeanSeverityOnDays, *a.MeanSeverityOther
	switch {
	case on > other:
		// Expected for a rescue medication: it is reached for on bad days.
		return fmt.Sprintf("Days taken average severity %.1f vs %.1f on other days: taken on worse days, consistent with use as a rescue medication.", on, other)
	case on < other:
		return fmt.Sprintf("Days taken average severity %.1f vs %.1f on other days: severity is lower on days this is taken.", on, other)
	default:
		return fmt.Sprintf("Average severity is the same on days taken and other days (%.1f).", on)
	}
}

func dayKey(d time.Time) string {
	return d.Format("2006-01-02")
}
