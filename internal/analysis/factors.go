package analysis

import "sort"

// FactorDomain tags a factor with its interpretation category. Wording for
// significant findings is chosen from the domain, not from the display name.
type FactorDomain int

// Factor domains.
const (
	DomainGeneral FactorDomain = iota
	DomainWeather
	DomainSleep
	DomainAlcohol
	DomainExercise
	DomainCaffeine
	DomainLifestyle
)

// ContinuousFactor is a numeric candidate column for correlation testing.
type ContinuousFactor struct {
	Name   string
	Domain FactorDomain
	// Value extracts the column from a row; ok is false when the column
	// is null for that day.
	Value func(*FeatureRow) (v float64, ok bool)
}

// BinaryFactor is a boolean candidate column, tested with point-biserial correlation.
type BinaryFactor struct {
	Name   string
	Domain FactorDomain
	Value  func(*FeatureRow) (v bool, ok bool)
}

func optional(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}

// continuousFactors is the fixed candidate list for same-day and lag analysis.
func continuousFactors() []ContinuousFactor {
	return []ContinuousFactor{
		{"Barometric Pressure", DomainWeather, func(r *FeatureRow) (float64, bool) { return optional(r.PressureHPa) }},
		{"Pressure Change", DomainWeather, func(r *FeatureRow) (float64, bool) { return optional(r.PressureChange) }},
		{"Average Temperature", DomainWeather, func(r *FeatureRow) (float64, bool) { return optional(r.TempAvgC) }},
		{"Humidity", DomainWeather, func(r *FeatureRow) (float64, bool) { return optional(r.HumidityPercent) }},
		{"Sleep Score", DomainSleep, func(r *FeatureRow) (float64, bool) { return optional(r.SleepScore) }},
		{"Total Sleep Duration", DomainSleep, func(r *FeatureRow) (float64, bool) { return optional(r.SleepMinutes) }},
		{"Deep Sleep Duration", DomainSleep, func(r *FeatureRow) (float64, bool) { return optional(r.DeepSleepMinutes) }},
		{"REM Sleep Duration", DomainSleep, func(r *FeatureRow) (float64, bool) { return optional(r.REMSleepMinutes) }},
		{"Heart Rate Variability", DomainSleep, func(r *FeatureRow) (float64, bool) { return optional(r.HRVAverage) }},
		{"Exercise Duration", DomainExercise, func(r *FeatureRow) (float64, bool) { return r.ActivityMinutes, true }},
		{"Climbing (elevation)", DomainExercise, func(r *FeatureRow) (float64, bool) { return r.ElevationGain, true }},
		{"Average Exercise HR", DomainExercise, func(r *FeatureRow) (float64, bool) { return optional(r.AvgHeartRate) }},
		{"Average Power", DomainExercise, func(r *FeatureRow) (float64, bool) { return optional(r.AvgPower) }},
		{"Alcohol Consumption", DomainAlcohol, func(r *FeatureRow) (float64, bool) { return r.AlcoholUnits, true }},
		{"Caffeine Intake", DomainCaffeine, func(r *FeatureRow) (float64, bool) { return optional(r.CaffeineMg) }},
		{"Calorie Intake", DomainGeneral, func(r *FeatureRow) (float64, bool) { return optional(r.Calories) }},
		{"Stress Level", DomainGeneral, func(r *FeatureRow) (float64, bool) { return optional(r.StressLevel) }},
		{"Energy Level", DomainGeneral, func(r *FeatureRow) (float64, bool) { return optional(r.EnergyLevel) }},
		{"Previous Day Exercise", DomainExercise, func(r *FeatureRow) (float64, bool) { return optional(r.PrevActivityMinutes) }},
		{"Previous Day Climbing", DomainExercise, func(r *FeatureRow) (float64, bool) { return optional(r.PrevElevationGain) }},
		{"Previous Day Alcohol", DomainAlcohol, func(r *FeatureRow) (float64, bool) { return optional(r.PrevAlcoholUnits) }},
		{"Previous Night Sleep Score", DomainSleep, func(r *FeatureRow) (float64, bool) { return optional(r.PrevSleepScore) }},
		{"Previous Night Sleep Duration", DomainSleep, func(r *FeatureRow) (float64, bool) { return optional(r.PrevSleepMinutes) }},
		{"Previous Day Caffeine", DomainCaffeine, func(r *FeatureRow) (float64, bool) { return optional(r.PrevCaffeineMg) }},
		{"Previous Day Pressure", DomainWeather, func(r *FeatureRow) (float64, bool) { return optional(r.PrevPressureHPa) }},
	}
}

// binaryFactors is the fixed boolean candidate list. Lifestyle flags are
// appended per table, since their names are freeform.
func binaryFactors() []BinaryFactor {
	return []BinaryFactor{
		{"Weekend", DomainLifestyle, func(r *FeatureRow) (bool, bool) { return r.IsWeekend, true }},
		{"Any Alcohol", DomainAlcohol, func(r *FeatureRow) (bool, bool) { return r.AlcoholConsumed, true }},
		{"Caffeine", DomainCaffeine, func(r *FeatureRow) (bool, bool) { return r.CaffeineConsumed, true }},
		{"Had Incident", DomainGeneral, func(r *FeatureRow) (bool, bool) { return r.HasIncidents, true }},
	}
}

// lifestyleBinaryFactors builds a factor per lifestyle flag seen anywhere in
// the table, sorted by name for deterministic output. A day without the flag
// recorded is a null, not a false.
func lifestyleBinaryFactors(t *FeatureTable) []BinaryFactor {
	seen := make(map[string]bool)
	for i := range t.Rows {
		for name := range t.Rows[i].Lifestyle {
			seen[name] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	factors := make([]BinaryFactor, 0, len(names))
	for _, name := range names {
		name := name
		factors = append(factors, BinaryFactor{
			Name:   name,
			Domain: DomainLifestyle,
			Value: func(r *FeatureRow) (bool, bool) {
				v, ok := r.Lifestyle[name]
				return v, ok
			},
		})
	}
	return factors
}

// targetColumns maps the target metric names accepted by the analyzers to
// their row extractors.
var targetColumns = map[string]func(*FeatureRow) (float64, bool){
	"worst_symptom_severity": func(r *FeatureRow) (float64, bool) { return optional(r.WorstSymptomSeverity) },
	"symptom_count":          func(r *FeatureRow) (float64, bool) { return r.SymptomCount, true },
	"overall_wellbeing":      func(r *FeatureRow) (float64, bool) { return optional(r.OverallWellbeing) },
	"energy_level":           func(r *FeatureRow) (float64, bool) { return optional(r.EnergyLevel) },
	"stress_level":           func(r *FeatureRow) (float64, bool) { return optional(r.StressLevel) },
	"sleep_score":            func(r *FeatureRow) (float64, bool) { return optional(r.SleepScore) },
}

// DefaultTarget is the target metric used when none is specified.
const DefaultTarget = "worst_symptom_severity"
