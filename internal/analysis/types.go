// Package analysis implements the correlation and insight engine over the
// daily feature table.
package analysis

import (
	"math"
	"time"
)

// Strength buckets a correlation coefficient by absolute value.
type Strength string

// Strength buckets, by |r| thresholds 0.1 / 0.3 / 0.5 / 0.7.
const (
	StrengthNegligible Strength = "negligible"
	StrengthWeak       Strength = "weak"
	StrengthModerate   Strength = "moderate"
	StrengthStrong     Strength = "strong"
	StrengthVeryStrong Strength = "very strong"
)

// strengthOf buckets an r value.
func strengthOf(r float64) Strength {
	switch abs := math.Abs(r); {
	case abs < 0.1:
		return StrengthNegligible
	case abs < 0.3:
		return StrengthWeak
	case abs < 0.5:
		return StrengthModerate
	case abs < 0.7:
		return StrengthStrong
	default:
		return StrengthVeryStrong
	}
}

// Direction is the sign of a correlation.
type Direction string

// Correlation directions.
const (
	DirectionPositive Direction = "positive"
	DirectionNegative Direction = "negative"
	DirectionNone     Direction = "none"
)

// significanceLevel is the reporting threshold for p-values.
const significanceLevel = 0.05

// CorrelationResult is a same-day association between one factor and the target metric.
type CorrelationResult struct {
	Factor         string
	Correlation    float64
	PValue         float64
	NSamples       int
	Interpretation string
}

// IsSignificant reports whether the p-value clears the 0.05 threshold.
func (r CorrelationResult) IsSignificant() bool {
	return r.PValue < significanceLevel
}

// Strength buckets the correlation by absolute value.
func (r CorrelationResult) Strength() Strength {
	return strengthOf(r.Correlation)
}

// Direction reports the sign of the correlation.
func (r CorrelationResult) Direction() Direction {
	switch {
	case r.Correlation > 0:
		return DirectionPositive
	case r.Correlation < 0:
		return DirectionNegative
	default:
		return DirectionNone
	}
}

// LagResult is the correlation for a factor at a single lag offset.
type LagResult struct {
	LagDays     int
	Correlation float64
	PValue      float64
	NSamples    int
}

// LagCorrelationResult reports the best lag for a factor along with the
// full per-lag breakdown.
type LagCorrelationResult struct {
	Factor         string
	OptimalLag     int
	Correlation    float64
	PValue         float64
	NSamples       int
	ByLag          []LagResult
	Significant    bool
	Interpretation string
}

// Strength buckets the winning lag's correlation by absolute value.
func (r LagCorrelationResult) Strength() Strength {
	return strengthOf(r.Correlation)
}

// PatternType tags the kind of symptom pattern detected.
type PatternType string

// Pattern categories.
const (
	PatternDayOfWeek PatternType = "day_of_week"
	PatternWeekend   PatternType = "weekend"
)

// SymptomPattern describes a detected skew in symptom occurrence.
type SymptomPattern struct {
	Type        PatternType
	Description string
	Frequency   float64
	Details     map[string]any
}

// DataQuality is a coarse confidence tag based purely on sample count.
type DataQuality string

// Data quality labels.
const (
	QualityGood         DataQuality = "good"
	QualityLimited      DataQuality = "limited"
	QualityInsufficient DataQuality = "insufficient"
)

// MedicationQuality labels a medication analysis by how often the medication
// was taken: good at 5+, limited at 3-4, insufficient below 3.
func MedicationQuality(timesTaken int) DataQuality {
	switch {
	case timesTaken >= 5:
		return QualityGood
	case timesTaken >= 3:
		return QualityLimited
	default:
		return QualityInsufficient
	}
}

// MedicationAnalysis compares symptom severity on dosing days against baseline days.
type MedicationAnalysis struct {
	Name               string
	TypicalDosage      string
	TimesTaken         int
	DaysTaken          int
	DaysWithSymptom    int
	MeanSeverityOnDays *float64
	MeanSeverityOther  *float64
	EffectivenessNotes string
	SameDayReliefRate  *float64
	Quality            DataQuality
}

// Priority orders insights for presentation.
type Priority string

// Insight priorities.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// rank orders priorities for sorting: high before medium before low.
func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Insight is a threshold-triggered, human-readable recommendation.
type Insight struct {
	Category       string
	Priority       Priority
	Finding        string
	Recommendation string
	Quality        DataQuality
}

// SummaryStats is a scalar overview of the analysis period.
type SummaryStats struct {
	PeriodDays         int
	StartDate          time.Time
	EndDate            time.Time
	DaysWithSymptoms   int
	SymptomRate        float64
	AvgWellbeing       *float64
	AvgSleepScore      *float64
	TotalActivityHours float64
	TotalElevationM    float64
}
