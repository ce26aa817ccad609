// Package model defines the core value types shared across the application.
package model

import "time"

// DailyRecord is the denormalized per-day summary row stored in the
// daily_summary table. One record per calendar date; any column may be
// absent when the underlying integration or log entry is missing.
type DailyRecord struct {
	Date time.Time

	// Wellbeing (1-10 scales)
	OverallWellbeing *int
	EnergyLevel      *int
	StressLevel      *int

	// Symptom aggregates
	SymptomCount         int
	WorstSymptomSeverity *float64
	HasHeadache          bool
	HasNeuralgiaform     bool

	// Incidents
	IncidentCount int

	// Meal aggregates
	MealCount        int
	AlcoholUnits     float64
	AlcoholConsumed  bool
	CaffeineConsumed bool

	// Weather
	TempAvgC        *float64
	PressureHPa     *float64
	HumidityPercent *float64

	// Sleep (previous night)
	SleepScore        *float64
	TotalSleepMinutes *float64
	DeepSleepMinutes  *float64
	REMSleepMinutes   *float64
	HRVAverage        *float64

	// Activity totals
	TotalActivityMinutes float64
	TotalElevationGain   float64
	AvgHeartRate         *float64
	AvgPowerWatts        *float64
}

// HasSymptoms reports whether any symptom was logged for the day.
func (r *DailyRecord) HasSymptoms() bool {
	return r.SymptomCount > 0
}
