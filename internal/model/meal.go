package model

import "time"

// MealRecord is a single logged meal or drink.
type MealRecord struct {
	ID               string
	Date             time.Time
	Description      string
	ContainsAlcohol  bool
	AlcoholUnits     float64
	ContainsCaffeine bool
	CaffeineMg       float64
	Calories         float64
	ProteinGrams     float64
}

// NutritionTotals is a per-day sum over the day's meals.
type NutritionTotals struct {
	Date         time.Time
	Calories     float64
	ProteinGrams float64
	CaffeineMg   float64
}
