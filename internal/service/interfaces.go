// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/marcoviero/daily-diary/internal/model"
)

// Storage defines the contract for the persistence layer. The analysis
// engine only reads; the save operations exist for the import path.
type Storage interface {
	// Daily summary operations
	SaveDailyRecord(ctx context.Context, record *model.DailyRecord) error
	GetDailyRows(ctx context.Context, start, end time.Time) ([]model.DailyRecord, error)
	GetRawDailyDates(ctx context.Context, start, end time.Time) ([]time.Time, error)

	// Raw record operations
	SaveSymptoms(ctx context.Context, symptoms []model.SymptomRecord) error
	GetRawSymptoms(ctx context.Context, start, end time.Time) ([]model.SymptomRecord, error)
	SaveMedications(ctx context.Context, medications []model.MedicationRecord) error
	GetRawMedications(ctx context.Context, start, end time.Time) ([]model.MedicationRecord, error)

	// Meal and lifestyle operations
	SaveMeals(ctx context.Context, meals []model.MealRecord) error
	GetNutritionTotals(ctx context.Context, start, end time.Time) ([]model.NutritionTotals, error)
	SaveLifestyleFactors(ctx context.Context, factors []model.LifestyleFactor) error
	GetLifestyleFactors(ctx context.Context, start, end time.Time) ([]model.LifestyleFactor, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
