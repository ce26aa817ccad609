package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/marcoviero/daily-diary/internal/model"
)

// SaveMeals saves meal records, replacing any existing records with the same ID.
func (s *SQLiteStorage) SaveMeals(ctx context.Context, meals []model.MealRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO meals (
			id, date, description,
			contains_alcohol, alcohol_units, contains_caffeine, caffeine_mg,
			calories, protein_g
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, meal := range meals {
		if meal.ID == "" || meal.Date.IsZero() {
			return fmt.Errorf("%w: meal missing ID or date", ErrInvalidRecord)
		}
		_, err := stmt.ExecContext(ctx,
			meal.ID, formatDate(meal.Date), meal.Description,
			meal.ContainsAlcohol, meal.AlcoholUnits, meal.ContainsCaffeine, meal.CaffeineMg,
			meal.Calories, meal.ProteinGrams)
		if err != nil {
			return fmt.Errorf("failed to save meal %s: %w", meal.ID, err)
		}
	}

	return tx.Commit()
}

// GetNutritionTotals returns per-day sums of calories, protein and caffeine
// over the day's meals, for dates in the range that have any meals.
func (s *SQLiteStorage) GetNutritionTotals(ctx context.Context, start, end time.Time) ([]model.NutritionTotals, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateDateRange(start, end); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT date,
			COALESCE(SUM(calories), 0),
			COALESCE(SUM(protein_g), 0),
			COALESCE(SUM(caffeine_mg), 0)
		FROM meals
		WHERE date >= ? AND date <= ?
		GROUP BY date
		ORDER BY date
	`, formatDate(start), formatDate(end))
	if err != nil {
		return nil, fmt.Errorf("failed to query nutrition totals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var totals []model.NutritionTotals
	for rows.Next() {
		var (
			t       model.NutritionTotals
			dateStr string
		)
		if err := rows.Scan(&dateStr, &t.Calories, &t.ProteinGrams, &t.CaffeineMg); err != nil {
			return nil, fmt.Errorf("failed to scan nutrition totals: %w", err)
		}
		t.Date, err = parseDate(dateStr)
		if err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}

	return totals, rows.Err()
}
