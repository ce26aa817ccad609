package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/marcoviero/daily-diary/internal/model"
)

// SaveLifestyleFactors saves boolean lifestyle flags, replacing existing
// values for the same date and name.
func (s *SQLiteStorage) SaveLifestyleFactors(ctx context.Context, factors []model.LifestyleFactor) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO lifestyle_factors (date, name, value)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, f := range factors {
		if f.Date.IsZero() {
			return fmt.Errorf("%w: lifestyle factor missing date", ErrInvalidRecord)
		}
		if err := validateString(f.Name, "factor name"); err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, formatDate(f.Date), f.Name, f.Value); err != nil {
			return fmt.Errorf("failed to save lifestyle factor %s: %w", f.Name, err)
		}
	}

	return tx.Commit()
}

// GetLifestyleFactors returns lifestyle flags in the range, ordered by date then name.
func (s *SQLiteStorage) GetLifestyleFactors(ctx context.Context, start, end time.Time) ([]model.LifestyleFactor, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateDateRange(start, end); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT date, name, value
		FROM lifestyle_factors
		WHERE date >= ? AND date <= ?
		ORDER BY date, name
	`, formatDate(start), formatDate(end))
	if err != nil {
		return nil, fmt.Errorf("failed to query lifestyle factors: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var factors []model.LifestyleFactor
	for rows.Next() {
		var (
			f       model.LifestyleFactor
			dateStr string
		)
		if err := rows.Scan(&dateStr, &f.Name, &f.Value); err != nil {
			return nil, fmt.Errorf("failed to scan lifestyle factor: %w", err)
		}
		f.Date, err = parseDate(dateStr)
		if err != nil {
			return nil, err
		}
		factors = append(factors, f)
	}

	return factors, rows.Err()
}
