package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/marcoviero/daily-diary/internal/model"
)

// SaveSymptoms saves symptom records, replacing any existing records with the same ID.
func (s *SQLiteStorage) SaveSymptoms(ctx context.Context, symptoms []model.SymptomRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSymptoms(symptoms); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO symptoms (id, date, symptom_type, severity, location, onset_minutes, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, sym := range symptoms {
		_, err := stmt.ExecContext(ctx,
			sym.ID, formatDate(sym.Date), string(sym.Type), sym.Severity,
			sym.Location, sym.OnsetMinutes, sym.Notes)
		if err != nil {
			return fmt.Errorf("failed to save symptom %s: %w", sym.ID, err)
		}
	}

	return tx.Commit()
}

// GetRawSymptoms returns symptom records in the range, ordered by date and onset time.
func (s *SQLiteStorage) GetRawSymptoms(ctx context.Context, start, end time.Time) ([]model.SymptomRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateDateRange(start, end); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, symptom_type, severity, location, onset_minutes, notes
		FROM symptoms
		WHERE date >= ? AND date <= ?
		ORDER BY date, onset_minutes
	`, formatDate(start), formatDate(end))
	if err != nil {
		return nil, fmt.Errorf("failed to query symptoms: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.SymptomRecord
	for rows.Next() {
		var (
			r        model.SymptomRecord
			dateStr  string
			typeStr  string
			location sql.NullString
			notes    sql.NullString
		)
		if err := rows.Scan(&r.ID, &dateStr, &typeStr, &r.Severity, &location, &r.OnsetMinutes, &notes); err != nil {
			return nil, fmt.Errorf("failed to scan symptom: %w", err)
		}
		r.Date, err = parseDate(dateStr)
		if err != nil {
			return nil, err
		}
		r.Type = model.SymptomType(typeStr)
		r.Location = location.String
		r.Notes = notes.String
		records = append(records, r)
	}

	return records, rows.Err()
}
