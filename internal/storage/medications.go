package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/marcoviero/daily-diary/internal/model"
)

// SaveMedications saves medication records, replacing any existing records with the same ID.
func (s *SQLiteStorage) SaveMedications(ctx context.Context, medications []model.MedicationRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateMedications(medications); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO medications (id, date, name, dosage, taken_minutes, notes)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, med := range medications {
		_, err := stmt.ExecContext(ctx,
			med.ID, formatDate(med.Date), med.Name, med.Dosage, med.TakenMinutes, med.Notes)
		if err != nil {
			return fmt.Errorf("failed to save medication %s: %w", med.ID, err)
		}
	}

	return tx.Commit()
}

// GetRawMedications returns medication records in the range, ordered by date and time taken.
func (s *SQLiteStorage) GetRawMedications(ctx context.Context, start, end time.Time) ([]model.MedicationRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateDateRange(start, end); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, name, dosage, taken_minutes, notes
		FROM medications
		WHERE date >= ? AND date <= ?
		ORDER BY date, taken_minutes
	`, formatDate(start), formatDate(end))
	if err != nil {
		return nil, fmt.Errorf("failed to query medications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.MedicationRecord
	for rows.Next() {
		var (
			r       model.MedicationRecord
			dateStr string
			dosage  sql.NullString
			notes   sql.NullString
		)
		if err := rows.Scan(&r.ID, &dateStr, &r.Name, &dosage, &r.TakenMinutes, &notes); err != nil {
			return nil, fmt.Errorf("failed to scan medication: %w", err)
		}
		r.Date, err = parseDate(dateStr)
		if err != nil {
			return nil, err
		}
		r.Dosage = dosage.String
		r.Notes = notes.String
		records = append(records, r)
	}

	return records, rows.Err()
}
