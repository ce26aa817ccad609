// Package storage provides the data persistence layer for the diary application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/marcoviero/daily-diary/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrInvalidDateRange = errors.New("start date must be before end date")
	ErrInvalidRecord    = errors.New("invalid record")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateDateRange ensures end does not precede start.
func validateDateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: zero date", ErrInvalidDateRange)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: end date %v is before start date %v", ErrInvalidDateRange, end, start)
	}
	return nil
}

// validateDailyRecord validates a daily summary record before saving.
func validateDailyRecord(record *model.DailyRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record", ErrNilParameter)
	}
	if record.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidRecord)
	}
	return nil
}

// validateSymptoms validates a slice of symptom records.
func validateSymptoms(symptoms []model.SymptomRecord) error {
	for i, s := range symptoms {
		if s.ID == "" {
			return fmt.Errorf("%w: symptom at index %d missing ID", ErrInvalidRecord, i)
		}
		if s.Date.IsZero() {
			return fmt.Errorf("%w: symptom at index %d missing date", ErrInvalidRecord, i)
		}
		if s.Severity < 0 || s.Severity > 10 {
			return fmt.Errorf("%w: symptom at index %d severity out of range", ErrInvalidRecord, i)
		}
	}
	return nil
}

// validateMedications validates a slice of medication records.
func validateMedications(medications []model.MedicationRecord) error {
	for i, m := range medications {
		if m.ID == "" {
			return fmt.Errorf("%w: medication at index %d missing ID", ErrInvalidRecord, i)
		}
		if m.Date.IsZero() {
			return fmt.Errorf("%w: medication at index %d missing date", ErrInvalidRecord, i)
		}
		if strings.TrimSpace(m.Name) == "" {
			return fmt.Errorf("%w: medication at index %d missing name", ErrInvalidRecord, i)
		}
	}
	return nil
}
