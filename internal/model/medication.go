package model

import (
	"strings"
	"time"
)

// MedicationRecord is a single administration of a medication.
type MedicationRecord struct {
	ID     string
	Date   time.Time
	Name   string
	Dosage string
	// TakenMinutes orders administrations within a day (minutes after midnight).
	TakenMinutes int
	Notes        string
}

// NormalizedName returns the case-normalized name used for grouping,
// so "Sumatriptan" and "sumatriptan" analyze as one medication.
func (m *MedicationRecord) NormalizedName() string {
	return strings.ToLower(strings.TrimSpace(m.Name))
}
