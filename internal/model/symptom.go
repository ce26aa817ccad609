package model

import "time"

// SymptomType identifies the category of a logged symptom.
type SymptomType string

// Known symptom types. Freeform types are stored as-is.
const (
	SymptomHeadache              SymptomType = "headache"
	SymptomHeadacheNeuralgiaform SymptomType = "headache_neuralgiaform"
	SymptomNausea                SymptomType = "nausea"
	SymptomFatigue               SymptomType = "fatigue"
	SymptomDizziness             SymptomType = "dizziness"
)

// IsHeadache reports whether the type belongs to the headache category,
// which includes neuralgiaform headaches.
func (t SymptomType) IsHeadache() bool {
	return t == SymptomHeadache || t == SymptomHeadacheNeuralgiaform
}

// SymptomRecord is a single dated symptom observation.
type SymptomRecord struct {
	ID       string
	Date     time.Time
	Type     SymptomType
	Severity float64 // 0-10
	Location string
	// OnsetMinutes orders observations within a day (minutes after midnight).
	OnsetMinutes int
	Notes        string
}
