package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcoviero/daily-diary/internal/model"
)

func medRecord(t *testing.T, date, name, dosage string, takenMinutes int) model.MedicationRecord {
	t.Helper()
	return model.MedicationRecord{
		ID:           name + "-" + date,
		Date:         testDay(t, date),
		Name:         name,
		Dosage:       dosage,
		TakenMinutes: takenMinutes,
	}
}

func headache(t *testing.T, date string, severity float64, onsetMinutes int) model.SymptomRecord {
	t.Helper()
	return model.SymptomRecord{
		ID:           "sym-" + date + "-" + time.Now().Format("150405.000000000"),
		Date:         testDay(t, date),
		Type:         model.SymptomHeadache,
		Severity:     severity,
		OnsetMinutes: onsetMinutes,
	}
}

func datesFrom(t *testing.T, start string, n int) []time.Time {
	t.Helper()
	first := testDay(t, start)
	dates := make([]time.Time, n)
	for i := range dates {
		dates[i] = first.AddDate(0, 0, i)
	}
	return dates
}

func TestAnalyzeMedicationEffectiveness_RescueMedication(t *testing.T) {
	// Ibuprofen taken on exactly the four headache days of a ten-day period.
	// Severity on dosing days is far above the (headache-free) baseline, and
	// the notes must frame that as rescue use, not as the drug failing.
	store := &fakeStore{
		medications: []model.MedicationRecord{
			medRecord(t, "2026-01-05", "Ibuprofen", "400mg", 600),
			medRecord(t, "2026-01-07", "Ibuprofen", "400mg", 610),
			medRecord(t, "2026-01-09", "Ibuprofen", "400mg", 615),
			medRecord(t, "2026-01-12", "Ibuprofen", "200mg", 700),
		},
		symptoms: []model.SymptomRecord{
			headache(t, "2026-01-05", 7, 540),
			headache(t, "2026-01-07", 7, 550),
			headache(t, "2026-01-09", 7, 560),
			headache(t, "2026-01-12", 7, 640),
		},
		dates: datesFrom(t, "2026-01-05", 10),
	}
	eng := NewEngine(store, Options{})

	results := eng.AnalyzeMedicationEffectiveness(context.Background(), testDay(t, "2026-01-05"), testDay(t, "2026-01-14"))
	require.Len(t, results, 1)

	med := results[0]
	assert.Equal(t, "ibuprofen", med.Name)
	assert.Equal(t, "400mg", med.TypicalDosage)
	assert.Equal(t, 4, med.TimesTaken)
	assert.Equal(t, 4, med.DaysTaken)
	assert.Equal(t, 4, med.DaysWithSymptom)
	assert.Equal(t, QualityLimited, med.Quality)

	require.NotNil(t, med.MeanSeverityOnDays)
	assert.InDelta(t, 7.0, *med.MeanSeverityOnDays, 1e-9)
	require.NotNil(t, med.MeanSeverityOther)
	assert.InDelta(t, 0.0, *med.MeanSeverityOther, 1e-9)

	assert.Contains(t, med.EffectivenessNotes, "on other days: taken on worse days")
	assert.Contains(t, med.EffectivenessNotes, "rescue medication")
}

func TestAnalyzeMedicationEffectiveness_SameDayReliefRate(t *testing.T) {
	// Three dosing days: severity falls on the first, rises on the second,
	// and the third has a single observation so it cannot count either way.
	store := &fakeStore{
		medications: []model.MedicationRecord{
			medRecord(t, "2026-01-05", "Sumatriptan", "50mg", 600),
			medRecord(t, "2026-01-06", "Sumatriptan", "50mg", 600),
			medRecord(t, "2026-01-07", "Sumatriptan", "50mg", 600),
		},
		symptoms: []model.SymptomRecord{
			headache(t, "2026-01-05", 8, 540),
			headache(t, "2026-01-05", 3, 900),
			headache(t, "2026-01-06", 5, 540),
			headache(t, "2026-01-06", 6, 900),
			headache(t, "2026-01-07", 4, 540),
		},
		dates: datesFrom(t, "2026-01-05", 7),
	}
	eng := NewEngine(store, Options{})

	results := eng.AnalyzeMedicationEffectiveness(context.Background(), testDay(t, "2026-01-05"), testDay(t, "2026-01-11"))
	require.Len(t, results, 1)

	require.NotNil(t, results[0].SameDayReliefRate)
	assert.InDelta(t, 0.5, *results[0].SameDayReliefRate, 1e-9)
}

func TestAnalyzeMedicationEffectiveness_NameNormalization(t *testing.T) {
	store := &fakeStore{
		medications: []model.MedicationRecord{
			medRecord(t, "2026-01-05", "Ibuprofen", "400mg", 600),
			medRecord(t, "2026-01-06", " ibuprofen ", "400mg", 600),
			medRecord(t, "2026-01-07", "IBUPROFEN", "400mg", 600),
		},
		dates: datesFrom(t, "2026-01-05", 7),
	}
	eng := NewEngine(store, Options{})

	results := eng.AnalyzeMedicationEffectiveness(context.Background(), testDay(t, "2026-01-05"), testDay(t, "2026-01-11"))
	require.Len(t, results, 1)
	assert.Equal(t, "ibuprofen", results[0].Name)
	assert.Equal(t, 3, results[0].TimesTaken)
}

func TestAnalyzeMedicationEffectiveness_QualityAndNotesGates(t *testing.T) {
	meds := []model.MedicationRecord{
		// Five doses: good quality.
		medRecord(t, "2026-01-05", "Aspirin", "100mg", 480),
		medRecord(t, "2026-01-06", "Aspirin", "100mg", 480),
		medRecord(t, "2026-01-07", "Aspirin", "100mg", 480),
		medRecord(t, "2026-01-08", "Aspirin", "100mg", 480),
		medRecord(t, "2026-01-09", "Aspirin", "100mg", 480),
		// Three doses: limited.
		medRecord(t, "2026-01-05", "Naproxen", "250mg", 500),
		medRecord(t, "2026-01-07", "Naproxen", "250mg", 500),
		medRecord(t, "2026-01-09", "Naproxen", "250mg", 500),
		// Two doses: insufficient, and no comparative note.
		medRecord(t, "2026-01-06", "Melatonin", "3mg", 1320),
		medRecord(t, "2026-01-08", "Melatonin", "3mg", 1320),
	}
	store := &fakeStore{
		medications: meds,
		dates:       datesFrom(t, "2026-01-05", 10),
	}
	eng := NewEngine(store, Options{})

	results := eng.AnalyzeMedicationEffectiveness(context.Background(), testDay(t, "2026-01-05"), testDay(t, "2026-01-14"))
	require.Len(t, results, 3)

	// Sorted by times taken descending.
	assert.Equal(t, "aspirin", results[0].Name)
	assert.Equal(t, "naproxen", results[1].Name)
	assert.Equal(t, "melatonin", results[2].Name)

	assert.Equal(t, QualityGood, results[0].Quality)
	assert.Equal(t, QualityLimited, results[1].Quality)
	assert.Equal(t, QualityInsufficient, results[2].Quality)

	assert.NotEmpty(t, results[0].EffectivenessNotes)
	assert.NotEmpty(t, results[1].EffectivenessNotes)
	assert.Empty(t, results[2].EffectivenessNotes)
}

func TestAnalyzeMedicationEffectiveness_StorageFailure(t *testing.T) {
	store := &fakeStore{medErr: errors.New("db gone")}
	eng := NewEngine(store, Options{})

	results := eng.AnalyzeMedicationEffectiveness(context.Background(), testDay(t, "2026-01-05"), testDay(t, "2026-01-14"))
	assert.Nil(t, results)
}

func TestAnalyzeMedicationEffectiveness_NoMedications(t *testing.T) {
	store := &fakeStore{dates: datesFrom(t, "2026-01-05", 10)}
	eng := NewEngine(store, Options{})

	results := eng.AnalyzeMedicationEffectiveness(context.Background(), testDay(t, "2026-01-05"), testDay(t, "2026-01-14"))
	assert.Nil(t, results)
}

func TestMedicationQuality(t *testing.T) {
	tests := []struct {
		timesTaken int
		want       DataQuality
	}{
		{0, QualityInsufficient},
		{2, QualityInsufficient},
		{3, QualityLimited},
		{4, QualityLimited},
		{5, QualityGood},
		{12, QualityGood},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MedicationQuality(tt.timesTaken), "timesTaken=%d", tt.timesTaken)
	}
}
