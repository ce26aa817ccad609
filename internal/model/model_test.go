package model

import "testing"

func TestSymptomType_IsHeadache(t *testing.T) {
	tests := []struct {
		symptomType SymptomType
		want        bool
	}{
		{SymptomHeadache, true},
		{SymptomHeadacheNeuralgiaform, true},
		{SymptomNausea, false},
		{SymptomFatigue, false},
		{SymptomType("jaw pain"), false},
	}
	for _, tt := range tests {
		if got := tt.symptomType.IsHeadache(); got != tt.want {
			t.Errorf("IsHeadache(%q) = %v, want %v", tt.symptomType, got, tt.want)
		}
	}
}

func TestMedicationRecord_NormalizedName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Sumatriptan", "sumatriptan"},
		{" IBUPROFEN ", "ibuprofen"},
		{"aspirin", "aspirin"},
	}
	for _, tt := range tests {
		m := MedicationRecord{Name: tt.name}
		if got := m.NormalizedName(); got != tt.want {
			t.Errorf("NormalizedName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestDailyRecord_HasSymptoms(t *testing.T) {
	r := DailyRecord{}
	if r.HasSymptoms() {
		t.Error("empty record should have no symptoms")
	}
	r.SymptomCount = 2
	if !r.HasSymptoms() {
		t.Error("record with symptom count should report symptoms")
	}
}
