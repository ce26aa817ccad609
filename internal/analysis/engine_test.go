package analysis

import (
	"context"
	"testing"
	"time"

	"github.com/marcoviero/daily-diary/internal/model"
)

// fakeStore is an in-memory Storage used by the analysis tests. Error fields
// force the corresponding query to fail.
type fakeStore struct {
	daily       []model.DailyRecord
	symptoms    []model.SymptomRecord
	medications []model.MedicationRecord
	nutrition   []model.NutritionTotals
	factors     []model.LifestyleFactor
	dates       []time.Time

	dailyErr     error
	symptomErr   error
	medErr       error
	datesErr     error
	nutritionErr error
	factorErr    error
}

func (f *fakeStore) SaveDailyRecord(_ context.Context, record *model.DailyRecord) error {
	f.daily = append(f.daily, *record)
	return nil
}

func (f *fakeStore) GetDailyRows(_ context.Context, _, _ time.Time) ([]model.DailyRecord, error) {
	return f.daily, f.dailyErr
}

func (f *fakeStore) GetRawDailyDates(_ context.Context, _, _ time.Time) ([]time.Time, error) {
	if f.datesErr != nil {
		return nil, f.datesErr
	}
	if f.dates != nil {
		return f.dates, nil
	}
	dates := make([]time.Time, 0, len(f.daily))
	for _, r := range f.daily {
		dates = append(dates, r.Date)
	}
	return dates, nil
}

func (f *fakeStore) SaveSymptoms(_ context.Context, symptoms []model.SymptomRecord) error {
	f.symptoms = append(f.symptoms, symptoms...)
	return nil
}

func (f *fakeStore) GetRawSymptoms(_ context.Context, _, _ time.Time) ([]model.SymptomRecord, error) {
	return f.symptoms, f.symptomErr
}

func (f *fakeStore) SaveMedications(_ context.Context, medications []model.MedicationRecord) error {
	f.medications = append(f.medications, medications...)
	return nil
}

func (f *fakeStore) GetRawMedications(_ context.Context, _, _ time.Time) ([]model.MedicationRecord, error) {
	return f.medications, f.medErr
}

func (f *fakeStore) SaveMeals(_ context.Context, _ []model.MealRecord) error {
	return nil
}

func (f *fakeStore) GetNutritionTotals(_ context.Context, _, _ time.Time) ([]model.NutritionTotals, error) {
	return f.nutrition, f.nutritionErr
}

func (f *fakeStore) SaveLifestyleFactors(_ context.Context, factors []model.LifestyleFactor) error {
	f.factors = append(f.factors, factors...)
	return nil
}

func (f *fakeStore) GetLifestyleFactors(_ context.Context, _, _ time.Time) ([]model.LifestyleFactor, error) {
	return f.factors, f.factorErr
}

func (f *fakeStore) Migrate(_ context.Context) error { return nil }

func (f *fakeStore) Close() error { return nil }

// testDay parses a YYYY-MM-DD date, failing the test on bad input.
func testDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

// monday is a Monday; consecutive-day fixtures start here so weekday
// positions are predictable.
const monday = "2026-01-05"

// makeDays builds n consecutive daily records starting at the given date,
// passing each to fill for per-day customization.
func makeDays(t *testing.T, start string, n int, fill func(i int, r *model.DailyRecord)) []model.DailyRecord {
	t.Helper()
	first := testDay(t, start)

	records := make([]model.DailyRecord, n)
	for i := 0; i < n; i++ {
		records[i] = model.DailyRecord{Date: first.AddDate(0, 0, i)}
		if fill != nil {
			fill(i, &records[i])
		}
	}
	return records
}

func fptr(v float64) *float64 { return &v }

func iptr(v int) *int { return &v }

func TestNewEngine_Defaults(t *testing.T) {
	eng := NewEngine(&fakeStore{}, Options{})
	if eng.opts.MinDays != DefaultMinDays {
		t.Errorf("MinDays = %d, want %d", eng.opts.MinDays, DefaultMinDays)
	}
	if eng.opts.MaxLagDays != DefaultMaxLagDays {
		t.Errorf("MaxLagDays = %d, want %d", eng.opts.MaxLagDays, DefaultMaxLagDays)
	}

	eng = NewEngine(&fakeStore{}, Options{MinDays: 14, MaxLagDays: 5})
	if eng.opts.MinDays != 14 || eng.opts.MaxLagDays != 5 {
		t.Errorf("explicit options not preserved: %+v", eng.opts)
	}
}
