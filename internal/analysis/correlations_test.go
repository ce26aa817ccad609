package analysis

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcoviero/daily-diary/internal/model"
)

func findCorrelation(results []CorrelationResult, factor string) *CorrelationResult {
	for i := range results {
		if results[i].Factor == factor {
			return &results[i]
		}
	}
	return nil
}

func TestAnalyzeCorrelations_PerfectInverseSleepRelationship(t *testing.T) {
	// Twenty days where severity is exactly 10 - score/10: the sleep factor
	// must come back as a perfect negative correlation.
	records := makeDays(t, monday, 20, func(i int, r *model.DailyRecord) {
		score := 50.0 + float64(i)*2
		r.SleepScore = fptr(score)
		r.WorstSymptomSeverity = fptr(10 - score/10)
		r.SymptomCount = 1
	})
	store := &fakeStore{daily: records}
	eng := NewEngine(store, Options{MinDays: 7})

	results, err := eng.AnalyzeCorrelations(context.Background(), DefaultTarget, testDay(t, monday), testDay(t, "2026-03-01"))
	require.NoError(t, err)
	require.NotEmpty(t, results)

	sleep := findCorrelation(results, "Sleep Score")
	require.NotNil(t, sleep, "sleep factor missing from results")

	assert.InDelta(t, -1.0, sleep.Correlation, 1e-9)
	assert.Less(t, sleep.PValue, 0.001)
	assert.Equal(t, 20, sleep.NSamples)
	assert.True(t, sleep.IsSignificant())
	assert.Equal(t, StrengthVeryStrong, sleep.Strength())
	assert.Equal(t, DirectionNegative, sleep.Direction())
	assert.NotEmpty(t, sleep.Interpretation)
}

func TestAnalyzeCorrelations_SparseFactorOmitted(t *testing.T) {
	// Pressure recorded on only four days: below the five paired samples a
	// same-day test requires, so the factor is silently dropped.
	records := makeDays(t, monday, 10, func(i int, r *model.DailyRecord) {
		r.WorstSymptomSeverity = fptr(float64(i % 7))
		if i < 4 {
			r.PressureHPa = fptr(1000 + float64(i))
		}
	})
	store := &fakeStore{daily: records}
	eng := NewEngine(store, Options{MinDays: 7})

	results, err := eng.AnalyzeCorrelations(context.Background(), DefaultTarget, testDay(t, monday), testDay(t, "2026-03-01"))
	require.NoError(t, err)

	assert.Nil(t, findCorrelation(results, "Barometric Pressure"))
}

func TestAnalyzeCorrelations_SortedByAbsoluteValue(t *testing.T) {
	records := makeDays(t, monday, 20, func(i int, r *model.DailyRecord) {
		r.WorstSymptomSeverity = fptr(float64(i%5) + 1)
		r.SleepScore = fptr(90 - float64(i%5)*8)
		r.StressLevel = iptr(i % 4)
		r.TotalActivityMinutes = float64((i * 13) % 60)
	})
	store := &fakeStore{daily: records}
	eng := NewEngine(store, Options{MinDays: 7})

	results, err := eng.AnalyzeCorrelations(context.Background(), DefaultTarget, testDay(t, monday), testDay(t, "2026-03-01"))
	require.NoError(t, err)
	require.NotEmpty(t, results)

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t,
			math.Abs(results[i-1].Correlation),
			math.Abs(results[i].Correlation),
			"results must be ordered by |r| descending")
	}
	for _, r := range results {
		assert.GreaterOrEqual(t, r.Correlation, -1.0)
		assert.LessOrEqual(t, r.Correlation, 1.0)
		assert.GreaterOrEqual(t, r.PValue, 0.0)
		assert.LessOrEqual(t, r.PValue, 1.0)
	}
}

func TestAnalyzeCorrelations_TiedFactorsKeepCandidateOrder(t *testing.T) {
	// Sleep score and sleep duration carry identical values day by day, so
	// they tie at exactly the same |r| against the target. The sort is
	// stable, so the tie must resolve to candidate-list order: score first.
	values := []float64{62, 71, 55, 80, 66, 74, 59, 77, 68, 63, 72, 58}
	records := makeDays(t, monday, 12, func(i int, r *model.DailyRecord) {
		r.SleepScore = fptr(values[i])
		r.TotalSleepMinutes = fptr(values[i])
		r.WorstSymptomSeverity = fptr(float64(i%5) + 1)
	})
	store := &fakeStore{daily: records}
	eng := NewEngine(store, Options{MinDays: 7})

	results, err := eng.AnalyzeCorrelations(context.Background(), DefaultTarget, testDay(t, monday), testDay(t, "2026-03-01"))
	require.NoError(t, err)

	scoreIdx, durationIdx := -1, -1
	for i, r := range results {
		switch r.Factor {
		case "Sleep Score":
			scoreIdx = i
		case "Total Sleep Duration":
			durationIdx = i
		}
	}
	require.NotEqual(t, -1, scoreIdx, "sleep score missing from results")
	require.NotEqual(t, -1, durationIdx, "sleep duration missing from results")

	assert.Equal(t, results[scoreIdx].Correlation, results[durationIdx].Correlation)
	assert.Less(t, scoreIdx, durationIdx, "tied factors must keep candidate-list order")
}

func TestAnalyzeCorrelations_UnknownTarget(t *testing.T) {
	store := &fakeStore{daily: makeDays(t, monday, 10, nil)}
	eng := NewEngine(store, Options{MinDays: 7})

	results, err := eng.AnalyzeCorrelations(context.Background(), "shoe_size", testDay(t, monday), testDay(t, "2026-03-01"))
	require.NoError(t, err)
	assert.Nil(t, results)
}

func TestAnalyzeCorrelations_EmptyTableYieldsNoFindings(t *testing.T) {
	store := &fakeStore{daily: makeDays(t, monday, 3, nil)}
	eng := NewEngine(store, Options{MinDays: 7})

	results, err := eng.AnalyzeCorrelations(context.Background(), DefaultTarget, testDay(t, monday), testDay(t, "2026-03-01"))
	require.NoError(t, err)
	assert.Nil(t, results)
}

func TestAnalyzeCorrelations_LifestyleFlagsAreTested(t *testing.T) {
	records := makeDays(t, monday, 14, func(i int, r *model.DailyRecord) {
		r.WorstSymptomSeverity = fptr(float64(i % 8))
	})
	var factors []model.LifestyleFactor
	for i, r := range records {
		factors = append(factors, model.LifestyleFactor{
			Date:  r.Date,
			Name:  "worked_late",
			Value: i%8 >= 4, // tracks severity
		})
	}
	store := &fakeStore{daily: records, factors: factors}
	eng := NewEngine(store, Options{MinDays: 7})

	results, err := eng.AnalyzeCorrelations(context.Background(), DefaultTarget, testDay(t, monday), testDay(t, "2026-03-01"))
	require.NoError(t, err)

	flag := findCorrelation(results, "worked_late")
	require.NotNil(t, flag, "lifestyle flag missing from results")
	assert.Positive(t, flag.Correlation)
	assert.Equal(t, 14, flag.NSamples)
}
