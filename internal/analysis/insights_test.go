package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcoviero/daily-diary/internal/model"
)

func findInsight(insights []Insight, category string) *Insight {
	for i := range insights {
		if insights[i].Category == category {
			return &insights[i]
		}
	}
	return nil
}

func TestGetInsights_PoorSleepFires(t *testing.T) {
	// Ten poor-sleep days at an 80% symptom rate against ten good-sleep days
	// at 20%: well past the 1.3x relative gate, with both groups at the good
	// quality size.
	records := makeDays(t, monday, 20, func(i int, r *model.DailyRecord) {
		if i < 10 {
			r.SleepScore = fptr(60)
			if i < 8 {
				r.SymptomCount = 1
			}
		} else {
			r.SleepScore = fptr(85)
			if i < 12 {
				r.SymptomCount = 1
			}
		}
	})
	store := &fakeStore{daily: records}
	eng := NewEngine(store, Options{MinDays: 7})

	insights, err := eng.GetInsights(context.Background(), testDay(t, monday), testDay(t, "2026-03-01"))
	require.NoError(t, err)

	sleep := findInsight(insights, "sleep")
	require.NotNil(t, sleep, "sleep insight missing")
	assert.Equal(t, PriorityHigh, sleep.Priority)
	assert.Equal(t, QualityGood, sleep.Quality)
	assert.Contains(t, sleep.Finding, "80%")
	assert.Contains(t, sleep.Finding, "20%")
	assert.NotEmpty(t, sleep.Recommendation)

	// High priority sorts ahead of everything else.
	assert.Equal(t, "sleep", insights[0].Category)
}

func TestGetInsights_SleepBelowRelativeGateSuppressed(t *testing.T) {
	// Poor-sleep rate 0.6 vs good-sleep 0.5: 0.6 <= 0.5 * 1.3, so no insight.
	records := makeDays(t, monday, 20, func(i int, r *model.DailyRecord) {
		if i < 10 {
			r.SleepScore = fptr(60)
			if i < 6 {
				r.SymptomCount = 1
			}
		} else {
			r.SleepScore = fptr(85)
			if i < 15 {
				r.SymptomCount = 1
			}
		}
	})
	store := &fakeStore{daily: records}
	eng := NewEngine(store, Options{MinDays: 7})

	insights, err := eng.GetInsights(context.Background(), testDay(t, monday), testDay(t, "2026-03-01"))
	require.NoError(t, err)

	assert.Nil(t, findInsight(insights, "sleep"))
}

func TestGetInsights_SmallSleepGroupsSuppressed(t *testing.T) {
	// Only four poor-sleep days: below the five-day group floor no matter how
	// stark the difference.
	records := makeDays(t, monday, 20, func(i int, r *model.DailyRecord) {
		if i < 4 {
			r.SleepScore = fptr(50)
			r.SymptomCount = 1
		} else {
			r.SleepScore = fptr(90)
		}
	})
	store := &fakeStore{daily: records}
	eng := NewEngine(store, Options{MinDays: 7})

	insights, err := eng.GetInsights(context.Background(), testDay(t, monday), testDay(t, "2026-03-01"))
	require.NoError(t, err)

	assert.Nil(t, findInsight(insights, "sleep"))
}

func TestGetInsights_ExerciseBoundaryNotStrict(t *testing.T) {
	// Inactive rate 0.6 is exactly 1.2x the active rate 0.5: the gate is
	// strict, so nothing fires.
	records := makeDays(t, monday, 20, func(i int, r *model.DailyRecord) {
		if i < 10 {
			r.TotalActivityMinutes = 60
			if i < 5 {
				r.SymptomCount = 1
			}
		} else if i < 16 {
			r.SymptomCount = 1
		}
	})
	store := &fakeStore{daily: records}
	eng := NewEngine(store, Options{MinDays: 7})

	insights, err := eng.GetInsights(context.Background(), testDay(t, monday), testDay(t, "2026-03-01"))
	require.NoError(t, err)

	assert.Nil(t, findInsight(insights, "exercise"))
}

func TestGetInsights_ExerciseFires(t *testing.T) {
	records := makeDays(t, monday, 20, func(i int, r *model.DailyRecord) {
		if i < 10 {
			r.TotalActivityMinutes = 45
			if i < 2 {
				r.SymptomCount = 1
			}
		} else if i < 18 {
			r.SymptomCount = 1
		}
	})
	store := &fakeStore{daily: records}
	eng := NewEngine(store, Options{MinDays: 7})

	insights, err := eng.GetInsights(context.Background(), testDay(t, monday), testDay(t, "2026-03-01"))
	require.NoError(t, err)

	exercise := findInsight(insights, "exercise")
	require.NotNil(t, exercise, "exercise insight missing")
	assert.Equal(t, PriorityMedium, exercise.Priority)
}

func TestGetInsights_HeavyCaffeineNextDay(t *testing.T) {
	// Heavy caffeine every other day; symptoms land on the following day.
	records := makeDays(t, monday, 21, func(i int, r *model.DailyRecord) {
		if i > 0 && (i-1)%2 == 0 {
			r.SymptomCount = 1
		}
	})
	var nutrition []model.NutritionTotals
	for i, r := range records {
		mg := 50.0
		if i%2 == 0 {
			mg = 300
		}
		nutrition = append(nutrition, model.NutritionTotals{Date: r.Date, CaffeineMg: mg})
	}
	store := &fakeStore{daily: records, nutrition: nutrition}
	eng := NewEngine(store, Options{MinDays: 7})

	insights, err := eng.GetInsights(context.Background(), testDay(t, monday), testDay(t, "2026-03-01"))
	require.NoError(t, err)

	diet := findInsight(insights, "diet")
	require.NotNil(t, diet, "caffeine insight missing")
	assert.Equal(t, PriorityMedium, diet.Priority)
	assert.Contains(t, diet.Finding, "caffeine")
}

func TestGetInsights_PressureQuartiles(t *testing.T) {
	// Forty pressure days: the bottom ten are low-pressure and symptomatic,
	// the top ten are clear.
	records := makeDays(t, monday, 40, func(i int, r *model.DailyRecord) {
		r.PressureHPa = fptr(980 + float64(i))
		if i < 10 {
			r.SymptomCount = 1
		}
	})
	store := &fakeStore{daily: records}
	eng := NewEngine(store, Options{MinDays: 7})

	insights, err := eng.GetInsights(context.Background(), testDay(t, monday), testDay(t, "2026-03-01"))
	require.NoError(t, err)

	weather := findInsight(insights, "weather")
	require.NotNil(t, weather, "pressure insight missing")
	assert.Equal(t, PriorityLow, weather.Priority)
}

func TestGetInsights_PriorityOrdering(t *testing.T) {
	// Sleep (high) and weekend (medium) both fire; high must come first.
	records := makeDays(t, monday, 21, func(i int, r *model.DailyRecord) {
		weekday := i%7 < 5
		if weekday {
			r.SleepScore = fptr(60)
			r.SymptomCount = 1
		} else {
			r.SleepScore = fptr(85)
		}
	})
	store := &fakeStore{daily: records}
	eng := NewEngine(store, Options{MinDays: 7})

	insights, err := eng.GetInsights(context.Background(), testDay(t, monday), testDay(t, "2026-03-01"))
	require.NoError(t, err)
	require.NotEmpty(t, insights)

	require.NotNil(t, findInsight(insights, "sleep"))
	require.NotNil(t, findInsight(insights, "lifestyle"))

	for i := 1; i < len(insights); i++ {
		assert.LessOrEqual(t,
			insights[i-1].Priority.rank(),
			insights[i].Priority.rank(),
			"insights out of priority order")
	}
	assert.Equal(t, PriorityHigh, insights[0].Priority)
}

func TestGetInsights_EmptyTable(t *testing.T) {
	store := &fakeStore{daily: makeDays(t, monday, 3, nil)}
	eng := NewEngine(store, Options{MinDays: 7})

	insights, err := eng.GetInsights(context.Background(), testDay(t, monday), testDay(t, "2026-03-01"))
	require.NoError(t, err)
	assert.Nil(t, insights)
}
