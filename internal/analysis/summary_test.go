package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcoviero/daily-diary/internal/model"
)

func TestGetSummaryStats(t *testing.T) {
	records := makeDays(t, monday, 10, func(i int, r *model.DailyRecord) {
		if i%2 == 0 {
			r.SymptomCount = 1
		}
		r.OverallWellbeing = iptr(6)
		if i < 5 {
			r.SleepScore = fptr(80)
		}
		r.TotalActivityMinutes = 30
		r.TotalElevationGain = 100
	})
	store := &fakeStore{daily: records}
	eng := NewEngine(store, Options{MinDays: 7})

	stats, err := eng.GetSummaryStats(context.Background(), testDay(t, monday), testDay(t, "2026-03-01"))
	require.NoError(t, err)
	require.NotNil(t, stats)

	assert.Equal(t, 10, stats.PeriodDays)
	assert.Equal(t, records[0].Date, stats.StartDate)
	assert.Equal(t, records[9].Date, stats.EndDate)
	assert.Equal(t, 5, stats.DaysWithSymptoms)
	assert.InDelta(t, 0.5, stats.SymptomRate, 1e-9)

	require.NotNil(t, stats.AvgWellbeing)
	assert.InDelta(t, 6.0, *stats.AvgWellbeing, 1e-9)
	require.NotNil(t, stats.AvgSleepScore)
	assert.InDelta(t, 80.0, *stats.AvgSleepScore, 1e-9)

	assert.InDelta(t, 5.0, stats.TotalActivityHours, 1e-9)
	assert.InDelta(t, 1000.0, stats.TotalElevationM, 1e-9)
}

func TestGetSummaryStats_MissingAveragesStayNil(t *testing.T) {
	store := &fakeStore{daily: makeDays(t, monday, 8, nil)}
	eng := NewEngine(store, Options{MinDays: 7})

	stats, err := eng.GetSummaryStats(context.Background(), testDay(t, monday), testDay(t, "2026-03-01"))
	require.NoError(t, err)
	require.NotNil(t, stats)

	assert.Nil(t, stats.AvgWellbeing)
	assert.Nil(t, stats.AvgSleepScore)
	assert.Zero(t, stats.DaysWithSymptoms)
}

func TestGetSummaryStats_InsufficientData(t *testing.T) {
	store := &fakeStore{daily: makeDays(t, monday, 2, nil)}
	eng := NewEngine(store, Options{MinDays: 7})

	stats, err := eng.GetSummaryStats(context.Background(), testDay(t, monday), testDay(t, "2026-03-01"))
	require.NoError(t, err)
	assert.Nil(t, stats)
}
