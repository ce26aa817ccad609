package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/marcoviero/daily-diary/internal/model"
)

// SaveDailyRecord inserts or replaces the summary row for a day.
func (s *SQLiteStorage) SaveDailyRecord(ctx context.Context, record *model.DailyRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateDailyRecord(record); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO daily_summary (
			date,
			overall_wellbeing, energy_level, stress_level,
			symptom_count, worst_symptom_severity, has_headache, has_neuralgiaform,
			incident_count,
			meal_count, alcohol_units, alcohol_consumed, caffeine_consumed,
			temp_avg_c, pressure_hpa, humidity_percent,
			sleep_score, total_sleep_minutes, deep_sleep_minutes, rem_sleep_minutes, hrv_average,
			total_activity_minutes, total_elevation_m, avg_heart_rate, avg_power_watts,
			updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`,
		formatDate(record.Date),
		intArg(record.OverallWellbeing), intArg(record.EnergyLevel), intArg(record.StressLevel),
		record.SymptomCount, floatArg(record.WorstSymptomSeverity), record.HasHeadache, record.HasNeuralgiaform,
		record.IncidentCount,
		record.MealCount, record.AlcoholUnits, record.AlcoholConsumed, record.CaffeineConsumed,
		floatArg(record.TempAvgC), floatArg(record.PressureHPa), floatArg(record.HumidityPercent),
		floatArg(record.SleepScore), floatArg(record.TotalSleepMinutes), floatArg(record.DeepSleepMinutes),
		floatArg(record.REMSleepMinutes), floatArg(record.HRVAverage),
		record.TotalActivityMinutes, record.TotalElevationGain,
		floatArg(record.AvgHeartRate), floatArg(record.AvgPowerWatts),
	)
	if err != nil {
		return fmt.Errorf("failed to save daily record: %w", err)
	}
	return nil
}

// GetDailyRows returns the daily summary rows in the range, sorted ascending by date.
func (s *SQLiteStorage) GetDailyRows(ctx context.Context, start, end time.Time) ([]model.DailyRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateDateRange(start, end); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT date,
			overall_wellbeing, energy_level, stress_level,
			symptom_count, worst_symptom_severity, has_headache, has_neuralgiaform,
			incident_count,
			meal_count, alcohol_units, alcohol_consumed, caffeine_consumed,
			temp_avg_c, pressure_hpa, humidity_percent,
			sleep_score, total_sleep_minutes, deep_sleep_minutes, rem_sleep_minutes, hrv_average,
			total_activity_minutes, total_elevation_m, avg_heart_rate, avg_power_watts
		FROM daily_summary
		WHERE date >= ? AND date <= ?
		ORDER BY date
	`, formatDate(start), formatDate(end))
	if err != nil {
		return nil, fmt.Errorf("failed to query daily rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.DailyRecord
	for rows.Next() {
		var (
			r        model.DailyRecord
			dateStr  string
			well     sql.NullInt64
			energy   sql.NullInt64
			stress   sql.NullInt64
			worst    sql.NullFloat64
			temp     sql.NullFloat64
			pressure sql.NullFloat64
			humidity sql.NullFloat64
			score    sql.NullFloat64
			sleepMin sql.NullFloat64
			deepMin  sql.NullFloat64
			remMin   sql.NullFloat64
			hrv      sql.NullFloat64
			hr       sql.NullFloat64
			power    sql.NullFloat64
		)

		err := rows.Scan(&dateStr,
			&well, &energy, &stress,
			&r.SymptomCount, &worst, &r.HasHeadache, &r.HasNeuralgiaform,
			&r.IncidentCount,
			&r.MealCount, &r.AlcoholUnits, &r.AlcoholConsumed, &r.CaffeineConsumed,
			&temp, &pressure, &humidity,
			&score, &sleepMin, &deepMin, &remMin, &hrv,
			&r.TotalActivityMinutes, &r.TotalElevationGain, &hr, &power,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily row: %w", err)
		}

		r.Date, err = parseDate(dateStr)
		if err != nil {
			return nil, err
		}
		r.OverallWellbeing = nullInt(well)
		r.EnergyLevel = nullInt(energy)
		r.StressLevel = nullInt(stress)
		r.WorstSymptomSeverity = nullFloat(worst)
		r.TempAvgC = nullFloat(temp)
		r.PressureHPa = nullFloat(pressure)
		r.HumidityPercent = nullFloat(humidity)
		r.SleepScore = nullFloat(score)
		r.TotalSleepMinutes = nullFloat(sleepMin)
		r.DeepSleepMinutes = nullFloat(deepMin)
		r.REMSleepMinutes = nullFloat(remMin)
		r.HRVAverage = nullFloat(hrv)
		r.AvgHeartRate = nullFloat(hr)
		r.AvgPowerWatts = nullFloat(power)

		records = append(records, r)
	}

	return records, rows.Err()
}

// GetRawDailyDates returns every date in the range with any recorded data,
// across all record tables. Used as the baseline universe for medication analysis.
func (s *SQLiteStorage) GetRawDailyDates(ctx context.Context, start, end time.Time) ([]time.Time, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateDateRange(start, end); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT date FROM daily_summary WHERE date >= ?1 AND date <= ?2
		UNION
		SELECT date FROM symptoms WHERE date >= ?1 AND date <= ?2
		UNION
		SELECT date FROM medications WHERE date >= ?1 AND date <= ?2
		UNION
		SELECT date FROM meals WHERE date >= ?1 AND date <= ?2
		ORDER BY date
	`, formatDate(start), formatDate(end))
	if err != nil {
		return nil, fmt.Errorf("failed to query daily dates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var dates []time.Time
	for rows.Next() {
		var dateStr string
		if err := rows.Scan(&dateStr); err != nil {
			return nil, fmt.Errorf("failed to scan date: %w", err)
		}
		d, err := parseDate(dateStr)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}

	return dates, rows.Err()
}
