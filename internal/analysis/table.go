package analysis

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/marcoviero/daily-diary/internal/common"
	"github.com/marcoviero/daily-diary/internal/model"
)

// FeatureRow is one day of the analysis table. Optional columns are pointers;
// nil means the underlying record or integration is missing for that day.
type FeatureRow struct {
	Date      time.Time
	DayOfWeek int // 0=Monday .. 6=Sunday
	IsWeekend bool

	// Wellbeing
	OverallWellbeing *float64
	EnergyLevel      *float64
	StressLevel      *float64

	// Symptoms
	HasSymptoms          bool
	SymptomCount         float64
	WorstSymptomSeverity *float64
	HasHeadache          bool
	HasNeuralgiaform     bool

	// Incidents
	HasIncidents  bool
	IncidentCount float64

	// Meals and nutrition
	AlcoholConsumed  bool
	AlcoholUnits     float64
	CaffeineConsumed bool
	CaffeineMg       *float64
	Calories         *float64
	ProteinGrams     *float64

	// Weather
	TempAvgC        *float64
	PressureHPa     *float64
	PressureChange  *float64
	HumidityPercent *float64

	// Sleep
	SleepScore       *float64
	SleepMinutes     *float64
	DeepSleepMinutes *float64
	REMSleepMinutes  *float64
	HRVAverage       *float64

	// Activity
	ActivityMinutes float64
	ElevationGain   float64
	AvgHeartRate    *float64
	AvgPower        *float64

	// Freeform boolean lifestyle flags for the day.
	Lifestyle map[string]bool

	// Previous-day shadows, shifted positionally over the sorted row
	// sequence. nil on the first row.
	PrevActivityMinutes *float64
	PrevElevationGain   *float64
	PrevAlcoholUnits    *float64
	PrevSleepScore      *float64
	PrevSleepMinutes    *float64
	PrevCaffeineMg      *float64
	PrevPressureHPa     *float64
}

// FeatureTable is the date-indexed analysis table, sorted ascending. Once
// built it is never mutated; analyses only read it.
type FeatureTable struct {
	Rows []FeatureRow
}

// Empty reports whether the table has no rows.
func (t *FeatureTable) Empty() bool {
	return t == nil || len(t.Rows) == 0
}

// Len returns the number of days in the table.
func (t *FeatureTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// BuildFeatureTable assembles one row per recorded day in [start, end].
// Returns an empty table when fewer than MinDays days exist or when the
// storage query fails; the error return is reserved for invalid input, so
// downstream analyses degrade to "no findings" rather than crashing.
func (e *Engine) BuildFeatureTable(ctx context.Context, start, end time.Time) (*FeatureTable, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("invalid range: end %v before start %v", end, start)
	}

	records, err := e.store.GetDailyRows(ctx, start, end)
	if err != nil {
		common.LogError(err, "feature table query failed, returning empty table", common.Fields{
			"start": start.Format("2006-01-02"),
			"end":   end.Format("2006-01-02"),
		})
		return &FeatureTable{}, nil
	}

	if len(records) < e.opts.MinDays {
		common.LogDebug("insufficient days for feature table", common.Fields{
			"days":     len(records),
			"min_days": e.opts.MinDays,
		})
		return &FeatureTable{}, nil
	}

	nutrition := e.nutritionByDate(ctx, start, end)
	lifestyle := e.lifestyleByDate(ctx, start, end)

	// Storage returns rows ordered by date, but the contract here is
	// ascending order regardless of the collaborator.
	sort.Slice(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) })

	rows := make([]FeatureRow, 0, len(records))
	for i := range records {
		rows = append(rows, buildRow(&records[i], nutrition, lifestyle))
	}

	addDerivedColumns(rows)

	return &FeatureTable{Rows: rows}, nil
}

// nutritionByDate left-joins the per-day meal sums; a failed query leaves
// all nutrition columns null.
func (e *Engine) nutritionByDate(ctx context.Context, start, end time.Time) map[string]model.NutritionTotals {
	totals, err := e.store.GetNutritionTotals(ctx, start, end)
	if err != nil {
		common.LogError(err, "nutrition totals query failed, leaving columns null", nil)
		return nil
	}
	byDate := make(map[string]model.NutritionTotals, len(totals))
	for _, t := range totals {
		byDate[t.Date.Format("2006-01-02")] = t
	}
	return byDate
}

// lifestyleByDate left-joins the boolean lifestyle flags per day.
func (e *Engine) lifestyleByDate(ctx context.Context, start, end time.Time) map[string]map[string]bool {
	factors, err := e.store.GetLifestyleFactors(ctx, start, end)
	if err != nil {
		common.LogError(err, "lifestyle factors query failed, leaving columns null", nil)
		return nil
	}
	byDate := make(map[string]map[string]bool)
	for _, f := range factors {
		key := f.Date.Format("2006-01-02")
		if byDate[key] == nil {
			byDate[key] = make(map[string]bool)
		}
		byDate[key][f.Name] = f.Value
	}
	return byDate
}

func buildRow(r *model.DailyRecord, nutrition map[string]model.NutritionTotals, lifestyle map[string]map[string]bool) FeatureRow {
	dow := mondayIndexed(r.Date)

	row := FeatureRow{
		Date:      r.Date,
		DayOfWeek: dow,
		IsWeekend: dow >= 5,

		OverallWellbeing: intToFloat(r.OverallWellbeing),
		EnergyLevel:      intToFloat(r.EnergyLevel),
		StressLevel:      intToFloat(r.StressLevel),

		HasSymptoms:          r.HasSymptoms(),
		SymptomCount:         float64(r.SymptomCount),
		WorstSymptomSeverity: r.WorstSymptomSeverity,
		HasHeadache:          r.HasHeadache,
		HasNeuralgiaform:     r.HasNeuralgiaform,

		HasIncidents:  r.IncidentCount > 0,
		IncidentCount: float64(r.IncidentCount),

		AlcoholConsumed:  r.AlcoholConsumed,
		AlcoholUnits:     r.AlcoholUnits,
		CaffeineConsumed: r.CaffeineConsumed,

		TempAvgC:        r.TempAvgC,
		PressureHPa:     r.PressureHPa,
		HumidityPercent: r.HumidityPercent,

		SleepScore:       r.SleepScore,
		SleepMinutes:     r.TotalSleepMinutes,
		DeepSleepMinutes: r.DeepSleepMinutes,
		REMSleepMinutes:  r.REMSleepMinutes,
		HRVAverage:       r.HRVAverage,

		ActivityMinutes: r.TotalActivityMinutes,
		ElevationGain:   r.TotalElevationGain,
		AvgHeartRate:    r.AvgHeartRate,
		AvgPower:        r.AvgPowerWatts,
	}

	key := r.Date.Format("2006-01-02")
	if t, ok := nutrition[key]; ok {
		row.CaffeineMg = ptr(t.CaffeineMg)
		row.Calories = ptr(t.Calories)
		row.ProteinGrams = ptr(t.ProteinGrams)
	}
	if flags, ok := lifestyle[key]; ok {
		row.Lifestyle = flags
	}

	return row
}

// addDerivedColumns fills the previous-day shadow columns and the pressure
// delta. Shifts are positional over the sorted sequence, not calendar-aware:
// when a day is missing, a shadow pairs with the closest earlier recorded
// day instead of date-1. This mirrors the historical behavior of the
// analysis and is pinned by tests.
func addDerivedColumns(rows []FeatureRow) {
	for i := 1; i < len(rows); i++ {
		prev := &rows[i-1]
		cur := &rows[i]

		cur.PrevActivityMinutes = ptr(prev.ActivityMinutes)
		cur.PrevElevationGain = ptr(prev.ElevationGain)
		cur.PrevAlcoholUnits = ptr(prev.AlcoholUnits)
		cur.PrevSleepScore = copyFloat(prev.SleepScore)
		cur.PrevSleepMinutes = copyFloat(prev.SleepMinutes)
		cur.PrevCaffeineMg = copyFloat(prev.CaffeineMg)
		cur.PrevPressureHPa = copyFloat(prev.PressureHPa)

		if cur.PressureHPa != nil && prev.PressureHPa != nil {
			cur.PressureChange = ptr(*cur.PressureHPa - *prev.PressureHPa)
		}
	}
}

// mondayIndexed returns the weekday with Monday as 0 and Sunday as 6.
func mondayIndexed(d time.Time) int {
	return (int(d.Weekday()) + 6) % 7
}

func ptr(v float64) *float64 {
	return &v
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	f := *v
	return &f
}

func intToFloat(v *int) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}
