package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/marcoviero/daily-diary/internal/cli"
	"github.com/marcoviero/daily-diary/internal/model"
	"github.com/marcoviero/daily-diary/internal/service"
)

// importFile is the JSON document accepted by `diary import`.
type importFile struct {
	Days []importDay `json:"days"`
}

type importDay struct {
	Date string `json:"date"`

	OverallWellbeing *int `json:"overall_wellbeing"`
	EnergyLevel      *int `json:"energy_level"`
	StressLevel      *int `json:"stress_level"`

	IncidentCount int `json:"incident_count"`

	Weather *struct {
		TempAvgC        *float64 `json:"temp_avg_c"`
		PressureHPa     *float64 `json:"pressure_hpa"`
		HumidityPercent *float64 `json:"humidity_percent"`
	} `json:"weather"`

	Sleep *struct {
		Score        *float64 `json:"score"`
		TotalMinutes *float64 `json:"total_minutes"`
		DeepMinutes  *float64 `json:"deep_minutes"`
		REMMinutes   *float64 `json:"rem_minutes"`
		HRV          *float64 `json:"hrv"`
	} `json:"sleep"`

	Activity *struct {
		TotalMinutes float64  `json:"total_minutes"`
		ElevationM   float64  `json:"elevation_m"`
		AvgHeartRate *float64 `json:"avg_heart_rate"`
		AvgPowerW    *float64 `json:"avg_power_watts"`
	} `json:"activity"`

	Symptoms []struct {
		Type     string  `json:"type"`
		Severity float64 `json:"severity"`
		Location string  `json:"location"`
		Onset    string  `json:"onset"` // HH:MM
		Notes    string  `json:"notes"`
	} `json:"symptoms"`

	Medications []struct {
		Name   string `json:"name"`
		Dosage string `json:"dosage"`
		Time   string `json:"time"` // HH:MM
		Notes  string `json:"notes"`
	} `json:"medications"`

	Meals []struct {
		Description      string  `json:"description"`
		ContainsAlcohol  bool    `json:"contains_alcohol"`
		AlcoholUnits     float64 `json:"alcohol_units"`
		ContainsCaffeine bool    `json:"contains_caffeine"`
		CaffeineMg       float64 `json:"caffeine_mg"`
		Calories         float64 `json:"calories"`
		ProteinGrams     float64 `json:"protein_g"`
	} `json:"meals"`

	Factors map[string]bool `json:"factors"`
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import daily records from a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read import file: %w", err)
			}

			var doc importFile
			if err := json.Unmarshal(data, &doc); err != nil {
				return fmt.Errorf("failed to parse import file: %w", err)
			}
			if len(doc.Days) == 0 {
				cmd.Println(cli.FormatError("No days found in import file"))
				return nil
			}

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			bar := progressbar.NewOptions(len(doc.Days),
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("Importing days..."),
			)

			imported := 0
			for i := range doc.Days {
				if err := importOneDay(ctx, store, &doc.Days[i]); err != nil {
					return fmt.Errorf("day %s: %w", doc.Days[i].Date, err)
				}
				imported++
				_ = bar.Add(1)
			}

			cmd.Println()
			cmd.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d day(s)", imported)))
			return nil
		},
	}
}

func importOneDay(ctx context.Context, store service.Storage, day *importDay) error {
	date, err := time.Parse("2006-01-02", day.Date)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", day.Date, err)
	}

	record := model.DailyRecord{
		Date:             date,
		OverallWellbeing: day.OverallWellbeing,
		EnergyLevel:      day.EnergyLevel,
		StressLevel:      day.StressLevel,
		IncidentCount:    day.IncidentCount,
	}

	if day.Weather != nil {
		record.TempAvgC = day.Weather.TempAvgC
		record.PressureHPa = day.Weather.PressureHPa
		record.HumidityPercent = day.Weather.HumidityPercent
	}
	if day.Sleep != nil {
		record.SleepScore = day.Sleep.Score
		record.TotalSleepMinutes = day.Sleep.TotalMinutes
		record.DeepSleepMinutes = day.Sleep.DeepMinutes
		record.REMSleepMinutes = day.Sleep.REMMinutes
		record.HRVAverage = day.Sleep.HRV
	}
	if day.Activity != nil {
		record.TotalActivityMinutes = day.Activity.TotalMinutes
		record.TotalElevationGain = day.Activity.ElevationM
		record.AvgHeartRate = day.Activity.AvgHeartRate
		record.AvgPowerWatts = day.Activity.AvgPowerW
	}

	// Symptom aggregates
	var symptoms []model.SymptomRecord
	for _, s := range day.Symptoms {
		sym := model.SymptomRecord{
			ID:           uuid.NewString(),
			Date:         date,
			Type:         model.SymptomType(s.Type),
			Severity:     s.Severity,
			Location:     s.Location,
			OnsetMinutes: parseClock(s.Onset),
			Notes:        s.Notes,
		}
		symptoms = append(symptoms, sym)

		record.SymptomCount++
		if record.WorstSymptomSeverity == nil || s.Severity > *record.WorstSymptomSeverity {
			severity := s.Severity
			record.WorstSymptomSeverity = &severity
		}
		if sym.Type.IsHeadache() {
			record.HasHeadache = true
		}
		if sym.Type == model.SymptomHeadacheNeuralgiaform {
			record.HasNeuralgiaform = true
		}
	}

	// Meal aggregates
	var meals []model.MealRecord
	for _, m := range day.Meals {
		meals = append(meals, model.MealRecord{
			ID:               uuid.NewString(),
			Date:             date,
			Description:      m.Description,
			ContainsAlcohol:  m.ContainsAlcohol,
			AlcoholUnits:     m.AlcoholUnits,
			ContainsCaffeine: m.ContainsCaffeine,
			CaffeineMg:       m.CaffeineMg,
			Calories:         m.Calories,
			ProteinGrams:     m.ProteinGrams,
		})

		record.MealCount++
		if m.ContainsAlcohol {
			record.AlcoholConsumed = true
			record.AlcoholUnits += m.AlcoholUnits
		}
		if m.ContainsCaffeine {
			record.CaffeineConsumed = true
		}
	}

	var medications []model.MedicationRecord
	for _, m := range day.Medications {
		medications = append(medications, model.MedicationRecord{
			ID:           uuid.NewString(),
			Date:         date,
			Name:         m.Name,
			Dosage:       m.Dosage,
			TakenMinutes: parseClock(m.Time),
			Notes:        m.Notes,
		})
	}

	var factors []model.LifestyleFactor
	for name, value := range day.Factors {
		factors = append(factors, model.LifestyleFactor{Date: date, Name: name, Value: value})
	}

	if err := store.SaveDailyRecord(ctx, &record); err != nil {
		return err
	}
	if len(symptoms) > 0 {
		if err := store.SaveSymptoms(ctx, symptoms); err != nil {
			return err
		}
	}
	if len(medications) > 0 {
		if err := store.SaveMedications(ctx, medications); err != nil {
			return err
		}
	}
	if len(meals) > 0 {
		if err := store.SaveMeals(ctx, meals); err != nil {
			return err
		}
	}
	if len(factors) > 0 {
		if err := store.SaveLifestyleFactors(ctx, factors); err != nil {
			return err
		}
	}

	return nil
}

// parseClock converts an "HH:MM" string to minutes after midnight.
// Malformed or empty values map to zero.
func parseClock(s string) int {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0
	}
	return h*60 + m
}
