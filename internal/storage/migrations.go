package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS daily_summary (
					date TEXT PRIMARY KEY,
					overall_wellbeing INTEGER,
					energy_level INTEGER,
					stress_level INTEGER,
					symptom_count INTEGER DEFAULT 0,
					worst_symptom_severity REAL,
					has_headache BOOLEAN DEFAULT 0,
					has_neuralgiaform BOOLEAN DEFAULT 0,
					incident_count INTEGER DEFAULT 0,
					meal_count INTEGER DEFAULT 0,
					alcohol_units REAL DEFAULT 0,
					alcohol_consumed BOOLEAN DEFAULT 0,
					caffeine_consumed BOOLEAN DEFAULT 0,
					temp_avg_c REAL,
					pressure_hpa REAL,
					humidity_percent REAL,
					sleep_score REAL,
					total_sleep_minutes REAL,
					deep_sleep_minutes REAL,
					rem_sleep_minutes REAL,
					hrv_average REAL,
					total_activity_minutes REAL DEFAULT 0,
					total_elevation_m REAL DEFAULT 0,
					avg_heart_rate REAL,
					avg_power_watts REAL,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS symptoms (
					id TEXT PRIMARY KEY,
					date TEXT NOT NULL,
					symptom_type TEXT NOT NULL,
					severity REAL NOT NULL,
					location TEXT,
					onset_minutes INTEGER DEFAULT 0,
					notes TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_symptoms_date ON symptoms(date)`,

				`CREATE TABLE IF NOT EXISTS medications (
					id TEXT PRIMARY KEY,
					date TEXT NOT NULL,
					name TEXT NOT NULL,
					dosage TEXT,
					taken_minutes INTEGER DEFAULT 0,
					notes TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_medications_date ON medications(date)`,
				`CREATE INDEX idx_medications_name ON medications(name)`,

				`CREATE TABLE IF NOT EXISTS meals (
					id TEXT PRIMARY KEY,
					date TEXT NOT NULL,
					description TEXT,
					contains_alcohol BOOLEAN DEFAULT 0,
					alcohol_units REAL DEFAULT 0,
					contains_caffeine BOOLEAN DEFAULT 0,
					caffeine_mg REAL DEFAULT 0,
					calories REAL DEFAULT 0,
					protein_g REAL DEFAULT 0,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_meals_date ON meals(date)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Add lifestyle factors table",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS lifestyle_factors (
					date TEXT NOT NULL,
					name TEXT NOT NULL,
					value BOOLEAN NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					PRIMARY KEY (date, name)
				)`,
				`CREATE INDEX idx_lifestyle_factors_date ON lifestyle_factors(date)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query '%s': %w", query, err)
				}
			}
			return nil
		},
	},
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	// Get current version
	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	// Apply migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		// Update version
		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	// Verify we're at the expected schema version
	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
