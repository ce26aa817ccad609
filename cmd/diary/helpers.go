package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/marcoviero/daily-diary/internal/analysis"
	"github.com/marcoviero/daily-diary/internal/common"
	"github.com/marcoviero/daily-diary/internal/config"
	"github.com/marcoviero/daily-diary/internal/storage"
)

// openStorage opens the configured database and brings its schema current.
// Callers own the returned storage and must Close it.
func openStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("could not open diary database at %s", dbPath), err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, common.NewUserError("could not migrate diary database", err)
	}

	return store, nil
}

// engineOptions reads the analysis tuning knobs from configuration.
func engineOptions() analysis.Options {
	return analysis.Options{
		MinDays:    viper.GetInt("analysis.min_days"),
		MaxLagDays: viper.GetInt("analysis.max_lag_days"),
	}
}
