package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/draft-companion/internal/config"
	"github.com/riskibarqy/draft-companion/internal/domain/league"
	"github.com/riskibarqy/draft-companion/internal/domain/roster"
	"github.com/riskibarqy/draft-companion/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/draft-companion/internal/infrastructure/repository/file"
	"github.com/riskibarqy/draft-companion/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/draft-companion/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/draft-companion/internal/platform/logging"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const dbPingTimeout = 5 * time.Second

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

func closeDB(db *sqlx.DB, logger *logging.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Warn("close postgres failed", "error", err)
	}
}

// newSettingsRepository picks the backing store named by SETTINGS_STORE and
// fronts it with the read cache.
func newSettingsRepository(cfg config.Config, db *sqlx.DB) (league.Repository, error) {
	var next league.Repository
	switch cfg.SettingsStore {
	case config.SettingsStoreMemory:
		next = memory.NewLeagueRepository()
	case config.SettingsStoreFile:
		next = file.NewLeagueRepository(cfg.SettingsFile)
	case config.SettingsStorePostgres:
		if db == nil {
			return nil, fmt.Errorf("postgres settings store requires a database")
		}
		next = postgres.NewLeagueRepository(db)
	default:
		return nil, fmt.Errorf("unknown settings store %q", cfg.SettingsStore)
	}

	return cache.NewLeagueRepository(next, cache.NewLeagueSettingsStore()), nil
}

// newRosterExportRepository keeps exports in postgres when a database is
// configured and in memory otherwise.
func newRosterExportRepository(db *sqlx.DB) roster.ExportRepository {
	var next roster.ExportRepository = memory.NewRosterExportRepository()
	if db != nil {
		next = postgres.NewRosterExportRepository(db)
	}
	return cache.NewRosterExportRepository(next, cache.NewRosterExportStore())
}
