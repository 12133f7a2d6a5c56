package migration

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_notices",
		SQL: `CREATE TABLE IF NOT EXISTS notices (
  id         UUID        PRIMARY KEY,
  level      TEXT        NOT NULL CHECK (level IN ('success', 'error')),
  text       TEXT        NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_notices_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_notices_created_at ON notices (created_at DESC);`,
	},
	{
		Name: "create_index_notices_level",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_notices_level ON notices (level);`,
	},
}

// EnsureMigrated checks if the notices table exists and runs the migration steps if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, logger *slog.Logger, dbHost string) error {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "database", "db_host", dbHost)
	start := time.Now()

	var exists bool
	if err := db.QueryRowContext(ctx, "SELECT to_regclass('public.notices') IS NOT NULL").Scan(&exists); err != nil {
		log.Error("db_migration_failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}
	if exists {
		log.Info("db_migration_skip", "msg", "schema already exists", "duration_ms", time.Since(start).Milliseconds())
		return nil
	}

	log.Info("db_migration_start")
	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				"migration_step", step.Name,
				"error", err,
				"step_duration_ms", time.Since(stepStart).Milliseconds(),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		log.Debug("db_migration_step", "migration_step", step.Name, "step_duration_ms", time.Since(stepStart).Milliseconds())
	}
	log.Info("db_migration_success", "duration_ms", time.Since(start).Milliseconds())
	return nil
}
