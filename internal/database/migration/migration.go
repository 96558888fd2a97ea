package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pitchapi/internal/logger"
)

type migrationStep struct {
	Name string
	SQL  string
}

// sentinelTable is looked up to decide whether the schema already exists.
const sentinelTable = "public.startups"

var steps = []migrationStep{
	{
		Name: "create_table_startups",
		SQL: `CREATE TABLE IF NOT EXISTS startups (
  id             BIGSERIAL   PRIMARY KEY,
  submission_id  UUID        NOT NULL UNIQUE,
  startup_name   TEXT        NOT NULL,
  submitter_name TEXT        NOT NULL,
  status         TEXT        NOT NULL DEFAULT 'submitted',
  created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at     TIMESTAMPTZ
);`,
	},
	{
		Name: "create_table_startup_files",
		SQL: `CREATE TABLE IF NOT EXISTS startup_files (
  id            BIGSERIAL   PRIMARY KEY,
  startup_id    BIGINT      NOT NULL REFERENCES startups (id) ON DELETE CASCADE,
  original_name TEXT        NOT NULL,
  saved_name    TEXT        NOT NULL,
  storage_path  TEXT        NOT NULL UNIQUE,
  file_size     BIGINT      NOT NULL CHECK (file_size >= 0),
  content_type  TEXT,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_startups_startup_name",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_startups_startup_name ON startups (startup_name);`,
	},
	{
		Name: "create_index_startups_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_startups_created_at ON startups (created_at);`,
	},
	{
		Name: "create_index_startup_files_startup_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_startup_files_startup_id ON startup_files (startup_id);`,
	},
}

// EnsureMigrated creates the submission schema unless the startups table already exists.
func EnsureMigrated(ctx context.Context, db *sql.DB, dbHost string) error {
	start := time.Now()
	log := logger.WithContext(ctx).With("component", "database", "db_host", dbHost)

	log.Info("checking schema", "event", "db_migration_check")

	var exists bool
	if err := db.QueryRowContext(ctx, "SELECT to_regclass($1) IS NOT NULL", sentinelTable).Scan(&exists); err != nil {
		log.Error("schema check failed",
			"event", "db_migration_failed",
			"error", err.Error(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return fmt.Errorf("check sentinel table: %w", err)
	}

	if exists {
		log.Info("schema already exists, skipping migration",
			"event", "db_migration_skip",
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}

	log.Info("applying schema", "event", "db_migration_start", "steps", len(steps))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("migration step failed",
				"event", "db_migration_failed",
				"migration_step", step.Name,
				"error", err.Error(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		log.Debug("migration step applied",
			"event", "db_migration_step",
			"migration_step", step.Name,
			"step_duration_ms", time.Since(stepStart).Milliseconds(),
		)
	}

	log.Info("schema applied",
		"event", "db_migration_success",
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
