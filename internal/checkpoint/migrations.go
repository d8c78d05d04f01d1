package checkpoint

import (
	"context"
	"database/sql"
)

// schema contains the DDL for the checkpoint store. Each statement uses
// IF NOT EXISTS for idempotency.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS checkpoints (
		id         TEXT PRIMARY KEY,
		run_id     TEXT NOT NULL,
		label      TEXT NOT NULL DEFAULT '',
		sim_date   TEXT NOT NULL,
		week       INTEGER NOT NULL DEFAULT 0,
		calendar   TEXT NOT NULL,
		season     TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_checkpoints_run_id ON checkpoints(run_id)`,
	`CREATE INDEX IF NOT EXISTS idx_checkpoints_created_at ON checkpoints(created_at)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
