package checkpoint

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath.
// Use ":memory:" for an in-memory database (useful in tests).
func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	// WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger.With("component", "checkpoint-store"),
	}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Migrate creates all required tables and indexes.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	s.logger.Debug("sql", "op", "migrate")
	return migrate(ctx, s.db)
}

// Save persists a checkpoint.
func (s *SQLiteStore) Save(ctx context.Context, cp *Checkpoint) error {
	s.logger.Debug("sql", "op", "insert", "table", "checkpoints", "id", cp.ID)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO checkpoints (id, run_id, label, sim_date, week, calendar, season, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		cp.ID, cp.RunID, cp.Label,
		cp.SimDate.UTC().Format(time.RFC3339),
		cp.Week,
		string(cp.Calendar), string(cp.Season),
		cp.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

// Get returns a checkpoint by id, or nil if absent.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Checkpoint, error) {
	s.logger.Debug("sql", "op", "select", "table", "checkpoints", "id", id)

	row := s.db.QueryRowContext(ctx,
		`SELECT id, run_id, label, sim_date, week, calendar, season, created_at
		 FROM checkpoints WHERE id = ?`, id)
	return scanCheckpoint(row)
}

// Latest returns the most recent checkpoint, optionally scoped to a run.
func (s *SQLiteStore) Latest(ctx context.Context, runID string) (*Checkpoint, error) {
	s.logger.Debug("sql", "op", "select-latest", "table", "checkpoints", "run_id", runID)

	query := `SELECT id, run_id, label, sim_date, week, calendar, season, created_at
		 FROM checkpoints`
	args := []any{}
	if runID != "" {
		query += ` WHERE run_id = ?`
		args = append(args, runID)
	}
	query += ` ORDER BY created_at DESC LIMIT 1`

	return scanCheckpoint(s.db.QueryRowContext(ctx, query, args...))
}

// List returns checkpoints newest first, optionally filtered by run.
func (s *SQLiteStore) List(ctx context.Context, runID string) ([]*Checkpoint, error) {
	s.logger.Debug("sql", "op", "select-list", "table", "checkpoints", "run_id", runID)

	query := `SELECT id, run_id, label, sim_date, week, calendar, season, created_at
		 FROM checkpoints`
	args := []any{}
	if runID != "" {
		query += ` WHERE run_id = ?`
		args = append(args, runID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cps []*Checkpoint
	for rows.Next() {
		cp, err := scanCheckpoint(rows)
		if err != nil {
			return nil, err
		}
		cps = append(cps, cp)
	}
	return cps, rows.Err()
}

// Delete removes a checkpoint by id.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	s.logger.Debug("sql", "op", "delete", "table", "checkpoints", "id", id)
	_, err := s.db.ExecContext(ctx, `DELETE FROM checkpoints WHERE id = ?`, id)
	return err
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCheckpoint(row scanner) (*Checkpoint, error) {
	var cp Checkpoint
	var calendarJSON, seasonJSON string
	var simDate, createdAt string

	err := row.Scan(&cp.ID, &cp.RunID, &cp.Label, &simDate, &cp.Week,
		&calendarJSON, &seasonJSON, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	cp.Calendar = []byte(calendarJSON)
	cp.Season = []byte(seasonJSON)

	if cp.SimDate, err = time.Parse(time.RFC3339, simDate); err != nil {
		return nil, fmt.Errorf("parse sim_date: %w", err)
	}
	if cp.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	return &cp, nil
}
