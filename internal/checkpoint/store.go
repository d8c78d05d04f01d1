// Package checkpoint persists calendar and season-state snapshots between
// runs. The core never touches this store during a day's simulation; it is
// read and written only at run boundaries.
package checkpoint

import (
	"context"
	"encoding/json"
	"time"
)

// Checkpoint is one saved snapshot of a run.
type Checkpoint struct {
	ID        string          `json:"id"`
	RunID     string          `json:"run_id"`
	Label     string          `json:"label"`
	SimDate   time.Time       `json:"sim_date"`
	Week      int             `json:"week"`
	Calendar  json.RawMessage `json:"calendar"`
	Season    json.RawMessage `json:"season"`
	CreatedAt time.Time       `json:"created_at"`
}

// Store defines the checkpoint persistence layer.
type Store interface {
	// Save persists a checkpoint.
	Save(ctx context.Context, cp *Checkpoint) error

	// Get returns a checkpoint by id, or nil if absent.
	Get(ctx context.Context, id string) (*Checkpoint, error)

	// Latest returns the most recent checkpoint for a run, or nil. An empty
	// runID means the most recent checkpoint of any run.
	Latest(ctx context.Context, runID string) (*Checkpoint, error)

	// List returns checkpoints newest first, optionally filtered by run.
	List(ctx context.Context, runID string) ([]*Checkpoint, error)

	// Delete removes a checkpoint by id.
	Delete(ctx context.Context, id string) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
