// Package journal defines the append-only action log and state snapshots
// the root store can record to. Implementations must provide identical
// semantics across backends so that replay is portable.
package journal

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("journal: not found")

// ActionRecord is the persisted representation of a dispatched action.
// Payload holds the action as JSON.
type ActionRecord struct {
	ActionID  string
	Stream    string
	Seq       int64
	Type      string
	Payload   json.RawMessage
	CreatedAt time.Time
}

// SnapshotRecord stores a materialized state up to a given sequence.
type SnapshotRecord struct {
	SnapshotID string
	Stream     string
	UptoSeq    int64
	State      json.RawMessage
	CreatedAt  time.Time
}

// ActionLog appends and lists actions per stream.
type ActionLog interface {
	// Append assigns the next sequence of the stream. Appending an
	// ActionID that already exists returns the stored record.
	Append(ctx context.Context, r ActionRecord) (ActionRecord, error)
	List(ctx context.Context, stream string, afterSeq int64, limit int) ([]ActionRecord, error)
	LastSeq(ctx context.Context, stream string) (int64, error)
	GetByID(ctx context.Context, actionID string) (ActionRecord, error)
}

// SnapshotStore defines operations for reading/writing snapshots.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, s SnapshotRecord) (SnapshotRecord, error)
	LoadLatestSnapshot(ctx context.Context, stream string) (SnapshotRecord, error)
}

// Journal aggregates the action log and snapshot store.
type Journal interface {
	ActionLog
	SnapshotStore
	Close() error
}
