// Package store is the application's state container. It owns the root
// State, serializes dispatch, and optionally records every action to a
// journal so the state can be rebuilt after a restart.
//
// Example usage:
//
//	st, err := store.Open(ctx, store.WithJournal(j, "admin"), store.WithSnapshotEvery(50))
//	if err != nil {
//		return err
//	}
//	mw := api.NewMiddleware(client, logger)
//	res, err := mw.Run(ctx, st, fooditem.SaveFoodItem(categoryID, item))
//	items := fooditem.GetAll(st.State().FoodItems, st.State().Entities)
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/wilhg/foodadmin/pkg/action"
	"github.com/wilhg/foodadmin/pkg/errmodel"
	"github.com/wilhg/foodadmin/pkg/journal"
)

// Listener is notified after each state change.
type Listener func(next *State, a action.Action)

// Store holds the current State and applies actions one at a time.
type Store struct {
	mu    sync.Mutex
	state *State
	seq   int64

	journal       journal.Journal
	stream        string
	snapshotEvery int

	listeners map[int]Listener
	nextSub   int

	logger *slog.Logger
	now    func() time.Time
}

// Option configures the Store at construction time.
type Option func(*Store)

// WithJournal records every dispatched action to j under stream.
func WithJournal(j journal.Journal, stream string) Option {
	return func(s *Store) {
		if j != nil && stream != "" {
			s.journal = j
			s.stream = stream
		}
	}
}

// WithSnapshotEvery saves a state snapshot every n journaled actions.
// If n <= 0, snapshotting is disabled.
func WithSnapshotEvery(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.snapshotEvery = n
		}
	}
}

// WithLogger sets the logger; the default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithState starts from st instead of InitialState().
func WithState(st *State) Option {
	return func(s *Store) {
		if st != nil {
			s.state = st
		}
	}
}

// New constructs a Store without touching the journal. Use Open to restore
// journaled state.
func New(opts ...Option) *Store {
	s := &Store{
		state:     InitialState(),
		listeners: make(map[int]Listener),
		logger:    slog.Default(),
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open constructs a Store and, when a journal is configured, rebuilds the
// state from the latest snapshot plus the actions recorded after it.
func Open(ctx context.Context, opts ...Option) (*Store, error) {
	s := New(opts...)
	if s.journal == nil {
		return s, nil
	}
	st, seq, err := s.replay(ctx)
	if err != nil {
		return nil, fmt.Errorf("restore state: %w", err)
	}
	s.state, s.seq = st, seq
	s.logger.InfoContext(ctx, "state restored", "stream", s.stream, "seq", seq)
	return s, nil
}

// State returns the current state. The returned value must be treated as
// read-only; it is never modified after being published.
func (s *Store) State() *State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = l
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Dispatch applies a to the state. The action is journaled before the new
// state is published; if journaling fails the state is left unchanged.
// Re-dispatching an already journaled action id is a no-op.
func (s *Store) Dispatch(ctx context.Context, a action.Action) error {
	tr := otel.Tracer("store")
	ctx, span := tr.Start(ctx, "Store.Dispatch", trace.WithAttributes(
		attribute.String("action.type", string(a.Type)),
	))
	defer span.End()

	if a.Type == "" {
		return errmodel.Validation("missing_type", "action type is required", nil)
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Timestamp.IsZero() {
		a.Timestamp = s.now()
	}
	span.SetAttributes(attribute.String("action.id", a.ID))

	s.mu.Lock()
	if s.journal != nil {
		if _, err := s.journal.GetByID(ctx, a.ID); err == nil {
			s.mu.Unlock()
			s.logger.DebugContext(ctx, "duplicate action ignored", "id", a.ID, "type", a.Type)
			return nil
		} else if !errors.Is(err, journal.ErrNotFound) {
			s.mu.Unlock()
			span.RecordError(err)
			return err
		}
	}

	next := Reduce(s.state, a)

	if s.journal != nil {
		if err := s.record(ctx, a, next); err != nil {
			s.mu.Unlock()
			span.RecordError(err)
			return err
		}
	}
	changed := next != s.state
	s.state = next
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "action dispatched", "id", a.ID, "type", a.Type, "changed", changed)
	if changed {
		for _, l := range listeners {
			l(next, a)
		}
	}
	return nil
}

// record appends a to the journal and snapshots when due. Callers hold mu.
func (s *Store) record(ctx context.Context, a action.Action, next *State) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode action: %w", err)
	}
	rec, err := s.journal.Append(ctx, journal.ActionRecord{
		ActionID:  a.ID,
		Stream:    s.stream,
		Type:      string(a.Type),
		Payload:   payload,
		CreatedAt: a.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("journal action: %w", err)
	}
	s.seq = rec.Seq

	if s.snapshotEvery > 0 && s.seq%int64(s.snapshotEvery) == 0 {
		if err := s.saveSnapshot(ctx, s.seq, next); err != nil {
			// The action is already durable; a missed snapshot only costs replay time.
			s.logger.WarnContext(ctx, "snapshot failed", "stream", s.stream, "seq", s.seq, "error", err)
		}
	}
	return nil
}

func (s *Store) saveSnapshot(ctx context.Context, upto int64, st *State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	_, err = s.journal.SaveSnapshot(ctx, journal.SnapshotRecord{
		SnapshotID: fmt.Sprintf("snap-%s-%d", s.stream, upto),
		Stream:     s.stream,
		UptoSeq:    upto,
		State:      data,
		CreatedAt:  s.now(),
	})
	return err
}

func (s *Store) replay(ctx context.Context) (*State, int64, error) {
	base := s.state
	var upto int64
	sn, err := s.journal.LoadLatestSnapshot(ctx, s.stream)
	switch {
	case err == nil && len(sn.State) > 0:
		decoded := InitialState()
		if derr := json.Unmarshal(sn.State, decoded); derr != nil {
			s.logger.WarnContext(ctx, "ignoring unreadable snapshot", "snapshot", sn.SnapshotID, "error", derr)
		} else {
			base, upto = decoded, sn.UptoSeq
		}
	case err != nil && !errors.Is(err, journal.ErrNotFound):
		return nil, 0, err
	}

	recs, err := s.journal.List(ctx, s.stream, upto, 0)
	if err != nil {
		return nil, 0, err
	}
	current, last := base, upto
	for _, rec := range recs {
		var a action.Action
		if err := json.Unmarshal(rec.Payload, &a); err != nil {
			return nil, 0, fmt.Errorf("decode action %s: %w", rec.ActionID, err)
		}
		current = Reduce(current, a)
		last = rec.Seq
	}
	return current, last, nil
}
