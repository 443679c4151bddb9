// Package memjournal is an in-memory journal.Journal intended for tests and
// single-process use.
package memjournal

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/wilhg/foodadmin/pkg/journal"
)

// Journal keeps every stream in memory.
type Journal struct {
	mu        sync.RWMutex
	byStream  map[string][]journal.ActionRecord
	byID      map[string]journal.ActionRecord
	snapshots map[string][]journal.SnapshotRecord
}

// New creates an empty journal.
func New() *Journal {
	return &Journal{
		byStream:  make(map[string][]journal.ActionRecord),
		byID:      make(map[string]journal.ActionRecord),
		snapshots: make(map[string][]journal.SnapshotRecord),
	}
}

func (j *Journal) Append(_ context.Context, r journal.ActionRecord) (journal.ActionRecord, error) {
	if r.ActionID == "" || r.Stream == "" {
		return journal.ActionRecord{}, errors.New("memjournal: action id and stream are required")
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if existing, ok := j.byID[r.ActionID]; ok {
		return existing, nil
	}
	r.Seq = int64(len(j.byStream[r.Stream])) + 1
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	j.byStream[r.Stream] = append(j.byStream[r.Stream], r)
	j.byID[r.ActionID] = r
	return r, nil
}

func (j *Journal) List(_ context.Context, stream string, afterSeq int64, limit int) ([]journal.ActionRecord, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	var out []journal.ActionRecord
	for _, r := range j.byStream[stream] {
		if r.Seq <= afterSeq {
			continue
		}
		out = append(out, r)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (j *Journal) LastSeq(_ context.Context, stream string) (int64, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return int64(len(j.byStream[stream])), nil
}

func (j *Journal) GetByID(_ context.Context, actionID string) (journal.ActionRecord, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	r, ok := j.byID[actionID]
	if !ok {
		return journal.ActionRecord{}, journal.ErrNotFound
	}
	return r, nil
}

func (j *Journal) SaveSnapshot(_ context.Context, s journal.SnapshotRecord) (journal.SnapshotRecord, error) {
	if s.SnapshotID == "" || s.Stream == "" {
		return journal.SnapshotRecord{}, errors.New("memjournal: snapshot id and stream are required")
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, existing := range j.snapshots[s.Stream] {
		if existing.SnapshotID == s.SnapshotID || existing.UptoSeq == s.UptoSeq {
			return journal.SnapshotRecord{}, errors.New("memjournal: duplicate snapshot")
		}
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	j.snapshots[s.Stream] = append(j.snapshots[s.Stream], s)
	return s, nil
}

func (j *Journal) LoadLatestSnapshot(_ context.Context, stream string) (journal.SnapshotRecord, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	var (
		latest journal.SnapshotRecord
		found  bool
	)
	for _, s := range j.snapshots[stream] {
		if !found || s.UptoSeq > latest.UptoSeq {
			latest, found = s, true
		}
	}
	if !found {
		return journal.SnapshotRecord{}, journal.ErrNotFound
	}
	return latest, nil
}

func (j *Journal) Close() error { return nil }
