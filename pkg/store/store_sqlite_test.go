package store

import (
	"context"
	"testing"

	"github.com/wilhg/foodadmin/pkg/journal/entjournal"
)

func TestOpen_SQLiteJournal(t *testing.T) {
	ctx := context.Background()
	j, err := entjournal.Open(ctx, "sqlite:file:store-restore?mode=memory&cache=shared&_pragma=busy_timeout(5000)")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = j.Close() })
	if err := j.Migrate(ctx); err != nil {
		t.Fatal(err)
	}

	live, err := Open(ctx, WithJournal(j, "admin"), WithSnapshotEvery(4))
	if err != nil {
		t.Fatal(err)
	}
	dispatchAll(t, live, scenario())

	restored, err := Open(ctx, WithJournal(j, "admin"))
	if err != nil {
		t.Fatal(err)
	}
	assertSameState(t, live.State(), restored.State())
}
