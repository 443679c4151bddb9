//go:build integration

package entjournal

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/wilhg/foodadmin/pkg/journal"
)

func TestPostgresJournalFlow(t *testing.T) {
	ctx := context.Background()
	pg, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("foodadmin"),
		tcpostgres.WithUsername("foodadmin"),
		tcpostgres.WithPassword("foodadmin"),
		tcpostgres.WithSQLDriver("pgx"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Skipf("skip: cannot start postgres: %v", err)
	}
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(pg) })

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatal(err)
	}
	j, err := Open(ctx, dsn, WithMaxConns(2))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = j.Close() })
	if err := j.Migrate(ctx); err != nil {
		t.Fatal(err)
	}
	// Migrate is repeatable.
	if err := j.Migrate(ctx); err != nil {
		t.Fatal(err)
	}

	payload, _ := json.Marshal(map[string]any{"k": "v"})
	if _, err := j.Append(ctx, record("pe1", "runpg", "typ", payload)); err != nil {
		t.Fatal(err)
	}
	if _, err := j.Append(ctx, record("pe2", "runpg", "typ", nil)); err != nil {
		t.Fatal(err)
	}
	if dup, err := j.Append(ctx, record("pe1", "runpg", "typ", nil)); err != nil || dup.Seq != 1 {
		t.Fatalf("dup=%+v err=%v", dup, err)
	}

	got, err := j.List(ctx, "runpg", 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Seq != 1 || got[1].Seq != 2 {
		t.Fatalf("seq order wrong: %+v", got)
	}

	if _, err := j.SaveSnapshot(ctx, journal.SnapshotRecord{
		SnapshotID: "snp1",
		Stream:     "runpg",
		UptoSeq:    2,
		State:      payload,
		CreatedAt:  time.Now(),
	}); err != nil {
		t.Fatal(err)
	}
	sn, err := j.LoadLatestSnapshot(ctx, "runpg")
	if err != nil {
		t.Fatal(err)
	}
	if sn.UptoSeq != 2 || string(sn.State) != string(payload) {
		t.Fatalf("snapshot=%+v", sn)
	}
}
