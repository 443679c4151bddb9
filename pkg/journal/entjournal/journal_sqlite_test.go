package entjournal

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/wilhg/foodadmin/pkg/journal"
)

func openSQLite(t *testing.T, name string) *Journal {
	t.Helper()
	ctx := context.Background()
	j, err := Open(ctx, "sqlite:file:"+name+"?mode=memory&cache=shared&_pragma=busy_timeout(5000)")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = j.Close() })
	if err := j.Migrate(ctx); err != nil {
		t.Fatal(err)
	}
	return j
}

func record(id, stream, typ string, payload json.RawMessage) journal.ActionRecord {
	return journal.ActionRecord{ActionID: id, Stream: stream, Type: typ, Payload: payload}
}

func TestSQLiteAppendAndList(t *testing.T) {
	ctx := context.Background()
	j := openSQLite(t, "journal-append")

	payload, _ := json.Marshal(map[string]any{"type": "foodItem/SAVE_REQUEST"})
	a1, err := j.Append(ctx, record("a1", "admin", "foodItem/SAVE_REQUEST", payload))
	if err != nil {
		t.Fatal(err)
	}
	if a1.Seq != 1 {
		t.Fatalf("seq=%d want 1", a1.Seq)
	}
	a2, err := j.Append(ctx, record("a2", "admin", "foodItem/SAVE_SUCCESS", nil))
	if err != nil {
		t.Fatal(err)
	}
	if a2.Seq != 2 {
		t.Fatalf("seq=%d want 2", a2.Seq)
	}
	other, err := j.Append(ctx, record("b1", "other", "x", nil))
	if err != nil {
		t.Fatal(err)
	}
	if other.Seq != 1 {
		t.Fatalf("streams must sequence independently, seq=%d", other.Seq)
	}

	all, err := j.List(ctx, "admin", 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].ActionID != "a1" || all[1].ActionID != "a2" {
		t.Fatalf("list=%+v", all)
	}
	if string(all[0].Payload) != string(payload) {
		t.Fatalf("payload=%s", all[0].Payload)
	}
	after, _ := j.List(ctx, "admin", 1, 0)
	if len(after) != 1 || after[0].Seq != 2 {
		t.Fatalf("after=%+v", after)
	}
	if last, _ := j.LastSeq(ctx, "admin"); last != 2 {
		t.Fatalf("last=%d", last)
	}
	if last, _ := j.LastSeq(ctx, "empty"); last != 0 {
		t.Fatalf("empty stream last=%d", last)
	}
}

func TestSQLiteMigrateIsRepeatable(t *testing.T) {
	ctx := context.Background()
	j := openSQLite(t, "journal-migrate")
	if _, err := j.Append(ctx, record("a1", "admin", "t", nil)); err != nil {
		t.Fatal(err)
	}
	if err := j.Migrate(ctx); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	if last, err := j.LastSeq(ctx, "admin"); err != nil || last != 1 {
		t.Fatalf("last=%d err=%v", last, err)
	}
}

func TestSQLiteAppendIsIdempotent(t *testing.T) {
	ctx := context.Background()
	j := openSQLite(t, "journal-idem")
	if _, err := j.Append(ctx, record("a1", "admin", "t", nil)); err != nil {
		t.Fatal(err)
	}
	dup, err := j.Append(ctx, record("a1", "admin", "t", nil))
	if err != nil {
		t.Fatal(err)
	}
	if dup.Seq != 1 {
		t.Fatalf("duplicate seq=%d", dup.Seq)
	}
	if last, _ := j.LastSeq(ctx, "admin"); last != 1 {
		t.Fatalf("last=%d want 1", last)
	}
	if _, err := j.GetByID(ctx, "missing"); !errors.Is(err, journal.ErrNotFound) {
		t.Fatalf("err=%v", err)
	}
}

func TestSQLiteSnapshots(t *testing.T) {
	ctx := context.Background()
	j := openSQLite(t, "journal-snap")
	if _, err := j.LoadLatestSnapshot(ctx, "admin"); !errors.Is(err, journal.ErrNotFound) {
		t.Fatalf("err=%v", err)
	}
	for _, sn := range []journal.SnapshotRecord{
		{SnapshotID: "s2", Stream: "admin", UptoSeq: 2, State: json.RawMessage(`{"n":2}`)},
		{SnapshotID: "s4", Stream: "admin", UptoSeq: 4, State: json.RawMessage(`{"n":4}`)},
	} {
		if _, err := j.SaveSnapshot(ctx, sn); err != nil {
			t.Fatal(err)
		}
	}
	latest, err := j.LoadLatestSnapshot(ctx, "admin")
	if err != nil {
		t.Fatal(err)
	}
	if latest.UptoSeq != 4 || string(latest.State) != `{"n":4}` {
		t.Fatalf("latest=%+v", latest)
	}
}

func TestParseDSN(t *testing.T) {
	cases := []struct {
		in, drv, dia string
		ok           bool
	}{
		{"sqlite:file:x.db", "sqlite3", "sqlite3", true},
		{"postgres://u:p@h/db", "pgx", "postgres", true},
		{"host=h user=u dbname=d", "pgx", "postgres", true},
		{"mysql://u@h/db", "", "", false},
		{"nonsense", "", "", false},
	}
	for _, tc := range cases {
		drv, _, dia, err := parseDSN(tc.in)
		if (err == nil) != tc.ok || drv != tc.drv || dia != tc.dia {
			t.Fatalf("%q: drv=%q dia=%q err=%v", tc.in, drv, dia, err)
		}
	}
}
