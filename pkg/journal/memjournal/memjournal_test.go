package memjournal

import (
	"context"
	"errors"
	"testing"

	"github.com/wilhg/foodadmin/pkg/journal"
)

func TestAppendListAndDedupe(t *testing.T) {
	ctx := context.Background()
	j := New()

	a1, err := j.Append(ctx, journal.ActionRecord{ActionID: "a1", Stream: "s", Type: "foodItem/SAVE_REQUEST"})
	if err != nil {
		t.Fatal(err)
	}
	a2, _ := j.Append(ctx, journal.ActionRecord{ActionID: "a2", Stream: "s", Type: "foodItem/SAVE_SUCCESS"})
	if a1.Seq != 1 || a2.Seq != 2 {
		t.Fatalf("seq=%d,%d", a1.Seq, a2.Seq)
	}
	dup, _ := j.Append(ctx, journal.ActionRecord{ActionID: "a1", Stream: "s", Type: "other"})
	if dup.Seq != 1 || dup.Type != "foodItem/SAVE_REQUEST" {
		t.Fatalf("duplicate append returned %+v", dup)
	}
	if last, _ := j.LastSeq(ctx, "s"); last != 2 {
		t.Fatalf("last=%d", last)
	}
	after, _ := j.List(ctx, "s", 1, 0)
	if len(after) != 1 || after[0].ActionID != "a2" {
		t.Fatalf("after=%+v", after)
	}
	if _, err := j.GetByID(ctx, "nope"); !errors.Is(err, journal.ErrNotFound) {
		t.Fatalf("err=%v", err)
	}
	if _, err := j.Append(ctx, journal.ActionRecord{Stream: "s"}); err == nil {
		t.Fatal("missing id should fail")
	}
}

func TestSnapshots(t *testing.T) {
	ctx := context.Background()
	j := New()
	if _, err := j.LoadLatestSnapshot(ctx, "s"); !errors.Is(err, journal.ErrNotFound) {
		t.Fatalf("err=%v", err)
	}
	for _, n := range []int64{2, 6, 4} {
		if _, err := j.SaveSnapshot(ctx, journal.SnapshotRecord{SnapshotID: "snap-" + string(rune('0'+n)), Stream: "s", UptoSeq: n}); err != nil {
			t.Fatal(err)
		}
	}
	latest, err := j.LoadLatestSnapshot(ctx, "s")
	if err != nil || latest.UptoSeq != 6 {
		t.Fatalf("latest=%+v err=%v", latest, err)
	}
	if _, err := j.SaveSnapshot(ctx, journal.SnapshotRecord{SnapshotID: "other", Stream: "s", UptoSeq: 6}); err == nil {
		t.Fatal("duplicate upto_seq should fail")
	}
}
