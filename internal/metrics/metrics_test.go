package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/wilhg/foodadmin/pkg/action"
	"github.com/wilhg/foodadmin/pkg/api"
	"github.com/wilhg/foodadmin/pkg/entity"
	"github.com/wilhg/foodadmin/pkg/errmodel"
	"github.com/wilhg/foodadmin/pkg/store"
)

type execFunc func(context.Context, api.Call) (*action.Response, error)

func (f execFunc) Do(ctx context.Context, c api.Call) (*action.Response, error) { return f(ctx, c) }

func TestObserveCountsStateChanges(t *testing.T) {
	m := New()
	st := store.New()
	cancel := st.Subscribe(m.Observe)
	defer cancel()

	var ents entity.Entities
	ents.FoodItems.Put("a", entity.FoodItem{ID: "a", CategoryID: "c1", Name: "a"})
	ents.FoodCategories.Put("c1", entity.FoodCategory{ID: "c1", Name: "c1", Items: []string{"a"}})
	for _, a := range []action.Action{
		{Type: action.FoodItem.SaveRequest},
		{Type: action.FoodItem.SaveSuccess, Response: &action.Response{Entities: ents, Result: []string{"c1"}}},
		{Type: "unrelated/THING"},
	} {
		if err := st.Dispatch(context.Background(), a); err != nil {
			t.Fatal(err)
		}
	}
	if got := testutil.ToFloat64(m.stateChanges.WithLabelValues(string(action.FoodItem.SaveRequest))); got != 1 {
		t.Fatalf("save requests=%v", got)
	}
	if got := testutil.ToFloat64(m.stateChanges.WithLabelValues("unrelated/THING")); got != 0 {
		t.Fatalf("unchanged dispatch counted: %v", got)
	}
	if got := testutil.ToFloat64(m.foodItems); got != 1 {
		t.Fatalf("food_items=%v", got)
	}
	if got := testutil.ToFloat64(m.categories); got != 1 {
		t.Fatalf("food_categories=%v", got)
	}
}

func TestInstrumentRecordsOutcome(t *testing.T) {
	m := New()
	ok := m.Instrument(execFunc(func(context.Context, api.Call) (*action.Response, error) {
		return &action.Response{}, nil
	}))
	bad := m.Instrument(execFunc(func(context.Context, api.Call) (*action.Response, error) {
		return nil, errmodel.Network("request_failed", "down", nil, nil)
	}))
	_, _ = ok.Do(context.Background(), api.Call{Method: http.MethodGet})
	_, _ = bad.Do(context.Background(), api.Call{Method: http.MethodPost})

	if n := testutil.CollectAndCount(m.calls); n != 2 {
		t.Fatalf("series=%d want 2", n)
	}

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()
	res, err := http.Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	for _, want := range []string{
		`foodadmin_remote_call_duration_seconds_count{method="GET",outcome="ok"} 1`,
		`foodadmin_remote_call_duration_seconds_count{method="POST",outcome="network"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("missing %q in exposition", want)
		}
	}
}
