// Package metrics exports Prometheus metrics for the state container and
// the remote calls that feed it.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wilhg/foodadmin/pkg/action"
	"github.com/wilhg/foodadmin/pkg/api"
	"github.com/wilhg/foodadmin/pkg/errmodel"
	"github.com/wilhg/foodadmin/pkg/store"
)

const namespace = "foodadmin"

// Metrics owns a private registry so tests can create as many as they like.
type Metrics struct {
	registry     *prometheus.Registry
	stateChanges *prometheus.CounterVec
	calls        *prometheus.HistogramVec
	foodItems    prometheus.Gauge
	categories   prometheus.Gauge
}

// New registers every collector on a fresh registry, plus the Go and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		stateChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_changes_total",
			Help:      "Dispatched actions that changed the state, by action type.",
		}, []string{"type"}),
		calls: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "remote_call_duration_seconds",
			Help:      "Backend call latency by method and outcome category.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "outcome"}),
		foodItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "food_items",
			Help:      "Food item ids in the index.",
		}),
		categories: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "food_categories",
			Help:      "Food category ids in the index.",
		}),
	}
	m.registry.MustRegister(
		m.stateChanges, m.calls, m.foodItems, m.categories,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Observe is a store.Listener.
func (m *Metrics) Observe(next *store.State, a action.Action) {
	m.stateChanges.WithLabelValues(string(a.Type)).Inc()
	if next == nil {
		return
	}
	if next.FoodItems != nil {
		m.foodItems.Set(float64(len(next.FoodItems.IDs)))
	}
	if next.FoodCategories != nil {
		m.categories.Set(float64(len(next.FoodCategories.IDs)))
	}
}

// Instrument wraps exec so every call is timed.
func (m *Metrics) Instrument(exec api.Executor) api.Executor {
	return timedExecutor{next: exec, calls: m.calls}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

type timedExecutor struct {
	next  api.Executor
	calls *prometheus.HistogramVec
}

func (t timedExecutor) Do(ctx context.Context, call api.Call) (*action.Response, error) {
	start := time.Now()
	resp, err := t.next.Do(ctx, call)
	outcome := "ok"
	if err != nil {
		outcome = errmodel.From(err).Category
	}
	t.calls.WithLabelValues(call.Method, outcome).Observe(time.Since(start).Seconds())
	return resp, err
}
