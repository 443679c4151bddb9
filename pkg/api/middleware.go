package api

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wilhg/foodadmin/pkg/action"
	"github.com/wilhg/foodadmin/pkg/errmodel"
)

// Dispatcher accepts lifecycle actions. *store.Store implements it.
type Dispatcher interface {
	Dispatch(ctx context.Context, a action.Action) error
}

// Executor performs a Call. *Client implements it.
type Executor interface {
	Do(ctx context.Context, call Call) (*action.Response, error)
}

// Result is the outcome of one remote call: either a normalized response
// or the error the failure action carried.
type Result struct {
	Response *action.Response
	Err      *errmodel.Error
}

// OK reports whether the call succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Middleware runs Calls and dispatches their request, success and failure
// actions around the executor.
type Middleware struct {
	exec   Executor
	logger *slog.Logger
	now    func() time.Time
}

// NewMiddleware constructs a Middleware. A nil logger uses slog.Default.
func NewMiddleware(exec Executor, logger *slog.Logger) *Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &Middleware{exec: exec, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// Run dispatches call.Types.Request, executes call, then dispatches
// call.Types.Success with the response or call.Types.Failure with the
// error. The returned error is non-nil only when dispatching itself fails;
// remote failures are reported through Result.
func (m *Middleware) Run(ctx context.Context, d Dispatcher, call Call) (Result, error) {
	tr := otel.Tracer("api/middleware")
	ctx, span := tr.Start(ctx, "Middleware.Run", trace.WithAttributes(
		attribute.String("call.endpoint", call.Endpoint),
		attribute.String("call.method", call.Method),
		attribute.String("call.request_type", string(call.Types.Request)),
	))
	defer span.End()

	if err := d.Dispatch(ctx, action.Action{Type: call.Types.Request, Timestamp: m.now()}); err != nil {
		span.RecordError(err)
		return Result{}, err
	}

	start := time.Now()
	resp, err := m.exec.Do(ctx, call)
	if err != nil {
		ce := errmodel.From(err)
		span.RecordError(ce)
		span.SetStatus(codes.Error, ce.Code)
		m.logger.WarnContext(ctx, "remote call failed",
			"method", call.Method, "endpoint", call.Endpoint,
			"category", ce.Category, "code", ce.Code, "error", ce.Message,
			"duration", time.Since(start))
		if derr := d.Dispatch(ctx, action.Action{Type: call.Types.Failure, Timestamp: m.now(), Error: ce}); derr != nil {
			span.RecordError(derr)
			return Result{Err: ce}, derr
		}
		return Result{Err: ce}, nil
	}

	if resp == nil {
		resp = &action.Response{}
	}
	m.logger.DebugContext(ctx, "remote call succeeded",
		"method", call.Method, "endpoint", call.Endpoint,
		"result", len(resp.Result), "duration", time.Since(start))
	if err := d.Dispatch(ctx, action.Action{Type: call.Types.Success, Timestamp: m.now(), Response: resp}); err != nil {
		span.RecordError(err)
		return Result{Response: resp}, err
	}
	return Result{Response: resp}, nil
}
