// Package replay rebuilds application state from a recorded action stream.
package replay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/wilhg/foodadmin/pkg/action"
	"github.com/wilhg/foodadmin/pkg/journal"
	"github.com/wilhg/foodadmin/pkg/store"
)

// Capture is a recorded stream of actions.
type Capture struct {
	Stream  string          `json:"stream"`
	Actions []action.Action `json:"actions"`
}

// Export reads every action of stream from log.
func Export(ctx context.Context, log journal.ActionLog, stream string) (Capture, error) {
	recs, err := log.List(ctx, stream, 0, 0)
	if err != nil {
		return Capture{}, err
	}
	c := Capture{Stream: stream, Actions: make([]action.Action, 0, len(recs))}
	for _, rec := range recs {
		var a action.Action
		if err := json.Unmarshal(rec.Payload, &a); err != nil {
			return Capture{}, fmt.Errorf("decode action %s: %w", rec.ActionID, err)
		}
		c.Actions = append(c.Actions, a)
	}
	return c, nil
}

// Decode reads a JSON capture.
func Decode(r io.Reader) (Capture, error) {
	var c Capture
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return Capture{}, fmt.Errorf("decode capture: %w", err)
	}
	return c, nil
}

// Run dispatches the captured actions into a fresh store and returns the
// final state. Extra options (a journal, a logger) are passed to the store.
func Run(ctx context.Context, c Capture, opts ...store.Option) (*store.State, error) {
	st := store.New(opts...)
	for i, a := range c.Actions {
		if err := st.Dispatch(ctx, a); err != nil {
			return nil, fmt.Errorf("action %d (%s): %w", i, a.Type, err)
		}
	}
	return st.State(), nil
}
