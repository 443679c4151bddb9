// Package action defines the actions dispatched to the root store and the
// published set of action types that reducers of different entities share.
//
// Remote calls are modelled as a three-stage lifecycle: a request action
// when the call starts, then exactly one of a success action carrying the
// normalized response or a failure action carrying the error.
//
// Example:
//
//	switch a.Type {
//	case action.FoodItem.SaveRequest:
//		// mark in flight
//	case action.FoodCategory.LoadAllSuccess:
//		// rebuild from a.Response.Entities
//	}
package action

import (
	"time"

	"github.com/wilhg/foodadmin/pkg/entity"
	"github.com/wilhg/foodadmin/pkg/errmodel"
)

// Type identifies an action. Values are "<entity>/<STAGE>".
type Type string

// Action is a single, immutable state transition request.
type Action struct {
	// ID is unique per dispatched action; the store assigns one if empty.
	ID string `json:"id"`

	Type Type `json:"type"`

	Timestamp time.Time `json:"timestamp"`

	// Response is set on success actions of remote calls.
	Response *Response `json:"response,omitempty"`

	// Error is set on failure actions of remote calls.
	Error *errmodel.Error `json:"error,omitempty"`
}

// Response is a normalized remote-call response. Result holds the ids of
// the top-level records of the document in order.
type Response struct {
	Entities entity.Entities `json:"entities"`
	Result   []string        `json:"result"`
}

// FoodItemIDs returns the food item ids carried by the response, or an
// empty slice when there is no response.
func (a Action) FoodItemIDs() []string {
	if a.Response == nil {
		return []string{}
	}
	return a.Response.Entities.FoodItemIDs()
}

// ResultIDs returns the top-level ids of the response, never nil.
func (a Action) ResultIDs() []string {
	if a.Response == nil || a.Response.Result == nil {
		return []string{}
	}
	out := make([]string, len(a.Response.Result))
	copy(out, a.Response.Result)
	return out
}
