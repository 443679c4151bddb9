// Package api executes remote-call descriptors against the admin REST
// backend and turns their outcome into lifecycle actions.
package api

import (
	"github.com/wilhg/foodadmin/pkg/action"
	"github.com/wilhg/foodadmin/pkg/entity"
)

// Call is a declarative description of one backend request. Action
// creators build Calls; Middleware executes them.
type Call struct {
	// Endpoint is a path relative to the configured base URL.
	Endpoint string `json:"endpoint"`
	Method   string `json:"method"`
	Body     any    `json:"body,omitempty"`

	// Schema is the primary entity the call acts on.
	Schema entity.Schema `json:"schema"`

	// ResponseSchema is the shape of the response document; it drives
	// validation and normalization.
	ResponseSchema entity.Schema `json:"responseSchema"`

	Types action.Lifecycle `json:"types"`

	// ResultIDs is used as the response result when the backend answers
	// without a document, e.g. a 204 to a DELETE.
	ResultIDs []string `json:"resultIds,omitempty"`
}
