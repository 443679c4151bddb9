package entity

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
)

var schemaDocs = map[Schema]func() ([]byte, error){
	SchemaFoodItem:       sync.OnceValues(shapeOf[wireItem]),
	SchemaFoodItems:      sync.OnceValues(shapeOf[[]wireItem]),
	SchemaFoodCategory:   sync.OnceValues(shapeOf[wireCategory]),
	SchemaFoodCategories: sync.OnceValues(shapeOf[[]wireCategory]),
}

// JSONSchema returns the JSON Schema document describing the wire shape of
// s. SchemaNone returns nil.
func (s Schema) JSONSchema() ([]byte, error) {
	if s == SchemaNone {
		return nil, nil
	}
	gen, ok := schemaDocs[s]
	if !ok {
		return nil, fmt.Errorf("jsonschema: unknown schema %q", s)
	}
	return gen()
}

// shapeOf infers a schema from T and opens every object to unknown
// properties; backends add bookkeeping fields such as __v or timestamps.
func shapeOf[T any]() ([]byte, error) {
	sch, err := jsonschema.For[T](nil)
	if err != nil {
		return nil, err
	}
	open(sch)
	return json.Marshal(sch)
}

func open(s *jsonschema.Schema) {
	if s == nil {
		return
	}
	s.AdditionalProperties = nil
	for _, p := range s.Properties {
		open(p)
	}
	open(s.Items)
}
