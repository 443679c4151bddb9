package api

import (
	"encoding/json"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"
)

// ValidateFunc validates data against a JSON schema (bytes) and returns error on failure.
type ValidateFunc func(schema []byte, data any) error

var compiled sync.Map // schema text -> *jsonschema.Schema

// JSONSchemaValidator is a ValidateFunc using jsonschema/v6. Compiled
// schemas are cached by their text.
func JSONSchemaValidator(schema []byte, data any) error {
	if len(schema) == 0 {
		return nil
	}
	sch, err := compile(schema)
	if err != nil {
		return err
	}
	return sch.Validate(data)
}

func compile(schema []byte) (*jsonschema.Schema, error) {
	key := string(schema)
	if v, ok := compiled.Load(key); ok {
		return v.(*jsonschema.Schema), nil
	}
	var doc any
	if err := json.Unmarshal(schema, &doc); err != nil {
		return nil, err
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("mem://response.json", doc); err != nil {
		return nil, err
	}
	sch, err := c.Compile("mem://response.json")
	if err != nil {
		return nil, err
	}
	compiled.Store(key, sch)
	return sch, nil
}
