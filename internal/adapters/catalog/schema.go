package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed catalog.schema.json
var schemaJSON string

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func documentSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = jsonschema.CompileString("catalog.schema.json", schemaJSON)
	})
	return compiledSchema, schemaErr
}

// ValidateSchema checks a decoded document (any YAML or JSON value) against the catalog schema
func ValidateSchema(document interface{}) error {
	schema, err := documentSchema()
	if err != nil {
		return fmt.Errorf("failed to compile catalog schema: %w", err)
	}

	// The validator only understands JSON value types; YAML decodes ints and typed maps
	normalized, err := normalizeJSON(document)
	if err != nil {
		return err
	}

	if err := schema.Validate(normalized); err != nil {
		return &ErrInvalidCatalog{Reason: err.Error()}
	}
	return nil
}

func normalizeJSON(document interface{}) (interface{}, error) {
	raw, err := json.Marshal(document)
	if err != nil {
		return nil, fmt.Errorf("failed to encode catalog document: %w", err)
	}

	var normalized interface{}
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return nil, fmt.Errorf("failed to decode catalog document: %w", err)
	}
	return normalized, nil
}
