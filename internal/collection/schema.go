package collection

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/collection.json
var collectionSchemaJSON string

//go:embed schemas/workspace.json
var workspaceSchemaJSON string

var (
	collectionSchema = jsonschema.MustCompileString("collection.json", collectionSchemaJSON)
	workspaceSchema  = jsonschema.MustCompileString("workspace.json", workspaceSchemaJSON)
)

// validate checks data against schema before any typed decoding happens.
func validate(schema *jsonschema.Schema, data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("unexpected response shape: %w", err)
	}
	return nil
}
