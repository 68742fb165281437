package extract

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// SnapshotJSONSchema returns the JSON-Schema a layout snapshot file must match.
func SnapshotJSONSchema() map[string]any {
	cell := map[string]any{"type": []any{"string", "null"}}
	row := map[string]any{"type": "array", "items": cell}
	table := map[string]any{"type": "array", "items": row}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"source_file":    map[string]any{"type": "string"},
			"text":           map[string]any{"type": "string"},
			"tables":         map[string]any{"type": []any{"array", "null"}, "items": table},
			"ship_to_region": map[string]any{"type": []any{"string", "null"}},
			"attn_region":    map[string]any{"type": []any{"string", "null"}},
		},
		"required": []any{"text"},
	}
}

// CompileSchema compiles a schema map for repeated validation.
func CompileSchema(schemaMap map[string]any) (*jsonschema.Schema, error) {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

// ValidateJSON validates "data" against a compiled schema.
func ValidateJSON(schema *jsonschema.Schema, data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
