package llm

import (
	"encoding/json"
	"fmt"
)

// WrapMultiple wraps a caller-supplied JSON Schema in the envelope schema
// used for multiple-outputs extraction: an object requiring an "items"
// array of the original schema. Shared definitions do not nest cleanly in
// JSON Schema, so a top-level "$defs" block is hoisted out of the wrapped
// item into the envelope's own "$defs".
func WrapMultiple(schema string) (json.RawMessage, error) {
	var parsed map[string]any
	if err := json.Unmarshal([]byte(schema), &parsed); err != nil {
		return nil, fmt.Errorf("parsing schema: %w", err)
	}

	defs, hasDefs := parsed["$defs"]
	delete(parsed, "$defs")

	envelope := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"items": map[string]any{
				"type":  "array",
				"items": parsed,
			},
		},
		"additionalProperties": false,
		"required":             []string{"items"},
	}
	if hasDefs {
		envelope["$defs"] = defs
	}

	return json.Marshal(envelope)
}

// knowledgeGraphSchema is the strict structured-output schema for the
// triplet graph: {"triplets": [{"subject", "predicate", "object"}]}.
func knowledgeGraphSchema() json.RawMessage {
	tripletProp := func(desc string) map[string]any {
		return map[string]any{"type": "string", "description": desc}
	}
	schema := map[string]any{
		"type":        "object",
		"description": "The knowledge graph representation of the given text.",
		"properties": map[string]any{
			"triplets": map[string]any{
				"type":        "array",
				"description": "The triplets of the graph.",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"subject":   tripletProp("The subject of the triplet."),
						"predicate": tripletProp("The predicate of the triplet."),
						"object":    tripletProp("The object of the triplet."),
					},
					"required":             []string{"subject", "predicate", "object"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []string{"triplets"},
		"additionalProperties": false,
	}

	raw, _ := json.Marshal(schema)
	return raw
}
