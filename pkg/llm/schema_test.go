package llm

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestWrapMultipleHoistsDefs(t *testing.T) {
	schema := `{
		"type": "object",
		"properties": {"a": {"type": "string"}},
		"$defs": {"Thing": {"type": "object"}}
	}`

	wrapped, err := WrapMultiple(schema)
	if err != nil {
		t.Fatalf("WrapMultiple error: %v", err)
	}

	var envelope map[string]any
	if err := json.Unmarshal(wrapped, &envelope); err != nil {
		t.Fatalf("envelope is not valid JSON: %v", err)
	}

	if envelope["type"] != "object" {
		t.Errorf("envelope type = %v, want object", envelope["type"])
	}
	if !reflect.DeepEqual(envelope["required"], []any{"items"}) {
		t.Errorf("envelope required = %v, want [items]", envelope["required"])
	}
	if envelope["additionalProperties"] != false {
		t.Errorf("envelope additionalProperties = %v, want false", envelope["additionalProperties"])
	}

	defs, ok := envelope["$defs"].(map[string]any)
	if !ok {
		t.Fatalf("envelope $defs missing: %v", envelope["$defs"])
	}
	if _, ok := defs["Thing"]; !ok {
		t.Errorf("expected Thing definition hoisted into envelope $defs")
	}

	items := envelope["properties"].(map[string]any)["items"].(map[string]any)
	if items["type"] != "array" {
		t.Errorf("items type = %v, want array", items["type"])
	}
	inner := items["items"].(map[string]any)
	if _, ok := inner["$defs"]; ok {
		t.Errorf("wrapped item schema still carries $defs, expected it hoisted")
	}
	if inner["type"] != "object" {
		t.Errorf("inner schema type = %v, want object", inner["type"])
	}
}

func TestWrapMultipleWithoutDefs(t *testing.T) {
	wrapped, err := WrapMultiple(`{"type":"object"}`)
	if err != nil {
		t.Fatalf("WrapMultiple error: %v", err)
	}

	var envelope map[string]any
	if err := json.Unmarshal(wrapped, &envelope); err != nil {
		t.Fatalf("envelope is not valid JSON: %v", err)
	}
	if _, ok := envelope["$defs"]; ok {
		t.Errorf("envelope has $defs for a schema without definitions")
	}
}

func TestWrapMultipleRejectsBadJSON(t *testing.T) {
	if _, err := WrapMultiple("{not json"); err == nil {
		t.Fatal("expected error for invalid schema JSON")
	}
}

func TestKnowledgeGraphSchemaShape(t *testing.T) {
	var schema map[string]any
	if err := json.Unmarshal(knowledgeGraphSchema(), &schema); err != nil {
		t.Fatalf("graph schema is not valid JSON: %v", err)
	}

	triplets := schema["properties"].(map[string]any)["triplets"].(map[string]any)
	item := triplets["items"].(map[string]any)
	required := item["required"].([]any)
	want := []any{"subject", "predicate", "object"}
	if !reflect.DeepEqual(required, want) {
		t.Errorf("triplet required = %v, want %v", required, want)
	}
}
