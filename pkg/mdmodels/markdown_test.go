package mdmodels

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

const sampleModel = `---
id-field: true
---

# Catalysis

Some introduction prose.

### Experiment

An experiment groups measurements.

- __name__
  - Type: string
  - Description: Human readable name.
- temperature
  - Type: float
  - Description: Temperature in kelvin.
- measurements
  - Type: Measurement[]
  - Description: Recorded measurements.

### Measurement

- value
  - Type: float
- unit
  - Type: string
`

func TestParseModel(t *testing.T) {
	p := NewMarkdownParser()
	model, err := p.Parse(sampleModel)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if model.Name != "Catalysis" {
		t.Errorf("model name = %q, want Catalysis", model.Name)
	}
	if got := model.ObjectNames(); !reflect.DeepEqual(got, []string{"Experiment", "Measurement"}) {
		t.Fatalf("objects = %v, want [Experiment Measurement]", got)
	}

	exp, _ := model.Object("Experiment")
	if exp.Description != "An experiment groups measurements." {
		t.Errorf("description = %q", exp.Description)
	}
	if len(exp.Attributes) != 3 {
		t.Fatalf("attributes = %d, want 3", len(exp.Attributes))
	}

	name := exp.Attributes[0]
	if name.Name != "name" || !name.Required || name.Type != "string" {
		t.Errorf("name attribute = %+v, want required string 'name'", name)
	}
	meas := exp.Attributes[2]
	if meas.Type != "Measurement" || !meas.Array {
		t.Errorf("measurements attribute = %+v, want Measurement array", meas)
	}
}

func TestParseRejectsPlainMarkdown(t *testing.T) {
	p := NewMarkdownParser()
	_, err := p.Parse("# Readme\n\nJust some documentation, no objects here.\n")
	if !errors.Is(err, ErrNotAModel) {
		t.Fatalf("error = %v, want ErrNotAModel", err)
	}
}

func TestJSONSchema(t *testing.T) {
	p := NewMarkdownParser()
	out, err := p.JSONSchema(sampleModel, "Experiment")
	if err != nil {
		t.Fatalf("JSONSchema error: %v", err)
	}

	var schema map[string]any
	if err := json.Unmarshal([]byte(out), &schema); err != nil {
		t.Fatalf("schema is not valid JSON: %v", err)
	}

	if schema["title"] != "Experiment" {
		t.Errorf("title = %v, want Experiment", schema["title"])
	}
	if !reflect.DeepEqual(schema["required"], []any{"name"}) {
		t.Errorf("required = %v, want [name]", schema["required"])
	}

	props := schema["properties"].(map[string]any)
	temp := props["temperature"].(map[string]any)
	if temp["type"] != "number" {
		t.Errorf("temperature type = %v, want number", temp["type"])
	}

	list := props["measurements"].(map[string]any)
	if list["type"] != "array" {
		t.Fatalf("measurements type = %v, want array", list["type"])
	}
	if ref := list["items"].(map[string]any)["$ref"]; ref != "#/$defs/Measurement" {
		t.Errorf("items $ref = %v, want #/$defs/Measurement", ref)
	}

	defs := schema["$defs"].(map[string]any)
	if _, ok := defs["Measurement"]; !ok {
		t.Errorf("Measurement missing from $defs: %v", defs)
	}
}

func TestJSONSchemaUnknownRoot(t *testing.T) {
	p := NewMarkdownParser()
	_, err := p.JSONSchema(sampleModel, "Nope")
	if !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("error = %v, want ErrObjectNotFound", err)
	}
}
