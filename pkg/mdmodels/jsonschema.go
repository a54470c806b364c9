package mdmodels

import (
	"encoding/json"
	"fmt"
)

// baseTypes maps the dialect's scalar type names onto JSON Schema types.
var baseTypes = map[string]string{
	"string":     "string",
	"str":        "string",
	"identifier": "string",
	"date":       "string",
	"datetime":   "string",
	"float":      "number",
	"number":     "number",
	"integer":    "integer",
	"int":        "integer",
	"boolean":    "boolean",
	"bool":       "boolean",
	"bytes":      "string",
}

// JSONSchema renders the named root object as a JSON Schema string. Every
// object type reachable from the root ends up under $defs and is referenced
// via "#/$defs/<Name>"; the root's own fields are inlined at the top level.
func (p *MarkdownParser) JSONSchema(content string, root string) (string, error) {
	model, err := p.Parse(content)
	if err != nil {
		return "", err
	}

	rootObj, ok := model.Object(root)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrObjectNotFound, root)
	}

	defs := map[string]any{}
	collectRefs(model, rootObj, map[string]bool{rootObj.Name: true}, defs)

	schema := objectSchema(model, rootObj)
	schema["title"] = rootObj.Name
	if len(defs) > 0 {
		schema["$defs"] = defs
	}

	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// collectRefs walks the object graph and fills defs with the schema of
// every object referenced from obj, directly or transitively. The root
// itself is never added; it is inlined by JSONSchema.
func collectRefs(model *Model, obj *Object, seen map[string]bool, defs map[string]any) {
	for _, attr := range obj.Attributes {
		ref, ok := model.Object(attr.Type)
		if !ok || seen[ref.Name] {
			continue
		}
		seen[ref.Name] = true
		defs[ref.Name] = objectSchema(model, ref)
		collectRefs(model, ref, seen, defs)
	}
}

func objectSchema(model *Model, obj *Object) map[string]any {
	properties := map[string]any{}
	required := []string{}

	for _, attr := range obj.Attributes {
		properties[attr.Name] = attributeSchema(model, attr)
		if attr.Required {
			required = append(required, attr.Name)
		}
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if obj.Description != "" {
		schema["description"] = obj.Description
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func attributeSchema(model *Model, attr Attribute) map[string]any {
	var item map[string]any
	if _, isObject := model.Object(attr.Type); isObject {
		item = map[string]any{"$ref": "#/$defs/" + attr.Type}
	} else {
		jsonType, ok := baseTypes[normalizeType(attr.Type)]
		if !ok {
			jsonType = "string"
		}
		item = map[string]any{"type": jsonType}
	}

	var schema map[string]any
	if attr.Array {
		schema = map[string]any{"type": "array", "items": item}
	} else {
		schema = item
	}
	if attr.Description != "" {
		schema["description"] = attr.Description
	}
	return schema
}

func normalizeType(t string) string {
	out := make([]rune, 0, len(t))
	for _, r := range t {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		out = append(out, r)
	}
	return string(out)
}
