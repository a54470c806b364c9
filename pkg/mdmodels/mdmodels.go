// Package mdmodels parses markdown data-model definitions and converts
// them to JSON Schema. The Parser interface is the capability boundary:
// callers treat any implementation as a black box, so the built-in
// markdown dialect can be swapped for another engine without touching
// consumers.
package mdmodels

import "errors"

var (
	// ErrNotAModel is returned when a document contains no object
	// definitions and therefore is not a model.
	ErrNotAModel = errors.New("mdmodels: document defines no objects")

	// ErrObjectNotFound is returned when the requested root object is not
	// defined in the model.
	ErrObjectNotFound = errors.New("mdmodels: object not found in model")
)

// Model is a parsed data-model definition.
type Model struct {
	Name    string
	Objects []Object
}

// Object is one definable entity of the model.
type Object struct {
	Name        string
	Description string
	Attributes  []Attribute
}

// Attribute is one field of an object. Type holds the base type name with
// any array suffix already stripped; Array records whether the attribute
// was declared as a list.
type Attribute struct {
	Name        string
	Type        string
	Description string
	Required    bool
	Array       bool
}

// Parser converts model definitions. Implementations must treat content as
// untrusted input and fail rather than guess.
type Parser interface {
	// Parse extracts the model from a markdown definition.
	Parse(content string) (*Model, error)

	// JSONSchema renders the schema of the named root object, with every
	// transitively referenced object under $defs.
	JSONSchema(content string, root string) (string, error)
}

// ObjectNames returns the names of all objects in declaration order.
func (m *Model) ObjectNames() []string {
	names := make([]string, len(m.Objects))
	for i, obj := range m.Objects {
		names[i] = obj.Name
	}
	return names
}

// Object looks up an object by name.
func (m *Model) Object(name string) (*Object, bool) {
	for i := range m.Objects {
		if m.Objects[i].Name == name {
			return &m.Objects[i], true
		}
	}
	return nil, false
}
