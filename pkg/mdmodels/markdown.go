package mdmodels

import (
	"bufio"
	"strings"
)

// MarkdownParser implements Parser for the markdown model dialect used by
// the model repositories this tool points at:
//
//	### ObjectName
//
//	Free-text object description.
//
//	- attribute_name
//	  - Type: string
//	  - Description: what the field holds
//	- __required_attribute__
//	  - Type: Identifier[]
//
// Objects are H3 headings, attributes are top-level list items, attribute
// properties are indented list items. Double underscores mark a required
// attribute; a [] suffix on the type marks a list.
type MarkdownParser struct{}

// NewMarkdownParser returns the built-in markdown implementation.
func NewMarkdownParser() *MarkdownParser {
	return &MarkdownParser{}
}

var _ Parser = (*MarkdownParser)(nil)

// Parse extracts objects and attributes. A document without at least one
// object carrying at least one typed attribute is rejected with ErrNotAModel,
// which is what lets repository browsing filter arbitrary markdown silently.
func (p *MarkdownParser) Parse(content string) (*Model, error) {
	model := &Model{}

	var current *Object
	var currentAttr *Attribute
	inFrontmatter := false
	firstLine := true

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		raw := scanner.Text()
		line := strings.TrimRight(raw, " \t")
		trimmed := strings.TrimSpace(line)

		if firstLine {
			firstLine = false
			if trimmed == "---" {
				inFrontmatter = true
				continue
			}
		}
		if inFrontmatter {
			if trimmed == "---" {
				inFrontmatter = false
			}
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "# ") && model.Name == "":
			model.Name = strings.TrimSpace(strings.TrimPrefix(trimmed, "# "))

		case strings.HasPrefix(trimmed, "### "):
			name := strings.TrimSpace(strings.TrimPrefix(trimmed, "### "))
			name = stripSuffixAnnotation(name)
			model.Objects = append(model.Objects, Object{Name: name})
			current = &model.Objects[len(model.Objects)-1]
			currentAttr = nil

		case strings.HasPrefix(trimmed, "## "), strings.HasPrefix(trimmed, "#### "):
			// Section headings end the current object scope.
			current = nil
			currentAttr = nil

		case current != nil && isListItem(raw) && listDepth(raw) == 0:
			name := strings.TrimSpace(listItemText(raw))
			if name == "" {
				continue
			}
			attr := Attribute{Name: name}
			if strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__") {
				attr.Name = strings.Trim(name, "_")
				attr.Required = true
			}
			current.Attributes = append(current.Attributes, attr)
			currentAttr = &current.Attributes[len(current.Attributes)-1]

		case currentAttr != nil && isListItem(raw) && listDepth(raw) > 0:
			key, value, ok := strings.Cut(listItemText(raw), ":")
			if !ok {
				continue
			}
			key = strings.ToLower(strings.TrimSpace(key))
			value = strings.TrimSpace(value)
			switch key {
			case "type":
				if strings.HasSuffix(value, "[]") {
					currentAttr.Array = true
					value = strings.TrimSuffix(value, "[]")
				}
				currentAttr.Type = value
			case "description":
				currentAttr.Description = value
			}

		case current != nil && currentAttr == nil && trimmed != "" && !strings.HasPrefix(trimmed, "#"):
			if current.Description == "" {
				current.Description = trimmed
			} else {
				current.Description += " " + trimmed
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	valid := false
	for _, obj := range model.Objects {
		for _, attr := range obj.Attributes {
			if attr.Type != "" {
				valid = true
			}
		}
	}
	if !valid {
		return nil, ErrNotAModel
	}
	return model, nil
}

// stripSuffixAnnotation removes trailing annotations like "(deprecated)"
// from an object heading.
func stripSuffixAnnotation(name string) string {
	if i := strings.Index(name, "("); i > 0 {
		return strings.TrimSpace(name[:i])
	}
	return name
}

func isListItem(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ")
}

// listDepth reports the nesting level of a list item: 0 for top-level
// attributes, >0 for attribute properties.
func listDepth(line string) int {
	indent := 0
	for _, r := range line {
		switch r {
		case ' ':
			indent++
		case '\t':
			indent += 2
		default:
			return indent / 2
		}
	}
	return indent / 2
}

func listItemText(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	trimmed = strings.TrimPrefix(trimmed, "- ")
	trimmed = strings.TrimPrefix(trimmed, "* ")
	return trimmed
}
