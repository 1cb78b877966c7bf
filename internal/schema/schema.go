// Package schema provides declarative shape definitions for structured
// extraction and generation results. A Schema drives three things: the
// JSON-shape block of the model prompt, a JSON Schema document used to
// validate model output, and defaulting so that every declared field is
// present in a result even when absent from the source.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind is the declared type of a schema field.
type Kind string

// Field kinds supported by extraction schemas.
const (
	KindString     Kind = "string"
	KindNumber     Kind = "number"
	KindStringList Kind = "string_list"
	KindObject     Kind = "object"
	KindObjectList Kind = "object_list"
)

// Field defines a single field in the extraction output.
type Field struct {
	Name        string  // JSON field name
	Kind        Kind    // Declared type
	Description string  // Description for the LLM
	Required    bool    // Whether the model must populate this field
	Nullable    bool    // Whether an explicit null is an acceptable value
	Fields      []Field // Nested fields for object and object_list kinds
}

// Schema defines the structure for LLM-based content extraction.
type Schema struct {
	Name        string  // Schema name (e.g., "Resume", "Invoice")
	Description string  // System prompt preamble describing the task
	Fields      []Field // Expected output fields
}

// PromptFragment renders the schema to the JSON-shape block of an extraction
// prompt. The model is told to return exactly this structure.
func (s Schema) PromptFragment() string {
	var sb strings.Builder
	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n")
	writeFields(&sb, s.Fields, 0)
	sb.WriteString("\nIMPORTANT:\n")
	sb.WriteString("- Extract information directly from the document, do not invent content.\n")
	sb.WriteString("- If a field is not present in the source, return an empty string, empty array, 0, or null for it, but do not omit the field itself.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n")
	return sb.String()
}

func writeFields(sb *strings.Builder, fields []Field, depth int) {
	indent := strings.Repeat("  ", depth)
	sb.WriteString(indent + "{\n")
	inner := strings.Repeat("  ", depth+1)
	for i, f := range fields {
		sb.WriteString(fmt.Sprintf("%s%q: ", inner, f.Name))
		switch f.Kind {
		case KindString:
			sb.WriteString(`"string"`)
		case KindNumber:
			sb.WriteString("number")
		case KindStringList:
			sb.WriteString(`["string"]`)
		case KindObject:
			sb.WriteString("\n")
			writeFields(sb, f.Fields, depth+1)
		case KindObjectList:
			sb.WriteString("[\n")
			writeFields(sb, f.Fields, depth+1)
			sb.WriteString("]")
		}
		if i < len(fields)-1 {
			sb.WriteString(",")
		}
		if f.Description != "" {
			sb.WriteString(fmt.Sprintf("  // %s", f.Description))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(indent + "}")
}

// JSONSchema compiles the schema to a draft-07 JSON Schema document.
func (s Schema) JSONSchema() ([]byte, error) {
	doc := map[string]any{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"title":   s.Name,
	}
	for k, v := range objectSchema(s.Fields) {
		doc[k] = v
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON schema for %s: %w", s.Name, err)
	}
	return out, nil
}

func objectSchema(fields []Field) map[string]any {
	properties := make(map[string]any, len(fields))
	required := make([]string, 0, len(fields))
	for _, f := range fields {
		properties[f.Name] = fieldSchema(f)
		if f.Required {
			required = append(required, f.Name)
		}
	}
	obj := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		obj["required"] = required
	}
	return obj
}

func fieldSchema(f Field) map[string]any {
	var schema map[string]any
	switch f.Kind {
	case KindString:
		schema = map[string]any{"type": "string"}
	case KindNumber:
		schema = map[string]any{"type": "number"}
	case KindStringList:
		schema = map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
	case KindObject:
		schema = objectSchema(f.Fields)
	case KindObjectList:
		schema = map[string]any{"type": "array", "items": objectSchema(f.Fields)}
	default:
		schema = map[string]any{}
	}
	if f.Nullable {
		if t, ok := schema["type"].(string); ok {
			schema["type"] = []string{t, "null"}
		}
	}
	return schema
}

// ApplyDefaults fills every declared field of raw with its empty value when
// the field is missing or null. Nullable fields keep an explicit null. The
// input map is modified in place and returned for convenience.
func (s Schema) ApplyDefaults(raw map[string]any) map[string]any {
	if raw == nil {
		raw = make(map[string]any)
	}
	return applyDefaults(raw, s.Fields)
}

func applyDefaults(raw map[string]any, fields []Field) map[string]any {
	for _, f := range fields {
		value, present := raw[f.Name]
		if !present || value == nil {
			if f.Nullable {
				raw[f.Name] = nil
			} else {
				raw[f.Name] = defaultValue(f)
			}
			continue
		}

		switch f.Kind {
		case KindObject:
			if nested, ok := value.(map[string]any); ok {
				raw[f.Name] = applyDefaults(nested, f.Fields)
			}
		case KindObjectList:
			if items, ok := value.([]any); ok {
				for i, item := range items {
					if nested, ok := item.(map[string]any); ok {
						items[i] = applyDefaults(nested, f.Fields)
					}
				}
			}
		}
	}
	return raw
}

// defaultValue returns the declared empty value for a field kind.
func defaultValue(f Field) any {
	switch f.Kind {
	case KindString:
		return ""
	case KindNumber:
		return float64(0)
	case KindStringList:
		return []any{}
	case KindObject:
		return applyDefaults(make(map[string]any), f.Fields)
	case KindObjectList:
		return []any{}
	}
	return nil
}
