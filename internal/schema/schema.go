// Package schema declares the document shapes the service accepts and the
// validation applied to request bodies before anything reaches the store.
package schema

import (
	"fmt"

	"github.com/arcynforge/forge-backend/internal/docstore"
)

// FieldType enumerates the JSON types a field spec can require.
type FieldType string

const (
	TypeString     FieldType = "string"
	TypeStringList FieldType = "array"
	TypeMap        FieldType = "object"
)

// FieldSpec describes one document field: its JSON type, whether requests
// must carry it, and the default applied when they do not.
type FieldSpec struct {
	Name        string
	Type        FieldType
	Required    bool
	Default     any
	Description string
}

// Schema is the declared shape of one document kind. Name doubles as the
// store collection name and as the model's key under GET /schema.
type Schema struct {
	Name   string
	Title  string
	Fields []FieldSpec
}

// ValidateAndApply checks raw against the schema and returns the document to
// store: required fields present and well-typed, defaults filled in, unknown
// fields dropped. Optional fields with neither a value nor a default are kept
// as explicit nulls so read-back shapes stay stable. All field failures are
// collected into one ValidationError.
func (s *Schema) ValidateAndApply(raw map[string]any) (docstore.Document, error) {
	doc := make(docstore.Document, len(s.Fields))
	verr := &ValidationError{Model: s.Name}

	for _, f := range s.Fields {
		value, ok := raw[f.Name]
		if !ok || value == nil {
			if f.Required {
				verr.add(f.Name, "field is required")
				continue
			}
			doc[f.Name] = defaultValue(f.Default)
			continue
		}
		coerced, err := coerce(f.Type, value)
		if err != nil {
			verr.add(f.Name, err.Error())
			continue
		}
		doc[f.Name] = coerced
	}

	if len(verr.Fields) > 0 {
		return nil, verr
	}
	return doc, nil
}

// JSONSchema renders the schema as a JSON-Schema object document.
func (s *Schema) JSONSchema() map[string]any {
	properties := make(map[string]any, len(s.Fields))
	required := make([]string, 0)
	for _, f := range s.Fields {
		prop := map[string]any{
			"type":        string(f.Type),
			"description": f.Description,
		}
		if f.Type == TypeStringList {
			prop["items"] = map[string]any{"type": "string"}
		}
		if f.Default != nil {
			prop["default"] = f.Default
		}
		properties[f.Name] = prop
		if f.Required {
			required = append(required, f.Name)
		}
	}

	out := map[string]any{
		"title":      s.Title,
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		out["required"] = required
	}
	return out
}

func coerce(t FieldType, value any) (any, error) {
	switch t {
	case TypeString:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("must be a string")
		}
		return s, nil
	case TypeStringList:
		switch v := value.(type) {
		case []string:
			out := make([]string, 0, len(v))
			return append(out, v...), nil
		case []any:
			out := make([]string, 0, len(v))
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("must be an array of strings")
				}
				out = append(out, s)
			}
			return out, nil
		default:
			return nil, fmt.Errorf("must be an array of strings")
		}
	case TypeMap:
		m, ok := value.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("must be an object")
		}
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported field type %q", t)
	}
}

// defaultValue copies list and map defaults so stored documents never share
// a backing slice or map with the schema declaration.
func defaultValue(def any) any {
	switch v := def.(type) {
	case []string:
		out := make([]string, 0, len(v))
		return append(out, v...)
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[k] = val
		}
		return out
	default:
		return def
	}
}
