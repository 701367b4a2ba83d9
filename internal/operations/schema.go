package operations

import (
	"bytes"
	"encoding/json"
	"math"
	"slices"
	"strings"

	apperrors "github.com/alexjbarnes/oauth2-admin-mcp/internal/errors"
)

// FieldType is the JSON type accepted for a field.
type FieldType string

const (
	TypeString      FieldType = "string"
	TypeInteger     FieldType = "integer"
	TypeBoolean     FieldType = "boolean"
	TypeStringArray FieldType = "string-array"
)

// Field describes one named input. Default is applied when an optional
// field is absent and must already be of the normalized Go type (see
// Args).
type Field struct {
	Name        string
	Type        FieldType
	Required    bool
	Description string
	Enum        []string
	Default     any
}

// Shape is the ordered set of fields an operation accepts.
type Shape []Field

// Args holds validated arguments. Values are normalized to string,
// int64, bool or []string according to the field type.
type Args map[string]any

// String returns a string argument, or "" when absent.
func (a Args) String(name string) string {
	s, _ := a[name].(string)
	return s
}

// Int returns an integer argument, or 0 when absent.
func (a Args) Int(name string) int64 {
	n, _ := a[name].(int64)
	return n
}

// Bool returns a boolean argument, or false when absent.
func (a Args) Bool(name string) bool {
	b, _ := a[name].(bool)
	return b
}

// Strings returns a string-array argument, or nil when absent.
func (a Args) Strings(name string) []string {
	s, _ := a[name].([]string)
	return s
}

// Validate checks raw JSON arguments against the shape. Missing or null
// raw input is treated as an empty object. Keys not named by the shape
// are dropped. An explicit JSON null on an optional field counts as
// absent. The first violation is returned as *errors.ValidationError.
func (s Shape) Validate(raw json.RawMessage) (Args, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		raw = []byte("{}")
	}

	var obj map[string]json.RawMessage
	if raw[0] != '{' || json.Unmarshal(raw, &obj) != nil {
		return nil, &apperrors.ValidationError{Reason: "arguments must be a JSON object"}
	}

	args := make(Args, len(s))

	for _, f := range s {
		v, present := obj[f.Name]
		if present && bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			present = false
		}

		if !present {
			if f.Required {
				return nil, &apperrors.ValidationError{Field: f.Name, Reason: "is required"}
			}

			if f.Default != nil {
				args[f.Name] = f.Default
			}

			continue
		}

		value, err := f.decode(v)
		if err != nil {
			return nil, err
		}

		args[f.Name] = value
	}

	return args, nil
}

func (f Field) decode(v json.RawMessage) (any, error) {
	invalid := func(reason string) error {
		return &apperrors.ValidationError{Field: f.Name, Reason: reason}
	}

	switch f.Type {
	case TypeString:
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return nil, invalid("must be a string")
		}

		if len(f.Enum) > 0 && !slices.Contains(f.Enum, s) {
			return nil, invalid("must be one of " + strings.Join(f.Enum, ", "))
		}

		return s, nil

	case TypeInteger:
		var n float64
		if err := json.Unmarshal(v, &n); err != nil || n != math.Trunc(n) || math.Abs(n) > 1<<53 {
			return nil, invalid("must be an integer")
		}

		return int64(n), nil

	case TypeBoolean:
		var b bool
		if err := json.Unmarshal(v, &b); err != nil {
			return nil, invalid("must be a boolean")
		}

		return b, nil

	case TypeStringArray:
		var items []json.RawMessage
		if err := json.Unmarshal(v, &items); err != nil {
			return nil, invalid("must be an array of strings")
		}

		out := make([]string, 0, len(items))

		for _, item := range items {
			var s string
			if err := json.Unmarshal(item, &s); err != nil || bytes.Equal(bytes.TrimSpace(item), []byte("null")) {
				return nil, invalid("must be an array of strings")
			}

			out = append(out, s)
		}

		return out, nil
	}

	return nil, invalid("has unsupported type " + string(f.Type))
}

// JSONSchema renders the shape as the JSON Schema object advertised in
// an MCP tool's inputSchema.
func (s Shape) JSONSchema() map[string]any {
	props := make(map[string]any, len(s))

	for _, f := range s {
		prop := map[string]any{}

		if f.Type == TypeStringArray {
			prop["type"] = "array"
			prop["items"] = map[string]any{"type": "string"}
		} else {
			prop["type"] = string(f.Type)
		}

		if f.Description != "" {
			prop["description"] = f.Description
		}

		if len(f.Enum) > 0 {
			prop["enum"] = slices.Clone(f.Enum)
		}

		if f.Default != nil {
			prop["default"] = f.Default
		}

		props[f.Name] = prop
	}

	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}

	if required := s.Required(); len(required) > 0 {
		schema["required"] = required
	}

	return schema
}

// Required returns the names of the required fields in order.
func (s Shape) Required() []string {
	var out []string

	for _, f := range s {
		if f.Required {
			out = append(out, f.Name)
		}
	}

	return out
}
