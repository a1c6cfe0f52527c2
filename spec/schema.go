// Package spec models the OpenRPC-flavored Starknet API specification
// documents: named schemas, method parameter/result definitions, and named
// error definitions, addressed by name through the components section.
package spec

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

// Schema is a single schema node: a reference, a composition, or a primitive.
// The concrete node type lives in Inner.
type Schema struct {
	Inner any
}

type SchemaRef struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Ref         string  `json:"$ref"`
}

// Name returns the referenced component name, the part after the last slash.
func (s SchemaRef) Name() string {
	parts := strings.Split(s.Ref, "/")
	return parts[len(parts)-1]
}

type SchemaOneOf struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Variants    []Schema `json:"oneOf"`
}

type SchemaAllOf struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Fragments   []Schema `json:"allOf"`
}

type SchemaObject struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Summary     *string    `json:"summary,omitempty"`
	Properties  Properties `json:"properties"`
	Required    []string   `json:"required,omitempty"`
}

func (s SchemaObject) IsRequired(name string) bool {
	// An object with no required list treats every property as required.
	if s.Required == nil {
		return true
	}
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

type SchemaArray struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Summary     *string `json:"summary,omitempty"`
	Items       *Schema `json:"items"`
}

type SchemaString struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Summary     *string  `json:"summary,omitempty"`
	Enum        []string `json:"enum,omitempty"`
	Pattern     *string  `json:"pattern,omitempty"`
}

type SchemaInteger struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Summary     *string `json:"summary,omitempty"`
	Minimum     *int64  `json:"minimum,omitempty"`
}

type SchemaBoolean struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Summary     *string `json:"summary,omitempty"`
}

func (s Schema) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Inner)
}

func (s *Schema) UnmarshalJSON(b []byte) error {
	shape, err := extractShapeJSON(b)
	if err != nil {
		return err
	}

	switch shape {
	case "$ref":
		v := new(SchemaRef)
		if err = json.Unmarshal(b, v); err != nil {
			return err
		}
		s.Inner = *v
		return nil
	case "oneOf":
		v := new(SchemaOneOf)
		if err = json.Unmarshal(b, v); err != nil {
			return err
		}
		s.Inner = *v
		return nil
	case "allOf":
		v := new(SchemaAllOf)
		if err = json.Unmarshal(b, v); err != nil {
			return err
		}
		s.Inner = *v
		return nil
	case "object":
		v := new(SchemaObject)
		if err = json.Unmarshal(b, v); err != nil {
			return err
		}
		s.Inner = *v
		return nil
	case "array":
		v := new(SchemaArray)
		if err = json.Unmarshal(b, v); err != nil {
			return err
		}
		s.Inner = *v
		return nil
	case "string":
		v := new(SchemaString)
		if err = json.Unmarshal(b, v); err != nil {
			return err
		}
		s.Inner = *v
		return nil
	case "integer":
		v := new(SchemaInteger)
		if err = json.Unmarshal(b, v); err != nil {
			return err
		}
		s.Inner = *v
		return nil
	case "boolean":
		v := new(SchemaBoolean)
		if err = json.Unmarshal(b, v); err != nil {
			return err
		}
		s.Inner = *v
		return nil
	default:
		return fmt.Errorf("unexpected schema shape: %s", shape)
	}
}

// Title returns the node's title, or nil for node kinds that carry none.
func (s *Schema) Title() *string {
	switch v := s.Inner.(type) {
	case SchemaRef:
		return v.Title
	case SchemaOneOf:
		return v.Title
	case SchemaAllOf:
		return v.Title
	case SchemaObject:
		return v.Title
	case SchemaArray:
		return v.Title
	case SchemaString:
		return v.Title
	case SchemaInteger:
		return v.Title
	case SchemaBoolean:
		return v.Title
	}
	return nil
}

func (s *Schema) Description() *string {
	switch v := s.Inner.(type) {
	case SchemaRef:
		return v.Description
	case SchemaOneOf:
		return v.Description
	case SchemaAllOf:
		return v.Description
	case SchemaObject:
		return v.Description
	case SchemaArray:
		return v.Description
	case SchemaString:
		return v.Description
	case SchemaInteger:
		return v.Description
	case SchemaBoolean:
		return v.Description
	}
	return nil
}

func (s *Schema) Summary() *string {
	switch v := s.Inner.(type) {
	case SchemaObject:
		return v.Summary
	case SchemaArray:
		return v.Summary
	case SchemaString:
		return v.Summary
	case SchemaInteger:
		return v.Summary
	case SchemaBoolean:
		return v.Summary
	}
	return nil
}

// extractShapeJSON peeks at a schema node and reports which node kind it is:
// "$ref", "oneOf", "allOf", or the value of its "type" key.
func extractShapeJSON(b []byte) (string, error) {
	var probe struct {
		Ref   *string           `json:"$ref"`
		OneOf []json.RawMessage `json:"oneOf"`
		AllOf []json.RawMessage `json:"allOf"`
		Type  *string           `json:"type"`
	}
	if err := json.Unmarshal(b, &probe); err != nil {
		return "", fmt.Errorf("parsing schema node: %w", err)
	}

	switch {
	case probe.Ref != nil:
		return "$ref", nil
	case probe.OneOf != nil:
		return "oneOf", nil
	case probe.AllOf != nil:
		return "allOf", nil
	case probe.Type != nil:
		return *probe.Type, nil
	default:
		return "", fmt.Errorf("schema node has no $ref, oneOf, allOf, or type")
	}
}
