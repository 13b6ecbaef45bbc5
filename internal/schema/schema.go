// Package schema models JSON-Schema-draft-07-shaped documents produced by
// the annotation compiler. Schemas are immutable once built; serialization
// is deterministic, with fixed key order and declaration-ordered
// properties.
package schema

import (
	"bytes"
	"encoding/json"
)

// Property is one declared object property. Order in the slice is
// declaration order and survives into the serialized document.
type Property struct {
	Name   string
	Schema *Schema
}

// AdditionalProperties is the value of an object's additionalProperties
// key: a schema, or false when Schema is nil (closed object).
type AdditionalProperties struct {
	Schema *Schema
}

// Schema is one schema tree node. A nil slice means the corresponding key
// is absent from the serialized form; an empty non-nil slice serializes as
// an empty container. That distinction is load-bearing: mapping schemas
// carry no properties/required keys at all, while record and input schemas
// always carry them, even when empty.
type Schema struct {
	Type       string
	Enum       []Literal
	AnyOf      []*Schema
	Items      *Schema
	Properties []Property
	Required   []string
	Additional *AdditionalProperties
}

// Scalar constructors for the fixed node kinds.
func Null() *Schema    { return &Schema{Type: "null"} }
func Boolean() *Schema { return &Schema{Type: "boolean"} }
func Integer() *Schema { return &Schema{Type: "integer"} }
func Number() *Schema  { return &Schema{Type: "number"} }
func String() *Schema  { return &Schema{Type: "string"} }

// Array returns an array schema with the given item schema.
func Array(items *Schema) *Schema {
	return &Schema{Type: "array", Items: items}
}

// Mapping returns an open object schema constraining only the value shape:
// no declared properties, string keys, additionalProperties = values.
func Mapping(values *Schema) *Schema {
	return &Schema{Type: "object", Additional: &AdditionalProperties{Schema: values}}
}

// Object returns a closed object schema with declared properties.
func Object(properties []Property, required []string, additional *AdditionalProperties) *Schema {
	if properties == nil {
		properties = []Property{}
	}
	if required == nil {
		required = []string{}
	}
	if additional == nil {
		additional = &AdditionalProperties{}
	}
	return &Schema{Type: "object", Properties: properties, Required: required, Additional: additional}
}

// AnyOf returns a union schema over the given variants, order preserved.
func AnyOf(variants ...*Schema) *Schema {
	return &Schema{AnyOf: variants}
}

// Enum returns a literal-enum schema, order and duplicates preserved.
func Enum(values ...Literal) *Schema {
	return &Schema{Enum: values}
}

// Any returns the universal schema: an anyOf over every node kind, i.e.
// "matches anything". A fresh value is built per call so tables never
// share live references.
func Any() *Schema {
	return AnyOf(
		&Schema{Type: "object"},
		&Schema{Type: "array"},
		Null(),
		String(),
		Boolean(),
		Integer(),
		Number(),
	)
}

// Clone deep-copies the schema. Selective merges across files copy values,
// never references.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	out := &Schema{Type: s.Type}
	if s.Enum != nil {
		out.Enum = append([]Literal{}, s.Enum...)
	}
	if s.AnyOf != nil {
		out.AnyOf = make([]*Schema, len(s.AnyOf))
		for i, v := range s.AnyOf {
			out.AnyOf[i] = v.Clone()
		}
	}
	out.Items = s.Items.Clone()
	if s.Properties != nil {
		out.Properties = make([]Property, len(s.Properties))
		for i, p := range s.Properties {
			out.Properties[i] = Property{Name: p.Name, Schema: p.Schema.Clone()}
		}
	}
	if s.Required != nil {
		out.Required = append([]string{}, s.Required...)
	}
	if s.Additional != nil {
		out.Additional = &AdditionalProperties{Schema: s.Additional.Schema.Clone()}
	}
	return out
}

// MarshalJSON serializes with a fixed key order: type, enum, anyOf, items,
// properties, required, additionalProperties.
func (s *Schema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	field := func(name string, raw []byte) {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		key, _ := json.Marshal(name)
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(raw)
	}
	marshalField := func(name string, v interface{}) error {
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		field(name, raw)
		return nil
	}

	if s.Type != "" {
		if err := marshalField("type", s.Type); err != nil {
			return nil, err
		}
	}
	if s.Enum != nil {
		if err := marshalField("enum", s.Enum); err != nil {
			return nil, err
		}
	}
	if s.AnyOf != nil {
		if err := marshalField("anyOf", s.AnyOf); err != nil {
			return nil, err
		}
	}
	if s.Items != nil {
		if err := marshalField("items", s.Items); err != nil {
			return nil, err
		}
	}
	if s.Properties != nil {
		var props bytes.Buffer
		props.WriteByte('{')
		for i, p := range s.Properties {
			if i > 0 {
				props.WriteByte(',')
			}
			key, _ := json.Marshal(p.Name)
			props.Write(key)
			props.WriteByte(':')
			raw, err := json.Marshal(p.Schema)
			if err != nil {
				return nil, err
			}
			props.Write(raw)
		}
		props.WriteByte('}')
		field("properties", props.Bytes())
	}
	if s.Required != nil {
		if err := marshalField("required", s.Required); err != nil {
			return nil, err
		}
	}
	if s.Additional != nil {
		if s.Additional.Schema == nil {
			field("additionalProperties", []byte("false"))
		} else if err := marshalField("additionalProperties", s.Additional.Schema); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
