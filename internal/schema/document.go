package schema

import (
	"bytes"
	"encoding/json"
)

// Draft is the JSON Schema dialect every emitted document declares.
const Draft = "http://json-schema.org/draft-07/schema#"

// Document wraps a schema as a standalone draft-07 document: the $schema
// key comes first, then the schema's own keys inline.
type Document struct {
	Schema *Schema
}

func NewDocument(s *Schema) *Document {
	return &Document{Schema: s}
}

func (d *Document) MarshalJSON() ([]byte, error) {
	inner, err := json.Marshal(d.Schema)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(`{"$schema":`)
	dialect, _ := json.Marshal(Draft)
	buf.Write(dialect)
	if !bytes.Equal(inner, []byte("{}")) {
		buf.WriteByte(',')
		buf.Write(inner[1 : len(inner)-1])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
