package spec

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

// Properties is an object's property list in document order. Order matters:
// it fixes both field layout in the generated types and output stability, so
// properties cannot live in a Go map.
type Properties []Property

type Property struct {
	Name   string
	Schema Schema
}

func (p Properties) Get(name string) *Schema {
	for i := range p {
		if p[i].Name == name {
			return &p[i].Schema
		}
	}
	return nil
}

func (p Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, prop := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(prop.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(prop.Schema)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (p *Properties) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("parsing properties: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("properties must be an object")
	}

	out := Properties{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("parsing property name: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected property key token: %v", keyTok)
		}

		var s Schema
		if err := dec.Decode(&s); err != nil {
			return fmt.Errorf("parsing property %q: %w", key, err)
		}

		out = append(out, Property{Name: key, Schema: s})
	}

	*p = out
	return nil
}
