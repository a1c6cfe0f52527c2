package spec

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

// Specification is one parsed spec document (either the core API spec or the
// write-operations spec).
type Specification struct {
	OpenRPC    string     `json:"openrpc"`
	Info       Info       `json:"info"`
	Methods    []Method   `json:"methods"`
	Components Components `json:"components"`
}

type Info struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

type Components struct {
	Schemas map[string]Schema `json:"schemas"`
	Errors  NamedErrors       `json:"errors"`
}

type Method struct {
	Name    string  `json:"name"`
	Summary *string `json:"summary,omitempty"`
	Params  []Param `json:"params"`
	Result  *Param  `json:"result,omitempty"`
}

type Param struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Summary     *string `json:"summary,omitempty"`
	Required    bool    `json:"required"`
	Schema      Schema  `json:"schema"`
}

// ErrorDef is a literal named error definition.
type ErrorDef struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

// ErrorOrRef is either a literal error definition or a reference to one.
type ErrorOrRef struct {
	Inner any
}

func (e ErrorOrRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Inner)
}

func (e *ErrorOrRef) UnmarshalJSON(b []byte) error {
	var probe struct {
		Ref *string `json:"$ref"`
	}
	if err := json.Unmarshal(b, &probe); err != nil {
		return fmt.Errorf("parsing error definition: %w", err)
	}

	if probe.Ref != nil {
		v := new(SchemaRef)
		if err := json.Unmarshal(b, v); err != nil {
			return err
		}
		e.Inner = *v
		return nil
	}

	v := new(ErrorDef)
	if err := json.Unmarshal(b, v); err != nil {
		return err
	}
	e.Inner = *v
	return nil
}

// NamedErrors is the error-definition map in document order. Order fixes the
// variant order of the generated error enum.
type NamedErrors []NamedError

type NamedError struct {
	Name string
	Def  ErrorOrRef
}

func (e NamedErrors) Has(name string) bool {
	for i := range e {
		if e[i].Name == name {
			return true
		}
	}
	return false
}

func (e NamedErrors) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, ne := range e {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(ne.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(ne.Def)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (e *NamedErrors) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("parsing errors: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("errors must be an object")
	}

	out := NamedErrors{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("parsing error name: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected error key token: %v", keyTok)
		}

		var def ErrorOrRef
		if err := dec.Decode(&def); err != nil {
			return fmt.Errorf("parsing error %q: %w", key, err)
		}

		out = append(out, NamedError{Name: key, Def: def})
	}

	*e = out
	return nil
}

func Parse(b []byte) (*Specification, error) {
	var s Specification
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parsing specification: %w", err)
	}
	return &s, nil
}

// Merge folds the write-operations spec into the core spec: write methods are
// appended after core methods, and write error definitions are merged
// first-wins (a name already present in the core spec is kept as-is). The
// write spec defines no additional models, so schemas are not merged.
func Merge(core, write *Specification) {
	core.Methods = append(core.Methods, write.Methods...)

	for _, ne := range write.Components.Errors {
		if !core.Components.Errors.Has(ne.Name) {
			core.Components.Errors = append(core.Components.Errors, ne)
		}
	}
}
