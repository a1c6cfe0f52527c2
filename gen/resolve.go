package gen

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/dbejarano820/starknet-jsonrpc-codegen/spec"
)

// Resolve turns a merged document into renderable definitions: one model per
// emittable component, one request type per method, plus the error set.
//
// Components backed by the codec runtime, components that exist only to be
// flattened, and ignored components produce no model. Unions and bare
// primitive components are not code-generated; they are reported in
// NotImplemented so the emitted file names the gaps.
func Resolve(doc *spec.Specification, profile GenerationProfile) (*Result, error) {
	res := &Result{Version: profile.Version}

	flattenOnly := flattenOnlySet(doc, profile)

	names := make([]string, 0, len(doc.Components.Schemas))
	for name := range doc.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if profile.IsIgnored(name) {
			res.Ignored = append(res.Ignored, typeName(name))
			continue
		}
		if hasTypeOverride(name) || flattenOnly[name] {
			continue
		}

		schema := doc.Components.Schemas[name]
		model, ok, err := classify(name, &schema, doc, profile)
		if err != nil {
			return nil, fmt.Errorf("component %s: %w", name, err)
		}
		if !ok {
			slog.Warn("skipping component, needs a hand-written definition",
				"component", name,
				"version", profile.Version.String())
			res.NotImplemented = append(res.NotImplemented, typeName(name))
			continue
		}

		res.Models = append(res.Models, model)
	}

	if len(doc.Components.Errors) > 0 {
		errModel, err := resolveErrors(doc.Components.Errors)
		if err != nil {
			return nil, err
		}
		res.Models = append(res.Models, errModel)
	}

	sort.Slice(res.Models, func(i, j int) bool {
		return res.Models[i].Name < res.Models[j].Name
	})
	sort.Strings(res.Ignored)
	sort.Strings(res.NotImplemented)

	for i := range doc.Methods {
		req, err := resolveRequest(&doc.Methods[i], doc)
		if err != nil {
			return nil, fmt.Errorf("method %s: %w", doc.Methods[i].Name, err)
		}
		res.Requests = append(res.Requests, req)
	}
	sort.Slice(res.Requests, func(i, j int) bool {
		return res.Requests[i].Name < res.Requests[j].Name
	})

	return res, nil
}

func classify(name string, s *spec.Schema, doc *spec.Specification, profile GenerationProfile) (Type, bool, error) {
	model := Type{
		Name:        typeName(name),
		Description: describe(s, true),
	}

	switch node := s.Inner.(type) {
	case spec.SchemaObject:
		fields, err := objectFields(&node, doc)
		if err != nil {
			return Type{}, false, err
		}
		model.Kind = Struct{Fields: applyFieldTables(model.Name, fields, profile)}
		return model, true, nil

	case spec.SchemaAllOf:
		fields, err := fragmentFields(&node, doc, profile)
		if err != nil {
			return Type{}, false, err
		}
		model.Kind = Struct{Fields: applyFieldTables(model.Name, fields, profile)}
		return model, true, nil

	case spec.SchemaString:
		if len(node.Enum) > 0 {
			variants := make([]Variant, 0, len(node.Enum))
			for _, value := range node.Enum {
				variants = append(variants, Variant{
					Name:     variantName(value),
					WireName: value,
				})
			}
			model.Kind = Enum{Variants: variants}
			return model, true, nil
		}
		// A bare string component carries no structure of its own; without a
		// codec override it needs a hand-written definition.
		return Type{}, false, nil

	case spec.SchemaRef:
		// A component that is just a reference borrows the target's fields.
		fields, err := componentFields(node.Name(), doc, profile)
		if err != nil {
			return Type{}, false, err
		}
		model.Kind = Struct{Fields: applyFieldTables(model.Name, fields, profile)}
		return model, true, nil

	case spec.SchemaOneOf, spec.SchemaInteger, spec.SchemaBoolean, spec.SchemaArray:
		return Type{}, false, nil

	default:
		return Type{}, false, fmt.Errorf("unsupported schema node %T", s.Inner)
	}
}

// describe builds a doc string for a schema position. Standalone (type-level)
// docs end with a period; field docs keep the document's own punctuation.
func describe(s *spec.Schema, standalone bool) *string {
	raw := s.Description()
	if raw == nil {
		raw = s.Title()
	}
	if raw == nil {
		return nil
	}
	out := toSentenceCase(*raw, standalone)
	return &out
}

func objectFields(obj *spec.SchemaObject, doc *spec.Specification) ([]Field, error) {
	fields := make([]Field, 0, len(obj.Properties))
	for i := range obj.Properties {
		prop := &obj.Properties[i]

		ft, err := mapFieldType(prop.Name, &prop.Schema, doc)
		if err != nil {
			return nil, err
		}

		fields = append(fields, Field{
			Description:    describe(&prop.Schema, false),
			Name:           goFieldName(prop.Name),
			SerializedName: prop.Name,
			Optional:       !obj.IsRequired(prop.Name),
			GoType:         ft.GoType,
			Codec:          ft.Codec,
		})
	}
	return fields, nil
}

// fragmentFields collapses an allOf composition into one field list. Inline
// object fragments always contribute their fields directly. Referenced
// fragments are inlined only when the profile flattens them; otherwise the
// referenced type stays intact as an embedded field.
func fragmentFields(all *spec.SchemaAllOf, doc *spec.Specification, profile GenerationProfile) ([]Field, error) {
	var fields []Field

	for i := range all.Fragments {
		switch node := all.Fragments[i].Inner.(type) {
		case spec.SchemaRef:
			name := node.Name()
			if !profile.Flatten.Allows(name) {
				fields = append(fields, Field{
					Name:     typeName(name),
					GoType:   typeName(name),
					Embedded: true,
				})
				continue
			}

			inlined, err := componentFields(name, doc, profile)
			if err != nil {
				return nil, err
			}
			fields = append(fields, inlined...)

		case spec.SchemaObject:
			inlined, err := objectFields(&node, doc)
			if err != nil {
				return nil, err
			}
			fields = append(fields, inlined...)

		default:
			return nil, fmt.Errorf("unsupported allOf fragment %T", all.Fragments[i].Inner)
		}
	}

	seen := map[string]bool{}
	for _, f := range fields {
		if f.Embedded {
			continue
		}
		if seen[f.SerializedName] {
			return nil, fmt.Errorf("duplicate field %q after flattening", f.SerializedName)
		}
		seen[f.SerializedName] = true
	}

	return fields, nil
}

func componentFields(name string, doc *spec.Specification, profile GenerationProfile) ([]Field, error) {
	target, ok := doc.Components.Schemas[name]
	if !ok {
		return nil, fmt.Errorf("reference to unknown component %s", name)
	}

	switch node := target.Inner.(type) {
	case spec.SchemaObject:
		return objectFields(&node, doc)
	case spec.SchemaAllOf:
		return fragmentFields(&node, doc, profile)
	default:
		return nil, fmt.Errorf("component %s cannot be inlined: not an object", name)
	}
}

func applyFieldTables(typeName string, fields []Field, profile GenerationProfile) []Field {
	for i := range fields {
		if fields[i].Embedded {
			continue
		}
		if value, ok := profile.FixedValue(typeName, fields[i].SerializedName); ok {
			fields[i].Fixed = &value
		}
		if profile.IsShared(typeName, fields[i].SerializedName) {
			fields[i].Shared = true
		}
	}
	return fields
}

func resolveErrors(errs spec.NamedErrors) (Type, error) {
	variants := make([]Variant, 0, len(errs))
	for _, ne := range errs {
		def, ok := ne.Def.Inner.(spec.ErrorDef)
		if !ok {
			return Type{}, fmt.Errorf("error %s is a reference; only inline definitions are supported", ne.Name)
		}
		variants = append(variants, Variant{
			Name:     variantName(ne.Name),
			WireName: ne.Name,
			Code:     def.Code,
			Message:  def.Message,
		})
	}

	desc := "Errors the sequencer replies with, by JSON-RPC error code."
	return Type{
		Name:        "StarknetError",
		Description: &desc,
		Kind:        Enum{ErrorEnum: true, Variants: variants},
	}, nil
}

func resolveRequest(m *spec.Method, doc *spec.Specification) (Type, error) {
	req := Type{Name: requestTypeName(m.Name)}
	if m.Summary != nil {
		desc := toSentenceCase(*m.Summary, true)
		req.Description = &desc
	}

	if len(m.Params) == 0 {
		req.Kind = Unit{}
		return req, nil
	}

	fields := make([]Field, 0, len(m.Params))
	for i := range m.Params {
		param := &m.Params[i]

		ft, err := mapFieldType(param.Name, &param.Schema, doc)
		if err != nil {
			return Type{}, err
		}

		var desc *string
		if param.Description != nil {
			d := toSentenceCase(*param.Description, false)
			desc = &d
		} else if param.Summary != nil {
			d := toSentenceCase(*param.Summary, false)
			desc = &d
		}

		fields = append(fields, Field{
			Description:    desc,
			Name:           goFieldName(param.Name),
			SerializedName: param.Name,
			Optional:       !param.Required,
			GoType:         ft.GoType,
			Codec:          ft.Codec,
		})
	}

	req.Kind = Struct{ArrayEncoded: true, Fields: fields}
	return req, nil
}
