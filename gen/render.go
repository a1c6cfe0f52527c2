package gen

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/carlmjohnson/versioninfo"
)

const (
	codecImportPath = "github.com/dbejarano820/starknet-jsonrpc-codegen/codec"
	sourceRepo      = "https://github.com/dbejarano820/starknet-jsonrpc-codegen"

	docWidth = 77
)

// RenderOptions controls the shape of the emitted file.
type RenderOptions struct {
	// Package is the package clause of the generated file.
	Package string
}

func printerf(w io.Writer) func(format string, args ...any) {
	return func(format string, args ...any) {
		fmt.Fprintf(w, format, args...)
	}
}

// Render writes the generated Go source for a resolved document. Output is a
// pure function of the input, so repeated runs produce identical bytes.
func Render(w io.Writer, res *Result, opts RenderOptions) error {
	buf := new(bytes.Buffer)
	pf := printerf(buf)

	pf("// Code generated by rpcgen. DO NOT EDIT.\n")
	pf("//\n")
	pf("// Source: %s\n", sourceRepo)
	pf("// Generator version: %s\n", versioninfo.Short())
	pf("// Spec version: %s\n", res.Version.String())
	pf("\n")
	pf("package %s\n", opts.Package)
	pf("\n")

	writeImports(pf, res)

	if len(res.Ignored) > 0 {
		pf("// Definitions intentionally omitted for this version:\n")
		for _, name := range res.Ignored {
			pf("//   - %s\n", name)
		}
		pf("\n")
	}

	if len(res.NotImplemented) > 0 {
		pf("// Definitions below are referenced but not generated, pending\n")
		pf("// hand-written implementations:\n")
		for _, name := range res.NotImplemented {
			pf("//   - %s\n", name)
		}
		pf("\n")
	}

	// Declarations first, codec blocks grouped after the last of them.
	for i := range res.Models {
		writeModelDecl(pf, &res.Models[i])
	}
	for i := range res.Requests {
		writeRequestDecl(pf, &res.Requests[i])
	}

	for i := range res.Models {
		writeModelCodec(pf, &res.Models[i])
	}
	for i := range res.Requests {
		writeRequestCodec(pf, &res.Requests[i])
	}

	_, err := w.Write(buf.Bytes())
	return err
}

func writeImports(pf func(string, ...any), res *Result) {
	needsJSON := len(res.Requests) > 0
	needsFmt := len(res.Requests) > 0
	needsCodec := false

	scanFields := func(fields []Field) {
		for _, f := range fields {
			if strings.Contains(f.GoType, "codec.") {
				needsCodec = true
			}
			if f.Fixed != nil {
				needsJSON = true
				needsFmt = true
			}
		}
	}
	for _, m := range res.Models {
		switch kind := m.Kind.(type) {
		case Struct:
			scanFields(kind.Fields)
		case Enum:
			if kind.ErrorEnum {
				needsFmt = true
			}
		case Wrapper:
			if strings.Contains(kind.Inner, "codec.") {
				needsCodec = true
			}
		}
	}
	for _, r := range res.Requests {
		if kind, ok := r.Kind.(Struct); ok {
			scanFields(kind.Fields)
		}
	}

	if !needsJSON && !needsFmt && !needsCodec {
		return
	}

	pf("import (\n")
	if needsJSON {
		pf("\t\"encoding/json\"\n")
	}
	if needsFmt {
		pf("\t\"fmt\"\n")
	}
	if needsCodec {
		if needsJSON || needsFmt {
			pf("\n")
		}
		pf("\t\"%s\"\n", codecImportPath)
	}
	pf(")\n\n")
}

func writeDoc(pf func(string, ...any), indent string, text *string) {
	if text == nil {
		return
	}
	for _, line := range wrapLines(*text, docWidth-len(indent)) {
		pf("%s// %s\n", indent, line)
	}
}

func writeModelDecl(pf func(string, ...any), model *Type) {
	switch kind := model.Kind.(type) {
	case Struct:
		writeDoc(pf, "", model.Description)
		writeStructBody(pf, model.Name, &kind, true)
	case Enum:
		if kind.ErrorEnum {
			writeErrorEnum(pf, model)
		} else {
			writeStringEnum(pf, model, &kind)
		}
	case Wrapper:
		writeDoc(pf, "", model.Description)
		pf("type %s %s\n\n", model.Name, kind.Inner)
	}
}

func writeModelCodec(pf func(string, ...any), model *Type) {
	if kind, ok := model.Kind.(Struct); ok && hasFixedFields(&kind) {
		writeTaggedCodec(pf, model.Name, &kind)
	}
}

func hasFixedFields(s *Struct) bool {
	for _, f := range s.Fields {
		if f.Fixed != nil {
			return true
		}
	}
	return false
}

// fieldDeclType is the type a field carries in the struct body: optional
// scalars and shared payloads go behind pointers, slices stay bare.
func fieldDeclType(f *Field) string {
	t := f.GoType
	if f.Shared && !strings.HasPrefix(t, "[]") && !strings.HasPrefix(t, "*") {
		return "*" + t
	}
	if f.Optional && !strings.HasPrefix(t, "[]") && !strings.HasPrefix(t, "*") {
		return "*" + t
	}
	return t
}

func writeStructBody(pf func(string, ...any), name string, s *Struct, tagged bool) {
	pf("type %s struct {\n", name)
	for i := range s.Fields {
		f := &s.Fields[i]
		if f.Fixed != nil {
			continue
		}
		if f.Embedded {
			pf("\t%s\n", f.Name)
			continue
		}

		writeDoc(pf, "\t", f.Description)
		if tagged {
			tag := f.SerializedName
			if f.Optional {
				tag += ",omitempty"
			}
			pf("\t%s %s `json:\"%s\"`\n", f.Name, fieldDeclType(f), tag)
		} else {
			pf("\t%s %s\n", f.Name, fieldDeclType(f))
		}
	}
	pf("}\n\n")
}

// writeTaggedCodec emits codec methods for a struct with fixed fields: the
// encoder injects the constants, the decoder tolerates their absence but
// rejects conflicting values.
func writeTaggedCodec(pf func(string, ...any), name string, s *Struct) {
	pf("func (r *%s) MarshalJSON() ([]byte, error) {\n", name)
	pf("\ttype tagged struct {\n")
	for i := range s.Fields {
		f := &s.Fields[i]
		if f.Embedded {
			pf("\t\t%s\n", f.Name)
			continue
		}
		tag := f.SerializedName
		if f.Optional && f.Fixed == nil {
			tag += ",omitempty"
		}
		pf("\t\t%s %s `json:\"%s\"`\n", f.Name, taggedFieldType(f, false), tag)
	}
	pf("\t}\n")
	pf("\tt := tagged{\n")
	for i := range s.Fields {
		f := &s.Fields[i]
		if f.Fixed != nil {
			pf("\t\t%s: %s,\n", f.Name, *f.Fixed)
			continue
		}
		pf("\t\t%s: r.%s,\n", f.Name, f.Name)
	}
	pf("\t}\n")
	pf("\treturn json.Marshal(t)\n")
	pf("}\n\n")

	pf("func (r *%s) UnmarshalJSON(data []byte) error {\n", name)
	pf("\ttype tagged struct {\n")
	for i := range s.Fields {
		f := &s.Fields[i]
		if f.Embedded {
			pf("\t\t%s\n", f.Name)
			continue
		}
		tag := f.SerializedName
		if f.Optional && f.Fixed == nil {
			tag += ",omitempty"
		}
		pf("\t\t%s %s `json:\"%s\"`\n", f.Name, taggedFieldType(f, true), tag)
	}
	pf("\t}\n")
	pf("\tvar t tagged\n")
	pf("\tif err := json.Unmarshal(data, &t); err != nil {\n")
	pf("\t\treturn err\n")
	pf("\t}\n")
	for i := range s.Fields {
		f := &s.Fields[i]
		if f.Fixed == nil {
			continue
		}
		pf("\tif t.%s != nil && *t.%s != %s {\n", f.Name, f.Name, *f.Fixed)
		pf("\t\treturn fmt.Errorf(\"invalid %s value: %%v\", *t.%s)\n", quotedName(f.SerializedName), f.Name)
		pf("\t}\n")
	}
	for i := range s.Fields {
		f := &s.Fields[i]
		if f.Fixed != nil {
			continue
		}
		pf("\tr.%s = t.%s\n", f.Name, f.Name)
	}
	pf("\treturn nil\n")
	pf("}\n\n")
}

// taggedFieldType returns a field's type inside the codec shadow struct.
// Fixed fields always use their base type: bare on encode so the constant
// assigns directly, behind a pointer on decode so absence is
// distinguishable from a conflicting value.
func taggedFieldType(f *Field, decode bool) string {
	if f.Fixed != nil {
		if decode {
			return "*" + f.GoType
		}
		return f.GoType
	}
	return fieldDeclType(f)
}

func quotedName(name string) string {
	return `\"` + name + `\"`
}

func writeStringEnum(pf func(string, ...any), model *Type, kind *Enum) {
	writeDoc(pf, "", model.Description)
	pf("type %s string\n\n", model.Name)
	pf("const (\n")
	for _, v := range kind.Variants {
		pf("\t%s%s %s = %q\n", model.Name, v.Name, model.Name, v.WireName)
	}
	pf(")\n\n")
}

func writeErrorEnum(pf func(string, ...any), model *Type) {
	kind := model.Kind.(Enum)

	writeDoc(pf, "", model.Description)
	pf("type %s int64\n\n", model.Name)
	pf("const (\n")
	for _, v := range kind.Variants {
		pf("\t%s %s = %d\n", v.Name, model.Name, v.Code)
	}
	pf(")\n\n")

	pf("func (e %s) Error() string {\n", model.Name)
	pf("\tswitch e {\n")
	for _, v := range kind.Variants {
		pf("\tcase %s:\n", v.Name)
		pf("\t\treturn %q\n", v.Message)
	}
	pf("\tdefault:\n")
	pf("\t\treturn fmt.Sprintf(\"unknown error code %%d\", int64(e))\n")
	pf("\t}\n")
	pf("}\n\n")
}

func writeRequestDecl(pf func(string, ...any), req *Type) {
	switch kind := req.Kind.(type) {
	case Unit:
		writeDoc(pf, "", req.Description)
		pf("type %s struct{}\n\n", req.Name)
	case Struct:
		writeDoc(pf, "", req.Description)
		writeStructBody(pf, req.Name, &kind, false)
		writeRequestRefDecl(pf, req.Name, &kind)
	}
}

func writeRequestCodec(pf func(string, ...any), req *Type) {
	switch kind := req.Kind.(type) {
	case Unit:
		writeUnitCodec(pf, req.Name)
	case Struct:
		writePositionalCodec(pf, req.Name, &kind)
		writeRequestRefCodec(pf, req.Name, &kind)
	}
}

func writeUnitCodec(pf func(string, ...any), name string) {
	pf("func (r *%s) MarshalJSON() ([]byte, error) {\n", name)
	pf("\treturn []byte(\"[]\"), nil\n")
	pf("}\n\n")

	pf("func (r *%s) UnmarshalJSON(data []byte) error {\n", name)
	pf("\tvar elements []json.RawMessage\n")
	pf("\tif err := json.Unmarshal(data, &elements); err != nil {\n")
	pf("\t\treturn err\n")
	pf("\t}\n")
	pf("\tif len(elements) != 0 {\n")
	pf("\t\treturn fmt.Errorf(\"invalid sequence length: expected 0, got %%d\", len(elements))\n")
	pf("\t}\n")
	pf("\treturn nil\n")
	pf("}\n\n")
}

// writePositionalCodec emits the params-array wire form: encode in field
// order, decode by popping from the tail so each element lands on the field
// at its own index, with an object form accepted as fallback.
func writePositionalCodec(pf func(string, ...any), name string, s *Struct) {
	pf("func (r *%s) MarshalJSON() ([]byte, error) {\n", name)
	pf("\telements := make([]json.RawMessage, 0, %d)\n", len(s.Fields))
	pf("\n")
	for i := range s.Fields {
		f := &s.Fields[i]
		if i == 0 {
			pf("\telement, err := json.Marshal(r.%s)\n", f.Name)
		} else {
			pf("\telement, err = json.Marshal(r.%s)\n", f.Name)
		}
		pf("\tif err != nil {\n")
		pf("\t\treturn nil, err\n")
		pf("\t}\n")
		pf("\telements = append(elements, element)\n")
		pf("\n")
	}
	pf("\treturn json.Marshal(elements)\n")
	pf("}\n\n")

	pf("func (r *%s) UnmarshalJSON(data []byte) error {\n", name)
	pf("\tvar elements []json.RawMessage\n")
	pf("\tif err := json.Unmarshal(data, &elements); err == nil {\n")
	pf("\t\tif len(elements) != %d {\n", len(s.Fields))
	pf("\t\t\treturn fmt.Errorf(\"invalid sequence length: expected %d, got %%d\", len(elements))\n", len(s.Fields))
	pf("\t\t}\n")
	pf("\n")
	for i := len(s.Fields) - 1; i >= 0; i-- {
		f := &s.Fields[i]
		if i == len(s.Fields)-1 {
			pf("\t\telement := elements[len(elements)-1]\n")
		} else {
			pf("\t\telement = elements[len(elements)-1]\n")
		}
		pf("\t\telements = elements[:len(elements)-1]\n")
		pf("\t\tvar field%d %s\n", i, fieldDeclType(f))
		pf("\t\tif err := json.Unmarshal(element, &field%d); err != nil {\n", i)
		pf("\t\t\treturn fmt.Errorf(\"failed to parse element: %%w\", err)\n")
		pf("\t\t}\n")
		pf("\n")
	}
	for i := range s.Fields {
		pf("\t\tr.%s = field%d\n", s.Fields[i].Name, i)
	}
	pf("\t\treturn nil\n")
	pf("\t}\n")
	pf("\n")
	pf("\tvar object struct {\n")
	for i := range s.Fields {
		f := &s.Fields[i]
		pf("\t\t%s %s `json:\"%s\"`\n", f.Name, objectFieldType(f), f.SerializedName)
	}
	pf("\t}\n")
	pf("\tif err := json.Unmarshal(data, &object); err != nil {\n")
	pf("\t\treturn fmt.Errorf(\"expected params array or object\")\n")
	pf("\t}\n")
	for i := range s.Fields {
		f := &s.Fields[i]
		if f.Optional {
			continue
		}
		pf("\tif object.%s == nil {\n", f.Name)
		pf("\t\treturn fmt.Errorf(\"missing %s field\")\n", quotedName(f.SerializedName))
		pf("\t}\n")
	}
	pf("\n")
	for i := range s.Fields {
		f := &s.Fields[i]
		if f.Optional {
			pf("\tr.%s = object.%s\n", f.Name, f.Name)
		} else {
			pf("\tr.%s = *object.%s\n", f.Name, f.Name)
		}
	}
	pf("\treturn nil\n")
	pf("}\n\n")
}

// objectFieldType is a field's type inside the object-form decode shadow.
// Required fields go behind pointers so their absence is detectable.
func objectFieldType(f *Field) string {
	if f.Optional {
		return fieldDeclType(f)
	}
	return "*" + f.GoType
}

// refFieldType is a field's type in the by-reference request view: scalars
// and structs are pointed to, slices and strings already share their backing
// storage.
func refFieldType(f *Field) string {
	t := f.GoType
	if strings.HasPrefix(t, "[]") || strings.HasPrefix(t, "*") || t == "string" {
		return t
	}
	return "*" + t
}

// writeRequestRefDecl emits an encode-only view of a request that borrows
// its fields instead of owning them.
func writeRequestRefDecl(pf func(string, ...any), name string, s *Struct) {
	pf("// %sRef is a by-reference view of %s for serialization without\n", name, name)
	pf("// copying.\n")
	pf("type %sRef struct {\n", name)
	for i := range s.Fields {
		f := &s.Fields[i]
		pf("\t%s %s\n", f.Name, refFieldType(f))
	}
	pf("}\n\n")
}

func writeRequestRefCodec(pf func(string, ...any), name string, s *Struct) {
	pf("func (r *%sRef) MarshalJSON() ([]byte, error) {\n", name)
	pf("\telements := make([]json.RawMessage, 0, %d)\n", len(s.Fields))
	pf("\n")
	for i := range s.Fields {
		f := &s.Fields[i]
		if i == 0 {
			pf("\telement, err := json.Marshal(r.%s)\n", f.Name)
		} else {
			pf("\telement, err = json.Marshal(r.%s)\n", f.Name)
		}
		pf("\tif err != nil {\n")
		pf("\t\treturn nil, err\n")
		pf("\t}\n")
		pf("\telements = append(elements, element)\n")
		pf("\n")
	}
	pf("\treturn json.Marshal(elements)\n")
	pf("}\n\n")
}
