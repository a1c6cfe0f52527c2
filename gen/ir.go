package gen

// Type is one emitted definition. Kind holds the shape-specific payload:
// Struct, Enum, Wrapper, or Unit.
type Type struct {
	Name        string
	Description *string
	Kind        any
}

// Struct is a record type. ArrayEncoded structs marshal to a positional JSON
// array (the request wire form) instead of an object.
type Struct struct {
	ArrayEncoded bool
	Fields       []Field
}

// Field is a single struct member.
//
// Embedded fields carry a type name only; they render as Go anonymous fields
// and inline their members on the wire. Fixed fields are absent from the
// struct body and materialize as constants inside the codec methods.
type Field struct {
	Description    *string
	Name           string
	SerializedName string
	Optional       bool
	Embedded       bool
	Shared         bool
	Fixed          *string
	GoType         string
	Codec          CodecOverride
}

// Enum is a closed set of string values, or the error set when ErrorEnum is
// set (variants then carry codes and messages instead of wire strings).
type Enum struct {
	ErrorEnum bool
	Variants  []Variant
}

type Variant struct {
	Description *string
	Name        string
	WireName    string
	Code        int64
	Message     string
}

// Wrapper is a named alias over another emitted or primitive type.
type Wrapper struct {
	Inner string
}

// Unit is a request type with no parameters. It still participates in the
// positional wire form, as an empty array.
type Unit struct{}

// Result is everything Resolve extracted from one merged document, ready for
// rendering.
type Result struct {
	Version        SpecVersion
	Models         []Type
	Requests       []Type
	Ignored        []string
	NotImplemented []string
}
