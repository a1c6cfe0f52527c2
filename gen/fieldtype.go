package gen

import (
	"fmt"
	"strings"

	"github.com/dbejarano820/starknet-jsonrpc-codegen/spec"
)

// CodecOverride identifies a non-default wire representation carried by a
// field's type. The renderer uses it to decide which runtime imports the
// generated file needs.
type CodecOverride int

const (
	CodecNone CodecOverride = iota
	CodecFeltHex
	CodecNumHex
	CodecEthAddressHex
	CodecBase64Blob
)

// FieldType is the resolved Go type of a single field.
type FieldType struct {
	GoType string
	Codec  CodecOverride
}

// typeOverrides maps component names to types provided by the codec runtime
// (or the emitted package itself). Components in this table are never emitted
// as standalone definitions.
var typeOverrides = map[string]FieldType{
	"FELT":                             {GoType: "codec.Felt", Codec: CodecFeltHex},
	"ADDRESS":                          {GoType: "codec.Felt", Codec: CodecFeltHex},
	"STORAGE_KEY":                      {GoType: "codec.Felt", Codec: CodecFeltHex},
	"TXN_HASH":                         {GoType: "codec.Felt", Codec: CodecFeltHex},
	"BLOCK_HASH":                       {GoType: "codec.Felt", Codec: CodecFeltHex},
	"CHAIN_ID":                         {GoType: "codec.Felt", Codec: CodecFeltHex},
	"PROTOCOL_VERSION":                 {GoType: "codec.Felt", Codec: CodecFeltHex},
	"BLOCK_NUMBER":                     {GoType: "uint64"},
	"NUM_AS_HEX":                       {GoType: "codec.NumAsHex", Codec: CodecNumHex},
	"ETH_ADDRESS":                      {GoType: "codec.EthAddress", Codec: CodecEthAddressHex},
	"SIGNATURE":                        {GoType: "[]codec.Felt", Codec: CodecFeltHex},
	"TXN_TYPE":                         {GoType: "string"},
	"CONTRACT_ABI":                     {GoType: "[]LegacyContractAbiEntry"},
	"CONTRACT_ENTRY_POINT_LIST":        {GoType: "[]ContractEntryPoint"},
	"LEGACY_CONTRACT_ENTRY_POINT_LIST": {GoType: "[]LegacyContractEntryPoint"},
}

func hasTypeOverride(name string) bool {
	_, ok := typeOverrides[name]
	return ok
}

// isBase64Blob reports whether a string schema's description marks it as a
// base64-encoded byte blob.
func isBase64Blob(s *spec.SchemaString) bool {
	return s.Description != nil && strings.Contains(strings.ToLower(*s.Description), "base64")
}

// mapFieldType resolves a field-position schema node to its Go type. Named
// references go through the override table first; anything left must resolve
// to a component in the document.
func mapFieldType(fieldName string, s *spec.Schema, doc *spec.Specification) (FieldType, error) {
	switch node := s.Inner.(type) {
	case spec.SchemaRef:
		name := node.Name()
		if ft, ok := typeOverrides[name]; ok {
			return ft, nil
		}
		if _, ok := doc.Components.Schemas[name]; !ok {
			return FieldType{}, fmt.Errorf("field %q references unknown component %s", fieldName, name)
		}
		return FieldType{GoType: typeName(name)}, nil
	case spec.SchemaString:
		if isBase64Blob(&node) {
			return FieldType{GoType: "codec.Base64Bytes", Codec: CodecBase64Blob}, nil
		}
		// Inline enums degrade to plain strings; only named enums become
		// dedicated types.
		return FieldType{GoType: "string"}, nil
	case spec.SchemaInteger:
		return FieldType{GoType: "uint64"}, nil
	case spec.SchemaBoolean:
		return FieldType{GoType: "bool"}, nil
	case spec.SchemaArray:
		if node.Items == nil {
			return FieldType{}, fmt.Errorf("field %q is an array without items", fieldName)
		}
		item, err := mapFieldType(fieldName, node.Items, doc)
		if err != nil {
			return FieldType{}, err
		}
		return FieldType{GoType: "[]" + item.GoType, Codec: item.Codec}, nil
	case spec.SchemaObject, spec.SchemaAllOf, spec.SchemaOneOf:
		return FieldType{}, fmt.Errorf("field %q uses an anonymous composite schema; hoist it into components", fieldName)
	default:
		return FieldType{}, fmt.Errorf("field %q has unsupported schema node %T", fieldName, s.Inner)
	}
}
