package gen

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbejarano820/starknet-jsonrpc-codegen/spec"
)

func schemaFrom(t *testing.T, doc string) *spec.Schema {
	t.Helper()
	var s spec.Schema
	require.NoError(t, json.Unmarshal([]byte(doc), &s))
	return &s
}

func docWithComponents(t *testing.T, names ...string) *spec.Specification {
	t.Helper()
	doc := &spec.Specification{}
	doc.Components.Schemas = map[string]spec.Schema{}
	for _, name := range names {
		doc.Components.Schemas[name] = *schemaFrom(t, `{"type": "string"}`)
	}
	return doc
}

func TestMapFieldTypeOverrides(t *testing.T) {
	doc := docWithComponents(t)

	cases := map[string]FieldType{
		"FELT":                             {GoType: "codec.Felt", Codec: CodecFeltHex},
		"ADDRESS":                          {GoType: "codec.Felt", Codec: CodecFeltHex},
		"BLOCK_NUMBER":                     {GoType: "uint64"},
		"NUM_AS_HEX":                       {GoType: "codec.NumAsHex", Codec: CodecNumHex},
		"ETH_ADDRESS":                      {GoType: "codec.EthAddress", Codec: CodecEthAddressHex},
		"SIGNATURE":                        {GoType: "[]codec.Felt", Codec: CodecFeltHex},
		"TXN_TYPE":                         {GoType: "string"},
		"CONTRACT_ABI":                     {GoType: "[]LegacyContractAbiEntry"},
		"CONTRACT_ENTRY_POINT_LIST":        {GoType: "[]ContractEntryPoint"},
		"LEGACY_CONTRACT_ENTRY_POINT_LIST": {GoType: "[]LegacyContractEntryPoint"},
	}
	for name, want := range cases {
		s := schemaFrom(t, `{"$ref": "#/components/schemas/`+name+`"}`)
		got, err := mapFieldType("f", s, doc)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}

func TestMapFieldTypeNamedRef(t *testing.T) {
	doc := docWithComponents(t, "BLOCK_HEADER")

	got, err := mapFieldType("header", schemaFrom(t, `{"$ref": "#/components/schemas/BLOCK_HEADER"}`), doc)
	require.NoError(t, err)
	assert.Equal(t, FieldType{GoType: "BlockHeader"}, got)
}

func TestMapFieldTypeMissingRef(t *testing.T) {
	doc := docWithComponents(t)

	_, err := mapFieldType("header", schemaFrom(t, `{"$ref": "#/components/schemas/NOWHERE"}`), doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOWHERE")
}

func TestMapFieldTypePrimitives(t *testing.T) {
	doc := docWithComponents(t)

	cases := map[string]string{
		`{"type": "string"}`:                              "string",
		`{"type": "string", "enum": ["a", "b"]}`:          "string",
		`{"type": "integer"}`:                             "uint64",
		`{"type": "boolean"}`:                             "bool",
		`{"type": "array", "items": {"type": "string"}}`:  "[]string",
		`{"type": "array", "items": {"$ref": "#/components/schemas/FELT"}}`: "[]codec.Felt",
	}
	for raw, want := range cases {
		got, err := mapFieldType("f", schemaFrom(t, raw), doc)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got.GoType, raw)
	}
}

func TestMapFieldTypeBase64Hint(t *testing.T) {
	doc := docWithComponents(t)

	s := schemaFrom(t, `{"type": "string", "description": "A base64 representation of the compressed program code"}`)
	got, err := mapFieldType("program", s, doc)
	require.NoError(t, err)
	assert.Equal(t, FieldType{GoType: "codec.Base64Bytes", Codec: CodecBase64Blob}, got)
}

func TestMapFieldTypeRejectsAnonymousComposite(t *testing.T) {
	doc := docWithComponents(t)

	for _, raw := range []string{
		`{"type": "object", "properties": {}}`,
		`{"oneOf": [{"type": "string"}]}`,
		`{"allOf": [{"type": "object", "properties": {}}]}`,
	} {
		_, err := mapFieldType("f", schemaFrom(t, raw), doc)
		require.Error(t, err, raw)
	}
}

func TestParseSpecVersion(t *testing.T) {
	for raw, want := range map[string]SpecVersion{
		"0.1.0":  SpecV010,
		"v0.2.1": SpecV021,
		"0.3.0":  SpecV030,
	} {
		got, err := ParseSpecVersion(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got)
	}

	_, err := ParseSpecVersion("0.4.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "0.4.0")
}
