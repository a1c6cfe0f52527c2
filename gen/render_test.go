package gen

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderEmbedded(t *testing.T, v SpecVersion) string {
	t.Helper()

	res := resolveEmbedded(t, v)
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, res, RenderOptions{Package: "rpc"}))
	return buf.String()
}

func TestRenderHeader(t *testing.T) {
	out := renderEmbedded(t, SpecV030)

	assert.True(t, strings.HasPrefix(out, "// Code generated by rpcgen. DO NOT EDIT.\n"))
	assert.Contains(t, out, "// Spec version: 0.3.0\n")
	assert.Contains(t, out, "\npackage rpc\n")
}

func TestRenderImports(t *testing.T) {
	out := renderEmbedded(t, SpecV030)

	assert.Contains(t, out, "\t\"encoding/json\"\n")
	assert.Contains(t, out, "\t\"fmt\"\n")
	assert.Contains(t, out, "\t\""+codecImportPath+"\"\n")
}

func TestRenderNotImplementedRoster(t *testing.T) {
	out := renderEmbedded(t, SpecV030)

	assert.Contains(t, out, "//   - BlockId\n")
	assert.Contains(t, out, "//   - Transaction\n")
	assert.NotContains(t, out, "type BlockId ")
}

func TestRenderEnum(t *testing.T) {
	out := renderEmbedded(t, SpecV030)

	assert.Contains(t, out, "type BlockStatus string\n")
	assert.Contains(t, out, "\tBlockStatusAcceptedOnL2 BlockStatus = \"ACCEPTED_ON_L2\"\n")
	assert.Contains(t, out, "type BlockTag string\n")
	assert.Contains(t, out, "\tBlockTagLatest BlockTag = \"latest\"\n")
}

func TestRenderErrorEnum(t *testing.T) {
	out := renderEmbedded(t, SpecV030)

	assert.Contains(t, out, "type StarknetError int64\n")
	assert.Contains(t, out, "\tFailedToReceiveTransaction StarknetError = 1\n")
	assert.Contains(t, out, "\tClassAlreadyDeclared StarknetError = 51\n")
	assert.Contains(t, out, "func (e StarknetError) Error() string {\n")
	assert.Contains(t, out, "\t\treturn \"Failed to write transaction\"\n")
	assert.Contains(t, out, "unknown error code %d")
}

func TestRenderStructFields(t *testing.T) {
	out := renderEmbedded(t, SpecV030)

	assert.Contains(t, out, "type FunctionCall struct {\n")
	assert.Contains(t, out, "\tContractAddress codec.Felt `json:\"contract_address\"`\n")
	assert.Contains(t, out, "\tCalldata []codec.Felt `json:\"calldata\"`\n")

	// Optional scalar goes behind a pointer with omitempty.
	assert.Contains(t, out, "\tContinuationToken *string `json:\"continuation_token,omitempty\"`\n")

	// ALL-CAPS property names keep their wire spelling in the tag only.
	assert.Contains(t, out, "\tL1Handler []LegacyContractEntryPoint `json:\"L1_HANDLER\"`\n")
}

func TestRenderEmbeddedFragmentField(t *testing.T) {
	out := renderEmbedded(t, SpecV010)

	// 0.1.0 keeps the header type intact inside block types.
	assert.Contains(t, out, "type BlockHeader struct {\n")

	idx := strings.Index(out, "type BlockWithTxHashes struct {")
	require.GreaterOrEqual(t, idx, 0)
	body := out[idx:]
	body = body[:strings.Index(body, "}")]
	assert.Contains(t, body, "\tBlockHeader\n")
}

func TestRenderFixedFieldCodec(t *testing.T) {
	out := renderEmbedded(t, SpecV030)

	// The pinned field is absent from the struct body.
	idx := strings.Index(out, "type InvokeTransactionV0 struct {")
	require.GreaterOrEqual(t, idx, 0)
	body := out[idx:]
	body = body[:strings.Index(body, "}")]
	assert.NotContains(t, body, "`json:\"type\"`")

	// Encoder injects the constants.
	assert.Contains(t, out, "func (r *InvokeTransactionV0) MarshalJSON() ([]byte, error) {\n")
	assert.Contains(t, out, "\t\tType: \"INVOKE\",\n")
	assert.Contains(t, out, "\t\tVersion: 0,\n")

	// Decoder tolerates absence, rejects conflicts.
	assert.Contains(t, out, "\tif t.Type != nil && *t.Type != \"INVOKE\" {\n")
	assert.Contains(t, out, "invalid \\\"type\\\" value")
	assert.Contains(t, out, "\tif t.Version != nil && *t.Version != 0 {\n")
}

func TestRenderSharedField(t *testing.T) {
	out := renderEmbedded(t, SpecV030)

	idx := strings.Index(out, "type BroadcastedDeclareTransactionV1 struct {")
	require.GreaterOrEqual(t, idx, 0)
	body := out[idx:]
	body = body[:strings.Index(body, "}")]
	assert.Contains(t, body, "\tContractClass *CompressedLegacyContractClass `json:\"contract_class\"`\n")
}

func TestRenderPositionalRequest(t *testing.T) {
	out := renderEmbedded(t, SpecV030)

	assert.Contains(t, out, "type GetStorageAtRequest struct {\n")
	assert.Contains(t, out, "func (r *GetStorageAtRequest) MarshalJSON() ([]byte, error) {\n")
	assert.Contains(t, out, "\telements := make([]json.RawMessage, 0, 3)\n")
	assert.Contains(t, out, "\telement, err := json.Marshal(r.ContractAddress)\n")
	assert.Contains(t, out, "invalid sequence length: expected 3, got %d")
	assert.Contains(t, out, "\t\telement := elements[len(elements)-1]\n")
	assert.Contains(t, out, "\t\tvar field2 BlockId\n")
	assert.Contains(t, out, "failed to parse element: %w")
	assert.Contains(t, out, "expected params array or object")

	// Object-form fallback detects absent required params.
	assert.Contains(t, out, "\t\tContractAddress *codec.Felt `json:\"contract_address\"`\n")
	assert.Contains(t, out, "\tif object.ContractAddress == nil {\n")
	assert.Contains(t, out, `missing \"contract_address\" field`)
	assert.Contains(t, out, "\tr.ContractAddress = *object.ContractAddress\n")
}

func TestRenderUnitRequest(t *testing.T) {
	out := renderEmbedded(t, SpecV030)

	assert.Contains(t, out, "type ChainIdRequest struct{}\n")
	assert.Contains(t, out, "func (r *ChainIdRequest) MarshalJSON() ([]byte, error) {\n\treturn []byte(\"[]\"), nil\n}\n")
	assert.Contains(t, out, "invalid sequence length: expected 0, got %d")
}

func TestRenderRequestRef(t *testing.T) {
	out := renderEmbedded(t, SpecV030)

	assert.Contains(t, out, "type GetStorageAtRequestRef struct {\n")
	assert.Contains(t, out, "\tContractAddress *codec.Felt\n")
	assert.Contains(t, out, "\tBlockId *BlockId\n")
	assert.Contains(t, out, "func (r *GetStorageAtRequestRef) MarshalJSON() ([]byte, error) {\n")

	// Slices are already views; they stay bare in the ref struct.
	idx := strings.Index(out, "type AddInvokeTransactionRequestRef struct {")
	if idx >= 0 {
		body := out[idx:]
		body = body[:strings.Index(body, "}")]
		assert.NotContains(t, body, "*[]")
	}
}

func TestRenderCodecBlocksTrailing(t *testing.T) {
	// Every type declaration precedes every codec method.
	for _, v := range AllSpecVersions {
		out := renderEmbedded(t, v)
		lastDecl := strings.LastIndex(out, "\ntype ")
		firstCodec := strings.Index(out, ") MarshalJSON(")
		require.GreaterOrEqual(t, firstCodec, 0, v.String())
		assert.Less(t, lastDecl, firstCodec, v.String())
	}
}

func TestRenderIgnoredRoster(t *testing.T) {
	res := &Result{
		Version: SpecV030,
		Ignored: []string{"OldThing"},
	}
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, res, RenderOptions{Package: "rpc"}))

	out := buf.String()
	assert.Contains(t, out, "// Definitions intentionally omitted for this version:\n")
	assert.Contains(t, out, "//   - OldThing\n")
}

func TestRenderDeterministic(t *testing.T) {
	for _, v := range AllSpecVersions {
		first := renderEmbedded(t, v)
		for i := 0; i < 3; i++ {
			assert.Equal(t, first, renderEmbedded(t, v), v.String())
		}
	}
}

func TestRenderDocComments(t *testing.T) {
	out := renderEmbedded(t, SpecV030)

	// Descriptions are sentence-cased with proper nouns restored.
	assert.Contains(t, out, "// The Starknet identity of the sequencer submitting this block\n")
	assert.Contains(t, out, "// The target L1 address the message is sent to\n")

	// Type-level docs close with a period; field docs are left alone.
	assert.Contains(t, out, "// Function call information.\n")
}
