package gen

// FlattenOption controls which referenced fragments are inlined into the
// referencing type instead of kept as an embedded field.
type FlattenOption struct {
	All      bool
	Selected []string
}

func (f FlattenOption) Allows(name string) bool {
	if f.All {
		return true
	}
	for _, s := range f.Selected {
		if s == name {
			return true
		}
	}
	return false
}

// FixedFieldSpec pins a field of a generated type to a constant wire value.
// Value is Go source text and is pasted verbatim into the generated encoder.
type FixedFieldSpec struct {
	TypeName  string
	FieldName string
	Value     string
}

// SharedFieldSpec marks a field whose value is held behind a pointer so large
// payloads can be reused across requests without copying.
type SharedFieldSpec struct {
	TypeName  string
	FieldName string
}

// GenerationProfile carries the per-release knob settings: what gets
// flattened, what is skipped, and which fields are fixed or shared.
type GenerationProfile struct {
	Version      SpecVersion
	Flatten      FlattenOption
	Ignored      []string
	FixedFields  []FixedFieldSpec
	SharedFields []SharedFieldSpec
}

func (p GenerationProfile) IsIgnored(name string) bool {
	for _, s := range p.Ignored {
		if s == name {
			return true
		}
	}
	return false
}

func (p GenerationProfile) FixedValue(typeName, fieldName string) (string, bool) {
	for _, f := range p.FixedFields {
		if f.TypeName == typeName && f.FieldName == fieldName {
			return f.Value, true
		}
	}
	return "", false
}

func (p GenerationProfile) IsShared(typeName, fieldName string) bool {
	for _, f := range p.SharedFields {
		if f.TypeName == typeName && f.FieldName == fieldName {
			return true
		}
	}
	return false
}

// flattenExempt lists schemas that are always emitted as standalone types
// even when every reference to them is a flattening one.
var flattenExempt = []string{
	"FUNCTION_CALL",
	"PENDING_STATE_UPDATE",
}

func isFlattenExempt(name string) bool {
	for _, s := range flattenExempt {
		if s == name {
			return true
		}
	}
	return false
}

var flattenSelected021 = []string{
	"BLOCK_BODY_WITH_TXS",
	"BLOCK_BODY_WITH_TX_HASHES",
	"FUNCTION_CALL",
	"EVENT",
	"TYPED_PARAMETER",
	"BLOCK_HEADER",
	"BROADCASTED_TXN_COMMON_PROPERTIES",
	"DEPLOY_ACCOUNT_TXN_PROPERTIES",
	"DEPLOY_TXN_PROPERTIES",
	"EVENT_CONTENT",
	"PENDING_COMMON_RECEIPT_PROPERTIES",
	"COMMON_TXN_PROPERTIES",
	"COMMON_RECEIPT_PROPERTIES",
}

// ProfileForVersion returns the knob settings frozen for a release. The
// tables grow monotonically across releases except where a release reshaped
// a type family outright.
func ProfileForVersion(v SpecVersion) GenerationProfile {
	switch v {
	case SpecV010:
		return GenerationProfile{
			Version: SpecV010,
			Flatten: FlattenOption{Selected: []string{
				"BLOCK_BODY_WITH_TXS",
				"BLOCK_BODY_WITH_TX_HASHES",
			}},
		}
	case SpecV021:
		return GenerationProfile{
			Version: SpecV021,
			Flatten: FlattenOption{Selected: flattenSelected021},
			FixedFields: []FixedFieldSpec{
				{"InvokeTransactionV0", "type", `"INVOKE"`},
				{"InvokeTransactionV0", "version", `0`},
				{"InvokeTransactionV1", "type", `"INVOKE"`},
				{"InvokeTransactionV1", "version", `1`},
				{"DeclareTransaction", "type", `"DECLARE"`},
				{"InvokeTransactionReceipt", "type", `"INVOKE"`},
				{"PendingInvokeTransactionReceipt", "type", `"INVOKE"`},
				{"BroadcastedDeclareTransactionV1", "type", `"DECLARE"`},
				{"BroadcastedDeclareTransactionV1", "version", `1`},
			},
			SharedFields: []SharedFieldSpec{
				{"BroadcastedDeclareTransactionV1", "contract_class"},
			},
		}
	case SpecV030:
		return GenerationProfile{
			Version: SpecV030,
			Flatten: FlattenOption{Selected: append(append([]string{}, flattenSelected021...),
				"PENDING_STATE_UPDATE",
				"DECLARE_TXN_V1",
			)},
			FixedFields: []FixedFieldSpec{
				{"InvokeTransactionV0", "type", `"INVOKE"`},
				{"InvokeTransactionV0", "version", `0`},
				{"InvokeTransactionV1", "type", `"INVOKE"`},
				{"InvokeTransactionV1", "version", `1`},
				{"DeclareTransactionV1", "type", `"DECLARE"`},
				{"DeclareTransactionV1", "version", `1`},
				{"DeclareTransactionV2", "type", `"DECLARE"`},
				{"DeclareTransactionV2", "version", `2`},
				{"InvokeTransactionReceipt", "type", `"INVOKE"`},
				{"BroadcastedDeclareTransactionV1", "type", `"DECLARE"`},
				{"BroadcastedDeclareTransactionV1", "version", `1`},
			},
			SharedFields: []SharedFieldSpec{
				{"BroadcastedDeclareTransactionV1", "contract_class"},
			},
		}
	default:
		return GenerationProfile{Version: v}
	}
}
