package gen

import (
	"regexp"
	"strings"
	"unicode"
)

// typeRenames maps mechanically-derived type names to the names the emitted
// package actually uses. Applied after the Txn expansion.
var typeRenames = map[string]string{
	"CommonTransactionProperties":        "TransactionMeta",
	"CommonReceiptProperties":            "TransactionReceiptMeta",
	"PendingCommonReceiptProperties":     "PendingTransactionReceiptMeta",
	"InvokeTransactionReceiptProperties": "InvokeTransactionReceiptData",
	"SierraContractClass":                "FlattenedSierraClass",
	"LegacyContractClass":                "CompressedLegacyContractClass",
	"DeprecatedContractClass":            "CompressedLegacyContractClass",
	"ContractAbiEntry":                   "LegacyContractAbiEntry",
	"FunctionAbiEntry":                   "LegacyFunctionAbiEntry",
	"EventAbiEntry":                      "LegacyEventAbiEntry",
	"StructAbiEntry":                     "LegacyStructAbiEntry",
	"FunctionAbiType":                    "LegacyFunctionAbiType",
	"EventAbiType":                       "LegacyEventAbiType",
	"StructAbiType":                      "LegacyStructAbiType",
	"StructMember":                       "LegacyStructMember",
	"TypedParameter":                     "LegacyTypedParameter",
	"DeprecatedEntryPointsByType":        "LegacyEntryPointsByType",
	"DeprecatedCairoEntryPoint":          "LegacyContractEntryPoint",
}

var allCapsPattern = regexp.MustCompile(`^[A-Z0-9_]+$`)

// toPascalCase converts a name to PascalCase. The conversion is a no-op on
// names that are already PascalCase, so it can be applied repeatedly.
func toPascalCase(name string) string {
	if name == "" {
		return name
	}
	if strings.Contains(name, "_") || allCapsPattern.MatchString(name) {
		segments := strings.Split(name, "_")
		var b strings.Builder
		for _, seg := range segments {
			if seg == "" {
				continue
			}
			seg = strings.ToLower(seg)
			runes := []rune(seg)
			runes[0] = unicode.ToUpper(runes[0])
			b.WriteString(string(runes))
		}
		return b.String()
	}

	runes := []rune(name)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// typeName derives the Go type name for a schema component.
func typeName(raw string) string {
	name := strings.ReplaceAll(toPascalCase(raw), "Txn", "Transaction")
	if renamed, ok := typeRenames[name]; ok {
		return renamed
	}
	return name
}

// toSnakeCase lowers a name to snake_case. ALL_CAPS names lower in place so
// acronym segments survive as-is.
func toSnakeCase(name string) string {
	if strings.Contains(name, "_") || allCapsPattern.MatchString(name) {
		return strings.ToLower(name)
	}

	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// goFieldName derives the exported Go struct field name for a property.
func goFieldName(raw string) string {
	return toPascalCase(toSnakeCase(raw))
}

// variantName derives the Go const suffix for an enum value.
func variantName(value string) string {
	return strings.ReplaceAll(toPascalCase(value), "Txn", "Transaction")
}

// requestTypeName derives the request type name for a method.
func requestTypeName(method string) string {
	stem := strings.TrimPrefix(method, "starknet_")
	return toPascalCase(toSnakeCase(stem)) + "Request"
}

var nounFixes = []struct {
	pattern *regexp.Regexp
	replace string
}{
	{regexp.MustCompile(`(^|[^./\w])[Ss]tark[Nn]et`), "${1}Starknet"},
	{regexp.MustCompile(`(^|[^./\w])[Ee]thereum`), "${1}Ethereum"},
	{regexp.MustCompile(`(^|[^\w])l1($|[^\w])`), "${1}L1${2}"},
	{regexp.MustCompile(`(^|[^\w])l2($|[^\w])`), "${1}L2${2}"},
	{regexp.MustCompile(`(^|[^\w])unix($|[^\w])`), "${1}Unix${2}"},
	// The domain name stays lowercase even at sentence start.
	{regexp.MustCompile(`Starknet\.io`), "starknet.io"},
}

// toSentenceCase capitalizes a description and restores the proper nouns
// that upstream documents tend to lowercase. Standalone docs additionally
// get a closing period.
func toSentenceCase(s string, forcePeriod bool) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}

	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	s = string(runes)

	for _, fix := range nounFixes {
		s = fix.pattern.ReplaceAllString(s, fix.replace)
	}

	if forcePeriod && !strings.HasSuffix(s, ".") {
		s += "."
	}
	return s
}

// wrapLines breaks text into lines of at most width characters, splitting on
// spaces only.
func wrapLines(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
			continue
		}
		current += " " + word
	}
	lines = append(lines, current)
	return lines
}
