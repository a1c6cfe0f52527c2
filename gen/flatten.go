package gen

import (
	"sort"

	"github.com/dbejarano820/starknet-jsonrpc-codegen/spec"
)

// refScan accumulates how each component is referenced across the document's
// component schemas: from a flattening allOf position, from an object
// property, array item, oneOf variant, or non-flattened fragment, or both.
// Method signatures are deliberately outside the scan; components a method
// uses directly are covered by the exempt list instead.
type refScan struct {
	flattened map[string]bool
	normal    map[string]bool
}

func scanRefs(doc *spec.Specification, profile GenerationProfile) *refScan {
	scan := &refScan{
		flattened: map[string]bool{},
		normal:    map[string]bool{},
	}

	names := make([]string, 0, len(doc.Components.Schemas))
	for name := range doc.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s := doc.Components.Schemas[name]
		scan.visit(&s, profile)
	}

	return scan
}

func (r *refScan) visit(s *spec.Schema, profile GenerationProfile) {
	switch node := s.Inner.(type) {
	case spec.SchemaRef:
		r.normal[node.Name()] = true
	case spec.SchemaOneOf:
		for i := range node.Variants {
			r.visit(&node.Variants[i], profile)
		}
	case spec.SchemaAllOf:
		for i := range node.Fragments {
			if ref, ok := node.Fragments[i].Inner.(spec.SchemaRef); ok {
				if profile.Flatten.Allows(ref.Name()) {
					r.flattened[ref.Name()] = true
				} else {
					r.normal[ref.Name()] = true
				}
				continue
			}
			r.visit(&node.Fragments[i], profile)
		}
	case spec.SchemaObject:
		for i := range node.Properties {
			r.visit(&node.Properties[i].Schema, profile)
		}
	case spec.SchemaArray:
		if node.Items != nil {
			r.visit(node.Items, profile)
		}
	}
}

// flattenOnlySet returns the components that exist solely to be inlined into
// other types. They are skipped at emission since every field they define
// already lives inside each referencing type. Components on the exempt list
// are emitted regardless, since they double as standalone payloads.
func flattenOnlySet(doc *spec.Specification, profile GenerationProfile) map[string]bool {
	scan := scanRefs(doc, profile)

	out := map[string]bool{}
	for name := range scan.flattened {
		if scan.normal[name] || isFlattenExempt(name) {
			continue
		}
		out[name] = true
	}
	return out
}
