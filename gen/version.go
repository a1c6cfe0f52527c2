// Package gen turns parsed specification documents into Go source: it
// decides which components become types, how composed schemas collapse into
// flat structs, and what wire form each definition carries.
package gen

import (
	"fmt"
	"strings"
)

// SpecVersion identifies one of the frozen specification releases bundled
// with the generator.
type SpecVersion int

const (
	SpecV010 SpecVersion = iota
	SpecV021
	SpecV030
)

// AllSpecVersions lists the supported releases in ascending order.
var AllSpecVersions = []SpecVersion{SpecV010, SpecV021, SpecV030}

func ParseSpecVersion(raw string) (SpecVersion, error) {
	trimmed := strings.TrimPrefix(raw, "v")
	switch trimmed {
	case "0.1.0":
		return SpecV010, nil
	case "0.2.1":
		return SpecV021, nil
	case "0.3.0":
		return SpecV030, nil
	default:
		return 0, fmt.Errorf("unknown spec version: %s", raw)
	}
}

func (v SpecVersion) String() string {
	switch v {
	case SpecV010:
		return "0.1.0"
	case SpecV021:
		return "0.2.1"
	case SpecV030:
		return "0.3.0"
	default:
		return fmt.Sprintf("SpecVersion(%d)", int(v))
	}
}
