package spec

import (
	"embed"
	"fmt"
)

//go:embed specs
var specFS embed.FS

// EmbeddedPair returns the raw core and write-operations documents bundled
// for a spec version ("0.1.0", "0.2.1", "0.3.0").
func EmbeddedPair(version string) (core, write []byte, err error) {
	core, err = specFS.ReadFile(fmt.Sprintf("specs/%s/starknet_api_openrpc.json", version))
	if err != nil {
		return nil, nil, fmt.Errorf("no embedded core spec for version %s: %w", version, err)
	}

	write, err = specFS.ReadFile(fmt.Sprintf("specs/%s/starknet_write_api.json", version))
	if err != nil {
		return nil, nil, fmt.Errorf("no embedded write spec for version %s: %w", version, err)
	}

	return core, write, nil
}
