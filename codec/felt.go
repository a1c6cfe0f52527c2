package codec

import (
	"encoding/hex"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

// Felt is a Starknet field element: a 256-bit big-endian value constrained to
// the Stark field (the prime is just above 2^251, so the top byte never
// exceeds 0x08). On the wire it is a "0x"-prefixed hex string with leading
// zeros stripped.
type Felt [32]byte

func FeltFromHex(s string) (Felt, error) {
	var f Felt

	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return f, fmt.Errorf("felt value missing 0x prefix: %q", s)
	}

	digits := s[2:]
	if len(digits) == 0 || len(digits) > 64 {
		return f, fmt.Errorf("felt value has invalid length: %q", s)
	}
	if len(digits)%2 == 1 {
		digits = "0" + digits
	}

	raw, err := hex.DecodeString(digits)
	if err != nil {
		return f, fmt.Errorf("parsing felt value %q: %w", s, err)
	}

	copy(f[32-len(raw):], raw)
	if f[0] > 0x08 {
		return Felt{}, fmt.Errorf("felt value out of range: %q", s)
	}

	return f, nil
}

func FeltFromUint64(v uint64) Felt {
	var f Felt
	for i := 0; i < 8; i++ {
		f[31-i] = byte(v >> (8 * i))
	}
	return f
}

func (f Felt) Uint64() uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(f[31-i]) << (8 * i)
	}
	return v
}

// String renders the minimal hex form, "0x0" for zero.
func (f Felt) String() string {
	encoded := strings.TrimLeft(hex.EncodeToString(f[:]), "0")
	if encoded == "" {
		encoded = "0"
	}
	return "0x" + encoded
}

func (f Felt) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

func (f *Felt) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("parsing felt JSON: %w", err)
	}

	parsed, err := FeltFromHex(s)
	if err != nil {
		return err
	}

	*f = parsed
	return nil
}
