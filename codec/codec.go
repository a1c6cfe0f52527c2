// Package codec holds the wire-codec types referenced by generated Starknet
// JSON-RPC bindings: values whose JSON form differs from their natural Go
// representation (hex-encoded numbers and field elements, base64 byte blobs).
package codec

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// NumAsHex is a uint64 that travels as a "0x"-prefixed hex string.
type NumAsHex uint64

func (n NumAsHex) MarshalJSON() ([]byte, error) {
	return json.Marshal("0x" + strconv.FormatUint(uint64(n), 16))
}

func (n *NumAsHex) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("parsing hex number JSON: %w", err)
	}

	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return fmt.Errorf("hex number missing 0x prefix: %q", s)
	}

	v, err := strconv.ParseUint(s[2:], 16, 64)
	if err != nil {
		return fmt.Errorf("parsing hex number %q: %w", s, err)
	}

	*n = NumAsHex(v)
	return nil
}

// EthAddress is an L1 address: 20 bytes, hex-encoded with a fixed width.
type EthAddress [20]byte

func EthAddressFromHex(s string) (EthAddress, error) {
	var a EthAddress

	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return a, fmt.Errorf("eth address missing 0x prefix: %q", s)
	}
	if len(s) != 42 {
		return a, fmt.Errorf("eth address has invalid length: %q", s)
	}

	raw, err := hex.DecodeString(s[2:])
	if err != nil {
		return a, fmt.Errorf("parsing eth address %q: %w", s, err)
	}

	copy(a[:], raw)
	return a, nil
}

func (a EthAddress) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

func (a EthAddress) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *EthAddress) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("parsing eth address JSON: %w", err)
	}

	parsed, err := EthAddressFromHex(s)
	if err != nil {
		return err
	}

	*a = parsed
	return nil
}

// Base64Bytes is a byte blob that travels as a standard base64 string.
type Base64Bytes []byte

func (b Base64Bytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(base64.StdEncoding.EncodeToString(b))
}

func (b *Base64Bytes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("parsing base64 JSON: %w", err)
	}

	out, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return fmt.Errorf("parsing base64 payload: %w", err)
	}

	*b = Base64Bytes(out)
	return nil
}
