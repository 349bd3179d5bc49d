package util

import (
	"fmt"

	"github.com/mr-tron/base58/base58"
)

// BaseEncode encodes bytes into base58.
func BaseEncode(value []byte) string {
	return base58.Encode(value)
}

// BaseEncodeString encodes a string into base58. Each character's code point is
// truncated to a single byte, so text outside Latin-1 does not round trip.
// Characters above U+FFFF yield one byte, not one per UTF-16 surrogate.
func BaseEncodeString(value string) string {
	runes := []rune(value)
	bytes := make([]byte, len(runes))
	for i, r := range runes {
		bytes[i] = byte(r)
	}
	return base58.Encode(bytes)
}

// BaseDecode decodes a base58 string into bytes.
func BaseDecode(value string) ([]byte, error) {
	if value == "" {
		return []byte{}, nil
	}
	bytes, err := base58.Decode(value)
	if err != nil {
		return nil, fmt.Errorf("decoding base58: %v", err)
	}
	return bytes, nil
}
