package codec

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

// TokenNameBytes is the capacity of a token-registry name or symbol.
const TokenNameBytes = 16

// EncodeTokenName packs text into a u128 literal using the token registry's
// little-endian byte order, so "PULSE" becomes "297750254928u128".
func EncodeTokenName(text string) (string, error) {
	data := []byte(text)
	if len(data) > TokenNameBytes {
		return "", &EncodeError{
			Op:     "token name",
			Reason: fmt.Sprintf("name is %d bytes, capacity is %d", len(data), TokenNameBytes),
		}
	}
	reversed := make([]byte, len(data))
	for i, b := range data {
		reversed[len(data)-1-i] = b
	}
	return new(uint256.Int).SetBytes(reversed).Dec() + string(TypeU128), nil
}

// DecodeTokenName unpacks a little-endian u128 token name literal.
func DecodeTokenName(literal string) (string, error) {
	value, err := DecodeTypedLiteral(literal, TypeU128)
	if err != nil {
		return "", err
	}
	be := value.Int.Bytes()
	out := make([]byte, len(be))
	for i, b := range be {
		out[len(be)-1-i] = b
	}
	return strings.TrimRight(string(out), "\x00"), nil
}
