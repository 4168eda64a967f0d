// Package codec converts between application values and the literal strings
// accepted and returned by Aleo programs.
package codec

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

// FieldBytes is the number of text bytes packed into one field element.
const FieldBytes = 31

const fieldSuffix = "field"

// FieldModulus is the order of the Aleo base field. Field literals must be below it.
var FieldModulus = uint256.MustFromDecimal("8444461749428370424248824938781546531375899335154063827935233455917409239041")

// OverflowPolicy selects what happens to text that does not fit its field capacity.
type OverflowPolicy int

const (
	// Truncate keeps the leading bytes that fit and drops the rest.
	Truncate OverflowPolicy = iota
	// Reject fails with an *EncodeError.
	Reject
)

// ParsePolicy maps a config string to an OverflowPolicy.
func ParsePolicy(name string) (OverflowPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "truncate":
		return Truncate, nil
	case "reject", "error":
		return Reject, nil
	default:
		return Truncate, fmt.Errorf("unknown overflow policy: %s", name)
	}
}

func (p OverflowPolicy) String() string {
	if p == Reject {
		return "reject"
	}
	return "truncate"
}

// Codec packs text into field literals under an explicit overflow policy.
// The zero value truncates.
type Codec struct {
	Policy OverflowPolicy
}

// EncodeText packs up to FieldBytes leading UTF-8 bytes of text into a field literal.
func (c Codec) EncodeText(text string) (string, error) {
	data := []byte(text)
	if len(data) > FieldBytes {
		if c.Policy == Reject {
			return "", &EncodeError{
				Op:     "field",
				Reason: fmt.Sprintf("text is %d bytes, capacity is %d", len(data), FieldBytes),
			}
		}
		data = data[:FieldBytes]
	}
	return packField(data), nil
}

// EncodeTextToField packs text into a single field literal, silently truncating
// anything past FieldBytes bytes. Empty text encodes to "0field".
func EncodeTextToField(text string) string {
	literal, _ := Codec{Policy: Truncate}.EncodeText(text)
	return literal
}

// DecodeFieldToText unpacks a field literal into text. "0field" decodes to "".
func DecodeFieldToText(literal string) (string, error) {
	value, err := parseField(literal)
	if err != nil {
		return "", err
	}
	return string(value.Bytes()), nil
}

func packField(data []byte) string {
	value := new(uint256.Int).SetBytes(data)
	return value.Dec() + fieldSuffix
}

func parseField(literal string) (*uint256.Int, error) {
	trimmed := strings.TrimSpace(literal)
	body, ok := strings.CutSuffix(trimmed, fieldSuffix)
	if !ok {
		return nil, &DecodeError{Literal: literal, Reason: "missing field suffix"}
	}
	if !isDigits(body) {
		return nil, &DecodeError{Literal: literal, Reason: "body is not a non-negative integer"}
	}
	if hasLeadingZero(body) {
		return nil, &DecodeError{Literal: literal, Reason: "leading zeros are not canonical"}
	}
	value, err := uint256.FromDecimal(body)
	if err != nil {
		return nil, &DecodeError{Literal: literal, Reason: err.Error()}
	}
	if !value.Lt(FieldModulus) {
		return nil, &DecodeError{Literal: literal, Reason: "value exceeds field modulus"}
	}
	return value, nil
}

func hasLeadingZero(digits string) bool {
	return len(digits) > 1 && digits[0] == '0'
}

func isDigits(input string) bool {
	for _, r := range input {
		if r < '0' || r > '9' {
			return false
		}
	}
	return input != ""
}
