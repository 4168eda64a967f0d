package codec

import "fmt"

// EncodeError reports input that cannot be represented under the active policy.
type EncodeError struct {
	Op     string
	Reason string
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s: %s", e.Op, e.Reason)
}

// DecodeError reports a malformed literal string.
type DecodeError struct {
	Literal string
	Reason  string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q: %s", e.Literal, e.Reason)
}

// RangeError reports a numeric value outside a type's bit width.
type RangeError struct {
	Type  Type
	Value string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("value %s out of range for %s", e.Value, e.Type)
}

// FormatError reports a typed literal with a missing suffix or an invalid body.
// It unwraps to a *DecodeError so callers can match either.
type FormatError struct {
	Type    Type
	Literal string
	Reason  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed %s literal %q: %s", e.Type, e.Literal, e.Reason)
}

func (e *FormatError) Unwrap() error {
	return &DecodeError{Literal: e.Literal, Reason: e.Reason}
}
