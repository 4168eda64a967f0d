package codec

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/holiman/uint256"
)

// Type is an Aleo literal type tag.
type Type string

const (
	TypeU8      Type = "u8"
	TypeU16     Type = "u16"
	TypeU32     Type = "u32"
	TypeU64     Type = "u64"
	TypeU128    Type = "u128"
	TypeBool    Type = "bool"
	TypeField   Type = "field"
	TypeAddress Type = "address"
)

type typeSpec struct {
	suffix string
	bits   int
}

// bits == 0 marks a non-integer type; field is bounded by FieldModulus instead.
var typeTable = map[Type]typeSpec{
	TypeU8:      {suffix: "u8", bits: 8},
	TypeU16:     {suffix: "u16", bits: 16},
	TypeU32:     {suffix: "u32", bits: 32},
	TypeU64:     {suffix: "u64", bits: 64},
	TypeU128:    {suffix: "u128", bits: 128},
	TypeField:   {suffix: "field"},
	TypeBool:    {},
	TypeAddress: {},
}

// ParseType resolves a type tag such as "u64".
func ParseType(name string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := typeTable[t]; !ok {
		return "", fmt.Errorf("unsupported literal type: %s", name)
	}
	return t, nil
}

// IsInteger reports whether t carries an unsigned integer or field value.
func (t Type) IsInteger() bool {
	spec, ok := typeTable[t]
	return ok && (spec.bits > 0 || t == TypeField)
}

// Value is a decoded typed literal.
type Value struct {
	Type    Type
	Int     *uint256.Int
	Bool    bool
	Address string
}

// Uint builds an integer or field Value from a uint64.
func Uint(t Type, v uint64) Value {
	return Value{Type: t, Int: uint256.NewInt(v)}
}

// Bool builds a bool Value.
func Bool(b bool) Value {
	return Value{Type: TypeBool, Bool: b}
}

// Address builds an address Value.
func Address(addr string) Value {
	return Value{Type: TypeAddress, Address: addr}
}

// BigInt returns the integer payload as a *big.Int, or nil for non-integer values.
func (v Value) BigInt() *big.Int {
	if v.Int == nil {
		return nil
	}
	return v.Int.ToBig()
}

// Equal reports whether two values carry the same type and payload.
func (v Value) Equal(o Value) bool {
	if v.Type != o.Type {
		return false
	}
	switch {
	case v.Type == TypeBool:
		return v.Bool == o.Bool
	case v.Type == TypeAddress:
		return v.Address == o.Address
	case v.Int == nil || o.Int == nil:
		return v.Int == o.Int
	default:
		return v.Int.Eq(o.Int)
	}
}

// Encode formats v as a literal, checking it against its type's range.
func (v Value) Encode() (string, error) {
	spec, ok := typeTable[v.Type]
	if !ok {
		return "", &EncodeError{Op: "literal", Reason: fmt.Sprintf("unsupported type %q", v.Type)}
	}

	switch v.Type {
	case TypeBool:
		if v.Bool {
			return "true", nil
		}
		return "false", nil
	case TypeAddress:
		if err := ValidateAddress(v.Address); err != nil {
			return "", &EncodeError{Op: "address", Reason: err.Error()}
		}
		return v.Address, nil
	}

	if v.Int == nil {
		return "", &EncodeError{Op: "literal", Reason: "missing integer value"}
	}
	if err := checkRange(v.Type, spec, v.Int); err != nil {
		return "", err
	}
	return v.Int.Dec() + spec.suffix, nil
}

// EncodeTypedLiteral formats value as a literal of type t. Integer types accept
// uint8..uint64, non-negative int, *big.Int, *uint256.Int, or a decimal string;
// bool accepts bool; address accepts string.
func EncodeTypedLiteral(value any, t Type) (string, error) {
	v, err := toValue(value, t)
	if err != nil {
		return "", err
	}
	return v.Encode()
}

// DecodeTypedLiteral parses literal as a value of type t. Visibility suffixes
// (".public", ".private") are ignored.
func DecodeTypedLiteral(literal string, t Type) (Value, error) {
	spec, ok := typeTable[t]
	if !ok {
		return Value{}, &DecodeError{Literal: literal, Reason: fmt.Sprintf("unsupported type %q", t)}
	}
	trimmed := stripVisibility(strings.TrimSpace(literal))

	switch t {
	case TypeBool:
		switch trimmed {
		case "true":
			return Bool(true), nil
		case "false":
			return Bool(false), nil
		default:
			return Value{}, &FormatError{Type: t, Literal: literal, Reason: "expected true or false"}
		}
	case TypeAddress:
		if err := ValidateAddress(trimmed); err != nil {
			return Value{}, &FormatError{Type: t, Literal: literal, Reason: err.Error()}
		}
		return Address(trimmed), nil
	}

	body, ok := strings.CutSuffix(trimmed, spec.suffix)
	if !ok {
		return Value{}, &FormatError{Type: t, Literal: literal, Reason: "missing " + spec.suffix + " suffix"}
	}
	if !isDigits(body) {
		return Value{}, &FormatError{Type: t, Literal: literal, Reason: "body is not a non-negative integer"}
	}
	if hasLeadingZero(body) {
		return Value{}, &FormatError{Type: t, Literal: literal, Reason: "leading zeros are not canonical"}
	}
	n, err := uint256.FromDecimal(body)
	if err != nil {
		return Value{}, &RangeError{Type: t, Value: body}
	}
	if err := checkRange(t, spec, n); err != nil {
		return Value{}, err
	}
	return Value{Type: t, Int: n}, nil
}

func checkRange(t Type, spec typeSpec, n *uint256.Int) error {
	if t == TypeField {
		if !n.Lt(FieldModulus) {
			return &RangeError{Type: t, Value: n.Dec()}
		}
		return nil
	}
	if n.BitLen() > spec.bits {
		return &RangeError{Type: t, Value: n.Dec()}
	}
	return nil
}

func toValue(value any, t Type) (Value, error) {
	if _, ok := typeTable[t]; !ok {
		return Value{}, &EncodeError{Op: "literal", Reason: fmt.Sprintf("unsupported type %q", t)}
	}

	switch t {
	case TypeBool:
		b, ok := value.(bool)
		if !ok {
			return Value{}, &EncodeError{Op: "literal", Reason: fmt.Sprintf("bool expects bool, got %T", value)}
		}
		return Bool(b), nil
	case TypeAddress:
		s, ok := value.(string)
		if !ok {
			return Value{}, &EncodeError{Op: "literal", Reason: fmt.Sprintf("address expects string, got %T", value)}
		}
		return Address(s), nil
	}

	switch typed := value.(type) {
	case uint8:
		return Uint(t, uint64(typed)), nil
	case uint16:
		return Uint(t, uint64(typed)), nil
	case uint32:
		return Uint(t, uint64(typed)), nil
	case uint64:
		return Uint(t, typed), nil
	case uint:
		return Uint(t, uint64(typed)), nil
	case int:
		if typed < 0 {
			return Value{}, &RangeError{Type: t, Value: fmt.Sprintf("%d", typed)}
		}
		return Uint(t, uint64(typed)), nil
	case int64:
		if typed < 0 {
			return Value{}, &RangeError{Type: t, Value: fmt.Sprintf("%d", typed)}
		}
		return Uint(t, uint64(typed)), nil
	case *big.Int:
		if typed == nil {
			return Value{}, &EncodeError{Op: "literal", Reason: "nil integer"}
		}
		if typed.Sign() < 0 {
			return Value{}, &RangeError{Type: t, Value: typed.String()}
		}
		n, overflow := uint256.FromBig(typed)
		if overflow {
			return Value{}, &RangeError{Type: t, Value: typed.String()}
		}
		return Value{Type: t, Int: n}, nil
	case *uint256.Int:
		if typed == nil {
			return Value{}, &EncodeError{Op: "literal", Reason: "nil integer"}
		}
		return Value{Type: t, Int: new(uint256.Int).Set(typed)}, nil
	case string:
		body := strings.TrimSpace(typed)
		if !isDigits(body) {
			return Value{}, &EncodeError{Op: "literal", Reason: fmt.Sprintf("%q is not a non-negative integer", typed)}
		}
		n, err := uint256.FromDecimal(body)
		if err != nil {
			return Value{}, &RangeError{Type: t, Value: body}
		}
		return Value{Type: t, Int: n}, nil
	default:
		return Value{}, &EncodeError{Op: "literal", Reason: fmt.Sprintf("%s expects an unsigned integer, got %T", t, value)}
	}
}

func stripVisibility(literal string) string {
	for _, suffix := range []string{".public", ".private", ".constant"} {
		if trimmed, ok := strings.CutSuffix(literal, suffix); ok {
			return trimmed
		}
	}
	return literal
}
