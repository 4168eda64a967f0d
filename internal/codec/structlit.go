package codec

import (
	"errors"
	"strings"
)

// ParseStruct splits a struct literal such as "{ reserve_a: 10u128, fee_bps: 30u16 }"
// into member names and their literal values. Nested structs and arrays are
// returned as their raw text; visibility suffixes are stripped.
func ParseStruct(literal string) (map[string]string, error) {
	trimmed := strings.TrimSpace(literal)
	if !strings.HasPrefix(trimmed, "{") || !strings.HasSuffix(trimmed, "}") {
		return nil, &DecodeError{Literal: literal, Reason: "struct literal must be enclosed in braces"}
	}
	body := strings.TrimSpace(trimmed[1 : len(trimmed)-1])

	members := make(map[string]string)
	if body == "" {
		return members, nil
	}

	parts, err := splitMembers(body)
	if err != nil {
		return nil, &DecodeError{Literal: literal, Reason: err.Error()}
	}
	for _, part := range parts {
		name, value, ok := strings.Cut(part, ":")
		if !ok {
			return nil, &DecodeError{Literal: literal, Reason: "member " + strings.TrimSpace(part) + " has no value"}
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if name == "" || value == "" {
			return nil, &DecodeError{Literal: literal, Reason: "empty member name or value"}
		}
		if _, dup := members[name]; dup {
			return nil, &DecodeError{Literal: literal, Reason: "duplicate member " + name}
		}
		members[name] = stripVisibility(value)
	}
	return members, nil
}

func splitMembers(body string) ([]string, error) {
	var parts []string
	depth := 0
	start := 0
	for i, r := range body {
		switch r {
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth < 0 {
				return nil, errors.New("unbalanced closing bracket")
			}
		case ',':
			if depth == 0 {
				parts = append(parts, body[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, errors.New("unbalanced opening bracket")
	}
	if tail := strings.TrimSpace(body[start:]); tail != "" {
		parts = append(parts, body[start:])
	}
	return parts, nil
}
