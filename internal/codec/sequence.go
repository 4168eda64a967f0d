package codec

import (
	"fmt"
)

// DefaultSlots is the slot count the poll program uses for long text.
const DefaultSlots = 4

// EncodeTextSequence splits text across slots field literals of up to FieldBytes
// bytes each. Unused trailing slots hold "0field".
func (c Codec) EncodeTextSequence(text string, slots int) ([]string, error) {
	if slots <= 0 {
		return nil, &EncodeError{Op: "field sequence", Reason: "slot count must be positive"}
	}

	data := []byte(text)
	capacity := slots * FieldBytes
	if len(data) > capacity {
		if c.Policy == Reject {
			return nil, &EncodeError{
				Op:     "field sequence",
				Reason: fmt.Sprintf("text is %d bytes, capacity is %d", len(data), capacity),
			}
		}
		data = data[:capacity]
	}

	out := make([]string, slots)
	for i := range out {
		start := i * FieldBytes
		if start >= len(data) {
			out[i] = "0" + fieldSuffix
			continue
		}
		end := start + FieldBytes
		if end > len(data) {
			end = len(data)
		}
		out[i] = packField(data[start:end])
	}
	return out, nil
}

// EncodeTextToFieldSequence encodes text into slots field literals and fails
// with an *EncodeError when text exceeds slots*FieldBytes bytes.
func EncodeTextToFieldSequence(text string, slots int) ([]string, error) {
	return Codec{Policy: Reject}.EncodeTextSequence(text, slots)
}

// DecodeFieldSequenceToText concatenates the bytes of every slot in order.
// A zero slot contributes no bytes, so NUL bytes in the original text are not
// recoverable.
func DecodeFieldSequenceToText(literals []string) (string, error) {
	buf := make([]byte, 0, len(literals)*FieldBytes)
	for i, literal := range literals {
		value, err := parseField(literal)
		if err != nil {
			return "", fmt.Errorf("slot %d: %w", i, err)
		}
		if value.IsZero() {
			continue
		}
		buf = append(buf, value.Bytes()...)
	}
	return string(buf), nil
}
