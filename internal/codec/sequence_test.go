package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeTextToFieldSequence(t *testing.T) {
	got, err := EncodeTextToFieldSequence(strings.Repeat("x", 31)+"yz", 4)
	require.NoError(t, err)
	require.Equal(t, []string{
		"212853105215654770999211369501264536494981589458898095660767617661605017720field",
		"31098field",
		"0field",
		"0field",
	}, got)
}

func TestEncodeTextToFieldSequenceEmpty(t *testing.T) {
	got, err := EncodeTextToFieldSequence("", 3)
	require.NoError(t, err)
	require.Equal(t, []string{"0field", "0field", "0field"}, got)
}

func TestFieldSequenceRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"short question",
		strings.Repeat("a", 31),
		strings.Repeat("b", 32),
		strings.Repeat("c", 62),
		"Which treasury allocation should the DAO approve for the next quarter?",
		strings.Repeat("d", 4*FieldBytes),
	}
	for _, input := range inputs {
		literals, err := EncodeTextToFieldSequence(input, 4)
		require.NoError(t, err)
		require.Len(t, literals, 4)

		decoded, err := DecodeFieldSequenceToText(literals)
		require.NoError(t, err)
		require.Equal(t, input, decoded)
	}
}

func TestFieldSequenceOverflow(t *testing.T) {
	text := strings.Repeat("e", 4*FieldBytes+1)

	_, err := EncodeTextToFieldSequence(text, 4)
	var encErr *EncodeError
	require.ErrorAs(t, err, &encErr)

	literals, err := Codec{Policy: Truncate}.EncodeTextSequence(text, 4)
	require.NoError(t, err)
	decoded, err := DecodeFieldSequenceToText(literals)
	require.NoError(t, err)
	require.Equal(t, text[:4*FieldBytes], decoded)
}

func TestFieldSequenceInvalidSlots(t *testing.T) {
	_, err := EncodeTextToFieldSequence("abc", 0)
	var encErr *EncodeError
	require.ErrorAs(t, err, &encErr)
}

func TestDecodeFieldSequenceSkipsZeroSlots(t *testing.T) {
	decoded, err := DecodeFieldSequenceToText([]string{"0field", "65field", "0field", "66field"})
	require.NoError(t, err)
	require.Equal(t, "AB", decoded)
}

func TestDecodeFieldSequenceLosesNul(t *testing.T) {
	literals, err := EncodeTextToFieldSequence(strings.Repeat("\x00", 31)+"ok", 2)
	require.NoError(t, err)
	require.Equal(t, "0field", literals[0])

	decoded, err := DecodeFieldSequenceToText(literals)
	require.NoError(t, err)
	require.Equal(t, "ok", decoded)
}

func TestDecodeFieldSequenceBadSlot(t *testing.T) {
	_, err := DecodeFieldSequenceToText([]string{"65field", "65u8"})
	require.ErrorContains(t, err, "slot 1")
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
}
