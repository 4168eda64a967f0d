package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeTokenName(t *testing.T) {
	literal, err := EncodeTokenName("PULSE")
	require.NoError(t, err)
	require.Equal(t, "297750254928u128", literal)

	name, err := DecodeTokenName(literal)
	require.NoError(t, err)
	require.Equal(t, "PULSE", name)
}

func TestEncodeTokenNameBounds(t *testing.T) {
	literal, err := EncodeTokenName("")
	require.NoError(t, err)
	require.Equal(t, "0u128", literal)

	literal, err = EncodeTokenName("AleoPulse Token!")
	require.NoError(t, err)
	name, err := DecodeTokenName(literal)
	require.NoError(t, err)
	require.Equal(t, "AleoPulse Token!", name)

	_, err = EncodeTokenName("AleoPulse Token!!")
	var encErr *EncodeError
	require.ErrorAs(t, err, &encErr)
}

func TestDecodeTokenNameErrors(t *testing.T) {
	_, err := DecodeTokenName("297750254928u64")
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
}
