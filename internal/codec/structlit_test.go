package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseStruct(t *testing.T) {
	literal := `{
  token_a: 1field,
  token_b: 2field,
  reserve_a: 1000000u128.public,
  reserve_b: 2500000u128,
  total_shares: 1580138u128,
  fee_bps: 30u16
}`
	members, err := ParseStruct(literal)
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"token_a":      "1field",
		"token_b":      "2field",
		"reserve_a":    "1000000u128",
		"reserve_b":    "2500000u128",
		"total_shares": "1580138u128",
		"fee_bps":      "30u16",
	}, members)
}

func TestParseStructNested(t *testing.T) {
	members, err := ParseStruct("{ owner: " + testAddress + ", meta: { a: 1u8, b: 2u8 }, tags: [1u8, 2u8], }")
	require.NoError(t, err)
	require.Equal(t, testAddress, members["owner"])
	require.Equal(t, "{ a: 1u8, b: 2u8 }", members["meta"])
	require.Equal(t, "[1u8, 2u8]", members["tags"])
}

func TestParseStructEmpty(t *testing.T) {
	members, err := ParseStruct("{}")
	require.NoError(t, err)
	require.Empty(t, members)
}

func TestParseStructErrors(t *testing.T) {
	for _, literal := range []string{
		"",
		"1u8",
		"{ a 1u8 }",
		"{ a: 1u8, a: 2u8 }",
		"{ a: { b: 1u8 }",
		"{ a: 1u8 ] }",
		"{ a: 1u8,, b: 2u8 }",
		"{ : 1u8 }",
	} {
		_, err := ParseStruct(literal)
		var decErr *DecodeError
		require.ErrorAsf(t, err, &decErr, "literal %q", literal)
	}
}
