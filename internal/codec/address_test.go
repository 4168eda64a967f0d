package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShortenAddress(t *testing.T) {
	require.Equal(t, "aleo1q...ctexzp", ShortenAddress(testAddress, 6))
	require.Equal(t, "aleo...exzp", ShortenAddress(testAddress, 4))
	require.Equal(t, "short", ShortenAddress("short", 6))
	require.Equal(t, "", ShortenAddress("", 6))
	require.Equal(t, "abcdefghijklmno", ShortenAddress("abcdefghijklmno", 6))
	require.Equal(t, "abcdef...klmnop", ShortenAddress("abcdefghijklmnop", 6))
}

func TestValidateAddress(t *testing.T) {
	require.NoError(t, ValidateAddress(testAddress))
	require.Error(t, ValidateAddress(""))
	require.Error(t, ValidateAddress("aleo1qqqsyqcyq5rqwzqfpg9scrgwpugpzysnzs23v9ccrydpk8qarc0sctexzq"))
	require.Error(t, ValidateAddress("bc1qqqsyqcyq5rqwzqfpg9scrgwpugpzysnzs23v9ccrydpk8qarc0sctexzp"))
}
