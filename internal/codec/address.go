package codec

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

const (
	addressHRP        = "aleo"
	addressPayloadLen = 32
	defaultVisible    = 6
)

// ValidateAddress checks that addr is a bech32m "aleo1..." address with a
// 32-byte payload.
func ValidateAddress(addr string) error {
	hrp, data, version, err := bech32.DecodeGeneric(addr)
	if err != nil {
		return fmt.Errorf("invalid address: %w", err)
	}
	if hrp != addressHRP {
		return fmt.Errorf("invalid address prefix: %s", hrp)
	}
	if version != bech32.VersionM {
		return fmt.Errorf("address checksum is not bech32m")
	}
	payload, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return fmt.Errorf("invalid address payload: %w", err)
	}
	if len(payload) != addressPayloadLen {
		return fmt.Errorf("address payload is %d bytes, want %d", len(payload), addressPayloadLen)
	}
	return nil
}

// ShortenAddress renders "<first n>...<last n>" for display. Addresses that
// would not get shorter are returned unchanged. visible <= 0 means 6.
func ShortenAddress(address string, visible int) string {
	if visible <= 0 {
		visible = defaultVisible
	}
	runes := []rune(address)
	if len(runes) <= 2*visible+3 {
		return address
	}
	return string(runes[:visible]) + "..." + string(runes[len(runes)-visible:])
}
