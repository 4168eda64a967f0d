package amm

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// FormatAmount renders a base-unit amount with the token's decimals.
func FormatAmount(value *big.Int, decimals uint8) string {
	if value == nil {
		return "0"
	}
	if decimals == 0 {
		return value.String()
	}
	return decimal.NewFromBigInt(value, -int32(decimals)).StringFixed(int32(decimals))
}
