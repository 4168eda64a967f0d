// Package dex reads AMM pool state from program mappings and decodes it into
// amm.PoolState.
package dex

import (
	"fmt"
	"math/big"

	"aleopulse/internal/codec"
	"aleopulse/internal/model"
)

// Reserves is the mutable part of a pool, stored in the pools mapping as
//
//	{ reserve_a: u128, reserve_b: u128, total_shares: u128 }
type Reserves struct {
	ReserveA    *big.Int
	ReserveB    *big.Int
	TotalShares *big.Int
}

// DecodeReserves parses a pools mapping value.
func DecodeReserves(literal string) (Reserves, error) {
	members, err := codec.ParseStruct(literal)
	if err != nil {
		return Reserves{}, err
	}

	reserveA, err := memberU128(members, "reserve_a")
	if err != nil {
		return Reserves{}, err
	}
	reserveB, err := memberU128(members, "reserve_b")
	if err != nil {
		return Reserves{}, err
	}
	totalShares, err := memberU128(members, "total_shares")
	if err != nil {
		return Reserves{}, err
	}

	return Reserves{ReserveA: reserveA, ReserveB: reserveB, TotalShares: totalShares}, nil
}

// DecodePoolInfo parses a pool_info mapping value:
//
//	{ token_a: field, token_b: field, fee_bps: u16 }
func DecodePoolInfo(literal string) (model.PoolMeta, error) {
	members, err := codec.ParseStruct(literal)
	if err != nil {
		return model.PoolMeta{}, err
	}

	tokenA, err := member(members, "token_a", codec.TypeField)
	if err != nil {
		return model.PoolMeta{}, err
	}
	tokenB, err := member(members, "token_b", codec.TypeField)
	if err != nil {
		return model.PoolMeta{}, err
	}
	fee, err := member(members, "fee_bps", codec.TypeU16)
	if err != nil {
		return model.PoolMeta{}, err
	}
	feeBps := uint32(fee.Int.Uint64())
	if feeBps > 10000 {
		return model.PoolMeta{}, fmt.Errorf("fee_bps %d exceeds 10000", feeBps)
	}

	tokenALiteral, _ := tokenA.Encode()
	tokenBLiteral, _ := tokenB.Encode()
	return model.PoolMeta{
		TokenA: tokenALiteral,
		TokenB: tokenBLiteral,
		FeeBps: feeBps,
	}, nil
}

func member(members map[string]string, name string, t codec.Type) (codec.Value, error) {
	raw, ok := members[name]
	if !ok {
		return codec.Value{}, fmt.Errorf("missing member %s", name)
	}
	value, err := codec.DecodeTypedLiteral(raw, t)
	if err != nil {
		return codec.Value{}, fmt.Errorf("%s: %w", name, err)
	}
	return value, nil
}

func memberU128(members map[string]string, name string) (*big.Int, error) {
	value, err := member(members, name, codec.TypeU128)
	if err != nil {
		return nil, err
	}
	return value.BigInt(), nil
}
