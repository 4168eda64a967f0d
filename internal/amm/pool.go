// Package amm reproduces the integer arithmetic of the constant-product pool
// program so quotes shown before a transaction match what the program computes.
package amm

import (
	"errors"
	"fmt"
	"math/big"
)

const (
	// BasisPoints is the fee denominator.
	BasisPoints = 10000
	// MinimumLiquidity is burned from the first deposit.
	MinimumLiquidity = 1000
)

var (
	ErrInvalidAmount      = errors.New("amount must be a non-negative integer")
	ErrInvalidFee         = errors.New("fee must be between 0 and 10000 bps")
	ErrInvalidPool        = errors.New("pool reserves and shares must be non-negative")
	ErrSharesExceedSupply = errors.New("shares exceed total supply")
)

var (
	bpsDenominator   = big.NewInt(BasisPoints)
	minimumLiquidity = big.NewInt(MinimumLiquidity)
)

// PoolState is the observed on-chain state of a pool.
type PoolState struct {
	ReserveA    *big.Int
	ReserveB    *big.Int
	TotalShares *big.Int
	FeeBps      uint32
}

// NewPoolState builds a PoolState from uint64 values.
func NewPoolState(reserveA, reserveB, totalShares uint64, feeBps uint32) PoolState {
	return PoolState{
		ReserveA:    new(big.Int).SetUint64(reserveA),
		ReserveB:    new(big.Int).SetUint64(reserveB),
		TotalShares: new(big.Int).SetUint64(totalShares),
		FeeBps:      feeBps,
	}
}

// Validate checks reserves, shares and fee. Nil amounts are treated as zero.
func (p PoolState) Validate() error {
	if p.FeeBps > BasisPoints {
		return fmt.Errorf("%w: %d", ErrInvalidFee, p.FeeBps)
	}
	for _, v := range []*big.Int{p.ReserveA, p.ReserveB, p.TotalShares} {
		if v != nil && v.Sign() < 0 {
			return ErrInvalidPool
		}
	}
	return nil
}

// Initialized reports whether any liquidity shares exist.
func (p PoolState) Initialized() bool {
	return p.TotalShares != nil && p.TotalShares.Sign() > 0
}

// Clone returns a deep copy.
func (p PoolState) Clone() PoolState {
	return PoolState{
		ReserveA:    cloneOrZero(p.ReserveA),
		ReserveB:    cloneOrZero(p.ReserveB),
		TotalShares: cloneOrZero(p.TotalShares),
		FeeBps:      p.FeeBps,
	}
}

// K returns reserveA * reserveB.
func (p PoolState) K() *big.Int {
	return new(big.Int).Mul(orZero(p.ReserveA), orZero(p.ReserveB))
}

func checkAmount(amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}

func cloneOrZero(v *big.Int) *big.Int {
	return new(big.Int).Set(orZero(v))
}
