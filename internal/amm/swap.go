package amm

import (
	"math/big"
)

// SwapQuote is the result of a swap preview. PriceImpactPct is for display only.
type SwapQuote struct {
	AmountIn       *big.Int
	AmountOut      *big.Int
	Fee            *big.Int
	PriceImpactPct float64
}

// QuoteSwapAForB previews selling amountIn of asset A for asset B.
// It returns a nil quote when the pool has no liquidity.
func QuoteSwapAForB(amountIn *big.Int, pool PoolState) (*SwapQuote, error) {
	if err := pool.Validate(); err != nil {
		return nil, err
	}
	return quoteSwap(amountIn, orZero(pool.ReserveA), orZero(pool.ReserveB), pool.FeeBps)
}

// QuoteSwapBForA previews selling amountIn of asset B for asset A.
func QuoteSwapBForA(amountIn *big.Int, pool PoolState) (*SwapQuote, error) {
	if err := pool.Validate(); err != nil {
		return nil, err
	}
	return quoteSwap(amountIn, orZero(pool.ReserveB), orZero(pool.ReserveA), pool.FeeBps)
}

// amountOut = amountIn*(10000-fee)*reserveOut / (reserveIn*10000 + amountIn*(10000-fee))
// The fee is only ever taken through the denominator; Fee is reported for display.
func quoteSwap(amountIn, reserveIn, reserveOut *big.Int, feeBps uint32) (*SwapQuote, error) {
	if err := checkAmount(amountIn); err != nil {
		return nil, err
	}
	if reserveIn.Sign() == 0 || reserveOut.Sign() == 0 {
		return nil, nil
	}
	if amountIn.Sign() == 0 {
		return &SwapQuote{
			AmountIn:  new(big.Int),
			AmountOut: new(big.Int),
			Fee:       new(big.Int),
		}, nil
	}

	feeMultiplier := big.NewInt(int64(BasisPoints - feeBps))
	amountInAfterFee := new(big.Int).Mul(amountIn, feeMultiplier)

	numerator := new(big.Int).Mul(amountInAfterFee, reserveOut)
	denominator := new(big.Int).Mul(reserveIn, bpsDenominator)
	denominator.Add(denominator, amountInAfterFee)
	amountOut := new(big.Int).Quo(numerator, denominator)

	fee := new(big.Int).Mul(amountIn, big.NewInt(int64(feeBps)))
	fee.Quo(fee, bpsDenominator)

	return &SwapQuote{
		AmountIn:       new(big.Int).Set(amountIn),
		AmountOut:      amountOut,
		Fee:            fee,
		PriceImpactPct: priceImpact(amountIn, amountOut, reserveIn, reserveOut),
	}, nil
}

// priceImpact returns |spot - execution| / spot * 100 where spot = reserveOut/reserveIn
// and execution = amountOut/amountIn. The ratio is exact until the final conversion.
func priceImpact(amountIn, amountOut, reserveIn, reserveOut *big.Int) float64 {
	ratio := new(big.Rat).SetFrac(
		new(big.Int).Mul(amountOut, reserveIn),
		new(big.Int).Mul(amountIn, reserveOut),
	)
	diff := new(big.Rat).Sub(big.NewRat(1, 1), ratio)
	diff.Abs(diff)
	diff.Mul(diff, big.NewRat(100, 1))
	pct, _ := diff.Float64()
	return pct
}

// ApplySwapAForB returns the pool after executing q: the whole input, fee
// included, stays in the pool.
func (p PoolState) ApplySwapAForB(q *SwapQuote) PoolState {
	next := p.Clone()
	if q == nil {
		return next
	}
	next.ReserveA.Add(next.ReserveA, q.AmountIn)
	next.ReserveB.Sub(next.ReserveB, q.AmountOut)
	return next
}

// ApplySwapBForA is the mirror of ApplySwapAForB.
func (p PoolState) ApplySwapBForA(q *SwapQuote) PoolState {
	next := p.Clone()
	if q == nil {
		return next
	}
	next.ReserveB.Add(next.ReserveB, q.AmountIn)
	next.ReserveA.Sub(next.ReserveA, q.AmountOut)
	return next
}

// MinimumReceived applies a slippage tolerance to amountOut, rounding down.
func MinimumReceived(amountOut *big.Int, slippageBps uint32) (*big.Int, error) {
	if err := checkAmount(amountOut); err != nil {
		return nil, err
	}
	if slippageBps > BasisPoints {
		return nil, ErrInvalidFee
	}
	out := new(big.Int).Mul(amountOut, big.NewInt(int64(BasisPoints-slippageBps)))
	return out.Quo(out, bpsDenominator), nil
}
