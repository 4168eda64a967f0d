package amm

import (
	"math/big"
)

// LiquidityQuote is the number of LP shares a deposit would mint.
type LiquidityQuote struct {
	Shares  *big.Int
	Initial bool
}

// Valid reports whether the deposit mints a positive number of shares.
// A first deposit at or below MinimumLiquidity is not valid.
func (q *LiquidityQuote) Valid() bool {
	return q != nil && q.Shares != nil && q.Shares.Sign() > 0
}

// RemoveQuote is the pro-rata amount returned for burned shares.
type RemoveQuote struct {
	AmountA *big.Int
	AmountB *big.Int
}

// QuoteAddLiquidity previews a deposit of amountA and amountB.
//
// For an uninitialized pool the result is floor(sqrt(a*b)) - MinimumLiquidity,
// which may be zero or negative. Otherwise it is the smaller of the shares
// justified by either side of the deposit at the current ratio. A nil quote is
// returned when shares exist but a reserve is zero.
func QuoteAddLiquidity(amountA, amountB *big.Int, pool PoolState) (*LiquidityQuote, error) {
	if err := pool.Validate(); err != nil {
		return nil, err
	}
	if err := checkAmount(amountA); err != nil {
		return nil, err
	}
	if err := checkAmount(amountB); err != nil {
		return nil, err
	}

	if !pool.Initialized() {
		shares := new(big.Int).Mul(amountA, amountB)
		shares.Sqrt(shares)
		shares.Sub(shares, minimumLiquidity)
		return &LiquidityQuote{Shares: shares, Initial: true}, nil
	}

	reserveA, reserveB := orZero(pool.ReserveA), orZero(pool.ReserveB)
	if reserveA.Sign() == 0 || reserveB.Sign() == 0 {
		return nil, nil
	}

	fromA := new(big.Int).Mul(amountA, pool.TotalShares)
	fromA.Quo(fromA, reserveA)
	fromB := new(big.Int).Mul(amountB, pool.TotalShares)
	fromB.Quo(fromB, reserveB)

	if fromA.Cmp(fromB) <= 0 {
		return &LiquidityQuote{Shares: fromA}, nil
	}
	return &LiquidityQuote{Shares: fromB}, nil
}

// QuoteRemoveLiquidity previews burning shares. Truncation dust stays in the pool.
// A nil quote is returned for a pool with no shares.
func QuoteRemoveLiquidity(shares *big.Int, pool PoolState) (*RemoveQuote, error) {
	if err := pool.Validate(); err != nil {
		return nil, err
	}
	if err := checkAmount(shares); err != nil {
		return nil, err
	}
	if !pool.Initialized() {
		return nil, nil
	}
	if shares.Cmp(pool.TotalShares) > 0 {
		return nil, ErrSharesExceedSupply
	}

	amountA := new(big.Int).Mul(shares, orZero(pool.ReserveA))
	amountA.Quo(amountA, pool.TotalShares)
	amountB := new(big.Int).Mul(shares, orZero(pool.ReserveB))
	amountB.Quo(amountB, pool.TotalShares)

	return &RemoveQuote{AmountA: amountA, AmountB: amountB}, nil
}
