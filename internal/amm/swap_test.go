package amm

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustBig(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok, "invalid int %s", s)
	return v
}

func TestQuoteSwapAForB(t *testing.T) {
	pool := NewPoolState(1_000_000, 1_000_000, 1_000_000, 30)

	q, err := QuoteSwapAForB(big.NewInt(10_000), pool)
	require.NoError(t, err)
	require.NotNil(t, q)
	require.Equal(t, "9871", q.AmountOut.String())
	require.Equal(t, "30", q.Fee.String())
	require.InDelta(t, 1.29, q.PriceImpactPct, 1e-9)
}

func TestQuoteSwapBForA(t *testing.T) {
	pool := NewPoolState(1_000_000, 4_000_000, 2_000_000, 30)

	q, err := QuoteSwapBForA(big.NewInt(20_000), pool)
	require.NoError(t, err)
	require.Equal(t, "4960", q.AmountOut.String())
	require.Equal(t, "60", q.Fee.String())
	require.Greater(t, q.PriceImpactPct, 0.0)
}

func TestQuoteSwapLargeValues(t *testing.T) {
	pool := PoolState{
		ReserveA:    mustBig(t, "5000000000000000000000000000000000000"),
		ReserveB:    mustBig(t, "7000000000000000000000000000000000000"),
		TotalShares: mustBig(t, "1000000000000000000"),
		FeeBps:      25,
	}
	q, err := QuoteSwapAForB(mustBig(t, "1000000000000000000000000000000"), pool)
	require.NoError(t, err)
	require.Equal(t, "1396499721398305581038036582911", q.AmountOut.String())
	require.Equal(t, "2500000000000000000000000000", q.Fee.String())
}

func TestQuoteSwapZeroAmount(t *testing.T) {
	pool := NewPoolState(1_000_000, 1_000_000, 1_000_000, 30)

	q, err := QuoteSwapAForB(big.NewInt(0), pool)
	require.NoError(t, err)
	require.NotNil(t, q)
	require.Zero(t, q.AmountOut.Sign())
	require.Zero(t, q.Fee.Sign())
	require.Zero(t, q.PriceImpactPct)
}

func TestQuoteSwapNoLiquidity(t *testing.T) {
	q, err := QuoteSwapAForB(big.NewInt(100), NewPoolState(0, 1_000, 0, 30))
	require.NoError(t, err)
	require.Nil(t, q)

	q, err = QuoteSwapBForA(big.NewInt(100), NewPoolState(1_000, 0, 10, 30))
	require.NoError(t, err)
	require.Nil(t, q)

	q, err = QuoteSwapAForB(big.NewInt(100), PoolState{FeeBps: 30})
	require.NoError(t, err)
	require.Nil(t, q)
}

func TestQuoteSwapInvalidInput(t *testing.T) {
	pool := NewPoolState(1_000, 1_000, 1_000, 30)

	_, err := QuoteSwapAForB(big.NewInt(-1), pool)
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = QuoteSwapAForB(nil, pool)
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = QuoteSwapAForB(big.NewInt(1), NewPoolState(1_000, 1_000, 1_000, 10_001))
	require.ErrorIs(t, err, ErrInvalidFee)

	bad := pool.Clone()
	bad.ReserveB = big.NewInt(-5)
	_, err = QuoteSwapBForA(big.NewInt(1), bad)
	require.ErrorIs(t, err, ErrInvalidPool)
}

func TestQuoteSwapFullFee(t *testing.T) {
	q, err := QuoteSwapAForB(big.NewInt(500), NewPoolState(1_000, 1_000, 1_000, 10_000))
	require.NoError(t, err)
	require.Zero(t, q.AmountOut.Sign())
	require.Equal(t, "500", q.Fee.String())
	require.InDelta(t, 100.0, q.PriceImpactPct, 1e-9)
}

func TestSwapPreservesConstantProduct(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		pool := NewPoolState(
			uint64(rng.Int63n(1_000_000_000)+1),
			uint64(rng.Int63n(1_000_000_000)+1),
			1,
			uint32(rng.Intn(1001)),
		)
		amountIn := big.NewInt(rng.Int63n(1_000_000_000) + 1)

		q, err := QuoteSwapAForB(amountIn, pool)
		require.NoError(t, err)
		after := pool.ApplySwapAForB(q)
		require.GreaterOrEqual(t, after.K().Cmp(pool.K()), 0, "A->B pool %+v in %s", pool, amountIn)
		require.Positive(t, after.ReserveB.Sign())

		q, err = QuoteSwapBForA(amountIn, pool)
		require.NoError(t, err)
		after = pool.ApplySwapBForA(q)
		require.GreaterOrEqual(t, after.K().Cmp(pool.K()), 0, "B->A pool %+v in %s", pool, amountIn)
	}
}

func TestApplySwapDoesNotMutate(t *testing.T) {
	pool := NewPoolState(1_000_000, 1_000_000, 1_000_000, 30)
	q, err := QuoteSwapAForB(big.NewInt(10_000), pool)
	require.NoError(t, err)

	after := pool.ApplySwapAForB(q)
	require.Equal(t, "1010000", after.ReserveA.String())
	require.Equal(t, "990129", after.ReserveB.String())
	require.Equal(t, "1000000", pool.ReserveA.String())
	require.Equal(t, "1000000", pool.ReserveB.String())
}

func TestMinimumReceived(t *testing.T) {
	got, err := MinimumReceived(big.NewInt(9871), 50)
	require.NoError(t, err)
	require.Equal(t, "9821", got.String())

	got, err = MinimumReceived(big.NewInt(9871), 0)
	require.NoError(t, err)
	require.Equal(t, "9871", got.String())

	_, err = MinimumReceived(big.NewInt(1), 10_001)
	require.ErrorIs(t, err, ErrInvalidFee)
}
