package model

// Swap directions.
const (
	DirectionAForB = "a_for_b"
	DirectionBForA = "b_for_a"
)

// SwapQuoteRecord is the serialized form of a swap preview.
type SwapQuoteRecord struct {
	Direction       string  `json:"direction"`
	AmountIn        string  `json:"amount_in"`
	AmountOut       string  `json:"amount_out"`
	Fee             string  `json:"fee"`
	PriceImpactPct  float64 `json:"price_impact_pct"`
	MinimumReceived string  `json:"minimum_received,omitempty"`
}

// LiquidityQuoteRecord is the serialized form of a deposit preview.
type LiquidityQuoteRecord struct {
	AmountA string `json:"amount_a"`
	AmountB string `json:"amount_b"`
	Shares  string `json:"shares"`
	Initial bool   `json:"initial"`
	Valid   bool   `json:"valid"`
}

// RemoveQuoteRecord is the serialized form of a withdrawal preview.
type RemoveQuoteRecord struct {
	Shares  string `json:"shares"`
	AmountA string `json:"amount_a"`
	AmountB string `json:"amount_b"`
}

// NoLiquidity is emitted in place of a quote when the pool cannot serve it.
type NoLiquidity struct {
	PoolID string `json:"pool_id,omitempty"`
	Reason string `json:"reason"`
}
