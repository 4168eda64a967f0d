package model

// PoolSnapshot is one observation of a pool's on-chain state. Amounts are
// decimal strings so u128 values survive JSON.
type PoolSnapshot struct {
	RunID       string           `json:"run_id"`
	Network     string           `json:"network"`
	Program     string           `json:"program"`
	PoolID      string           `json:"pool_id"`
	Height      uint64           `json:"height"`
	ReserveA    string           `json:"reserve_a"`
	ReserveB    string           `json:"reserve_b"`
	TotalShares string           `json:"total_shares"`
	PoolMeta    PoolMeta         `json:"pool_meta"`
	Probe       *SwapQuoteRecord `json:"probe,omitempty"`
	ObservedAt  string           `json:"observed_at"`
}
