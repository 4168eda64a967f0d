package model

// PoolMeta captures the pool's token pair and fee tier.
type PoolMeta struct {
	TokenA string `json:"token_a"`
	TokenB string `json:"token_b"`
	FeeBps uint32 `json:"fee_bps"`
}
