package model

// Pool represents AMM pool metadata for storage.
type Pool struct {
	Network         string `json:"network"`
	Program         string `json:"program"`
	PoolID          string `json:"pool_id"`
	TokenA          string `json:"token_a"`
	TokenB          string `json:"token_b"`
	FeeBps          uint32 `json:"fee_bps"`
	FirstSeenHeight uint64 `json:"first_seen_height"`
}
