package model

// SnapshotError records a failure to read or decode one pool.
type SnapshotError struct {
	RunID   string `json:"run_id"`
	Network string `json:"network"`
	Program string `json:"program"`
	PoolID  string `json:"pool_id"`
	Height  uint64 `json:"height"`
	Raw     string `json:"raw,omitempty"`
	Error   string `json:"error"`
}
