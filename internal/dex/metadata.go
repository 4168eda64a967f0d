package dex

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"aleopulse/internal/amm"
	"aleopulse/internal/explorer"
	"aleopulse/internal/model"
)

// ErrMalformed marks a mapping value that exists but does not decode as a pool.
var ErrMalformed = errors.New("malformed pool value")

// PoolMetaCache caches immutable pool info by pool id.
type PoolMetaCache struct {
	mu   sync.RWMutex
	data map[string]model.PoolMeta
}

func NewPoolMetaCache() *PoolMetaCache {
	return &PoolMetaCache{data: make(map[string]model.PoolMeta)}
}

func (c *PoolMetaCache) Get(poolID string) (model.PoolMeta, bool) {
	c.mu.RLock()
	meta, ok := c.data[poolID]
	c.mu.RUnlock()
	return meta, ok
}

func (c *PoolMetaCache) Set(poolID string, meta model.PoolMeta) {
	c.mu.Lock()
	c.data[poolID] = meta
	c.mu.Unlock()
}

// ReaderConfig names the program and mappings a PoolReader reads.
type ReaderConfig struct {
	Program     string
	PoolMapping string
	InfoMapping string
}

// Observation is a decoded pool read.
type Observation struct {
	PoolID string
	State  amm.PoolState
	Meta   model.PoolMeta
	Raw    string
}

// PoolReader reads pool state through an explorer client.
type PoolReader struct {
	cfg    ReaderConfig
	client explorer.Client
	cache  *PoolMetaCache
	logger *zap.Logger
}

// NewPoolReader builds a PoolReader. A nil cache disables pool info caching.
func NewPoolReader(cfg ReaderConfig, client explorer.Client, cache *PoolMetaCache, logger *zap.Logger) *PoolReader {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.PoolMapping == "" {
		cfg.PoolMapping = "pools"
	}
	if cfg.InfoMapping == "" {
		cfg.InfoMapping = "pool_info"
	}
	return &PoolReader{cfg: cfg, client: client, cache: cache, logger: logger}
}

// ReadPool returns the current state of poolID. Both mappings must have an
// entry; a missing one surfaces explorer.ErrNotFound.
func (r *PoolReader) ReadPool(ctx context.Context, poolID string) (Observation, error) {
	if r.client == nil {
		return Observation{}, fmt.Errorf("explorer client is nil")
	}
	if r.cfg.Program == "" {
		return Observation{}, fmt.Errorf("amm program is required")
	}

	meta, infoRaw, err := r.poolMeta(ctx, poolID)
	if err != nil {
		return Observation{Raw: infoRaw}, err
	}

	raw, err := r.client.MappingValue(ctx, r.cfg.Program, r.cfg.PoolMapping, poolID)
	if err != nil {
		return Observation{}, fmt.Errorf("read %s[%s]: %w", r.cfg.PoolMapping, poolID, err)
	}
	reserves, err := DecodeReserves(raw)
	if err != nil {
		return Observation{Raw: raw}, fmt.Errorf("decode %s[%s]: %w: %w", r.cfg.PoolMapping, poolID, ErrMalformed, err)
	}

	state := amm.PoolState{
		ReserveA:    reserves.ReserveA,
		ReserveB:    reserves.ReserveB,
		TotalShares: reserves.TotalShares,
		FeeBps:      meta.FeeBps,
	}
	return Observation{PoolID: poolID, State: state, Meta: meta, Raw: raw}, nil
}

func (r *PoolReader) poolMeta(ctx context.Context, poolID string) (model.PoolMeta, string, error) {
	if r.cache != nil {
		if meta, ok := r.cache.Get(poolID); ok {
			return meta, "", nil
		}
	}

	raw, err := r.client.MappingValue(ctx, r.cfg.Program, r.cfg.InfoMapping, poolID)
	if err != nil {
		return model.PoolMeta{}, "", fmt.Errorf("read %s[%s]: %w", r.cfg.InfoMapping, poolID, err)
	}
	meta, err := DecodePoolInfo(raw)
	if err != nil {
		return model.PoolMeta{}, raw, fmt.Errorf("decode %s[%s]: %w: %w", r.cfg.InfoMapping, poolID, ErrMalformed, err)
	}

	if r.cache != nil {
		r.cache.Set(poolID, meta)
	}
	r.logger.Debug("pool info loaded",
		zap.String("pool", poolID),
		zap.String("token_a", meta.TokenA),
		zap.String("token_b", meta.TokenB),
		zap.Uint32("fee_bps", meta.FeeBps),
	)
	return meta, raw, nil
}
