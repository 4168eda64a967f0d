// Package snapshot records the on-chain state of AMM pools at the latest
// block height.
package snapshot

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"aleopulse/internal/amm"
	"aleopulse/internal/dex"
	"aleopulse/internal/model"
	"aleopulse/internal/storage"
)

// RunConfig holds runtime settings for a snapshot run.
type RunConfig struct {
	Network      string
	Program      string
	PoolIDs      []string
	BatchSize    int
	ProbeAmount  *big.Int
	MaxRetries   int
	RetryBackoff time.Duration
	Force        bool
}

// HeightSource reports the latest block height.
type HeightSource interface {
	LatestHeight(ctx context.Context) (uint64, error)
}

// PoolSource reads one pool.
type PoolSource interface {
	ReadPool(ctx context.Context, poolID string) (dex.Observation, error)
}

// Archive is the optional database sink for snapshots.
type Archive interface {
	UpsertPools(ctx context.Context, pools []model.Pool) error
	InsertSnapshots(ctx context.Context, snapshots []model.PoolSnapshot) error
}

// Deps are the collaborators of a Runner. Errors, State and Archive are optional.
type Deps struct {
	Heights HeightSource
	Pools   PoolSource
	Sink    storage.Storage
	Errors  storage.ErrorStorage
	State   StateStore
	Archive Archive
}

// Summary describes a finished run.
type Summary struct {
	RunID     string
	Height    uint64
	Snapshots int
	Failures  int
	Skipped   bool
}

// Runner reads configured pools and writes snapshots to storage.
type Runner struct {
	cfg    RunConfig
	deps   Deps
	logger *zap.Logger
}

// NewRunner builds a Runner with its dependencies.
func NewRunner(cfg RunConfig, deps Deps, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{cfg: cfg, deps: deps, logger: logger}
}

// Run snapshots every configured pool once. Per-pool failures are recorded
// and do not stop the run.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	if r.deps.Heights == nil || r.deps.Pools == nil {
		return Summary{}, fmt.Errorf("explorer client is nil")
	}
	if r.deps.Sink == nil {
		return Summary{}, fmt.Errorf("storage is nil")
	}
	batches, err := SplitBatches(r.cfg.PoolIDs, r.cfg.BatchSize)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{RunID: uuid.NewString()}
	logger := r.logger.With(zap.String("run_id", summary.RunID))

	err = withRetry(ctx, r.cfg.MaxRetries, r.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		summary.Height, err = r.deps.Heights.LatestHeight(ctx)
		if err != nil {
			logger.Warn("latest height fetch failed", zap.Error(err))
		}
		return err
	})
	if err != nil {
		return summary, fmt.Errorf("get latest height: %w", err)
	}

	if r.deps.State != nil && !r.cfg.Force {
		last, ok, err := r.deps.State.Load(ctx)
		if err != nil {
			return summary, err
		}
		if ok && last >= summary.Height {
			logger.Info("nothing to snapshot", zap.Uint64("last_height", last), zap.Uint64("height", summary.Height))
			summary.Skipped = true
			return summary, nil
		}
	}

	for _, batch := range batches {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		snapshots, failures := r.readBatch(ctx, logger, summary.RunID, summary.Height, batch)

		if err := r.deps.Sink.PutSnapshotBatch(snapshots); err != nil {
			return summary, fmt.Errorf("store snapshots: %w", err)
		}
		if r.deps.Errors != nil {
			if err := r.deps.Errors.PutErrorBatch(failures); err != nil {
				return summary, fmt.Errorf("store snapshot errors: %w", err)
			}
		}
		if r.deps.Archive != nil && len(snapshots) > 0 {
			if err := r.deps.Archive.UpsertPools(ctx, poolsFrom(snapshots)); err != nil {
				return summary, fmt.Errorf("upsert pools: %w", err)
			}
			if err := r.deps.Archive.InsertSnapshots(ctx, snapshots); err != nil {
				return summary, fmt.Errorf("insert snapshots: %w", err)
			}
		}

		summary.Snapshots += len(snapshots)
		summary.Failures += len(failures)
		logger.Info("batch complete", zap.Int("pools", len(batch)), zap.Int("snapshots", len(snapshots)), zap.Int("failures", len(failures)))
	}

	switch {
	case r.deps.State == nil:
	case summary.Failures > 0 && summary.Snapshots == 0:
		// Leave the checkpoint alone so the height is retried.
		logger.Warn("nothing recorded, checkpoint not saved", zap.Uint64("height", summary.Height))
	default:
		if err := r.deps.State.Save(ctx, summary.Height); err != nil {
			return summary, err
		}
	}

	logger.Info("snapshot complete",
		zap.Uint64("height", summary.Height),
		zap.Int("snapshots", summary.Snapshots),
		zap.Int("failures", summary.Failures),
	)
	return summary, nil
}

func (r *Runner) readBatch(ctx context.Context, logger *zap.Logger, runID string, height uint64, batch []string) ([]model.PoolSnapshot, []model.SnapshotError) {
	observedAt := time.Now().UTC().Format(time.RFC3339Nano)
	snapshots := make([]model.PoolSnapshot, 0, len(batch))
	var failures []model.SnapshotError

	for _, poolID := range batch {
		obs, err := r.readPoolWithRetry(ctx, logger, poolID)
		if err != nil {
			failures = append(failures, model.SnapshotError{
				RunID:   runID,
				Network: r.cfg.Network,
				Program: r.cfg.Program,
				PoolID:  poolID,
				Height:  height,
				Raw:     obs.Raw,
				Error:   err.Error(),
			})
			continue
		}

		snapshots = append(snapshots, model.PoolSnapshot{
			RunID:       runID,
			Network:     r.cfg.Network,
			Program:     r.cfg.Program,
			PoolID:      poolID,
			Height:      height,
			ReserveA:    obs.State.ReserveA.String(),
			ReserveB:    obs.State.ReserveB.String(),
			TotalShares: obs.State.TotalShares.String(),
			PoolMeta:    obs.Meta,
			Probe:       r.probe(logger, poolID, obs.State),
			ObservedAt:  observedAt,
		})
	}
	return snapshots, failures
}

func (r *Runner) readPoolWithRetry(ctx context.Context, logger *zap.Logger, poolID string) (dex.Observation, error) {
	var obs dex.Observation
	err := withRetry(ctx, r.cfg.MaxRetries, r.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		obs, err = r.deps.Pools.ReadPool(ctx, poolID)
		if err != nil {
			logger.Warn("pool read failed", zap.Error(err), zap.String("pool", poolID))
		}
		return err
	})
	return obs, err
}

// probe quotes ProbeAmount of token A against the pool. Pools without
// liquidity get no probe.
func (r *Runner) probe(logger *zap.Logger, poolID string, state amm.PoolState) *model.SwapQuoteRecord {
	if r.cfg.ProbeAmount == nil || r.cfg.ProbeAmount.Sign() <= 0 {
		return nil
	}
	q, err := amm.QuoteSwapAForB(r.cfg.ProbeAmount, state)
	if err != nil {
		logger.Warn("probe quote failed", zap.Error(err), zap.String("pool", poolID))
		return nil
	}
	if q == nil {
		return nil
	}
	return &model.SwapQuoteRecord{
		Direction:      model.DirectionAForB,
		AmountIn:       q.AmountIn.String(),
		AmountOut:      q.AmountOut.String(),
		Fee:            q.Fee.String(),
		PriceImpactPct: q.PriceImpactPct,
	}
}

func poolsFrom(snapshots []model.PoolSnapshot) []model.Pool {
	pools := make([]model.Pool, 0, len(snapshots))
	for _, snap := range snapshots {
		pools = append(pools, model.Pool{
			Network:         snap.Network,
			Program:         snap.Program,
			PoolID:          snap.PoolID,
			TokenA:          snap.PoolMeta.TokenA,
			TokenB:          snap.PoolMeta.TokenB,
			FeeBps:          snap.PoolMeta.FeeBps,
			FirstSeenHeight: snap.Height,
		})
	}
	return pools
}
