package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"aleopulse/internal/config"
	"aleopulse/internal/dex"
	"aleopulse/internal/explorer"
	"aleopulse/internal/snapshot"
	"aleopulse/internal/storage"
	"aleopulse/internal/storage/postgres"
)

func newSnapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Record current pool reserves at the latest height",
		RunE:  runSnapshot,
	}

	addNetworkFlags(cmd.Flags())
	cmd.Flags().StringSlice("pool", nil, "pool ids (comma-separated)")
	cmd.Flags().Int("batch-size", 16, "pools per batch")
	cmd.Flags().String("out", "./data/pool_snapshots.jsonl", "output JSONL path")
	cmd.Flags().String("errors", "./data/snapshot_errors.jsonl", "snapshot errors JSONL")
	cmd.Flags().String("checkpoint", "./data/snapshot_checkpoint.json", "checkpoint file path")
	cmd.Flags().Bool("checkpoint-enabled", true, "enable file checkpointing")
	cmd.Flags().Bool("force", false, "snapshot even if the latest height was already recorded")
	cmd.Flags().String("pg-dsn", "", "Postgres DSN, enables the snapshot archive")
	cmd.Flags().String("probe-amount", "", "quote this amount of token A against each pool")
	cmd.Flags().Int("max-retries", 5, "maximum retry attempts")
	cmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	return cmd
}

func runSnapshot(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadSnapshot(configFile(cmd), cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if len(cfg.PoolIDs) == 0 {
		return fmt.Errorf("pool list is required")
	}
	if cfg.Out == "" {
		return fmt.Errorf("output path is required")
	}
	if cfg.Network.Programs.AMM == "" {
		return fmt.Errorf("amm program is required")
	}

	var probe *big.Int
	if cfg.ProbeAmount != "" {
		probe, err = parseAmount("probe-amount", cfg.ProbeAmount)
		if err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := explorer.Dial(ctx, cfg.Network.ExplorerOptions())
	if err != nil {
		return fmt.Errorf("connect explorer: %w", err)
	}
	defer client.Close()

	deps := snapshot.Deps{
		Heights: client,
		Pools:   dex.NewPoolReader(cfg.Network.ReaderConfig(), client, dex.NewPoolMetaCache(), logger),
		Sink:    storage.NewJsonlStorage(cfg.Out),
	}
	if cfg.Errors != "" {
		deps.Errors = storage.NewJsonlStorage(cfg.Errors)
	}

	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		deps.Archive = store
		if !cfg.CheckpointEnabled {
			deps.State = &snapshot.DBStateStore{
				Store: store,
				Name:  fmt.Sprintf("snapshot:%s:%s", cfg.Network.Name, cfg.Network.Programs.AMM),
			}
		}
	}
	if cfg.CheckpointEnabled && cfg.Checkpoint != "" {
		deps.State = &snapshot.FileStateStore{Path: cfg.Checkpoint}
	}

	runner := snapshot.NewRunner(snapshot.RunConfig{
		Network:      cfg.Network.Name,
		Program:      cfg.Network.Programs.AMM,
		PoolIDs:      cfg.PoolIDs,
		BatchSize:    cfg.BatchSize,
		ProbeAmount:  probe,
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
		Force:        cfg.Force,
	}, deps, logger)

	logger.Info("snapshot start",
		zap.String("network", cfg.Network.Name),
		zap.String("explorer", cfg.Network.ExplorerURL),
		zap.String("transport", cfg.Network.Transport),
		zap.String("program", cfg.Network.Programs.AMM),
		zap.Int("pools", len(cfg.PoolIDs)),
		zap.Int("batch_size", cfg.BatchSize),
		zap.String("out", cfg.Out),
		zap.String("pg_dsn", redactDSN(cfg.PGDSN)),
		zap.Bool("checkpoint_enabled", cfg.CheckpointEnabled),
		zap.String("checkpoint", cfg.Checkpoint),
	)

	summary, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	if summary.Failures > 0 && summary.Snapshots == 0 {
		return fmt.Errorf("all %d pools failed, see %s", summary.Failures, cfg.Errors)
	}
	return nil
}
