package config

import (
	"time"

	"github.com/spf13/pflag"
)

// SnapshotConfig holds configuration for the snapshot command.
type SnapshotConfig struct {
	Network           Network
	PoolIDs           []string
	BatchSize         int
	Out               string
	Errors            string
	Checkpoint        string
	CheckpointEnabled bool
	Force             bool
	PGDSN             string
	ProbeAmount       string
	MaxRetries        int
	RetryBackoff      time.Duration
	LogLevel          string
}

// LoadSnapshot merges config file, environment variables, and flags into SnapshotConfig.
func LoadSnapshot(cfgFile string, flags *pflag.FlagSet) (SnapshotConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return SnapshotConfig{}, err
	}
	v.SetDefault("batch-size", 16)
	v.SetDefault("out", "./data/pool_snapshots.jsonl")
	v.SetDefault("errors", "./data/snapshot_errors.jsonl")
	v.SetDefault("checkpoint", "./data/snapshot_checkpoint.json")
	v.SetDefault("checkpoint-enabled", true)
	v.SetDefault("max-retries", 5)
	v.SetDefault("retry-backoff", 500*time.Millisecond)

	network, err := networkFrom(v)
	if err != nil {
		return SnapshotConfig{}, err
	}

	cfg := SnapshotConfig{
		Network:           network,
		PoolIDs:           getStringSlice(v, "pool"),
		BatchSize:         v.GetInt("batch-size"),
		Out:               v.GetString("out"),
		Errors:            v.GetString("errors"),
		Checkpoint:        v.GetString("checkpoint"),
		CheckpointEnabled: v.GetBool("checkpoint-enabled"),
		Force:             v.GetBool("force"),
		PGDSN:             v.GetString("pg-dsn"),
		ProbeAmount:       v.GetString("probe-amount"),
		MaxRetries:        v.GetInt("max-retries"),
		RetryBackoff:      v.GetDuration("retry-backoff"),
		LogLevel:          v.GetString("log-level"),
	}
	return cfg, nil
}
