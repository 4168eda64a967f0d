package storage

import "aleopulse/internal/model"

// Storage defines a sink for pool snapshots.
type Storage interface {
	PutSnapshotBatch(snapshots []model.PoolSnapshot) error
}

// ErrorStorage defines a sink for per-pool snapshot failures.
type ErrorStorage interface {
	PutErrorBatch(records []model.SnapshotError) error
}
