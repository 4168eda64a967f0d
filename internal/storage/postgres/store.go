package postgres

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"aleopulse/internal/model"
)

// ErrNotFound is returned when no preferences exist for an address.
var ErrNotFound = errors.New("not found")

// Store provides Postgres persistence for pool snapshots and user preferences.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// UpsertPools inserts or updates pool metadata.
func (s *Store) UpsertPools(ctx context.Context, pools []model.Pool) error {
	if len(pools) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, pool := range pools {
		batch.Queue(`
			INSERT INTO pools (
				network, program, pool_id, token_a, token_b, fee_bps, first_seen_height, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
			ON CONFLICT (network, program, pool_id)
			DO UPDATE SET
				token_a = EXCLUDED.token_a,
				token_b = EXCLUDED.token_b,
				fee_bps = EXCLUDED.fee_bps,
				first_seen_height = LEAST(pools.first_seen_height, EXCLUDED.first_seen_height),
				updated_at = now()
		`,
			pool.Network,
			pool.Program,
			pool.PoolID,
			pool.TokenA,
			pool.TokenB,
			int32(pool.FeeBps),
			int64(pool.FirstSeenHeight),
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range pools {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// InsertSnapshots stores pool snapshots. A run writes each pool once.
func (s *Store) InsertSnapshots(ctx context.Context, snapshots []model.PoolSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, snap := range snapshots {
		reserveA, err := numeric(snap.ReserveA)
		if err != nil {
			return fmt.Errorf("pool %s reserve_a: %w", snap.PoolID, err)
		}
		reserveB, err := numeric(snap.ReserveB)
		if err != nil {
			return fmt.Errorf("pool %s reserve_b: %w", snap.PoolID, err)
		}
		totalShares, err := numeric(snap.TotalShares)
		if err != nil {
			return fmt.Errorf("pool %s total_shares: %w", snap.PoolID, err)
		}
		batch.Queue(`
			INSERT INTO pool_snapshots (
				run_id, network, program, pool_id, height, reserve_a, reserve_b, total_shares, fee_bps, observed_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
			ON CONFLICT (run_id, pool_id) DO NOTHING
		`,
			snap.RunID,
			snap.Network,
			snap.Program,
			snap.PoolID,
			int64(snap.Height),
			reserveA,
			reserveB,
			totalShares,
			int32(snap.PoolMeta.FeeBps),
			snap.ObservedAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range snapshots {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// LoadState returns last_height for a name.
func (s *Store) LoadState(ctx context.Context, name string) (uint64, bool, error) {
	if name == "" {
		return 0, false, fmt.Errorf("state name required")
	}
	var height int64
	row := s.pool.QueryRow(ctx, `SELECT last_height FROM snapshot_state WHERE name=$1`, name)
	if err := row.Scan(&height); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return uint64(height), true, nil
}

// SaveState upserts last_height for a name.
func (s *Store) SaveState(ctx context.Context, name string, height uint64) error {
	if name == "" {
		return fmt.Errorf("state name required")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO snapshot_state (name, last_height, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE
		SET last_height = EXCLUDED.last_height, updated_at = now()
	`, name, int64(height))
	return err
}

// GetPreferences returns the stored preferences for address or ErrNotFound.
func (s *Store) GetPreferences(ctx context.Context, address string) (model.UserPreferences, error) {
	return getPreferences(ctx, s.pool, address)
}

// PutPreferences replaces the stored preferences for prefs.Address.
// The record is validated before it is written.
func (s *Store) PutPreferences(ctx context.Context, prefs model.UserPreferences) (model.UserPreferences, error) {
	return putPreferences(ctx, s.pool, prefs)
}

// CompleteOnboarding enables profile, makes it active and marks onboarding done.
// A missing record is created.
func (s *Store) CompleteOnboarding(ctx context.Context, address string, profile model.Profile) (model.UserPreferences, error) {
	return s.updatePreferences(ctx, address, true, func(prefs *model.UserPreferences) error {
		prefs.Onboard(profile)
		return nil
	})
}

// SwitchProfile changes the active profile. The profile must already be enabled.
func (s *Store) SwitchProfile(ctx context.Context, address string, profile model.Profile) (model.UserPreferences, error) {
	return s.updatePreferences(ctx, address, false, func(prefs *model.UserPreferences) error {
		return prefs.Switch(profile)
	})
}

// SetSetting stores one free-form setting; an empty value deletes it.
func (s *Store) SetSetting(ctx context.Context, address, key, value string) (model.UserPreferences, error) {
	return s.updatePreferences(ctx, address, true, func(prefs *model.UserPreferences) error {
		prefs.Set(key, value)
		return nil
	})
}

func (s *Store) updatePreferences(ctx context.Context, address string, create bool, apply func(*model.UserPreferences) error) (model.UserPreferences, error) {
	var out model.UserPreferences
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		prefs, err := getPreferences(ctx, tx, address, "FOR UPDATE")
		if errors.Is(err, ErrNotFound) && create {
			prefs = model.NewPreferences(address)
		} else if err != nil {
			return err
		}
		if err := apply(&prefs); err != nil {
			return err
		}
		out, err = putPreferences(ctx, tx, prefs)
		return err
	})
	return out, err
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func getPreferences(ctx context.Context, q querier, address string, lock ...string) (model.UserPreferences, error) {
	if address == "" {
		return model.UserPreferences{}, fmt.Errorf("address required")
	}
	sql := `
		SELECT address, active_profile, profiles, onboarding_completed, settings, updated_at
		FROM user_preferences WHERE address=$1`
	if len(lock) > 0 {
		sql += " " + lock[0]
	}

	var (
		prefs     model.UserPreferences
		active    string
		profiles  []string
		updatedAt time.Time
	)
	row := q.QueryRow(ctx, sql, address)
	if err := row.Scan(&prefs.Address, &active, &profiles, &prefs.OnboardingCompleted, &prefs.Settings, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.UserPreferences{}, ErrNotFound
		}
		return model.UserPreferences{}, err
	}
	prefs.ActiveProfile = model.Profile(active)
	for _, p := range profiles {
		prefs.Profiles = append(prefs.Profiles, model.Profile(p))
	}
	if prefs.Settings == nil {
		prefs.Settings = map[string]string{}
	}
	prefs.UpdatedAt = updatedAt.UTC().Format(time.RFC3339Nano)
	return prefs, nil
}

func putPreferences(ctx context.Context, q querier, prefs model.UserPreferences) (model.UserPreferences, error) {
	if err := prefs.Validate(); err != nil {
		return model.UserPreferences{}, fmt.Errorf("invalid preferences: %w", err)
	}
	profiles := make([]string, 0, len(prefs.Profiles))
	for _, p := range prefs.Profiles {
		profiles = append(profiles, string(p))
	}
	settings := prefs.Settings
	if settings == nil {
		settings = map[string]string{}
	}

	var updatedAt time.Time
	row := q.QueryRow(ctx, `
		INSERT INTO user_preferences (address, active_profile, profiles, onboarding_completed, settings, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (address) DO UPDATE SET
			active_profile = EXCLUDED.active_profile,
			profiles = EXCLUDED.profiles,
			onboarding_completed = EXCLUDED.onboarding_completed,
			settings = EXCLUDED.settings,
			updated_at = now()
		RETURNING updated_at
	`, prefs.Address, string(prefs.ActiveProfile), profiles, prefs.OnboardingCompleted, settings)
	if err := row.Scan(&updatedAt); err != nil {
		return model.UserPreferences{}, err
	}
	prefs.Settings = settings
	prefs.UpdatedAt = updatedAt.UTC().Format(time.RFC3339Nano)
	return prefs, nil
}

func numeric(value string) (pgtype.Numeric, error) {
	if value == "" {
		return pgtype.Numeric{}, nil
	}
	n, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return pgtype.Numeric{}, fmt.Errorf("invalid integer %q", value)
	}
	return pgtype.Numeric{Int: n, Valid: true}, nil
}
