package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// PreferenceRepository is the durable key-value preference cache.
// It backs the display currency and notification switches.
type PreferenceRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewPreferenceRepository creates a new PreferenceRepository with the provided database connection.
func NewPreferenceRepository(db *sql.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *PreferenceRepository) WithTx(tx *sql.Tx) *PreferenceRepository {
	return &PreferenceRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *PreferenceRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// Get returns the value stored under key. found is false when nothing is stored.
func (r *PreferenceRepository) Get(ctx context.Context, key string) (value string, found bool, err error) {
	query := `SELECT value FROM preference WHERE "key" = ?`

	err = r.getQuerier().QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query preference %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (r *PreferenceRepository) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO preference ("key", value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT("key") DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := r.getQuerier().ExecContext(ctx, query, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to store preference %q: %w", key, err)
	}
	return nil
}
