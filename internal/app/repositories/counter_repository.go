package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rahulk/campusmate/internal/pkg/apperrors"
)

// CounterRepository hands out values from named monotonic counters. Both
// operations are single statements, so concurrent callers across any number
// of processes are serialized by the database, not by an in-process lock.
type CounterRepository struct {
	db *pgxpool.Pool
}

// NewCounterRepository creates a new counter repository
func NewCounterRepository(db *pgxpool.Pool) *CounterRepository {
	return &CounterRepository{
		db: db,
	}
}

// EnsureCounter creates the counter at zero if it does not exist yet. The
// upsert is atomic; two concurrent first-time callers cannot both insert.
func (r *CounterRepository) EnsureCounter(ctx context.Context, key string) error {
	query := `
		INSERT INTO counters (key, value)
		VALUES ($1, 0)
		ON CONFLICT (key) DO NOTHING
	`

	if _, err := r.db.Exec(ctx, query, key); err != nil {
		return fmt.Errorf("error ensuring counter %q: %w", key, err)
	}

	return nil
}

// IncrementCounter atomically bumps the counter and returns the new value.
// The read-modify-write happens inside one UPDATE, so every caller observes
// a distinct value. A missing counter is the caller's error: create it first
// with EnsureCounter.
func (r *CounterRepository) IncrementCounter(ctx context.Context, key string) (int64, error) {
	query := `
		UPDATE counters
		SET value = value + 1
		WHERE key = $1
		RETURNING value
	`

	var value int64
	err := r.db.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrCounterNotFound
		}
		return 0, fmt.Errorf("error incrementing counter %q: %w", key, err)
	}

	return value, nil
}

// GetCounter reads the current value without consuming it.
func (r *CounterRepository) GetCounter(ctx context.Context, key string) (int64, error) {
	var value int64
	err := r.db.QueryRow(ctx, `SELECT value FROM counters WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrCounterNotFound
		}
		return 0, fmt.Errorf("error reading counter %q: %w", key, err)
	}

	return value, nil
}
