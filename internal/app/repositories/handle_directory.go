package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// HandleDirectory answers "is this email handle taken anywhere" for the
// minting probe loop. It spans both account tables because minted handles
// share one institute domain.
type HandleDirectory struct {
	db *pgxpool.Pool
}

// NewHandleDirectory creates a new handle directory
func NewHandleDirectory(db *pgxpool.Pool) *HandleDirectory {
	return &HandleDirectory{
		db: db,
	}
}

// HandleInUse reports whether any student or teacher already uses the email
func (d *HandleDirectory) HandleInUse(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := d.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM students WHERE email = $1)
		    OR EXISTS(SELECT 1 FROM teachers WHERE email = $1)`,
		email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error probing handle %q: %w", email, err)
	}

	return exists, nil
}
