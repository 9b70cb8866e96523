package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/rahulk/campusmate/internal/db"
)

// CreateDefaultData seeds a starter department with one course and two
// sections when the database is empty, so a fresh install can exercise the
// enrollment path immediately. The rows land in one transaction: either the
// whole fixture exists or none of it.
func CreateDefaultData(ctx context.Context, database *db.PostgresDB, academicYear string, lgr zerolog.Logger) error {
	var departments int
	if err := database.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM departments`).Scan(&departments); err != nil {
		return fmt.Errorf("failed to check existing departments: %w", err)
	}
	if departments > 0 {
		return nil
	}

	lgr.Info().Msg("Empty database, creating default department and course...")

	return database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var departmentID int64
		err := tx.QueryRow(ctx, `
			INSERT INTO departments (name, code) VALUES ($1, $2) RETURNING id`,
			"Computer Science", "CSE").Scan(&departmentID)
		if err != nil {
			return fmt.Errorf("failed to seed department: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO counters (key, value) VALUES ($1, 0) ON CONFLICT (key) DO NOTHING`,
			fmt.Sprintf("dept:%d:roll", departmentID))
		if err != nil {
			return fmt.Errorf("failed to seed roll counter: %w", err)
		}

		var courseID int64
		err = tx.QueryRow(ctx, `
			INSERT INTO courses (department_id, code, name, credits, semester)
			VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			departmentID, "CS101", "Introduction to Programming", 4, 1).Scan(&courseID)
		if err != nil {
			return fmt.Errorf("failed to seed course: %w", err)
		}

		for _, name := range []string{"A", "B"} {
			_, err = tx.Exec(ctx, `
				INSERT INTO sections (course_id, section_name, academic_year, capacity, current_strength)
				VALUES ($1, $2, $3, $4, 0)`,
				courseID, name, academicYear, 60)
			if err != nil {
				return fmt.Errorf("failed to seed section %s: %w", name, err)
			}
		}

		return nil
	})
}
