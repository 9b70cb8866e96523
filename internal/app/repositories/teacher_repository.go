package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rahulk/campusmate/internal/app/models"
	"github.com/rahulk/campusmate/internal/pkg/apperrors"
	"github.com/rahulk/campusmate/internal/pkg/dberrors"
)

// TeacherRepository handles database operations for teachers
type TeacherRepository struct {
	db *pgxpool.Pool
}

// NewTeacherRepository creates a new teacher repository
func NewTeacherRepository(db *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{
		db: db,
	}
}

// Create creates a new teacher. A duplicate email is the backstop for the
// best-effort handle minting loop: of two racing minters handed the same
// candidate, exactly one insert commits.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	query := `
		INSERT INTO teachers (department_id, full_name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		teacher.DepartmentID,
		teacher.FullName,
		teacher.Email,
		teacher.PasswordHash,
	).Scan(&teacher.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "teachers_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating teacher: %w", err)
	}

	return nil
}
