package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rahulk/campusmate/internal/app/models"
	"github.com/rahulk/campusmate/internal/pkg/apperrors"
	"github.com/rahulk/campusmate/internal/pkg/dberrors"
)

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

// Create creates a new student
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (department_id, full_name, roll_no, email, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		student.DepartmentID,
		student.FullName,
		student.RollNo,
		student.Email,
		student.PasswordHash,
	).Scan(&student.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, "students_roll_no_key") {
			return apperrors.ErrRollNoAlreadyExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `
		SELECT id, department_id, full_name, roll_no, email, password_hash
		FROM students
		WHERE id = $1
	`

	var student models.Student
	err := r.db.QueryRow(ctx, query, id).Scan(
		&student.ID,
		&student.DepartmentID,
		&student.FullName,
		&student.RollNo,
		&student.Email,
		&student.PasswordHash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// UpdateIdentifiers rewrites a student's roll number and email in one
// statement; used when a student moves to another department and both
// identifiers are re-minted.
func (r *StudentRepository) UpdateIdentifiers(ctx context.Context, id int64, departmentID int64, rollNo, email string) error {
	query := `
		UPDATE students
		SET department_id = $2, roll_no = $3, email = $4
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, id, departmentID, rollNo, email)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error updating student identifiers: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}
