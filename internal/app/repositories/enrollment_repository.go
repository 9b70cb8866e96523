package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rahulk/campusmate/internal/app/models"
	"github.com/rahulk/campusmate/internal/pkg/dberrors"
)

// ErrDuplicateEnrollment is returned when the insert hits either of the
// storage-level uniqueness constraints: one enrollment per (student, course)
// and one per (student, section).
var ErrDuplicateEnrollment = errors.New("enrollment already exists")

// EnrollmentRepository handles database operations for enrollments
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
	}
}

// Create inserts an enrollment record. A concurrent duplicate that slipped
// past the application-level probe surfaces as ErrDuplicateEnrollment.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	query := `
		INSERT INTO enrollments (student_id, course_id, section_id, academic_year)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		enrollment.StudentID,
		enrollment.CourseID,
		enrollment.SectionID,
		enrollment.AcademicYear,
	).Scan(&enrollment.ID, &enrollment.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "enrollments_student_course_key") ||
			dberrors.IsDuplicateConstraintError(err, "enrollments_student_section_key") {
			return ErrDuplicateEnrollment
		}
		return fmt.Errorf("error creating enrollment: %w", err)
	}

	return nil
}

// ExistsForCourse reports whether the student already holds an enrollment
// for the course.
func (r *EnrollmentRepository) ExistsForCourse(ctx context.Context, studentID, courseID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM enrollments WHERE student_id = $1 AND course_id = $2)`,
		studentID, courseID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking enrollment existence: %w", err)
	}

	return exists, nil
}

// GetByStudent retrieves all enrollments of a student with their sections
func (r *EnrollmentRepository) GetByStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	query := `
		SELECT e.id, e.student_id, e.course_id, e.section_id, e.academic_year, e.created_at,
		       s.id, s.course_id, s.teacher_id, s.section_name, s.academic_year, s.capacity, s.current_strength
		FROM enrollments e
		JOIN sections s ON s.id = e.section_id
		WHERE e.student_id = $1
		ORDER BY e.created_at
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		var enrollment models.Enrollment
		var section models.Section
		if err := rows.Scan(
			&enrollment.ID,
			&enrollment.StudentID,
			&enrollment.CourseID,
			&enrollment.SectionID,
			&enrollment.AcademicYear,
			&enrollment.CreatedAt,
			&section.ID,
			&section.CourseID,
			&section.TeacherID,
			&section.Name,
			&section.AcademicYear,
			&section.Capacity,
			&section.CurrentStrength,
		); err != nil {
			return nil, err
		}
		enrollment.Section = &section
		enrollments = append(enrollments, &enrollment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return enrollments, nil
}
