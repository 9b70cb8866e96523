package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rahulk/campusmate/internal/app/models"
	"github.com/rahulk/campusmate/internal/pkg/apperrors"
)

// SectionRepository handles database operations for sections. Seat state is
// changed only through TryReserveSeat and ReleaseSeat; a plain UPDATE of
// current_strength would reintroduce the lost-update race these exist to
// prevent.
type SectionRepository struct {
	db *pgxpool.Pool
}

// NewSectionRepository creates a new section repository
func NewSectionRepository(db *pgxpool.Pool) *SectionRepository {
	return &SectionRepository{
		db: db,
	}
}

// Create creates a new section
func (r *SectionRepository) Create(ctx context.Context, section *models.Section) error {
	query := `
		INSERT INTO sections (course_id, teacher_id, section_name, academic_year, capacity, current_strength)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		section.CourseID,
		section.TeacherID,
		section.Name,
		section.AcademicYear,
		section.Capacity,
		section.CurrentStrength,
	).Scan(&section.ID)
	if err != nil {
		return fmt.Errorf("error creating section: %w", err)
	}

	return nil
}

// GetByID retrieves a section by ID
func (r *SectionRepository) GetByID(ctx context.Context, id int64) (*models.Section, error) {
	query := `
		SELECT id, course_id, teacher_id, section_name, academic_year, capacity, current_strength
		FROM sections
		WHERE id = $1
	`

	var section models.Section
	err := r.db.QueryRow(ctx, query, id).Scan(
		&section.ID,
		&section.CourseID,
		&section.TeacherID,
		&section.Name,
		&section.AcademicYear,
		&section.Capacity,
		&section.CurrentStrength,
	)
	if err != nil {
		return nil, fmt.Errorf("error retrieving section: %w", err)
	}

	return &section, nil
}

// CandidateSections returns the sections of a course that still have spare
// capacity for the given academic year, ordered by section name ascending.
// The order is policy: section A fills before B, reproducibly. A section
// with capacity 0 can never appear because capacity >= 1 by schema and the
// predicate requires strength below it.
func (r *SectionRepository) CandidateSections(ctx context.Context, courseID int64, academicYear string) ([]*models.Section, error) {
	query := `
		SELECT id, course_id, teacher_id, section_name, academic_year, capacity, current_strength
		FROM sections
		WHERE course_id = $1
		  AND academic_year = $2
		  AND current_strength < capacity
		ORDER BY section_name ASC
	`

	rows, err := r.db.Query(ctx, query, courseID, academicYear)
	if err != nil {
		return nil, fmt.Errorf("error listing candidate sections: %w", err)
	}
	defer rows.Close()

	var sections []*models.Section
	for rows.Next() {
		var section models.Section
		if err := rows.Scan(
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
		sections = append(sections, &section)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sections, nil
}

// TryReserveSeat performs the compare-and-increment: the strength is bumped
// only if it is still below capacity at the moment the row is written. A
// false return means the seat race was lost (or capacity was reduced
// concurrently) and the caller should move to the next candidate.
func (r *SectionRepository) TryReserveSeat(ctx context.Context, sectionID int64) (bool, error) {
	query := `
		UPDATE sections
		SET current_strength = current_strength + 1
		WHERE id = $1
		  AND current_strength < capacity
	`

	tag, err := r.db.Exec(ctx, query, sectionID)
	if err != nil {
		return false, fmt.Errorf("error reserving seat in section %d: %w", sectionID, err)
	}

	return tag.RowsAffected() == 1, nil
}

// ReleaseSeat undoes one reservation, floored at zero. Compensating action
// only; it is never part of a regular unenroll path here.
func (r *SectionRepository) ReleaseSeat(ctx context.Context, sectionID int64) error {
	query := `
		UPDATE sections
		SET current_strength = current_strength - 1
		WHERE id = $1
		  AND current_strength > 0
	`

	if _, err := r.db.Exec(ctx, query, sectionID); err != nil {
		return fmt.Errorf("%w: section %d: %v", apperrors.ErrSeatReleaseFailed, sectionID, err)
	}

	return nil
}
