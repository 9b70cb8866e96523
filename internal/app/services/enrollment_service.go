package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rahulk/campusmate/internal/app/models"
	"github.com/rahulk/campusmate/internal/app/repositories"
	"github.com/rahulk/campusmate/internal/pkg/apperrors"
)

// SeatStore provides the atomic seat operations. Implementations must make
// TryReserveSeat a single conditional write (increment only while strength
// is below capacity) and ReleaseSeat a decrement floored at zero.
type SeatStore interface {
	CandidateSections(ctx context.Context, courseID int64, academicYear string) ([]*models.Section, error)
	TryReserveSeat(ctx context.Context, sectionID int64) (bool, error)
	ReleaseSeat(ctx context.Context, sectionID int64) error
}

// EnrollmentStore persists enrollment records. Create must surface
// repositories.ErrDuplicateEnrollment when either uniqueness constraint on
// (student, course) or (student, section) is violated.
type EnrollmentStore interface {
	ExistsForCourse(ctx context.Context, studentID, courseID int64) (bool, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
	GetByStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, error)
}

// CourseStore resolves the course being enrolled into.
type CourseStore interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
}

// EnrollResult describes a successful allocation.
type EnrollResult struct {
	SectionID    int64
	SectionName  string
	AcademicYear string
}

// EnrollmentService coordinates seat allocation. All shared mutable state
// (section strengths) is touched only through the SeatStore's conditional
// operations; the service itself holds no locks and is safe for concurrent
// use from any number of request handlers or processes.
type EnrollmentService struct {
	courses     CourseStore
	sections    SeatStore
	enrollments EnrollmentStore
	logger      zerolog.Logger
}

// NewEnrollmentService creates a new enrollment service
func NewEnrollmentService(courses CourseStore, sections SeatStore, enrollments EnrollmentStore, logger zerolog.Logger) *EnrollmentService {
	return &EnrollmentService{
		courses:     courses,
		sections:    sections,
		enrollments: enrollments,
		logger:      logger,
	}
}

// Enroll places the student into the first section of the course that still
// has a seat, filling sections in name order (A before B), and records the
// enrollment. Outcomes:
//
//   - success: the assigned section
//   - apperrors.ErrAlreadyEnrolled: the student already holds an enrollment
//     for this course; nothing was touched
//   - apperrors.ErrNoCapacity: every section is full
//   - apperrors.ErrCourseNotFound: unknown course
//   - apperrors.ErrAllocationFailed: storage fault; any seat reserved during
//     the attempt has been released before this returns
//
// Calling Enroll again for the same (student, course) never creates a second
// enrollment or consumes a second seat: either the existence probe or the
// storage uniqueness constraint stops it, and in the latter case the
// reserved seat is released again.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, courseID int64, academicYear string) (*EnrollResult, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("%w: checking course: %v", apperrors.ErrAllocationFailed, err)
	}

	enrolled, err := s.enrollments.ExistsForCourse(ctx, studentID, courseID)
	if err != nil {
		return nil, fmt.Errorf("%w: checking existing enrollment: %v", apperrors.ErrAllocationFailed, err)
	}
	if enrolled {
		return nil, apperrors.ErrAlreadyEnrolled
	}

	section, err := s.reserveSeat(ctx, courseID, academicYear)
	if err != nil {
		return nil, err
	}

	enrollment := &models.Enrollment{
		StudentID:    studentID,
		CourseID:     courseID,
		SectionID:    section.ID,
		AcademicYear: academicYear,
	}

	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		// The seat is held but the record did not land; give the seat back
		// before reporting anything.
		if relErr := s.sections.ReleaseSeat(ctx, section.ID); relErr != nil {
			s.logger.Error().Err(relErr).
				Int64("sectionId", section.ID).
				Int64("studentId", studentID).
				Msg("Seat release failed after enrollment insert failure; section strength needs reconciliation")
			return nil, fmt.Errorf("%w: %v", apperrors.ErrAllocationFailed, relErr)
		}

		if errors.Is(err, repositories.ErrDuplicateEnrollment) {
			// A concurrent duplicate slipped past the probe; the constraint
			// caught it and the seat has been released.
			return nil, apperrors.ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("%w: creating enrollment: %v", apperrors.ErrAllocationFailed, err)
	}

	s.logger.Info().
		Int64("studentId", studentID).
		Int64("courseId", courseID).
		Str("section", section.Name).
		Msg("Enrollment successful")

	return &EnrollResult{
		SectionID:    section.ID,
		SectionName:  section.Name,
		AcademicYear: academicYear,
	}, nil
}

// ListEnrollments returns the student's enrollments with their sections.
func (s *EnrollmentService) ListEnrollments(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	enrollments, err := s.enrollments.GetByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("listing enrollments: %w", err)
	}
	return enrollments, nil
}

// reserveSeat walks the candidate sections in name order and attempts the
// conditional increment on each. Losing the race on one candidate moves to
// the next; no candidate accepting means no capacity. There is no global
// lock: competing callers issue independent conditional writes and at most
// one wins any given seat.
func (s *EnrollmentService) reserveSeat(ctx context.Context, courseID int64, academicYear string) (*models.Section, error) {
	candidates, err := s.sections.CandidateSections(ctx, courseID, academicYear)
	if err != nil {
		return nil, fmt.Errorf("%w: listing sections: %v", apperrors.ErrAllocationFailed, err)
	}

	for _, candidate := range candidates {
		reserved, err := s.sections.TryReserveSeat(ctx, candidate.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: reserving seat: %v", apperrors.ErrAllocationFailed, err)
		}
		if reserved {
			return candidate, nil
		}
	}

	return nil, apperrors.ErrNoCapacity
}
