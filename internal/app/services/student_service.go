package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/rahulk/campusmate/internal/app/models"
	"github.com/rahulk/campusmate/internal/app/models/dto"
	"github.com/rahulk/campusmate/internal/pkg/apperrors"
)

// IdentifierMinter issues roll numbers and email handles.
type IdentifierMinter interface {
	MintRollNumber(ctx context.Context, departmentID int64) (string, error)
	MintHandle(ctx context.Context, base, domain string) (string, error)
}

// StudentStore persists students.
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	UpdateIdentifiers(ctx context.Context, id int64, departmentID int64, rollNo, email string) error
}

// StudentService handles student account creation and department moves. Both
// flows consume minted identifiers; the student never chooses a roll number
// or email.
type StudentService struct {
	students    StudentStore
	departments DepartmentStore
	minter      IdentifierMinter
	emailDomain string
	initialPass string
	logger      zerolog.Logger
}

// NewStudentService creates a new student service
func NewStudentService(students StudentStore, departments DepartmentStore, minter IdentifierMinter, emailDomain, initialPassword string, logger zerolog.Logger) *StudentService {
	return &StudentService{
		students:    students,
		departments: departments,
		minter:      minter,
		emailDomain: emailDomain,
		initialPass: initialPassword,
		logger:      logger,
	}
}

// CreateStudent mints a roll number from the department's counter, derives
// the institute email from it, and creates the account. The login email is
// the lowercased roll number at the institute domain, so its uniqueness
// follows from the counter's.
func (s *StudentService) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentCreatedResponse, error) {
	if strings.TrimSpace(req.FullName) == "" {
		return nil, fmt.Errorf("%w: full name cannot be empty", apperrors.ErrValidationFailed)
	}

	rollNo, err := s.minter.MintRollNumber(ctx, req.DepartmentID)
	if err != nil {
		return nil, err
	}
	email := strings.ToLower(rollNo) + "@" + s.emailDomain

	hash, err := bcrypt.GenerateFromPassword([]byte(s.initialPass), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	student := &models.Student{
		DepartmentID: req.DepartmentID,
		FullName:     strings.TrimSpace(req.FullName),
		RollNo:       rollNo,
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := s.students.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("studentId", student.ID).
		Str("rollNo", rollNo).
		Msg("Student created")

	return &dto.StudentCreatedResponse{
		ID:       student.ID,
		FullName: student.FullName,
		RollNo:   student.RollNo,
		Credentials: &dto.Credentials{
			Email:    email,
			Password: s.initialPass,
		},
	}, nil
}

// MoveToDepartment re-mints the student's roll number and email in the new
// department and rewrites both identifiers in one statement. The old roll
// number is retired, not recycled; the counter only moves forward.
func (s *StudentService) MoveToDepartment(ctx context.Context, studentID, departmentID int64) (*models.Student, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.DepartmentID == departmentID {
		return nil, fmt.Errorf("%w: student already in this department", apperrors.ErrValidationFailed)
	}

	rollNo, err := s.minter.MintRollNumber(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	email := strings.ToLower(rollNo) + "@" + s.emailDomain

	if err := s.students.UpdateIdentifiers(ctx, studentID, departmentID, rollNo, email); err != nil {
		return nil, err
	}

	student.DepartmentID = departmentID
	student.RollNo = rollNo
	student.Email = email
	return student, nil
}
