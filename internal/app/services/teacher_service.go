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

// TeacherStore persists teachers.
type TeacherStore interface {
	Create(ctx context.Context, teacher *models.Teacher) error
}

// TeacherService handles teacher account creation.
type TeacherService struct {
	teachers    TeacherStore
	departments DepartmentStore
	minter      IdentifierMinter
	emailDomain string
	initialPass string
	logger      zerolog.Logger
}

// NewTeacherService creates a new teacher service
func NewTeacherService(teachers TeacherStore, departments DepartmentStore, minter IdentifierMinter, emailDomain, initialPassword string, logger zerolog.Logger) *TeacherService {
	return &TeacherService{
		teachers:    teachers,
		departments: departments,
		minter:      minter,
		emailDomain: emailDomain,
		initialPass: initialPassword,
		logger:      logger,
	}
}

// CreateTeacher mints an email handle from the teacher's name and department
// code ("asha.nair_cse@<domain>") and creates the account. The minting probe
// is best-effort; a lost race lands here as ErrEmailAlreadyExists from the
// store and is surfaced to the caller for retry.
func (s *TeacherService) CreateTeacher(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherCreatedResponse, error) {
	if strings.TrimSpace(req.FullName) == "" {
		return nil, fmt.Errorf("%w: full name cannot be empty", apperrors.ErrValidationFailed)
	}

	department, err := s.departments.GetByID(ctx, req.DepartmentID)
	if err != nil {
		return nil, err
	}

	base := SlugifyHandle(req.FullName) + "_" + strings.ToLower(department.Code)
	email, err := s.minter.MintHandle(ctx, base, s.emailDomain)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.initialPass), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	teacher := &models.Teacher{
		DepartmentID: department.ID,
		FullName:     strings.TrimSpace(req.FullName),
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := s.teachers.Create(ctx, teacher); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("teacherId", teacher.ID).
		Str("email", email).
		Msg("Teacher created")

	return &dto.TeacherCreatedResponse{
		ID:       teacher.ID,
		FullName: teacher.FullName,
		Credentials: &dto.Credentials{
			Email:    email,
			Password: s.initialPass,
		},
	}, nil
}
