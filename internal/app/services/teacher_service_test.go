package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulk/campusmate/internal/app/models"
	"github.com/rahulk/campusmate/internal/app/models/dto"
	"github.com/rahulk/campusmate/internal/pkg/apperrors"
)

func newTestTeacherService(prober *memHandleProber) (*TeacherService, *memTeacherStore) {
	departments := newMemDepartmentStore(
		&models.Department{ID: 1, Name: "Computer Science", Code: "CSE"},
	)
	minter := NewIdentifierService(departments, newMemSequenceStore(), prober)
	teachers := newMemTeacherStore()
	svc := NewTeacherService(teachers, departments, minter, "nitw.edu", "Pass@123", zerolog.Nop())
	return svc, teachers
}

func TestCreateTeacher(t *testing.T) {
	svc, _ := newTestTeacherService(newMemHandleProber())

	resp, err := svc.CreateTeacher(context.Background(), &dto.CreateTeacherRequest{
		FullName:     "Asha Nair",
		DepartmentID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "asha.nair_cse@nitw.edu", resp.Credentials.Email)
	assert.Equal(t, "Pass@123", resp.Credentials.Password)
}

func TestCreateTeacher_HandleCollisionWalks(t *testing.T) {
	prober := newMemHandleProber("asha.nair_cse@nitw.edu")
	svc, _ := newTestTeacherService(prober)

	resp, err := svc.CreateTeacher(context.Background(), &dto.CreateTeacherRequest{
		FullName:     "Asha Nair",
		DepartmentID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "asha.nair_cse_1@nitw.edu", resp.Credentials.Email)
}

func TestCreateTeacher_DuplicateEmailSurfaces(t *testing.T) {
	// The probe misses a concurrent mint; the store's uniqueness constraint
	// is the backstop and its conflict reaches the caller.
	svc, teachers := newTestTeacherService(newMemHandleProber())
	require.NoError(t, teachers.Create(context.Background(), &models.Teacher{
		DepartmentID: 1,
		FullName:     "Asha Nair",
		Email:        "asha.nair_cse@nitw.edu",
	}))

	_, err := svc.CreateTeacher(context.Background(), &dto.CreateTeacherRequest{
		FullName:     "Asha Nair",
		DepartmentID: 1,
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestCreateTeacher_UnknownDepartment(t *testing.T) {
	svc, _ := newTestTeacherService(newMemHandleProber())

	_, err := svc.CreateTeacher(context.Background(), &dto.CreateTeacherRequest{
		FullName:     "Asha Nair",
		DepartmentID: 7,
	})
	assert.ErrorIs(t, err, apperrors.ErrDepartmentNotFound)
}
