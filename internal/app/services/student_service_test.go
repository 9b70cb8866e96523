package services

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rahulk/campusmate/internal/app/models"
	"github.com/rahulk/campusmate/internal/app/models/dto"
	"github.com/rahulk/campusmate/internal/pkg/apperrors"
)

func newTestStudentService() (*StudentService, *memStudentStore) {
	departments := newMemDepartmentStore(
		&models.Department{ID: 1, Name: "Computer Science", Code: "CSE"},
		&models.Department{ID: 2, Name: "Mechanical Engineering", Code: "ME"},
	)
	minter := NewIdentifierService(departments, newMemSequenceStore(), newMemHandleProber())
	students := newMemStudentStore()
	svc := NewStudentService(students, departments, minter, "nitw.edu", "Pass@123", zerolog.Nop())
	return svc, students
}

func TestCreateStudent(t *testing.T) {
	svc, _ := newTestStudentService()

	resp, err := svc.CreateStudent(context.Background(), &dto.CreateStudentRequest{
		FullName:     "Ravi Kumar",
		DepartmentID: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, "CSE00001", resp.RollNo)
	assert.Equal(t, "cse00001@nitw.edu", resp.Credentials.Email)
	assert.Equal(t, "Pass@123", resp.Credentials.Password)
	assert.NotZero(t, resp.ID)
}

func TestCreateStudent_PasswordIsHashed(t *testing.T) {
	svc, students := newTestStudentService()

	resp, err := svc.CreateStudent(context.Background(), &dto.CreateStudentRequest{
		FullName:     "Ravi Kumar",
		DepartmentID: 1,
	})
	require.NoError(t, err)

	stored, err := students.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "Pass@123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Pass@123")))
}

func TestCreateStudent_EmptyName(t *testing.T) {
	svc, _ := newTestStudentService()

	_, err := svc.CreateStudent(context.Background(), &dto.CreateStudentRequest{
		FullName:     "   ",
		DepartmentID: 1,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCreateStudent_UnknownDepartment(t *testing.T) {
	svc, _ := newTestStudentService()

	_, err := svc.CreateStudent(context.Background(), &dto.CreateStudentRequest{
		FullName:     "Ravi Kumar",
		DepartmentID: 99,
	})
	assert.ErrorIs(t, err, apperrors.ErrDepartmentNotFound)
}

func TestCreateStudent_ConcurrentRollNumbersDistinct(t *testing.T) {
	svc, _ := newTestStudentService()

	const n = 25
	var wg sync.WaitGroup
	resps := make([]*dto.StudentCreatedResponse, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resps[i], errs[i] = svc.CreateStudent(context.Background(), &dto.CreateStudentRequest{
				FullName:     "Ravi Kumar",
				DepartmentID: 1,
			})
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.False(t, seen[resps[i].RollNo], "roll number %s issued twice", resps[i].RollNo)
		seen[resps[i].RollNo] = true
	}
}

func TestMoveToDepartment(t *testing.T) {
	svc, students := newTestStudentService()

	resp, err := svc.CreateStudent(context.Background(), &dto.CreateStudentRequest{
		FullName:     "Ravi Kumar",
		DepartmentID: 1,
	})
	require.NoError(t, err)

	moved, err := svc.MoveToDepartment(context.Background(), resp.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, "ME00001", moved.RollNo)
	assert.Equal(t, "me00001@nitw.edu", moved.Email)

	stored, err := students.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stored.DepartmentID)
	assert.Equal(t, "ME00001", stored.RollNo)
}

func TestMoveToDepartment_SameDepartmentRejected(t *testing.T) {
	svc, _ := newTestStudentService()

	resp, err := svc.CreateStudent(context.Background(), &dto.CreateStudentRequest{
		FullName:     "Ravi Kumar",
		DepartmentID: 1,
	})
	require.NoError(t, err)

	_, err = svc.MoveToDepartment(context.Background(), resp.ID, 1)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
