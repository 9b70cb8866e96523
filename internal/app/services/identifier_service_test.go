package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulk/campusmate/internal/app/models"
	"github.com/rahulk/campusmate/internal/pkg/apperrors"
)

func newTestMinter(prober *memHandleProber) (*IdentifierService, *memSequenceStore) {
	departments := newMemDepartmentStore(
		&models.Department{ID: 1, Name: "Computer Science", Code: "CSE"},
		&models.Department{ID: 2, Name: "Mechanical Engineering", Code: "ME"},
	)
	sequences := newMemSequenceStore()
	return NewIdentifierService(departments, sequences, prober), sequences
}

func TestMintRollNumber_Format(t *testing.T) {
	svc, _ := newTestMinter(newMemHandleProber())

	roll, err := svc.MintRollNumber(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "CSE00001", roll)

	roll, err = svc.MintRollNumber(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "CSE00002", roll)

	// Independent sequence per department
	roll, err = svc.MintRollNumber(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "ME00001", roll)
}

func TestMintRollNumber_UnknownDepartment(t *testing.T) {
	svc, _ := newTestMinter(newMemHandleProber())

	_, err := svc.MintRollNumber(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrDepartmentNotFound)
}

func TestMintRollNumber_ConcurrentMintsAreDistinct(t *testing.T) {
	svc, sequences := newTestMinter(newMemHandleProber())

	// Pre-advance the counter so the expected set is {V+1 .. V+N}
	require.NoError(t, sequences.EnsureCounter(context.Background(), rollCounterKey(1)))
	for i := 0; i < 7; i++ {
		_, err := sequences.IncrementCounter(context.Background(), rollCounterKey(1))
		require.NoError(t, err)
	}

	const n = 40
	var wg sync.WaitGroup
	rolls := make([]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rolls[i], errs[i] = svc.MintRollNumber(context.Background(), 1)
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for i, roll := range rolls {
		require.NoError(t, errs[i])
		assert.False(t, seen[roll], "roll number %s issued twice", roll)
		seen[roll] = true
	}
	for i := 8; i < 8+n; i++ {
		expected := fmt.Sprintf("CSE%05d", i)
		assert.True(t, seen[expected], "expected %s in the issued set", expected)
	}
}

func TestMintCounterMissingWithoutEnsure(t *testing.T) {
	sequences := newMemSequenceStore()

	_, err := sequences.IncrementCounter(context.Background(), "dept:9:roll")
	assert.ErrorIs(t, err, apperrors.ErrCounterNotFound)
}

func TestMintHandle_FirstCandidateFree(t *testing.T) {
	svc, _ := newTestMinter(newMemHandleProber())

	handle, err := svc.MintHandle(context.Background(), "Asha R Nair", "nitw.edu")
	require.NoError(t, err)
	assert.Equal(t, "asha.r.nair@nitw.edu", handle)
}

func TestMintHandle_WalksCollisions(t *testing.T) {
	prober := newMemHandleProber(
		"asha.nair@nitw.edu",
		"asha.nair_1@nitw.edu",
	)
	svc, _ := newTestMinter(prober)

	handle, err := svc.MintHandle(context.Background(), "Asha Nair", "nitw.edu")
	require.NoError(t, err)
	assert.Equal(t, "asha.nair_2@nitw.edu", handle)
}

func TestSlugifyHandle(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single word", "Asha", "asha"},
		{"spaces to dots", "Asha Nair", "asha.nair"},
		{"collapses whitespace", "  Asha   R   Nair ", "asha.r.nair"},
		{"already lowercase", "ravi kumar", "ravi.kumar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SlugifyHandle(tt.in))
		})
	}
}
