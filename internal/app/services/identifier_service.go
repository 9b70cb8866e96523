package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rahulk/campusmate/internal/app/models"
)

// rollNumberWidth is the zero-padded width of the sequence part of a roll
// number: CSE00042.
const rollNumberWidth = 5

// SequenceStore is the named-counter collaborator. IncrementCounter must be
// linearizable: concurrent callers each observe a distinct value.
type SequenceStore interface {
	EnsureCounter(ctx context.Context, key string) error
	IncrementCounter(ctx context.Context, key string) (int64, error)
}

// HandleProber answers whether an email handle is already taken.
type HandleProber interface {
	HandleInUse(ctx context.Context, email string) (bool, error)
}

// DepartmentStore resolves departments for roll-number prefixes.
type DepartmentStore interface {
	GetByID(ctx context.Context, id int64) (*models.Department, error)
}

// IdentifierService mints human-readable identifiers: roll numbers from the
// per-department counter and email handles from a collision probe loop.
type IdentifierService struct {
	departments DepartmentStore
	sequences   SequenceStore
	handles     HandleProber
}

// NewIdentifierService creates a new identifier service
func NewIdentifierService(departments DepartmentStore, sequences SequenceStore, handles HandleProber) *IdentifierService {
	return &IdentifierService{
		departments: departments,
		sequences:   sequences,
		handles:     handles,
	}
}

// rollCounterKey names the department's roll sequence in the counters table.
func rollCounterKey(departmentID int64) string {
	return fmt.Sprintf("dept:%d:roll", departmentID)
}

// MintRollNumber issues the next roll number for the department, e.g.
// CSE00042. Uniqueness comes from the counter's linearizable increment, not
// from any post-hoc check; the counter is created on first use via an
// atomic upsert so concurrent first students cannot double-initialize it.
func (s *IdentifierService) MintRollNumber(ctx context.Context, departmentID int64) (string, error) {
	department, err := s.departments.GetByID(ctx, departmentID)
	if err != nil {
		return "", err
	}

	key := rollCounterKey(department.ID)
	if err := s.sequences.EnsureCounter(ctx, key); err != nil {
		return "", err
	}

	next, err := s.sequences.IncrementCounter(ctx, key)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s%0*d", strings.ToUpper(department.Code), rollNumberWidth, next), nil
}

// MintHandle finds a free email handle by probing base@domain, base_1@domain,
// base_2@domain, ... in order and returning the first unused candidate.
//
// The probe loop is best-effort, not atomic: two concurrent mints of the
// same base can both be handed the same candidate before either commits.
// The UNIQUE constraint on the email columns is the backstop; the losing
// insert surfaces a duplicate-email conflict to its caller.
func (s *IdentifierService) MintHandle(ctx context.Context, base, domain string) (string, error) {
	slug := SlugifyHandle(base)

	candidate := fmt.Sprintf("%s@%s", slug, domain)
	for suffix := 1; ; suffix++ {
		inUse, err := s.handles.HandleInUse(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !inUse {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s_%d@%s", slug, suffix, domain)
	}
}

// SlugifyHandle lowercases a display name and joins its words with dots:
// "Asha R Nair" -> "asha.r.nair".
func SlugifyHandle(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	return strings.Join(fields, ".")
}
