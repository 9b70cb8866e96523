package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Identity errors (the caller is authenticated upstream; these cover
	// a missing or unreadable principal on the request)
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenInvalid     = errors.New("invalid token")
	ErrPermissionDenied = errors.New("permission denied")
)

// Allocation errors
var (
	// ErrAlreadyEnrolled is returned when the student already holds an
	// enrollment for the course. Not a retry target.
	ErrAlreadyEnrolled = errors.New("already enrolled in this course")
	// ErrNoCapacity is returned when every section of the course is full.
	ErrNoCapacity = errors.New("all sections are full")
	// ErrAllocationFailed covers storage faults during enrollment. The seat
	// reserved for the attempt has been released by the time it surfaces.
	ErrAllocationFailed = errors.New("enrollment could not be completed")
	// ErrSeatReleaseFailed marks a failed compensating release. The section
	// strength may be inconsistent and needs reconciliation.
	ErrSeatReleaseFailed = errors.New("failed to release reserved seat")
)

// Counter errors
var (
	ErrCounterNotFound = errors.New("counter not found")
)

// Entity errors
var (
	ErrCourseNotFound      = errors.New("course not found")
	ErrDepartmentNotFound  = errors.New("department not found")
	ErrStudentNotFound     = errors.New("student not found")
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrRollNoAlreadyExists = errors.New("roll number already exists")
)

// Is reports whether err matches target or any error in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}
	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
