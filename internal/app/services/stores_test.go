package services

import (
	"context"
	"sort"
	"sync"

	"github.com/rahulk/campusmate/internal/app/models"
	"github.com/rahulk/campusmate/internal/app/repositories"
	"github.com/rahulk/campusmate/internal/pkg/apperrors"
)

// In-memory stores backing the service tests. Each mirrors the contract of
// its repository: mutations to shared state happen under one lock, the way
// the database serializes a single conditional statement.

type memCourseStore struct {
	mu      sync.Mutex
	courses map[int64]*models.Course
}

func newMemCourseStore(courses ...*models.Course) *memCourseStore {
	s := &memCourseStore{courses: make(map[int64]*models.Course)}
	for _, c := range courses {
		s.courses[c.ID] = c
	}
	return s
}

func (s *memCourseStore) GetByID(_ context.Context, id int64) (*models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	course, ok := s.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

type memSeatStore struct {
	mu       sync.Mutex
	sections map[int64]*models.Section

	releaseErr error // injected ReleaseSeat failure
}

func newMemSeatStore(sections ...*models.Section) *memSeatStore {
	s := &memSeatStore{sections: make(map[int64]*models.Section)}
	for _, sec := range sections {
		s.sections[sec.ID] = sec
	}
	return s
}

func (s *memSeatStore) CandidateSections(_ context.Context, courseID int64, academicYear string) ([]*models.Section, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var candidates []*models.Section
	for _, sec := range s.sections {
		if sec.CourseID == courseID && sec.AcademicYear == academicYear && sec.CurrentStrength < sec.Capacity {
			copy := *sec
			candidates = append(candidates, &copy)
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Name < candidates[j].Name })
	return candidates, nil
}

func (s *memSeatStore) TryReserveSeat(_ context.Context, sectionID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sec, ok := s.sections[sectionID]
	if !ok || sec.CurrentStrength >= sec.Capacity {
		return false, nil
	}
	sec.CurrentStrength++
	return true, nil
}

func (s *memSeatStore) ReleaseSeat(_ context.Context, sectionID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.releaseErr != nil {
		return s.releaseErr
	}
	if sec, ok := s.sections[sectionID]; ok && sec.CurrentStrength > 0 {
		sec.CurrentStrength--
	}
	return nil
}

func (s *memSeatStore) strength(sectionID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sections[sectionID].CurrentStrength
}

type memEnrollmentStore struct {
	mu          sync.Mutex
	nextID      int64
	enrollments []*models.Enrollment
	byCourse    map[[2]int64]bool // (student, course)
	bySection   map[[2]int64]bool // (student, section)

	createErr error // injected Create failure
}

func newMemEnrollmentStore() *memEnrollmentStore {
	return &memEnrollmentStore{
		byCourse:  make(map[[2]int64]bool),
		bySection: make(map[[2]int64]bool),
	}
}

func (s *memEnrollmentStore) ExistsForCourse(_ context.Context, studentID, courseID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byCourse[[2]int64{studentID, courseID}], nil
}

func (s *memEnrollmentStore) Create(_ context.Context, enrollment *models.Enrollment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.createErr != nil {
		return s.createErr
	}

	courseKey := [2]int64{enrollment.StudentID, enrollment.CourseID}
	sectionKey := [2]int64{enrollment.StudentID, enrollment.SectionID}
	if s.byCourse[courseKey] || s.bySection[sectionKey] {
		return repositories.ErrDuplicateEnrollment
	}

	s.nextID++
	enrollment.ID = s.nextID
	s.byCourse[courseKey] = true
	s.bySection[sectionKey] = true
	record := *enrollment
	s.enrollments = append(s.enrollments, &record)
	return nil
}

func (s *memEnrollmentStore) GetByStudent(_ context.Context, studentID int64) ([]*models.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*models.Enrollment
	for _, e := range s.enrollments {
		if e.StudentID == studentID {
			copy := *e
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (s *memEnrollmentStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.enrollments)
}

type memSequenceStore struct {
	mu       sync.Mutex
	counters map[string]int64
	existing map[string]bool
}

func newMemSequenceStore() *memSequenceStore {
	return &memSequenceStore{
		counters: make(map[string]int64),
		existing: make(map[string]bool),
	}
}

func (s *memSequenceStore) EnsureCounter(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.existing[key] {
		s.existing[key] = true
		s.counters[key] = 0
	}
	return nil
}

func (s *memSequenceStore) IncrementCounter(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.existing[key] {
		return 0, apperrors.ErrCounterNotFound
	}
	s.counters[key]++
	return s.counters[key], nil
}

type memDepartmentStore struct {
	departments map[int64]*models.Department
}

func newMemDepartmentStore(departments ...*models.Department) *memDepartmentStore {
	s := &memDepartmentStore{departments: make(map[int64]*models.Department)}
	for _, d := range departments {
		s.departments[d.ID] = d
	}
	return s
}

func (s *memDepartmentStore) GetByID(_ context.Context, id int64) (*models.Department, error) {
	department, ok := s.departments[id]
	if !ok {
		return nil, apperrors.ErrDepartmentNotFound
	}
	return department, nil
}

type memHandleProber struct {
	mu    sync.Mutex
	taken map[string]bool
}

func newMemHandleProber(taken ...string) *memHandleProber {
	s := &memHandleProber{taken: make(map[string]bool)}
	for _, email := range taken {
		s.taken[email] = true
	}
	return s
}

func (s *memHandleProber) HandleInUse(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.taken[email], nil
}

type memStudentStore struct {
	mu       sync.Mutex
	nextID   int64
	students map[int64]*models.Student
	byRoll   map[string]bool
	byEmail  map[string]bool
}

func newMemStudentStore() *memStudentStore {
	return &memStudentStore{
		students: make(map[int64]*models.Student),
		byRoll:   make(map[string]bool),
		byEmail:  make(map[string]bool),
	}
}

func (s *memStudentStore) Create(_ context.Context, student *models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.byEmail[student.Email] {
		return apperrors.ErrEmailAlreadyExists
	}
	if s.byRoll[student.RollNo] {
		return apperrors.ErrRollNoAlreadyExists
	}

	s.nextID++
	student.ID = s.nextID
	record := *student
	s.students[student.ID] = &record
	s.byRoll[student.RollNo] = true
	s.byEmail[student.Email] = true
	return nil
}

func (s *memStudentStore) GetByID(_ context.Context, id int64) (*models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	student, ok := s.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	copy := *student
	return &copy, nil
}

func (s *memStudentStore) UpdateIdentifiers(_ context.Context, id int64, departmentID int64, rollNo, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	student, ok := s.students[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	if email != student.Email && s.byEmail[email] {
		return apperrors.ErrEmailAlreadyExists
	}

	delete(s.byRoll, student.RollNo)
	delete(s.byEmail, student.Email)
	student.DepartmentID = departmentID
	student.RollNo = rollNo
	student.Email = email
	s.byRoll[rollNo] = true
	s.byEmail[email] = true
	return nil
}

type memTeacherStore struct {
	mu       sync.Mutex
	nextID   int64
	teachers map[int64]*models.Teacher
	byEmail  map[string]bool
}

func newMemTeacherStore() *memTeacherStore {
	return &memTeacherStore{
		teachers: make(map[int64]*models.Teacher),
		byEmail:  make(map[string]bool),
	}
}

func (s *memTeacherStore) Create(_ context.Context, teacher *models.Teacher) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.byEmail[teacher.Email] {
		return apperrors.ErrEmailAlreadyExists
	}

	s.nextID++
	teacher.ID = s.nextID
	record := *teacher
	s.teachers[teacher.ID] = &record
	s.byEmail[teacher.Email] = true
	return nil
}
