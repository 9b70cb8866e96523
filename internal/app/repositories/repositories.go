package repositories

import "github.com/jackc/pgx/v5/pgxpool"

// Repositories bundles all repository instances for dependency injection
type Repositories struct {
	DepartmentRepository *DepartmentRepository
	CourseRepository     *CourseRepository
	SectionRepository    *SectionRepository
	EnrollmentRepository *EnrollmentRepository
	CounterRepository    *CounterRepository
	StudentRepository    *StudentRepository
	TeacherRepository    *TeacherRepository
	HandleDirectory      *HandleDirectory
}

// NewRepositories creates all repositories over one pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		DepartmentRepository: NewDepartmentRepository(db),
		CourseRepository:     NewCourseRepository(db),
		SectionRepository:    NewSectionRepository(db),
		EnrollmentRepository: NewEnrollmentRepository(db),
		CounterRepository:    NewCounterRepository(db),
		StudentRepository:    NewStudentRepository(db),
		TeacherRepository:    NewTeacherRepository(db),
		HandleDirectory:      NewHandleDirectory(db),
	}
}
