package models

import "time"

// Enrollment ties one student to one section (and course) for an academic
// year. Created once at successful allocation, immutable afterwards. The
// (student, course) and (student, section) pairs are unique at the storage
// level.
type Enrollment struct {
	ID           int64     `json:"id" db:"id"`
	StudentID    int64     `json:"studentId" db:"student_id"`
	CourseID     int64     `json:"courseId" db:"course_id"`
	SectionID    int64     `json:"sectionId" db:"section_id"`
	AcademicYear string    `json:"academicYear" db:"academic_year"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Section *Section `json:"section,omitempty"`
	Course  *Course  `json:"course,omitempty"`
}
