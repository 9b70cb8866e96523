package models

// Section is a capacity-bounded subdivision of a course for one academic
// year. CurrentStrength never exceeds Capacity; both fields change only
// through the atomic reserve/release statements in the section repository.
type Section struct {
	ID              int64  `json:"id" db:"id"`
	CourseID        int64  `json:"courseId" db:"course_id"`
	TeacherID       *int64 `json:"teacherId,omitempty" db:"teacher_id"`
	Name            string `json:"name" db:"section_name"`
	AcademicYear    string `json:"academicYear" db:"academic_year"`
	Capacity        int    `json:"capacity" db:"capacity"`
	CurrentStrength int    `json:"currentStrength" db:"current_strength"`
}

// HasSpareCapacity reports whether the section can still take a seat.
// Advisory only: the authoritative check is the conditional write.
func (s *Section) HasSpareCapacity() bool {
	return s.CurrentStrength < s.Capacity
}
