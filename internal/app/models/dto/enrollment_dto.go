package dto

// EnrollmentResponse is returned on successful enrollment
type EnrollmentResponse struct {
	Message         string `json:"message"`
	AssignedSection string `json:"assignedSection"`
	SectionID       int64  `json:"sectionId"`
	AcademicYear    string `json:"academicYear"`
}
