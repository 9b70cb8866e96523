package dto

// CreateTeacherRequest is the payload for teacher creation
type CreateTeacherRequest struct {
	FullName     string `json:"fullName" binding:"required"`
	DepartmentID int64  `json:"departmentId" binding:"required"`
}

// TeacherCreatedResponse is returned after a teacher account is created
type TeacherCreatedResponse struct {
	ID          int64        `json:"id"`
	FullName    string       `json:"fullName"`
	Credentials *Credentials `json:"credentials"`
}
