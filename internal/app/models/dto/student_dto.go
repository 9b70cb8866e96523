package dto

// CreateStudentRequest is the payload for student creation
type CreateStudentRequest struct {
	FullName     string `json:"fullName" binding:"required"`
	DepartmentID int64  `json:"departmentId" binding:"required"`
}

// Credentials carries the minted login identity; returned exactly once,
// at creation time.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// StudentCreatedResponse is returned after a student account is created
type StudentCreatedResponse struct {
	ID          int64        `json:"id"`
	FullName    string       `json:"fullName"`
	RollNo      string       `json:"rollNo"`
	Credentials *Credentials `json:"credentials"`
}
