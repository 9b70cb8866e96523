package models

// Teacher defines the teacher model based on the 'teachers' table.
type Teacher struct {
	ID           int64  `json:"id" db:"id"`
	DepartmentID int64  `json:"departmentId" db:"department_id"`
	FullName     string `json:"fullName" db:"full_name"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`

	// Relations (populated when needed)
	Department *Department `json:"department,omitempty"`
}
