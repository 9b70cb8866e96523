package models

// Student defines the student model based on the 'students' table. RollNo
// and Email are minted, never user-supplied.
type Student struct {
	ID           int64  `json:"id" db:"id"`
	DepartmentID int64  `json:"departmentId" db:"department_id"`
	FullName     string `json:"fullName" db:"full_name"`
	RollNo       string `json:"rollNo" db:"roll_no"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`

	// Relations (populated when needed)
	Department *Department `json:"department,omitempty"`
}
