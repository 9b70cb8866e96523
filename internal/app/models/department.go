package models

// Department represents an academic department. Its roll-number sequence
// lives in the counters table under key "dept:<id>:roll".
type Department struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Code string `json:"code" db:"code"`
}
