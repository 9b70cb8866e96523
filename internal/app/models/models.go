// Package models contains the row structs backing the campusmate tables.
package models

// Role identifies the kind of caller behind a request. Tokens are issued
// upstream; this service only reads the role claim.
type Role string

const (
	RoleDirector Role = "DIRECTOR"
	RoleHod      Role = "HOD"
	RoleTeacher  Role = "TEACHER"
	RoleStudent  Role = "STUDENT"
)
