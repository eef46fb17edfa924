package models

import "time"

// SubjectRole represents the available roles for the RBAC system. Roles are
// fixed at registration and never change through the API.
type SubjectRole string

const (
	RoleStudent     SubjectRole = "STUDENT"
	RoleCoordinator SubjectRole = "COORDINATOR"
	RoleAdmin       SubjectRole = "ADMIN"
)

// Valid returns true when the role is a supported value.
func (r SubjectRole) Valid() bool {
	switch r {
	case RoleStudent, RoleCoordinator, RoleAdmin:
		return true
	default:
		return false
	}
}

// RequiresCourse reports whether the role must carry a course assignment.
func (r SubjectRole) RequiresCourse() bool {
	return r == RoleStudent || r == RoleCoordinator
}

// Subject represents a tracked individual stored in the subjects table.
// Course is the cohort grouping key, empty for admins.
type Subject struct {
	ID           string      `db:"id" json:"id"`
	Name         string      `db:"name" json:"name"`
	Email        string      `db:"email" json:"email"`
	PasswordHash string      `db:"password_hash" json:"-"`
	Course       *string     `db:"course" json:"course,omitempty"`
	Role         SubjectRole `db:"role" json:"role"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
}

// CourseName returns the course or an empty string for admins.
func (s Subject) CourseName() string {
	if s.Course == nil {
		return ""
	}
	return *s.Course
}

// SubjectFilter captures filtering criteria for listing subjects.
type SubjectFilter struct {
	Role   *SubjectRole
	Course string
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
