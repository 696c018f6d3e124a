package service

import (
	"errors"

	"github.com/Aadith-Viswam/student-progress/internal/models"
)

// Role-gate failures shared across services.
var (
	// ErrTeacherRoleRequired indicates the caller must hold the teacher role.
	ErrTeacherRoleRequired = errors.New("teacher role required")
	// ErrStudentRoleRequired indicates the caller must hold the student role.
	ErrStudentRoleRequired = errors.New("student role required")
)

// Caller identifies the authenticated user a service operation runs on behalf
// of. Handlers build it from the verified token and pass it explicitly;
// services never read ambient request state.
type Caller struct {
	ID   uint
	Role string
}

// IsTeacher reports whether the caller holds the teacher role.
func (c Caller) IsTeacher() bool {
	return c.Role == models.RoleTeacher
}

// IsStudent reports whether the caller holds the student role.
func (c Caller) IsStudent() bool {
	return c.Role == models.RoleStudent
}
