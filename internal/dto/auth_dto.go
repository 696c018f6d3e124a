package dto

import "github.com/Aadith-Viswam/student-progress/internal/models"

// SignupRequest describes the payload for account creation. Role-specific
// fields are enforced conditionally: students must name a registration
// number and an existing class, teachers a department.
type SignupRequest struct {
	Name       string `json:"name" validate:"required,min=2,max=255"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8,max=72"`
	Role       string `json:"role" validate:"required,oneof=student teacher"`
	RegNo      string `json:"regno" validate:"required_if=Role student,omitempty,max=64"`
	ClassID    uint   `json:"class_id" validate:"required_if=Role student"`
	Department string `json:"department" validate:"required_if=Role teacher,omitempty,max=255"`
}

// LoginRequest describes the credential payload for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public view of a user account.
type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AuthResponse is returned after a successful signup or login.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// StudentProfileResponse is the role data attached to a student profile view.
type StudentProfileResponse struct {
	ID        uint                     `json:"id"`
	RegNo     string                   `json:"regno"`
	ClassID   uint                     `json:"class_id"`
	ClassName string                   `json:"class_name,omitempty"`
	Progress  []models.SubjectProgress `json:"progress"`
}

// TeacherProfileResponse is the role data attached to a teacher profile view.
type TeacherProfileResponse struct {
	ID         uint   `json:"id"`
	Department string `json:"department"`
}

// ProfileResponse combines the account with its role-specific data.
type ProfileResponse struct {
	User     UserResponse `json:"user"`
	RoleData interface{}  `json:"role_data"`
}

// NewUserResponse converts a User model into its public DTO.
func NewUserResponse(model models.User) UserResponse {
	return UserResponse{
		ID:    model.ID,
		Name:  model.Name,
		Email: model.Email,
		Role:  model.Role,
	}
}

// NewStudentProfileResponse converts a StudentProfile model into a DTO.
func NewStudentProfileResponse(model models.StudentProfile) StudentProfileResponse {
	response := StudentProfileResponse{
		ID:       model.ID,
		RegNo:    model.RegNo,
		ClassID:  model.ClassID,
		Progress: model.Progress,
	}
	if response.Progress == nil {
		response.Progress = []models.SubjectProgress{}
	}
	if model.Class.ID != 0 {
		response.ClassName = model.Class.Name
	}

	return response
}

// NewTeacherProfileResponse converts a TeacherProfile model into a DTO.
func NewTeacherProfileResponse(model models.TeacherProfile) TeacherProfileResponse {
	return TeacherProfileResponse{
		ID:         model.ID,
		Department: model.Department,
	}
}
