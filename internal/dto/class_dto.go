package dto

import (
	"time"

	"github.com/Aadith-Viswam/student-progress/internal/models"
)

// ClassCreateRequest describes the payload for creating a class. The owner is
// always stamped server-side from the authenticated caller.
type ClassCreateRequest struct {
	Name string `json:"classname" validate:"required,min=1,max=255"`
}

// ClassResponse is returned to API clients when viewing classes.
type ClassResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"classname"`
	TeacherID uint      `json:"teacher_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ClassStudentResponse lists one student enrolled in a class.
type ClassStudentResponse struct {
	ID       uint                     `json:"id"`
	RegNo    string                   `json:"regno"`
	ClassID  uint                     `json:"class_id"`
	Progress []models.SubjectProgress `json:"progress"`
	Student  StudentLite              `json:"student"`
}

// NewClassResponse converts a Class model into a DTO.
func NewClassResponse(model models.Class) ClassResponse {
	return ClassResponse{
		ID:        model.ID,
		Name:      model.Name,
		TeacherID: model.TeacherID,
		CreatedAt: model.CreatedAt,
	}
}

// NewClassResponseSlice converts class models into DTOs.
func NewClassResponseSlice(models []models.Class) []ClassResponse {
	responses := make([]ClassResponse, 0, len(models))
	for _, class := range models {
		responses = append(responses, NewClassResponse(class))
	}

	return responses
}

// NewClassStudentResponse converts an enrolled student profile into a DTO.
func NewClassStudentResponse(model models.StudentProfile) ClassStudentResponse {
	response := ClassStudentResponse{
		ID:       model.ID,
		RegNo:    model.RegNo,
		ClassID:  model.ClassID,
		Progress: model.Progress,
	}
	if response.Progress == nil {
		response.Progress = []models.SubjectProgress{}
	}
	if model.User.ID != 0 {
		response.Student = StudentLite{
			ID:    model.User.ID,
			Name:  model.User.Name,
			Email: model.User.Email,
		}
	}

	return response
}

// NewClassStudentResponseSlice converts enrolled student profiles into DTOs.
func NewClassStudentResponseSlice(models []models.StudentProfile) []ClassStudentResponse {
	responses := make([]ClassStudentResponse, 0, len(models))
	for _, profile := range models {
		responses = append(responses, NewClassStudentResponse(profile))
	}

	return responses
}
