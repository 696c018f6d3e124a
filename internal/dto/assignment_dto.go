package dto

import (
	"time"

	"github.com/Aadith-Viswam/student-progress/internal/models"
)

// AssignmentCreateRequest describes the payload for creating an assignment.
// The class comes from the URL and the authoring teacher from the caller.
type AssignmentCreateRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=255"`
	Subject     string `json:"subject" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"omitempty,max=5000"`
}

// AssignmentResponse is returned to API clients when viewing assignments.
type AssignmentResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	ClassID     uint      `json:"class_id"`
	TeacherID   uint      `json:"teacher_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// AssignmentLite summarizes an assignment in nested responses.
type AssignmentLite struct {
	ID      uint   `json:"id"`
	Title   string `json:"title"`
	Subject string `json:"subject"`
}

// NewAssignmentResponse converts an Assignment model into a DTO.
func NewAssignmentResponse(model models.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:          model.ID,
		Title:       model.Title,
		Subject:     model.Subject,
		Description: model.Description,
		ClassID:     model.ClassID,
		TeacherID:   model.TeacherID,
		CreatedAt:   model.CreatedAt,
	}
}

// NewAssignmentResponseSlice converts assignment models into DTOs.
func NewAssignmentResponseSlice(models []models.Assignment) []AssignmentResponse {
	responses := make([]AssignmentResponse, 0, len(models))
	for _, assignment := range models {
		responses = append(responses, NewAssignmentResponse(assignment))
	}

	return responses
}
