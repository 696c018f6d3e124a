package dto

import (
	"time"

	"github.com/Aadith-Viswam/student-progress/internal/models"
)

// GradeRequest is used by the owning teacher to record marks and feedback
// for one student's submission under an assignment.
type GradeRequest struct {
	StudentID uint     `json:"student_id" validate:"required,gt=0"`
	Marks     *float64 `json:"marks" validate:"required,gte=0,lte=100"`
	Feedback  string   `json:"feedback" validate:"omitempty,max=5000"`
}

// StudentLite summarizes a student without exposing full profile data.
type StudentLite struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SubmissionResponse is returned to API clients when viewing submissions.
type SubmissionResponse struct {
	ID           uint           `json:"id"`
	AssignmentID uint           `json:"assignment_id"`
	StudentID    uint           `json:"student_id"`
	FilePath     string         `json:"file_path"`
	Marks        *float64       `json:"marks"`
	Feedback     string         `json:"feedback"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	Assignment   AssignmentLite `json:"assignment"`
	Student      StudentLite    `json:"student"`
}

// AssignmentSubmissionsResponse pairs an assignment with its submissions.
type AssignmentSubmissionsResponse struct {
	Assignment  AssignmentResponse   `json:"assignment"`
	Submissions []SubmissionResponse `json:"submissions"`
}

// NewSubmissionResponse converts a Submission model into a DTO.
func NewSubmissionResponse(model models.Submission) SubmissionResponse {
	response := SubmissionResponse{
		ID:           model.ID,
		AssignmentID: model.AssignmentID,
		StudentID:    model.StudentID,
		FilePath:     model.FilePath,
		Marks:        model.Marks,
		Feedback:     model.Feedback,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}

	if model.Assignment.ID != 0 {
		response.Assignment = AssignmentLite{
			ID:      model.Assignment.ID,
			Title:   model.Assignment.Title,
			Subject: model.Assignment.Subject,
		}
	}

	if model.Student.ID != 0 {
		response.Student = StudentLite{
			ID:    model.Student.ID,
			Name:  model.Student.Name,
			Email: model.Student.Email,
		}
	}

	return response
}

// NewSubmissionResponseSlice converts submission models into DTOs.
func NewSubmissionResponseSlice(models []models.Submission) []SubmissionResponse {
	responses := make([]SubmissionResponse, 0, len(models))
	for _, submission := range models {
		responses = append(responses, NewSubmissionResponse(submission))
	}

	return responses
}
