package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/Aadith-Viswam/student-progress/internal/dto"
	"github.com/Aadith-Viswam/student-progress/internal/models"
	"github.com/Aadith-Viswam/student-progress/internal/repository"
)

// ErrNotAssignmentOwner indicates the caller did not author the assignment.
var ErrNotAssignmentOwner = errors.New("caller does not own the assignment")

// ErrStudentNotFound indicates the graded student does not exist.
var ErrStudentNotFound = errors.New("student not found")

// GradingService records marks and feedback on submissions. Only the teacher
// who authored the assignment may grade under it.
type GradingService interface {
	Grade(ctx context.Context, assignmentID uint, payload dto.GradeRequest, caller Caller) (dto.SubmissionResponse, error)
}

type gradingService struct {
	submissions repository.SubmissionRepository
	assignments repository.AssignmentRepository
	users       repository.UserRepository
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
	logger      zerolog.Logger
	tracer      trace.Tracer
	now         func() time.Time
}

// NewGradingService constructs a GradingService instance.
func NewGradingService(submissions repository.SubmissionRepository, assignments repository.AssignmentRepository, users repository.UserRepository, validate *validator.Validate, logger zerolog.Logger) GradingService {
	return &gradingService{
		submissions: submissions,
		assignments: assignments,
		users:       users,
		validator:   validate,
		sanitizer:   bluemonday.StrictPolicy(),
		logger:      logger.With().Str("component", "grading_service").Logger(),
		tracer:      otel.Tracer("github.com/Aadith-Viswam/student-progress/internal/service/grading"),
		now:         time.Now,
	}
}

// Grade upserts the (assignment, student) submission row with marks and
// feedback. The row is created when the student never submitted, so a
// teacher can pre-grade before any file arrives. An existing file path is
// never touched by this path.
func (s *gradingService) Grade(ctx context.Context, assignmentID uint, payload dto.GradeRequest, caller Caller) (dto.SubmissionResponse, error) {
	ctx, span := s.tracer.Start(ctx, "grading.grade")
	span.SetAttributes(
		attribute.Int64("grading.assignment_id", int64(assignmentID)),
		attribute.Int64("grading.teacher_id", int64(caller.ID)),
	)
	defer span.End()

	if !caller.IsTeacher() {
		span.SetStatus(codes.Error, "role_denied")
		return dto.SubmissionResponse{}, ErrTeacherRoleRequired
	}

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.SubmissionResponse{}, err
	}

	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "assignment_not_found")
			return dto.SubmissionResponse{}, ErrAssignmentNotFound
		}
		span.RecordError(err)
		return dto.SubmissionResponse{}, err
	}

	if !assignment.IsOwnedBy(caller.ID) {
		span.SetStatus(codes.Error, "ownership_denied")
		return dto.SubmissionResponse{}, ErrNotAssignmentOwner
	}

	student, err := s.users.GetByID(ctx, payload.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "student_not_found")
			return dto.SubmissionResponse{}, ErrStudentNotFound
		}
		span.RecordError(err)
		return dto.SubmissionResponse{}, err
	}
	if !student.IsStudent() {
		span.SetStatus(codes.Error, "student_not_found")
		return dto.SubmissionResponse{}, ErrStudentNotFound
	}

	marks := *payload.Marks
	feedback := s.sanitizer.Sanitize(strings.TrimSpace(payload.Feedback))

	submission, err := s.submissions.GetByPair(ctx, assignmentID, payload.StudentID)
	switch {
	case err == nil:
		if submission.Marks != nil && math.Abs(*submission.Marks-marks) < 1e-6 && submission.Feedback == feedback {
			span.SetAttributes(attribute.Bool("grading.idempotent", true))
			return dto.NewSubmissionResponse(submission), nil
		}
		submission.Marks = &marks
		submission.Feedback = feedback
		if err := s.submissions.Update(ctx, &submission); err != nil {
			span.RecordError(err)
			return dto.SubmissionResponse{}, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		submission = models.Submission{
			AssignmentID: assignmentID,
			StudentID:    payload.StudentID,
			Marks:        &marks,
			Feedback:     feedback,
		}
		if err := s.submissions.Create(ctx, &submission); err != nil {
			span.RecordError(err)
			return dto.SubmissionResponse{}, err
		}
	default:
		span.RecordError(err)
		return dto.SubmissionResponse{}, err
	}

	graded, err := s.submissions.GetByPair(ctx, assignmentID, payload.StudentID)
	if err != nil {
		span.RecordError(err)
		return dto.SubmissionResponse{}, err
	}

	s.logger.Info().
		Uint("submission_id", graded.ID).
		Uint("assignment_id", assignmentID).
		Uint("student_id", payload.StudentID).
		Float64("marks", marks).
		Msg("submission graded")

	return dto.NewSubmissionResponse(graded), nil
}
