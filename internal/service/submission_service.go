package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/Aadith-Viswam/student-progress/internal/dto"
	"github.com/Aadith-Viswam/student-progress/internal/models"
	"github.com/Aadith-Viswam/student-progress/internal/observability"
	"github.com/Aadith-Viswam/student-progress/internal/repository"
)

// MaxUploadSize is the upper bound for submission artifacts.
const MaxUploadSize = 5 << 20

var (
	// ErrSubmissionFileRequired indicates the multipart file part is missing.
	ErrSubmissionFileRequired = errors.New("submission file is required")
	// ErrFileTooLarge indicates the upload exceeds MaxUploadSize.
	ErrFileTooLarge = errors.New("file exceeds maximum allowed size")
	// ErrFileTypeNotAllowed indicates the extension or MIME type is not permitted.
	ErrFileTypeNotAllowed = errors.New("file type not allowed")
)

// FileStorage abstracts where submission artifacts are persisted.
type FileStorage interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// SubmissionService handles the student submit path and submission listings.
type SubmissionService interface {
	Submit(ctx context.Context, assignmentID uint, file *multipart.FileHeader, caller Caller) (dto.SubmissionResponse, error)
	ListForAssignment(ctx context.Context, assignmentID uint, caller Caller) (dto.AssignmentSubmissionsResponse, error)
}

type submissionService struct {
	submissions repository.SubmissionRepository
	assignments repository.AssignmentRepository
	storage     FileStorage
	logger      zerolog.Logger
	tracer      trace.Tracer
	now         func() time.Time
}

// NewSubmissionService constructs a SubmissionService instance.
func NewSubmissionService(submissions repository.SubmissionRepository, assignments repository.AssignmentRepository, storage FileStorage, logger zerolog.Logger) SubmissionService {
	return &submissionService{
		submissions: submissions,
		assignments: assignments,
		storage:     storage,
		logger:      logger.With().Str("component", "submission_service").Logger(),
		tracer:      otel.Tracer("github.com/Aadith-Viswam/student-progress/internal/service/submission"),
		now:         time.Now,
	}
}

// Submit upserts the caller's submission row for the assignment. A resubmit
// replaces the stored file and leaves existing marks and feedback untouched,
// so the grading path and this path never clobber each other's fields. The
// two paths still race last-write-wins on the row itself.
func (s *submissionService) Submit(ctx context.Context, assignmentID uint, file *multipart.FileHeader, caller Caller) (dto.SubmissionResponse, error) {
	ctx, span := s.tracer.Start(ctx, "submission.submit")
	span.SetAttributes(
		attribute.Int64("submission.assignment_id", int64(assignmentID)),
		attribute.Int64("submission.student_id", int64(caller.ID)),
	)
	defer span.End()

	start := s.now()
	defer func() {
		observability.UploadLatency().Observe(time.Since(start).Seconds())
	}()

	if !caller.IsStudent() {
		span.SetStatus(codes.Error, "role_denied")
		return dto.SubmissionResponse{}, ErrStudentRoleRequired
	}

	if _, err := s.assignments.GetByID(ctx, assignmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "assignment_not_found")
			return dto.SubmissionResponse{}, ErrAssignmentNotFound
		}
		span.RecordError(err)
		return dto.SubmissionResponse{}, err
	}

	if file == nil {
		span.SetStatus(codes.Error, "file_missing")
		return dto.SubmissionResponse{}, ErrSubmissionFileRequired
	}

	if file.Size > MaxUploadSize {
		observability.UploadRejected().WithLabelValues("size").Inc()
		span.SetStatus(codes.Error, "file_too_large")
		return dto.SubmissionResponse{}, ErrFileTooLarge
	}

	if err := validateSubmissionFile(file); err != nil {
		observability.UploadRejected().WithLabelValues("type").Inc()
		span.SetStatus(codes.Error, "file_type_rejected")
		return dto.SubmissionResponse{}, err
	}

	reader, err := file.Open()
	if err != nil {
		span.RecordError(err)
		return dto.SubmissionResponse{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	storedName := fmt.Sprintf("%d-%s", s.now().UnixMilli(), sanitizeFilename(file.Filename))
	filePath, err := s.storage.Upload(ctx, storedName, reader)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "upload_failed")
		return dto.SubmissionResponse{}, fmt.Errorf("failed to store file: %w", err)
	}

	submission, err := s.submissions.GetByPair(ctx, assignmentID, caller.ID)
	switch {
	case err == nil:
		submission.FilePath = filePath
		if err := s.submissions.Update(ctx, &submission); err != nil {
			span.RecordError(err)
			return dto.SubmissionResponse{}, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		submission = models.Submission{
			AssignmentID: assignmentID,
			StudentID:    caller.ID,
			FilePath:     filePath,
		}
		if err := s.submissions.Create(ctx, &submission); err != nil {
			span.RecordError(err)
			return dto.SubmissionResponse{}, err
		}
	default:
		span.RecordError(err)
		return dto.SubmissionResponse{}, err
	}

	created, err := s.submissions.GetByPair(ctx, assignmentID, caller.ID)
	if err != nil {
		span.RecordError(err)
		return dto.SubmissionResponse{}, err
	}

	s.logger.Info().
		Uint("submission_id", created.ID).
		Uint("assignment_id", assignmentID).
		Uint("student_id", caller.ID).
		Msg("submission stored")

	return dto.NewSubmissionResponse(created), nil
}

// ListForAssignment returns the submissions under an assignment. Student
// callers are always scoped to their own row regardless of any
// client-supplied filter; zero submissions yields an empty list, not an
// error.
func (s *submissionService) ListForAssignment(ctx context.Context, assignmentID uint, caller Caller) (dto.AssignmentSubmissionsResponse, error) {
	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentSubmissionsResponse{}, ErrAssignmentNotFound
		}
		return dto.AssignmentSubmissionsResponse{}, err
	}

	filter := repository.SubmissionFilter{AssignmentID: &assignmentID}
	if caller.IsStudent() {
		studentID := caller.ID
		filter.StudentID = &studentID
	}

	submissions, err := s.submissions.List(ctx, filter)
	if err != nil {
		return dto.AssignmentSubmissionsResponse{}, err
	}

	return dto.AssignmentSubmissionsResponse{
		Assignment:  dto.NewAssignmentResponse(assignment),
		Submissions: dto.NewSubmissionResponseSlice(submissions),
	}, nil
}

var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".doc":  {},
	".docx": {},
	".jpg":  {},
	".png":  {},
}

var allowedMIMETypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"image/jpeg",
	"image/png",
}

func validateSubmissionFile(file *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return ErrFileTypeNotAllowed
	}

	reader, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	mime, err := mimetype.DetectReader(reader)
	if err != nil {
		return fmt.Errorf("failed to detect file type: %w", err)
	}

	for _, allowed := range allowedMIMETypes {
		if mime.Is(allowed) {
			return nil
		}
	}

	return ErrFileTypeNotAllowed
}

func sanitizeFilename(name string) string {
	base := filepath.Base(strings.TrimSpace(name))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '-'
		}
	}, base)
}
