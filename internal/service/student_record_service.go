package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Aadith-Viswam/student-progress/internal/dto"
	"github.com/Aadith-Viswam/student-progress/internal/repository"
)

// StudentRecordService builds the denormalized academic record view.
type StudentRecordService interface {
	AcademicRecord(ctx context.Context, userID uint) (dto.AcademicRecordResponse, error)
}

type studentRecordService struct {
	users       repository.UserRepository
	students    repository.StudentProfileRepository
	classes     repository.ClassRepository
	submissions repository.SubmissionRepository
	logger      zerolog.Logger
}

// NewStudentRecordService constructs a StudentRecordService instance.
func NewStudentRecordService(users repository.UserRepository, students repository.StudentProfileRepository, classes repository.ClassRepository, submissions repository.SubmissionRepository, logger zerolog.Logger) StudentRecordService {
	return &studentRecordService{
		users:       users,
		students:    students,
		classes:     classes,
		submissions: submissions,
		logger:      logger.With().Str("component", "student_record_service").Logger(),
	}
}

// AcademicRecord joins the user, profile, class and every submission with
// its parent assignment into one read view. A student with zero submissions
// yields an empty list, not an error.
func (s *studentRecordService) AcademicRecord(ctx context.Context, userID uint) (dto.AcademicRecordResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AcademicRecordResponse{}, ErrStudentNotFound
		}
		return dto.AcademicRecordResponse{}, err
	}
	if !user.IsStudent() {
		return dto.AcademicRecordResponse{}, ErrStudentNotFound
	}

	profile, err := s.students.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AcademicRecordResponse{}, ErrStudentNotFound
		}
		return dto.AcademicRecordResponse{}, err
	}

	class, err := s.classes.GetByID(ctx, profile.ClassID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AcademicRecordResponse{}, ErrClassNotFound
		}
		return dto.AcademicRecordResponse{}, err
	}

	studentID := user.ID
	submissions, err := s.submissions.List(ctx, repository.SubmissionFilter{StudentID: &studentID})
	if err != nil {
		return dto.AcademicRecordResponse{}, err
	}

	return dto.AcademicRecordResponse{
		User:        dto.NewUserResponse(user),
		Profile:     dto.NewStudentProfileResponse(profile),
		Class:       dto.NewClassResponse(class),
		Submissions: dto.NewSubmissionResponseSlice(submissions),
	}, nil
}
