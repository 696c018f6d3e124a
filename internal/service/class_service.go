package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Aadith-Viswam/student-progress/internal/dto"
	"github.com/Aadith-Viswam/student-progress/internal/models"
	"github.com/Aadith-Viswam/student-progress/internal/repository"
)

// ErrClassNotFound indicates the referenced class does not exist.
var ErrClassNotFound = errors.New("class not found")

// ClassService manages teacher-owned classes and their enrolled students.
type ClassService interface {
	Create(ctx context.Context, payload dto.ClassCreateRequest, caller Caller) (dto.ClassResponse, error)
	ListOwned(ctx context.Context, caller Caller) ([]dto.ClassResponse, error)
	Get(ctx context.Context, id uint) (dto.ClassResponse, error)
	StudentsByClass(ctx context.Context, classID uint) ([]dto.ClassStudentResponse, error)
}

type classService struct {
	classes   repository.ClassRepository
	students  repository.StudentProfileRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewClassService constructs a ClassService instance.
func NewClassService(classes repository.ClassRepository, students repository.StudentProfileRepository, validate *validator.Validate, logger zerolog.Logger) ClassService {
	return &classService{
		classes:   classes,
		students:  students,
		validator: validate,
		logger:    logger.With().Str("component", "class_service").Logger(),
	}
}

func (s *classService) Create(ctx context.Context, payload dto.ClassCreateRequest, caller Caller) (dto.ClassResponse, error) {
	if !caller.IsTeacher() {
		return dto.ClassResponse{}, ErrTeacherRoleRequired
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.ClassResponse{}, err
	}

	// Owner comes from the caller, never from the payload.
	class := models.Class{
		Name:      strings.TrimSpace(payload.Name),
		TeacherID: caller.ID,
	}

	if err := s.classes.Create(ctx, &class); err != nil {
		return dto.ClassResponse{}, err
	}

	s.logger.Info().Uint("class_id", class.ID).Uint("teacher_id", caller.ID).Msg("class created")

	return dto.NewClassResponse(class), nil
}

func (s *classService) ListOwned(ctx context.Context, caller Caller) ([]dto.ClassResponse, error) {
	if !caller.IsTeacher() {
		return nil, ErrTeacherRoleRequired
	}

	classes, err := s.classes.ListByTeacher(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	return dto.NewClassResponseSlice(classes), nil
}

func (s *classService) Get(ctx context.Context, id uint) (dto.ClassResponse, error) {
	class, err := s.classes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ClassResponse{}, ErrClassNotFound
		}
		return dto.ClassResponse{}, err
	}

	return dto.NewClassResponse(class), nil
}

func (s *classService) StudentsByClass(ctx context.Context, classID uint) ([]dto.ClassStudentResponse, error) {
	if _, err := s.classes.GetByID(ctx, classID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	profiles, err := s.students.ListByClass(ctx, classID)
	if err != nil {
		return nil, err
	}

	return dto.NewClassStudentResponseSlice(profiles), nil
}
