package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Aadith-Viswam/student-progress/internal/dto"
	"github.com/Aadith-Viswam/student-progress/internal/models"
	"github.com/Aadith-Viswam/student-progress/internal/repository"
)

// TokenTTL is the lifetime of issued session tokens.
const TokenTTL = 7 * 24 * time.Hour

// ErrEmailTaken indicates the signup email is already registered.
var ErrEmailTaken = errors.New("email already registered")

// ErrRegNoTaken indicates the registration number is already in use.
var ErrRegNoTaken = errors.New("registration number already in use")

// ErrInvalidCredentials indicates the email/password pair did not match.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrUserNotFound indicates the referenced user does not exist.
var ErrUserNotFound = errors.New("user not found")

// AuthService handles account creation, credential verification and token
// issuance.
type AuthService interface {
	Signup(ctx context.Context, payload dto.SignupRequest) (dto.AuthResponse, error)
	Login(ctx context.Context, payload dto.LoginRequest) (dto.AuthResponse, error)
	Profile(ctx context.Context, userID uint) (dto.ProfileResponse, error)
	IssueToken(user models.User) (string, error)
}

type authService struct {
	users     repository.UserRepository
	students  repository.StudentProfileRepository
	teachers  repository.TeacherProfileRepository
	classes   repository.ClassRepository
	validator *validator.Validate
	secret    []byte
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(users repository.UserRepository, students repository.StudentProfileRepository, teachers repository.TeacherProfileRepository, classes repository.ClassRepository, validate *validator.Validate, jwtSecret string, logger zerolog.Logger) AuthService {
	return &authService{
		users:     users,
		students:  students,
		teachers:  teachers,
		classes:   classes,
		validator: validate,
		secret:    []byte(jwtSecret),
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

func (s *authService) Signup(ctx context.Context, payload dto.SignupRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AuthResponse{}, err
	}

	if _, err := s.users.GetByEmail(ctx, payload.Email); err == nil {
		return dto.AuthResponse{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.AuthResponse{}, err
	}

	if payload.Role == models.RoleStudent {
		if _, err := s.classes.GetByID(ctx, payload.ClassID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.AuthResponse{}, ErrClassNotFound
			}
			return dto.AuthResponse{}, err
		}

		if _, err := s.students.GetByRegNo(ctx, payload.RegNo); err == nil {
			return dto.AuthResponse{}, ErrRegNoTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AuthResponse{}, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Name:         payload.Name,
		Email:        payload.Email,
		PasswordHash: string(hash),
		Role:         payload.Role,
	}

	if err := s.users.Create(ctx, &user); err != nil {
		return dto.AuthResponse{}, err
	}

	switch user.Role {
	case models.RoleStudent:
		profile := models.StudentProfile{
			UserID:   user.ID,
			RegNo:    payload.RegNo,
			ClassID:  payload.ClassID,
			Progress: []models.SubjectProgress{},
		}
		if err := s.students.Create(ctx, &profile); err != nil {
			return dto.AuthResponse{}, err
		}
	case models.RoleTeacher:
		profile := models.TeacherProfile{
			UserID:     user.ID,
			Department: payload.Department,
		}
		if err := s.teachers.Create(ctx, &profile); err != nil {
			return dto.AuthResponse{}, err
		}
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Str("role", user.Role).Msg("account created")

	return dto.AuthResponse{User: dto.NewUserResponse(user), Token: token}, nil
}

func (s *authService) Login(ctx context.Context, payload dto.LoginRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AuthResponse{}, err
	}

	user, err := s.users.GetByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AuthResponse{}, ErrInvalidCredentials
		}
		return dto.AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		return dto.AuthResponse{}, ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Msg("login succeeded")

	return dto.AuthResponse{User: dto.NewUserResponse(user), Token: token}, nil
}

func (s *authService) Profile(ctx context.Context, userID uint) (dto.ProfileResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProfileResponse{}, ErrUserNotFound
		}
		return dto.ProfileResponse{}, err
	}

	response := dto.ProfileResponse{User: dto.NewUserResponse(user)}

	switch user.Role {
	case models.RoleStudent:
		profile, err := s.students.GetByUserID(ctx, user.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.ProfileResponse{}, ErrUserNotFound
			}
			return dto.ProfileResponse{}, err
		}
		response.RoleData = dto.NewStudentProfileResponse(profile)
	case models.RoleTeacher:
		profile, err := s.teachers.GetByUserID(ctx, user.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.ProfileResponse{}, ErrUserNotFound
			}
			return dto.ProfileResponse{}, err
		}
		response.RoleData = dto.NewTeacherProfileResponse(profile)
	}

	return response, nil
}

// IssueToken signs a session token carrying the user id and role.
func (s *authService) IssueToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"id":   user.ID,
		"role": user.Role,
		"exp":  s.now().Add(TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
