package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/Aadith-Viswam/student-progress/internal/dto"
	"github.com/Aadith-Viswam/student-progress/internal/models"
)

const testJWTSecret = "test-secret-do-not-reuse"

type authFixture struct {
	service  AuthService
	users    *fakeUserRepo
	students *fakeStudentProfileRepo
	teachers *fakeTeacherProfileRepo
	classes  *fakeClassRepo
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	users := newFakeUserRepo()
	students := newFakeStudentProfileRepo()
	teachers := newFakeTeacherProfileRepo()
	classes := newFakeClassRepo()

	return &authFixture{
		service:  NewAuthService(users, students, teachers, classes, validator.New(validator.WithRequiredStructEnabled()), testJWTSecret, testLogger()),
		users:    users,
		students: students,
		teachers: teachers,
		classes:  classes,
	}
}

func (f *authFixture) seedClass(t *testing.T) models.Class {
	t.Helper()
	class := models.Class{Name: "Algebra-1", TeacherID: 1}
	require.NoError(t, f.classes.Create(context.Background(), &class))
	return class
}

func teacherSignup() dto.SignupRequest {
	return dto.SignupRequest{
		Name:       "Mr. Iyer",
		Email:      "iyer@school.test",
		Password:   "correct-horse",
		Role:       models.RoleTeacher,
		Department: "Mathematics",
	}
}

func TestSignupTeacherCreatesProfileAndToken(t *testing.T) {
	f := newAuthFixture(t)

	response, err := f.service.Signup(context.Background(), teacherSignup())
	require.NoError(t, err)
	require.Equal(t, models.RoleTeacher, response.User.Role)
	require.NotEmpty(t, response.Token)

	profile, err := f.teachers.GetByUserID(context.Background(), response.User.ID)
	require.NoError(t, err)
	require.Equal(t, "Mathematics", profile.Department)
}

func TestSignupStudentCreatesProfileInClass(t *testing.T) {
	f := newAuthFixture(t)
	class := f.seedClass(t)

	response, err := f.service.Signup(context.Background(), dto.SignupRequest{
		Name:     "Alice",
		Email:    "Alice@School.Test",
		Password: "correct-horse",
		Role:     models.RoleStudent,
		RegNo:    "REG-001",
		ClassID:  class.ID,
	})
	require.NoError(t, err)
	require.Equal(t, "alice@school.test", response.User.Email, "email must be normalized")

	profile, err := f.students.GetByUserID(context.Background(), response.User.ID)
	require.NoError(t, err)
	require.Equal(t, "REG-001", profile.RegNo)
	require.Equal(t, class.ID, profile.ClassID)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Signup(context.Background(), teacherSignup())
	require.NoError(t, err)

	_, err = f.service.Signup(context.Background(), teacherSignup())
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignupStudentRejectsUnknownClass(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Signup(context.Background(), dto.SignupRequest{
		Name:     "Alice",
		Email:    "alice@school.test",
		Password: "correct-horse",
		Role:     models.RoleStudent,
		RegNo:    "REG-001",
		ClassID:  42,
	})
	require.ErrorIs(t, err, ErrClassNotFound)
}

func TestSignupStudentRejectsDuplicateRegNo(t *testing.T) {
	f := newAuthFixture(t)
	class := f.seedClass(t)

	payload := dto.SignupRequest{
		Name:     "Alice",
		Email:    "alice@school.test",
		Password: "correct-horse",
		Role:     models.RoleStudent,
		RegNo:    "REG-001",
		ClassID:  class.ID,
	}
	_, err := f.service.Signup(context.Background(), payload)
	require.NoError(t, err)

	payload.Email = "bob@school.test"
	payload.Name = "Bob"
	_, err = f.service.Signup(context.Background(), payload)
	require.ErrorIs(t, err, ErrRegNoTaken)
}

func TestSignupValidationFailures(t *testing.T) {
	f := newAuthFixture(t)

	cases := []dto.SignupRequest{
		{Name: "A", Email: "a@school.test", Password: "correct-horse", Role: models.RoleTeacher, Department: "Math"},
		{Name: "Alice", Email: "not-an-email", Password: "correct-horse", Role: models.RoleTeacher, Department: "Math"},
		{Name: "Alice", Email: "a@school.test", Password: "short", Role: models.RoleTeacher, Department: "Math"},
		{Name: "Alice", Email: "a@school.test", Password: "correct-horse", Role: "admin"},
		// Student without regno or class.
		{Name: "Alice", Email: "a@school.test", Password: "correct-horse", Role: models.RoleStudent},
	}
	for i, payload := range cases {
		_, err := f.service.Signup(context.Background(), payload)
		var vErrs validator.ValidationErrors
		require.ErrorAs(t, err, &vErrs, "case %d", i)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Signup(context.Background(), teacherSignup())
	require.NoError(t, err)

	_, err = f.service.Login(context.Background(), dto.LoginRequest{Email: "iyer@school.test", Password: "wrong-horse"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmailLooksLikeBadPassword(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Login(context.Background(), dto.LoginRequest{Email: "ghost@school.test", Password: "whatever"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Signup(context.Background(), teacherSignup())
	require.NoError(t, err)

	response, err := f.service.Login(context.Background(), dto.LoginRequest{Email: "iyer@school.test", Password: "correct-horse"})
	require.NoError(t, err)

	parsed, err := jwt.Parse(response.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, float64(response.User.ID), claims["id"])
	require.Equal(t, models.RoleTeacher, claims["role"])
	require.NotZero(t, claims["exp"])
}

func TestProfileReturnsRoleData(t *testing.T) {
	f := newAuthFixture(t)
	class := f.seedClass(t)

	created, err := f.service.Signup(context.Background(), dto.SignupRequest{
		Name:     "Alice",
		Email:    "alice@school.test",
		Password: "correct-horse",
		Role:     models.RoleStudent,
		RegNo:    "REG-001",
		ClassID:  class.ID,
	})
	require.NoError(t, err)

	profile, err := f.service.Profile(context.Background(), created.User.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice", profile.User.Name)

	roleData, ok := profile.RoleData.(dto.StudentProfileResponse)
	require.True(t, ok)
	require.Equal(t, "REG-001", roleData.RegNo)
	require.NotNil(t, roleData.Progress)

	_, err = f.service.Profile(context.Background(), 9999)
	require.ErrorIs(t, err, ErrUserNotFound)
}
