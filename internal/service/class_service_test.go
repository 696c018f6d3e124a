package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/Aadith-Viswam/student-progress/internal/dto"
	"github.com/Aadith-Viswam/student-progress/internal/models"
)

func newClassService(classes *fakeClassRepo, students *fakeStudentProfileRepo) ClassService {
	return NewClassService(classes, students, validator.New(validator.WithRequiredStructEnabled()), testLogger())
}

func TestClassCreateRequiresTeacherRole(t *testing.T) {
	service := newClassService(newFakeClassRepo(), newFakeStudentProfileRepo())

	_, err := service.Create(context.Background(), dto.ClassCreateRequest{Name: "Algebra-1"}, Caller{ID: 2, Role: models.RoleStudent})
	require.ErrorIs(t, err, ErrTeacherRoleRequired)
}

func TestClassCreateStampsOwnerFromCaller(t *testing.T) {
	classes := newFakeClassRepo()
	service := newClassService(classes, newFakeStudentProfileRepo())

	response, err := service.Create(context.Background(), dto.ClassCreateRequest{Name: "  Algebra-1  "}, Caller{ID: 7, Role: models.RoleTeacher})
	require.NoError(t, err)
	require.Equal(t, "Algebra-1", response.Name)
	require.Equal(t, uint(7), response.TeacherID)

	stored, err := classes.GetByID(context.Background(), response.ID)
	require.NoError(t, err)
	require.Equal(t, uint(7), stored.TeacherID)
}

func TestClassCreateRejectsEmptyName(t *testing.T) {
	service := newClassService(newFakeClassRepo(), newFakeStudentProfileRepo())

	_, err := service.Create(context.Background(), dto.ClassCreateRequest{}, Caller{ID: 7, Role: models.RoleTeacher})
	var vErrs validator.ValidationErrors
	require.ErrorAs(t, err, &vErrs)
}

func TestClassListOwnedScopesCaller(t *testing.T) {
	classes := newFakeClassRepo()
	service := newClassService(classes, newFakeStudentProfileRepo())

	require.NoError(t, classes.Create(context.Background(), &models.Class{Name: "Algebra-1", TeacherID: 7}))
	require.NoError(t, classes.Create(context.Background(), &models.Class{Name: "Biology-1", TeacherID: 9}))

	owned, err := service.ListOwned(context.Background(), Caller{ID: 7, Role: models.RoleTeacher})
	require.NoError(t, err)
	require.Len(t, owned, 1)
	require.Equal(t, "Algebra-1", owned[0].Name)

	_, err = service.ListOwned(context.Background(), Caller{ID: 2, Role: models.RoleStudent})
	require.ErrorIs(t, err, ErrTeacherRoleRequired)
}

func TestClassGetUnknownID(t *testing.T) {
	service := newClassService(newFakeClassRepo(), newFakeStudentProfileRepo())

	_, err := service.Get(context.Background(), 42)
	require.ErrorIs(t, err, ErrClassNotFound)
}

func TestStudentsByClassRequiresExistingClass(t *testing.T) {
	service := newClassService(newFakeClassRepo(), newFakeStudentProfileRepo())

	_, err := service.StudentsByClass(context.Background(), 42)
	require.ErrorIs(t, err, ErrClassNotFound)
}

func TestStudentsByClassEmptyRoster(t *testing.T) {
	classes := newFakeClassRepo()
	service := newClassService(classes, newFakeStudentProfileRepo())

	class := models.Class{Name: "Algebra-1", TeacherID: 7}
	require.NoError(t, classes.Create(context.Background(), &class))

	students, err := service.StudentsByClass(context.Background(), class.ID)
	require.NoError(t, err)
	require.Empty(t, students)
}

func TestAssignmentCreateSanitizesDescription(t *testing.T) {
	classes := newFakeClassRepo()
	class := models.Class{Name: "Algebra-1", TeacherID: 7}
	require.NoError(t, classes.Create(context.Background(), &class))

	service := NewAssignmentService(newFakeAssignmentRepo(), classes, validator.New(validator.WithRequiredStructEnabled()), testLogger())

	response, err := service.Create(context.Background(), class.ID, dto.AssignmentCreateRequest{
		Title:       "HW1",
		Subject:     "Math",
		Description: `<img src=x onerror=alert(1)>Solve chapter 3`,
	}, Caller{ID: 7, Role: models.RoleTeacher})
	require.NoError(t, err)
	require.Equal(t, "Solve chapter 3", response.Description)
	require.Equal(t, uint(7), response.TeacherID)
}

func TestAssignmentCreateUnknownClass(t *testing.T) {
	service := NewAssignmentService(newFakeAssignmentRepo(), newFakeClassRepo(), validator.New(validator.WithRequiredStructEnabled()), testLogger())

	_, err := service.Create(context.Background(), 42, dto.AssignmentCreateRequest{Title: "HW1", Subject: "Math"}, Caller{ID: 7, Role: models.RoleTeacher})
	require.ErrorIs(t, err, ErrClassNotFound)
}

func TestAssignmentListByClassUnknownClass(t *testing.T) {
	service := NewAssignmentService(newFakeAssignmentRepo(), newFakeClassRepo(), validator.New(validator.WithRequiredStructEnabled()), testLogger())

	_, err := service.ListByClass(context.Background(), 42)
	require.ErrorIs(t, err, ErrClassNotFound)
}

func TestAcademicRecordJoinsProfileAndSubmissions(t *testing.T) {
	users := newFakeUserRepo()
	student := users.add(models.User{Name: "Alice", Email: "alice@school.test", Role: models.RoleStudent})
	teacher := users.add(models.User{Name: "Iyer", Email: "iyer@school.test", Role: models.RoleTeacher})

	classes := newFakeClassRepo()
	class := models.Class{Name: "Algebra-1", TeacherID: teacher.ID}
	require.NoError(t, classes.Create(context.Background(), &class))

	students := newFakeStudentProfileRepo()
	require.NoError(t, students.Create(context.Background(), &models.StudentProfile{UserID: student.ID, RegNo: "REG-001", ClassID: class.ID}))

	submissions := newFakeSubmissionRepo()
	marks := 85.0
	require.NoError(t, submissions.Create(context.Background(), &models.Submission{AssignmentID: 1, StudentID: student.ID, FilePath: "/uploads/a.pdf", Marks: &marks}))

	service := NewStudentRecordService(users, students, classes, submissions, testLogger())

	record, err := service.AcademicRecord(context.Background(), student.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice", record.User.Name)
	require.Equal(t, "REG-001", record.Profile.RegNo)
	require.Equal(t, "Algebra-1", record.Class.Name)
	require.Len(t, record.Submissions, 1)
	require.Equal(t, 85.0, *record.Submissions[0].Marks)
}

func TestAcademicRecordRejectsNonStudents(t *testing.T) {
	users := newFakeUserRepo()
	teacher := users.add(models.User{Name: "Iyer", Email: "iyer@school.test", Role: models.RoleTeacher})

	service := NewStudentRecordService(users, newFakeStudentProfileRepo(), newFakeClassRepo(), newFakeSubmissionRepo(), testLogger())

	_, err := service.AcademicRecord(context.Background(), teacher.ID)
	require.ErrorIs(t, err, ErrStudentNotFound)

	_, err = service.AcademicRecord(context.Background(), 9999)
	require.ErrorIs(t, err, ErrStudentNotFound)
}
