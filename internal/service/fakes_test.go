package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Aadith-Viswam/student-progress/internal/models"
	"github.com/Aadith-Viswam/student-progress/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

type fakeUserRepo struct {
	users  map[uint]models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]models.User), nextID: 1}
}

func (r *fakeUserRepo) add(user models.User) models.User {
	if user.ID == 0 {
		user.ID = r.nextID
		r.nextID++
	}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (models.User, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	for _, user := range r.users {
		if user.Email == normalized {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = *user
	return nil
}

type fakeClassRepo struct {
	classes map[uint]models.Class
	nextID  uint
}

func newFakeClassRepo() *fakeClassRepo {
	return &fakeClassRepo{classes: make(map[uint]models.Class), nextID: 1}
}

func (r *fakeClassRepo) Create(_ context.Context, class *models.Class) error {
	class.ID = r.nextID
	r.nextID++
	r.classes[class.ID] = *class
	return nil
}

func (r *fakeClassRepo) GetByID(_ context.Context, id uint) (models.Class, error) {
	class, ok := r.classes[id]
	if !ok {
		return models.Class{}, gorm.ErrRecordNotFound
	}
	return class, nil
}

func (r *fakeClassRepo) ListByTeacher(_ context.Context, teacherID uint) ([]models.Class, error) {
	var classes []models.Class
	for _, class := range r.classes {
		if class.TeacherID == teacherID {
			classes = append(classes, class)
		}
	}
	return classes, nil
}

type fakeStudentProfileRepo struct {
	profiles map[uint]models.StudentProfile
	nextID   uint
}

func newFakeStudentProfileRepo() *fakeStudentProfileRepo {
	return &fakeStudentProfileRepo{profiles: make(map[uint]models.StudentProfile), nextID: 1}
}

func (r *fakeStudentProfileRepo) Create(_ context.Context, profile *models.StudentProfile) error {
	profile.ID = r.nextID
	r.nextID++
	r.profiles[profile.ID] = *profile
	return nil
}

func (r *fakeStudentProfileRepo) GetByUserID(_ context.Context, userID uint) (models.StudentProfile, error) {
	for _, profile := range r.profiles {
		if profile.UserID == userID {
			return profile, nil
		}
	}
	return models.StudentProfile{}, gorm.ErrRecordNotFound
}

func (r *fakeStudentProfileRepo) GetByRegNo(_ context.Context, regNo string) (models.StudentProfile, error) {
	for _, profile := range r.profiles {
		if profile.RegNo == regNo {
			return profile, nil
		}
	}
	return models.StudentProfile{}, gorm.ErrRecordNotFound
}

func (r *fakeStudentProfileRepo) ListByClass(_ context.Context, classID uint) ([]models.StudentProfile, error) {
	var profiles []models.StudentProfile
	for _, profile := range r.profiles {
		if profile.ClassID == classID {
			profiles = append(profiles, profile)
		}
	}
	return profiles, nil
}

func (r *fakeStudentProfileRepo) Update(_ context.Context, profile *models.StudentProfile) error {
	r.profiles[profile.ID] = *profile
	return nil
}

type fakeTeacherProfileRepo struct {
	profiles map[uint]models.TeacherProfile
	nextID   uint
}

func newFakeTeacherProfileRepo() *fakeTeacherProfileRepo {
	return &fakeTeacherProfileRepo{profiles: make(map[uint]models.TeacherProfile), nextID: 1}
}

func (r *fakeTeacherProfileRepo) Create(_ context.Context, profile *models.TeacherProfile) error {
	profile.ID = r.nextID
	r.nextID++
	r.profiles[profile.ID] = *profile
	return nil
}

func (r *fakeTeacherProfileRepo) GetByUserID(_ context.Context, userID uint) (models.TeacherProfile, error) {
	for _, profile := range r.profiles {
		if profile.UserID == userID {
			return profile, nil
		}
	}
	return models.TeacherProfile{}, gorm.ErrRecordNotFound
}

type fakeAssignmentRepo struct {
	assignments map[uint]models.Assignment
	nextID      uint
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{assignments: make(map[uint]models.Assignment), nextID: 1}
}

func (r *fakeAssignmentRepo) add(assignment models.Assignment) models.Assignment {
	if assignment.ID == 0 {
		assignment.ID = r.nextID
		r.nextID++
	}
	r.assignments[assignment.ID] = assignment
	return assignment
}

func (r *fakeAssignmentRepo) Create(_ context.Context, assignment *models.Assignment) error {
	assignment.ID = r.nextID
	r.nextID++
	r.assignments[assignment.ID] = *assignment
	return nil
}

func (r *fakeAssignmentRepo) GetByID(_ context.Context, id uint) (models.Assignment, error) {
	assignment, ok := r.assignments[id]
	if !ok {
		return models.Assignment{}, gorm.ErrRecordNotFound
	}
	return assignment, nil
}

func (r *fakeAssignmentRepo) ListByClass(_ context.Context, classID uint) ([]models.Assignment, error) {
	var assignments []models.Assignment
	for _, assignment := range r.assignments {
		if assignment.ClassID == classID {
			assignments = append(assignments, assignment)
		}
	}
	return assignments, nil
}

type submissionKey struct {
	assignmentID uint
	studentID    uint
}

type fakeSubmissionRepo struct {
	rows        map[submissionKey]models.Submission
	nextID      uint
	createCalls int
	updateCalls int
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{rows: make(map[submissionKey]models.Submission), nextID: 1}
}

func (r *fakeSubmissionRepo) List(_ context.Context, filter repository.SubmissionFilter) ([]models.Submission, error) {
	var submissions []models.Submission
	for _, submission := range r.rows {
		if filter.AssignmentID != nil && submission.AssignmentID != *filter.AssignmentID {
			continue
		}
		if filter.StudentID != nil && submission.StudentID != *filter.StudentID {
			continue
		}
		submissions = append(submissions, submission)
	}
	return submissions, nil
}

func (r *fakeSubmissionRepo) GetByPair(_ context.Context, assignmentID, studentID uint) (models.Submission, error) {
	submission, ok := r.rows[submissionKey{assignmentID, studentID}]
	if !ok {
		return models.Submission{}, gorm.ErrRecordNotFound
	}
	return submission, nil
}

func (r *fakeSubmissionRepo) Create(_ context.Context, submission *models.Submission) error {
	r.createCalls++
	submission.ID = r.nextID
	r.nextID++
	r.rows[submissionKey{submission.AssignmentID, submission.StudentID}] = *submission
	return nil
}

func (r *fakeSubmissionRepo) Update(_ context.Context, submission *models.Submission) error {
	r.updateCalls++
	r.rows[submissionKey{submission.AssignmentID, submission.StudentID}] = *submission
	return nil
}

type fakeStorage struct {
	uploads []string
}

func (s *fakeStorage) Upload(_ context.Context, name string, reader io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return "", err
	}
	s.uploads = append(s.uploads, name)
	return "/uploads/" + name, nil
}

// makeFileHeader builds a real multipart.FileHeader the way Fiber would hand
// one to the service.
func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	form, err := multipart.NewReader(&buf, writer.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read multipart form: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })

	headers := form.File["file"]
	if len(headers) != 1 {
		t.Fatalf("expected one file header, got %d", len(headers))
	}
	return headers[0]
}
