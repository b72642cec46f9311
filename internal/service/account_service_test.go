package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/asistapp/asistencia-api/internal/models"
	appErrors "github.com/asistapp/asistencia-api/pkg/errors"
)

type mockAccountRepo struct {
	students map[string]models.Student
	teachers map[string]models.Teacher
	nextID   int64
}

func (m *mockAccountRepo) ListStudents(ctx context.Context) ([]models.Student, error) {
	out := make([]models.Student, 0, len(m.students))
	for _, s := range m.students {
		out = append(out, s)
	}
	return out, nil
}

func (m *mockAccountRepo) ListTeachers(ctx context.Context) ([]models.Teacher, error) {
	out := make([]models.Teacher, 0, len(m.teachers))
	for _, t := range m.teachers {
		out = append(out, t)
	}
	return out, nil
}

func (m *mockAccountRepo) FindStudentByUsername(ctx context.Context, username string) (*models.Student, error) {
	if s, ok := m.students[username]; ok {
		return &s, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAccountRepo) FindTeacherByUsername(ctx context.Context, username string) (*models.Teacher, error) {
	if t, ok := m.teachers[username]; ok {
		return &t, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAccountRepo) StudentUsernameExists(ctx context.Context, username string) (bool, error) {
	_, ok := m.students[username]
	return ok, nil
}

func (m *mockAccountRepo) TeacherUsernameExists(ctx context.Context, username string) (bool, error) {
	_, ok := m.teachers[username]
	return ok, nil
}

func (m *mockAccountRepo) CreateStudent(ctx context.Context, student *models.Student) error {
	if m.students == nil {
		m.students = make(map[string]models.Student)
	}
	m.nextID++
	student.ID = m.nextID
	m.students[student.Username] = *student
	return nil
}

func (m *mockAccountRepo) CreateTeacher(ctx context.Context, teacher *models.Teacher) error {
	if m.teachers == nil {
		m.teachers = make(map[string]models.Teacher)
	}
	m.nextID++
	teacher.ID = m.nextID
	m.teachers[teacher.Username] = *teacher
	return nil
}

func newAccountService(repo *mockAccountRepo) *AccountService {
	return NewAccountService(repo, validator.New(), zap.NewNop())
}

func TestAccountServiceCreateStudentHashesPassword(t *testing.T) {
	repo := &mockAccountRepo{}
	svc := newAccountService(repo)

	student, err := svc.CreateStudent(context.Background(), CreateStudentRequest{Username: "jperez", Password: "secreto123"})
	require.NoError(t, err)
	stored := repo.students["jperez"]
	assert.NotEqual(t, "secreto123", stored.PasswordHash)
	assert.True(t, strings.HasPrefix(stored.PasswordHash, "$2"))
	assert.Equal(t, student.ID, stored.ID)
}

func TestAccountServiceCreateStudentDuplicateUsername(t *testing.T) {
	repo := &mockAccountRepo{students: map[string]models.Student{"jperez": {ID: 1, Username: "jperez"}}}
	svc := newAccountService(repo)

	_, err := svc.CreateStudent(context.Background(), CreateStudentRequest{Username: "jperez", Password: "otra"})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrConflict.Status, appErr.Status)
}

func TestAccountServiceAuthenticateRoundTrip(t *testing.T) {
	repo := &mockAccountRepo{}
	svc := newAccountService(repo)

	_, err := svc.CreateTeacher(context.Background(), CreateTeacherRequest{Username: "mgarcia", Password: "clave-segura"})
	require.NoError(t, err)

	account, err := svc.Authenticate(context.Background(), AuthenticateRequest{
		Username: "mgarcia", Password: "clave-segura", Role: models.RoleTeacher,
	})
	require.NoError(t, err)
	assert.Equal(t, "mgarcia", account.Username)
	assert.Equal(t, models.RoleTeacher, account.Role)
}

func TestAccountServiceAuthenticateWrongPassword(t *testing.T) {
	repo := &mockAccountRepo{}
	svc := newAccountService(repo)

	_, err := svc.CreateStudent(context.Background(), CreateStudentRequest{Username: "jperez", Password: "correcta"})
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), AuthenticateRequest{
		Username: "jperez", Password: "incorrecta", Role: models.RoleStudent,
	})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Status, appErr.Status)
}

func TestAccountServiceAuthenticateUnknownUserSame401(t *testing.T) {
	svc := newAccountService(&mockAccountRepo{})

	_, err := svc.Authenticate(context.Background(), AuthenticateRequest{
		Username: "nadie", Password: "x", Role: models.RoleStudent,
	})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Status, appErr.Status)
}

func TestAccountServiceAuthenticateRejectsUnknownRole(t *testing.T) {
	svc := newAccountService(&mockAccountRepo{})

	_, err := svc.Authenticate(context.Background(), AuthenticateRequest{
		Username: "jperez", Password: "x", Role: "admin",
	})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Status, appErr.Status)
}
