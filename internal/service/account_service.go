package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/asistapp/asistencia-api/internal/models"
	appErrors "github.com/asistapp/asistencia-api/pkg/errors"
)

type accountRepository interface {
	ListStudents(ctx context.Context) ([]models.Student, error)
	ListTeachers(ctx context.Context) ([]models.Teacher, error)
	FindStudentByUsername(ctx context.Context, username string) (*models.Student, error)
	FindTeacherByUsername(ctx context.Context, username string) (*models.Teacher, error)
	StudentUsernameExists(ctx context.Context, username string) (bool, error)
	TeacherUsernameExists(ctx context.Context, username string) (bool, error)
	CreateStudent(ctx context.Context, student *models.Student) error
	CreateTeacher(ctx context.Context, teacher *models.Teacher) error
}

// CreateStudentRequest holds the payload for registering a student account.
type CreateStudentRequest struct {
	Username string `json:"usuario_estudiante" validate:"required"`
	Password string `json:"contrasena_estudiante" validate:"required"`
}

// CreateTeacherRequest holds the payload for registering a teacher account.
type CreateTeacherRequest struct {
	Username string `json:"usuario_profesor" validate:"required"`
	Password string `json:"contrasena_profesor" validate:"required"`
}

// AuthenticateRequest holds the credential-check payload.
type AuthenticateRequest struct {
	Username string `json:"usuario" validate:"required"`
	Password string `json:"contrasena" validate:"required"`
	Role     string `json:"rol" validate:"required,oneof=estudiante profesor"`
}

// AuthenticatedAccount is the credential-check result, hash excluded.
type AuthenticatedAccount struct {
	ID       int64  `json:"id"`
	Username string `json:"usuario"`
	Role     string `json:"rol"`
}

// AccountService handles student and teacher account use-cases.
type AccountService struct {
	repo      accountRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAccountService constructs the account service.
func NewAccountService(repo accountRepository, validate *validator.Validate, logger *zap.Logger) *AccountService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{repo: repo, validator: validate, logger: logger}
}

// ListStudents returns every student account.
func (s *AccountService) ListStudents(ctx context.Context) ([]models.Student, error) {
	students, err := s.repo.ListStudents(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	return students, nil
}

// ListTeachers returns every teacher account.
func (s *AccountService) ListTeachers(ctx context.Context) ([]models.Teacher, error) {
	teachers, err := s.repo.ListTeachers(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teachers")
	}
	return teachers, nil
}

// GetStudent returns the student account for a username.
func (s *AccountService) GetStudent(ctx context.Context, username string) (*models.Student, error) {
	student, err := s.repo.FindStudentByUsername(ctx, username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}

// GetTeacher returns the teacher account for a username.
func (s *AccountService) GetTeacher(ctx context.Context, username string) (*models.Teacher, error) {
	teacher, err := s.repo.FindTeacherByUsername(ctx, username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	return teacher, nil
}

// CreateStudent registers a student account. The password is bcrypt-hashed
// before it touches the store; usernames are unique.
func (s *AccountService) CreateStudent(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	exists, err := s.repo.StudentUsernameExists(ctx, req.Username)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate username")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "username already taken")
	}
	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	student := &models.Student{Username: req.Username, PasswordHash: hash}
	if err := s.repo.CreateStudent(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	s.logger.Info("student registered", zap.Int64("id_estudiante", student.ID))
	return student, nil
}

// CreateTeacher registers a teacher account.
func (s *AccountService) CreateTeacher(ctx context.Context, req CreateTeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload")
	}
	exists, err := s.repo.TeacherUsernameExists(ctx, req.Username)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate username")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "username already taken")
	}
	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	teacher := &models.Teacher{Username: req.Username, PasswordHash: hash}
	if err := s.repo.CreateTeacher(ctx, teacher); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create teacher")
	}
	s.logger.Info("teacher registered", zap.Int64("id_profesor", teacher.ID))
	return teacher, nil
}

// Authenticate verifies a credential pair for the given role. An unknown
// username and a wrong password both map to the same 401.
func (s *AccountService) Authenticate(ctx context.Context, req AuthenticateRequest) (*AuthenticatedAccount, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid credentials payload")
	}

	var (
		id   int64
		hash string
	)
	switch req.Role {
	case models.RoleStudent:
		student, err := s.repo.FindStudentByUsername(ctx, req.Username)
		if err != nil {
			return nil, credentialLookupError(err)
		}
		id, hash = student.ID, student.PasswordHash
	case models.RoleTeacher:
		teacher, err := s.repo.FindTeacherByUsername(ctx, req.Username)
		if err != nil {
			return nil, credentialLookupError(err)
		}
		id, hash = teacher.ID, teacher.PasswordHash
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	return &AuthenticatedAccount{ID: id, Username: req.Username, Role: req.Role}, nil
}

func credentialLookupError(err error) error {
	if err == sql.ErrNoRows {
		return appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load account")
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}
	return string(hash), nil
}
