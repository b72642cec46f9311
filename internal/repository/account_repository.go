package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/asistapp/asistencia-api/internal/models"
)

// AccountRepository handles persistence for student and teacher accounts.
type AccountRepository struct {
	db *sqlx.DB
}

// NewAccountRepository creates a new repository instance.
func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// ListStudents returns every student account.
func (r *AccountRepository) ListStudents(ctx context.Context) ([]models.Student, error) {
	const query = `SELECT id_estudiante, usuario_estudiante, contrasena_estudiante FROM estudiantes ORDER BY id_estudiante`
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// ListTeachers returns every teacher account.
func (r *AccountRepository) ListTeachers(ctx context.Context) ([]models.Teacher, error) {
	const query = `SELECT id_profesor, usuario_profesor, contrasena_profesor FROM profesores ORDER BY id_profesor`
	var teachers []models.Teacher
	if err := r.db.SelectContext(ctx, &teachers, query); err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}

// FindStudentByUsername returns the student account for a username.
// sql.ErrNoRows passes through untouched.
func (r *AccountRepository) FindStudentByUsername(ctx context.Context, username string) (*models.Student, error) {
	const query = `SELECT id_estudiante, usuario_estudiante, contrasena_estudiante FROM estudiantes WHERE usuario_estudiante = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, username); err != nil {
		return nil, err
	}
	return &student, nil
}

// FindTeacherByUsername returns the teacher account for a username.
func (r *AccountRepository) FindTeacherByUsername(ctx context.Context, username string) (*models.Teacher, error) {
	const query = `SELECT id_profesor, usuario_profesor, contrasena_profesor FROM profesores WHERE usuario_profesor = $1`
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, username); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// StudentUsernameExists checks uniqueness of a student username.
func (r *AccountRepository) StudentUsernameExists(ctx context.Context, username string) (bool, error) {
	const query = `SELECT 1 FROM estudiantes WHERE usuario_estudiante = $1 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, username); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check student username: %w", err)
	}
	return true, nil
}

// TeacherUsernameExists checks uniqueness of a teacher username.
func (r *AccountRepository) TeacherUsernameExists(ctx context.Context, username string) (bool, error) {
	const query = `SELECT 1 FROM profesores WHERE usuario_profesor = $1 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, username); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check teacher username: %w", err)
	}
	return true, nil
}

// CreateStudent inserts a student account and fills in its generated id.
func (r *AccountRepository) CreateStudent(ctx context.Context, student *models.Student) error {
	const query = `INSERT INTO estudiantes (usuario_estudiante, contrasena_estudiante) VALUES ($1, $2) RETURNING id_estudiante`
	if err := r.db.QueryRowxContext(ctx, query, student.Username, student.PasswordHash).Scan(&student.ID); err != nil {
		return fmt.Errorf("insert student: %w", err)
	}
	return nil
}

// CreateTeacher inserts a teacher account and fills in its generated id.
func (r *AccountRepository) CreateTeacher(ctx context.Context, teacher *models.Teacher) error {
	const query = `INSERT INTO profesores (usuario_profesor, contrasena_profesor) VALUES ($1, $2) RETURNING id_profesor`
	if err := r.db.QueryRowxContext(ctx, query, teacher.Username, teacher.PasswordHash).Scan(&teacher.ID); err != nil {
		return fmt.Errorf("insert teacher: %w", err)
	}
	return nil
}
