package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asistapp/asistencia-api/internal/models"
)

func TestAccountRepositoryFindStudentByUsernameNoRows(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewAccountRepository(db)

	mock.ExpectQuery("SELECT id_estudiante, usuario_estudiante").
		WithArgs("nadie").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindStudentByUsername(context.Background(), "nadie")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestAccountRepositoryStudentUsernameExists(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewAccountRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM estudiantes WHERE usuario_estudiante = $1 LIMIT 1")).
		WithArgs("jperez").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.StudentUsernameExists(context.Background(), "jperez")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestAccountRepositoryStudentUsernameMissing(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewAccountRepository(db)

	mock.ExpectQuery("SELECT 1 FROM estudiantes").
		WithArgs("nadie").
		WillReturnError(sql.ErrNoRows)

	exists, err := repo.StudentUsernameExists(context.Background(), "nadie")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAccountRepositoryCreateStudent(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewAccountRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO estudiantes (usuario_estudiante, contrasena_estudiante) VALUES ($1, $2) RETURNING id_estudiante")).
		WithArgs("jperez", "$2a$10$hash").
		WillReturnRows(sqlmock.NewRows([]string{"id_estudiante"}).AddRow(int64(8)))

	student := &models.Student{Username: "jperez", PasswordHash: "$2a$10$hash"}
	require.NoError(t, repo.CreateStudent(context.Background(), student))
	assert.Equal(t, int64(8), student.ID)
}

func TestAccountRepositoryCreateTeacher(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewAccountRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO profesores (usuario_profesor, contrasena_profesor) VALUES ($1, $2) RETURNING id_profesor")).
		WithArgs("mgarcia", "$2a$10$hash").
		WillReturnRows(sqlmock.NewRows([]string{"id_profesor"}).AddRow(int64(7)))

	teacher := &models.Teacher{Username: "mgarcia", PasswordHash: "$2a$10$hash"}
	require.NoError(t, repo.CreateTeacher(context.Background(), teacher))
	assert.Equal(t, int64(7), teacher.ID)
}

func TestAccountRepositoryListTeachers(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewAccountRepository(db)

	rows := sqlmock.NewRows([]string{"id_profesor", "usuario_profesor", "contrasena_profesor"}).
		AddRow(int64(7), "mgarcia", "$2a$10$hash")
	mock.ExpectQuery("SELECT id_profesor, usuario_profesor").
		WillReturnRows(rows)

	teachers, err := repo.ListTeachers(context.Background())
	require.NoError(t, err)
	require.Len(t, teachers, 1)
	assert.Equal(t, "mgarcia", teachers[0].Username)
}
