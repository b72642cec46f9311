package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asistapp/asistencia-api/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func subjectRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id_asignatura", "id_profesor", "nombre_asignatura", "siglas_asignatura", "color_asignatura", "color_seccion_asignatura", "seccion_asignatura", "modalidad_asignatura"}).
		AddRow(int64(1), int64(7), "Redes de Computadores", "RC", "#1f2937", "#f59e0b", "A", "presencial")
}

func TestSubjectRepositoryList(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id_asignatura, id_profesor, nombre_asignatura, siglas_asignatura, color_asignatura, color_seccion_asignatura, seccion_asignatura, modalidad_asignatura FROM asignatura ORDER BY id_asignatura")).
		WillReturnRows(subjectRows())

	subjects, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, subjects, 1)
	assert.Equal(t, "Redes de Computadores", subjects[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectRepositoryFindByIDNoRows(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	mock.ExpectQuery("SELECT .+ FROM asignatura WHERE id_asignatura").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 99)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSubjectRepositoryStudentSummaries(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	rows := sqlmock.NewRows([]string{"usuario_estudiante", "id_asignatura", "id_profesor", "nombre_asignatura", "siglas_asignatura", "color_asignatura", "color_seccion_asignatura", "seccion_asignatura", "modalidad_asignatura", "count_asistencias", "count_total_asistencias"}).
		AddRow("jperez", int64(1), int64(7), "Redes de Computadores", "RC", "#1f2937", "#f59e0b", "A", "presencial", 3, 4)
	mock.ExpectQuery("SELECT\\s+e.usuario_estudiante").
		WithArgs("jperez").
		WillReturnRows(rows)

	summaries, err := repo.StudentSummaries(context.Background(), "jperez")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 3, summaries[0].PresentCount)
	assert.Equal(t, 4, summaries[0].TotalCount)
}

func TestSubjectRepositoryCreateWithEnrollment(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO asignatura")).
		WithArgs(int64(7), "Redes de Computadores", "RC", "#1f2937", "#f59e0b", "A", "presencial").
		WillReturnRows(sqlmock.NewRows([]string{"id_asignatura"}).AddRow(int64(5)))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO clases")).
		WithArgs(int64(5), sqlmock.AnyArg(), models.EnrollmentQRCode).
		WillReturnRows(sqlmock.NewRows([]string{"id_clase"}).AddRow(int64(11)))
	mock.ExpectCommit()

	subject := &models.Subject{
		TeacherID:    7,
		Name:         "Redes de Computadores",
		ShortCode:    "RC",
		PrimaryColor: "#1f2937",
		SectionColor: "#f59e0b",
		SectionLabel: "A",
		Modality:     "presencial",
	}
	sessionID, err := repo.CreateWithEnrollment(context.Background(), subject, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(5), subject.ID)
	assert.Equal(t, int64(11), sessionID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectRepositoryCreateWithEnrollmentRollsBack(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO asignatura")).
		WillReturnRows(sqlmock.NewRows([]string{"id_asignatura"}).AddRow(int64(5)))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO clases")).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	_, err := repo.CreateWithEnrollment(context.Background(), &models.Subject{TeacherID: 7}, time.Now())
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectRepositoryDeleteCascade(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM asistencia WHERE id_clase IN (SELECT id_clase FROM clases WHERE id_asignatura = $1)")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 8))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM clases WHERE id_asignatura = $1")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM asignatura WHERE id_asignatura = $1")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	existed, err := repo.DeleteCascade(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, existed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectRepositoryDeleteCascadeMissing(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM asistencia").WithArgs(int64(99)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM clases").WithArgs(int64(99)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM asignatura").WithArgs(int64(99)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	existed, err := repo.DeleteCascade(context.Background(), 99)
	require.NoError(t, err)
	assert.False(t, existed)
}
