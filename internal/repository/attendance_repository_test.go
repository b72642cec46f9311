package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asistapp/asistencia-api/internal/models"
)

func TestAttendanceRepositoryInsert(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	date := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO asistencia (id_clase, id_estudiante, asistencia, fecha_asistencia) VALUES ($1, $2, $3, $4) RETURNING id_asistencia")).
		WithArgs(int64(3), int64(8), models.PresencePresent, date).
		WillReturnRows(sqlmock.NewRows([]string{"id_asistencia"}).AddRow(int64(21)))

	record := &models.AttendanceRecord{SessionID: 3, StudentID: 8, Present: models.PresencePresent, Date: date}
	require.NoError(t, repo.Insert(context.Background(), record))
	assert.Equal(t, int64(21), record.ID)
}

func TestAttendanceRepositoryInsertAllowsDuplicates(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	date := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO asistencia").
		WillReturnRows(sqlmock.NewRows([]string{"id_asistencia"}).AddRow(int64(21)))
	mock.ExpectQuery("INSERT INTO asistencia").
		WillReturnRows(sqlmock.NewRows([]string{"id_asistencia"}).AddRow(int64(22)))

	first := &models.AttendanceRecord{SessionID: 3, StudentID: 8, Present: models.PresencePresent, Date: date}
	second := &models.AttendanceRecord{SessionID: 3, StudentID: 8, Present: models.PresencePresent, Date: date}
	require.NoError(t, repo.Insert(context.Background(), first))
	require.NoError(t, repo.Insert(context.Background(), second))
	assert.NotEqual(t, first.ID, second.ID)
}

func TestAttendanceRepositoryMarkPresent(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	date := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE asistencia SET asistencia = 1 WHERE id_clase = $1 AND fecha_asistencia = $2 AND id_estudiante = $3")).
		WithArgs(int64(3), date, int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.MarkPresent(context.Background(), 3, date, 8)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
}

func TestAttendanceRepositoryMarkPresentNoMatch(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectExec("UPDATE asistencia SET asistencia = 1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.MarkPresent(context.Background(), 3, time.Now(), 8)
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestAttendanceRepositoryListByStudentUsername(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	date := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id_asistencia", "id_clase", "id_estudiante", "asistencia", "fecha_asistencia", "usuario_estudiante"}).
		AddRow(int64(21), int64(3), int64(8), 1, date, "jperez")
	mock.ExpectQuery("SELECT a.id_asistencia, a.id_clase").
		WithArgs("jperez").
		WillReturnRows(rows)

	result, err := repo.ListByStudentUsername(context.Background(), "jperez")
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "jperez", result[0].StudentUsername)
}

func TestAttendanceRepositorySubjectOverview(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	date := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id_asignatura", "id_profesor", "nombre_asignatura", "siglas_asignatura", "color_asignatura", "color_seccion_asignatura", "seccion_asignatura", "modalidad_asignatura",
		"id_clase", "fecha_clase", "codigoqr_clase",
		"id_asistencia", "id_estudiante", "asistencia", "fecha_asistencia",
	}).AddRow(int64(1), int64(7), "Redes de Computadores", "RC", "#1f2937", "#f59e0b", "A", "presencial",
		int64(3), date, "qr-payload",
		int64(21), int64(8), 1, date)
	mock.ExpectQuery("SELECT g.id_asignatura").
		WithArgs(int64(7), int64(1)).
		WillReturnRows(rows)

	overview, err := repo.SubjectOverview(context.Background(), 7, 1)
	require.NoError(t, err)
	require.Len(t, overview, 1)
	assert.Equal(t, int64(3), overview[0].SessionID)
	assert.Equal(t, 1, overview[0].Present)
}
