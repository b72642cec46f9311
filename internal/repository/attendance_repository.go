package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/asistapp/asistencia-api/internal/models"
)

// AttendanceRepository handles persistence for attendance records (asistencia).
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository creates a new repository instance.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Insert stores one attendance record with the given presence flag and
// returns the generated id. Duplicate (session, student) pairs are allowed.
func (r *AttendanceRepository) Insert(ctx context.Context, record *models.AttendanceRecord) error {
	const query = `INSERT INTO asistencia (id_clase, id_estudiante, asistencia, fecha_asistencia) VALUES ($1, $2, $3, $4) RETURNING id_asistencia`
	if err := r.db.QueryRowxContext(ctx, query, record.SessionID, record.StudentID, record.Present, record.Date).Scan(&record.ID); err != nil {
		return fmt.Errorf("insert attendance: %w", err)
	}
	return nil
}

// MarkPresent flips asistencia to 1 on the rows matching the exact
// (session, date, student) triple and returns the number of rows touched.
func (r *AttendanceRepository) MarkPresent(ctx context.Context, sessionID int64, date time.Time, studentID int64) (int64, error) {
	const query = `UPDATE asistencia SET asistencia = 1 WHERE id_clase = $1 AND fecha_asistencia = $2 AND id_estudiante = $3`
	res, err := r.db.ExecContext(ctx, query, sessionID, date, studentID)
	if err != nil {
		return 0, fmt.Errorf("mark attendance present: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("mark present rows affected: %w", err)
	}
	return affected, nil
}

// ListByStudentAndSession returns the records for one (student, session) pair.
func (r *AttendanceRepository) ListByStudentAndSession(ctx context.Context, studentID, sessionID int64) ([]models.AttendanceRecord, error) {
	const query = `SELECT id_asistencia, id_clase, id_estudiante, asistencia, fecha_asistencia FROM asistencia WHERE id_estudiante = $1 AND id_clase = $2 ORDER BY id_asistencia`
	var records []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query, studentID, sessionID); err != nil {
		return nil, fmt.Errorf("list attendance by student and session: %w", err)
	}
	return records, nil
}

// ListByStudentUsername joins through estudiantes to resolve the account.
func (r *AttendanceRepository) ListByStudentUsername(ctx context.Context, username string) ([]models.StudentAttendanceRow, error) {
	const query = `SELECT a.id_asistencia, a.id_clase, a.id_estudiante, a.asistencia, a.fecha_asistencia, e.usuario_estudiante
FROM asistencia a
INNER JOIN estudiantes e ON e.id_estudiante = a.id_estudiante
WHERE e.usuario_estudiante = $1
ORDER BY a.id_asistencia`
	var rows []models.StudentAttendanceRow
	if err := r.db.SelectContext(ctx, &rows, query, username); err != nil {
		return nil, fmt.Errorf("list attendance by student username: %w", err)
	}
	return rows, nil
}

// DistinctStudentIDs returns every student with at least one record under
// any session of the subject. Used to know who to pre-populate.
func (r *AttendanceRepository) DistinctStudentIDs(ctx context.Context, subjectID int64) ([]models.StudentID, error) {
	const query = `SELECT DISTINCT a.id_estudiante
FROM asistencia a
INNER JOIN clases c ON c.id_clase = a.id_clase
INNER JOIN asignatura g ON g.id_asignatura = c.id_asignatura
WHERE g.id_asignatura = $1
ORDER BY a.id_estudiante`
	var ids []models.StudentID
	if err := r.db.SelectContext(ctx, &ids, query, subjectID); err != nil {
		return nil, fmt.Errorf("distinct subject students: %w", err)
	}
	return ids, nil
}

// SubjectOverview returns the full Subject×Session×Attendance join for a
// teacher's subject, backing the live-percentage view and the export.
func (r *AttendanceRepository) SubjectOverview(ctx context.Context, teacherID, subjectID int64) ([]models.SubjectSessionAttendanceRow, error) {
	const query = `SELECT g.id_asignatura, g.id_profesor, g.nombre_asignatura, g.siglas_asignatura, g.color_asignatura, g.color_seccion_asignatura, g.seccion_asignatura, g.modalidad_asignatura,
       c.id_clase, c.fecha_clase, c.codigoqr_clase,
       a.id_asistencia, a.id_estudiante, a.asistencia, a.fecha_asistencia
FROM asignatura g
INNER JOIN clases c ON g.id_asignatura = c.id_asignatura
INNER JOIN asistencia a ON c.id_clase = a.id_clase
WHERE g.id_profesor = $1 AND g.id_asignatura = $2
ORDER BY c.id_clase, a.id_asistencia`
	var rows []models.SubjectSessionAttendanceRow
	if err := r.db.SelectContext(ctx, &rows, query, teacherID, subjectID); err != nil {
		return nil, fmt.Errorf("subject overview: %w", err)
	}
	return rows, nil
}
