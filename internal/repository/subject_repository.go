package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/asistapp/asistencia-api/internal/models"
)

// SubjectRepository handles persistence for subjects (asignatura).
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository creates a new repository instance.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

const subjectColumns = `id_asignatura, id_profesor, nombre_asignatura, siglas_asignatura, color_asignatura, color_seccion_asignatura, seccion_asignatura, modalidad_asignatura`

// List returns every subject.
func (r *SubjectRepository) List(ctx context.Context) ([]models.Subject, error) {
	query := fmt.Sprintf("SELECT %s FROM asignatura ORDER BY id_asignatura", subjectColumns)
	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, query); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// FindByID returns a subject by id. sql.ErrNoRows passes through untouched.
func (r *SubjectRepository) FindByID(ctx context.Context, id int64) (*models.Subject, error) {
	query := fmt.Sprintf("SELECT %s FROM asignatura WHERE id_asignatura = $1", subjectColumns)
	var subject models.Subject
	if err := r.db.GetContext(ctx, &subject, query, id); err != nil {
		return nil, err
	}
	return &subject, nil
}

// ListByTeacherID returns the subjects owned by a teacher.
func (r *SubjectRepository) ListByTeacherID(ctx context.Context, teacherID int64) ([]models.Subject, error) {
	query := fmt.Sprintf("SELECT %s FROM asignatura WHERE id_profesor = $1 ORDER BY id_asignatura", subjectColumns)
	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, query, teacherID); err != nil {
		return nil, fmt.Errorf("list subjects by teacher: %w", err)
	}
	return subjects, nil
}

// ListByTeacherUsername joins through profesores to resolve the owner.
func (r *SubjectRepository) ListByTeacherUsername(ctx context.Context, username string) ([]models.Subject, error) {
	const query = `SELECT a.id_asignatura, a.id_profesor, a.nombre_asignatura, a.siglas_asignatura, a.color_asignatura, a.color_seccion_asignatura, a.seccion_asignatura, a.modalidad_asignatura
FROM asignatura a
INNER JOIN profesores p ON a.id_profesor = p.id_profesor
WHERE p.usuario_profesor = $1
ORDER BY a.id_asignatura`
	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, query, username); err != nil {
		return nil, fmt.Errorf("list subjects by teacher username: %w", err)
	}
	return subjects, nil
}

const summarySelect = `SELECT
    e.usuario_estudiante,
    a.id_asignatura,
    a.id_profesor,
    a.nombre_asignatura,
    a.siglas_asignatura,
    a.color_asignatura,
    a.color_seccion_asignatura,
    a.seccion_asignatura,
    a.modalidad_asignatura,
    COUNT(CASE WHEN s.asistencia = 1 THEN 1 END) AS count_asistencias,
    COUNT(s.asistencia) AS count_total_asistencias
FROM asignatura a
INNER JOIN clases c ON c.id_asignatura = a.id_asignatura
INNER JOIN asistencia s ON s.id_clase = c.id_clase
INNER JOIN estudiantes e ON e.id_estudiante = s.id_estudiante`

// StudentSummaries aggregates attendance counts per subject for a student.
func (r *SubjectRepository) StudentSummaries(ctx context.Context, username string) ([]models.SubjectSummary, error) {
	query := summarySelect + `
WHERE e.usuario_estudiante = $1
GROUP BY a.id_asignatura, e.usuario_estudiante
ORDER BY a.id_asignatura`
	var summaries []models.SubjectSummary
	if err := r.db.SelectContext(ctx, &summaries, query, username); err != nil {
		return nil, fmt.Errorf("student subject summaries: %w", err)
	}
	return summaries, nil
}

// StudentSubjectSummary scopes the aggregation to a single subject.
func (r *SubjectRepository) StudentSubjectSummary(ctx context.Context, subjectID int64, username string) ([]models.SubjectSummary, error) {
	query := summarySelect + `
WHERE e.usuario_estudiante = $1 AND a.id_asignatura = $2
GROUP BY a.id_asignatura, e.usuario_estudiante`
	var summaries []models.SubjectSummary
	if err := r.db.SelectContext(ctx, &summaries, query, username, subjectID); err != nil {
		return nil, fmt.Errorf("student subject summary: %w", err)
	}
	return summaries, nil
}

// CreateWithEnrollment inserts the subject and its enrollment session in a
// single transaction, returning both generated ids.
func (r *SubjectRepository) CreateWithEnrollment(ctx context.Context, subject *models.Subject, enrollmentDate time.Time) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin create subject: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	const insertSubject = `INSERT INTO asignatura (id_profesor, nombre_asignatura, siglas_asignatura, color_asignatura, color_seccion_asignatura, seccion_asignatura, modalidad_asignatura)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id_asignatura`
	if err := tx.QueryRowxContext(ctx, insertSubject,
		subject.TeacherID,
		subject.Name,
		subject.ShortCode,
		subject.PrimaryColor,
		subject.SectionColor,
		subject.SectionLabel,
		subject.Modality,
	).Scan(&subject.ID); err != nil {
		return 0, fmt.Errorf("insert subject: %w", err)
	}

	const insertEnrollment = `INSERT INTO clases (id_asignatura, fecha_clase, codigoqr_clase) VALUES ($1, $2, $3) RETURNING id_clase`
	var sessionID int64
	if err := tx.QueryRowxContext(ctx, insertEnrollment, subject.ID, enrollmentDate, models.EnrollmentQRCode).Scan(&sessionID); err != nil {
		return 0, fmt.Errorf("insert enrollment session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit create subject: %w", err)
	}
	committed = true
	return sessionID, nil
}

// DeleteCascade removes the subject's attendance records, its sessions and
// finally the subject row in one transaction. It reports whether the subject
// row existed.
func (r *SubjectRepository) DeleteCascade(ctx context.Context, id int64) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin delete subject: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	const deleteAttendance = `DELETE FROM asistencia WHERE id_clase IN (SELECT id_clase FROM clases WHERE id_asignatura = $1)`
	if _, err := tx.ExecContext(ctx, deleteAttendance, id); err != nil {
		return false, fmt.Errorf("delete subject attendance: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM clases WHERE id_asignatura = $1`, id); err != nil {
		return false, fmt.Errorf("delete subject sessions: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM asignatura WHERE id_asignatura = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete subject: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete subject rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit delete subject: %w", err)
	}
	committed = true
	return affected > 0, nil
}
