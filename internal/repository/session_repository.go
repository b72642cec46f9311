package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/asistapp/asistencia-api/internal/models"
)

// SessionRepository handles persistence for class sessions (clases).
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository creates a new repository instance.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = `id_clase, id_asignatura, fecha_clase, codigoqr_clase`

// List returns every session.
func (r *SessionRepository) List(ctx context.Context) ([]models.Session, error) {
	query := fmt.Sprintf("SELECT %s FROM clases ORDER BY id_clase", sessionColumns)
	var sessions []models.Session
	if err := r.db.SelectContext(ctx, &sessions, query); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// ListBySubject returns the sessions belonging to a subject.
func (r *SessionRepository) ListBySubject(ctx context.Context, subjectID int64) ([]models.Session, error) {
	query := fmt.Sprintf("SELECT %s FROM clases WHERE id_asignatura = $1 ORDER BY id_clase", sessionColumns)
	var sessions []models.Session
	if err := r.db.SelectContext(ctx, &sessions, query, subjectID); err != nil {
		return nil, fmt.Errorf("list sessions by subject: %w", err)
	}
	return sessions, nil
}

// ListByDate returns the sessions held on a calendar date.
func (r *SessionRepository) ListByDate(ctx context.Context, date time.Time) ([]models.Session, error) {
	query := fmt.Sprintf("SELECT %s FROM clases WHERE fecha_clase = $1 ORDER BY id_clase", sessionColumns)
	var sessions []models.Session
	if err := r.db.SelectContext(ctx, &sessions, query, date); err != nil {
		return nil, fmt.Errorf("list sessions by date: %w", err)
	}
	return sessions, nil
}

// FindBySubjectAndDate returns the first session held for (subject, date).
// sql.ErrNoRows passes through untouched.
func (r *SessionRepository) FindBySubjectAndDate(ctx context.Context, subjectID int64, date time.Time) (*models.Session, error) {
	query := fmt.Sprintf("SELECT %s FROM clases WHERE id_asignatura = $1 AND fecha_clase = $2 ORDER BY id_clase LIMIT 1", sessionColumns)
	var session models.Session
	if err := r.db.GetContext(ctx, &session, query, subjectID, date); err != nil {
		return nil, err
	}
	return &session, nil
}

// FindQRCode returns the stored QR payload of the first session matching
// (subject, date). sql.ErrNoRows passes through untouched.
func (r *SessionRepository) FindQRCode(ctx context.Context, subjectID int64, date time.Time) (string, error) {
	const query = `SELECT codigoqr_clase FROM clases WHERE id_asignatura = $1 AND fecha_clase = $2 ORDER BY id_clase LIMIT 1`
	var payload string
	if err := r.db.GetContext(ctx, &payload, query, subjectID, date); err != nil {
		return "", err
	}
	return payload, nil
}

// EnrollmentRefs returns the session ids carrying the enrollment sentinel
// for a subject. More than one row is tolerated; callers take the first.
func (r *SessionRepository) EnrollmentRefs(ctx context.Context, subjectID int64) ([]models.SessionRef, error) {
	const query = `SELECT id_clase FROM clases WHERE id_asignatura = $1 AND codigoqr_clase = $2 ORDER BY id_clase`
	var refs []models.SessionRef
	if err := r.db.SelectContext(ctx, &refs, query, subjectID, models.EnrollmentQRCode); err != nil {
		return nil, fmt.Errorf("enrollment session lookup: %w", err)
	}
	return refs, nil
}

// Create inserts a session and fills in its generated id.
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	const query = `INSERT INTO clases (id_asignatura, fecha_clase, codigoqr_clase) VALUES ($1, $2, $3) RETURNING id_clase`
	if err := r.db.QueryRowxContext(ctx, query, session.SubjectID, session.Date, session.QRCode).Scan(&session.ID); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// DeleteBySubject removes all sessions of a subject, returning the count.
// Zero matches is not an error.
func (r *SessionRepository) DeleteBySubject(ctx context.Context, subjectID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clases WHERE id_asignatura = $1`, subjectID)
	if err != nil {
		return 0, fmt.Errorf("delete sessions by subject: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete sessions rows affected: %w", err)
	}
	return affected, nil
}

// CreateWithRoster inserts the session and one absent attendance row per
// student already enrolled in the subject, in a single transaction. It
// returns the number of pre-populated rows.
func (r *SessionRepository) CreateWithRoster(ctx context.Context, session *models.Session) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin create session: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	const insertSession = `INSERT INTO clases (id_asignatura, fecha_clase, codigoqr_clase) VALUES ($1, $2, $3) RETURNING id_clase`
	if err := tx.QueryRowxContext(ctx, insertSession, session.SubjectID, session.Date, session.QRCode).Scan(&session.ID); err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}

	const prepopulate = `INSERT INTO asistencia (id_clase, id_estudiante, asistencia, fecha_asistencia)
SELECT $1, s.id_estudiante, 0, $2
FROM (SELECT DISTINCT a.id_estudiante
      FROM asistencia a
      INNER JOIN clases c ON c.id_clase = a.id_clase
      WHERE c.id_asignatura = $3) s`
	res, err := tx.ExecContext(ctx, prepopulate, session.ID, session.Date, session.SubjectID)
	if err != nil {
		return 0, fmt.Errorf("prepopulate roster: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prepopulate rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit create session: %w", err)
	}
	committed = true
	return int(inserted), nil
}
