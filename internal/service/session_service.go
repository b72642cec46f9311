package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/asistapp/asistencia-api/internal/models"
	appErrors "github.com/asistapp/asistencia-api/pkg/errors"
)

type sessionRepository interface {
	List(ctx context.Context) ([]models.Session, error)
	ListBySubject(ctx context.Context, subjectID int64) ([]models.Session, error)
	ListByDate(ctx context.Context, date time.Time) ([]models.Session, error)
	FindBySubjectAndDate(ctx context.Context, subjectID int64, date time.Time) (*models.Session, error)
	FindQRCode(ctx context.Context, subjectID int64, date time.Time) (string, error)
	EnrollmentRefs(ctx context.Context, subjectID int64) ([]models.SessionRef, error)
	Create(ctx context.Context, session *models.Session) error
	DeleteBySubject(ctx context.Context, subjectID int64) (int64, error)
	CreateWithRoster(ctx context.Context, session *models.Session) (int, error)
}

// CreateSessionRequest holds the payload for creating a session.
type CreateSessionRequest struct {
	SubjectID int64  `json:"id_asignatura" validate:"required"`
	Date      string `json:"fecha_clase" validate:"required"`
	QRCode    string `json:"codigoqr_clase" validate:"required"`
}

// GenerateSessionRequest holds the payload for the server-generated QR flow.
type GenerateSessionRequest struct {
	SubjectID int64  `json:"id_asignatura" validate:"required"`
	Date      string `json:"fecha_clase" validate:"required"`
}

// GenerateSessionResult reports the created session and how many roster rows
// were pre-populated alongside it.
type GenerateSessionResult struct {
	SessionID      int64  `json:"id_clase"`
	QRCode         string `json:"codigoqr_clase"`
	RosterInserted int    `json:"estudiantes_prellenados"`
}

// SessionService handles class-session use-cases.
type SessionService struct {
	repo      sessionRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSessionService constructs the session service.
func NewSessionService(repo sessionRepository, validate *validator.Validate, logger *zap.Logger) *SessionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{repo: repo, validator: validate, logger: logger}
}

// ParseDate validates a calendar string strictly against YYYY-MM-DD. Values
// such as 2024-13-40 are rejected here, before any query runs.
func ParseDate(value string) (time.Time, error) {
	date, err := time.Parse(models.DateLayout, value)
	if err != nil {
		return time.Time{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid date, expected YYYY-MM-DD")
	}
	return date, nil
}

// List returns every session.
func (s *SessionService) List(ctx context.Context) ([]models.Session, error) {
	sessions, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sessions")
	}
	return sessions, nil
}

// ListBySubject returns the sessions of a subject. A subject with no
// sessions maps to 404.
func (s *SessionService) ListBySubject(ctx context.Context, subjectID int64) ([]models.Session, error) {
	sessions, err := s.repo.ListBySubject(ctx, subjectID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sessions by subject")
	}
	if len(sessions) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no sessions for subject")
	}
	return sessions, nil
}

// ListByDate returns the sessions held on a calendar date.
func (s *SessionService) ListByDate(ctx context.Context, rawDate string) ([]models.Session, error) {
	date, err := ParseDate(rawDate)
	if err != nil {
		return nil, err
	}
	sessions, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sessions by date")
	}
	return sessions, nil
}

// QRCode returns the QR payload of the first session matching (subject, date).
func (s *SessionService) QRCode(ctx context.Context, subjectID int64, rawDate string) (string, error) {
	date, err := ParseDate(rawDate)
	if err != nil {
		return "", err
	}
	payload, err := s.repo.FindQRCode(ctx, subjectID, date)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", appErrors.Clone(appErrors.ErrNotFound, "no session for subject and date")
		}
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session code")
	}
	return payload, nil
}

// EnrollmentSessions returns the sessions carrying the enrollment sentinel
// for a subject. Several rows are tolerated; callers take the first.
func (s *SessionService) EnrollmentSessions(ctx context.Context, subjectID int64) ([]models.SessionRef, error) {
	refs, err := s.repo.EnrollmentRefs(ctx, subjectID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to look up enrollment session")
	}
	if len(refs) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment session not found")
	}
	return refs, nil
}

// Create inserts a session with a client-supplied QR payload.
func (s *SessionService) Create(ctx context.Context, req CreateSessionRequest) (*models.Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session payload")
	}
	date, err := ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	session := &models.Session{SubjectID: req.SubjectID, Date: date, QRCode: req.QRCode}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session")
	}
	return session, nil
}

// DeleteBySubject removes the sessions of a subject. Zero rows is a success.
func (s *SessionService) DeleteBySubject(ctx context.Context, subjectID int64) (int64, error) {
	deleted, err := s.repo.DeleteBySubject(ctx, subjectID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete sessions")
	}
	return deleted, nil
}

// Generate creates a session with an opaque server-generated QR payload and
// pre-populates one absent attendance row per enrolled student, in a single
// transaction.
func (s *SessionService) Generate(ctx context.Context, req GenerateSessionRequest) (*GenerateSessionResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session payload")
	}
	date, err := ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	session := &models.Session{SubjectID: req.SubjectID, Date: date, QRCode: uuid.NewString()}
	inserted, err := s.repo.CreateWithRoster(ctx, session)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate session")
	}

	s.logger.Info("session generated",
		zap.Int64("id_clase", session.ID),
		zap.Int64("id_asignatura", session.SubjectID),
		zap.Int("roster_rows", inserted))

	return &GenerateSessionResult{SessionID: session.ID, QRCode: session.QRCode, RosterInserted: inserted}, nil
}
