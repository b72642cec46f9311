package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/asistapp/asistencia-api/internal/models"
	appErrors "github.com/asistapp/asistencia-api/pkg/errors"
)

type mockSessionRepo struct {
	sessions   []models.Session
	rosterSize int
	nextID     int64
	err        error
}

func (m *mockSessionRepo) List(ctx context.Context) ([]models.Session, error) {
	return m.sessions, m.err
}

func (m *mockSessionRepo) ListBySubject(ctx context.Context, subjectID int64) ([]models.Session, error) {
	var out []models.Session
	for _, s := range m.sessions {
		if s.SubjectID == subjectID {
			out = append(out, s)
		}
	}
	return out, m.err
}

func (m *mockSessionRepo) ListByDate(ctx context.Context, date time.Time) ([]models.Session, error) {
	var out []models.Session
	for _, s := range m.sessions {
		if s.Date.Equal(date) {
			out = append(out, s)
		}
	}
	return out, m.err
}

func (m *mockSessionRepo) FindBySubjectAndDate(ctx context.Context, subjectID int64, date time.Time) (*models.Session, error) {
	for _, s := range m.sessions {
		if s.SubjectID == subjectID && s.Date.Equal(date) {
			found := s
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockSessionRepo) FindQRCode(ctx context.Context, subjectID int64, date time.Time) (string, error) {
	session, err := m.FindBySubjectAndDate(ctx, subjectID, date)
	if err != nil {
		return "", err
	}
	return session.QRCode, nil
}

func (m *mockSessionRepo) EnrollmentRefs(ctx context.Context, subjectID int64) ([]models.SessionRef, error) {
	var refs []models.SessionRef
	for _, s := range m.sessions {
		if s.SubjectID == subjectID && s.IsEnrollment() {
			refs = append(refs, models.SessionRef{ID: s.ID})
		}
	}
	return refs, m.err
}

func (m *mockSessionRepo) Create(ctx context.Context, session *models.Session) error {
	if m.err != nil {
		return m.err
	}
	m.nextID++
	session.ID = m.nextID
	m.sessions = append(m.sessions, *session)
	return nil
}

func (m *mockSessionRepo) DeleteBySubject(ctx context.Context, subjectID int64) (int64, error) {
	var kept []models.Session
	var deleted int64
	for _, s := range m.sessions {
		if s.SubjectID == subjectID {
			deleted++
			continue
		}
		kept = append(kept, s)
	}
	m.sessions = kept
	return deleted, m.err
}

func (m *mockSessionRepo) CreateWithRoster(ctx context.Context, session *models.Session) (int, error) {
	if err := m.Create(ctx, session); err != nil {
		return 0, err
	}
	return m.rosterSize, nil
}

func newSessionService(repo *mockSessionRepo) *SessionService {
	return NewSessionService(repo, validator.New(), zap.NewNop())
}

func TestSessionServiceListBySubjectEmptyIsNotFound(t *testing.T) {
	svc := newSessionService(&mockSessionRepo{})

	_, err := svc.ListBySubject(context.Background(), 9)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Status, appErr.Status)
}

func TestSessionServiceListByDateRejectsBadDate(t *testing.T) {
	svc := newSessionService(&mockSessionRepo{})

	_, err := svc.ListByDate(context.Background(), "2024-13-40")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Status, appErr.Status)
}

func TestSessionServiceListByDate(t *testing.T) {
	date := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	repo := &mockSessionRepo{sessions: []models.Session{{ID: 3, SubjectID: 1, Date: date, QRCode: "qr"}}}
	svc := newSessionService(repo)

	sessions, err := svc.ListByDate(context.Background(), "2024-05-10")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, int64(3), sessions[0].ID)
}

func TestSessionServiceQRCodeNotFound(t *testing.T) {
	svc := newSessionService(&mockSessionRepo{})

	_, err := svc.QRCode(context.Background(), 1, "2024-05-10")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Status, appErr.Status)
}

func TestSessionServiceEnrollmentSessionsFirstWins(t *testing.T) {
	repo := &mockSessionRepo{sessions: []models.Session{
		{ID: 11, SubjectID: 1, QRCode: models.EnrollmentQRCode},
		{ID: 12, SubjectID: 1, QRCode: models.EnrollmentQRCode},
		{ID: 13, SubjectID: 1, QRCode: "normal"},
	}}
	svc := newSessionService(repo)

	refs, err := svc.EnrollmentSessions(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, int64(11), refs[0].ID)
}

func TestSessionServiceEnrollmentSessionsMissing(t *testing.T) {
	svc := newSessionService(&mockSessionRepo{})

	_, err := svc.EnrollmentSessions(context.Background(), 1)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Status, appErr.Status)
}

func TestSessionServiceCreateValidates(t *testing.T) {
	svc := newSessionService(&mockSessionRepo{})

	_, err := svc.Create(context.Background(), CreateSessionRequest{SubjectID: 1})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Status, appErr.Status)
}

func TestSessionServiceCreateRejectsBadDateBeforeStore(t *testing.T) {
	repo := &mockSessionRepo{}
	svc := newSessionService(repo)

	_, err := svc.Create(context.Background(), CreateSessionRequest{SubjectID: 1, Date: "2024-13-40", QRCode: "qr"})
	require.Error(t, err)
	assert.Empty(t, repo.sessions)
}

func TestSessionServiceGenerate(t *testing.T) {
	repo := &mockSessionRepo{rosterSize: 6}
	svc := newSessionService(repo)

	result, err := svc.Generate(context.Background(), GenerateSessionRequest{SubjectID: 1, Date: "2024-05-10"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.QRCode)
	assert.NotEqual(t, models.EnrollmentQRCode, result.QRCode)
	assert.Equal(t, 6, result.RosterInserted)

	again, err := svc.Generate(context.Background(), GenerateSessionRequest{SubjectID: 1, Date: "2024-05-11"})
	require.NoError(t, err)
	assert.NotEqual(t, result.QRCode, again.QRCode)
}
