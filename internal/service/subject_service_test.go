package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/asistapp/asistencia-api/internal/models"
	appErrors "github.com/asistapp/asistencia-api/pkg/errors"
)

type mockSubjectRepo struct {
	subjects       map[int64]models.Subject
	summaries      []models.SubjectSummary
	deleted        []int64
	enrollmentDate time.Time
	nextID         int64
	err            error
}

func (m *mockSubjectRepo) List(ctx context.Context) ([]models.Subject, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.Subject, 0, len(m.subjects))
	for _, s := range m.subjects {
		out = append(out, s)
	}
	return out, nil
}

func (m *mockSubjectRepo) FindByID(ctx context.Context, id int64) (*models.Subject, error) {
	if s, ok := m.subjects[id]; ok {
		return &s, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockSubjectRepo) ListByTeacherID(ctx context.Context, teacherID int64) ([]models.Subject, error) {
	var out []models.Subject
	for _, s := range m.subjects {
		if s.TeacherID == teacherID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockSubjectRepo) ListByTeacherUsername(ctx context.Context, username string) ([]models.Subject, error) {
	return m.List(ctx)
}

func (m *mockSubjectRepo) StudentSummaries(ctx context.Context, username string) ([]models.SubjectSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.summaries, nil
}

func (m *mockSubjectRepo) StudentSubjectSummary(ctx context.Context, subjectID int64, username string) ([]models.SubjectSummary, error) {
	var out []models.SubjectSummary
	for _, s := range m.summaries {
		if s.ID == subjectID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockSubjectRepo) CreateWithEnrollment(ctx context.Context, subject *models.Subject, enrollmentDate time.Time) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.subjects == nil {
		m.subjects = make(map[int64]models.Subject)
	}
	m.nextID++
	subject.ID = m.nextID
	m.subjects[subject.ID] = *subject
	m.enrollmentDate = enrollmentDate
	return subject.ID + 100, nil
}

func (m *mockSubjectRepo) DeleteCascade(ctx context.Context, id int64) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	m.deleted = append(m.deleted, id)
	if _, ok := m.subjects[id]; ok {
		delete(m.subjects, id)
		return true, nil
	}
	return false, nil
}

func newSubjectService(repo *mockSubjectRepo) *SubjectService {
	return NewSubjectService(repo, nil, validator.New(), zap.NewNop())
}

func TestSubjectServiceGetNotFound(t *testing.T) {
	svc := newSubjectService(&mockSubjectRepo{})

	_, err := svc.Get(context.Background(), 99)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Status, appErr.Status)
}

func TestSubjectServiceCreateValidates(t *testing.T) {
	svc := newSubjectService(&mockSubjectRepo{})

	_, err := svc.Create(context.Background(), CreateSubjectRequest{Name: "Redes"})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Status, appErr.Status)
}

func TestSubjectServiceCreateReturnsBothIDs(t *testing.T) {
	repo := &mockSubjectRepo{}
	svc := newSubjectService(repo)

	result, err := svc.Create(context.Background(), CreateSubjectRequest{
		TeacherID:    7,
		Name:         "Redes de Computadores",
		ShortCode:    "RC",
		PrimaryColor: "#1f2937",
		SectionColor: "#f59e0b",
		SectionLabel: "A",
		Modality:     "presencial",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.SubjectID)
	assert.Equal(t, int64(101), result.EnrollmentSessionID)
	assert.False(t, repo.enrollmentDate.IsZero())
}

func TestSubjectServiceStudentSummariesComputesPercentage(t *testing.T) {
	repo := &mockSubjectRepo{summaries: []models.SubjectSummary{
		{Subject: models.Subject{ID: 1}, PresentCount: 3, TotalCount: 4},
		{Subject: models.Subject{ID: 2}, PresentCount: 0, TotalCount: 0},
	}}
	svc := newSubjectService(repo)

	summaries, err := svc.StudentSummaries(context.Background(), "jperez")
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.InDelta(t, 75.0, summaries[0].Percentage, 0.001)
	assert.Zero(t, summaries[1].Percentage)
}

func TestSubjectServiceStudentSummariesEmptyIsNotFound(t *testing.T) {
	svc := newSubjectService(&mockSubjectRepo{})

	_, err := svc.StudentSummaries(context.Background(), "jperez")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Status, appErr.Status)
}

func TestSubjectServiceStudentSubjectSummaryEmptyIsOK(t *testing.T) {
	svc := newSubjectService(&mockSubjectRepo{})

	summaries, err := svc.StudentSubjectSummary(context.Background(), 5, "jperez")
	require.NoError(t, err)
	assert.Empty(t, summaries)
	assert.NotNil(t, summaries)
}

func TestSubjectServiceStudentSubjectSummaryScopes(t *testing.T) {
	repo := &mockSubjectRepo{summaries: []models.SubjectSummary{
		{Subject: models.Subject{ID: 1}, PresentCount: 1, TotalCount: 2},
		{Subject: models.Subject{ID: 2}, PresentCount: 2, TotalCount: 2},
	}}
	svc := newSubjectService(repo)

	summaries, err := svc.StudentSubjectSummary(context.Background(), 2, "jperez")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.InDelta(t, 100.0, summaries[0].Percentage, 0.001)
}

func TestSubjectServiceDeleteMissing(t *testing.T) {
	svc := newSubjectService(&mockSubjectRepo{})

	err := svc.Delete(context.Background(), 42)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Status, appErr.Status)
}

func TestSubjectServiceDeleteCascades(t *testing.T) {
	repo := &mockSubjectRepo{subjects: map[int64]models.Subject{5: {ID: 5}}}
	svc := newSubjectService(repo)

	require.NoError(t, svc.Delete(context.Background(), 5))
	assert.Equal(t, []int64{5}, repo.deleted)
}

func TestSubjectServiceListWrapsRepoError(t *testing.T) {
	svc := newSubjectService(&mockSubjectRepo{err: errors.New("boom")})

	_, err := svc.List(context.Background())
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrInternal.Status, appErr.Status)
}
