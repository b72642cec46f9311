package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/asistapp/asistencia-api/internal/models"
	appErrors "github.com/asistapp/asistencia-api/pkg/errors"
)

type subjectRepository interface {
	List(ctx context.Context) ([]models.Subject, error)
	FindByID(ctx context.Context, id int64) (*models.Subject, error)
	ListByTeacherID(ctx context.Context, teacherID int64) ([]models.Subject, error)
	ListByTeacherUsername(ctx context.Context, username string) ([]models.Subject, error)
	StudentSummaries(ctx context.Context, username string) ([]models.SubjectSummary, error)
	StudentSubjectSummary(ctx context.Context, subjectID int64, username string) ([]models.SubjectSummary, error)
	CreateWithEnrollment(ctx context.Context, subject *models.Subject, enrollmentDate time.Time) (int64, error)
	DeleteCascade(ctx context.Context, id int64) (bool, error)
}

// CreateSubjectRequest holds the payload for creating a subject.
type CreateSubjectRequest struct {
	TeacherID    int64  `json:"id_profesor" validate:"required"`
	Name         string `json:"nombre_asignatura" validate:"required"`
	ShortCode    string `json:"siglas_asignatura" validate:"required"`
	PrimaryColor string `json:"color_asignatura" validate:"required"`
	SectionColor string `json:"color_seccion_asignatura" validate:"required"`
	SectionLabel string `json:"seccion_asignatura" validate:"required"`
	Modality     string `json:"modalidad_asignatura" validate:"required"`
}

// CreateSubjectResult carries the generated ids of the subject and its
// enrollment session.
type CreateSubjectResult struct {
	SubjectID           int64 `json:"id_asignatura"`
	EnrollmentSessionID int64 `json:"id_clase_inscripcion"`
}

// SubjectService handles subject use-cases.
type SubjectService struct {
	repo      subjectRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubjectService constructs the subject service.
func NewSubjectService(repo subjectRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns every subject.
func (s *SubjectService) List(ctx context.Context) ([]models.Subject, error) {
	subjects, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	return subjects, nil
}

// Get returns a subject by id.
func (s *SubjectService) Get(ctx context.Context, id int64) (*models.Subject, error) {
	subject, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}
	return subject, nil
}

// ListByTeacherID returns the subjects owned by a teacher id.
func (s *SubjectService) ListByTeacherID(ctx context.Context, teacherID int64) ([]models.Subject, error) {
	subjects, err := s.repo.ListByTeacherID(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects by teacher")
	}
	return subjects, nil
}

// ListByTeacherUsername returns the subjects owned by a teacher account.
func (s *SubjectService) ListByTeacherUsername(ctx context.Context, username string) ([]models.Subject, error) {
	subjects, err := s.repo.ListByTeacherUsername(ctx, username)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects by teacher username")
	}
	return subjects, nil
}

// StudentSummaries returns every subject a student has records in, with the
// attendance percentage computed server-side. A student with no records at
// all maps to 404.
func (s *SubjectService) StudentSummaries(ctx context.Context, username string) ([]models.SubjectSummary, error) {
	summaries, err := s.repo.StudentSummaries(ctx, username)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student summaries")
	}
	if len(summaries) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no attendance records for student")
	}
	for i := range summaries {
		summaries[i].ComputePercentage()
	}
	return summaries, nil
}

// StudentSubjectSummary scopes the summary to one subject. An empty result
// is not an error here; callers receive an empty array.
func (s *SubjectService) StudentSubjectSummary(ctx context.Context, subjectID int64, username string) ([]models.SubjectSummary, error) {
	summaries, err := s.repo.StudentSubjectSummary(ctx, subjectID, username)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student subject summary")
	}
	for i := range summaries {
		summaries[i].ComputePercentage()
	}
	if summaries == nil {
		summaries = []models.SubjectSummary{}
	}
	return summaries, nil
}

// Create inserts the subject together with its enrollment bootstrap session.
// The two inserts commit or roll back as one unit.
func (s *SubjectService) Create(ctx context.Context, req CreateSubjectRequest) (*CreateSubjectResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}

	subject := &models.Subject{
		TeacherID:    req.TeacherID,
		Name:         req.Name,
		ShortCode:    req.ShortCode,
		PrimaryColor: req.PrimaryColor,
		SectionColor: req.SectionColor,
		SectionLabel: req.SectionLabel,
		Modality:     req.Modality,
	}
	enrollmentDate := time.Now().Truncate(24 * time.Hour)
	sessionID, err := s.repo.CreateWithEnrollment(ctx, subject, enrollmentDate)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create subject")
	}

	s.logger.Info("subject created",
		zap.Int64("id_asignatura", subject.ID),
		zap.Int64("id_clase_inscripcion", sessionID))

	return &CreateSubjectResult{SubjectID: subject.ID, EnrollmentSessionID: sessionID}, nil
}

// Delete removes the subject with its sessions and attendance records in one
// transaction. A missing subject maps to 404.
func (s *SubjectService) Delete(ctx context.Context, id int64) error {
	existed, err := s.repo.DeleteCascade(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete subject")
	}
	if !existed {
		return appErrors.Clone(appErrors.ErrNotFound, "subject not found")
	}
	if s.cache.Enabled() {
		if err := s.cache.InvalidatePattern(ctx, overviewCachePattern(id)); err != nil {
			s.logger.Warn("overview cache invalidation failed", zap.Int64("id_asignatura", id), zap.Error(err))
		}
	}
	return nil
}
