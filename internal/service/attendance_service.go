package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/asistapp/asistencia-api/internal/models"
	appErrors "github.com/asistapp/asistencia-api/pkg/errors"
)

type attendanceRepository interface {
	Insert(ctx context.Context, record *models.AttendanceRecord) error
	MarkPresent(ctx context.Context, sessionID int64, date time.Time, studentID int64) (int64, error)
	ListByStudentAndSession(ctx context.Context, studentID, sessionID int64) ([]models.AttendanceRecord, error)
	ListByStudentUsername(ctx context.Context, username string) ([]models.StudentAttendanceRow, error)
	DistinctStudentIDs(ctx context.Context, subjectID int64) ([]models.StudentID, error)
	SubjectOverview(ctx context.Context, teacherID, subjectID int64) ([]models.SubjectSessionAttendanceRow, error)
}

type sessionFinder interface {
	FindBySubjectAndDate(ctx context.Context, subjectID int64, date time.Time) (*models.Session, error)
}

// RecordAttendanceRequest holds the payload for a manual attendance insert.
type RecordAttendanceRequest struct {
	SessionID int64  `json:"id_clase" validate:"required"`
	StudentID int64  `json:"id_estudiante" validate:"required"`
	Date      string `json:"fecha_asistencia" validate:"required"`
}

// UpdateAttendanceRequest holds the payload for the presence flip. Field
// names follow the original camelCase contract of this endpoint.
type UpdateAttendanceRequest struct {
	SessionID int64  `json:"idClase" validate:"required"`
	StudentID int64  `json:"idEstudiante" validate:"required"`
	Date      string `json:"fechaAsistencia" validate:"required"`
}

// VerifyScanRequest holds the payload of a QR scan check-in.
type VerifyScanRequest struct {
	SubjectID int64  `json:"id_asignatura" validate:"required"`
	StudentID int64  `json:"id_estudiante" validate:"required"`
	Date      string `json:"fecha" validate:"required"`
	QRCode    string `json:"codigoqr" validate:"required"`
}

// VerifyScanResult reports the outcome of a matching scan.
type VerifyScanResult struct {
	SessionID int64 `json:"id_clase"`
	Updated   bool  `json:"actualizada"`
}

const overviewCacheTTL = 5 * time.Minute

func overviewCacheKey(teacherID, subjectID int64) string {
	return fmt.Sprintf("overview:subject:%d:teacher:%d", subjectID, teacherID)
}

func overviewCachePattern(subjectID int64) string {
	return fmt.Sprintf("overview:subject:%d:*", subjectID)
}

// AttendanceService handles attendance use-cases.
type AttendanceService struct {
	repo      attendanceRepository
	sessions  sessionFinder
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(repo attendanceRepository, sessions sessionFinder, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, sessions: sessions, cache: cache, validator: validate, logger: logger}
}

// Record stores a manual check-in. The presence flag is always 1 regardless
// of what the client sends.
func (s *AttendanceService) Record(ctx context.Context, req RecordAttendanceRequest) (*models.AttendanceRecord, error) {
	return s.insert(ctx, req, models.PresencePresent)
}

// RecordAutomatic stores a roster pre-population row. The presence flag is
// always 0.
func (s *AttendanceService) RecordAutomatic(ctx context.Context, req RecordAttendanceRequest) (*models.AttendanceRecord, error) {
	return s.insert(ctx, req, models.PresenceAbsent)
}

func (s *AttendanceService) insert(ctx context.Context, req RecordAttendanceRequest, present int) (*models.AttendanceRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}
	date, err := ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	record := &models.AttendanceRecord{
		SessionID: req.SessionID,
		StudentID: req.StudentID,
		Present:   present,
		Date:      date,
	}
	if err := s.repo.Insert(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record attendance")
	}
	s.invalidateOverview(ctx)
	return record, nil
}

// Update flips the presence flag to 1 on the exact (session, date, student)
// triple. Touching zero rows is not an error; the result says whether
// anything changed.
func (s *AttendanceService) Update(ctx context.Context, req UpdateAttendanceRequest) (bool, error) {
	if err := s.validator.Struct(req); err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}
	date, err := ParseDate(req.Date)
	if err != nil {
		return false, err
	}
	affected, err := s.repo.MarkPresent(ctx, req.SessionID, date, req.StudentID)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update attendance")
	}
	if affected > 0 {
		s.invalidateOverview(ctx)
	}
	return affected > 0, nil
}

// ListByStudentAndSession returns the records for one (student, session) pair.
func (s *AttendanceService) ListByStudentAndSession(ctx context.Context, studentID, sessionID int64) ([]models.AttendanceRecord, error) {
	records, err := s.repo.ListByStudentAndSession(ctx, studentID, sessionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance")
	}
	return records, nil
}

// ListByStudentUsername returns a student's records resolved by account name.
// An empty result maps to 404.
func (s *AttendanceService) ListByStudentUsername(ctx context.Context, username string) ([]models.StudentAttendanceRow, error) {
	rows, err := s.repo.ListByStudentUsername(ctx, username)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance by student")
	}
	if len(rows) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no attendance records for student")
	}
	return rows, nil
}

// SubjectStudents returns the distinct students with any record under the
// subject.
func (s *AttendanceService) SubjectStudents(ctx context.Context, subjectID int64) ([]models.StudentID, error) {
	ids, err := s.repo.DistinctStudentIDs(ctx, subjectID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subject students")
	}
	return ids, nil
}

// SubjectOverview returns the Subject×Session×Attendance join for a
// teacher's subject, served from cache when possible.
func (s *AttendanceService) SubjectOverview(ctx context.Context, teacherID, subjectID int64) ([]models.SubjectSessionAttendanceRow, error) {
	key := overviewCacheKey(teacherID, subjectID)
	var cached []models.SubjectSessionAttendanceRow
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	rows, err := s.repo.SubjectOverview(ctx, teacherID, subjectID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject overview")
	}

	if s.cache.Enabled() {
		if err := s.cache.Set(ctx, key, rows, overviewCacheTTL); err != nil {
			s.logger.Warn("overview cache store failed", zap.String("key", key), zap.Error(err))
		}
	}
	return rows, nil
}

// VerifyScan compares the scanned payload against the stored session code by
// literal string equality. On match it flips the student's existing row to
// present; on mismatch nothing changes and the caller gets a conflict.
func (s *AttendanceService) VerifyScan(ctx context.Context, req VerifyScanRequest) (*VerifyScanResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid scan payload")
	}
	date, err := ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.FindBySubjectAndDate(ctx, req.SubjectID, date)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no session for subject and date")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}

	if session.QRCode != req.QRCode {
		return nil, appErrors.Clone(appErrors.ErrQRMismatch, "")
	}

	affected, err := s.repo.MarkPresent(ctx, session.ID, date, req.StudentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record scan")
	}
	if affected > 0 {
		s.invalidateOverview(ctx)
	}
	return &VerifyScanResult{SessionID: session.ID, Updated: affected > 0}, nil
}

func (s *AttendanceService) invalidateOverview(ctx context.Context) {
	if !s.cache.Enabled() {
		return
	}
	if err := s.cache.InvalidatePattern(ctx, "overview:subject:*"); err != nil {
		s.logger.Warn("overview cache invalidation failed", zap.Error(err))
	}
}
